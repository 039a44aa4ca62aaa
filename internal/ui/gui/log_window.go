//go:build !headless

package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const maxLogRows = 1000

// initLogWindow builds the separate window showing the application's own
// structured log stream, styled via the ANSI event formatter.
func (c *controller) initLogWindow() {
	c.logWindow = c.app.NewWindow("File Organizer - App Log")
	c.logWindow.Resize(fyne.NewSize(920, 420))
	c.logGrid = widget.NewTextGrid()
	c.logScroll = container.NewScroll(c.logGrid)
	c.followEnabled = true

	followButton := widget.NewButton("Following", nil)
	followButton.OnTapped = func() {
		c.followEnabled = !c.followEnabled
		if c.followEnabled {
			followButton.SetText("Following")
			c.scrollLogsToBottom()
		} else {
			followButton.SetText("Follow")
		}
	}
	clearButton := widget.NewButton("Clear", func() {
		c.logRawLines = nil
		c.refreshLogView()
	})

	controls := container.NewHBox(followButton, clearButton)
	c.logWindow.SetContent(container.NewBorder(controls, nil, nil, nil, c.logScroll))
	c.logWindow.SetCloseIntercept(func() {
		c.setLogVisibility(false)
	})
}

func (c *controller) setLogVisibility(visible bool) {
	if visible {
		c.logWindowOpen = true
		c.logWindow.Show()
		c.logWindow.RequestFocus()
	} else {
		c.logWindowOpen = false
		c.logWindow.Hide()
	}
}

func (c *controller) appendLog(line string) {
	if c.logGrid == nil {
		return
	}
	lines := splitLogLines(line)
	if len(lines) == 0 {
		return
	}
	c.logRawLines = append(c.logRawLines, lines...)
	if len(c.logRawLines) > maxLogRows {
		c.logRawLines = append([]string(nil), c.logRawLines[len(c.logRawLines)-maxLogRows:]...)
	}
	c.refreshLogView()
	if c.followEnabled {
		c.scrollLogsToBottom()
	}
}

func (c *controller) refreshLogView() {
	wrapped := wrapANSILines(c.logRawLines, c.logWrapColumns())
	if len(wrapped) > maxLogRows {
		wrapped = wrapped[len(wrapped)-maxLogRows:]
	}
	rows := make([]widget.TextGridRow, 0, len(wrapped))
	for _, line := range wrapped {
		rows = append(rows, parseANSITextGridRow(line))
	}
	c.logGrid.Rows = rows
	c.logGrid.Refresh()
}

func (c *controller) logWrapColumns() int {
	widthPx := c.logGrid.Size().Width
	if c.logScroll != nil && c.logScroll.Size().Width > 0 {
		widthPx = c.logScroll.Size().Width
	}
	if widthPx <= 0 {
		widthPx = 900
	}
	charSize := fyne.MeasureText("M", theme.TextSize(), fyne.TextStyle{Monospace: true})
	if charSize.Width <= 0 {
		return 120
	}
	cols := int(widthPx / charSize.Width)
	if cols < 40 {
		cols = 40
	}
	if cols > 240 {
		cols = 240
	}
	return cols - 2
}

func (c *controller) scrollLogsToBottom() {
	if c.logScroll == nil {
		return
	}
	c.logScroll.ScrollToBottom()
}
