//go:build !headless

package gui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// selectDirectory opens the shared folder picker window and writes the
// chosen path into the target entry. One picker window is reused across
// all tabs; only the target changes.
func (c *controller) selectDirectory(title string, target *widget.Entry) {
	c.dirPickerTarget = func(path string) {
		target.SetText(path)
	}
	start := c.ensureDirPickerStartPath(target.Text)
	c.dirPickerCurrent = start

	if c.dirPickerWindow == nil {
		c.dirPickerWindow = c.app.NewWindow(title)
		c.dirPickerWindow.Resize(fyne.NewSize(720, 480))
		c.dirPickerPath = widget.NewEntry()
		c.dirPickerPath.OnSubmitted = func(value string) {
			candidate := c.ensureDirPickerStartPath(value)
			c.dirPickerCurrent = candidate
			c.dirPickerPath.SetText(candidate)
			c.refreshDirPickerList()
		}
		upButton := widget.NewButton("Up", func() {
			parent := filepath.Dir(c.dirPickerCurrent)
			if parent == "" || parent == c.dirPickerCurrent {
				return
			}
			c.dirPickerCurrent = parent
			c.dirPickerPath.SetText(parent)
			c.refreshDirPickerList()
		})
		useCurrent := widget.NewButton("Use Current Folder", func() {
			if c.dirPickerTarget != nil {
				c.dirPickerTarget(c.dirPickerCurrent)
			}
			c.dirPickerWindow.Hide()
		})
		closeButton := widget.NewButton("Close", func() {
			c.dirPickerWindow.Hide()
		})

		c.dirPickerList = widget.NewList(
			func() int { return len(c.dirPickerItems) },
			func() fyne.CanvasObject { return widget.NewLabel("directory") },
			func(id widget.ListItemID, obj fyne.CanvasObject) {
				obj.(*widget.Label).SetText(c.dirPickerItems[id])
			},
		)
		c.dirPickerList.OnSelected = func(id widget.ListItemID) {
			if id < 0 || id >= len(c.dirPickerItems) {
				return
			}
			next := filepath.Join(c.dirPickerCurrent, c.dirPickerItems[id])
			c.dirPickerCurrent = c.ensureDirPickerStartPath(next)
			c.dirPickerPath.SetText(c.dirPickerCurrent)
			c.refreshDirPickerList()
		}

		header := container.NewBorder(nil, nil, upButton, nil, c.dirPickerPath)
		actions := container.NewHBox(useCurrent, closeButton)
		c.dirPickerWindow.SetContent(container.NewBorder(header, actions, nil, nil, c.dirPickerList))
		c.dirPickerWindow.SetCloseIntercept(func() {
			c.dirPickerWindow.Hide()
		})
	}

	c.dirPickerWindow.SetTitle(title)
	c.dirPickerPath.SetText(c.dirPickerCurrent)
	c.refreshDirPickerList()
	c.dirPickerWindow.Show()
	c.dirPickerWindow.RequestFocus()
}

func (c *controller) ensureDirPickerStartPath(candidate string) string {
	candidate = strings.TrimSpace(candidate)
	if candidate != "" {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return filepath.Clean(candidate)
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return string(os.PathSeparator)
}

func (c *controller) refreshDirPickerList() {
	items := []string{}
	entries, err := os.ReadDir(c.dirPickerCurrent)
	if err == nil {
		for _, entry := range entries {
			if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			items = append(items, entry.Name())
		}
		sort.Strings(items)
	}
	c.dirPickerItems = items
	if c.dirPickerList != nil {
		c.dirPickerList.UnselectAll()
		c.dirPickerList.Refresh()
	}
}
