//go:build !headless

package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const badgeDotSize = float32(12)

// statusBadge is a small colored dot reflecting a pipeline's state.
type statusBadge struct {
	widget.BaseWidget

	fill color.NRGBA
	dot  *canvas.Circle
}

func newStatusBadge(fill color.NRGBA) *statusBadge {
	b := &statusBadge{fill: fill}
	b.dot = canvas.NewCircle(fill)
	b.ExtendBaseWidget(b)
	return b
}

func (b *statusBadge) SetColor(fill color.NRGBA) {
	b.fill = fill
	b.dot.FillColor = fill
	b.dot.Refresh()
}

func (b *statusBadge) MinSize() fyne.Size {
	text := fyne.MeasureText("M", theme.TextSize(), fyne.TextStyle{})
	height := text.Height
	if height < badgeDotSize+2 {
		height = badgeDotSize + 2
	}
	return fyne.NewSize(badgeDotSize+6, height)
}

func (b *statusBadge) CreateRenderer() fyne.WidgetRenderer {
	anchor := canvas.NewRectangle(color.Transparent)
	anchor.SetMinSize(b.MinSize())
	dot := container.NewGridWrap(fyne.NewSize(badgeDotSize, badgeDotSize), b.dot)
	wrapped := container.NewStack(anchor, container.NewCenter(dot))
	return widget.NewSimpleRenderer(wrapped)
}
