package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type StatusBar struct {
	container      *fyne.Container
	statusLabel    *widget.Label
	collectionText *widget.Label
	selectionText  *widget.Label
}

func NewStatusBar() *StatusBar {
	statusLabel := widget.NewLabel("Ready")
	statusLabel.Truncation = fyne.TextTruncateEllipsis
	collectionText := widget.NewLabel("0 images")
	selectionText := widget.NewLabel("0 selected")

	countsContainer := container.NewHBox(
		collectionText,
		widget.NewSeparator(),
		selectionText,
	)

	mainContainer := container.NewBorder(
		nil, nil,
		nil,
		countsContainer,
		statusLabel,
	)

	return &StatusBar{
		container:      mainContainer,
		statusLabel:    statusLabel,
		collectionText: collectionText,
		selectionText:  selectionText,
	}
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

func (sb *StatusBar) Status() string {
	return sb.statusLabel.Text
}

func (sb *StatusBar) SetCounts(images, selected int) {
	sb.collectionText.SetText(fmt.Sprintf("%d images", images))
	sb.selectionText.SetText(fmt.Sprintf("%d selected", selected))
}
