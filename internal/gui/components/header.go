package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

type Header struct {
	container    *fyne.Container
	directory    *widget.Label
	chooseButton *widget.Button
	loadButton   *widget.Button
	progress     *widget.ProgressBarInfinite
}

func NewHeader(title string) *Header {
	h := &Header{}

	titleLabel := widget.NewLabelWithStyle(title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	h.directory = widget.NewLabel("No directory selected")
	h.directory.Truncation = fyne.TextTruncateEllipsis

	h.chooseButton = widget.NewButtonWithIcon("Choose Directory", theme.FolderOpenIcon(), nil)
	h.loadButton = widget.NewButtonWithIcon("Load Selected Headshots", theme.DownloadIcon(), nil)
	h.loadButton.Importance = widget.HighImportance

	h.progress = widget.NewProgressBarInfinite()
	h.progress.Stop()
	h.progress.Hide()

	h.container = container.NewBorder(nil, h.progress,
		titleLabel,
		container.NewHBox(h.chooseButton, h.loadButton),
		h.directory,
	)
	return h
}

func (h *Header) GetContainer() *fyne.Container {
	return h.container
}

func (h *Header) SetChooseHandler(handler func()) { h.chooseButton.OnTapped = handler }
func (h *Header) SetLoadHandler(handler func())   { h.loadButton.OnTapped = handler }

func (h *Header) SetDirectory(dir string) {
	if dir == "" {
		dir = "No directory selected"
	}
	h.directory.SetText(dir)
}

func (h *Header) Directory() string {
	return h.directory.Text
}

// SetBusy shows the progress bar while a directory loads.
func (h *Header) SetBusy(busy bool) {
	if busy {
		h.progress.Show()
		h.progress.Start()
		h.chooseButton.Disable()
		return
	}
	h.progress.Stop()
	h.progress.Hide()
	h.chooseButton.Enable()
}
