package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"headshot-viewer/internal/models"
)

const hueParameter = "hue"

// HuePanel edits the hue of the current image.
type HuePanel struct {
	content  fyne.CanvasObject
	slider   *ParameterSlider
	reset    *widget.Button
	preview  *widget.Label
	current  *models.ImageRecord
	quality  string
	onAdjust func(name string, value int)
}

func NewHuePanel() *HuePanel {
	h := &HuePanel{quality: "high"}

	h.slider = NewParameterSlider(hueParameter)
	h.slider.SetChangeHandler(func(name string, value int) {
		if h.onAdjust != nil {
			h.onAdjust(name, value)
		}
		h.refreshPreview()
	})

	h.reset = widget.NewButtonWithIcon("Reset Hue", theme.ContentUndoIcon(), func() {
		h.slider.Commit(0)
	})

	h.preview = widget.NewLabel("")
	h.preview.Alignment = fyne.TextAlignCenter

	section := NewCardSection("Hue Adjustment")
	section.Add(h.slider.GetContainer())
	section.Add(h.reset)

	h.content = NewColumns(
		container.NewVBox(section.Content()),
		widget.NewCard("Preview", "", container.NewCenter(h.preview)),
		0.4,
	)
	h.SetCurrentImage(nil)
	return h
}

func (h *HuePanel) Content() fyne.CanvasObject {
	return h.content
}

func (h *HuePanel) SetAdjustHandler(handler func(string, int)) {
	h.onAdjust = handler
}

func (h *HuePanel) SetCurrentImage(r *models.ImageRecord) {
	h.current = r
	if r == nil {
		h.slider.SetValue(0)
		h.reset.Disable()
	} else {
		h.slider.SetValue(r.Adjustment(hueParameter))
		h.reset.Enable()
	}
	h.refreshPreview()
}

// SetPreviewQuality changes the quality shown with the preview.
func (h *HuePanel) SetPreviewQuality(quality string) {
	h.quality = quality
	h.refreshPreview()
}

func (h *HuePanel) Refresh() {
	h.SetCurrentImage(h.current)
}

func (h *HuePanel) Slider() *ParameterSlider {
	return h.slider
}

func (h *HuePanel) PreviewText() string {
	return h.preview.Text
}

func (h *HuePanel) refreshPreview() {
	if h.current == nil {
		h.preview.SetText("Hue Preview\nNo image selected")
		return
	}
	h.preview.SetText(fmt.Sprintf("%s\nHue: %d°\nQuality: %s", h.current.Name(), h.slider.Value(), h.quality))
}

var _ CurrentImageView = (*HuePanel)(nil)
