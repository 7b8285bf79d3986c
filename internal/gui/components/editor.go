package components

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/docker/go-units"

	"headshot-viewer/internal/models"
)

// EditorPanel shows the grouped adjustment sliders for the current image.
type EditorPanel struct {
	content  fyne.CanvasObject
	groups   []*SliderGroup
	preview  *widget.Label
	info     *widget.Label
	actions  []*widget.Button
	current  *models.ImageRecord
	onAdjust func(name string, value int)

	onSimilar func()
	onReset   func()
	onSave    func()
}

func NewEditorPanel() *EditorPanel {
	e := &EditorPanel{}

	accordion := widget.NewAccordion()
	accordion.MultiOpen = true
	for _, group := range models.EditorGroups() {
		section := NewAccordionSection(group)
		e.groups = append(e.groups, NewSliderGroup(section, models.GroupParameters(group), e.adjusted))
		accordion.Append(section.Item())
	}
	accordion.OpenAll()

	similar := widget.NewButtonWithIcon("Similar", theme.SearchIcon(), func() { e.fire(e.onSimilar) })
	reset := widget.NewButtonWithIcon("Reset", theme.ContentUndoIcon(), func() { e.fire(e.onReset) })
	save := widget.NewButtonWithIcon("Save Edits", theme.DocumentSaveIcon(), func() { e.fire(e.onSave) })
	save.Importance = widget.HighImportance
	e.actions = []*widget.Button{similar, reset, save}

	e.preview = widget.NewLabel("")
	e.preview.Alignment = fyne.TextAlignCenter
	e.preview.Wrapping = fyne.TextWrapWord
	e.info = widget.NewLabel("")
	e.info.Wrapping = fyne.TextWrapWord

	controls := container.NewBorder(nil, container.NewGridWithColumns(3, similar, reset, save), nil, nil,
		container.NewVScroll(accordion))
	previewCard := widget.NewCard("Preview", "", container.NewVBox(e.preview, widget.NewSeparator(), e.info))

	e.content = NewColumns(controls, previewCard, 0.5)
	e.SetCurrentImage(nil)
	return e
}

func (e *EditorPanel) Content() fyne.CanvasObject {
	return e.content
}

func (e *EditorPanel) SetAdjustHandler(handler func(string, int)) { e.onAdjust = handler }
func (e *EditorPanel) SetSimilarHandler(handler func())           { e.onSimilar = handler }
func (e *EditorPanel) SetResetHandler(handler func())             { e.onReset = handler }
func (e *EditorPanel) SetSaveHandler(handler func())              { e.onSave = handler }

func (e *EditorPanel) fire(handler func()) {
	if handler != nil {
		handler()
	}
}

func (e *EditorPanel) adjusted(name string, value int) {
	if e.onAdjust != nil {
		e.onAdjust(name, value)
	}
	e.refreshPreview()
}

// SetCurrentImage loads the record's adjustments into the sliders.
func (e *EditorPanel) SetCurrentImage(r *models.ImageRecord) {
	e.current = r
	for _, g := range e.groups {
		g.Load(r)
	}
	for _, b := range e.actions {
		if r == nil {
			b.Disable()
		} else {
			b.Enable()
		}
	}
	e.info.SetText(describeRecord(r))
	e.refreshPreview()
}

// Refresh reloads the sliders from the current record.
func (e *EditorPanel) Refresh() {
	e.SetCurrentImage(e.current)
}

func (e *EditorPanel) Slider(name string) *ParameterSlider {
	for _, g := range e.groups {
		if s := g.Slider(name); s != nil {
			return s
		}
	}
	return nil
}

func (e *EditorPanel) PreviewText() string {
	return e.preview.Text
}

func (e *EditorPanel) refreshPreview() {
	if e.current == nil {
		e.preview.SetText("Image Preview\nNo image selected")
		return
	}

	var parts []string
	for _, name := range models.ParameterNames() {
		if v := e.current.Adjustment(name); v != 0 {
			parts = append(parts, fmt.Sprintf("%s %+d", models.ParameterLabel(name), v))
		}
	}
	text := "Image Preview\n" + e.current.Name()
	if len(parts) > 0 {
		text += "\n" + strings.Join(parts, ", ")
	}
	e.preview.SetText(text)
}

func describeRecord(r *models.ImageRecord) string {
	if r == nil {
		return ""
	}

	lines := []string{r.Path}
	if w, ok := r.Metadata["width"]; ok {
		lines = append(lines, fmt.Sprintf("%vx%v", w, r.Metadata["height"]))
	}
	if size := r.FileSize(); size > 0 {
		lines = append(lines, units.HumanSize(float64(size)))
	}
	if cam, ok := r.Metadata["camera_model"].(string); ok {
		lines = append(lines, cam)
	}
	if date := r.CreatedDate(); date != "" {
		lines = append(lines, date)
	}
	return strings.Join(lines, "\n")
}

var _ CurrentImageView = (*EditorPanel)(nil)
