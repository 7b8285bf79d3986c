package components

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"headshot-viewer/internal/models"
)

// ParameterSlider is a labelled slider with a value entry for one
// adjustment parameter.
type ParameterSlider struct {
	Name   string
	Slider *widget.Slider
	Entry  *widget.Entry

	container *fyne.Container
	value     int
	min, max  int
	updating  bool
	onChange  func(name string, value int)
}

func NewParameterSlider(name string) *ParameterSlider {
	r, ok := models.LookupParameter(name)
	if !ok {
		r = models.ParameterRange{Min: -100, Max: 100}
	}

	ps := &ParameterSlider{Name: name, min: r.Min, max: r.Max}

	ps.Slider = widget.NewSlider(float64(r.Min), float64(r.Max))
	ps.Slider.Step = 1
	ps.Slider.OnChanged = func(v float64) {
		ps.commit(int(v), false)
	}

	ps.Entry = widget.NewEntry()
	ps.Entry.SetText("0")
	ps.Entry.OnSubmitted = ps.submitText
	ps.Entry.OnChanged = func(text string) {
		if ps.updating {
			return
		}
		if v, ok := ps.parse(text); ok && v != ps.value {
			ps.commit(v, true)
		}
	}

	label := widget.NewLabel(models.ParameterLabel(name))
	entryBox := container.NewGridWrap(fyne.NewSize(72, ps.Entry.MinSize().Height), ps.Entry)

	ps.container = container.NewBorder(nil, nil, label, entryBox, ps.Slider)
	return ps
}

func (ps *ParameterSlider) GetContainer() *fyne.Container {
	return ps.container
}

func (ps *ParameterSlider) SetChangeHandler(handler func(name string, value int)) {
	ps.onChange = handler
}

func (ps *ParameterSlider) Value() int {
	return ps.value
}

// SetValue moves the slider without notifying the change handler.
func (ps *ParameterSlider) SetValue(v int) {
	ps.updating = true
	defer func() { ps.updating = false }()

	ps.value = v
	ps.Slider.SetValue(float64(v))
	ps.Entry.SetText(strconv.Itoa(v))
}

// Commit moves the slider and notifies the change handler.
func (ps *ParameterSlider) Commit(v int) {
	ps.SetValue(v)
	if ps.onChange != nil {
		ps.onChange(ps.Name, v)
	}
}

func (ps *ParameterSlider) submitText(text string) {
	v, ok := ps.parse(text)
	if !ok {
		ps.updating = true
		ps.Entry.SetText(strconv.Itoa(ps.value))
		ps.updating = false
		return
	}
	ps.commit(v, true)
}

// parse rejects non-numeric and out-of-range text.
func (ps *ParameterSlider) parse(text string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || v < ps.min || v > ps.max {
		return 0, false
	}
	return v, true
}

func (ps *ParameterSlider) commit(v int, fromEntry bool) {
	if ps.updating {
		return
	}

	ps.updating = true
	ps.value = v
	if fromEntry {
		ps.Slider.SetValue(float64(v))
	} else {
		ps.Entry.SetText(strconv.Itoa(v))
	}
	ps.updating = false

	if ps.onChange != nil {
		ps.onChange(ps.Name, v)
	}
}

// SliderGroup is a set of parameter sliders laid out in a Section.
type SliderGroup struct {
	sliders map[string]*ParameterSlider
	order   []string
}

func NewSliderGroup(section Section, names []string, handler func(string, int)) *SliderGroup {
	g := &SliderGroup{sliders: make(map[string]*ParameterSlider, len(names))}
	for _, name := range names {
		s := NewParameterSlider(name)
		s.SetChangeHandler(handler)
		g.sliders[name] = s
		g.order = append(g.order, name)
		section.Add(s.GetContainer())
	}
	section.Add(layout.NewSpacer())
	return g
}

// Load shows the record's values, or zeros for a nil record.
func (g *SliderGroup) Load(r *models.ImageRecord) {
	for _, name := range g.order {
		v := 0
		if r != nil {
			v = r.Adjustment(name)
		}
		g.sliders[name].SetValue(v)
	}
}

func (g *SliderGroup) Values() map[string]int {
	out := make(map[string]int, len(g.order))
	for _, name := range g.order {
		out[name] = g.sliders[name].Value()
	}
	return out
}

func (g *SliderGroup) Reset() {
	g.Load(nil)
}

func (g *SliderGroup) Slider(name string) *ParameterSlider {
	return g.sliders[name]
}
