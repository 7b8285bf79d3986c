package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// Columns lays out two panes side by side at a fixed width ratio, with no
// draggable divider.
type Columns struct {
	widget.BaseWidget
	leading  fyne.CanvasObject
	trailing fyne.CanvasObject
	ratio    float32
}

// NewColumns gives the leading pane ratio of the width (0 to 1).
func NewColumns(leading, trailing fyne.CanvasObject, ratio float32) *Columns {
	c := &Columns{
		leading:  leading,
		trailing: trailing,
		ratio:    clampRatio(ratio),
	}
	c.ExtendBaseWidget(c)
	return c
}

func (c *Columns) SetRatio(ratio float32) {
	c.ratio = clampRatio(ratio)
	c.Refresh()
}

func (c *Columns) Ratio() float32 {
	return c.ratio
}

func (c *Columns) CreateRenderer() fyne.WidgetRenderer {
	return &columnsRenderer{
		columns: c,
		objects: []fyne.CanvasObject{c.leading, c.trailing},
	}
}

func clampRatio(r float32) float32 {
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

type columnsRenderer struct {
	columns *Columns
	objects []fyne.CanvasObject
}

// Layout never shrinks the leading pane below its minimum width.
func (r *columnsRenderer) Layout(size fyne.Size) {
	leadingWidth := fyne.Max(size.Width*r.columns.ratio, r.columns.leading.MinSize().Width)
	if leadingWidth > size.Width {
		leadingWidth = size.Width
	}

	r.columns.leading.Resize(fyne.NewSize(leadingWidth, size.Height))
	r.columns.leading.Move(fyne.NewPos(0, 0))

	r.columns.trailing.Resize(fyne.NewSize(size.Width-leadingWidth, size.Height))
	r.columns.trailing.Move(fyne.NewPos(leadingWidth, 0))
}

func (r *columnsRenderer) MinSize() fyne.Size {
	leadingMin := r.columns.leading.MinSize()
	trailingMin := r.columns.trailing.MinSize()

	return fyne.NewSize(
		leadingMin.Width+trailingMin.Width,
		fyne.Max(leadingMin.Height, trailingMin.Height),
	)
}

func (r *columnsRenderer) Refresh() {
	r.Layout(r.columns.Size())
	for _, obj := range r.objects {
		obj.Refresh()
	}
}

func (r *columnsRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *columnsRenderer) Destroy() {}
