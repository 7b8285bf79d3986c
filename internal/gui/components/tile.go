package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/docker/go-units"

	"headshot-viewer/internal/models"
)

// multiSelectModifiers are the keys that turn a click into a toggle.
const multiSelectModifiers = fyne.KeyModifierControl | fyne.KeyModifierSuper

// Tile shows one record in the gallery grid. Index is the record's position
// in the collection, not in the grid.
type Tile struct {
	widget.BaseWidget

	Index  int
	record *models.ImageRecord

	background *canvas.Rectangle
	nameLabel  *widget.Label
	infoLabel  *widget.Label

	modifier fyne.KeyModifier
	onTap    func(index int, multi bool)
}

func NewTile(index int, record *models.ImageRecord, onTap func(int, bool)) *Tile {
	t := &Tile{
		Index:      index,
		record:     record,
		background: canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground)),
		nameLabel:  widget.NewLabel(record.Name()),
		infoLabel:  widget.NewLabel(tileInfo(record)),
		onTap:      onTap,
	}
	t.background.CornerRadius = theme.Size(theme.SizeNameInputRadius)
	t.nameLabel.Truncation = fyne.TextTruncateEllipsis
	t.nameLabel.Alignment = fyne.TextAlignCenter
	t.infoLabel.Alignment = fyne.TextAlignCenter
	t.infoLabel.Importance = widget.LowImportance
	t.ExtendBaseWidget(t)
	return t
}

func tileInfo(r *models.ImageRecord) string {
	info := r.Orientation()
	if size := r.FileSize(); size > 0 {
		if info != "" {
			info += " · "
		}
		info += units.HumanSize(float64(size))
	}
	return info
}

func (t *Tile) CreateRenderer() fyne.WidgetRenderer {
	icon := widget.NewIcon(theme.FileImageIcon())
	body := container.NewBorder(nil, container.NewVBox(t.nameLabel, t.infoLabel), nil, nil,
		container.NewGridWrap(fyne.NewSize(96, 96), icon))
	t.refreshSelection()
	return widget.NewSimpleRenderer(container.NewStack(t.background, container.NewPadded(body)))
}

// MouseDown remembers the modifiers for the tap that follows.
func (t *Tile) MouseDown(ev *desktop.MouseEvent) {
	t.modifier = ev.Modifier
}

func (t *Tile) MouseUp(*desktop.MouseEvent) {}

func (t *Tile) Tapped(*fyne.PointEvent) {
	multi := t.modifier&multiSelectModifiers != 0
	t.modifier = 0
	if t.onTap != nil {
		t.onTap(t.Index, multi)
	}
}

func (t *Tile) Selected() bool {
	return t.record.Selected
}

// Refresh redraws the selection highlight from the record.
func (t *Tile) Refresh() {
	t.refreshSelection()
	t.BaseWidget.Refresh()
}

func (t *Tile) refreshSelection() {
	if t.record.Selected {
		t.background.FillColor = theme.Color(theme.ColorNameSelection)
		t.background.StrokeColor = theme.Color(theme.ColorNamePrimary)
		t.background.StrokeWidth = 2
	} else {
		t.background.FillColor = theme.Color(theme.ColorNameInputBackground)
		t.background.StrokeWidth = 0
	}
	t.background.Refresh()
}

var (
	_ fyne.Tappable     = (*Tile)(nil)
	_ desktop.Mouseable = (*Tile)(nil)
)
