package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"headshot-viewer/internal/models"
)

const (
	GalleryColumns = 4
	yesLabel       = "Yes"
	noLabel        = "No"
)

// batchParameters are the sliders offered for batch edits in the gallery.
var batchParameters = []string{"brightness", "contrast", "saturation", "warmth"}

type GalleryPanel struct {
	content fyne.CanvasObject

	grid       *fyne.Container
	emptyLabel *widget.Label
	tiles      []*Tile

	filterSelect   *widget.Select
	sortSelect     *widget.Select
	presetsSection *CardSection
	batch          *SliderGroup
	qualitySelect  *widget.Select
	autoProcessing *widget.RadioGroup

	onToggle         func(index int, multi bool)
	onPreset         func(name string)
	onApply          func(values map[string]int)
	onArrange        func(filter, order string)
	onQuality        func(quality string)
	onAutoProcessing func(enabled bool)
}

// NewGalleryPanel builds the gallery. filters and sorts feed the two
// arrangement selects; qualities feed the preview quality select.
func NewGalleryPanel(filters, sorts, qualities []string) *GalleryPanel {
	g := &GalleryPanel{}

	g.filterSelect = widget.NewSelect(filters, func(string) { g.arrangeChanged() })
	g.sortSelect = widget.NewSelect(sorts, func(string) { g.arrangeChanged() })
	if len(filters) > 0 {
		g.filterSelect.SetSelectedIndex(0)
	}
	if len(sorts) > 0 {
		g.sortSelect.SetSelectedIndex(0)
	}

	filterSection := NewCardSection("Filters")
	filterSection.Add(g.filterSelect)
	filterSection.Add(g.sortSelect)

	g.presetsSection = NewCardSection("Presets")

	batchSection := NewCardSection("Batch Adjustments")
	g.batch = NewSliderGroup(batchSection, batchParameters, nil)

	optionsSection := NewCardSection("Advanced Options")
	g.qualitySelect = widget.NewSelect(qualities, func(q string) {
		if g.onQuality != nil {
			g.onQuality(q)
		}
	})
	g.qualitySelect.PlaceHolder = "Preview quality"
	g.autoProcessing = widget.NewRadioGroup([]string{noLabel, yesLabel}, func(choice string) {
		if g.onAutoProcessing != nil && choice != "" {
			g.onAutoProcessing(choice == yesLabel)
		}
	})
	g.autoProcessing.Horizontal = true
	g.autoProcessing.Required = true
	optionsSection.Add(g.qualitySelect)
	optionsSection.Add(container.NewBorder(nil, nil, widget.NewLabel("Enable auto-processing:"), nil, g.autoProcessing))

	resetButton := widget.NewButtonWithIcon("Reset All", theme.ContentUndoIcon(), g.ResetForm)
	applyButton := widget.NewButtonWithIcon("Apply Settings", theme.ConfirmIcon(), func() {
		if g.onApply != nil {
			g.onApply(g.batch.Values())
		}
	})
	applyButton.Importance = widget.HighImportance

	left := container.NewVScroll(container.NewVBox(
		filterSection.Content(),
		g.presetsSection.Content(),
		batchSection.Content(),
		optionsSection.Content(),
		container.NewGridWithColumns(2, resetButton, applyButton),
	))

	g.emptyLabel = widget.NewLabel("No headshots loaded. Choose a directory to begin.")
	g.emptyLabel.Alignment = fyne.TextAlignCenter
	g.grid = container.NewGridWithColumns(GalleryColumns)

	right := container.NewStack(g.emptyLabel, container.NewVScroll(g.grid))
	g.content = NewColumns(left, right, 0.3)
	return g
}

func (g *GalleryPanel) Content() fyne.CanvasObject {
	return g.content
}

func (g *GalleryPanel) SetToggleHandler(handler func(int, bool))       { g.onToggle = handler }
func (g *GalleryPanel) SetPresetHandler(handler func(string))          { g.onPreset = handler }
func (g *GalleryPanel) SetApplyHandler(handler func(map[string]int))   { g.onApply = handler }
func (g *GalleryPanel) SetArrangeHandler(handler func(string, string)) { g.onArrange = handler }
func (g *GalleryPanel) SetQualityHandler(handler func(string))         { g.onQuality = handler }
func (g *GalleryPanel) SetAutoProcessingHandler(handler func(bool))    { g.onAutoProcessing = handler }

func (g *GalleryPanel) Filter() string { return g.filterSelect.Selected }
func (g *GalleryPanel) Sort() string   { return g.sortSelect.Selected }

func (g *GalleryPanel) arrangeChanged() {
	if g.onArrange != nil {
		g.onArrange(g.Filter(), g.Sort())
	}
}

// ShowRecords rebuilds the grid. order holds collection indices in display
// order; each tile keeps its collection index.
func (g *GalleryPanel) ShowRecords(records []*models.ImageRecord, order []int) {
	g.grid.RemoveAll()
	g.tiles = g.tiles[:0]

	for _, idx := range order {
		tile := NewTile(idx, records[idx], func(index int, multi bool) {
			if g.onToggle != nil {
				g.onToggle(index, multi)
			}
		})
		g.tiles = append(g.tiles, tile)
		g.grid.Add(tile)
	}

	if len(records) == 0 {
		g.emptyLabel.Show()
	} else {
		g.emptyLabel.Hide()
	}
	g.grid.Refresh()
}

// RefreshSelection redraws every tile's highlight.
func (g *GalleryPanel) RefreshSelection() {
	for _, t := range g.tiles {
		t.Refresh()
	}
}

func (g *GalleryPanel) Tiles() []*Tile {
	return g.tiles
}

// SetPresets replaces the preset buttons.
func (g *GalleryPanel) SetPresets(names []string) {
	g.presetsSection.Clear()
	for _, name := range names {
		name := name
		g.presetsSection.Add(widget.NewButton(name, func() {
			if g.onPreset != nil {
				g.onPreset(name)
			}
		}))
	}
	g.presetsSection.Content().Refresh()
}

// SetOptions shows persisted option values without firing their handlers.
func (g *GalleryPanel) SetOptions(quality string, autoProcessing bool) {
	onQuality, onAuto := g.onQuality, g.onAutoProcessing
	g.onQuality, g.onAutoProcessing = nil, nil
	defer func() { g.onQuality, g.onAutoProcessing = onQuality, onAuto }()

	g.qualitySelect.SetSelected(quality)
	if autoProcessing {
		g.autoProcessing.SetSelected(yesLabel)
	} else {
		g.autoProcessing.SetSelected(noLabel)
	}
}

// ResetForm zeroes the batch sliders.
func (g *GalleryPanel) ResetForm() {
	g.batch.Reset()
}

func (g *GalleryPanel) Batch() *SliderGroup {
	return g.batch
}
