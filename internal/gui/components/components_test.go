package components

import (
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"

	"headshot-viewer/internal/models"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		i, n, want int
	}{
		{0, 3, 0},
		{3, 3, 0},
		{-1, 3, 2},
		{4, 3, 1},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := Wrap(tt.i, tt.n); got != tt.want {
			t.Errorf("Wrap(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}

func TestFooter(t *testing.T) {
	test.NewTempApp(t)

	f := NewFooter("author", 3)
	if got := f.Position(); got != "1 of 3" {
		t.Errorf("Position() = %q, want %q", got, "1 of 3")
	}

	var navigated []int
	f.SetNavigateHandler(func(i int) { navigated = append(navigated, i) })
	f.navigate(Wrap(f.current-1, f.count))
	if got := f.Position(); got != "3 of 3" {
		t.Errorf("Position() after wrap = %q, want %q", got, "3 of 3")
	}
	if len(navigated) != 1 || navigated[0] != 2 {
		t.Errorf("navigated = %v, want [2]", navigated)
	}

	at := time.Date(2024, time.March, 5, 14, 7, 0, 0, time.UTC)
	f.SetTime(at)
	if got, want := f.Clock(), "Last updated: Mar 05 2024 @ 02:07 PM"; got != want {
		t.Errorf("Clock() = %q, want %q", got, want)
	}
}

func TestParameterSlider(t *testing.T) {
	test.NewTempApp(t)

	s := NewParameterSlider("brightness")
	var calls []int
	s.SetChangeHandler(func(name string, v int) {
		if name != "brightness" {
			t.Errorf("handler name = %q, want brightness", name)
		}
		calls = append(calls, v)
	})

	s.SetValue(10)
	if s.Value() != 10 || s.Entry.Text != "10" {
		t.Errorf("after SetValue: value %d entry %q, want 10", s.Value(), s.Entry.Text)
	}
	if len(calls) != 0 {
		t.Errorf("SetValue notified handler %v", calls)
	}

	s.Commit(20)
	if len(calls) != 1 || calls[0] != 20 {
		t.Errorf("calls after Commit = %v, want [20]", calls)
	}

	s.submitText("500")
	if s.Value() != 20 || s.Entry.Text != "20" {
		t.Errorf("out-of-range entry: value %d entry %q, want 20", s.Value(), s.Entry.Text)
	}

	s.submitText("-35")
	if s.Value() != -35 || s.Slider.Value != -35 {
		t.Errorf("entry submit: value %d slider %v, want -35", s.Value(), s.Slider.Value)
	}
	if len(calls) != 2 {
		t.Errorf("calls = %v, want two", calls)
	}
}

func TestSliderGroupLoad(t *testing.T) {
	test.NewTempApp(t)

	section := NewCardSection("Basic")
	g := NewSliderGroup(section, []string{"brightness", "contrast"}, nil)

	r := models.NewImageRecord("/a/one.jpg", nil)
	if err := r.SetAdjustment("contrast", 15); err != nil {
		t.Fatalf("SetAdjustment: %v", err)
	}
	g.Load(r)
	if got := g.Values(); got["brightness"] != 0 || got["contrast"] != 15 {
		t.Errorf("Values() = %v, want brightness 0 contrast 15", got)
	}

	g.Reset()
	if got := g.Slider("contrast").Value(); got != 0 {
		t.Errorf("contrast after Reset = %d, want 0", got)
	}
}

func TestTileMultiSelect(t *testing.T) {
	test.NewTempApp(t)

	type tap struct {
		index int
		multi bool
	}
	var taps []tap
	r := models.NewImageRecord("/a/one.jpg", nil)
	tile := NewTile(4, r, func(i int, multi bool) { taps = append(taps, tap{i, multi}) })

	tile.Tapped(&fyne.PointEvent{})
	tile.MouseDown(&desktop.MouseEvent{Modifier: fyne.KeyModifierControl})
	tile.Tapped(&fyne.PointEvent{})
	tile.Tapped(&fyne.PointEvent{})

	want := []tap{{4, false}, {4, true}, {4, false}}
	if len(taps) != len(want) {
		t.Fatalf("taps = %v, want %v", taps, want)
	}
	for i := range want {
		if taps[i] != want[i] {
			t.Errorf("tap %d = %v, want %v", i, taps[i], want[i])
		}
	}
}

func TestTileInfo(t *testing.T) {
	r := models.NewImageRecord("/a/one.jpg", map[string]interface{}{
		"width":     800,
		"height":    1200,
		"file_size": 2048576,
	})
	got := tileInfo(r)
	if !strings.HasPrefix(got, models.OrientationPortrait) || !strings.Contains(got, "MB") {
		t.Errorf("tileInfo() = %q, want portrait with a size", got)
	}
}

func TestGalleryShowRecords(t *testing.T) {
	test.NewTempApp(t)

	g := NewGalleryPanel([]string{"All"}, []string{"Name"}, []string{"low", "high"})
	records := []*models.ImageRecord{
		models.NewImageRecord("/a/one.jpg", nil),
		models.NewImageRecord("/a/two.jpg", nil),
		models.NewImageRecord("/a/three.jpg", nil),
	}

	var toggled []int
	g.SetToggleHandler(func(i int, _ bool) { toggled = append(toggled, i) })
	g.ShowRecords(records, []int{2, 0})

	tiles := g.Tiles()
	if len(tiles) != 2 || tiles[0].Index != 2 || tiles[1].Index != 0 {
		t.Fatalf("tiles do not follow display order")
	}

	test.Tap(tiles[0])
	if len(toggled) != 1 || toggled[0] != 2 {
		t.Errorf("toggled = %v, want [2]", toggled)
	}

	records[2].Selected = true
	g.RefreshSelection()
	if !tiles[0].Selected() {
		t.Error("tile for a selected record is not selected")
	}
}

func TestGallerySetOptionsIsSilent(t *testing.T) {
	test.NewTempApp(t)

	g := NewGalleryPanel(nil, nil, []string{"low", "medium", "high"})
	fired := false
	g.SetQualityHandler(func(string) { fired = true })
	g.SetAutoProcessingHandler(func(bool) { fired = true })

	g.SetOptions("medium", false)
	if fired {
		t.Error("SetOptions fired a handler")
	}
	if g.qualitySelect.Selected != "medium" {
		t.Errorf("quality = %q, want medium", g.qualitySelect.Selected)
	}

	g.qualitySelect.SetSelected("low")
	if !fired {
		t.Error("user selection did not fire the quality handler")
	}
}

func TestEditorPanel(t *testing.T) {
	test.NewTempApp(t)

	e := NewEditorPanel()
	if !strings.Contains(e.PreviewText(), "No image selected") {
		t.Errorf("PreviewText() = %q, want placeholder", e.PreviewText())
	}

	var adjusted []string
	e.SetAdjustHandler(func(name string, _ int) { adjusted = append(adjusted, name) })

	r := models.NewImageRecord("/a/one.jpg", nil)
	if err := r.SetAdjustment("clarity", 30); err != nil {
		t.Fatalf("SetAdjustment: %v", err)
	}
	e.SetCurrentImage(r)

	if got := e.Slider("clarity").Value(); got != 30 {
		t.Errorf("clarity slider = %d, want 30", got)
	}
	if !strings.Contains(e.PreviewText(), "one.jpg") {
		t.Errorf("PreviewText() = %q, want the image name", e.PreviewText())
	}
	if len(adjusted) != 0 {
		t.Errorf("loading an image fired adjustments %v", adjusted)
	}

	e.Slider("contrast").Commit(5)
	if len(adjusted) != 1 || adjusted[0] != "contrast" {
		t.Errorf("adjusted = %v, want [contrast]", adjusted)
	}
}

func TestHuePanel(t *testing.T) {
	test.NewTempApp(t)

	h := NewHuePanel()
	h.SetPreviewQuality("low")

	r := models.NewImageRecord("/a/one.jpg", nil)
	if err := r.SetAdjustment("hue", -90); err != nil {
		t.Fatalf("SetAdjustment: %v", err)
	}
	h.SetCurrentImage(r)

	want := "one.jpg\nHue: -90°\nQuality: low"
	if got := h.PreviewText(); got != want {
		t.Errorf("PreviewText() = %q, want %q", got, want)
	}
}

func TestColumnsClampRatio(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0.3, 0.3},
		{-1, 0},
		{2, 1},
	}
	for _, tt := range tests {
		if got := clampRatio(tt.in); got != tt.want {
			t.Errorf("clampRatio(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
