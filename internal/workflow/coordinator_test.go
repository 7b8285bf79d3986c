package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"headshot-viewer/internal/backend"
	"headshot-viewer/internal/logger"
	"headshot-viewer/internal/models"
	"headshot-viewer/internal/presets"
	"headshot-viewer/internal/settings"
)

// loop stands in for the UI goroutine: completions queue up until the test
// runs them.
type loop struct {
	ch chan func()
}

func newLoop() *loop {
	return &loop{ch: make(chan func(), 64)}
}

func (l *loop) post(f func()) {
	l.ch <- f
}

func (l *loop) step(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case f := <-l.ch:
			f()
		case <-time.After(3 * time.Second):
			t.Fatalf("timed out waiting for completion %d of %d", i+1, n)
		}
	}
}

type fakeSettings struct {
	mu       sync.Mutex
	batch    int
	timeout  time.Duration
	autoSave bool
	written  map[string]interface{}
}

func (f *fakeSettings) BatchSize() int            { return f.batch }
func (f *fakeSettings) APITimeout() time.Duration { return f.timeout }
func (f *fakeSettings) AutoSave() bool            { return f.autoSave }

func (f *fakeSettings) Set(key string, value interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.written == nil {
		f.written = make(map[string]interface{})
	}
	f.written[key] = value
	return nil
}

type fixture struct {
	c       *Coordinator
	mock    *backend.Mock
	catalog *presets.Catalog
	loop    *loop
}

func newFixture(t *testing.T, store Settings) *fixture {
	t.Helper()

	mock, err := backend.NewMock(logger.NoOp{}, backend.WithFileCount(6))
	if err != nil {
		t.Fatalf("NewMock: %v", err)
	}
	if _, err := mock.Authenticate(context.Background(), "tester"); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	seed, err := mock.Presets(context.Background())
	if err != nil {
		t.Fatalf("Presets: %v", err)
	}
	catalog := presets.NewCatalog()
	if err := catalog.Replace(seed); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	if store == nil {
		s, err := settings.Open(settings.NewMemory(), logger.NoOp{})
		if err != nil {
			t.Fatalf("settings.Open: %v", err)
		}
		store = s
	}

	l := newLoop()
	c := New(mock, catalog, store, logger.NoOp{}, WithScheduler(l.post))
	t.Cleanup(c.Shutdown)

	return &fixture{c: c, mock: mock, catalog: catalog, loop: l}
}

func records(n int) []*models.ImageRecord {
	out := make([]*models.ImageRecord, n)
	for i := range out {
		out[i] = models.NewImageRecord(fmt.Sprintf("/p/img_%d.jpg", i), nil)
	}
	return out
}

func selectedPaths(c *Coordinator) []string {
	return pathsOf(c.CurrentSelection())
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLoadCollectionClearsSelectionAndCurrent(t *testing.T) {
	f := newFixture(t, nil)
	recs := records(3)
	recs[1].Selected = true
	f.c.LoadCollection(recs)

	if f.c.HasSelection() {
		t.Error("selection survived LoadCollection")
	}

	f.c.ToggleSelect(2, false)
	f.c.PropagateCurrent(-1)
	if f.c.Current() != recs[2] {
		t.Fatalf("Current = %v, want record 2", f.c.Current())
	}

	f.c.LoadCollection(records(2))
	if f.c.Current() != nil {
		t.Error("current survived LoadCollection")
	}
	if f.c.HasSelection() {
		t.Error("selection survived second LoadCollection")
	}

	f.c.LoadCollection(nil)
	if f.c.Len() != 0 {
		t.Errorf("Len = %d, want 0", f.c.Len())
	}
}

func TestToggleSelect(t *testing.T) {
	f := newFixture(t, nil)
	f.c.LoadCollection(records(3))

	f.c.ToggleSelect(1, false)
	if got := selectedPaths(f.c); !equalStrings(got, []string{"/p/img_1.jpg"}) {
		t.Fatalf("after single select: %v", got)
	}

	f.c.ToggleSelect(2, true)
	if got := selectedPaths(f.c); !equalStrings(got, []string{"/p/img_1.jpg", "/p/img_2.jpg"}) {
		t.Fatalf("after multi select: %v", got)
	}

	f.c.ToggleSelect(1, true)
	if got := selectedPaths(f.c); !equalStrings(got, []string{"/p/img_2.jpg"}) {
		t.Fatalf("after multi deselect: %v", got)
	}

	f.c.ToggleSelect(0, false)
	if got := selectedPaths(f.c); !equalStrings(got, []string{"/p/img_0.jpg"}) {
		t.Fatalf("single select did not clear others: %v", got)
	}
}

func TestToggleSelectOutOfBoundsIsIgnored(t *testing.T) {
	f := newFixture(t, nil)
	f.c.LoadCollection(records(3))
	f.c.ToggleSelect(0, false)

	fired := 0
	f.c.On(SelectionChanged, func(Event) { fired++ })

	f.c.ToggleSelect(5, false)
	f.c.ToggleSelect(-1, true)

	if got := selectedPaths(f.c); !equalStrings(got, []string{"/p/img_0.jpg"}) {
		t.Errorf("selection changed: %v", got)
	}
	if fired != 0 {
		t.Errorf("SelectionChanged fired %d times", fired)
	}
}

func TestApplyPresetUnknownName(t *testing.T) {
	f := newFixture(t, nil)
	recs := records(2)
	f.c.LoadCollection(recs)
	f.c.ToggleSelect(0, false)

	err := f.c.ApplyPreset("Vintage", nil, nil)
	if !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("err = %v, want ErrUnknownPreset", err)
	}
	if len(recs[0].Adjustments) != 0 {
		t.Errorf("adjustments mutated: %v", recs[0].Adjustments)
	}
	if n := f.mock.Calls("apply"); n != 0 {
		t.Errorf("backend apply called %d times", n)
	}
}

func TestApplyPresetMergesIntoSelection(t *testing.T) {
	f := newFixture(t, nil)
	recs := records(3)
	f.c.LoadCollection(recs)
	f.c.ToggleSelect(0, false)
	f.c.ToggleSelect(2, true)
	recs[0].Adjustments["hue"] = 40

	var report Report
	if err := f.c.ApplyPreset("Portrait Enhance", nil, func(r Report) { report = r }); err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}
	f.loop.step(t, 1)

	if err := report.Err(); err != nil {
		t.Fatalf("report error: %v", err)
	}
	if n := f.mock.Calls("apply"); n != 2 {
		t.Errorf("backend apply called %d times, want 2", n)
	}

	want := map[string]int{"brightness": 10, "contrast": 15, "saturation": 5}
	for _, i := range []int{0, 2} {
		for k, v := range want {
			if recs[i].Adjustments[k] != v {
				t.Errorf("record %d %s = %d, want %d", i, k, recs[i].Adjustments[k], v)
			}
		}
	}
	if recs[0].Adjustments["hue"] != 40 {
		t.Error("merge dropped an unrelated adjustment")
	}
	if len(recs[1].Adjustments) != 0 {
		t.Errorf("unselected record changed: %v", recs[1].Adjustments)
	}
}

func TestApplyPresetReportsPerRecordFailure(t *testing.T) {
	f := newFixture(t, nil)
	recs := records(2)
	f.c.LoadCollection(recs)
	f.mock.FailPath(recs[1].Path, errors.New("render failed"))

	var failed []Event
	f.c.On(OperationFailed, func(e Event) { failed = append(failed, e) })

	var report Report
	if err := f.c.ApplyPreset("Studio Light", recs, func(r Report) { report = r }); err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}
	f.loop.step(t, 1)

	if got := report.Succeeded(); !equalStrings(got, []string{recs[0].Path}) {
		t.Errorf("Succeeded = %v", got)
	}
	fails := report.Failed()
	if len(fails) != 1 || !errors.Is(fails[0].Err, ErrBackend) {
		t.Fatalf("Failed = %v", fails)
	}
	var be *BackendError
	if !errors.As(fails[0].Err, &be) || be.Path != recs[1].Path {
		t.Errorf("failure not attributed to %s: %v", recs[1].Path, fails[0].Err)
	}
	if recs[0].Adjustments["warmth"] != 8 {
		t.Error("successful record not merged")
	}
	if len(recs[1].Adjustments) != 0 {
		t.Error("failed record merged")
	}
	if len(failed) != 1 {
		t.Errorf("OperationFailed fired %d times, want 1", len(failed))
	}
}

func TestApplyPresetAfterCollectionReplacedIsStale(t *testing.T) {
	f := newFixture(t, nil)
	recs := records(2)
	f.c.LoadCollection(recs)

	var report Report
	if err := f.c.ApplyPreset("Natural Look", recs, func(r Report) { report = r }); err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}
	f.c.LoadCollection(records(4))
	f.loop.step(t, 1)

	if !report.Stale {
		t.Error("report not marked stale")
	}
	if !errors.Is(report.Err(), ErrSuperseded) {
		t.Errorf("Err = %v, want ErrSuperseded", report.Err())
	}
	if len(recs[0].Adjustments) != 0 {
		t.Error("stale result merged into old record")
	}
}

func TestSubmitBatchRejectsInvalidSettings(t *testing.T) {
	f := newFixture(t, nil)
	recs := records(2)
	f.c.LoadCollection(recs)

	err := f.c.SubmitBatch(map[string]int{"contrast": 250}, recs, nil)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
	if n := f.mock.Calls("apply_batch"); n != 0 {
		t.Errorf("backend called %d times", n)
	}
	if len(recs[0].Adjustments) != 0 {
		t.Error("record mutated")
	}
}

func TestSubmitBatchEmptyTargets(t *testing.T) {
	f := newFixture(t, nil)
	f.c.LoadCollection(records(2))

	called := false
	if err := f.c.SubmitBatch(map[string]int{"contrast": 20}, nil, func(r Report) {
		called = true
		if len(r.Results) != 0 {
			t.Errorf("Results = %v, want none", r.Results)
		}
	}); err != nil {
		t.Fatalf("SubmitBatch: %v", err)
	}
	f.loop.step(t, 1)

	if !called {
		t.Error("done not called")
	}
	if n := f.mock.Calls("apply_batch"); n != 0 {
		t.Errorf("backend called %d times for empty targets", n)
	}
}

func TestSubmitBatchChunksByBatchSize(t *testing.T) {
	store := &fakeSettings{batch: 2, timeout: time.Second, autoSave: true}
	f := newFixture(t, store)
	recs := records(5)
	f.c.LoadCollection(recs)
	f.mock.FailPath(recs[3].Path, errors.New("locked"))

	var progress [][2]int
	f.c.On(BatchProgress, func(e Event) { progress = append(progress, [2]int{e.Done, e.Total}) })

	var report Report
	if err := f.c.SubmitBatch(map[string]int{"clarity": 12}, recs, func(r Report) { report = r }); err != nil {
		t.Fatalf("SubmitBatch: %v", err)
	}
	f.loop.step(t, 4)

	want := [][2]int{{2, 5}, {4, 5}, {5, 5}}
	if len(progress) != len(want) {
		t.Fatalf("progress = %v, want %v", progress, want)
	}
	for i := range want {
		if progress[i] != want[i] {
			t.Errorf("progress %d = %v, want %v", i, progress[i], want[i])
		}
	}
	if n := f.mock.Calls("apply_batch"); n != 3 {
		t.Errorf("apply_batch calls = %d, want 3", n)
	}
	if len(report.Results) != 5 {
		t.Fatalf("Results = %d, want 5", len(report.Results))
	}
	if len(report.Failed()) != 1 || report.Failed()[0].Path != recs[3].Path {
		t.Errorf("Failed = %v", report.Failed())
	}
	for i, r := range recs {
		want := 12
		if i == 3 {
			want = 0
		}
		if r.Adjustments["clarity"] != want {
			t.Errorf("record %d clarity = %d, want %d", i, r.Adjustments["clarity"], want)
		}
	}
}

func TestBackendTimeout(t *testing.T) {
	store := &fakeSettings{batch: 10, timeout: 20 * time.Millisecond}
	f := newFixture(t, store)
	f.mock.SetLatency(time.Second)
	recs := records(1)
	f.c.LoadCollection(recs)

	var report Report
	if err := f.c.ApplyPreset("Natural Look", recs, func(r Report) { report = r }); err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}
	f.loop.step(t, 1)

	err := report.Err()
	if !errors.Is(err, ErrBackendTimeout) {
		t.Errorf("err = %v, want ErrBackendTimeout", err)
	}
	if !errors.Is(err, ErrBackend) {
		t.Errorf("err = %v, want ErrBackend", err)
	}
	if len(recs[0].Adjustments) != 0 {
		t.Error("timed out record merged")
	}
}

func TestAdjustLive(t *testing.T) {
	f := newFixture(t, nil)
	recs := records(1)
	f.c.LoadCollection(recs)
	r := recs[0]

	if err := f.c.AdjustLive(r, "hue", 200, nil); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
	if _, ok := r.Adjustments["hue"]; ok {
		t.Fatal("invalid value written")
	}

	f.mock.FailPath(r.Path, errors.New("offline"))
	var got error
	if err := f.c.AdjustLive(r, "hue", -120, func(err error) { got = err }); err != nil {
		t.Fatalf("AdjustLive: %v", err)
	}
	if r.Adjustments["hue"] != -120 {
		t.Errorf("hue = %d before completion, want -120", r.Adjustments["hue"])
	}
	f.loop.step(t, 1)

	if !errors.Is(got, ErrBackend) {
		t.Errorf("done err = %v, want ErrBackend", got)
	}
	if r.Adjustments["hue"] != -120 {
		t.Error("backend failure rolled back the adjustment")
	}

	if err := f.c.AdjustLive(nil, "hue", 0, nil); !errors.Is(err, ErrNoCurrentImage) {
		t.Errorf("nil record err = %v", err)
	}
}

func TestPropagateCurrent(t *testing.T) {
	f := newFixture(t, nil)

	f.c.PropagateCurrent(-1)
	if f.c.Current() != nil {
		t.Fatal("current set on empty collection")
	}

	recs := records(3)
	f.c.LoadCollection(recs)

	var changes []*models.ImageRecord
	f.c.On(CurrentChanged, func(e Event) { changes = append(changes, e.Record) })

	f.c.PropagateCurrent(-1)
	if f.c.Current() != nil {
		t.Error("current set with nothing selected")
	}

	f.c.ToggleSelect(1, false)
	f.c.ToggleSelect(2, true)
	f.c.PropagateCurrent(-1)
	if f.c.Current() != recs[1] {
		t.Errorf("Current = %v, want first selected", f.c.Current())
	}

	f.c.PropagateCurrent(-1)
	f.c.PropagateCurrent(2)
	if f.c.Current() != recs[2] {
		t.Errorf("Current = %v, want record 2", f.c.Current())
	}
	if len(changes) != 2 {
		t.Errorf("CurrentChanged fired %d times, want 2", len(changes))
	}

	f.c.PropagateCurrent(9)
	if f.c.Current() != recs[2] {
		t.Error("out of range index changed current")
	}
}

func TestPropagateCurrentAutoSavesDirtyImage(t *testing.T) {
	store := &fakeSettings{batch: 10, timeout: time.Second, autoSave: true}
	f := newFixture(t, store)
	recs := records(2)
	f.c.LoadCollection(recs)

	f.c.PropagateCurrent(0)
	if err := f.c.AdjustLive(recs[0], "exposure", 30, nil); err != nil {
		t.Fatalf("AdjustLive: %v", err)
	}
	f.loop.step(t, 1)

	f.c.PropagateCurrent(1)
	f.loop.step(t, 1)

	if n := f.mock.Calls("save"); n != 1 {
		t.Errorf("save calls = %d, want 1", n)
	}
	if recs[0].Dirty {
		t.Error("record still dirty after auto-save")
	}
}

func TestPropagateCurrentWithoutAutoSave(t *testing.T) {
	store := &fakeSettings{batch: 10, timeout: time.Second, autoSave: false}
	f := newFixture(t, store)
	recs := records(2)
	f.c.LoadCollection(recs)

	f.c.PropagateCurrent(0)
	_ = recs[0].SetAdjustment("exposure", 30)
	f.c.PropagateCurrent(1)

	if n := f.mock.Calls("save"); n != 0 {
		t.Errorf("save calls = %d, want 0", n)
	}
	if !recs[0].Dirty {
		t.Error("dirty flag cleared without saving")
	}
}

func TestLoadDirectory(t *testing.T) {
	store := &fakeSettings{batch: 10, timeout: time.Second}
	f := newFixture(t, store)

	var loaded int
	f.c.On(CollectionLoaded, func(Event) { loaded++ })

	var got error = errors.New("not called")
	f.c.LoadDirectory("/photos", func(err error) { got = err })
	f.loop.step(t, 1)

	if got != nil {
		t.Fatalf("done err = %v", got)
	}
	if f.c.Len() != 6 {
		t.Errorf("Len = %d, want 6", f.c.Len())
	}
	if loaded != 1 {
		t.Errorf("CollectionLoaded fired %d times", loaded)
	}
	if store.written[settings.KeyLastDirectory] != "/photos" {
		t.Errorf("last_directory = %v", store.written[settings.KeyLastDirectory])
	}
	r, _ := f.c.Record(0)
	if r.Metadata["camera_model"] != "Canon EOS R5" {
		t.Errorf("metadata not attached: %v", r.Metadata)
	}
}

func TestLoadDirectoryDropsStaleResult(t *testing.T) {
	f := newFixture(t, nil)

	var first, second error
	f.c.LoadDirectory("/old", func(err error) { first = err })
	f.c.LoadDirectory("/new", func(err error) { second = err })
	f.loop.step(t, 2)

	if !errors.Is(first, ErrSuperseded) {
		t.Errorf("first load err = %v, want ErrSuperseded", first)
	}
	if second != nil {
		t.Errorf("second load err = %v", second)
	}
	r, ok := f.c.Record(0)
	if !ok || r.Path != "/new/headshot_001.jpg" {
		t.Errorf("collection not from /new: %v", r)
	}
}

func TestLoadDirectoryScanFailure(t *testing.T) {
	f := newFixture(t, nil)
	f.c.LoadCollection(records(2))
	f.mock.FailOp("scan", errors.New("permission denied"))

	var failed Event
	f.c.On(OperationFailed, func(e Event) { failed = e })

	var got error
	f.c.LoadDirectory("/locked", func(err error) { got = err })
	f.loop.step(t, 1)

	if !errors.Is(got, ErrBackend) {
		t.Errorf("err = %v, want ErrBackend", got)
	}
	if failed.Op != "load_directory" {
		t.Errorf("OperationFailed op = %q", failed.Op)
	}
	if f.c.Len() != 2 {
		t.Errorf("failed load replaced collection: Len = %d", f.c.Len())
	}
}

func TestFailedLoadKeepsApplyResults(t *testing.T) {
	f := newFixture(t, nil)
	recs := records(2)
	f.c.LoadCollection(recs)
	f.c.ToggleSelect(0, false)
	f.mock.FailOp("scan", errors.New("permission denied"))

	var report Report
	if err := f.c.ApplyPreset("Studio Light", nil, func(r Report) { report = r }); err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}
	f.c.LoadDirectory("/locked", nil)
	f.loop.step(t, 2)

	if report.Stale {
		t.Error("apply marked stale although the collection was not replaced")
	}
	if err := report.Err(); err != nil {
		t.Errorf("report err = %v", err)
	}
	if got := recs[0].Adjustment("brightness"); got != 20 {
		t.Errorf("brightness = %d, want 20", got)
	}
	if r, _ := f.c.Record(0); r != recs[0] {
		t.Error("collection replaced by a failed load")
	}
}

func TestSaveCurrentAndFindSimilar(t *testing.T) {
	f := newFixture(t, nil)

	if err := f.c.SaveCurrent("", nil); !errors.Is(err, ErrNoCurrentImage) {
		t.Errorf("SaveCurrent err = %v", err)
	}
	if err := f.c.FindSimilar(0.8, nil); !errors.Is(err, ErrNoCurrentImage) {
		t.Errorf("FindSimilar err = %v", err)
	}

	recs := records(1)
	f.c.LoadCollection(recs)
	f.c.PropagateCurrent(0)
	_ = recs[0].SetAdjustment("whites", 15)

	var saved string
	if err := f.c.SaveCurrent("", func(out string, err error) {
		if err != nil {
			t.Errorf("save: %v", err)
		}
		saved = out
	}); err != nil {
		t.Fatalf("SaveCurrent: %v", err)
	}
	f.loop.step(t, 1)
	if saved != "/p/img_0_edited.jpg" {
		t.Errorf("saved = %q", saved)
	}
	if recs[0].Dirty {
		t.Error("record dirty after save")
	}

	var similar []string
	if err := f.c.FindSimilar(0.8, func(paths []string, err error) { similar = paths }); err != nil {
		t.Fatalf("FindSimilar: %v", err)
	}
	f.loop.step(t, 1)
	if len(similar) != 3 {
		t.Errorf("similar = %v, want 3 paths", similar)
	}
}

func TestResetCurrent(t *testing.T) {
	f := newFixture(t, nil)
	if err := f.c.ResetCurrent(); !errors.Is(err, ErrNoCurrentImage) {
		t.Errorf("err = %v", err)
	}

	recs := records(1)
	f.c.LoadCollection(recs)
	f.c.PropagateCurrent(0)
	_ = recs[0].Merge(map[string]int{"brightness": 5, "hue": 10})

	if err := f.c.ResetCurrent(); err != nil {
		t.Fatalf("ResetCurrent: %v", err)
	}
	if len(recs[0].Adjustments) != 0 {
		t.Errorf("Adjustments = %v", recs[0].Adjustments)
	}
}

func TestSavePreset(t *testing.T) {
	f := newFixture(t, nil)

	if err := f.c.SavePreset("Broken", map[string]int{"brightness": 900}, nil); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}

	changed := 0
	f.c.On(PresetsChanged, func(Event) { changed++ })

	if err := f.c.SavePreset("Cool Tone", map[string]int{"warmth": -20}, nil); err != nil {
		t.Fatalf("SavePreset: %v", err)
	}
	f.loop.step(t, 1)

	if _, ok := f.catalog.Resolve("Cool Tone"); !ok {
		t.Error("preset missing from catalog")
	}
	if changed != 1 {
		t.Errorf("PresetsChanged fired %d times", changed)
	}
}

func TestListenersRunInRegistrationOrder(t *testing.T) {
	f := newFixture(t, nil)
	var order []string
	f.c.On(CollectionLoaded, func(Event) { order = append(order, "first") })
	f.c.On(CollectionLoaded, func(Event) { order = append(order, "second") })

	f.c.LoadCollection(records(1))

	if !equalStrings(order, []string{"first", "second"}) {
		t.Errorf("order = %v", order)
	}
}

type countingRecorder struct {
	ops        map[string]int
	collection int
	selection  int
}

func (r *countingRecorder) ObserveOperation(op string, _ error) { r.ops[op]++ }
func (r *countingRecorder) SetCollectionSize(n int)             { r.collection = n }
func (r *countingRecorder) SetSelectionSize(n int)              { r.selection = n }

func TestRecorder(t *testing.T) {
	f := newFixture(t, nil)
	rec := &countingRecorder{ops: make(map[string]int)}
	f.c.recorder = rec

	f.c.LoadCollection(records(4))
	f.c.ToggleSelect(0, false)
	f.c.ToggleSelect(3, true)
	_ = f.c.ApplyPreset("missing", nil, nil)

	if rec.collection != 4 || rec.selection != 2 {
		t.Errorf("gauges = %d/%d, want 4/2", rec.collection, rec.selection)
	}
	if rec.ops["apply_preset"] != 1 {
		t.Errorf("apply_preset observed %d times", rec.ops["apply_preset"])
	}
}
