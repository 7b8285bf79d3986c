// Package workflow owns the loaded image collection, the selection and the
// current image, and turns user intents into backend calls.
//
// Every exported method must be called from the UI goroutine. Backend calls
// run on their own goroutines and their completions are posted back through
// the Scheduler, so listeners and done callbacks also run on the UI
// goroutine.
package workflow

import (
	"context"
	"sync"
	"time"

	"headshot-viewer/internal/backend"
	"headshot-viewer/internal/logger"
	"headshot-viewer/internal/models"
	"headshot-viewer/internal/presets"
	"headshot-viewer/internal/settings"
)

// Scheduler runs f on the UI goroutine.
type Scheduler func(f func())

// Settings is the subset of the settings store the coordinator reads and
// writes.
type Settings interface {
	BatchSize() int
	APITimeout() time.Duration
	AutoSave() bool
	Set(key string, value interface{}) error
}

// Recorder receives operation outcomes and collection gauges.
type Recorder interface {
	ObserveOperation(op string, err error)
	SetCollectionSize(n int)
	SetSelectionSize(n int)
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithScheduler sets how completions reach the UI goroutine. The default
// runs them inline on the calling goroutine.
func WithScheduler(s Scheduler) Option {
	return func(c *Coordinator) { c.schedule = s }
}

// WithRecorder reports operation outcomes and collection sizes to r.
func WithRecorder(r Recorder) Option {
	return func(c *Coordinator) { c.recorder = r }
}

// Coordinator owns the collection, the selection and the current image.
type Coordinator struct {
	facade   backend.Facade
	catalog  *presets.Catalog
	settings Settings
	logger   logger.Logger
	schedule Scheduler
	recorder Recorder

	collection []*models.ImageRecord
	current    *models.ImageRecord
	listeners  map[EventType][]Listener

	// generation changes only when the collection is replaced; loads
	// changes when a directory load starts or the collection is replaced.
	generation uint64
	loads      uint64

	ctx     context.Context
	cancel  context.CancelFunc
	pending sync.WaitGroup
}

// New returns a coordinator with an empty collection.
func New(facade backend.Facade, catalog *presets.Catalog, store Settings, log logger.Logger, opts ...Option) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Coordinator{
		facade:    facade,
		catalog:   catalog,
		settings:  store,
		logger:    log,
		schedule:  func(f func()) { f() },
		listeners: make(map[EventType][]Listener),
		ctx:       ctx,
		cancel:    cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Shutdown cancels in-flight backend calls and waits for their goroutines.
func (c *Coordinator) Shutdown() {
	c.cancel()
	c.pending.Wait()
	c.logger.Info("Workflow", "coordinator stopped", nil)
}

// LoadCollection replaces the collection, clears selection and the current
// image, and invalidates every operation still in flight.
func (c *Coordinator) LoadCollection(records []*models.ImageRecord) {
	c.generation++
	c.loads++
	c.collection = make([]*models.ImageRecord, len(records))
	copy(c.collection, records)
	for _, r := range c.collection {
		r.Selected = false
	}

	hadCurrent := c.current != nil
	c.current = nil

	c.logger.Info("Workflow", "collection loaded", map[string]interface{}{
		"count":      len(c.collection),
		"generation": c.generation,
	})
	c.recordCollection()

	c.emit(Event{Type: CollectionLoaded})
	c.emit(Event{Type: SelectionChanged})
	if hadCurrent {
		c.emit(Event{Type: CurrentChanged})
	}
}

// ToggleSelect selects the record at index. Without multi every other
// record is deselected; with multi only index flips. An out-of-range index
// is logged and ignored.
func (c *Coordinator) ToggleSelect(index int, multi bool) {
	if index < 0 || index >= len(c.collection) {
		c.logger.Warning("Workflow", ErrIndexOutOfBounds.Error(), map[string]interface{}{
			"index": index,
			"count": len(c.collection),
		})
		return
	}

	if multi {
		r := c.collection[index]
		r.Selected = !r.Selected
	} else {
		for i, r := range c.collection {
			r.Selected = i == index
		}
	}

	c.recordSelection()
	c.emit(Event{Type: SelectionChanged, Record: c.collection[index]})
}

// CurrentSelection returns the selected records in collection order.
func (c *Coordinator) CurrentSelection() []*models.ImageRecord {
	var out []*models.ImageRecord
	for _, r := range c.collection {
		if r.Selected {
			out = append(out, r)
		}
	}
	return out
}

// PropagateCurrent makes a record the current image of the editor panels.
// A negative index means the first selected record. When auto_save is on a
// dirty current image is saved before it is replaced.
func (c *Coordinator) PropagateCurrent(index int) {
	next := c.resolve(index)
	if next == nil || next == c.current {
		return
	}

	prev := c.current
	if prev != nil && prev.Dirty && c.settings.AutoSave() {
		c.autoSave(prev)
	}

	c.current = next
	c.logger.Debug("Workflow", "current image changed", map[string]interface{}{"path": next.Path})
	c.emit(Event{Type: CurrentChanged, Record: next})
}

func (c *Coordinator) resolve(index int) *models.ImageRecord {
	if len(c.collection) == 0 {
		return nil
	}
	if index < 0 {
		for _, r := range c.collection {
			if r.Selected {
				return r
			}
		}
		return nil
	}
	if index >= len(c.collection) {
		c.logger.Warning("Workflow", ErrIndexOutOfBounds.Error(), map[string]interface{}{
			"index": index,
			"count": len(c.collection),
		})
		return nil
	}
	return c.collection[index]
}

// Collection returns the loaded records in collection order.
func (c *Coordinator) Collection() []*models.ImageRecord {
	out := make([]*models.ImageRecord, len(c.collection))
	copy(out, c.collection)
	return out
}

// Len returns the number of loaded records.
func (c *Coordinator) Len() int { return len(c.collection) }

// Record returns the record at index and whether index is in range.
func (c *Coordinator) Record(index int) (*models.ImageRecord, bool) {
	if index < 0 || index >= len(c.collection) {
		return nil, false
	}
	return c.collection[index], true
}

// Current returns the image shown by the editor panels, or nil.
func (c *Coordinator) Current() *models.ImageRecord { return c.current }

// HasSelection reports whether any record is selected.
func (c *Coordinator) HasSelection() bool {
	for _, r := range c.collection {
		if r.Selected {
			return true
		}
	}
	return false
}

// Presets lists the catalog's preset names.
func (c *Coordinator) Presets() []string {
	return c.catalog.List()
}

func (c *Coordinator) contains(r *models.ImageRecord) bool {
	for _, x := range c.collection {
		if x == r {
			return true
		}
	}
	return false
}

// background runs work on a new goroutine and schedules the function it
// returns on the UI goroutine.
func (c *Coordinator) background(work func() func()) {
	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		complete := work()
		if complete != nil {
			c.schedule(complete)
		}
	}()
}

// callContext bounds a single backend call by the api_timeout setting.
func (c *Coordinator) callContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.ctx, c.settings.APITimeout())
}

func (c *Coordinator) fail(op string, err error) {
	c.logger.Error("Workflow", err, map[string]interface{}{"op": op})
	c.emit(Event{Type: OperationFailed, Op: op, Err: err})
}

func (c *Coordinator) observe(op string, err error) {
	if c.recorder != nil {
		c.recorder.ObserveOperation(op, err)
	}
}

func (c *Coordinator) recordCollection() {
	if c.recorder != nil {
		c.recorder.SetCollectionSize(len(c.collection))
		c.recorder.SetSelectionSize(0)
	}
}

func (c *Coordinator) recordSelection() {
	if c.recorder != nil {
		c.recorder.SetSelectionSize(len(c.CurrentSelection()))
	}
}

var _ Settings = (*settings.Store)(nil)
