// Package backend defines the data-producing facade the viewer talks to and a
// mock implementation that fabricates every result.
package backend

import (
	"context"
	"errors"
	"time"
)

// ErrNotAuthenticated is returned by calls made before Authenticate.
var ErrNotAuthenticated = errors.New("backend session not authenticated")

// Result is the outcome of an adjustment for a single image.
type Result struct {
	Path string
	Err  error
}

// Facade is every operation that produces or persists data.
type Facade interface {
	Authenticate(ctx context.Context, username string) (string, error)
	Scan(ctx context.Context, dir string) ([]string, error)
	Metadata(ctx context.Context, path string) (map[string]interface{}, error)
	Apply(ctx context.Context, path string, params map[string]int) error
	ApplyBatch(ctx context.Context, paths []string, settings map[string]int) ([]Result, error)
	Save(ctx context.Context, path string, adjustments map[string]int, dest string) (string, error)
	Presets(ctx context.Context) (map[string]map[string]int, error)
	SavePreset(ctx context.Context, name string, params map[string]int) error
	FindSimilar(ctx context.Context, path string, threshold float64) ([]string, error)
}

// Observer receives one notification per facade call.
type Observer interface {
	ObserveBackend(op string, elapsed time.Duration, err error)
}

type observed struct {
	next     Facade
	observer Observer
}

// WithObserver wraps f so every call is reported to o.
func WithObserver(f Facade, o Observer) Facade {
	if o == nil {
		return f
	}
	return &observed{next: f, observer: o}
}

func (o *observed) track(op string, start time.Time, err error) {
	o.observer.ObserveBackend(op, time.Since(start), err)
}

func (o *observed) Authenticate(ctx context.Context, username string) (string, error) {
	start := time.Now()
	token, err := o.next.Authenticate(ctx, username)
	o.track("authenticate", start, err)
	return token, err
}

func (o *observed) Scan(ctx context.Context, dir string) ([]string, error) {
	start := time.Now()
	paths, err := o.next.Scan(ctx, dir)
	o.track("scan", start, err)
	return paths, err
}

func (o *observed) Metadata(ctx context.Context, path string) (map[string]interface{}, error) {
	start := time.Now()
	md, err := o.next.Metadata(ctx, path)
	o.track("metadata", start, err)
	return md, err
}

func (o *observed) Apply(ctx context.Context, path string, params map[string]int) error {
	start := time.Now()
	err := o.next.Apply(ctx, path, params)
	o.track("apply", start, err)
	return err
}

func (o *observed) ApplyBatch(ctx context.Context, paths []string, settings map[string]int) ([]Result, error) {
	start := time.Now()
	results, err := o.next.ApplyBatch(ctx, paths, settings)
	o.track("apply_batch", start, err)
	return results, err
}

func (o *observed) Save(ctx context.Context, path string, adjustments map[string]int, dest string) (string, error) {
	start := time.Now()
	out, err := o.next.Save(ctx, path, adjustments, dest)
	o.track("save", start, err)
	return out, err
}

func (o *observed) Presets(ctx context.Context) (map[string]map[string]int, error) {
	start := time.Now()
	presets, err := o.next.Presets(ctx)
	o.track("presets", start, err)
	return presets, err
}

func (o *observed) SavePreset(ctx context.Context, name string, params map[string]int) error {
	start := time.Now()
	err := o.next.SavePreset(ctx, name, params)
	o.track("save_preset", start, err)
	return err
}

func (o *observed) FindSimilar(ctx context.Context, path string, threshold float64) ([]string, error) {
	start := time.Now()
	paths, err := o.next.FindSimilar(ctx, path, threshold)
	o.track("find_similar", start, err)
	return paths, err
}
