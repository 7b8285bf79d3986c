package workflow

import (
	"context"
	"errors"
	"fmt"

	"headshot-viewer/internal/models"
)

var (
	ErrUnknownPreset    = errors.New("unknown preset")
	ErrInvalidParameter = models.ErrInvalidParameter
	ErrIndexOutOfBounds = errors.New("index out of bounds")
	ErrBackend          = errors.New("backend error")
	ErrBackendTimeout   = errors.New("backend timeout")
	ErrNoCurrentImage   = errors.New("no current image")
	ErrSuperseded       = errors.New("superseded by a newer collection")
)

// BackendError wraps a facade failure for one image, or for a whole call
// when Path is empty.
type BackendError struct {
	Op   string
	Path string
	Err  error
}

func (e *BackendError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// Is matches ErrBackend always and ErrBackendTimeout when the call ran out
// of time.
func (e *BackendError) Is(target error) bool {
	switch target {
	case ErrBackend:
		return true
	case ErrBackendTimeout:
		return errors.Is(e.Err, context.DeadlineExceeded)
	default:
		return false
	}
}

func backendError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &BackendError{Op: op, Path: path, Err: err}
}

// Outcome is the result of an operation for one image.
type Outcome struct {
	Path string
	Err  error
}

// Report collects per-image outcomes of an apply or batch operation.
type Report struct {
	Op      string
	Results []Outcome
	// Stale is set when the collection was replaced while the operation ran;
	// no results were merged.
	Stale bool
}

func (r Report) Succeeded() []string {
	var out []string
	for _, o := range r.Results {
		if o.Err == nil {
			out = append(out, o.Path)
		}
	}
	return out
}

func (r Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Results {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// Err joins every failure, or returns nil when all succeeded.
func (r Report) Err() error {
	var errs []error
	for _, o := range r.Results {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	if r.Stale {
		errs = append(errs, ErrSuperseded)
	}
	return errors.Join(errs...)
}
