package models

import (
	"path/filepath"
	"strings"
)

// ImageRecord is one image of the loaded collection. Records are owned by the
// workflow coordinator and are only mutated on the UI goroutine.
type ImageRecord struct {
	Path        string
	Metadata    map[string]interface{}
	Selected    bool
	Adjustments map[string]int
	Dirty       bool
}

// NewImageRecord creates an unselected record with no adjustments.
func NewImageRecord(path string, metadata map[string]interface{}) *ImageRecord {
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	return &ImageRecord{
		Path:        path,
		Metadata:    metadata,
		Adjustments: make(map[string]int),
	}
}

// Name returns the file name part of the path.
func (r *ImageRecord) Name() string {
	return filepath.Base(r.Path)
}

// SetAdjustment validates and stores a single adjustment.
func (r *ImageRecord) SetAdjustment(name string, value int) error {
	if err := ValidateParameter(name, value); err != nil {
		return err
	}
	r.Adjustments[name] = value
	r.Dirty = true
	return nil
}

// Merge overwrites the named adjustments, leaving the others untouched.
// Nothing is written unless every entry validates.
func (r *ImageRecord) Merge(params map[string]int) error {
	if err := ValidateParameters(params); err != nil {
		return err
	}
	for name, value := range params {
		r.Adjustments[name] = value
	}
	if len(params) > 0 {
		r.Dirty = true
	}
	return nil
}

// ResetAdjustments drops every adjustment.
func (r *ImageRecord) ResetAdjustments() {
	if len(r.Adjustments) > 0 {
		r.Dirty = true
	}
	r.Adjustments = make(map[string]int)
}

// AdjustmentsCopy returns a snapshot safe to hand to another goroutine.
func (r *ImageRecord) AdjustmentsCopy() map[string]int {
	out := make(map[string]int, len(r.Adjustments))
	for k, v := range r.Adjustments {
		out[k] = v
	}
	return out
}

// Adjustment returns the stored value or zero.
func (r *ImageRecord) Adjustment(name string) int {
	return r.Adjustments[name]
}

// Orientation reports Portrait or Landscape from the width and height
// metadata, or an empty string when either is missing.
func (r *ImageRecord) Orientation() string {
	w, okW := intMetadata(r.Metadata, "width")
	h, okH := intMetadata(r.Metadata, "height")
	if !okW || !okH {
		return ""
	}
	if h > w {
		return OrientationPortrait
	}
	return OrientationLandscape
}

// CreatedDate returns the created_date metadata as a sortable string.
func (r *ImageRecord) CreatedDate() string {
	if v, ok := r.Metadata["created_date"].(string); ok {
		return v
	}
	return ""
}

// FileSize returns the file_size metadata in bytes.
func (r *ImageRecord) FileSize() int64 {
	v, _ := intMetadata(r.Metadata, "file_size")
	return int64(v)
}

const (
	OrientationPortrait  = "Portrait"
	OrientationLandscape = "Landscape"
)

func intMetadata(md map[string]interface{}, key string) (int, bool) {
	switch v := md[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

var supportedExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".webp"}

// SupportedExtensions lists the image file extensions the viewer accepts.
func SupportedExtensions() []string {
	out := make([]string, len(supportedExtensions))
	copy(out, supportedExtensions)
	return out
}

// IsSupportedImage reports whether path has a supported image extension.
func IsSupportedImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range supportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
