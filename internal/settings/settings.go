// Package settings stores the user's persistent preferences. Every write is
// saved immediately.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"headshot-viewer/internal/logger"
)

const (
	KeyLastDirectory  = "last_directory"
	KeyAutoSave       = "auto_save"
	KeyPreviewQuality = "preview_quality"
	KeyBatchSize      = "batch_size"
	KeyAPITimeout     = "api_timeout"
)

var ErrUnknownKey = errors.New("unknown settings key")

var previewQualities = []string{"low", "medium", "high"}

// PreviewQualities lists the accepted preview_quality values.
func PreviewQualities() []string {
	return append([]string(nil), previewQualities...)
}

// Values is a snapshot of every setting.
type Values struct {
	LastDirectory  string
	AutoSave       bool
	PreviewQuality string
	BatchSize      int
	APITimeout     int
}

func Defaults() Values {
	return Values{
		LastDirectory:  "",
		AutoSave:       true,
		PreviewQuality: "high",
		BatchSize:      10,
		APITimeout:     30,
	}
}

type Store struct {
	mu      sync.RWMutex
	backend Backend
	logger  logger.Logger
	values  Values
}

// Open loads persisted values over the defaults. Stored values that are
// unknown or invalid are logged and ignored.
func Open(backend Backend, log logger.Logger) (*Store, error) {
	raw, err := backend.Load()
	if err != nil {
		return nil, err
	}

	s := &Store{backend: backend, logger: log, values: Defaults()}
	for key, data := range raw {
		var v interface{}
		if err := json.Unmarshal(data, &v); err != nil {
			log.Warning("Settings", "discarding undecodable value", map[string]interface{}{"key": key})
			continue
		}
		if err := s.values.set(key, v); err != nil {
			log.Warning("Settings", "discarding stored value", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	log.Info("Settings", "settings loaded", map[string]interface{}{"stored_keys": len(raw)})
	return s, nil
}

// Set validates value for key, persists it and then updates the snapshot.
func (s *Store) Set(key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.values
	if err := next.set(key, value); err != nil {
		return err
	}

	data, err := json.Marshal(next.get(key))
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", key, err)
	}
	if err := s.backend.Put(key, data); err != nil {
		return err
	}

	s.values = next
	s.logger.Debug("Settings", "setting saved", map[string]interface{}{"key": key, "value": next.get(key)})
	return nil
}

func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := s.values.get(key)
	return v, v != nil
}

func (s *Store) Values() Values {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values
}

func (s *Store) LastDirectory() string  { return s.Values().LastDirectory }
func (s *Store) AutoSave() bool         { return s.Values().AutoSave }
func (s *Store) PreviewQuality() string { return s.Values().PreviewQuality }
func (s *Store) BatchSize() int         { return s.Values().BatchSize }

// APITimeout returns api_timeout as a duration.
func (s *Store) APITimeout() time.Duration {
	return time.Duration(s.Values().APITimeout) * time.Second
}

func (s *Store) Close() error {
	return s.backend.Close()
}

func (v *Values) get(key string) interface{} {
	switch key {
	case KeyLastDirectory:
		return v.LastDirectory
	case KeyAutoSave:
		return v.AutoSave
	case KeyPreviewQuality:
		return v.PreviewQuality
	case KeyBatchSize:
		return v.BatchSize
	case KeyAPITimeout:
		return v.APITimeout
	default:
		return nil
	}
}

func (v *Values) set(key string, value interface{}) error {
	switch key {
	case KeyLastDirectory:
		s, ok := value.(string)
		if !ok {
			return typeError(key, "string", value)
		}
		v.LastDirectory = s
	case KeyAutoSave:
		b, ok := value.(bool)
		if !ok {
			return typeError(key, "bool", value)
		}
		v.AutoSave = b
	case KeyPreviewQuality:
		s, ok := value.(string)
		if !ok {
			return typeError(key, "string", value)
		}
		if !contains(previewQualities, s) {
			return fmt.Errorf("%s must be one of %v, got %q", key, previewQualities, s)
		}
		v.PreviewQuality = s
	case KeyBatchSize:
		n, ok := toInt(value)
		if !ok {
			return typeError(key, "integer", value)
		}
		if n < 1 {
			return fmt.Errorf("%s must be at least 1, got %d", key, n)
		}
		v.BatchSize = n
	case KeyAPITimeout:
		n, ok := toInt(value)
		if !ok {
			return typeError(key, "integer", value)
		}
		if n < 1 {
			return fmt.Errorf("%s must be at least 1 second, got %d", key, n)
		}
		v.APITimeout = n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

func typeError(key, want string, got interface{}) error {
	return fmt.Errorf("%s must be a %s, got %T", key, want, got)
}

// toInt accepts whole float64 values because JSON decodes numbers that way.
func toInt(value interface{}) (int, bool) {
	switch n := value.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
