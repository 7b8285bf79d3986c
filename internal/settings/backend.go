package settings

import (
	"fmt"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

const settingsBucket = "settings"

// Backend persists raw encoded settings values.
type Backend interface {
	Load() (map[string][]byte, error)
	Put(key string, value []byte) error
	Close() error
}

// BoltBackend keeps settings in a single bbolt file.
type BoltBackend struct {
	db *bolt.DB
}

// OpenBolt opens or creates the settings database at path.
func OpenBolt(path string) (*BoltBackend, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open settings database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(settingsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create settings bucket: %w", err)
	}

	return &BoltBackend{db: db}, nil
}

func (b *BoltBackend) Load() (map[string][]byte, error) {
	out := make(map[string][]byte)
	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(settingsBucket)).ForEach(func(k, v []byte) error {
			out[string(k)] = append([]byte(nil), v...)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	return out, nil
}

func (b *BoltBackend) Put(key string, value []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(settingsBucket)).Put([]byte(key), value); err != nil {
			return fmt.Errorf("failed to write setting %s: %w", key, err)
		}
		return nil
	})
}

func (b *BoltBackend) Close() error {
	return b.db.Close()
}

// MemoryBackend keeps settings for the lifetime of the process only.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string][]byte
}

func NewMemory() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

func (m *MemoryBackend) Load() (map[string][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string][]byte, len(m.values))
	for k, v := range m.values {
		out[k] = append([]byte(nil), v...)
	}
	return out, nil
}

func (m *MemoryBackend) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryBackend) Close() error { return nil }
