// Package presets holds the named adjustment presets available at runtime.
package presets

import (
	"sort"
	"sync"

	"headshot-viewer/internal/models"
)

// Catalog is loaded once from the backend and may grow at runtime. Presets
// are never removed.
type Catalog struct {
	mu      sync.RWMutex
	presets map[string]map[string]int
}

func NewCatalog() *Catalog {
	return &Catalog{presets: make(map[string]map[string]int)}
}

// Replace swaps the whole catalog for the given presets after validating
// every one of them.
func (c *Catalog) Replace(presets map[string]map[string]int) error {
	next := make(map[string]map[string]int, len(presets))
	for name, params := range presets {
		p := models.Preset{Name: name, Parameters: params}
		if err := p.Validate(); err != nil {
			return err
		}
		next[name] = models.CloneParameters(params)
	}

	c.mu.Lock()
	c.presets = next
	c.mu.Unlock()
	return nil
}

// Add inserts or overwrites a preset.
func (c *Catalog) Add(p models.Preset) error {
	if err := p.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	c.presets[p.Name] = models.CloneParameters(p.Parameters)
	c.mu.Unlock()
	return nil
}

// Resolve returns a copy of the preset's parameters.
func (c *Catalog) Resolve(name string) (map[string]int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	params, ok := c.presets[name]
	if !ok {
		return nil, false
	}
	return models.CloneParameters(params), true
}

// List returns preset names in alphabetical order.
func (c *Catalog) List() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.presets))
	for name := range c.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.presets)
}
