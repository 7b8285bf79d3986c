package models

import "sort"

// Preset is a named set of adjustment values.
type Preset struct {
	Name       string
	Parameters map[string]int
}

// Validate checks the name and every parameter of the preset.
func (p Preset) Validate() error {
	if p.Name == "" {
		return NewValidationError("name", p.Name, "preset name is required")
	}
	return ValidateParameters(p.Parameters)
}

// Keys returns the preset's parameter names sorted alphabetically.
func (p Preset) Keys() []string {
	keys := make([]string, 0, len(p.Parameters))
	for k := range p.Parameters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CloneParameters copies a parameter map.
func CloneParameters(params map[string]int) map[string]int {
	out := make(map[string]int, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}
