package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidParameter is matched by every ValidationError.
var ErrInvalidParameter = errors.New("invalid parameter")

const (
	GroupBasic   = "Basic Adjustments"
	GroupColor   = "Color Grading"
	GroupDetails = "Details & Effects"
	GroupHue     = "Hue"
	GroupPreset  = "Preset"
)

// ParameterRange defines the inclusive range of an adjustment parameter.
type ParameterRange struct {
	Min   int
	Max   int
	Group string
}

// Contains reports whether v lies inside the range.
func (r ParameterRange) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

var parameterOrder = []string{
	"brightness", "contrast", "saturation", "exposure",
	"highlights", "shadows", "whites", "blacks",
	"clarity", "texture", "vibrance", "dehaze",
	"warmth",
	"hue",
}

var parameterRanges = map[string]ParameterRange{
	"brightness": {Min: -100, Max: 100, Group: GroupBasic},
	"contrast":   {Min: -100, Max: 100, Group: GroupBasic},
	"saturation": {Min: -100, Max: 100, Group: GroupBasic},
	"exposure":   {Min: -100, Max: 100, Group: GroupBasic},
	"highlights": {Min: -100, Max: 100, Group: GroupColor},
	"shadows":    {Min: -100, Max: 100, Group: GroupColor},
	"whites":     {Min: -100, Max: 100, Group: GroupColor},
	"blacks":     {Min: -100, Max: 100, Group: GroupColor},
	"clarity":    {Min: -100, Max: 100, Group: GroupDetails},
	"texture":    {Min: -100, Max: 100, Group: GroupDetails},
	"vibrance":   {Min: -100, Max: 100, Group: GroupDetails},
	"dehaze":     {Min: -100, Max: 100, Group: GroupDetails},
	"warmth":     {Min: -100, Max: 100, Group: GroupPreset},
	"hue":        {Min: -180, Max: 180, Group: GroupHue},
}

// ParameterNames returns every recognized parameter in display order.
func ParameterNames() []string {
	out := make([]string, len(parameterOrder))
	copy(out, parameterOrder)
	return out
}

// EditorGroups returns the slider sections shown in the editor, in order.
func EditorGroups() []string {
	return []string{GroupBasic, GroupColor, GroupDetails}
}

// GroupParameters returns the parameters of a group in display order.
func GroupParameters(group string) []string {
	var out []string
	for _, name := range parameterOrder {
		if parameterRanges[name].Group == group {
			out = append(out, name)
		}
	}
	return out
}

// LookupParameter returns the range of a recognized parameter.
func LookupParameter(name string) (ParameterRange, bool) {
	r, ok := parameterRanges[name]
	return r, ok
}

// ParameterLabel turns a parameter name into its display label.
func ParameterLabel(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// ValidateParameter checks that name is recognized and value is in range.
func ValidateParameter(name string, value int) error {
	r, ok := parameterRanges[name]
	if !ok {
		return NewValidationError(name, value, "unknown parameter")
	}
	if !r.Contains(value) {
		return NewValidationError(name, value, fmt.Sprintf("must be between %d and %d", r.Min, r.Max))
	}
	return nil
}

// ValidateParameters validates every entry, reporting the first failure in
// display order so the result is deterministic.
func ValidateParameters(params map[string]int) error {
	for _, name := range parameterOrder {
		if v, ok := params[name]; ok {
			if err := ValidateParameter(name, v); err != nil {
				return err
			}
		}
	}
	for name, v := range params {
		if _, ok := parameterRanges[name]; !ok {
			return NewValidationError(name, v, "unknown parameter")
		}
	}
	return nil
}

// ValidationError represents parameter validation failures
type ValidationError struct {
	Parameter string
	Value     interface{}
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for parameter '%s' with value '%v': %s",
		e.Parameter, e.Value, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// NewValidationError creates a new validation error
func NewValidationError(parameter string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Parameter: parameter,
		Value:     value,
		Message:   message,
	}
}
