package logger

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is the component-scoped structured logger shared by every package.
type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}

type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

func (f Format) Validate() error {
	switch f {
	case FormatConsole, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid log format %q: must be console or json", f)
	}
}

// ParseLevel accepts debug, info, warn, warning and error in any case.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.InfoLevel, fmt.Errorf("invalid log level %q", s)
	}
}

type NoOp struct{}

func (NoOp) Debug(string, string, map[string]interface{})   {}
func (NoOp) Info(string, string, map[string]interface{})    {}
func (NoOp) Warning(string, string, map[string]interface{}) {}
func (NoOp) Error(string, error, map[string]interface{})    {}
