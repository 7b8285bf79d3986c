package workflow

import "headshot-viewer/internal/models"

type EventType int

const (
	LoadStarted EventType = iota
	CollectionLoaded
	SelectionChanged
	CurrentChanged
	AdjustmentsChanged
	PresetsChanged
	OperationFailed
	BatchProgress
)

func (t EventType) String() string {
	switch t {
	case LoadStarted:
		return "load_started"
	case CollectionLoaded:
		return "collection_loaded"
	case SelectionChanged:
		return "selection_changed"
	case CurrentChanged:
		return "current_changed"
	case AdjustmentsChanged:
		return "adjustments_changed"
	case PresetsChanged:
		return "presets_changed"
	case OperationFailed:
		return "operation_failed"
	case BatchProgress:
		return "batch_progress"
	default:
		return "unknown"
	}
}

// Event carries the record an event concerns, if any, and the failure for
// OperationFailed. BatchProgress sets Done and Total to the number of
// targets processed so far and overall.
type Event struct {
	Type   EventType
	Record *models.ImageRecord
	Op     string
	Err    error
	Done   int
	Total  int
}

type Listener func(Event)

// On registers a listener. Listeners run synchronously on the UI goroutine
// in registration order.
func (c *Coordinator) On(t EventType, l Listener) {
	c.listeners[t] = append(c.listeners[t], l)
}

func (c *Coordinator) emit(e Event) {
	for _, l := range c.listeners[e.Type] {
		l(e)
	}
}
