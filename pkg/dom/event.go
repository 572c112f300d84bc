package dom

import "context"

// EventType names a lifecycle or interaction event.
type EventType string

const (
	EventReady  EventType = "DOMContentLoaded"
	EventBlur   EventType = "blur"
	EventFocus  EventType = "focus"
	EventInput  EventType = "input"
	EventSubmit EventType = "submit"
)

// Event is passed to listeners during dispatch.
type Event struct {
	ctx              context.Context
	Type             EventType
	Target           *Element
	defaultPrevented bool
}

// Listener handles a dispatched event.
type Listener func(ev *Event)

// Context returns the context the event was dispatched with.
func (e *Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// PreventDefault cancels the default action, e.g. the native form submission.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}
