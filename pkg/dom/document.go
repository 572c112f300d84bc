package dom

import (
	"context"
	"fmt"
)

// Document owns a set of elements and the document-level listeners.
type Document struct {
	elements  map[string]*Element
	order     []string
	listeners map[EventType][]Listener
	ready     bool

	dirty      map[string]struct{}
	dirtyOrder []string
}

// New returns an empty document.
func New() *Document {
	return &Document{
		elements:  make(map[string]*Element),
		listeners: make(map[EventType][]Listener),
		dirty:     make(map[string]struct{}),
	}
}

// Append adds elements in order. Appending is not a mutation and does not
// mark elements dirty.
func (d *Document) Append(els ...*Element) error {
	for _, e := range els {
		if e == nil {
			continue
		}
		if e.id == "" {
			return ErrEmptyID
		}
		if _, exists := d.elements[e.id]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateID, e.id)
		}
		e.doc = d
		d.elements[e.id] = e
		d.order = append(d.order, e.id)
	}
	return nil
}

// MustAppend is like Append but panics on error.
func (d *Document) MustAppend(els ...*Element) *Document {
	if err := d.Append(els...); err != nil {
		panic(fmt.Sprintf("dom: %v", err))
	}
	return d
}

// GetElementByID returns the element with id or nil.
func (d *Document) GetElementByID(id string) *Element {
	return d.elements[id]
}

// Elements returns all elements in document order.
func (d *Document) Elements() []*Element {
	out := make([]*Element, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.elements[id])
	}
	return out
}

// AddEventListener registers a document-level listener, e.g. for EventReady.
func (d *Document) AddEventListener(typ EventType, fn Listener) {
	if fn == nil {
		return
	}
	d.listeners[typ] = append(d.listeners[typ], fn)
}

// Ready fires EventReady listeners once. Later calls are no-ops.
func (d *Document) Ready(ctx context.Context) {
	if d.ready {
		return
	}
	d.ready = true

	ev := &Event{ctx: ctx, Type: EventReady}
	for _, fn := range d.listeners[EventReady] {
		fn(ev)
	}
}

// IsReady reports whether Ready has run.
func (d *Document) IsReady() bool {
	return d.ready
}

// Dispatch delivers an event of type typ to the element with id and runs its
// listeners in registration order.
func (d *Document) Dispatch(ctx context.Context, id string, typ EventType) (*Event, error) {
	target := d.elements[id]
	if target == nil {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, id)
	}

	ev := &Event{ctx: ctx, Type: typ, Target: target}
	// Copy so listeners registered during dispatch run on the next event only.
	listeners := append([]Listener(nil), target.listeners[typ]...)
	for _, fn := range listeners {
		fn(ev)
	}
	return ev, nil
}

// Dirty returns ids of elements mutated since the last ClearDirty, in the
// order they were first mutated.
func (d *Document) Dirty() []string {
	out := make([]string, len(d.dirtyOrder))
	copy(out, d.dirtyOrder)
	return out
}

// ClearDirty forgets recorded mutations.
func (d *Document) ClearDirty() {
	clear(d.dirty)
	d.dirtyOrder = d.dirtyOrder[:0]
}

func (d *Document) markDirty(id string) {
	if _, ok := d.dirty[id]; ok {
		return
	}
	d.dirty[id] = struct{}{}
	d.dirtyOrder = append(d.dirtyOrder, id)
}
