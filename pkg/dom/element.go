package dom

import "slices"

// Tag is the element kind.
type Tag string

const (
	TagInput Tag = "input"
	TagSpan  Tag = "span"
	TagDiv   Tag = "div"
	TagForm  Tag = "form"
)

// InputType is the type attribute of an input element.
type InputType string

const (
	TypeText     InputType = "text"
	TypeEmail    InputType = "email"
	TypePassword InputType = "password"
	TypeTel      InputType = "tel"
	TypeCheckbox InputType = "checkbox"
)

// DefaultCheckboxValue is submitted for a checked checkbox without a value attribute.
const DefaultCheckboxValue = "on"

// Element is a node addressable by id.
type Element struct {
	doc *Document

	id    string
	tag   Tag
	typ   InputType
	name  string
	label string
	form  string

	value        string
	defaultValue string
	checked      bool
	defChecked   bool

	text    string
	classes []string
	display string

	listeners map[EventType][]Listener
}

// ElementOption configures an element before it is appended.
type ElementOption func(*Element)

func newElement(id string, tag Tag, opts ...ElementOption) *Element {
	e := &Element{id: id, tag: tag}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Input creates an input element. Its name defaults to the id.
func Input(id string, typ InputType, opts ...ElementOption) *Element {
	e := newElement(id, TagInput, append([]ElementOption{WithName(id)}, opts...)...)
	e.typ = typ
	if typ == TypeCheckbox && e.defaultValue == "" && e.value == "" {
		e.value = DefaultCheckboxValue
		e.defaultValue = DefaultCheckboxValue
	}
	return e
}

func Span(id string, opts ...ElementOption) *Element {
	return newElement(id, TagSpan, opts...)
}

func Div(id string, opts ...ElementOption) *Element {
	return newElement(id, TagDiv, opts...)
}

func Form(id string, opts ...ElementOption) *Element {
	return newElement(id, TagForm, opts...)
}

// WithName sets the control name used by FormData.
func WithName(name string) ElementOption {
	return func(e *Element) { e.name = name }
}

// WithLabel sets a human readable label.
func WithLabel(label string) ElementOption {
	return func(e *Element) { e.label = label }
}

// InForm makes the element a control of the form with the given id.
func InForm(formID string) ElementOption {
	return func(e *Element) { e.form = formID }
}

// WithDefaultValue sets both the markup default and the current value.
func WithDefaultValue(v string) ElementOption {
	return func(e *Element) {
		e.defaultValue = v
		e.value = v
	}
}

// WithValue sets the current value only; Reset restores the default.
func WithValue(v string) ElementOption {
	return func(e *Element) { e.value = v }
}

// WithDefaultChecked sets both the markup default and the current checked state.
func WithDefaultChecked(checked bool) ElementOption {
	return func(e *Element) {
		e.defChecked = checked
		e.checked = checked
	}
}

// WithChecked sets the current checked state only.
func WithChecked(checked bool) ElementOption {
	return func(e *Element) { e.checked = checked }
}

func WithText(text string) ElementOption {
	return func(e *Element) { e.text = text }
}

func WithClass(names ...string) ElementOption {
	return func(e *Element) {
		for _, n := range names {
			if n != "" && !slices.Contains(e.classes, n) {
				e.classes = append(e.classes, n)
			}
		}
	}
}

func WithDisplay(display string) ElementOption {
	return func(e *Element) { e.display = display }
}

func (e *Element) ID() string       { return e.id }
func (e *Element) Tag() Tag         { return e.tag }
func (e *Element) Type() InputType  { return e.typ }
func (e *Element) Name() string     { return e.name }
func (e *Element) Label() string    { return e.label }
func (e *Element) FormID() string   { return e.form }
func (e *Element) IsCheckbox() bool { return e.tag == TagInput && e.typ == TypeCheckbox }

func (e *Element) Value() string        { return e.value }
func (e *Element) DefaultValue() string { return e.defaultValue }

func (e *Element) SetValue(v string) {
	if e.value == v {
		return
	}
	e.value = v
	e.touch()
}

func (e *Element) Checked() bool { return e.checked }

func (e *Element) SetChecked(checked bool) {
	if e.checked == checked {
		return
	}
	e.checked = checked
	e.touch()
}

func (e *Element) TextContent() string { return e.text }

func (e *Element) SetTextContent(text string) {
	if e.text == text {
		return
	}
	e.text = text
	e.touch()
}

// Classes returns the class list in insertion order.
func (e *Element) Classes() []string {
	return slices.Clone(e.classes)
}

func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.classes, name)
}

// AddClass adds names missing from the class list.
func (e *Element) AddClass(names ...string) {
	changed := false
	for _, n := range names {
		if n != "" && !slices.Contains(e.classes, n) {
			e.classes = append(e.classes, n)
			changed = true
		}
	}
	if changed {
		e.touch()
	}
}

// RemoveClass removes names present in the class list.
func (e *Element) RemoveClass(names ...string) {
	before := len(e.classes)
	e.classes = slices.DeleteFunc(e.classes, func(c string) bool {
		return slices.Contains(names, c)
	})
	if len(e.classes) != before {
		e.touch()
	}
}

// Display returns the inline display style; "" means the stylesheet default.
func (e *Element) Display() string { return e.display }

func (e *Element) SetDisplay(display string) {
	if e.display == display {
		return
	}
	e.display = display
	e.touch()
}

// Hidden reports whether the element is hidden with display: none.
func (e *Element) Hidden() bool { return e.display == "none" }

// AddEventListener registers fn for events of type typ targeted at e.
func (e *Element) AddEventListener(typ EventType, fn Listener) {
	if fn == nil {
		return
	}
	if e.listeners == nil {
		e.listeners = make(map[EventType][]Listener)
	}
	e.listeners[typ] = append(e.listeners[typ], fn)
}

// ListenerCount returns the number of listeners registered for typ.
func (e *Element) ListenerCount(typ EventType) int {
	return len(e.listeners[typ])
}

// Controls returns the form controls owned by e in document order.
// It returns nil for non-form elements or detached forms.
func (e *Element) Controls() []*Element {
	if e.tag != TagForm || e.doc == nil {
		return nil
	}
	var out []*Element
	for _, id := range e.doc.order {
		if c := e.doc.elements[id]; c.form == e.id {
			out = append(out, c)
		}
	}
	return out
}

// Reset restores every control of the form to its default value and
// checked state.
func (e *Element) Reset() {
	for _, c := range e.Controls() {
		c.SetValue(c.defaultValue)
		c.SetChecked(c.defChecked)
	}
}

// FormData collects the form's submittable values: every named control with
// its value, except checkboxes, which are included only when checked.
func (e *Element) FormData() map[string]string {
	controls := e.Controls()
	if controls == nil {
		return nil
	}
	data := make(map[string]string, len(controls))
	for _, c := range controls {
		if c.name == "" || c.tag != TagInput {
			continue
		}
		if c.IsCheckbox() && !c.checked {
			continue
		}
		data[c.name] = c.value
	}
	return data
}

func (e *Element) touch() {
	if e.doc != nil {
		e.doc.markDirty(e.id)
	}
}
