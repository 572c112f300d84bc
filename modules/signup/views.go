package signup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/formvalidator/handler"
	"github.com/dmitrymomot/formvalidator/pkg/dom"
	"github.com/dmitrymomot/formvalidator/pkg/form"
	"github.com/dmitrymomot/formvalidator/pkg/validator"
)

// PageParams is the data of the full page.
type PageParams struct {
	Title     string
	ScriptURL string
	BasePath  string
	Fields    []validator.FieldName
	Document  *dom.Document
}

// ElementParams is the data of one patchable element.
type ElementParams struct {
	Element  *dom.Element
	BasePath string
}

// Views renders the module's markup.
type Views struct {
	Page       func(PageParams) templ.Component
	Element    func(ElementParams) templ.Component
	ErrorPage  func(handler.ErrorPageParams) templ.Component
	ErrorToast func(handler.ErrorToastParams) templ.Component
}

// DefaultViews returns the built-in markup.
func DefaultViews() *Views {
	return &Views{
		Page:       Page,
		Element:    Element,
		ErrorPage:  ErrorPage,
		ErrorToast: ErrorToast,
	}
}

// Route returns the module path of an endpoint under base.
func Route(base string, elem ...string) string {
	return path.Join(append([]string{"/", base}, elem...)...)
}

// htmlWriter writes escaped markup and keeps the first error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (h *htmlWriter) component(ctx context.Context, c templ.Component) {
	if h.err == nil {
		h.err = c.Render(ctx, h.w)
	}
}

const pageStyle = `body{font-family:system-ui,sans-serif;max-width:28rem;margin:2rem auto}
.form-group{display:flex;flex-direction:column;margin-bottom:1rem}
.form-group.checkbox{flex-direction:row;flex-wrap:wrap;gap:.5rem;align-items:center}
input.valid{border-color:#2e7d32}input.invalid{border-color:#c62828}
.error-message{color:#c62828;font-size:.85rem;min-height:1rem;flex-basis:100%}
.success-message{color:#2e7d32;margin-top:1rem}
.toast.warning{color:#8a6d00}.toast.error{color:#c62828}`

// Page renders the full document: the form with every field of p.Fields,
// the toast container and the success notice.
func Page(p PageParams) templ.Component {
	body := make([]templ.Component, 0, len(p.Fields))
	for _, name := range p.Fields {
		if input := p.Document.GetElementByID(string(name)); input != nil {
			slot := p.Document.GetElementByID(form.ErrorSlotID(name))
			body = append(body, fieldGroup(input, slot, p.BasePath))
		}
	}

	var notice templ.Component = templ.NopComponent
	if el := p.Document.GetElementByID(form.SuccessMessageID); el != nil {
		notice = blockView(el)
	}

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		signals, err := json.Marshal(SignalsFromDocument(p.Document))
		if err != nil {
			return fmt.Errorf("marshal signals: %w", err)
		}

		h := &htmlWriter{w: w}
		h.component(ctx, pageHead(p.Title, p.ScriptURL))
		h.raw(`<body><h1>`)
		h.text(p.Title)
		h.raw(`</h1><div id="toast-container"></div>`)
		h.component(ctx, formView(p.BasePath, string(signals), templ.Join(body...)))
		h.component(ctx, notice)
		h.raw(`</body></html>`)
		return h.err
	})
}

func pageHead(title, scriptURL string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(title)
		h.raw(`</title>`)
		if scriptURL != "" {
			h.raw(`<script type="module"`)
			h.attr("src", scriptURL)
			h.raw(`></script>`)
		}
		h.raw(`<style>` + pageStyle + `</style></head>`)
		return h.err
	})
}

// formView wraps fields in the form element. Submission goes to the
// submit route both as a datastar action and as the native fallback.
func formView(base, signals string, fields templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		submit := Route(base, "submit")

		h := &htmlWriter{w: w}
		h.raw(`<form novalidate method="post"`)
		h.attr("id", form.FormID)
		h.attr("action", submit)
		h.attr("data-signals", signals)
		h.attr("data-on:submit", fmt.Sprintf("@post('%s')", submit))
		h.raw(`>`)
		h.component(ctx, fields)
		h.raw(`<button type="submit">Submit</button></form>`)
		return h.err
	})
}

// fieldGroup renders label, input and error slot. Checkboxes put the label
// after the box.
func fieldGroup(input, slot *dom.Element, base string) templ.Component {
	parts := []templ.Component{labelView(input), inputView(input, base)}
	class := "form-group"
	if input.IsCheckbox() {
		parts[0], parts[1] = parts[1], parts[0]
		class += " checkbox"
	}
	if slot != nil {
		parts = append(parts, errorSlotView(slot))
	}

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div`)
		h.attr("class", class)
		h.raw(`>`)
		h.component(ctx, templ.Join(parts...))
		h.raw(`</div>`)
		return h.err
	})
}

func labelView(input *dom.Element) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<label`)
		h.attr("for", input.ID())
		h.raw(`>`)
		h.text(input.Label())
		h.raw(`</label>`)
		return h.err
	})
}

// Element renders one element by id so a patch can morph it in place.
func Element(p ElementParams) templ.Component {
	switch p.Element.Tag() {
	case dom.TagInput:
		return inputView(p.Element, p.BasePath)
	case dom.TagSpan:
		return errorSlotView(p.Element)
	default:
		return blockView(p.Element)
	}
}

// inputView carries the datastar bindings of a field: one signal per field
// and a backend action for every event the document listens to.
func inputView(el *dom.Element, base string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<input`)
		h.attr("id", el.ID())
		h.attr("name", el.Name())
		h.attr("type", string(el.Type()))
		if classes := el.Classes(); len(classes) > 0 {
			h.attr("class", strings.Join(classes, " "))
		}
		if el.IsCheckbox() {
			if el.Checked() {
				h.raw(` checked`)
			}
		} else {
			h.attr("value", el.Value())
		}
		h.attr("data-bind", el.ID())
		for _, ev := range []dom.EventType{dom.EventBlur, dom.EventFocus, dom.EventInput} {
			if el.ListenerCount(ev) == 0 {
				continue
			}
			key := "data-on:" + string(ev)
			if ev == dom.EventInput {
				key += "__debounce.300ms"
			}
			h.attr(key, fmt.Sprintf("@post('%s')", Route(base, "events", string(ev), el.ID())))
		}
		h.raw(`>`)
		return h.err
	})
}

func errorSlotView(el *dom.Element) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<span class="error-message" aria-live="polite"`)
		h.attr("id", el.ID())
		h.raw(`>`)
		h.text(el.TextContent())
		h.raw(`</span>`)
		return h.err
	})
}

// blockView renders any other element with its text and display style.
func blockView(el *dom.Element) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<` + string(el.Tag()))
		h.attr("id", el.ID())
		if el.ID() == form.SuccessMessageID {
			h.attr("class", "success-message")
		} else if classes := el.Classes(); len(classes) > 0 {
			h.attr("class", strings.Join(classes, " "))
		}
		if d := el.Display(); d != "" {
			h.attr("style", "display: "+d)
		}
		h.raw(`>`)
		h.text(el.TextContent())
		h.raw(`</` + string(el.Tag()) + `>`)
		return h.err
	})
}

// ErrorPage renders a standalone error page.
func ErrorPage(p handler.ErrorPageParams) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Error</title></head><body><h1>`)
		h.text(fmt.Sprintf("%d", p.StatusCode))
		h.raw(`</h1><p>`)
		h.text(p.Error)
		h.raw(`</p>`)
		if p.RequestID != "" {
			h.raw(`<p><small>Request ID: `)
			h.text(p.RequestID)
			h.raw(`</small></p>`)
		}
		h.raw(`<a`)
		h.attr("href", p.RetryURL)
		h.raw(`>Try again</a></body></html>`)
		return h.err
	})
}

// ErrorToast renders the content of the toast container.
func ErrorToast(p handler.ErrorToastParams) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div role="alert"`)
		h.attr("class", "toast "+p.Type)
		h.raw(`>`)
		h.text(p.Message)
		h.raw(`</div>`)
		return h.err
	})
}
