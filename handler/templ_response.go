package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// TemplOption configures an element patch.
type TemplOption = datastar.PatchElementOption

// WithTarget sets the CSS selector of the patched element.
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

// TemplPatch pairs a component with its patch options.
type TemplPatch struct {
	Component templ.Component
	Options   []TemplOption
}

func Patch(component templ.Component, opts ...TemplOption) TemplPatch {
	return TemplPatch{Component: component, Options: opts}
}

type templResponse struct {
	status    int
	component templ.Component
	options   []TemplOption
}

// Render patches the component over SSE for datastar requests and writes
// HTML otherwise.
func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return NewSSE(w, r).PatchElementTempl(t.component, t.options...)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if t.status != 0 {
		w.WriteHeader(t.status)
	}
	return t.component.Render(r.Context(), w)
}

// Templ renders a component.
func Templ(component templ.Component, opts ...TemplOption) Response {
	return templResponse{component: component, options: opts}
}

// TemplStatus renders a component with a status code on plain requests.
// Event streams always answer 200.
func TemplStatus(status int, component templ.Component, opts ...TemplOption) Response {
	return templResponse{status: status, component: component, options: opts}
}
