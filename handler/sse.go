package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// SSEHandler runs for the lifetime of a datastar event stream. The stream
// closes when it returns.
type SSEHandler func(stream StreamContext) error

// StreamContext is a Context with an open datastar event stream.
type StreamContext interface {
	Context

	// SendComponent patches one element.
	SendComponent(component templ.Component, opts ...TemplOption) error

	// SendMultiple patches several elements in order.
	SendMultiple(patches ...TemplPatch) error

	// SendSignals merges v, marshaled to JSON, into the client signals.
	SendSignals(v any) error
}

type streamContext struct {
	Context
	sse *datastar.ServerSentEventGenerator
}

func (c *streamContext) SendComponent(component templ.Component, opts ...TemplOption) error {
	return c.sse.PatchElementTempl(component, opts...)
}

func (c *streamContext) SendMultiple(patches ...TemplPatch) error {
	for _, p := range patches {
		if err := c.sse.PatchElementTempl(p.Component, p.Options...); err != nil {
			return err
		}
	}
	return nil
}

func (c *streamContext) SendSignals(v any) error {
	return c.sse.MarshalAndPatchSignals(v)
}

type sseResponse struct {
	handler SSEHandler
}

// Render opens the stream and runs the handler. Non-datastar requests get
// ErrSSERequired before anything is written.
func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return ErrSSERequired
	}
	return s.handler(&streamContext{
		Context: NewContext(w, r),
		sse:     NewSSE(w, r),
	})
}

// SSE returns a response streaming datastar events from h.
func SSE(h SSEHandler) Response {
	return sseResponse{handler: h}
}
