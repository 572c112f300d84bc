package handler

import (
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/formvalidator/pkg/binder"
)

// DataStarAcceptHeader is the Accept value of an event stream request.
const DataStarAcceptHeader = "text/event-stream"

// Patch modes.
const (
	PatchOuter   = datastar.ElementPatchModeOuter
	PatchInner   = datastar.ElementPatchModeInner
	PatchReplace = datastar.ElementPatchModeReplace
	PatchAppend  = datastar.ElementPatchModeAppend
	PatchPrepend = datastar.ElementPatchModePrepend
)

// IsDataStar reports whether r was issued by the datastar client or asks
// for an event stream.
func IsDataStar(r *http.Request) bool {
	return binder.IsDatastarRequest(r) ||
		strings.Contains(r.Header.Get("Accept"), DataStarAcceptHeader)
}

// NewSSE opens a datastar event stream on w.
func NewSSE(w http.ResponseWriter, r *http.Request) *datastar.ServerSentEventGenerator {
	return datastar.NewSSE(w, r)
}
