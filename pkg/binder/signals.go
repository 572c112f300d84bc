package binder

import (
	"fmt"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// DatastarRequestHeader is set by the datastar client on every backend action.
const DatastarRequestHeader = "Datastar-Request"

// IsDatastarRequest reports whether r was issued by the datastar client.
func IsDatastarRequest(r *http.Request) bool {
	return r.Header.Get(DatastarRequestHeader) == "true"
}

// Signals binds the datastar signal payload using `json` tags. Requests not
// issued by the datastar client report ErrBinderNotApplicable.
func Signals() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if !IsDatastarRequest(r) {
			return ErrBinderNotApplicable
		}
		if err := datastar.ReadSignals(r, v); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseSignals, err)
		}
		return nil
	}
}
