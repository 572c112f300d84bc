package binder

import (
	"fmt"
	"net/http"
)

// Path binds path parameters using `path` tags. The extractor resolves one
// parameter by name; chi.URLParam fits directly.
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrFailedToParsePath)
		}

		return bindStruct(v, "path", func(name string) []string {
			if value := extractor(r, name); value != "" {
				return []string{value}
			}
			return nil
		}, ErrFailedToParsePath)
	}
}
