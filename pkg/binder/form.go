package binder

import (
	"fmt"
	"mime"
	"net/http"
)

// Form binds application/x-www-form-urlencoded bodies using `form` tags.
// Datastar requests carry signals instead of form data, so Form reports
// ErrBinderNotApplicable for them.
//
// Unchecked checkboxes are absent from form data and leave the field at its
// zero value; checked ones usually send "on", which binds to true.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if IsDatastarRequest(r) {
			return ErrBinderNotApplicable
		}

		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: expected application/x-www-form-urlencoded", ErrMissingContentType)
		}

		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
		if mediaType != "application/x-www-form-urlencoded" {
			return fmt.Errorf("%w: got %s, expected application/x-www-form-urlencoded", ErrUnsupportedMediaType, mediaType)
		}

		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}

		return bindStruct(v, "form", func(name string) []string {
			return r.PostForm[name]
		}, ErrFailedToParseForm)
	}
}
