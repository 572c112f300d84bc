// Package binder binds HTTP request data to structs.
//
// Each binder is a func(r *http.Request, v any) error meant to be passed to
// handler.WithBinders. Binders run in order; a binder that does not apply to
// the request returns ErrBinderNotApplicable and is skipped.
//
//   - Signals(): datastar signal payload (JSON body, or the datastar query
//     parameter on GET)
//   - Form(): application/x-www-form-urlencoded bodies, `form` tags
//   - Path(extractor): path parameters, `path` tags
//
// A typical signup event endpoint binds both the signal payload and the
// routed field name:
//
//	type EventRequest struct {
//	    Event  string `path:"event"`
//	    Field  string `path:"field"`
//	    Signals
//	}
//
//	r.Post("/events/{event}/{field}", handler.Wrap(h,
//	    handler.WithBinders[handler.Context, EventRequest](
//	        binder.Path(chi.URLParam),
//	        binder.Signals(),
//	    ),
//	))
//
// Failures wrap one of the package errors so callers can classify them with
// errors.Is.
package binder
