// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a Context and a bound request value and returns a
// Response. Wrap turns it into an http.HandlerFunc, running the configured
// binders first and routing any binding or rendering error to an
// ErrorHandler:
//
//	h := handler.HandlerFunc[handler.Context, SubmitRequest](
//		func(ctx handler.Context, req SubmitRequest) handler.Response {
//			return handler.Templ(views.Page(req))
//		},
//	)
//
//	r.Post("/submit", handler.Wrap(h,
//		handler.WithBinders[handler.Context, SubmitRequest](binder.Signals(), binder.Form()),
//		handler.WithErrorHandler[handler.Context, SubmitRequest](errHandler),
//	))
//
// # Responses
//
//	handler.Templ(component)              // HTML, or an element patch for datastar
//	handler.TemplStatus(code, component)  // HTML with a status code
//	handler.SSE(func(StreamContext) error) // datastar event stream
//
// # Datastar
//
// Requests issued by the datastar client are detected with IsDataStar. SSE
// responses hand the handler a StreamContext that patches elements and
// signals on the open stream until the handler returns.
package handler
