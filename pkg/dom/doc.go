// Package dom is a small in-memory document model: elements addressed by id,
// class lists, a display style, text content, form controls with default
// values, and synchronous event dispatch.
//
// It stands in for the browser document so form logic can be written and
// tested without a browser, and it records which elements were mutated so an
// adapter can project exactly those changes onto a real page.
//
// A Document is not safe for concurrent use. Listeners run synchronously on
// the goroutine that calls Dispatch or Ready.
//
//	doc := dom.New()
//	doc.MustAppend(
//	    dom.Form("validationForm"),
//	    dom.Input("email", dom.TypeEmail, dom.InForm("validationForm")),
//	    dom.Span("emailError"),
//	)
//
//	doc.GetElementByID("email").AddEventListener(dom.EventBlur, func(ev *dom.Event) {
//	    // ...
//	})
//	_, err := doc.Dispatch(ctx, "email", dom.EventBlur)
package dom
