// Package form binds the signup rule table to a document: it projects
// verdicts into error slots and valid/invalid class markers, evaluates the
// whole form, wires blur/focus/input/submit listeners and runs the
// submission flow with a transient success notice.
//
// The package relies on an implicit markup contract. For every field name in
// the rule table the document is expected to contain an input with that id
// and an error slot with id "<field>Error". The form has id "validationForm"
// and the notice id "successMessage". Missing elements are skipped silently.
//
//	doc := buildDocument()
//	v := form.New(doc,
//	    form.WithLogger(log),
//	    form.WithScheduler(scheduler.Real{}),
//	)
//	v.Init()
//	doc.Ready(ctx)
//
// After Ready, dispatching dom.EventBlur to an input validates it, and
// dispatching dom.EventSubmit to the form validates every field and, when
// all pass, records the submission, resets the form and shows the notice
// for Config.SuccessDelay.
package form
