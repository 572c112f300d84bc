package form

import (
	"context"

	"github.com/dmitrymomot/formvalidator/pkg/dom"
	"github.com/dmitrymomot/formvalidator/pkg/logger"
	"github.com/dmitrymomot/formvalidator/pkg/validator"
)

// Init defers Attach until the document fires dom.EventReady.
// Calling Init more than once registers a single listener.
func (v *Validator) Init() {
	if v.initialized {
		return
	}
	v.initialized = true
	v.doc.AddEventListener(dom.EventReady, func(ev *dom.Event) {
		v.Attach(ev.Context())
	})
}

// Attach wires listeners onto the document:
//
//   - blur on a field validates it and displays the verdict
//   - focus on a field clears its displayed error without validating
//   - input on either side of a match constraint revalidates the dependent
//     field while it holds a value (password and confirmPassword)
//   - submit on the form prevents the native submission, validates every
//     field and submits when all pass
//
// Attach is idempotent.
func (v *Validator) Attach(ctx context.Context) {
	if v.attached {
		return
	}
	v.attached = true

	wired := 0
	for _, name := range v.rules.Fields() {
		el := v.doc.GetElementByID(string(name))
		if el == nil {
			v.logger.DebugContext(ctx, "input missing, listeners skipped", logger.Field(string(name)))
			continue
		}
		wired++

		el.AddEventListener(dom.EventBlur, func(ev *dom.Event) {
			res := v.checkField(name)
			v.logger.DebugContext(ev.Context(), "field validated",
				logger.Field(string(name)),
				logger.Event(string(ev.Type)),
				logger.Valid(res.Valid),
			)
		})

		el.AddEventListener(dom.EventFocus, func(*dom.Event) {
			v.DisplayError(name, "")
		})
	}

	for _, name := range v.rules.Fields() {
		rule, _ := v.rules.Rule(name)
		if rule.MatchField == "" {
			continue
		}
		revalidate := v.matchRevalidator(name)
		for _, source := range []validator.FieldName{rule.MatchField, name} {
			if el := v.doc.GetElementByID(string(source)); el != nil {
				el.AddEventListener(dom.EventInput, revalidate)
			}
		}
	}

	form := v.doc.GetElementByID(FormID)
	if form == nil {
		v.logger.WarnContext(ctx, "form element missing, submit handling disabled", "form_id", FormID)
	} else {
		form.AddEventListener(dom.EventSubmit, v.handleSubmit)
	}

	v.logger.DebugContext(ctx, "form validation attached", "fields", wired)
}

// matchRevalidator returns a listener revalidating dependent while it holds
// a non-empty value.
func (v *Validator) matchRevalidator(dependent validator.FieldName) dom.Listener {
	return func(*dom.Event) {
		el := v.doc.GetElementByID(string(dependent))
		if el == nil || el.Value() == "" {
			return
		}
		res := v.ValidateField(dependent, el.Value())
		v.DisplayError(dependent, res.Error)
	}
}

func (v *Validator) handleSubmit(ev *dom.Event) {
	ev.PreventDefault()

	if !v.ValidateForm() {
		v.logger.InfoContext(ev.Context(), "submission rejected", logger.Valid(false))
		return
	}

	if _, err := v.Submit(ev.Context()); err != nil {
		v.logger.ErrorContext(ev.Context(), "submission not recorded", logger.Error(err))
	}
}
