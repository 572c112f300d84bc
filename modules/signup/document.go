package signup

import (
	"github.com/dmitrymomot/formvalidator/pkg/dom"
	"github.com/dmitrymomot/formvalidator/pkg/form"
	"github.com/dmitrymomot/formvalidator/pkg/validator"
)

// SuccessText is the body of the success notice.
const SuccessText = "Form submitted successfully!"

type fieldView struct {
	typ   dom.InputType
	label string
}

var fieldViews = map[validator.FieldName]fieldView{
	validator.Username:        {typ: dom.TypeText, label: "Username"},
	validator.Email:           {typ: dom.TypeEmail, label: "Email"},
	validator.Password:        {typ: dom.TypePassword, label: "Password"},
	validator.ConfirmPassword: {typ: dom.TypePassword, label: "Confirm Password"},
	validator.Phone:           {typ: dom.TypeTel, label: "Phone (optional)"},
	validator.Terms:           {typ: dom.TypeCheckbox, label: "I agree to the terms and conditions"},
}

// viewOf falls back to a text input labelled with the formatted name.
func viewOf(name validator.FieldName) fieldView {
	if v, ok := fieldViews[name]; ok {
		return v
	}
	return fieldView{typ: dom.TypeText, label: validator.FormatFieldName(string(name))}
}

// NewDocument builds the signup form for rules with values taken from s:
// the form, one input and error slot per rule in table order, and the
// hidden success notice.
func NewDocument(rules validator.Table, s Signals) *dom.Document {
	doc := dom.New().MustAppend(dom.Form(form.FormID))

	for _, name := range rules.Fields() {
		view := viewOf(name)
		opts := []dom.ElementOption{dom.InForm(form.FormID), dom.WithLabel(view.label)}
		if view.typ == dom.TypeCheckbox {
			opts = append(opts, dom.WithChecked(s.checked(name)))
		} else {
			opts = append(opts, dom.WithValue(s.text(name)))
		}

		doc.MustAppend(
			dom.Input(string(name), view.typ, opts...),
			dom.Span(form.ErrorSlotID(name)),
		)
	}

	return doc.MustAppend(dom.Div(form.SuccessMessageID,
		dom.WithText(SuccessText),
		dom.WithDisplay("none"),
	))
}
