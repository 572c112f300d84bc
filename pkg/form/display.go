package form

import (
	"github.com/dmitrymomot/formvalidator/pkg/logger"
	"github.com/dmitrymomot/formvalidator/pkg/validator"
)

// DisplayError writes msg into the field's error slot and marks the input
// invalid when msg is non-empty, valid otherwise. Missing elements are
// skipped.
func (v *Validator) DisplayError(name validator.FieldName, msg string) {
	if slot := v.doc.GetElementByID(ErrorSlotID(name)); slot != nil {
		slot.SetTextContent(msg)
	}

	input := v.doc.GetElementByID(string(name))
	if input == nil {
		return
	}
	if msg != "" {
		input.AddClass(ClassInvalid)
		input.RemoveClass(ClassValid)
	} else {
		input.RemoveClass(ClassInvalid)
		input.AddClass(ClassValid)
	}
}

// clearMarkers empties the error slot and removes both class markers.
func (v *Validator) clearMarkers(name validator.FieldName) {
	v.DisplayError(name, "")
	if input := v.doc.GetElementByID(string(name)); input != nil {
		input.RemoveClass(ClassValid, ClassInvalid)
	}
}

// checkField validates the field's live value and displays the verdict.
func (v *Validator) checkField(name validator.FieldName) validator.Result {
	res := v.ValidateField(name, v.Value(name))
	v.DisplayError(name, res.Error)
	return res
}

// ValidateForm validates every field in table order, displays each verdict
// and reports whether all passed. A failure does not stop evaluation of the
// remaining fields.
func (v *Validator) ValidateForm() bool {
	ok := true
	var failed []string
	for _, name := range v.rules.Fields() {
		if res := v.checkField(name); !res.Valid {
			ok = false
			failed = append(failed, string(name))
		}
	}

	v.logger.Debug("form validated", logger.Valid(ok), "failed_fields", failed)
	return ok
}
