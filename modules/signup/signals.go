package signup

import (
	"github.com/dmitrymomot/formvalidator/pkg/dom"
	"github.com/dmitrymomot/formvalidator/pkg/validator"
)

// Signals are the client-side field values. The same struct binds the
// datastar payload and urlencoded form posts.
type Signals struct {
	Username        string `json:"username" form:"username"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
	Phone           string `json:"phone" form:"phone"`
	Terms           bool   `json:"terms" form:"terms"`
}

// text returns the value of a text field; unknown names read as "".
func (s Signals) text(name validator.FieldName) string {
	switch name {
	case validator.Username:
		return s.Username
	case validator.Email:
		return s.Email
	case validator.Password:
		return s.Password
	case validator.ConfirmPassword:
		return s.ConfirmPassword
	case validator.Phone:
		return s.Phone
	}
	return ""
}

func (s Signals) checked(name validator.FieldName) bool {
	return name == validator.Terms && s.Terms
}

// SignalsFromDocument reads the current values back out of doc.
func SignalsFromDocument(doc *dom.Document) Signals {
	text := func(name validator.FieldName) string {
		if el := doc.GetElementByID(string(name)); el != nil {
			return el.Value()
		}
		return ""
	}

	s := Signals{
		Username:        text(validator.Username),
		Email:           text(validator.Email),
		Password:        text(validator.Password),
		ConfirmPassword: text(validator.ConfirmPassword),
		Phone:           text(validator.Phone),
	}
	if el := doc.GetElementByID(string(validator.Terms)); el != nil {
		s.Terms = el.Checked()
	}
	return s
}
