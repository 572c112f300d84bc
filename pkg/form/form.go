package form

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/formvalidator/pkg/dom"
	"github.com/dmitrymomot/formvalidator/pkg/logger"
	"github.com/dmitrymomot/formvalidator/pkg/scheduler"
	"github.com/dmitrymomot/formvalidator/pkg/validator"
)

// Markup contract.
const (
	FormID           = "validationForm"
	SuccessMessageID = "successMessage"
	ErrorSlotSuffix  = "Error"

	ClassValid   = "valid"
	ClassInvalid = "invalid"

	// CheckedValue stands in for a checked checkbox during validation.
	CheckedValue = "checked"

	DefaultSuccessDelay = 4 * time.Second
)

// Config holds the tunables that come from the environment.
type Config struct {
	SuccessDelay time.Duration `env:"FORM_SUCCESS_DELAY" envDefault:"4s"`
	RedactFields []string      `env:"FORM_REDACT_FIELDS" envSeparator:"," envDefault:"password,confirmPassword"`
}

// Document is the part of the document the validator needs.
type Document interface {
	GetElementByID(id string) *dom.Element
	AddEventListener(typ dom.EventType, fn dom.Listener)
}

// ErrorSlotID returns the id of the error text slot for a field.
func ErrorSlotID(name validator.FieldName) string {
	return string(name) + ErrorSlotSuffix
}

// Validator drives one document.
type Validator struct {
	doc          Document
	rules        validator.Table
	scheduler    scheduler.Scheduler
	recorder     Recorder
	logger       *slog.Logger
	now          func() time.Time
	successDelay time.Duration
	redact       []string

	hideTimer   scheduler.Timer
	initialized bool
	attached    bool
}

// Option configures a Validator.
type Option func(*Validator)

// WithRules replaces the default rule table.
func WithRules(t validator.Table) Option {
	return func(v *Validator) { v.rules = t }
}

func WithScheduler(s scheduler.Scheduler) Option {
	return func(v *Validator) {
		if s != nil {
			v.scheduler = s
		}
	}
}

// WithRecorder sets where submissions go. The default logs them.
func WithRecorder(r Recorder) Option {
	return func(v *Validator) {
		if r != nil {
			v.recorder = r
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithSuccessDelay sets how long the success notice stays visible.
func WithSuccessDelay(d time.Duration) Option {
	return func(v *Validator) {
		if d > 0 {
			v.successDelay = d
		}
	}
}

// WithRedactedFields lists fields masked by the default log recorder.
func WithRedactedFields(names ...string) Option {
	return func(v *Validator) { v.redact = names }
}

// WithConfig applies an environment config.
func WithConfig(cfg Config) Option {
	return func(v *Validator) {
		WithSuccessDelay(cfg.SuccessDelay)(v)
		if cfg.RedactFields != nil {
			v.redact = cfg.RedactFields
		}
	}
}

// WithClock overrides the submission timestamp source.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// New returns a Validator bound to doc.
//
// The default scheduler is scheduler.Real, which hides the success notice
// from a time.AfterFunc goroutine. dom.Document is not safe for concurrent
// use, so a caller that touches the document after Submit must pass
// WithScheduler: a scheduler.Queue drained on the caller's goroutine, or a
// scheduler.Manual in tests.
func New(doc Document, opts ...Option) *Validator {
	v := &Validator{
		doc:          doc,
		rules:        validator.Default(),
		scheduler:    scheduler.Real{},
		now:          time.Now,
		successDelay: DefaultSuccessDelay,
		redact:       []string{string(validator.Password), string(validator.ConfirmPassword)},
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.logger == nil {
		v.logger = logger.Discard()
	}
	v.logger = v.logger.With(logger.Component("form"))
	if v.recorder == nil {
		v.recorder = NewLogRecorder(v.logger, v.redact...)
	}
	return v
}

// Rules returns the table the validator evaluates.
func (v *Validator) Rules() validator.Table {
	return v.rules
}

// Value reads the current value of a field from the document. A checkbox
// reads as CheckedValue when checked and "" otherwise; a missing input
// reads as "".
func (v *Validator) Value(name validator.FieldName) string {
	el := v.doc.GetElementByID(string(name))
	if el == nil {
		return ""
	}
	if el.IsCheckbox() {
		if el.Checked() {
			return CheckedValue
		}
		return ""
	}
	return el.Value()
}

// ValidateField evaluates value for name. Match constraints read the other
// field's live value from the document.
func (v *Validator) ValidateField(name validator.FieldName, value string) validator.Result {
	return v.rules.Validate(name, value, v.Value)
}
