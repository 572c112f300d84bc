package signup

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formvalidator/handler"
	"github.com/dmitrymomot/formvalidator/pkg/binder"
	"github.com/dmitrymomot/formvalidator/pkg/dom"
	"github.com/dmitrymomot/formvalidator/pkg/form"
	"github.com/dmitrymomot/formvalidator/pkg/logger"
	"github.com/dmitrymomot/formvalidator/pkg/scheduler"
	"github.com/dmitrymomot/formvalidator/pkg/validator"
)

// Config is loaded from the environment. An empty ScriptURL renders the
// page without the datastar client.
type Config struct {
	Title     string `env:"SIGNUP_TITLE" envDefault:"Sign up"`
	BasePath  string `env:"SIGNUP_BASE_PATH" envDefault:"/"`
	ScriptURL string `env:"DATASTAR_SCRIPT_URL" envDefault:"https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"`
	Form      form.Config
}

// Service serves the signup page and its event endpoints.
type Service struct {
	cfg          Config
	rules        validator.Table
	views        *Views
	recorder     form.Recorder
	logger       *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
}

// Option configures a Service.
type Option func(*Service)

func WithRules(t validator.Table) Option {
	return func(s *Service) { s.rules = t }
}

func WithViews(v *Views) Option {
	return func(s *Service) {
		if v != nil {
			s.views = v
		}
	}
}

// WithRecorder sets where accepted submissions go. The default logs them
// with Config.Form.RedactFields masked.
func WithRecorder(r form.Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithErrorHandler overrides the error handler built from the views.
func WithErrorHandler(h handler.ErrorHandler[handler.Context]) Option {
	return func(s *Service) { s.errorHandler = h }
}

func NewService(cfg Config, opts ...Option) *Service {
	s := &Service{
		cfg:    cfg,
		rules:  validator.Default(),
		views:  DefaultViews(),
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.cfg.Title == "" {
		s.cfg.Title = "Sign up"
	}
	if s.cfg.BasePath == "" {
		s.cfg.BasePath = "/"
	}
	s.logger = s.logger.With(logger.Component("signup"))

	if s.recorder == nil {
		redact := s.cfg.Form.RedactFields
		if len(redact) == 0 {
			redact = []string{string(validator.Password), string(validator.ConfirmPassword)}
		}
		s.recorder = form.NewLogRecorder(s.logger, redact...)
	}
	if s.errorHandler == nil {
		s.errorHandler = handler.NewErrorHandler(s.logger, handler.ErrorHandlerConfig{
			ErrorPage:  s.views.ErrorPage,
			ErrorToast: s.views.ErrorToast,
		})
	}
	return s
}

// Handle returns the module routes:
//
//	GET  /                        full page
//	POST /events/{event}/{field}  blur, focus or input on a field (datastar)
//	POST /submit                  form submission (datastar or urlencoded)
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handler.Wrap(s.page,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	r.Post("/events/{event}/{field}", handler.Wrap(s.event,
		handler.WithBinders[handler.Context, EventRequest](
			binder.Path(chi.URLParam),
			binder.Signals(),
		),
		handler.WithErrorHandler[handler.Context, EventRequest](s.errorHandler),
	))

	r.Post("/submit", handler.Wrap(s.submit,
		handler.WithBinders[handler.Context, Signals](
			binder.Signals(), // datastar
			binder.Form(),    // no JavaScript
		),
		handler.WithErrorHandler[handler.Context, Signals](s.errorHandler),
	))

	return r
}

// EventRequest is a field event posted by the page.
type EventRequest struct {
	Event string `path:"event" json:"-"`
	Field string `path:"field" json:"-"`
	Signals
}

var fieldEvents = map[string]dom.EventType{
	string(dom.EventBlur):  dom.EventBlur,
	string(dom.EventFocus): dom.EventFocus,
	string(dom.EventInput): dom.EventInput,
}

func (s *Service) page(ctx handler.Context, _ struct{}) handler.Response {
	sess := s.open(ctx, Signals{})
	defer sess.close()
	return handler.Templ(s.views.Page(s.pageParams(sess.doc)))
}

func (s *Service) event(ctx handler.Context, req EventRequest) handler.Response {
	typ, ok := fieldEvents[req.Event]
	if !ok || !s.rules.Has(validator.FieldName(req.Field)) {
		return handler.Error(handler.ErrNotFound)
	}

	return handler.SSE(func(stream handler.StreamContext) error {
		sess := s.open(stream, req.Signals)
		defer sess.close()

		if _, err := sess.doc.Dispatch(stream, req.Field, typ); err != nil {
			return err
		}
		s.logger.DebugContext(stream, "field event handled",
			logger.Field(req.Field),
			logger.Event(req.Event),
		)
		return s.patch(stream, sess.doc)
	})
}

func (s *Service) submit(ctx handler.Context, req Signals) handler.Response {
	if !handler.IsDataStar(ctx.Request()) {
		return s.submitPage(ctx, req)
	}

	return handler.SSE(func(stream handler.StreamContext) error {
		sess := s.open(stream, req)
		defer sess.close()

		if _, err := sess.doc.Dispatch(stream, form.FormID, dom.EventSubmit); err != nil {
			return err
		}

		if sess.accepted() {
			if err := stream.SendSignals(SignalsFromDocument(sess.doc)); err != nil {
				return err
			}
		}
		if err := s.patch(stream, sess.doc); err != nil {
			return err
		}
		if !sess.accepted() {
			return nil
		}

		var patchErr error
		err := sess.queue.Drain(stream, func() {
			if patchErr == nil {
				patchErr = s.patch(stream, sess.doc)
			}
		})
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			s.logger.DebugContext(stream, "client left before the success notice was hidden")
			return nil
		}
		return errors.Join(err, patchErr)
	})
}

// submitPage runs a urlencoded submission and renders the whole page.
// Rejected submissions answer 422 with the field errors in place.
func (s *Service) submitPage(ctx handler.Context, req Signals) handler.Response {
	sess := s.open(ctx, req)
	defer sess.close()

	if _, err := sess.doc.Dispatch(ctx, form.FormID, dom.EventSubmit); err != nil {
		return handler.Error(err)
	}

	status := http.StatusOK
	if !sess.accepted() {
		status = http.StatusUnprocessableEntity
	}
	return handler.TemplStatus(status, s.views.Page(s.pageParams(sess.doc)))
}

func (s *Service) pageParams(doc *dom.Document) PageParams {
	return PageParams{
		Title:     s.cfg.Title,
		ScriptURL: s.cfg.ScriptURL,
		BasePath:  s.cfg.BasePath,
		Fields:    s.rules.Fields(),
		Document:  doc,
	}
}

// patch streams every element mutated since the last patch. A field's
// error slot travels with its input: the document starts from a blank
// state on every request, so an unchanged slot may still differ from what
// the browser shows.
func (s *Service) patch(stream handler.StreamContext, doc *dom.Document) error {
	ids := doc.Dirty()
	doc.ClearDirty()

	seen := make(map[string]bool, len(ids))
	patches := make([]handler.TemplPatch, 0, len(ids))
	add := func(id string) {
		if seen[id] {
			return
		}
		if el := doc.GetElementByID(id); el != nil {
			seen[id] = true
			patches = append(patches, handler.Patch(s.views.Element(ElementParams{
				Element:  el,
				BasePath: s.cfg.BasePath,
			})))
		}
	}

	for _, id := range ids {
		add(id)
		if s.rules.Has(validator.FieldName(id)) {
			add(form.ErrorSlotID(validator.FieldName(id)))
		}
	}
	if len(patches) == 0 {
		return nil
	}
	return stream.SendMultiple(patches...)
}

// session is one request's view of the form.
type session struct {
	doc   *dom.Document
	queue *scheduler.Queue
}

// open builds the document from sig and wires a validator onto it. Timers
// are queued so their callbacks run on the request goroutine.
func (s *Service) open(ctx context.Context, sig Signals) *session {
	sess := &session{
		doc:   NewDocument(s.rules, sig),
		queue: scheduler.NewQueue(),
	}

	v := form.New(sess.doc,
		form.WithRules(s.rules),
		form.WithScheduler(sess.queue),
		form.WithRecorder(s.recorder),
		form.WithLogger(s.logger),
		form.WithConfig(s.cfg.Form),
	)
	v.Init()
	sess.doc.Ready(ctx)
	sess.doc.ClearDirty()
	return sess
}

// accepted reports whether a submission went through; only then is the
// success notice showing.
func (sess *session) accepted() bool {
	notice := sess.doc.GetElementByID(form.SuccessMessageID)
	return notice != nil && !notice.Hidden()
}

func (sess *session) close() {
	sess.queue.Close()
}
