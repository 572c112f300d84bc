package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/formvalidator/pkg/binder"
	"github.com/dmitrymomot/formvalidator/pkg/logger"
	"github.com/dmitrymomot/formvalidator/pkg/requestid"
	"github.com/dmitrymomot/formvalidator/pkg/validator"
)

// ErrorPageParams is the data of a full error page.
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// ErrorToastParams is the data of an error toast patched into a live page.
type ErrorToastParams struct {
	Message   string
	Type      string // "warning" or "error"
	RequestID string
}

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	ErrorPage  func(ErrorPageParams) templ.Component
	ErrorToast func(ErrorToastParams) templ.Component

	// ToastTarget defaults to "#toast-container".
	ToastTarget string
}

// ErrorInfo is the classification of an error.
type ErrorInfo struct {
	StatusCode int
	Message    string
	Type       string
	LogLevel   slog.Level
}

func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Message:    "An error occurred processing your request",
	}

	var httpErr HTTPError
	var verrs validator.ValidationErrors

	switch {
	case errors.As(err, &httpErr):
		info.StatusCode = httpErr.Code
		info.Message = httpErr.Key
	case errors.As(err, &verrs):
		info.StatusCode = http.StatusUnprocessableEntity
		info.Message = validationMessage(verrs)
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		info.StatusCode = http.StatusUnsupportedMediaType
		info.Message = ErrUnsupportedMediaType.Key
	case errors.Is(err, binder.ErrMissingContentType),
		errors.Is(err, binder.ErrFailedToParseForm),
		errors.Is(err, binder.ErrFailedToParsePath),
		errors.Is(err, binder.ErrFailedToParseSignals):
		info.StatusCode = http.StatusBadRequest
		info.Message = ErrBadRequest.Key
	}

	if info.StatusCode < http.StatusInternalServerError {
		info.Type = "warning"
		info.LogLevel = slog.LevelWarn
	} else {
		info.Type = "error"
		info.LogLevel = slog.LevelError
	}
	return info
}

func validationMessage(verrs validator.ValidationErrors) string {
	if verrs.IsEmpty() {
		return "Validation failed"
	}
	parts := make([]string, 0, len(verrs))
	for _, e := range verrs {
		parts = append(parts, e.Message)
	}
	return strings.Join(parts, "; ")
}

// NewErrorHandler logs errors and renders them as a toast for datastar
// requests or as an error page otherwise. Missing components fall back to
// a plain text response.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = logger.Discard()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}
	log = log.With(logger.Component("error_handler"))

	return func(ctx Context, err error) {
		r := ctx.Request()
		w := ctx.ResponseWriter()
		id := requestid.FromContext(r.Context())
		info := classifyError(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("is_datastar", IsDataStar(r)),
		)

		var resp Response
		switch {
		case IsDataStar(r) && cfg.ErrorToast != nil:
			resp = Templ(cfg.ErrorToast(ErrorToastParams{
				Message:   info.Message,
				Type:      info.Type,
				RequestID: id,
			}), WithTarget(cfg.ToastTarget), WithPatchMode(PatchInner))
		case !IsDataStar(r) && cfg.ErrorPage != nil:
			resp = TemplStatus(info.StatusCode, cfg.ErrorPage(ErrorPageParams{
				Error:      info.Message,
				StatusCode: info.StatusCode,
				RequestID:  id,
				RetryURL:   r.URL.Path,
			}))
		default:
			http.Error(w, info.Message, info.StatusCode)
			return
		}

		if rerr := resp.Render(w, r); rerr != nil {
			log.ErrorContext(r.Context(), "failed to render error", logger.Error(rerr))
		}
	}
}
