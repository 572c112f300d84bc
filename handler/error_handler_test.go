package handler_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formvalidator/handler"
	"github.com/dmitrymomot/formvalidator/pkg/binder"
	"github.com/dmitrymomot/formvalidator/pkg/logger"
	"github.com/dmitrymomot/formvalidator/pkg/requestid"
	"github.com/dmitrymomot/formvalidator/pkg/validator"
)

func runErrorHandler(h handler.ErrorHandler[handler.Context], req *http.Request, err error) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(handler.NewContext(rec, req), err)
	return rec
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	page := func(p handler.ErrorPageParams) templ.Component {
		return text(fmt.Sprintf("page %d %s %s", p.StatusCode, p.Error, p.RequestID))
	}
	toast := func(p handler.ErrorToastParams) templ.Component {
		return text(fmt.Sprintf(`<div id="toast">%s %s</div>`, p.Type, p.Message))
	}

	t.Run("plain text fallback", func(t *testing.T) {
		t.Parallel()

		h := handler.NewErrorHandler(nil, handler.ErrorHandlerConfig{})
		rec := runErrorHandler(h, httptest.NewRequest(http.MethodGet, "/", nil), fmt.Errorf("wrap: %w", binder.ErrFailedToParseForm))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "bad_request")
	})

	t.Run("error page", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithContextExtractors(requestid.LoggerExtractor()))
		h := handler.NewErrorHandler(log, handler.ErrorHandlerConfig{ErrorPage: page})

		req := httptest.NewRequest(http.MethodGet, "/missing", nil)
		req = req.WithContext(requestid.WithContext(req.Context(), "req-1"))
		rec := runErrorHandler(h, req, handler.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "page 404 not_found req-1", rec.Body.String())
		assert.Contains(t, buf.String(), `"level":"WARN"`)
		assert.Contains(t, buf.String(), `"request_id":"req-1"`)
		assert.Contains(t, buf.String(), `"status_code":404`)
	})

	t.Run("validation errors", func(t *testing.T) {
		t.Parallel()

		var verrs validator.ValidationErrors
		verrs.Add(validator.ValidationError{Field: "email", Message: "Email is required"})
		verrs.Add(validator.ValidationError{Field: "terms", Message: "Terms is required"})

		h := handler.NewErrorHandler(nil, handler.ErrorHandlerConfig{})
		rec := runErrorHandler(h, httptest.NewRequest(http.MethodPost, "/", nil), verrs)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "Email is required; Terms is required")
	})

	t.Run("datastar toast", func(t *testing.T) {
		t.Parallel()

		h := handler.NewErrorHandler(nil, handler.ErrorHandlerConfig{ErrorPage: page, ErrorToast: toast})

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(binder.DatastarRequestHeader, "true")
		rec := runErrorHandler(h, req, fmt.Errorf("boom"))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "datastar-patch-elements")
		assert.Contains(t, rec.Body.String(), "#toast-container")
		assert.Contains(t, rec.Body.String(), "error An error occurred processing your request")
	})

	t.Run("datastar without toast", func(t *testing.T) {
		t.Parallel()

		h := handler.NewErrorHandler(nil, handler.ErrorHandlerConfig{ErrorPage: page})

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(binder.DatastarRequestHeader, "true")
		rec := runErrorHandler(h, req, binder.ErrUnsupportedMediaType)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})
}
