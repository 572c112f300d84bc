package handler_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formvalidator/handler"
	"github.com/dmitrymomot/formvalidator/pkg/binder"
)

type request struct {
	Username string `json:"username" form:"username"`
}

func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func echo(ctx handler.Context, req request) handler.Response {
	return handler.Templ(text("hello " + req.Username))
}

func formPost(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("binds and renders", func(t *testing.T) {
		t.Parallel()

		h := handler.Wrap(echo, handler.WithBinders[handler.Context, request](binder.Signals(), binder.Form()))

		rec := httptest.NewRecorder()
		h(rec, formPost("username=bob"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hello bob", rec.Body.String())
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	})

	t.Run("binder error goes to error handler", func(t *testing.T) {
		t.Parallel()

		var got error
		h := handler.Wrap(echo,
			handler.WithBinders[handler.Context, request](binder.Form()),
			handler.WithErrorHandler[handler.Context, request](func(_ handler.Context, err error) { got = err }),
		)

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		h(httptest.NewRecorder(), req)

		require.ErrorIs(t, got, binder.ErrUnsupportedMediaType)
	})

	t.Run("default error handler maps status", func(t *testing.T) {
		t.Parallel()

		h := handler.Wrap(func(handler.Context, request) handler.Response {
			return responseFunc(func(http.ResponseWriter, *http.Request) error { return handler.ErrNotFound })
		})

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "not_found")
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()

		var got error
		h := handler.Wrap(
			func(handler.Context, request) handler.Response { return nil },
			handler.WithErrorHandler[handler.Context, request](func(_ handler.Context, err error) { got = err }),
		)
		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, got, handler.ErrNilResponse)
	})

	t.Run("decorators run outermost first", func(t *testing.T) {
		t.Parallel()

		var order []string
		mark := func(name string) handler.Decorator[handler.Context, request] {
			return func(next handler.HandlerFunc[handler.Context, request]) handler.HandlerFunc[handler.Context, request] {
				return func(ctx handler.Context, req request) handler.Response {
					order = append(order, name)
					return next(ctx, req)
				}
			}
		}

		h := handler.Wrap(echo, handler.WithDecorators(mark("outer"), mark("inner")))
		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, []string{"outer", "inner"}, order)
	})

	t.Run("context exposes request", func(t *testing.T) {
		t.Parallel()

		type key struct{}
		h := handler.Wrap(func(ctx handler.Context, _ request) handler.Response {
			assert.Equal(t, "/path", ctx.Request().URL.Path)
			assert.Equal(t, "v", ctx.Value(key{}))
			assert.NoError(t, ctx.Err())
			return handler.Templ(text("ok"))
		})

		req := httptest.NewRequest(http.MethodGet, "/path", nil)
		req = req.WithContext(context.WithValue(req.Context(), key{}, "v"))
		h(httptest.NewRecorder(), req)
	})
}

type responseFunc func(http.ResponseWriter, *http.Request) error

func (f responseFunc) Render(w http.ResponseWriter, r *http.Request) error { return f(w, r) }

func TestTempl(t *testing.T) {
	t.Parallel()

	t.Run("plain request", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		err := handler.TemplStatus(http.StatusUnprocessableEntity, text("<p>x</p>")).
			Render(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "<p>x</p>", rec.Body.String())
	})

	t.Run("datastar request patches", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(binder.DatastarRequestHeader, "true")
		rec := httptest.NewRecorder()

		err := handler.Templ(text(`<p id="x">x</p>`), handler.WithTarget("#x")).Render(rec, req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "datastar-patch-elements")
		assert.Contains(t, rec.Body.String(), `<p id="x">x</p>`)
	})
}

func TestIsDataStar(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, handler.IsDataStar(req))

	req.Header.Set("Accept", "text/event-stream")
	assert.True(t, handler.IsDataStar(req))

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(binder.DatastarRequestHeader, "true")
	assert.True(t, handler.IsDataStar(req))
}

func TestSSE(t *testing.T) {
	t.Parallel()

	t.Run("requires datastar", func(t *testing.T) {
		t.Parallel()

		called := false
		err := handler.SSE(func(handler.StreamContext) error {
			called = true
			return nil
		}).Render(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))

		require.ErrorIs(t, err, handler.ErrSSERequired)
		assert.False(t, called)
	})

	t.Run("streams patches and signals", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(binder.DatastarRequestHeader, "true")
		rec := httptest.NewRecorder()

		err := handler.SSE(func(stream handler.StreamContext) error {
			if err := stream.SendComponent(text(`<span id="a">a</span>`)); err != nil {
				return err
			}
			if err := stream.SendMultiple(
				handler.Patch(text(`<span id="b">b</span>`)),
				handler.Patch(text(`<span id="c">c</span>`)),
			); err != nil {
				return err
			}
			return stream.SendSignals(map[string]any{"username": ""})
		}).Render(rec, req)

		require.NoError(t, err)
		body := rec.Body.String()
		assert.Equal(t, 3, strings.Count(body, "datastar-patch-elements"))
		assert.Contains(t, body, "datastar-patch-signals")
		assert.Contains(t, body, `{"username":""}`)
		assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	})

	t.Run("handler error is returned", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(binder.DatastarRequestHeader, "true")

		err := handler.SSE(func(handler.StreamContext) error { return boom }).Render(httptest.NewRecorder(), req)
		assert.ErrorIs(t, err, boom)
	})
}

func TestError(t *testing.T) {
	t.Parallel()

	var got error
	h := handler.Wrap(
		func(handler.Context, request) handler.Response { return handler.Error(handler.ErrNotFound) },
		handler.WithErrorHandler[handler.Context, request](func(_ handler.Context, err error) { got = err }),
	)
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, got, handler.ErrNotFound)
}
