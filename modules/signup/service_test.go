package signup_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formvalidator/modules/signup"
	"github.com/dmitrymomot/formvalidator/pkg/binder"
	"github.com/dmitrymomot/formvalidator/pkg/clientip"
	"github.com/dmitrymomot/formvalidator/pkg/form"
	"github.com/dmitrymomot/formvalidator/pkg/httpserver"
	"github.com/dmitrymomot/formvalidator/pkg/logger"
	"github.com/dmitrymomot/formvalidator/pkg/requestid"
)

const validSignals = `{"username":"abc_123","email":"a@b.co","password":"Password1!","confirmPassword":"Password1!","phone":"","terms":true}`

type capture struct {
	subs []form.Submission
}

func (c *capture) Record(_ context.Context, sub form.Submission) error {
	c.subs = append(c.subs, sub)
	return nil
}

func newService(t *testing.T, rec form.Recorder) http.Handler {
	t.Helper()

	svc := signup.NewService(signup.Config{
		Title: "Sign up",
		Form:  form.Config{SuccessDelay: 20 * time.Millisecond},
	}, signup.WithRecorder(rec))

	return signup.Router(signup.RouterOptions{
		Form:   svc,
		Health: httpserver.HealthCheckHandler(nil),
	})
}

func datastarPost(target, signals string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(signals))
	req.Header.Set(binder.DatastarRequestHeader, "true")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func esc(s string) string {
	return templ.EscapeString(s)
}

func TestPage(t *testing.T) {
	t.Parallel()

	rec := serve(newService(t, &capture{}), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `id="validationForm"`)
	assert.Contains(t, body, `action="/submit"`)
	assert.Contains(t, body, `data-on:submit="`+esc("@post('/submit')")+`"`)
	assert.Contains(t, body, `data-signals="`+esc(`{"username":"","email":"","password":"","confirmPassword":"","phone":"","terms":false}`)+`"`)

	for _, field := range []string{"username", "email", "password", "confirmPassword", "phone", "terms"} {
		assert.Contains(t, body, `id="`+field+`"`)
		assert.Contains(t, body, `id="`+field+`Error"`)
		assert.Contains(t, body, `data-bind="`+field+`"`)
		assert.Contains(t, body, `data-on:blur="`+esc("@post('/events/blur/"+field+"')")+`"`)
		assert.Contains(t, body, `data-on:focus="`+esc("@post('/events/focus/"+field+"')")+`"`)
	}

	assert.Equal(t, 2, strings.Count(body, "data-on:input__debounce.300ms"))
	assert.Contains(t, body, `data-on:input__debounce.300ms="`+esc("@post('/events/input/password')")+`"`)
	assert.Contains(t, body, `data-on:input__debounce.300ms="`+esc("@post('/events/input/confirmPassword')")+`"`)

	assert.Contains(t, body, `<div id="successMessage" class="success-message" style="display: none">Form submitted successfully!</div>`)
	assert.Contains(t, body, `<label for="confirmPassword">Confirm Password</label>`)
	assert.Contains(t, body, `id="toast-container"`)
}

func TestEvents(t *testing.T) {
	t.Parallel()

	h := newService(t, &capture{})

	t.Run("blur displays the verdict", func(t *testing.T) {
		t.Parallel()

		rec := serve(h, datastarPost("/events/blur/username", `{"username":"ab"}`))
		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Equal(t, 2, strings.Count(body, "datastar-patch-elements"))
		assert.Contains(t, body, `id="username" name="username" type="text" class="invalid" value="ab"`)
		assert.Contains(t, body, `id="usernameError">Username must be 3-20 characters and contain only letters, numbers, and underscores</span>`)
	})

	t.Run("blur on a valid checkbox", func(t *testing.T) {
		t.Parallel()

		body := serve(h, datastarPost("/events/blur/terms", `{"terms":true}`)).Body.String()
		assert.Contains(t, body, `class="valid" checked`)
		assert.Contains(t, body, `id="termsError"></span>`)
	})

	t.Run("focus clears without validating", func(t *testing.T) {
		t.Parallel()

		body := serve(h, datastarPost("/events/focus/email", `{"email":"nope"}`)).Body.String()
		assert.Contains(t, body, `id="email" name="email" type="email" class="valid" value="nope"`)
		assert.Contains(t, body, `id="emailError"></span>`)
	})

	t.Run("password input with empty confirmation", func(t *testing.T) {
		t.Parallel()

		rec := serve(h, datastarPost("/events/input/password", `{"password":"Password1!"}`))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "datastar-patch-elements")
	})

	t.Run("password input revalidates confirmation", func(t *testing.T) {
		t.Parallel()

		body := serve(h, datastarPost("/events/input/password", `{"password":"Password1!","confirmPassword":"Password1"}`)).Body.String()
		assert.Contains(t, body, `id="confirmPasswordError">Passwords do not match</span>`)
		assert.NotContains(t, body, `id="passwordError"`)
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()

		rec := serve(h, httptest.NewRequest(http.MethodPost, "/events/blur/nickname", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown event", func(t *testing.T) {
		t.Parallel()

		rec := serve(h, httptest.NewRequest(http.MethodPost, "/events/click/username", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("requires datastar", func(t *testing.T) {
		t.Parallel()

		rec := serve(h, httptest.NewRequest(http.MethodPost, "/events/blur/username", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed signals", func(t *testing.T) {
		t.Parallel()

		rec := serve(h, datastarPost("/events/blur/username", `{"username":`))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "#toast-container")
		assert.Contains(t, rec.Body.String(), `class="toast warning">bad_request</div>`)
	})
}

func TestSubmitDatastar(t *testing.T) {
	t.Parallel()

	t.Run("accepted", func(t *testing.T) {
		t.Parallel()

		sink := &capture{}
		rec := serve(newService(t, sink), datastarPost("/submit", validSignals))
		require.Equal(t, http.StatusOK, rec.Code)

		require.Len(t, sink.subs, 1)
		assert.Equal(t, map[string]string{
			"username":        "abc_123",
			"email":           "a@b.co",
			"password":        "Password1!",
			"confirmPassword": "Password1!",
			"phone":           "",
			"terms":           "on",
		}, sink.subs[0].Data)

		body := rec.Body.String()
		assert.Contains(t, body, "datastar-patch-signals")
		assert.Contains(t, body, `{"username":"","email":"","password":"","confirmPassword":"","phone":"","terms":false}`)

		shown := strings.Index(body, `style="display: block"`)
		hidden := strings.LastIndex(body, `style="display: none"`)
		require.NotEqual(t, -1, shown)
		require.NotEqual(t, -1, hidden)
		assert.Less(t, shown, hidden)

		assert.Contains(t, body, `id="username" name="username" type="text" value=""`)
		assert.NotContains(t, body, `class="valid"`)
	})

	t.Run("rejected", func(t *testing.T) {
		t.Parallel()

		sink := &capture{}
		rec := serve(newService(t, sink), datastarPost("/submit", `{"username":"abc_123","terms":false}`))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, sink.subs)

		body := rec.Body.String()
		assert.NotContains(t, body, "datastar-patch-signals")
		assert.NotContains(t, body, "successMessage")
		assert.Contains(t, body, `id="emailError">Email is required</span>`)
		assert.Contains(t, body, `id="termsError">Terms is required</span>`)
		assert.Contains(t, body, `id="phone" name="phone" type="tel" class="valid"`)
		assert.Equal(t, 12, strings.Count(body, "datastar-patch-elements"))
	})
}

func TestSubmitForm(t *testing.T) {
	t.Parallel()

	post := func(values url.Values) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req
	}

	t.Run("accepted", func(t *testing.T) {
		t.Parallel()

		sink := &capture{}
		rec := serve(newService(t, sink), post(url.Values{
			"username":        {"abc_123"},
			"email":           {"a@b.co"},
			"password":        {"Password1!"},
			"confirmPassword": {"Password1!"},
			"terms":           {"on"},
		}))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, sink.subs, 1)
		body := rec.Body.String()
		assert.Contains(t, body, `style="display: block"`)
		assert.Contains(t, body, `id="username" name="username" type="text" value=""`)
	})

	t.Run("rejected keeps values", func(t *testing.T) {
		t.Parallel()

		sink := &capture{}
		rec := serve(newService(t, sink), post(url.Values{"username": {"abc_123"}, "email": {"bad"}}))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Empty(t, sink.subs)
		body := rec.Body.String()
		assert.Contains(t, body, `class="valid" value="abc_123"`)
		assert.Contains(t, body, `id="emailError">Please enter a valid email address</span>`)
		assert.Contains(t, body, `style="display: none"`)
	})

	t.Run("unsupported media type", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader("<x/>"))
		req.Header.Set("Content-Type", "text/xml")
		rec := serve(newService(t, &capture{}), req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
		assert.Contains(t, rec.Body.String(), "<h1>415</h1>")
	})
}

func TestRouter(t *testing.T) {
	t.Parallel()

	h := newService(t, &capture{})

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(requestid.Header))

	t.Run("base path", func(t *testing.T) {
		t.Parallel()

		svc := signup.NewService(signup.Config{BasePath: "/signup"})
		r := signup.Router(signup.RouterOptions{BasePath: "/signup", Form: svc})

		rec := serve(r, httptest.NewRequest(http.MethodGet, "/signup/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `action="/signup/submit"`)
		assert.Contains(t, rec.Body.String(), esc("@post('/signup/events/blur/username')"))
	})

	t.Run("request attributes in logs", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
		)
		svc := signup.NewService(signup.Config{Form: form.Config{SuccessDelay: time.Millisecond}}, signup.WithLogger(log))
		r := signup.Router(signup.RouterOptions{Form: svc})

		body := url.Values{
			"username":        {"abc_123"},
			"email":           {"a@b.co"},
			"password":        {"Password1!"},
			"confirmPassword": {"Password1!"},
			"terms":           {"on"},
		}.Encode()
		req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("X-Forwarded-For", "203.0.113.5")
		req.Header.Set(requestid.Header, "req-42")

		rec := serve(r, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, buf.String(), `"client_ip":"203.0.113.5"`)
		assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	})
}

func TestDefaultRecorderRedacts(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := newJSONLogger(buf)
	svc := signup.NewService(signup.Config{Form: form.Config{SuccessDelay: time.Millisecond}}, signup.WithLogger(log))

	rec := serve(svc.Handle(), datastarPost("/submit", validSignals))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, buf.String(), "form submitted with data")
	assert.Contains(t, buf.String(), `"password":"[redacted]"`)
	assert.NotContains(t, buf.String(), "Password1!")
}
