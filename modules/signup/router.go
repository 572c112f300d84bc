package signup

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/formvalidator/pkg/clientip"
	"github.com/dmitrymomot/formvalidator/pkg/requestid"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures what Router mounts. Nil entries are skipped.
type RouterOptions struct {
	// BasePath is where Form is mounted. Defaults to "/".
	BasePath string
	Form     Mountable
	Health   http.Handler
	// TrustedHeaders name the proxy headers read for the client address.
	// Nil means clientip.DefaultHeaders; an empty slice trusts none.
	TrustedHeaders []string
}

// Router returns the application router: request ids, client addresses,
// panic recovery, /healthz and the signup routes.
//
//	svc := signup.NewService(cfg.Signup, signup.WithLogger(log))
//	r := signup.Router(signup.RouterOptions{
//	    Form:   svc,
//	    Health: httpserver.HealthCheckHandler(log),
//	})
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware(opts.TrustedHeaders),
		middleware.Recoverer,
	)

	if opts.Health != nil {
		r.Method(http.MethodGet, "/healthz", opts.Health)
	}
	if opts.Form != nil {
		base := opts.BasePath
		if base == "" {
			base = "/"
		}
		r.Mount(base, opts.Form.Handle())
	}
	return r
}
