// Package clientip resolves the address of the client behind a request and
// carries it through the request context into logs.
package clientip

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/dmitrymomot/formvalidator/pkg/logger"
)

// DefaultHeaders are consulted in order before RemoteAddr.
// X-Forwarded-For may hold a list; its first valid entry wins.
var DefaultHeaders = []string{
	"CF-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

type contextKey struct{}

// WithContext stores ip in ctx.
func WithContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKey{}, ip)
}

// FromContext returns the stored address, or "" when there is none.
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	ip, _ := ctx.Value(contextKey{}).(string)
	return ip
}

// Resolve returns the normalized client address read from the first
// header that holds a valid IP, falling back to RemoteAddr.
// Pass no headers to trust RemoteAddr only.
func Resolve(r *http.Request, headers ...string) string {
	for _, h := range headers {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		for candidate := range strings.SplitSeq(v, ",") {
			if ip := normalize(candidate); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return normalize(r.RemoteAddr)
	}
	return normalize(host)
}

// Middleware stores the address resolved from headers in the request
// context. A nil headers slice means DefaultHeaders.
func Middleware(headers []string) func(http.Handler) http.Handler {
	if headers == nil {
		headers = DefaultHeaders
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithContext(r.Context(), Resolve(r, headers...))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoggerExtractor adds client_ip to records logged with a request context.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if ip := FromContext(ctx); ip != "" {
			return slog.String("client_ip", ip), true
		}
		return slog.Attr{}, false
	}
}

func normalize(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
