package httpserver

import (
	"log/slog"
	"time"
)

// Option configures a Server.
type Option func(*options)

// Hook runs when the server starts listening or after it stops. addr is
// the bound listener address.
type Hook func(log *slog.Logger, addr string)

func WithAddr(addr string) Option {
	if addr == "" {
		panic("httpserver: empty addr")
	}
	return func(o *options) { o.addr = addr }
}

func WithReadTimeout(d time.Duration) Option {
	return durationOption("read timeout", d, func(o *options) *time.Duration { return &o.readTimeout })
}

func WithWriteTimeout(d time.Duration) Option {
	return durationOption("write timeout", d, func(o *options) *time.Duration { return &o.writeTimeout })
}

func WithIdleTimeout(d time.Duration) Option {
	return durationOption("idle timeout", d, func(o *options) *time.Duration { return &o.idleTimeout })
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return durationOption("shutdown timeout", d, func(o *options) *time.Duration { return &o.shutdownTimeout })
}

func durationOption(name string, d time.Duration, field func(*options) *time.Duration) Option {
	if d <= 0 {
		panic("httpserver: " + name + " must be > 0")
	}
	return func(o *options) { *field(o) = d }
}

// WithLogger sets the server logger. Nil keeps the discarding default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithStartHook(h Hook) Option {
	if h == nil {
		panic("httpserver: nil start hook")
	}
	return func(o *options) { o.startHooks = append(o.startHooks, h) }
}

func WithStopHook(h Hook) Option {
	if h == nil {
		panic("httpserver: nil stop hook")
	}
	return func(o *options) { o.stopHooks = append(o.stopHooks, h) }
}
