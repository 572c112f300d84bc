package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrymomot/formvalidator/pkg/logger"
)

type options struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger
	startHooks      []Hook
	stopHooks       []Hook
}

// Server wraps http.Server with signal handling and graceful shutdown.
type Server struct {
	opts options

	mu   sync.Mutex
	srv  *http.Server
	addr string
	once sync.Once
}

func New(opts ...Option) *Server {
	o := options{
		addr:            ":8080",
		shutdownTimeout: 5 * time.Second,
		logger:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.With(logger.Component("httpserver"))
	return &Server{opts: o}
}

// Addr returns the bound address once Run is listening, "" before.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Run listens and serves h until ctx is done, a termination signal arrives
// or Shutdown is called. A nil h serves 404 for every request.
func (s *Server) Run(ctx context.Context, h http.Handler) error {
	if h == nil {
		h = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, ErrAlreadyRunning)
	}

	ln, err := net.Listen("tcp", s.opts.addr)
	if err != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, err)
	}

	s.srv = &http.Server{
		Handler:      h,
		ReadTimeout:  s.opts.readTimeout,
		WriteTimeout: s.opts.writeTimeout,
		IdleTimeout:  s.opts.idleTimeout,
		ErrorLog:     slog.NewLogLogger(s.opts.logger.Handler(), slog.LevelWarn),
	}
	s.addr = ln.Addr().String()
	srv, addr := s.srv, s.addr
	s.mu.Unlock()

	s.opts.logger.Info("http server listening", slog.String("addr", addr))
	for _, hook := range s.opts.startHooks {
		hook(s.opts.logger, addr)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var runErr error
	select {
	case <-sigCtx.Done():
		if err := s.Shutdown(context.Background()); err != nil {
			s.opts.logger.Error("graceful shutdown failed", logger.Error(err))
		}
		runErr = <-errCh
	case runErr = <-errCh:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, runErr)
	}
	return nil
}

// Shutdown gracefully stops a running server. Later calls are no-ops.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv, addr := s.srv, s.addr
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	var err error
	s.once.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, s.opts.shutdownTimeout)
		defer cancel()

		s.opts.logger.Info("http server shutting down", slog.String("addr", addr))
		err = srv.Shutdown(ctx)
		for _, hook := range s.opts.stopHooks {
			hook(s.opts.logger, addr)
		}
	})

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}
