// Package httpserver runs an http.Handler with graceful shutdown.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// Run blocks until ctx is cancelled, SIGINT or SIGTERM arrives, or Shutdown
// is called. In-flight requests, including open event streams, get
// ShutdownTimeout to finish.
package httpserver
