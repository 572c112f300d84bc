// Package logger builds the *slog.Logger used across formvalidator and keeps
// attribute keys consistent.
//
// New applies functional options on top of production-safe defaults (JSON,
// info level, stdout) and wraps the handler with a decorator that copies
// request-scoped values out of context.Context on every record:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, cfg.Name),
//	    logger.WithContextValue("submission_id", submissionKey),
//	)
//	log.InfoContext(ctx, "field validated",
//	    logger.Field("email"),
//	    logger.Valid(false),
//	)
//
// Error and Errors return an empty attribute for nil errors, so callers can
// log unconditionally.
package logger
