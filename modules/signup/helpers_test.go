package signup_test

import (
	"io"
	"log/slog"

	"github.com/dmitrymomot/formvalidator/pkg/logger"
)

func newJSONLogger(w io.Writer) *slog.Logger {
	return logger.New(logger.WithOutput(w), logger.WithLevel(slog.LevelDebug))
}
