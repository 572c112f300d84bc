package form

import (
	"context"
	"log/slog"
	"slices"
	"sort"

	"github.com/dmitrymomot/formvalidator/pkg/logger"
)

// RedactedValue replaces masked values in logs.
const RedactedValue = "[redacted]"

// Recorder receives accepted submissions. It is the only side effect of a
// submission; nothing is transmitted or stored by this package.
type Recorder interface {
	Record(ctx context.Context, sub Submission) error
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(ctx context.Context, sub Submission) error

func (f RecorderFunc) Record(ctx context.Context, sub Submission) error {
	return f(ctx, sub)
}

// LogRecorder writes submissions to a structured log.
type LogRecorder struct {
	logger *slog.Logger
	redact []string
}

// NewLogRecorder logs submissions at info level, masking the values of the
// redact fields.
func NewLogRecorder(l *slog.Logger, redact ...string) *LogRecorder {
	if l == nil {
		l = logger.Discard()
	}
	return &LogRecorder{logger: l, redact: redact}
}

func (r *LogRecorder) Record(ctx context.Context, sub Submission) error {
	keys := make([]string, 0, len(sub.Data))
	masked := make(map[string]string, len(sub.Data))
	for k, v := range sub.Data {
		keys = append(keys, k)
		if slices.Contains(r.redact, k) {
			v = RedactedValue
		}
		masked[k] = v
	}
	sort.Strings(keys)

	r.logger.InfoContext(ctx, "form submitted with data",
		logger.SubmissionID(sub.ID.String()),
		slog.Time("submitted_at", sub.SubmittedAt),
		logger.Data("data", masked, keys),
	)
	return nil
}
