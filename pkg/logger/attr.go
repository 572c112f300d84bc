package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups non-nil errors under "errors". All-nil input yields an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under "error"; nil yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Field records a form field name.
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Event records a document event type.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Valid records a validation verdict.
func Valid(ok bool) slog.Attr {
	return slog.Bool("valid", ok)
}

// SubmissionID records a submission identifier; nil yields an empty Attr.
func SubmissionID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("submission_id", id)
}

// RequestID records a request identifier; empty yields an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component records the emitting component.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Data records a flat string map as a group with keys in the given order.
// Keys missing from data are skipped.
func Data(name string, data map[string]string, order []string) slog.Attr {
	as := make([]slog.Attr, 0, len(data))
	for _, k := range order {
		if v, ok := data[k]; ok {
			as = append(as, slog.String(k, v))
		}
	}
	return Group(name, as...)
}
