package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor pulls an attribute out of a context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// ContextValue returns an extractor logging ctx.Value(key) under name.
func ContextValue(name string, key any) ContextExtractor {
	if name == "" || key == nil {
		return nil
	}
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := ctx.Value(key); v != nil {
			return slog.Any(name, v), true
		}
		return slog.Attr{}, false
	}
}

// HandlerDecorator injects context attributes before delegating to next.
type HandlerDecorator struct {
	next       slog.Handler
	extractors []ContextExtractor
}

func NewHandlerDecorator(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	return &HandlerDecorator{next: next, extractors: clean}
}

func (h *HandlerDecorator) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *HandlerDecorator) Handle(ctx context.Context, rec slog.Record) error {
	if ctx != nil {
		for _, ex := range h.extractors {
			if attr, ok := ex(ctx); ok {
				rec.AddAttrs(attr)
			}
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *HandlerDecorator) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &HandlerDecorator{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *HandlerDecorator) WithGroup(name string) slog.Handler {
	return &HandlerDecorator{next: h.next.WithGroup(name), extractors: h.extractors}
}
