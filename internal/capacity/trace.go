package capacity

import (
	"context"
	"log/slog"
)

// TraceEvent is a diagnostic record emitted from inside a calculation.
type TraceEvent struct {
	Name   string
	Fields map[string]any
}

// Tracer receives diagnostic events. Calculations never log on their own.
type Tracer interface {
	Trace(event TraceEvent)
}

// NoopTracer discards all events.
type NoopTracer struct{}

func (NoopTracer) Trace(TraceEvent) {}

// TraceFunc adapts a plain function to Tracer.
type TraceFunc func(event TraceEvent)

func (f TraceFunc) Trace(event TraceEvent) { f(event) }

type slogTracer struct {
	logger *slog.Logger
}

// NewSlogTracer writes trace events to logger at debug level.
func NewSlogTracer(logger *slog.Logger) Tracer {
	if logger == nil {
		return NoopTracer{}
	}
	return &slogTracer{logger: logger}
}

func (t *slogTracer) Trace(event TraceEvent) {
	attrs := make([]any, 0, len(event.Fields)*2)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	t.logger.Log(context.Background(), slog.LevelDebug, event.Name, attrs...)
}
