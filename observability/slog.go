package observability

import (
	"context"
	"log/slog"
	"sort"
)

// SlogObserver bridges the event stream onto a slog.Logger: the event type
// becomes the log message, Level is translated through SlogLevel, and Data
// keys are emitted as attributes in sorted order so repeated events produce
// stable log lines.
type SlogObserver struct {
	log *slog.Logger
}

// NewSlogObserver wraps logger as an Observer.
func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	return &SlogObserver{log: logger}
}

func (o *SlogObserver) OnEvent(ctx context.Context, event Event) {
	keys := make([]string, 0, len(event.Data))
	for k := range event.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys)+1)
	attrs = append(attrs, slog.String("source", event.Source))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, event.Data[k]))
	}

	o.log.LogAttrs(ctx, event.Level.SlogLevel(), string(event.Type), attrs...)
}
