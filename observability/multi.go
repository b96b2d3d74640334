package observability

import "context"

// MultiObserver delivers each event to every sink in order. Useful when the
// relay should both log and feed a capture sink, e.g. slog plus a test
// recorder.
type MultiObserver struct {
	sinks []Observer
}

// NewMultiObserver builds a fan-out over the given observers; nil entries
// are dropped so callers can pass optional sinks unconditionally.
func NewMultiObserver(observers ...Observer) *MultiObserver {
	m := &MultiObserver{sinks: make([]Observer, 0, len(observers))}
	for _, sink := range observers {
		if sink != nil {
			m.sinks = append(m.sinks, sink)
		}
	}
	return m
}

func (m *MultiObserver) OnEvent(ctx context.Context, event Event) {
	for _, sink := range m.sinks {
		sink.OnEvent(ctx, event)
	}
}
