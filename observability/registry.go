package observability

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// NoOpObserver discards every event.
type NoOpObserver struct{}

func (NoOpObserver) OnEvent(ctx context.Context, event Event) {}

var registry = struct {
	sync.RWMutex
	byName map[string]Observer
}{
	byName: map[string]Observer{
		"noop": NoOpObserver{},
		"slog": NewSlogObserver(slog.Default()),
	},
}

// GetObserver resolves an observer by name. "noop" and "slog" are
// pre-registered; anything else must come through RegisterObserver first.
func GetObserver(name string) (Observer, error) {
	registry.RLock()
	defer registry.RUnlock()

	obs, ok := registry.byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown observer: %s", name)
	}
	return obs, nil
}

// RegisterObserver adds or replaces a named observer.
func RegisterObserver(name string, observer Observer) {
	registry.Lock()
	defer registry.Unlock()

	registry.byName[name] = observer
}
