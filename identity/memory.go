package identity

import (
	"context"
	"fmt"
	"sync"
)

type memoryDirectory struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

// NewMemoryDirectory creates a Directory backed by an in-memory map. Used
// in tests and for storeless development runs.
func NewMemoryDirectory(students map[string]Profile) Directory {
	profiles := make(map[string]Profile, len(students))
	for regNo, p := range students {
		profiles[regNo] = p
	}
	return &memoryDirectory{profiles: profiles}
}

func (d *memoryDirectory) Lookup(_ context.Context, regNo string) (*Profile, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	p, ok := d.profiles[regNo]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, regNo)
	}
	return &p, nil
}
