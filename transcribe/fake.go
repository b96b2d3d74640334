package transcribe

import (
	"context"
	"os"
)

// FakeRecognizer is a Recognizer for tests. It records the staged path it
// was handed and whether that path existed at call time.
type FakeRecognizer struct {
	Segments []Segment
	Err      error

	LastPath   string
	PathExists bool
}

func (f *FakeRecognizer) Recognize(_ context.Context, path string) ([]Segment, error) {
	f.LastPath = path
	_, statErr := os.Stat(path)
	f.PathExists = statErr == nil

	if f.Err != nil {
		return nil, f.Err
	}
	return f.Segments, nil
}
