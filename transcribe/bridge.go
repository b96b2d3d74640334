package transcribe

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Bridge stages an audio blob to a scoped temp file, hands it to the
// recognizer, and joins the recognized segments. The temp file is removed
// on every exit path.
type Bridge struct {
	recognizer Recognizer
}

// NewBridge creates a Bridge over the given recognizer.
func NewBridge(recognizer Recognizer) *Bridge {
	return &Bridge{recognizer: recognizer}
}

// Transcribe writes audio to a temp file, recognizes it, and returns the
// concatenated text trimmed of surrounding whitespace.
func (b *Bridge) Transcribe(ctx context.Context, audio []byte) (string, error) {
	tmp, err := os.CreateTemp("", "june-audio-*.webm")
	if err != nil {
		return "", fmt.Errorf("stage audio: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.Write(audio); err != nil {
		tmp.Close()
		return "", fmt.Errorf("stage audio: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("stage audio: %w", err)
	}

	segments, err := b.recognizer.Recognize(ctx, path)
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}

	var sb strings.Builder
	for _, seg := range segments {
		sb.WriteString(seg.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}
