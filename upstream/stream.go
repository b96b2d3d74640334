package upstream

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

// maxLineSize bounds one SSE line. Deltas are small; this only guards
// against a misbehaving upstream.
const maxLineSize = 1 << 20

const (
	dataPrefix   = "data:"
	doneSentinel = "[DONE]"
)

// lineKind is the transition taken for one scanned line.
type lineKind int

const (
	lineSkip  lineKind = iota // blank, comment, non-data, or malformed payload
	lineDelta                 // payload carried a content fragment
	lineDone                  // payload was the terminal sentinel
)

// Stream is the lazy sequence of token deltas from one completion call.
// Not safe for concurrent use; a stream belongs to exactly one turn.
type Stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
}

func newStream(body io.ReadCloser) *Stream {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	return &Stream{body: body, scanner: scanner}
}

// Recv returns the next non-empty token delta. It returns io.EOF once the
// upstream signals the terminal sentinel or closes the stream cleanly, and
// the underlying transport error if the read aborts mid-stream. Lines that
// fail to parse are skipped; one malformed line never ends a healthy stream.
func (s *Stream) Recv() (string, error) {
	for s.scanner.Scan() {
		kind, delta := classify(s.scanner.Text())
		switch kind {
		case lineDelta:
			return delta, nil
		case lineDone:
			return "", io.EOF
		}
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// Close releases the underlying response body. Safe to call after Recv has
// returned a terminal result, and required when abandoning a stream early.
func (s *Stream) Close() error {
	return s.body.Close()
}

// classify is the per-line step of the event-stream state machine: blank
// lines, comments, and non-data lines skip; a data payload either ends the
// stream (sentinel), yields a delta, or — when malformed or empty — skips.
func classify(line string) (lineKind, string) {
	if line == "" || strings.HasPrefix(line, ":") {
		return lineSkip, ""
	}
	if !strings.HasPrefix(line, dataPrefix) {
		return lineSkip, ""
	}

	payload := strings.TrimSpace(line[len(dataPrefix):])
	if payload == doneSentinel {
		return lineDone, ""
	}

	var event struct {
		Choices []struct {
			Delta struct {
				Content string `json:"content"`
			} `json:"delta"`
		} `json:"choices"`
	}
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return lineSkip, ""
	}
	if len(event.Choices) == 0 || event.Choices[0].Delta.Content == "" {
		return lineSkip, ""
	}
	return lineDelta, event.Choices[0].Delta.Content
}
