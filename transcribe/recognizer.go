// Package transcribe converts uploaded audio blobs to text. The external
// speech engine is reached through the Recognizer interface; the Bridge
// owns the temp staging of the blob and guarantees its release.
package transcribe

import "context"

// Segment is one recognized fragment, in utterance order.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start,omitempty"`
	End   float64 `json:"end,omitempty"`
}

// Recognizer transcribes a filesystem-resident audio resource. Decoding
// runs with voice-activity filtering and the narrowest search breadth so
// latency stays low.
type Recognizer interface {
	Recognize(ctx context.Context, path string) ([]Segment, error)
}
