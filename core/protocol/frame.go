package protocol

import "strings"

// DefaultModel is the model identifier used when a turn omits the model field.
const DefaultModel = "llama-3.2-3b-instruct"

// TurnRequest is one inbound client frame: a single user turn. The register
// number identifies the student, content carries the question, and model
// optionally selects the upstream model.
type TurnRequest struct {
	RegNo   string `json:"reg_no"`
	Content string `json:"content"`
	Model   string `json:"model,omitempty"`
}

// Validate checks the required turn fields. RegNo is trimmed in place;
// content must be non-empty after trimming but is forwarded as received.
func (t *TurnRequest) Validate() error {
	t.RegNo = strings.TrimSpace(t.RegNo)
	if t.RegNo == "" || strings.TrimSpace(t.Content) == "" {
		return ErrMissingFields
	}
	return nil
}

// ModelOrDefault returns the requested model id, falling back to DefaultModel.
func (t *TurnRequest) ModelOrDefault() string {
	if t.Model == "" {
		return DefaultModel
	}
	return t.Model
}

// EventKind discriminates outbound frames on the duplex channel.
type EventKind string

const (
	EventToken EventKind = "token" // one incremental reply fragment
	EventDone  EventKind = "done"  // successful turn terminal
	EventError EventKind = "error" // failure terminal; connection stays open
)

// Event is one outbound frame. Text is populated for token and error events.
type Event struct {
	Event EventKind `json:"event"`
	Text  string    `json:"text,omitempty"`
}

// TokenEvent wraps one reply fragment for forwarding.
func TokenEvent(text string) Event {
	return Event{Event: EventToken, Text: text}
}

// DoneEvent is the successful terminal frame of a turn.
func DoneEvent() Event {
	return Event{Event: EventDone}
}

// ErrorEvent is the failure terminal frame of a turn.
func ErrorEvent(text string) Event {
	return Event{Event: EventError, Text: text}
}
