package relay

import "github.com/june-assistant/relay/observability"

// Relay event types emitted over a session's lifetime.
const (
	EventSessionOpen    observability.EventType = "relay.session.open"
	EventSessionClose   observability.EventType = "relay.session.close"
	EventTurnStart      observability.EventType = "relay.turn.start"
	EventTurnInvalid    observability.EventType = "relay.turn.invalid"
	EventTurnComplete   observability.EventType = "relay.turn.complete"
	EventUpstreamError  observability.EventType = "relay.upstream.error"
	EventClientGone     observability.EventType = "relay.client.gone"
	EventPersistFailure observability.EventType = "relay.persist.failure"
)
