package server

import "github.com/june-assistant/relay/observability"

// Server event types emitted by the connection lifecycle and HTTP surface.
const (
	EventListen     observability.EventType = "server.listen"
	EventShutdown   observability.EventType = "server.shutdown"
	EventConnect    observability.EventType = "server.ws.connect"
	EventDisconnect observability.EventType = "server.ws.disconnect"
	EventUpgradeErr observability.EventType = "server.ws.upgrade_error"
)
