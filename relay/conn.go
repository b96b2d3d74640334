package relay

import "github.com/june-assistant/relay/core/protocol"

// Conn is one client duplex channel. The session is the only reader and the
// only event writer; keepalive traffic is the transport layer's business.
type Conn interface {
	// ReadTurn blocks until the next inbound frame arrives. Any error is
	// treated as the end of the session.
	ReadTurn() (*protocol.TurnRequest, error)
	// WriteEvent sends one outbound frame. An error means the client is
	// unreachable.
	WriteEvent(protocol.Event) error
}
