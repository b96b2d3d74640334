package relay

import (
	"context"

	"github.com/june-assistant/relay/core/protocol"
)

// TokenStream is a lazy sequence of token deltas. Recv returns io.EOF on
// the upstream's terminal signal and the transport error on a mid-stream
// abort.
type TokenStream interface {
	Recv() (string, error)
	Close() error
}

// Completer opens streaming completion calls. Abstracts the upstream client
// for testability.
type Completer interface {
	Stream(ctx context.Context, model string, messages []protocol.Message) (TokenStream, error)
}
