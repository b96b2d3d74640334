// Package relay implements the per-connection session loop: it consumes
// client turn frames, forwards canonicalized requests upstream, republishes
// the token stream to the client, and records both sides of each turn.
package relay

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/june-assistant/relay/core/protocol"
	"github.com/june-assistant/relay/history"
	"github.com/june-assistant/relay/observability"
	"github.com/june-assistant/relay/policy"
	"github.com/june-assistant/relay/upstream"
)

// Session owns one client connection. Turns are processed strictly one at a
// time in arrival order; a new frame is read only after the previous turn's
// terminal event has been emitted. Sessions share no mutable state.
type Session struct {
	id        string
	conn      Conn
	injector  *policy.Injector
	completer Completer
	recorder  *history.Recorder
	observer  observability.Observer

	// pending tracks fire-and-forget history writes so Run returns only
	// after they finish.
	pending sync.WaitGroup
}

// Option configures a Session after construction.
type Option func(*Session)

// WithObserver overrides the default SlogObserver.
func WithObserver(o observability.Observer) Option {
	return func(s *Session) { s.observer = o }
}

// NewSession creates a Session for one connection. The session is assigned
// a unique UUIDv7 identifier.
func NewSession(conn Conn, injector *policy.Injector, completer Completer, recorder *history.Recorder, opts ...Option) *Session {
	s := &Session{
		id:        uuid.Must(uuid.NewV7()).String(),
		conn:      conn,
		injector:  injector,
		completer: completer,
		recorder:  recorder,
		observer:  observability.NewSlogObserver(slog.Default()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the unique session identifier.
func (s *Session) ID() string {
	return s.id
}

// Run blocks for the connection's lifetime, consuming one frame at a time.
// It returns nil when the client disconnects; a closing connection is the
// normal end of a session, not an error. Pending history writes are drained
// before returning.
func (s *Session) Run(ctx context.Context) error {
	s.emit(ctx, EventSessionOpen, observability.LevelInfo, nil)
	defer s.pending.Wait()
	defer s.emit(ctx, EventSessionClose, observability.LevelInfo, nil)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		turn, err := s.conn.ReadTurn()
		if err != nil {
			return nil
		}

		s.handleTurn(ctx, turn)
	}
}

// handleTurn drives one turn from validation to its terminal event. All
// failures are isolated to the turn; the session accepts the next frame
// regardless of how this one ended.
func (s *Session) handleTurn(ctx context.Context, turn *protocol.TurnRequest) {
	if err := turn.Validate(); err != nil {
		s.emit(ctx, EventTurnInvalid, observability.LevelWarning, map[string]any{"error": err.Error()})
		s.conn.WriteEvent(protocol.ErrorEvent(err.Error()))
		return
	}

	s.emit(ctx, EventTurnStart, observability.LevelVerbose, map[string]any{
		"reg_no": turn.RegNo,
		"model":  turn.ModelOrDefault(),
	})

	messages := s.injector.Canonical(turn.Content)

	// Dispatched before the upstream call opens; never awaited on the
	// token path.
	s.persist(ctx, turn.RegNo, "user", func(writeCtx context.Context) error {
		return s.recorder.User(writeCtx, turn.RegNo, turn.Content)
	})

	turnCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream, err := s.completer.Stream(turnCtx, turn.ModelOrDefault(), messages)
	if err != nil {
		s.emit(ctx, EventUpstreamError, observability.LevelWarning, map[string]any{"error": err.Error()})
		s.conn.WriteEvent(protocol.ErrorEvent(upstreamErrorText(err)))
		return
	}
	defer stream.Close()

	var buffer []string
	clientGone := false

	for {
		delta, err := stream.Recv()
		if err == io.EOF {
			if writeErr := s.conn.WriteEvent(protocol.DoneEvent()); writeErr != nil {
				clientGone = true
			}
			break
		}
		if err != nil {
			s.emit(ctx, EventUpstreamError, observability.LevelWarning, map[string]any{"error": err.Error()})
			s.conn.WriteEvent(protocol.ErrorEvent("Stream failed: " + err.Error()))
			break
		}

		buffer = append(buffer, delta)
		if writeErr := s.conn.WriteEvent(protocol.TokenEvent(delta)); writeErr != nil {
			// Client went away mid-stream: abort the upstream read and
			// drop the partial reply.
			clientGone = true
			cancel()
			break
		}
	}

	if clientGone {
		s.emit(ctx, EventClientGone, observability.LevelInfo, map[string]any{"reg_no": turn.RegNo})
		return
	}

	reply := strings.TrimSpace(strings.Join(buffer, ""))
	if reply != "" {
		s.persist(ctx, turn.RegNo, "assistant", func(writeCtx context.Context) error {
			return s.recorder.Assistant(writeCtx, turn.RegNo, reply)
		})
	}

	s.emit(ctx, EventTurnComplete, observability.LevelVerbose, map[string]any{
		"reg_no": turn.RegNo,
		"tokens": len(buffer),
	})
}

// persist dispatches one best-effort history write. Failures are observed,
// never surfaced and never retried. The write outlives turn cancellation.
func (s *Session) persist(ctx context.Context, regNo, side string, write func(context.Context) error) {
	writeCtx := context.WithoutCancel(ctx)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := write(writeCtx); err != nil {
			s.emit(writeCtx, EventPersistFailure, observability.LevelError, map[string]any{
				"reg_no": regNo,
				"side":   side,
				"error":  err.Error(),
			})
		}
	}()
}

func (s *Session) emit(ctx context.Context, eventType observability.EventType, level observability.Level, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	data["session_id"] = s.id
	s.observer.OnEvent(ctx, observability.Event{
		Type:      eventType,
		Level:     level,
		Timestamp: time.Now(),
		Source:    "relay.Session",
		Data:      data,
	})
}

// upstreamErrorText maps a call-establishment failure to the client-visible
// diagnostic: status failures keep the upstream's own wording, transport
// failures read as stream failures.
func upstreamErrorText(err error) string {
	var statusErr *upstream.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Error()
	}
	return "Stream failed: " + err.Error()
}
