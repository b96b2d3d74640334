// Package server wires the HTTP surface: the websocket chat endpoint, the
// REST collaborator routes, health probes, and static assets. It owns
// connection lifecycle: accept, keepalive, and teardown.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/june-assistant/relay/core/protocol"
	"github.com/june-assistant/relay/history"
	"github.com/june-assistant/relay/identity"
	"github.com/june-assistant/relay/observability"
	"github.com/june-assistant/relay/policy"
	"github.com/june-assistant/relay/relay"
	"github.com/june-assistant/relay/transcribe"
	"github.com/june-assistant/relay/upstream"
)

const shutdownGrace = 10 * time.Second

// Option configures a Server after config-driven initialization.
type Option func(*Server)

// WithStore overrides the config-created history store.
func WithStore(store history.Store) Option {
	return func(s *Server) { s.store = store }
}

// WithDirectory overrides the config-created identity directory.
func WithDirectory(dir identity.Directory) Option {
	return func(s *Server) { s.directory = dir }
}

// WithRecognizer overrides the config-created speech recognizer.
func WithRecognizer(rec transcribe.Recognizer) Option {
	return func(s *Server) { s.bridge = transcribe.NewBridge(rec) }
}

// WithCompleter overrides the upstream completion client.
func WithCompleter(c relay.Completer) Option {
	return func(s *Server) { s.completer = c }
}

// WithObserver overrides the default SlogObserver.
func WithObserver(o observability.Observer) Option {
	return func(s *Server) { s.observer = o }
}

// Server is the composition root: it builds every subsystem from config and
// serves the HTTP routes over them.
type Server struct {
	cfg       *Config
	injector  *policy.Injector
	lm        *upstream.Client
	completer relay.Completer
	store     history.Store
	recorder  *history.Recorder
	directory identity.Directory
	bridge    *transcribe.Bridge
	observer  observability.Observer

	router *gin.Engine
}

// New creates a Server from configuration. An empty history DSN selects the
// in-memory store and an empty directory; functional options can override
// any subsystem for testing.
func New(cfg *Config, opts ...Option) (*Server, error) {
	lm := upstream.New(&cfg.Upstream)

	s := &Server{
		cfg:       cfg,
		injector:  policy.New(cfg.SystemPrompt),
		lm:        lm,
		completer: upstreamCompleter{client: lm},
		bridge:    transcribe.NewBridge(transcribe.NewWhisperServer(cfg.Transcriber.URL)),
		observer:  observability.NewSlogObserver(slog.Default()),
	}

	if cfg.History.DSN != "" {
		db, err := history.OpenDB(&cfg.History)
		if err != nil {
			return nil, err
		}
		s.store = history.NewGormStore(db)
		s.directory = identity.NewGormDirectory(db)
	} else {
		s.store = history.NewMemoryStore()
		s.directory = identity.NewMemoryDirectory(nil)
	}

	for _, opt := range opts {
		opt(s)
	}

	s.recorder = history.NewRecorder(s.store)
	s.router = s.buildRouter()
	return s, nil
}

// Handler returns the HTTP handler. Exposed for httptest-based tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains connections within the
// shutdown grace period.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.router,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		s.observer.OnEvent(ctx, observability.Event{
			Type:      EventListen,
			Level:     observability.LevelInfo,
			Timestamp: time.Now(),
			Source:    "server.Run",
			Data:      map[string]any{"addr": s.cfg.Addr},
		})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.observer.OnEvent(context.Background(), observability.Event{
		Type:      EventShutdown,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "server.Run",
		Data:      map[string]any{},
	})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	origins := s.cfg.Origins()
	if len(origins) == 1 && origins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	corsCfg.AllowCredentials = !corsCfg.AllowAllOrigins
	corsCfg.AllowHeaders = []string{"*"}
	corsCfg.AllowMethods = []string{"*"}
	router.Use(cors.New(corsCfg))

	router.GET("/ws/chat", s.handleChat)

	api := router.Group("/api")
	api.POST("/login", s.handleLogin)
	api.POST("/logout", s.handleLogout)
	api.GET("/history", s.handleHistory)
	api.POST("/transcribe", s.handleTranscribe)

	router.GET("/health/db", s.handleHealthDB)
	router.GET("/health/lm", s.handleHealthLM)

	if s.cfg.StaticDir != "" {
		router.Static("/static", s.cfg.StaticDir)
		router.GET("/", func(c *gin.Context) {
			c.File(filepath.Join(s.cfg.StaticDir, "login.html"))
		})
		router.GET("/chat", func(c *gin.Context) {
			c.File(filepath.Join(s.cfg.StaticDir, "chat.html"))
		})
	}

	return router
}

// upstreamCompleter adapts the upstream client to the relay's Completer.
type upstreamCompleter struct {
	client *upstream.Client
}

func (u upstreamCompleter) Stream(ctx context.Context, model string, messages []protocol.Message) (relay.TokenStream, error) {
	stream, err := u.client.Stream(ctx, model, messages)
	if err != nil {
		return nil, err
	}
	return stream, nil
}
