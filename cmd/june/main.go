package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/june-assistant/relay/observability"
	"github.com/june-assistant/relay/server"
)

func main() {
	var (
		configFile   = flag.String("config", "", "Path to server config JSON file")
		addr         = flag.String("addr", "", "Listen address (overrides config)")
		observerName = flag.String("observer", "", "Registered observer name (default: slog over stderr)")
		verbose      = flag.Bool("verbose", false, "Enable verbose logging to stderr")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	observer := observability.Observer(observability.NewSlogObserver(logger))
	if *observerName != "" {
		named, err := observability.GetObserver(*observerName)
		if err != nil {
			log.Fatalf("Failed to resolve observer: %v", err)
		}
		observer = named
	}

	cfg := server.DefaultConfig()
	if *configFile != "" {
		loaded, err := server.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	srv, err := server.New(&cfg, server.WithObserver(observer))
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
