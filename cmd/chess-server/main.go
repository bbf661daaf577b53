// chess-server serves chess games over HTTP and WebSocket.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/server"
	"github.com/lgbarn/chessrules-go/internal/store"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}
	if *version {
		fmt.Printf("chess-server version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	setupLogFile(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// serve opens the store, restores the stored games and serves until ctx ends.
func serve(ctx context.Context, cfg *config.Config) error {
	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := server.New(cfg, st)
	restored, failed, err := srv.Hub().Restore(ctx, cfg.Replay)
	if err != nil {
		return err
	}
	cfg.Logf(1, "restored %d games", restored)
	for _, r := range failed {
		cfg.Logf(1, "game %s not restored: %v", r.Record.ID, r.Error)
	}

	return srv.ListenAndServe(ctx)
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess-server [options]\n\n")
	fmt.Fprintf(os.Stderr, "Serve chess games over HTTP and WebSocket.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nEndpoints:\n")
	fmt.Fprintf(os.Stderr, "  POST /api/games                     create a game ({\"position\": ...} optional)\n")
	fmt.Fprintf(os.Stderr, "  GET  /api/games                     list games\n")
	fmt.Fprintf(os.Stderr, "  GET  /api/games/{id}                game state\n")
	fmt.Fprintf(os.Stderr, "  GET  /api/games/{id}/moves/{square} moves of one piece\n")
	fmt.Fprintf(os.Stderr, "  POST /api/games/{id}/moves          play {\"move\": \"e2e4\"}\n")
	fmt.Fprintf(os.Stderr, "  GET  /ws/games/{id}                 WebSocket state stream\n")
	fmt.Fprintf(os.Stderr, "  GET  /healthz                       liveness\n")
}
