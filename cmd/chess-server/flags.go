// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"strings"
	"time"

	"github.com/lgbarn/chessrules-go/internal/config"
)

var (
	// Server options
	addr         = flag.String("addr", ":8080", "Listen address")
	readTimeout  = flag.Duration("read-timeout", 15*time.Second, "HTTP read timeout")
	writeTimeout = flag.Duration("write-timeout", 15*time.Second, "HTTP write timeout")
	origins      = flag.String("origins", "", "Comma-separated CORS origins (empty = same origin only)")

	// Store options
	dbPath     = flag.String("db", "chess-data", "Game database directory")
	inMemory   = flag.Bool("memory", false, "Keep games in memory only")
	syncWrites = flag.Bool("sync", false, "Sync every write to disk")

	// Performance options
	workers = flag.Int("workers", 0, "Number of replay workers at start-up (0 = auto-detect based on CPU cores)")

	// Logging
	logFile = flag.String("l", "", "Write diagnostics to log file")
	quiet   = flag.Bool("s", false, "Silent mode (no access log)")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	applyServerFlags(cfg)
	applyStoreFlags(cfg)

	cfg.Replay.Workers = *workers
	if *quiet {
		cfg.Verbosity = 0
	}
}

// applyServerFlags configures the HTTP listener.
func applyServerFlags(cfg *config.Config) {
	cfg.Server.Addr = *addr
	cfg.Server.ReadTimeout = *readTimeout
	cfg.Server.WriteTimeout = *writeTimeout
	cfg.Server.AllowedOrigins = splitList(*origins)
}

// applyStoreFlags configures the game database.
func applyStoreFlags(cfg *config.Config) {
	cfg.Store.Path = *dbPath
	cfg.Store.InMemory = *inMemory
	cfg.Store.SyncWrites = *syncWrites
}

// splitList splits a comma-separated flag value, dropping empty items.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
