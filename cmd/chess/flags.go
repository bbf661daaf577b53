// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/chessrules-go/internal/config"
)

var (
	// Game options
	position = flag.String("position", "", "Start from this position: placement [side [castling]]")
	dbPath   = flag.String("db", "", "Store the game in this database directory")
	resumeID = flag.String("resume", "", "Resume the stored game with this id (requires -db)")

	// Display options
	unicodeGlyphs = flag.Bool("unicode", false, "Draw pieces with Unicode chess symbols")
	noCoords      = flag.Bool("nocoords", false, "Don't draw board coordinates")
	flipBoard     = flag.Bool("flip", false, "Draw the board from Black's side on Black's turn")

	// Logging
	logFile = flag.String("l", "", "Write diagnostics to log file")
	quiet   = flag.Bool("s", false, "Silent mode (no diagnostics)")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	applyDisplayFlags(cfg)

	if *dbPath != "" {
		cfg.Store.Path = *dbPath
		cfg.Store.InMemory = false
	}
	if *quiet {
		cfg.Verbosity = 0
	}
}

// applyDisplayFlags configures how the board is drawn.
func applyDisplayFlags(cfg *config.Config) {
	if *unicodeGlyphs {
		cfg.Display.Glyphs = config.UnicodeGlyphs
	}
	cfg.Display.ShowCoordinates = !*noCoords
	cfg.Display.FlipForBlack = *flipBoard
}
