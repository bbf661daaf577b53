// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/matching"
)

var (
	// Store options
	dbPath = flag.String("db", "chess-data", "Game database directory")

	// Output options
	jsonOutput    = flag.Bool("J", false, "Output games in JSON format")
	unicodeGlyphs = flag.Bool("unicode", false, "Draw pieces with Unicode chess symbols")

	// Selection options
	materialPattern = flag.String("material", "", "find: material reached at some point, e.g. QR:qrr")
	exactMaterial   = flag.Bool("y", false, "find: match the -material pattern exactly")
	statusPrefix    = flag.String("status", "", "find: status prefix, e.g. checkmate or ongoing")

	// Duplicate options
	exactDupes = flag.Bool("exact", false, "dupes: also require the same number of plies")

	// Performance options
	workers = flag.Int("workers", 0, "Number of replay workers (0 = auto-detect based on CPU cores)")

	// Other options
	quiet   = flag.Bool("s", false, "Silent mode (no summary line)")
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	cfg.Store.Path = *dbPath
	cfg.Replay.Workers = *workers
	if *unicodeGlyphs {
		cfg.Display.Glyphs = config.UnicodeGlyphs
	}
	if *quiet {
		cfg.Verbosity = 0
	}
}

// buildCriteria builds the find criteria from the selection flags.
func buildCriteria() (*matching.CompositeMatcher, error) {
	criteria := matching.NewCompositeMatcher(matching.MatchAll)
	if *materialPattern != "" {
		mm, err := matching.NewMaterialMatcher(*materialPattern, *exactMaterial)
		if err != nil {
			return nil, err
		}
		criteria.Add(mm)
	}
	if *statusPrefix != "" {
		criteria.Add(matching.NewStatusMatcher(*statusPrefix))
	}
	return criteria, nil
}
