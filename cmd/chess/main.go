// chess is a two-player terminal chess game: pick a piece, see where it can
// go, pick a destination.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lgbarn/chessrules-go/internal/config"
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
		fmt.Printf("chess version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	setupLogFile(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *resumeID != "" && *dbPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -resume requires -db")
		os.Exit(1)
	}

	if err := play(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// play opens the store if one was requested and runs the prompt loop.
func play(cfg *config.Config) error {
	var st *store.Store
	if *dbPath != "" {
		var err error
		if st, err = store.Open(cfg.Store); err != nil {
			return err
		}
		defer st.Close()
	}

	s, err := newSession(cfg, st, *resumeID, *position, os.Stdin, cfg.OutputFile)
	if err != nil {
		return err
	}
	return s.run()
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
	fmt.Fprintf(os.Stderr, "Usage: chess [options]\n\n")
	fmt.Fprintf(os.Stderr, "Play chess for two players at one terminal.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nAt the prompt:\n")
	fmt.Fprintf(os.Stderr, "  e2       select the piece on e2 and list its moves\n")
	fmt.Fprintf(os.Stderr, "  O-O      castle king side (O-O-O for queen side)\n")
	fmt.Fprintf(os.Stderr, "  q        quit\n")
}
