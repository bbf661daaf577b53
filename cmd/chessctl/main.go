// chessctl inspects and checks the game database used by chess and
// chess-server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

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
		fmt.Printf("chessctl version %s\n", programVersion)
		os.Exit(0)
	}
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := execute(ctx, cfg, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// execute opens the store and runs one command against it.
func execute(ctx context.Context, cfg *config.Config, args []string) error {
	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	criteria, err := buildCriteria()
	if err != nil {
		return err
	}
	c := &commands{cfg: cfg, st: st, out: cfg.OutputFile, json: *jsonOutput, exact: *exactDupes, criteria: criteria}
	return c.run(ctx, args)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chessctl [options] command [ids...]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  list           list stored games\n")
	fmt.Fprintf(os.Stderr, "  show id...     print games (board, status and moves)\n")
	fmt.Fprintf(os.Stderr, "  verify [id...] replay games through the rules and report failures\n")
	fmt.Fprintf(os.Stderr, "  find [id...]   list games selected by -material and -status\n")
	fmt.Fprintf(os.Stderr, "  dupes [id...]  report games ending in an already seen position\n")
	fmt.Fprintf(os.Stderr, "  delete id...   remove games\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}
