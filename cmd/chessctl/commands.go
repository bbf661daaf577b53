package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/hashing"
	"github.com/lgbarn/chessrules-go/internal/matching"
	"github.com/lgbarn/chessrules-go/internal/output"
	"github.com/lgbarn/chessrules-go/internal/store"
	"github.com/lgbarn/chessrules-go/internal/worker"
)

// errVerifyFailed is returned by verify when any game fails to replay.
var errVerifyFailed = errors.New("some games failed verification")

// commands runs chessctl subcommands against an open store.
type commands struct {
	cfg  *config.Config
	st   *store.Store
	out  io.Writer
	json bool

	// exact makes dupes also require the same number of plies
	exact bool
	// criteria selects games for find
	criteria *matching.CompositeMatcher
}

func (c *commands) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command given")
	}
	cmd, ids := args[0], args[1:]
	switch cmd {
	case "list":
		return c.list()
	case "show":
		return c.show(ids)
	case "verify":
		return c.verify(ctx, ids)
	case "delete":
		return c.delete(ids)
	case "dupes":
		return c.dupes(ctx, ids)
	case "find":
		return c.find(ids)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

// list prints one line per stored game, oldest first.
func (c *commands) list() error {
	records, err := c.st.List()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPLIES\tSTATUS\tUPDATED")
	for _, rec := range records {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", rec.ID, len(rec.Moves), rec.Status, humanize.Time(rec.Updated))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if c.cfg.Verbosity > 0 {
		fmt.Fprintf(c.out, "%s stored\n", plural(len(records), "game"))
	}
	return nil
}

// show replays and prints the named games.
func (c *commands) show(ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("show needs at least one game id")
	}

	var gw output.GameWriter
	if c.json {
		gw = output.NewJSONWriter(c.out)
	} else {
		gw = output.NewTextWriter(c.out, c.cfg)
	}

	for _, id := range ids {
		rec, err := c.st.Load(id)
		if err != nil {
			return err
		}
		g, err := store.Replay(rec)
		if err != nil {
			return err
		}
		if err := gw.WriteGame(rec.ID, g); err != nil {
			return err
		}
	}
	return gw.Close()
}

// verify replays games on the worker pool: the named ones, or all of them.
func (c *commands) verify(ctx context.Context, ids []string) error {
	records, err := c.records(ids)
	if err != nil {
		return err
	}

	results := worker.ReplayAll(ctx, records, worker.FromConfig(c.cfg.Replay)...)
	failed := worker.Failed(results)
	for _, r := range failed {
		fmt.Fprintf(c.out, "FAIL %s: %v\n", r.Record.ID, r.Error)
	}
	if c.cfg.Verbosity > 0 {
		fmt.Fprintf(c.out, "%s checked, %d failed\n", plural(len(results), "game"), len(failed))
	}
	if len(failed) > 0 {
		return errVerifyFailed
	}
	if len(results) < len(records) {
		return ctx.Err()
	}
	return nil
}

// dupes replays games and reports each one whose final position was
// already reached by an earlier game.
func (c *commands) dupes(ctx context.Context, ids []string) error {
	records, err := c.records(ids)
	if err != nil {
		return err
	}

	results := worker.ReplayAll(ctx, records, worker.FromConfig(c.cfg.Replay)...)
	detector := hashing.NewDuplicateDetector(c.exact)
	for _, r := range results {
		if r.Error != nil {
			c.cfg.Logf(1, "skipping %s: %v", r.Record.ID, r.Error)
			continue
		}
		if first, dup := detector.CheckAndAdd(hashing.Signature(r.Record.ID, r.Game)); dup {
			fmt.Fprintf(c.out, "DUP %s same position as %s\n", r.Record.ID, first.ID)
		}
	}
	if c.cfg.Verbosity > 0 {
		fmt.Fprintf(c.out, "%s, %s\n",
			plural(detector.UniqueCount(), "distinct position"), plural(detector.DuplicateCount(), "duplicate"))
	}
	if len(results) < len(records) {
		return ctx.Err()
	}
	return nil
}

// find prints the games that meet every selection criterion.
func (c *commands) find(ids []string) error {
	if c.criteria == nil || c.criteria.Len() == 0 {
		return fmt.Errorf("find needs -material or -status")
	}
	records, err := c.records(ids)
	if err != nil {
		return err
	}

	matched := 0
	for _, rec := range records {
		if !c.criteria.Match(rec) {
			continue
		}
		matched++
		fmt.Fprintf(c.out, "%s\t%s\n", rec.ID, rec.Status)
	}
	c.cfg.Logf(2, "criteria: %s", c.criteria.Name())
	if c.cfg.Verbosity > 0 {
		fmt.Fprintf(c.out, "%s of %s matched\n", humanize.Comma(int64(matched)), plural(len(records), "game"))
	}
	return nil
}

// records loads the named games, or every game when ids is empty.
func (c *commands) records(ids []string) ([]*store.Record, error) {
	if len(ids) == 0 {
		return c.st.List()
	}
	records := make([]*store.Record, 0, len(ids))
	for _, id := range ids {
		rec, err := c.st.Load(id)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// delete removes the named games.
func (c *commands) delete(ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("delete needs at least one game id")
	}
	for _, id := range ids {
		if err := c.st.Delete(id); err != nil {
			return err
		}
		c.cfg.Logf(1, "deleted %s", id)
	}
	return nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return humanize.Comma(int64(n)) + " " + noun
	}
	return humanize.Comma(int64(n)) + " " + noun + "s"
}
