package worker

import (
	"context"
	"sort"

	"github.com/lgbarn/chessrules-go/internal/store"
)

// ReplayRecord is the ProcessFunc used by ReplayAll.
func ReplayRecord(item WorkItem) ProcessResult {
	g, err := store.Replay(item.Record)
	return ProcessResult{Record: item.Record, Index: item.Index, Game: g, Error: err}
}

// ReplayAll replays records concurrently and returns one result per record
// in input order. When ctx is cancelled the remaining records are skipped
// and only the finished results are returned.
func ReplayAll(ctx context.Context, records []*store.Record, opts ...PoolOption) []ProcessResult {
	pool := NewPool(ReplayRecord, opts...)
	pool.Start()

	go func() {
		defer pool.Close()
		for i, rec := range records {
			select {
			case <-ctx.Done():
				pool.Stop()
				return
			default:
			}
			pool.Submit(WorkItem{Record: rec, Index: i})
		}
	}()

	results := make([]ProcessResult, 0, len(records))
	for r := range pool.Results() {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results
}

// Failed returns the results whose replay failed.
func Failed(results []ProcessResult) []ProcessResult {
	var failed []ProcessResult
	for _, r := range results {
		if r.Error != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
