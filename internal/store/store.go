// Package store persists game records in a Badger key-value database.
//
// A record holds the starting position and the move list. Games are never
// stored as boards: Replay rebuilds them by playing every move through the
// engine, so a stored game is always one the rules accept.
package store

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

const gamePrefix = "game/"

// Record is the stored form of a game.
type Record struct {
	ID       string    `json:"id"`
	Start    string    `json:"start"`
	Moves    []string  `json:"moves"`
	Status   string    `json:"status"`
	Winner   string    `json:"winner,omitempty"`
	Position string    `json:"position"`
	Created  time.Time `json:"created"`
	Updated  time.Time `json:"updated"`
}

// Store wraps BadgerDB for game records.
type Store struct {
	db *badger.DB
}

// Open opens the database described by cfg.
func Open(cfg *config.StoreConfig) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open store %q: %w", cfg.Path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) []byte {
	return []byte(gamePrefix + id)
}

// Save writes rec, setting Created on first save and Updated every time.
func (s *Store) Save(rec *Record) error {
	if rec.ID == "" {
		return fmt.Errorf("save: record has no id")
	}
	now := time.Now().UTC()
	if rec.Created.IsZero() {
		rec.Created = now
	}
	rec.Updated = now

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(rec.ID), data)
	})
}

// Load reads the record with the given id.
func (s *Store) Load(id string) (*Record, error) {
	rec := &Record{}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("game %s: %w", id, errors.ErrGameNotFound)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns every record, oldest first.
func (s *Store) List() ([]*Record, error) {
	var records []*Record
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(gamePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			rec := &Record{}
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, rec)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Created.Equal(records[j].Created) {
			return records[i].ID < records[j].ID
		}
		return records[i].Created.Before(records[j].Created)
	})
	return records, nil
}

// Delete removes the record with the given id.
func (s *Store) Delete(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(gameKey(id)); err == badger.ErrKeyNotFound {
			return fmt.Errorf("game %s: %w", id, errors.ErrGameNotFound)
		} else if err != nil {
			return err
		}
		return txn.Delete(gameKey(id))
	})
}

// NewID returns a random 16-character hex identifier.
func NewID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(fmt.Sprintf("store: reading random id: %v", err))
	}
	return hex.EncodeToString(b[:])
}

// RecordFromGame builds a record for g, which began from start. An empty
// start means the standard starting position.
func RecordFromGame(id, start string, g *engine.Game) *Record {
	if start == "" {
		start = chess.InitialPosition
	}
	rec := &Record{
		ID:       id,
		Start:    start,
		Moves:    make([]string, 0, g.Ply()),
		Status:   g.Status().String(),
		Position: g.Position().String(),
	}
	if winner, ok := g.Status().Winner(); ok {
		rec.Winner = winner.String()
	}
	for _, m := range g.History() {
		rec.Moves = append(rec.Moves, m.String())
	}
	return rec
}

// Replay rebuilds the game described by rec. Every stored move goes through
// TryMove; the first rejected move fails the replay. When the record carries
// a final position it must match the replayed one.
func Replay(rec *Record) (*engine.Game, error) {
	start := rec.Start
	if start == "" {
		start = chess.InitialPosition
	}
	g, err := engine.NewGameFromPosition(start)
	if err != nil {
		return nil, fmt.Errorf("game %s start: %w", rec.ID, err)
	}

	for i, text := range rec.Moves {
		if g.Status().IsOver() {
			return nil, fmt.Errorf("game %s move %d (%s): %w", rec.ID, i+1, text, errors.ErrGameOver)
		}
		m, err := chess.ParseMove(text)
		if err != nil {
			return nil, fmt.Errorf("game %s move %d: %w", rec.ID, i+1, err)
		}
		if err := g.TryMove(m); err != nil {
			return nil, fmt.Errorf("game %s: %w", rec.ID, err)
		}
	}

	if rec.Position != "" && rec.Position != g.Position().String() {
		return nil, fmt.Errorf("game %s ends in %q, record says %q: %w",
			rec.ID, g.Position().String(), rec.Position, errors.ErrInvalidPosition)
	}
	return g, nil
}
