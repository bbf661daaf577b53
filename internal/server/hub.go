package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/output"
	"github.com/lgbarn/chessrules-go/internal/store"
	"github.com/lgbarn/chessrules-go/internal/worker"
)

// liveGame is a game held in memory together with its watchers. mu guards
// every field, including writes to the watcher connections.
type liveGame struct {
	mu       sync.Mutex
	id       string
	start    string
	created  *store.Record
	game     *engine.Game
	watchers map[*websocket.Conn]struct{}
}

// state returns the JSON form of the game. Callers hold lg.mu.
func (lg *liveGame) state() *output.JSONGame {
	return output.GameToJSON(lg.id, lg.game)
}

// record returns the stored form of g, which is lg.game or a successor of
// it. Callers hold lg.mu.
func (lg *liveGame) record(g *engine.Game) *store.Record {
	rec := store.RecordFromGame(lg.id, lg.start, g)
	if lg.created != nil {
		rec.Created = lg.created.Created
	}
	return rec
}

// broadcast sends the current state to every watcher and drops the ones
// that fail. Callers hold lg.mu.
func (lg *liveGame) broadcast(logger *log.Logger) {
	if len(lg.watchers) == 0 {
		return
	}
	msg, err := json.Marshal(wsMessage{Type: "state", State: lg.state()})
	if err != nil {
		logger.Printf("game %s: encode state: %v", lg.id, err)
		return
	}
	for conn := range lg.watchers {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Printf("game %s: dropping watcher %s: %v", lg.id, conn.RemoteAddr(), err)
			delete(lg.watchers, conn)
			conn.Close()
		}
	}
}

// Hub owns the live games. Each game has its own lock, so moves in
// different games never wait on each other.
type Hub struct {
	mu     sync.RWMutex
	games  map[string]*liveGame
	store  *store.Store
	logger *log.Logger
}

// NewHub creates a hub backed by st.
func NewHub(st *store.Store, logger *log.Logger) *Hub {
	return &Hub{
		games:  make(map[string]*liveGame),
		store:  st,
		logger: logger,
	}
}

// Restore replays every stored game on the worker pool and makes the ones
// that replay cleanly live. It returns the number restored and the records
// that failed.
func (h *Hub) Restore(ctx context.Context, cfg *config.ReplayConfig) (int, []worker.ProcessResult, error) {
	records, err := h.store.List()
	if err != nil {
		return 0, nil, err
	}

	results := worker.ReplayAll(ctx, records, worker.FromConfig(cfg)...)
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, r := range results {
		if r.Error != nil {
			continue
		}
		h.games[r.Record.ID] = &liveGame{
			id:       r.Record.ID,
			start:    r.Record.Start,
			created:  r.Record,
			game:     r.Game,
			watchers: make(map[*websocket.Conn]struct{}),
		}
	}
	failed := worker.Failed(results)
	return len(results) - len(failed), failed, nil
}

// Create starts a new game, from the standard position when start is empty,
// and stores it.
func (h *Hub) Create(start string) (*output.JSONGame, error) {
	if start == "" {
		start = chess.InitialPosition
	}
	g, err := engine.NewGameFromPosition(start)
	if err != nil {
		return nil, err
	}

	lg := &liveGame{
		id:       store.NewID(),
		start:    start,
		game:     g,
		watchers: make(map[*websocket.Conn]struct{}),
	}
	rec := lg.record(g)
	if err := h.store.Save(rec); err != nil {
		return nil, fmt.Errorf("save game %s: %w", lg.id, err)
	}
	lg.created = rec
	state := lg.state()

	h.mu.Lock()
	h.games[lg.id] = lg
	h.mu.Unlock()
	h.logger.Printf("game %s created from %q", lg.id, start)
	return state, nil
}

// lookup returns the live game with the given id, loading it from the store
// if it is not in memory.
func (h *Hub) lookup(id string) (*liveGame, error) {
	h.mu.RLock()
	lg, ok := h.games[id]
	h.mu.RUnlock()
	if ok {
		return lg, nil
	}

	rec, err := h.store.Load(id)
	if err != nil {
		return nil, err
	}
	g, err := store.Replay(rec)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if lg, ok := h.games[id]; ok {
		return lg, nil
	}
	lg = &liveGame{
		id:       id,
		start:    rec.Start,
		created:  rec,
		game:     g,
		watchers: make(map[*websocket.Conn]struct{}),
	}
	h.games[id] = lg
	return lg, nil
}

// State returns the current state of a game.
func (h *Hub) State(id string) (*output.JSONGame, error) {
	lg, err := h.lookup(id)
	if err != nil {
		return nil, err
	}
	lg.mu.Lock()
	defer lg.mu.Unlock()
	return lg.state(), nil
}

// List returns the state of every stored game.
func (h *Hub) List() ([]*output.JSONGame, error) {
	records, err := h.store.List()
	if err != nil {
		return nil, err
	}
	games := make([]*output.JSONGame, 0, len(records))
	for _, rec := range records {
		st, err := h.State(rec.ID)
		if err != nil {
			h.logger.Printf("game %s skipped: %v", rec.ID, err)
			continue
		}
		games = append(games, st)
	}
	return games, nil
}

// PossibleMoves returns the legal moves of the piece on square, plus any
// castles it can start.
func (h *Hub) PossibleMoves(id, square string) (*MovesResponse, error) {
	sq, err := chess.ParseSquare(square)
	if err != nil {
		return nil, err
	}
	lg, err := h.lookup(id)
	if err != nil {
		return nil, err
	}

	lg.mu.Lock()
	mb, castles, err := lg.game.PossibleMoves(sq, false)
	lg.mu.Unlock()
	if err != nil {
		return nil, err
	}

	resp := &MovesResponse{Square: sq.String(), Moves: []string{}, Castles: []string{}}
	for _, to := range mb.Squares() {
		resp.Moves = append(resp.Moves, to.String())
	}
	for _, m := range castles {
		resp.Castles = append(resp.Castles, m.String())
	}
	return resp, nil
}

// Move plays text in game id, persists the game and pushes the new state
// to every watcher. The move is played on a copy and only becomes live once
// it is stored, so a failed save leaves the game as it was.
func (h *Hub) Move(id, text string) (*output.JSONGame, error) {
	lg, err := h.lookup(id)
	if err != nil {
		return nil, err
	}

	lg.mu.Lock()
	defer lg.mu.Unlock()

	if lg.game.Status().IsOver() {
		return nil, fmt.Errorf("game %s is %s: %w", id, lg.game.Status(), errors.ErrGameOver)
	}
	m, err := chess.ParseMove(text)
	if err != nil {
		return nil, err
	}
	next := lg.game.Clone()
	if err := next.TryMove(m); err != nil {
		return nil, err
	}

	if err := h.store.Save(lg.record(next)); err != nil {
		h.logger.Printf("game %s: save after %s failed: %v", id, m, err)
		return nil, fmt.Errorf("save game %s: %w", id, err)
	}
	lg.game = next
	h.logger.Printf("game %s: %s played %s (%s)", id, lg.game.Turn().Opposite(), m, lg.game.Status())
	lg.broadcast(h.logger)
	return lg.state(), nil
}

// watch registers conn as a watcher of game id and sends it the current
// state.
func (h *Hub) watch(id string, conn *websocket.Conn) error {
	lg, err := h.lookup(id)
	if err != nil {
		return err
	}
	lg.mu.Lock()
	defer lg.mu.Unlock()
	lg.watchers[conn] = struct{}{}
	msg, err := json.Marshal(wsMessage{Type: "state", State: lg.state()})
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, msg)
}

// unwatch removes conn from game id.
func (h *Hub) unwatch(id string, conn *websocket.Conn) {
	h.mu.RLock()
	lg, ok := h.games[id]
	h.mu.RUnlock()
	if !ok {
		return
	}
	lg.mu.Lock()
	delete(lg.watchers, conn)
	lg.mu.Unlock()
}

// reply sends msg to a single watcher of game id under the game lock.
func (h *Hub) reply(id string, conn *websocket.Conn, msg wsMessage) error {
	lg, err := h.lookup(id)
	if err != nil {
		return err
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	lg.mu.Lock()
	defer lg.mu.Unlock()
	return conn.WriteMessage(websocket.TextMessage, data)
}
