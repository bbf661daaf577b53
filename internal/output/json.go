package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
)

// JSONGame is the JSON form of a game's observable state.
type JSONGame struct {
	ID       string     `json:"id,omitempty"`
	Position string     `json:"position"`
	Turn     string     `json:"turn"`
	Check    bool       `json:"check"`
	Status   string     `json:"status"`
	Winner   string     `json:"winner,omitempty"`
	Castling string     `json:"castling"`
	Captured []string   `json:"captured"`
	Board    []string   `json:"board"` // rank 8 first, one letter per square
	PlyCount int        `json:"plyCount"`
	Moves    []JSONMove `json:"moves"`
}

// JSONMove is one played move.
type JSONMove struct {
	Ply    int    `json:"ply"`
	Colour string `json:"colour"`
	Move   string `json:"move"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// GameToJSON converts a game to its JSON form.
func GameToJSON(id string, g *engine.Game) *JSONGame {
	status := g.Status()
	jg := &JSONGame{
		ID:       id,
		Position: g.Position().String(),
		Turn:     g.Turn().String(),
		Check:    g.Check(),
		Status:   status.String(),
		Castling: g.Castling().String(),
		Captured: make([]string, 0, len(g.Captured())),
		PlyCount: g.Ply(),
	}
	if winner, ok := status.Winner(); ok {
		jg.Winner = winner.String()
	}
	for _, p := range g.Captured() {
		jg.Captured = append(jg.Captured, p.String())
	}

	board := g.Board()
	jg.Board = boardRows(&board)
	jg.Moves = convertMoveList(g.History(), firstMover(g))
	return jg
}

// OutputGameJSON writes one game as indented JSON.
func OutputGameJSON(w io.Writer, jg *JSONGame) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jg)
}

// boardRows returns one string per rank, rank 8 first.
func boardRows(board *chess.Board) []string {
	rows := make([]string, 0, chess.BoardSize)
	for rank := chess.Rank8; rank >= chess.Rank1; rank-- {
		var sb strings.Builder
		for _, p := range board.Row(rank) {
			sb.WriteString(p.String())
		}
		rows = append(rows, sb.String())
	}
	return rows
}

// firstMover returns the side that played the first recorded move.
func firstMover(g *engine.Game) chess.Colour {
	if g.Ply()%2 == 0 {
		return g.Turn()
	}
	return g.Turn().Opposite()
}

// convertMoveList converts the move history to JSON form.
func convertMoveList(moves []chess.Move, first chess.Colour) []JSONMove {
	result := make([]JSONMove, 0, len(moves))
	colour := first
	for i, m := range moves {
		jm := JSONMove{Ply: i + 1, Colour: colour.String(), Move: m.String()}
		if !m.IsCastle() {
			jm.From = m.From.String()
			jm.To = m.To.String()
		}
		result = append(result, jm)
		colour = colour.Opposite()
	}
	return result
}
