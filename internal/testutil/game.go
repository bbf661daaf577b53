package testutil

import (
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// Mover is anything that accepts moves, normally *engine.Game. Taking an
// interface keeps testutil importable from the engine's own tests.
type Mover interface {
	TryMove(m chess.Move) error
}

// PlayMoves parses and plays each move text in order and stops at the first
// failure, returning its index and error. It returns -1, nil when every move
// was accepted.
func PlayMoves(g Mover, moves ...string) (int, error) {
	for i, text := range moves {
		m, err := chess.ParseMove(text)
		if err != nil {
			return i, err
		}
		if err := g.TryMove(m); err != nil {
			return i, err
		}
	}
	return -1, nil
}

// MustPlay plays moves and calls t.Fatal if any is rejected.
func MustPlay(t *testing.T, g Mover, moves ...string) {
	t.Helper()
	if i, err := PlayMoves(g, moves...); err != nil {
		t.Fatalf("move %d (%s) rejected: %v", i+1, moves[i], err)
	}
}

// Sq parses a square and calls t.Fatal on bad input.
func Sq(t *testing.T, text string) chess.Square {
	t.Helper()
	sq, err := chess.ParseSquare(text)
	if err != nil {
		t.Fatalf("bad square %q: %v", text, err)
	}
	return sq
}

// Move builds a normal move from two square names.
func Move(t *testing.T, from, to string) chess.Move {
	t.Helper()
	return chess.NormalMove(Sq(t, from), Sq(t, to))
}

// FoolsMate is the shortest checkmate: Black mates White on move two.
var FoolsMate = []string{"f2f3", "e7e5", "g2g4", "d8h4"}

// ScholarsMate is White's four-move mate against f7.
var ScholarsMate = []string{"e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6", "h5f7"}
