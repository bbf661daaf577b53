package testutil

import (
	"errors"
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// recorder accepts every move except those listed in reject.
type recorder struct {
	played []chess.Move
	reject map[string]bool
}

var errRejected = errors.New("rejected")

func (r *recorder) TryMove(m chess.Move) error {
	if r.reject[m.String()] {
		return errRejected
	}
	r.played = append(r.played, m)
	return nil
}

func TestPlayMoves(t *testing.T) {
	tests := []struct {
		name      string
		moves     []string
		reject    map[string]bool
		wantIndex int
		wantErr   bool
		wantCount int
	}{
		{"all accepted", FoolsMate, nil, -1, false, 4},
		{"empty", nil, nil, -1, false, 0},
		{"parse failure", []string{"e2e4", "zz"}, nil, 1, true, 1},
		{"rejected move", []string{"e2e4", "e7e5", "g1f3"}, map[string]bool{"e7e5": true}, 1, true, 1},
		{"castle text", []string{"O-O"}, nil, -1, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{reject: tt.reject}
			i, err := PlayMoves(r, tt.moves...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("PlayMoves() error = %v, wantErr %v", err, tt.wantErr)
			}
			if i != tt.wantIndex {
				t.Errorf("PlayMoves() index = %d; want %d", i, tt.wantIndex)
			}
			if len(r.played) != tt.wantCount {
				t.Errorf("played %d moves; want %d", len(r.played), tt.wantCount)
			}
		})
	}
}

func TestMustPlay(t *testing.T) {
	r := &recorder{}
	MustPlay(t, r, ScholarsMate...)
	AssertEqual(t, len(r.played), len(ScholarsMate))
	AssertEqual(t, r.played[0].String(), "e2e4")
}

func TestSqAndMove(t *testing.T) {
	AssertEqual(t, Sq(t, "e4"), chess.NewSquare(chess.FileE, chess.Rank4))
	AssertEqual(t, Move(t, "g1", "f3").String(), "g1f3")
}
