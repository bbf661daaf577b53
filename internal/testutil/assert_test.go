package testutil

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chessrules-go/internal/chess"
	chesserrors "github.com/lgbarn/chessrules-go/internal/errors"
)

// Failing assertions cannot be observed without a fake *testing.T, so
// these exercise the passing paths on the values the other packages compare.

func TestAssertions_ChessValues(t *testing.T) {
	e2 := chess.MustParseSquare("e2")
	AssertEqual(t, e2, chess.NewSquare(chess.FileE, chess.Rank2))
	AssertEqual(t, chess.W(chess.Queen), chess.NewPiece(chess.White, chess.Queen), "queens differ")
	AssertEqual(t, []chess.Move{chess.CastleMove(chess.KingSide)}, []chess.Move{chess.CastleMove(chess.KingSide)})
	AssertEqualOpts(t, *chess.InitialBoard(), *chess.InitialBoard(), []cmp.Option{cmp.AllowUnexported(chess.Board{})})

	AssertTrue(t, e2.Valid(), "%s should be on the board", e2)
	AssertFalse(t, chess.InitialBoard().Occupied(chess.MustParseSquare("e4")))
	AssertNil(t, (*chess.Board)(nil))
	AssertNotNil(t, chess.InitialBoard())
}

func TestAssertions_Errors(t *testing.T) {
	AssertNoError(t, nil)
	AssertError(t, chesserrors.ErrCollision, "collision is an error")

	wrapped := fmt.Errorf("move e1g1: %w", chesserrors.ErrCastling)
	AssertErrorIs(t, wrapped, chesserrors.ErrCastling)
	AssertContains(t, wrapped.Error(), "e1g1")
	AssertNotContains(t, wrapped.Error(), "e8g8")
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		args []interface{}
		want string
	}{
		{nil, ""},
		{[]interface{}{"plain"}, "plain"},
		{[]interface{}{7}, "7"},
		{[]interface{}{"ply %d: %s", 3, "g2g4"}, "ply 3: g2g4"},
	}
	for _, tt := range tests {
		if got := formatMessage(tt.args...); got != tt.want {
			t.Errorf("formatMessage(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}
