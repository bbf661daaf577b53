package engine

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// errKingMissing is raised when a board that should hold a king of each
// colour does not. Positions reaching the engine are validated on entry and
// kings are never captured, so this is an internal invariant violation.
func errKingMissing(colour chess.Colour) string {
	return fmt.Sprintf("engine: no %s king on the board", colour)
}

// findKing returns the square of colour's king and panics if there is none.
func findKing(board *chess.Board, colour chess.Colour) chess.Square {
	sq, ok := board.FindKing(colour)
	if !ok {
		panic(errKingMissing(colour))
	}
	return sq
}

// SquareAttacked reports whether any piece of colour by could move onto sq
// under the raw movement rules. For sq to count as attacked by a pawn it
// must hold a piece of the other colour.
func SquareAttacked(board *chess.Board, sq chess.Square, by chess.Colour) bool {
	for _, from := range board.Pieces(by) {
		if checkPieceMove(board, from, sq) == nil {
			return true
		}
	}
	return false
}

// InCheck reports whether colour's king is attacked on board.
func InCheck(board *chess.Board, colour chess.Colour) bool {
	return SquareAttacked(board, findKing(board, colour), colour.Opposite())
}

// checkCheck reports whether colour's king would be attacked after mover
// plays m on board. The board itself is left untouched.
//
// A normal move landing on colour's king counts as check without further
// work. Attacks are found with the raw movement rules, never the filtered
// generator, so the oracle does not recurse into itself.
func checkCheck(board *chess.Board, mover chess.Colour, m chess.Move, colour chess.Colour) bool {
	if m.Kind == chess.MoveNormal && board.Get(m.To).Is(chess.King, colour) {
		return true
	}

	test := *board
	applyMove(&test, mover, m)
	return InCheck(&test, colour)
}

// checkmateCheck reports whether colour has no legal reply after mover plays
// m on board. It only answers the checkmate question when the same move is
// already known to give check; otherwise a true result means stalemate.
func checkmateCheck(board *chess.Board, mover chess.Colour, m chess.Move, colour chess.Colour) bool {
	test := *board
	applyMove(&test, mover, m)
	return !HasLegalMoves(&test, colour)
}
