package engine

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// StatusKind classifies the state of a game.
type StatusKind int

const (
	// Ongoing means play continues.
	Ongoing StatusKind = iota
	// Checkmate means the side recorded in Status.Colour is mated.
	Checkmate
	// Promoting is reserved for a pawn awaiting promotion. The rule set
	// never produces it.
	Promoting
)

// Status is the game status. Colour is meaningful for Checkmate (the mated
// side) and Promoting (the promoting side).
type Status struct {
	Kind   StatusKind
	Colour chess.Colour
}

// String returns "Ongoing", "Checkmate(White)" and so on.
func (s Status) String() string {
	switch s.Kind {
	case Checkmate:
		return fmt.Sprintf("Checkmate(%s)", s.Colour)
	case Promoting:
		return fmt.Sprintf("Promoting(%s)", s.Colour)
	default:
		return "Ongoing"
	}
}

// IsOver reports whether the game has ended.
func (s Status) IsOver() bool {
	return s.Kind == Checkmate
}

// Winner returns the winning side of a finished game.
func (s Status) Winner() (chess.Colour, bool) {
	if s.Kind != Checkmate {
		return 0, false
	}
	return s.Colour.Opposite(), true
}

// IsCheckmate returns true if colour is checkmated on board.
func IsCheckmate(board *chess.Board, colour chess.Colour) bool {
	return InCheck(board, colour) && !HasLegalMoves(board, colour)
}

// IsStalemate returns true if colour is not in check but has no legal move.
// Stalemate is reported for information only; it does not end the game.
func IsStalemate(board *chess.Board, colour chess.Colour) bool {
	return !InCheck(board, colour) && !HasLegalMoves(board, colour)
}
