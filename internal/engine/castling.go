package engine

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// castleSquares describes the squares involved in one castling move.
type castleSquares struct {
	kingFrom, kingTo chess.Square
	rookFrom, rookTo chess.Square
	pass             chess.Square   // square the king crosses
	between          []chess.Square // squares that must be empty
}

// castleSquaresFor returns the fixed layout for colour castling on side.
func castleSquaresFor(colour chess.Colour, side chess.CastlingSide) castleSquares {
	rank := chess.HomeRank(colour)
	sq := func(f chess.File) chess.Square { return chess.NewSquare(f, rank) }

	if side == chess.KingSide {
		return castleSquares{
			kingFrom: sq(chess.FileE), kingTo: sq(chess.FileG),
			rookFrom: sq(chess.FileH), rookTo: sq(chess.FileF),
			pass:    sq(chess.FileF),
			between: []chess.Square{sq(chess.FileF), sq(chess.FileG)},
		}
	}
	return castleSquares{
		kingFrom: sq(chess.FileE), kingTo: sq(chess.FileC),
		rookFrom: sq(chess.FileA), rookTo: sq(chess.FileD),
		pass:    sq(chess.FileD),
		between: []chess.Square{sq(chess.FileB), sq(chess.FileC), sq(chess.FileD)},
	}
}

// checkCastle reports whether colour may castle on side. Checks run in order:
// the right itself, empty squares between king and rook, the king not in
// check, then the crossed and destination squares not attacked.
func checkCastle(board *chess.Board, rights chess.CastlingRights, colour chess.Colour, side chess.CastlingSide) error {
	if !rights.Has(colour, side) {
		return fmt.Errorf("%s has no %s right: %w", colour, side, errors.ErrCastling)
	}

	cs := castleSquaresFor(colour, side)
	if !board.Get(cs.kingFrom).Is(chess.King, colour) || !board.Get(cs.rookFrom).Is(chess.Rook, colour) {
		return fmt.Errorf("king or rook not on its home square: %w", errors.ErrCastling)
	}

	for _, sq := range cs.between {
		if board.Occupied(sq) {
			return fmt.Errorf("%s is occupied: %w", sq, errors.ErrCollision)
		}
	}

	if InCheck(board, colour) {
		return fmt.Errorf("king is in check: %w", errors.ErrCastling)
	}
	for _, sq := range []chess.Square{cs.pass, cs.kingTo} {
		if checkCheck(board, colour, chess.NormalMove(cs.kingFrom, sq), colour) {
			return fmt.Errorf("king would cross attacked square %s: %w", sq, errors.ErrCastling)
		}
	}
	return nil
}

// applyCastle moves king and rook to their castled squares.
func applyCastle(board *chess.Board, colour chess.Colour, side chess.CastlingSide) {
	cs := castleSquaresFor(colour, side)

	king := board.Get(cs.kingFrom)
	board.Clear(cs.kingFrom)
	board.Set(cs.kingTo, king)

	rook := board.Get(cs.rookFrom)
	board.Clear(cs.rookFrom)
	board.Set(cs.rookTo, rook)
}
