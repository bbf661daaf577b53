package engine

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// checkPieceMove reports whether the piece on from may move to to, ignoring
// whose turn it is and whether the move exposes its own king. It is the
// single movement rule shared by the move generator and by move validation.
func checkPieceMove(board *chess.Board, from, to chess.Square) error {
	piece := board.Get(from)
	if piece.IsEmpty() {
		return errors.ErrEmptySquare
	}
	if collisionCheck(board, to, piece.Colour) {
		return errors.ErrCollision
	}

	df, dr := delta(from, to)
	adf, adr := abs(df), abs(dr)

	switch piece.Kind {
	case chess.Knight:
		if !(adf == 1 && adr == 2) && !(adf == 2 && adr == 1) {
			return errors.ErrWrongPieceMovement
		}
		return nil

	case chess.King:
		if adf > 1 || adr > 1 {
			return errors.ErrWrongPieceMovement
		}
		return nil

	case chess.Bishop:
		if adf != adr {
			return errors.ErrWrongPieceMovement
		}
		return checkLine(board, from, to, piece.Colour)

	case chess.Rook:
		if adf != 0 && adr != 0 {
			return errors.ErrWrongPieceMovement
		}
		return checkLine(board, from, to, piece.Colour)

	case chess.Queen:
		if adf != adr && adf != 0 && adr != 0 {
			return errors.ErrWrongPieceMovement
		}
		return checkLine(board, from, to, piece.Colour)

	case chess.Pawn:
		return checkPawnMove(board, piece, from, to)
	}

	return errors.ErrWrongPieceMovement
}

// checkLine reports ErrCollision when a sliding piece is blocked before to.
func checkLine(board *chess.Board, from, to chess.Square, colour chess.Colour) error {
	if PathBlocked(board, from, to, colour) {
		return errors.ErrCollision
	}
	return nil
}

// checkPawnMove validates single and double advances and diagonal captures.
// En passant and promotion are not part of the rule set.
func checkPawnMove(board *chess.Board, pawn chess.Piece, from, to chess.Square) error {
	dir := chess.PawnDirection(pawn.Colour)
	df, dr := delta(from, to)

	switch {
	case df == 0 && dr == dir:
		if board.Occupied(to) {
			return errors.ErrCollision
		}
		return nil

	case df == 0 && dr == 2*dir:
		if pawn.Moved {
			return errors.ErrPawnDoubleMove
		}
		mid, _ := from.Offset(0, dir)
		if board.Occupied(mid) || board.Occupied(to) {
			return errors.ErrCollision
		}
		return nil

	case abs(df) == 1 && dr == dir:
		target := board.Get(to)
		if target.IsEmpty() || target.Colour == pawn.Colour {
			return errors.ErrWrongPieceMovement
		}
		return nil
	}

	return errors.ErrWrongPieceMovement
}
