package engine

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// MoveBoard is an 8x8 grid with at most one move per destination square.
type MoveBoard struct {
	moves [chess.BoardSize][chess.BoardSize]chess.Move
}

func (mb *MoveBoard) set(m chess.Move) {
	mb.moves[m.To.Rank][m.To.File] = m
}

// At returns the move landing on sq, if any.
func (mb *MoveBoard) At(sq chess.Square) (chess.Move, bool) {
	if !sq.Valid() {
		return chess.Move{}, false
	}
	m := mb.moves[sq.Rank][sq.File]
	return m, m.Kind != chess.MoveNone
}

// Contains reports whether a move lands on sq.
func (mb *MoveBoard) Contains(sq chess.Square) bool {
	_, ok := mb.At(sq)
	return ok
}

// Moves returns every move on the grid in square order (a1, a2, ..., h8).
func (mb *MoveBoard) Moves() []chess.Move {
	var out []chess.Move
	for _, sq := range chess.AllSquares() {
		if m, ok := mb.At(sq); ok {
			out = append(out, m)
		}
	}
	return out
}

// Squares returns the destination squares on the grid in square order.
func (mb *MoveBoard) Squares() []chess.Square {
	var out []chess.Square
	for _, sq := range chess.AllSquares() {
		if mb.Contains(sq) {
			out = append(out, sq)
		}
	}
	return out
}

// Len returns the number of moves on the grid.
func (mb *MoveBoard) Len() int {
	n := 0
	for _, row := range mb.moves {
		for _, m := range row {
			if m.Kind != chess.MoveNone {
				n++
			}
		}
	}
	return n
}

// possibleMoves generates the normal moves of the piece on from. With
// suppressCheckFilter set, every destination allowed by the movement rules
// is kept; otherwise moves leaving the piece's own king attacked are dropped.
// Castling is never produced here.
func possibleMoves(board *chess.Board, from chess.Square, suppressCheckFilter bool) (MoveBoard, error) {
	var mb MoveBoard

	piece := board.Get(from)
	if piece.IsEmpty() {
		return mb, fmt.Errorf("%s: %w", from, errors.ErrEmptySquare)
	}

	for _, to := range chess.AllSquares() {
		if checkPieceMove(board, from, to) != nil {
			continue
		}
		m := chess.NormalMove(from, to)
		if !suppressCheckFilter && checkCheck(board, piece.Colour, m, piece.Colour) {
			continue
		}
		mb.set(m)
	}
	return mb, nil
}

// legalCastles returns the castling moves colour may play.
func legalCastles(board *chess.Board, rights chess.CastlingRights, colour chess.Colour) []chess.Move {
	var out []chess.Move
	for _, side := range rights.Sides(colour) {
		if checkCastle(board, rights, colour, side) == nil {
			out = append(out, chess.CastleMove(side))
		}
	}
	return out
}

// HasLegalMoves returns true if the given colour has at least one legal
// normal move. Castling is not considered: whenever it is legal, the king
// can also step onto the crossed square.
func HasLegalMoves(board *chess.Board, colour chess.Colour) bool {
	for _, from := range board.Pieces(colour) {
		for _, to := range chess.AllSquares() {
			if checkPieceMove(board, from, to) != nil {
				continue
			}
			if !checkCheck(board, colour, chess.NormalMove(from, to), colour) {
				return true
			}
		}
	}
	return false
}

// LegalMoves returns every legal normal move of colour followed by its
// legal castling moves.
func LegalMoves(board *chess.Board, rights chess.CastlingRights, colour chess.Colour) []chess.Move {
	var out []chess.Move
	for _, from := range board.Pieces(colour) {
		mb, _ := possibleMoves(board, from, false)
		out = append(out, mb.Moves()...)
	}
	return append(out, legalCastles(board, rights, colour)...)
}
