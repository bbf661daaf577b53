package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// applyMove plays m for mover on board without validating it and returns the
// captured piece, if any. Castling rights, turn and history live on Game and
// are not touched here, which keeps applyMove usable on scratch boards.
func applyMove(board *chess.Board, mover chess.Colour, m chess.Move) chess.Piece {
	switch m.Kind {
	case chess.MoveNormal:
		return board.Relocate(m.From, m.To)
	case chess.MoveCastle:
		applyCastle(board, mover, m.Side)
	}
	return chess.NoPiece
}

// updateCastlingRights returns rights after mover played m, where moved is
// the piece that left m.From and captured is what stood on m.To.
func updateCastlingRights(rights chess.CastlingRights, mover chess.Colour, m chess.Move, moved, captured chess.Piece) chess.CastlingRights {
	if m.Kind == chess.MoveCastle {
		return rights.ClearColour(mover)
	}

	switch moved.Kind {
	case chess.King:
		rights = rights.ClearColour(mover)
	case chess.Rook:
		rights = updateCastlingRightsForRook(rights, mover, m.From)
	}
	if captured.Kind == chess.Rook {
		rights = updateCastlingRightsForRook(rights, captured.Colour, m.To)
	}
	return rights
}

// updateCastlingRightsForRook removes the right tied to a rook that moves
// off, or is captured on, its home corner.
func updateCastlingRightsForRook(rights chess.CastlingRights, colour chess.Colour, sq chess.Square) chess.CastlingRights {
	if sq.Rank != chess.HomeRank(colour) {
		return rights
	}
	for _, side := range []chess.CastlingSide{chess.KingSide, chess.QueenSide} {
		if sq.File == side.RookFile() {
			rights = rights.ClearSide(colour, side)
		}
	}
	return rights
}
