package engine

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Game is a chess game in progress: the board, the side to move, captured
// pieces, castling rights, the check flag and the game status.
//
// A Game is not safe for concurrent use. Callers that share one between
// goroutines must serialize access.
type Game struct {
	board    chess.Board
	turn     chess.Colour
	captured []chess.Piece
	castling chess.CastlingRights
	check    bool
	status   Status
	history  []chess.Move
}

// NewGame returns a game in the standard starting position with White to move.
func NewGame() *Game {
	return &Game{
		board:    *chess.InitialBoard(),
		turn:     chess.White,
		castling: chess.AllCastling,
	}
}

// NewGameFromPosition returns a game starting from the given position text
// (see chess.ParsePosition). Each side must have exactly one king and the
// side not to move must not be in check. Castling rights whose king or rook
// is away from its home square are dropped.
func NewGameFromPosition(text string) (*Game, error) {
	pos, err := chess.ParsePosition(text)
	if err != nil {
		return nil, err
	}

	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if n := pos.Board.Count(chess.King, colour); n != 1 {
			return nil, fmt.Errorf("%s has %d kings: %w", colour, n, errors.ErrInvalidPosition)
		}
	}
	if InCheck(&pos.Board, pos.Turn.Opposite()) {
		return nil, fmt.Errorf("%s is in check but not to move: %w", pos.Turn.Opposite(), errors.ErrInvalidPosition)
	}

	g := &Game{
		board:    pos.Board,
		turn:     pos.Turn,
		castling: sanitizeCastling(&pos.Board, pos.Castling),
	}
	g.check = InCheck(&g.board, g.turn)
	if g.check && !HasLegalMoves(&g.board, g.turn) {
		g.status = Status{Kind: Checkmate, Colour: g.turn}
	}
	return g, nil
}

// sanitizeCastling drops rights whose king or rook has left home.
func sanitizeCastling(board *chess.Board, rights chess.CastlingRights) chess.CastlingRights {
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		for _, side := range rights.Sides(colour) {
			cs := castleSquaresFor(colour, side)
			if !board.Get(cs.kingFrom).Is(chess.King, colour) || !board.Get(cs.rookFrom).Is(chess.Rook, colour) {
				rights = rights.ClearSide(colour, side)
			}
		}
	}
	return rights
}

// Board returns a copy of the current board.
func (g *Game) Board() chess.Board { return g.board }

// Turn returns the side to move.
func (g *Game) Turn() chess.Colour { return g.turn }

// Captured returns the pieces captured so far, in capture order.
func (g *Game) Captured() []chess.Piece {
	return append([]chess.Piece(nil), g.captured...)
}

// Castling returns the remaining castling rights.
func (g *Game) Castling() chess.CastlingRights { return g.castling }

// Check reports whether the side to move is in check.
func (g *Game) Check() bool { return g.check }

// Status returns the game status.
func (g *Game) Status() Status { return g.status }

// History returns the moves played so far.
func (g *Game) History() []chess.Move {
	return append([]chess.Move(nil), g.history...)
}

// Ply returns the number of moves played.
func (g *Game) Ply() int { return len(g.history) }

// Position returns the current position.
func (g *Game) Position() *chess.Position {
	return &chess.Position{Board: g.board, Turn: g.turn, Castling: g.castling}
}

// Clone returns an independent copy of the game.
func (g *Game) Clone() *Game {
	c := *g
	c.captured = g.Captured()
	c.history = g.History()
	return &c
}

// PossibleMoves returns the moves of the piece on from, regardless of whose
// turn it is. With suppressCheckFilter set the movement rules alone decide;
// otherwise moves that expose the piece's own king are removed and, for a
// rook on its home corner, any legal castling move is returned as well.
func (g *Game) PossibleMoves(from chess.Square, suppressCheckFilter bool) (MoveBoard, []chess.Move, error) {
	if !from.Valid() {
		return MoveBoard{}, nil, fmt.Errorf("%s: %w", from, errors.ErrInvalidSquare)
	}
	mb, err := possibleMoves(&g.board, from, suppressCheckFilter)
	if err != nil || suppressCheckFilter {
		return mb, nil, err
	}

	piece := g.board.Get(from)
	if piece.Kind != chess.Rook || from.Rank != chess.HomeRank(piece.Colour) {
		return mb, nil, nil
	}
	var castles []chess.Move
	for _, side := range g.castling.Sides(piece.Colour) {
		if from.File == side.RookFile() && checkCastle(&g.board, g.castling, piece.Colour, side) == nil {
			castles = append(castles, chess.CastleMove(side))
		}
	}
	return mb, castles, nil
}

// LegalCastles returns the castling moves available to the side to move.
func (g *Game) LegalCastles() []chess.Move {
	return legalCastles(&g.board, g.castling, g.turn)
}

// LegalMoves returns every legal move of the side to move.
func (g *Game) LegalMoves() []chess.Move {
	return LegalMoves(&g.board, g.castling, g.turn)
}

// TryMove validates m for the side to move and, if legal, plays it. On
// failure the game is unchanged and the returned *errors.MoveError wraps
// exactly one rejection kind.
func (g *Game) TryMove(m chess.Move) error {
	var err error
	switch m.Kind {
	case chess.MoveNormal:
		err = g.validateNormal(m)
	case chess.MoveCastle:
		err = checkCastle(&g.board, g.castling, g.turn, m.Side)
	default:
		err = fmt.Errorf("no move given: %w", errors.ErrInvalidMove)
	}
	if err != nil {
		return &errors.MoveError{
			Err:    err,
			Ply:    g.Ply() + 1,
			Move:   m.String(),
			Colour: g.turn.String(),
		}
	}

	g.commit(m)
	return nil
}

// validateNormal checks a normal move: both squares on the board, the
// origin, the movement rules, then that the mover's own king is safe
// afterwards.
func (g *Game) validateNormal(m chess.Move) error {
	if !m.From.Valid() || !m.To.Valid() {
		return fmt.Errorf("%s to %s leaves the board: %w", m.From, m.To, errors.ErrInvalidSquare)
	}
	piece := g.board.Get(m.From)
	if piece.IsEmpty() {
		return fmt.Errorf("%s: %w", m.From, errors.ErrEmptySquare)
	}
	if piece.Colour != g.turn {
		return fmt.Errorf("%s holds a %s piece: %w", m.From, piece.Colour, errors.ErrOpponentPiece)
	}
	if err := checkPieceMove(&g.board, m.From, m.To); err != nil {
		return fmt.Errorf("%s %s to %s: %w", piece.Kind, m.From, m.To, err)
	}
	if checkCheck(&g.board, g.turn, m, g.turn) {
		return errors.ErrSelfCheck
	}
	return nil
}

// commit plays an already validated move: check and checkmate against the
// opponent are settled on the pre-move board, then the move is applied and
// the turn passes.
func (g *Game) commit(m chess.Move) {
	mover := g.turn
	opponent := mover.Opposite()

	check := checkCheck(&g.board, mover, m, opponent)
	mated := check && checkmateCheck(&g.board, mover, m, opponent)

	var moved chess.Piece
	if m.Kind == chess.MoveNormal {
		moved = g.board.Get(m.From)
	}
	captured := applyMove(&g.board, mover, m)
	if !captured.IsEmpty() {
		g.captured = append(g.captured, captured)
	}
	g.castling = updateCastlingRights(g.castling, mover, m, moved, captured)

	g.check = check
	if mated {
		g.status = Status{Kind: Checkmate, Colour: opponent}
	}
	g.turn = opponent
	g.history = append(g.history, m)
}
