package chess

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// InitialPosition is the position text of the standard starting position.
const InitialPosition = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq"

// Position is a board plus the side to move and castling rights. Its text
// form is the first three fields of FEN; en passant and the clocks are not
// tracked by the engine and are ignored when present.
type Position struct {
	Board    Board
	Turn     Colour
	Castling CastlingRights
}

// ParsePosition parses "placement side castling". Side and castling are
// optional and default to White and no castling rights.
func ParsePosition(text string) (*Position, error) {
	parts := strings.Fields(text)
	if len(parts) < 1 {
		return nil, fmt.Errorf("empty position string: %w", errors.ErrInvalidPosition)
	}

	board, err := ParsePlacement(parts[0])
	if err != nil {
		return nil, err
	}
	pos := &Position{Board: *board, Turn: White}

	if len(parts) > 1 {
		switch parts[1] {
		case "w":
			pos.Turn = White
		case "b":
			pos.Turn = Black
		default:
			return nil, fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidPosition)
		}
	}

	if len(parts) > 2 {
		cr, ok := ParseCastlingRights(parts[2])
		if !ok {
			return nil, fmt.Errorf("invalid castling field: %s: %w", parts[2], errors.ErrInvalidPosition)
		}
		pos.Castling = cr
	}

	return pos, nil
}

// String returns the position text.
func (p *Position) String() string {
	side := "w"
	if p.Turn == Black {
		side = "b"
	}
	return p.Board.Placement() + " " + side + " " + p.Castling.String()
}

// ParsePlacement parses the piece placement field of a FEN string.
// Pawns standing off their starting rank are marked as moved.
func ParsePlacement(placement string) (*Board, error) {
	board := NewBoard()
	ranks := strings.Split(placement, "/")
	if len(ranks) != BoardSize {
		return nil, fmt.Errorf("placement has %d ranks: %w", len(ranks), errors.ErrInvalidPosition)
	}

	for i, row := range ranks {
		rank := Rank(BoardSize - 1 - i)
		file := FileA
		for _, c := range row {
			if c >= '1' && c <= '8' {
				file += File(c - '0')
				continue
			}
			kind := Empty
			if c <= unicode.MaxASCII {
				kind = kindFromLetter(byte(unicode.ToUpper(c)))
			}
			if kind == Empty {
				return nil, fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidPosition)
			}
			if !file.Valid() {
				return nil, fmt.Errorf("rank %s overflows: %w", rank, errors.ErrInvalidPosition)
			}

			colour := White
			if unicode.IsLower(c) {
				colour = Black
			}
			piece := NewPiece(colour, kind)
			if kind == Pawn && rank != PawnRank(colour) {
				piece.Moved = true
			}
			board.squares[rank][file] = piece
			file++
		}
		if file != FileH+1 {
			return nil, fmt.Errorf("rank %s has %d files: %w", rank, int(file), errors.ErrInvalidPosition)
		}
	}
	return board, nil
}

// Placement returns the FEN piece placement field for the board.
func (b *Board) Placement() string {
	var sb strings.Builder
	for rank := Rank8; rank >= Rank1; rank-- {
		empty := 0
		for file := FileA; file <= FileH; file++ {
			p := b.squares[rank][file]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > Rank1 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// kindFromLetter converts an uppercase piece letter to a piece kind.
func kindFromLetter(c byte) PieceKind {
	switch c {
	case 'K':
		return King
	case 'Q':
		return Queen
	case 'R':
		return Rook
	case 'N':
		return Knight
	case 'B':
		return Bishop
	case 'P':
		return Pawn
	default:
		return Empty
	}
}
