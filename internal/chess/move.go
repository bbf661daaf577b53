package chess

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// CastlingSide identifies which rook the king castles with.
type CastlingSide int

const (
	KingSide CastlingSide = iota
	QueenSide
)

// String returns the name of the castling side.
func (s CastlingSide) String() string {
	if s == QueenSide {
		return "QueenSide"
	}
	return "KingSide"
}

// Notation returns the castling text, "O-O" or "O-O-O".
func (s CastlingSide) Notation() string {
	if s == QueenSide {
		return "O-O-O"
	}
	return "O-O"
}

// RookFile returns the file the castling rook starts on.
func (s CastlingSide) RookFile() File {
	if s == QueenSide {
		return FileA
	}
	return FileH
}

// MoveKind categorizes a move.
type MoveKind int

const (
	MoveNone MoveKind = iota // Zero value; not a move
	MoveNormal
	MoveCastle
)

// Move is either a normal from-to relocation or a castle tagged by side.
// Captures and check annotations are derived from the position, not stored.
type Move struct {
	Kind MoveKind
	From Square
	To   Square
	Side CastlingSide
}

// NormalMove creates a from-to move.
func NormalMove(from, to Square) Move {
	return Move{Kind: MoveNormal, From: from, To: to}
}

// CastleMove creates a castling move for the given side.
func CastleMove(side CastlingSide) Move {
	return Move{Kind: MoveCastle, Side: side}
}

// IsCastle reports whether m is a castling move.
func (m Move) IsCastle() bool {
	return m.Kind == MoveCastle
}

// String returns the move in coordinate notation ("e2e4", "O-O", "O-O-O").
func (m Move) String() string {
	switch m.Kind {
	case MoveNormal:
		return m.From.String() + m.To.String()
	case MoveCastle:
		return m.Side.Notation()
	}
	return "--"
}

// ParseMove parses coordinate notation: "e2e4", "e2-e4", "O-O" or "O-O-O"
// (zeros are accepted in place of the letter O).
func ParseMove(text string) (Move, error) {
	s := strings.TrimSpace(text)
	switch strings.ToUpper(strings.ReplaceAll(s, "0", "O")) {
	case "O-O":
		return CastleMove(KingSide), nil
	case "O-O-O":
		return CastleMove(QueenSide), nil
	}

	s = strings.ReplaceAll(s, "-", "")
	if len(s) != 4 {
		return Move{}, fmt.Errorf("%q: %w", text, errors.ErrInvalidMove)
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return Move{}, fmt.Errorf("%q: %w", text, errors.ErrInvalidMove)
	}
	to, err := ParseSquare(s[2:])
	if err != nil {
		return Move{}, fmt.Errorf("%q: %w", text, errors.ErrInvalidMove)
	}
	return NormalMove(from, to), nil
}

// ParseDestination parses the second half of a prompt-style move: either a
// destination square for a piece already chosen on from, or castling text.
func ParseDestination(from Square, text string) (Move, error) {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(strings.ToUpper(strings.ReplaceAll(s, "0", "O")), "O-O") {
		return ParseMove(s)
	}
	to, err := ParseSquare(s)
	if err != nil {
		return Move{}, fmt.Errorf("%q: %w", text, errors.ErrInvalidMove)
	}
	return NormalMove(from, to), nil
}
