package chess

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// BoardSize is the number of files and ranks on the board.
const BoardSize = 8

// File represents a chess file (column) A-H.
type File int

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

// Rank represents a chess rank (row) 1-8.
type Rank int

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

// FileFromInt converts an ordinal (0-7) to a File.
func FileFromInt(i int) (File, error) {
	if i < 0 || i >= BoardSize {
		return 0, fmt.Errorf("file %d out of range: %w", i, errors.ErrInvalidSquare)
	}
	return File(i), nil
}

// RankFromInt converts an ordinal (0-7) to a Rank.
func RankFromInt(i int) (Rank, error) {
	if i < 0 || i >= BoardSize {
		return 0, fmt.Errorf("rank %d out of range: %w", i, errors.ErrInvalidSquare)
	}
	return Rank(i), nil
}

// Num returns the ordinal of the file (0 for A).
func (f File) Num() int { return int(f) }

// AbsDiff returns the absolute distance between two files.
func (f File) AbsDiff(other File) int { return abs(int(f) - int(other)) }

// Valid reports whether f is on the board.
func (f File) Valid() bool { return f >= FileA && f <= FileH }

// String returns the file letter.
func (f File) String() string {
	if !f.Valid() {
		return "?"
	}
	return string(rune('a' + int(f)))
}

// Num returns the ordinal of the rank (0 for the first rank).
func (r Rank) Num() int { return int(r) }

// AbsDiff returns the absolute distance between two ranks.
func (r Rank) AbsDiff(other Rank) int { return abs(int(r) - int(other)) }

// Valid reports whether r is on the board.
func (r Rank) Valid() bool { return r >= Rank1 && r <= Rank8 }

// String returns the rank digit.
func (r Rank) String() string {
	if !r.Valid() {
		return "?"
	}
	return string(rune('1' + int(r)))
}

// Square is a board position addressed by file and rank.
type Square struct {
	File File
	Rank Rank
}

// NewSquare creates a square from a file and rank.
func NewSquare(file File, rank Rank) Square {
	return Square{File: file, Rank: rank}
}

// SquareFromInts creates a square from file and rank ordinals, failing
// if either is off the board.
func SquareFromInts(file, rank int) (Square, error) {
	f, err := FileFromInt(file)
	if err != nil {
		return Square{}, err
	}
	r, err := RankFromInt(rank)
	if err != nil {
		return Square{}, err
	}
	return Square{File: f, Rank: r}, nil
}

// Offset returns the square df files and dr ranks away, and false if that
// square is off the board.
func (s Square) Offset(df, dr int) (Square, bool) {
	to, err := SquareFromInts(int(s.File)+df, int(s.Rank)+dr)
	return to, err == nil
}

// Valid reports whether s is on the board.
func (s Square) Valid() bool {
	return s.File.Valid() && s.Rank.Valid()
}

// AbsDiffSmallest returns the smaller of the file distance and the rank distance.
func (s Square) AbsDiffSmallest(other Square) int {
	return min(s.File.AbsDiff(other.File), s.Rank.AbsDiff(other.Rank))
}

// String returns the square in coordinate notation, e.g. "e4".
func (s Square) String() string {
	return s.File.String() + s.Rank.String()
}

// ParseSquare parses coordinate notation (e.g. "e4") into a Square.
func ParseSquare(text string) (Square, error) {
	if len(text) != 2 {
		return Square{}, fmt.Errorf("%q: %w", text, errors.ErrInvalidSquare)
	}
	c := text[0]
	if c >= 'A' && c <= 'H' {
		c += 'a' - 'A'
	}
	sq, err := SquareFromInts(int(c)-'a', int(text[1])-'1')
	if err != nil {
		return Square{}, fmt.Errorf("%q: %w", text, errors.ErrInvalidSquare)
	}
	return sq, nil
}

// MustParseSquare is like ParseSquare but panics on malformed input.
// Intended for constants and tests.
func MustParseSquare(text string) Square {
	sq, err := ParseSquare(text)
	if err != nil {
		panic(err)
	}
	return sq
}

var allSquares = func() [BoardSize * BoardSize]Square {
	var squares [BoardSize * BoardSize]Square
	for f := FileA; f <= FileH; f++ {
		for r := Rank1; r <= Rank8; r++ {
			squares[int(f)*BoardSize+int(r)] = Square{File: f, Rank: r}
		}
	}
	return squares
}()

// AllSquares returns all 64 squares, file by file (a1, a2, ... h8).
func AllSquares() [BoardSize * BoardSize]Square {
	return allSquares
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
