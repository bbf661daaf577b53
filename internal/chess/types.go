// Package chess provides core chess types: colours, pieces, squares, moves
// and the 8x8 board.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// PieceKind represents a chess piece type.
type PieceKind int

const (
	Empty PieceKind = iota // No piece
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumPieceKinds
)

// String returns the string representation of a piece kind.
func (k PieceKind) String() string {
	names := []string{"Empty", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece kind (uppercase).
func (k PieceKind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// Piece is a piece kind owned by a colour. The zero value is an empty square.
//
// Moved is the pawn's "has moved since the start" flag; it is only ever set
// on pawns and gates the two-square advance.
type Piece struct {
	Kind   PieceKind
	Colour Colour
	Moved  bool
}

// NoPiece is the empty square value.
var NoPiece = Piece{}

// NewPiece creates an unmoved piece.
func NewPiece(colour Colour, kind PieceKind) Piece {
	return Piece{Kind: kind, Colour: colour}
}

// W creates a white piece.
func W(kind PieceKind) Piece {
	return NewPiece(White, kind)
}

// B creates a black piece.
func B(kind PieceKind) Piece {
	return NewPiece(Black, kind)
}

// IsEmpty reports whether p is the empty square value.
func (p Piece) IsEmpty() bool {
	return p.Kind == Empty
}

// Is reports whether p is a piece of the given kind and colour.
func (p Piece) Is(kind PieceKind, colour Colour) bool {
	return p.Kind == kind && p.Colour == colour
}

// String returns the piece letter, uppercase for White and lowercase for Black.
func (p Piece) String() string {
	if p.IsEmpty() {
		return "."
	}
	letter := p.Kind.Letter()
	if p.Colour == Black {
		letter += 'a' - 'A'
	}
	return string(letter)
}

// PawnDirection returns +1 for White, -1 for Black (rank direction of pawn advance).
func PawnDirection(colour Colour) int {
	if colour == White {
		return 1
	}
	return -1
}

// HomeRank returns the back rank of the given colour.
func HomeRank(colour Colour) Rank {
	if colour == White {
		return Rank1
	}
	return Rank8
}

// PawnRank returns the starting rank of the given colour's pawns.
func PawnRank(colour Colour) Rank {
	if colour == White {
		return Rank2
	}
	return Rank7
}
