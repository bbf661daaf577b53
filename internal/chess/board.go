package chess

// Board is an 8x8 grid of squares, each holding an optional piece.
// It is indexed rank-then-file and has value semantics: assigning a Board
// copies all 64 squares, which is how hypothetical positions are made.
type Board struct {
	squares [BoardSize][BoardSize]Piece
}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	return &Board{}
}

// InitialBoard creates a board set up in the standard starting position.
func InitialBoard() *Board {
	b := NewBoard()
	b.SetupInitialPosition()
	return b
}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	*b = Board{}

	backRank := []PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := FileA; file <= FileH; file++ {
		b.squares[Rank1][file] = W(backRank[file])
		b.squares[Rank2][file] = W(Pawn)
		b.squares[Rank7][file] = B(Pawn)
		b.squares[Rank8][file] = B(backRank[file])
	}
}

// Get returns the piece on sq, or NoPiece when the square is empty or off the board.
func (b *Board) Get(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return b.squares[sq.Rank][sq.File]
}

// At returns the piece at the given rank and file.
func (b *Board) At(rank Rank, file File) Piece {
	return b.Get(Square{File: file, Rank: rank})
}

// Row returns a copy of one rank, indexed by file. A rank off the board
// yields an empty row.
func (b *Board) Row(rank Rank) [BoardSize]Piece {
	if !rank.Valid() {
		return [BoardSize]Piece{}
	}
	return b.squares[rank]
}

// Set places a piece on sq. Squares off the board are ignored.
func (b *Board) Set(sq Square, piece Piece) {
	if sq.Valid() {
		b.squares[sq.Rank][sq.File] = piece
	}
}

// Clear empties sq.
func (b *Board) Clear(sq Square) {
	b.Set(sq, NoPiece)
}

// Occupied reports whether sq holds any piece.
func (b *Board) Occupied(sq Square) bool {
	return !b.Get(sq).IsEmpty()
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	return newBoard
}

// Relocate moves whatever stands on from to to, replacing any occupant,
// and returns the replaced piece. A moving pawn is marked as moved.
func (b *Board) Relocate(from, to Square) Piece {
	piece := b.Get(from)
	captured := b.Get(to)
	if piece.Kind == Pawn {
		piece.Moved = true
	}
	b.Clear(from)
	b.Set(to, piece)
	return captured
}

// FindKing returns the square of colour's king. When there is more than
// one (never in a legal game) the first in AllSquares order is returned.
func (b *Board) FindKing(colour Colour) (Square, bool) {
	for _, sq := range allSquares {
		if b.Get(sq).Is(King, colour) {
			return sq, true
		}
	}
	return Square{}, false
}

// Count returns how many pieces of the given kind and colour are on the board.
func (b *Board) Count(kind PieceKind, colour Colour) int {
	n := 0
	for _, sq := range allSquares {
		if b.Get(sq).Is(kind, colour) {
			n++
		}
	}
	return n
}

// Pieces returns the occupied squares of colour, in AllSquares order.
func (b *Board) Pieces(colour Colour) []Square {
	var squares []Square
	for _, sq := range allSquares {
		p := b.Get(sq)
		if !p.IsEmpty() && p.Colour == colour {
			squares = append(squares, sq)
		}
	}
	return squares
}
