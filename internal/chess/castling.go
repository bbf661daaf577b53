package chess

// CastlingRights records, per colour, which castling sides have not yet
// been forfeited.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

func castlingBit(colour Colour, side CastlingSide) CastlingRights {
	switch {
	case colour == White && side == KingSide:
		return WhiteKingSideCastle
	case colour == White:
		return WhiteQueenSideCastle
	case side == KingSide:
		return BlackKingSideCastle
	default:
		return BlackQueenSideCastle
	}
}

// Has reports whether colour may still castle on side.
func (cr CastlingRights) Has(colour Colour, side CastlingSide) bool {
	return cr&castlingBit(colour, side) != 0
}

// Sides returns the sides colour may still castle on, king side first.
func (cr CastlingRights) Sides(colour Colour) []CastlingSide {
	var sides []CastlingSide
	for _, side := range []CastlingSide{KingSide, QueenSide} {
		if cr.Has(colour, side) {
			sides = append(sides, side)
		}
	}
	return sides
}

// ClearColour returns cr with both of colour's rights removed.
func (cr CastlingRights) ClearColour(colour Colour) CastlingRights {
	return cr &^ (castlingBit(colour, KingSide) | castlingBit(colour, QueenSide))
}

// ClearSide returns cr with one right removed.
func (cr CastlingRights) ClearSide(colour Colour, side CastlingSide) CastlingRights {
	return cr &^ castlingBit(colour, side)
}

// String returns the FEN-style castling field ("KQkq", "-").
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// ParseCastlingRights parses the FEN-style castling field.
// Unknown characters are reported with ok == false.
func ParseCastlingRights(field string) (CastlingRights, bool) {
	cr := NoCastling
	if field == "-" || field == "" {
		return cr, true
	}
	for _, c := range field {
		switch c {
		case 'K':
			cr |= WhiteKingSideCastle
		case 'Q':
			cr |= WhiteQueenSideCastle
		case 'k':
			cr |= BlackKingSideCastle
		case 'q':
			cr |= BlackQueenSideCastle
		default:
			return NoCastling, false
		}
	}
	return cr, true
}
