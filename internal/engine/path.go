package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// collisionCheckLine walks the straight or diagonal line from one square
// towards another, for a piece of the given colour, and returns the first
// square the piece cannot reach.
//
// A friendly piece blocks its own square. An enemy piece does not block its
// own square (it can be captured) but blocks every square behind it. Leaving
// the board blocks. The walk includes to itself; the caller is responsible
// for from and to actually lying on one line.
func collisionCheckLine(board *chess.Board, from, to chess.Square, colour chess.Colour) (chess.Square, bool) {
	df, dr := delta(from, to)
	fileDir, rankDir := sign(df), sign(dr)

	steps := abs(df)
	if fileDir == 0 {
		steps = abs(dr)
	}

	enemySeen := false
	for i := 1; i <= steps; i++ {
		sq := chess.Square{
			File: from.File + chess.File(fileDir*i),
			Rank: from.Rank + chess.Rank(rankDir*i),
		}
		if !sq.Valid() {
			return sq, true
		}
		if enemySeen {
			return sq, true
		}
		if piece := board.Get(sq); !piece.IsEmpty() {
			if piece.Colour == colour {
				return sq, true
			}
			enemySeen = true
		}
	}
	return chess.Square{}, false
}

// collisionCheck reports whether sq is occupied by a piece of colour.
func collisionCheck(board *chess.Board, sq chess.Square, colour chess.Colour) bool {
	piece := board.Get(sq)
	return !piece.IsEmpty() && piece.Colour == colour
}

// PathBlocked reports whether a piece of colour standing on from is blocked
// before reaching to along a straight or diagonal line.
func PathBlocked(board *chess.Board, from, to chess.Square, colour chess.Colour) bool {
	_, blocked := collisionCheckLine(board, from, to, colour)
	return blocked
}
