package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns the sign of x: -1, 0, or 1.
func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

// delta returns the signed file and rank distance from one square to another.
func delta(from, to chess.Square) (df, dr int) {
	return int(to.File) - int(from.File), int(to.Rank) - int(from.Rank)
}
