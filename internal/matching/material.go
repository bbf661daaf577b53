package matching

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/store"
)

var materialKinds = []chess.PieceKind{chess.King, chess.Queen, chess.Rook, chess.Bishop, chess.Knight, chess.Pawn}

// MaterialMatcher matches games by material balance.
type MaterialMatcher struct {
	// Pattern like "QR:qrr" means white has Q+R, black has Q+2R
	pattern    string
	exactMatch bool
	want       [2][chess.NumPieceKinds]int
}

// NewMaterialMatcher creates a new material matcher.
// Pattern format: "QRN:qrn" (white pieces : black pieces)
// Use uppercase for white, lowercase for black
// K=King, Q=Queen, R=Rook, B=Bishop, N=Knight, P=Pawn
//
// With exact set a position matches only when it has exactly the listed
// pieces; otherwise it must have at least them.
func NewMaterialMatcher(pattern string, exact bool) (*MaterialMatcher, error) {
	mm := &MaterialMatcher{pattern: pattern, exactMatch: exact}

	white, black, _ := strings.Cut(pattern, ":")
	if err := mm.parseSide(white, chess.White); err != nil {
		return nil, err
	}
	if err := mm.parseSide(black, chess.Black); err != nil {
		return nil, err
	}
	return mm, nil
}

func (mm *MaterialMatcher) parseSide(s string, colour chess.Colour) error {
	for i := 0; i < len(s); i++ {
		c := s[i]
		kind := pieceFromLetter(c)
		if kind == chess.Empty {
			return fmt.Errorf("material pattern %q: unknown piece %q: %w", mm.pattern, c, errors.ErrInvalidConfig)
		}
		if owner := letterColour(c); owner != colour {
			return fmt.Errorf("material pattern %q: %q belongs to %s: %w", mm.pattern, c, owner, errors.ErrInvalidConfig)
		}
		mm.want[colour][kind]++
	}
	return nil
}

func pieceFromLetter(c byte) chess.PieceKind {
	switch c {
	case 'K', 'k':
		return chess.King
	case 'Q', 'q':
		return chess.Queen
	case 'R', 'r':
		return chess.Rook
	case 'B', 'b':
		return chess.Bishop
	case 'N', 'n':
		return chess.Knight
	case 'P', 'p':
		return chess.Pawn
	}
	return chess.Empty
}

func letterColour(c byte) chess.Colour {
	if c >= 'a' && c <= 'z' {
		return chess.Black
	}
	return chess.White
}

// Match implements GameMatcher. The record is replayed from its start and
// matches if any position along the way, the start included, has the
// pattern's material. A record that stops replaying is matched up to the
// rejected move.
func (mm *MaterialMatcher) Match(rec *store.Record) bool {
	start := rec.Start
	if start == "" {
		start = chess.InitialPosition
	}
	g, err := engine.NewGameFromPosition(start)
	if err != nil {
		return false
	}

	board := g.Board()
	if mm.matchPosition(&board) {
		return true
	}
	for _, text := range rec.Moves {
		m, err := chess.ParseMove(text)
		if err != nil || g.TryMove(m) != nil {
			return false
		}
		board = g.Board()
		if mm.matchPosition(&board) {
			return true
		}
	}
	return false
}

// matchPosition checks if a position matches the material pattern.
func (mm *MaterialMatcher) matchPosition(board *chess.Board) bool {
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		for _, kind := range materialKinds {
			have, want := board.Count(kind, colour), mm.want[colour][kind]
			if have < want || (mm.exactMatch && have != want) {
				return false
			}
		}
	}
	return true
}

// Name implements GameMatcher.
func (mm *MaterialMatcher) Name() string {
	if mm.exactMatch {
		return "MaterialMatcher(=" + mm.pattern + ")"
	}
	return "MaterialMatcher(" + mm.pattern + ")"
}
