package chess

import (
	"errors"
	"testing"

	chesserrors "github.com/lgbarn/chessrules-go/internal/errors"
)

func TestParsePosition_Initial(t *testing.T) {
	pos, err := ParsePosition(InitialPosition)
	if err != nil {
		t.Fatalf("ParsePosition(InitialPosition) error: %v", err)
	}

	if pos.Board != *InitialBoard() {
		t.Error("ParsePosition(InitialPosition).Board differs from InitialBoard()")
	}
	if pos.Turn != White {
		t.Errorf("Turn = %v; want White", pos.Turn)
	}
	if pos.Castling != AllCastling {
		t.Errorf("Castling = %v; want KQkq", pos.Castling)
	}
	if got := pos.String(); got != InitialPosition {
		t.Errorf("String() = %q; want %q", got, InitialPosition)
	}
}

func TestParsePosition_Fields(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		turn     Colour
		castling CastlingRights
	}{
		{"placement only", "4k3/8/8/8/8/8/8/4K3", White, NoCastling},
		{"black to move", "4k3/8/8/8/8/8/8/4K3 b", Black, NoCastling},
		{"with castling", "r3k2r/8/8/8/8/8/8/R3K2R w Kq", White, WhiteKingSideCastle | BlackQueenSideCastle},
		{"full fen tail ignored", "4k3/8/8/8/8/8/8/4K3 w - e3 0 1", White, NoCastling},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := ParsePosition(tt.text)
			if err != nil {
				t.Fatalf("ParsePosition(%q) error: %v", tt.text, err)
			}
			if pos.Turn != tt.turn {
				t.Errorf("Turn = %v; want %v", pos.Turn, tt.turn)
			}
			if pos.Castling != tt.castling {
				t.Errorf("Castling = %v; want %v", pos.Castling, tt.castling)
			}
		})
	}
}

func TestParsePosition_Invalid(t *testing.T) {
	tests := []string{
		"",
		"8/8/8",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR",
		"rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KZ",
		"4k3/8/8/8/8/8/8/4K2\u0151",
		"4k3/8/8/8/8/8/8/3\u034bK3",
		"4k3/8/8/8/8/8/8/4K2\uff30",
	}

	for _, text := range tests {
		if _, err := ParsePosition(text); !errors.Is(err, chesserrors.ErrInvalidPosition) {
			t.Errorf("ParsePosition(%q) error = %v; want ErrInvalidPosition", text, err)
		}
	}
}

func TestParsePlacement_PawnMovedFlag(t *testing.T) {
	board, err := ParsePlacement("4k3/p7/8/3P4/8/8/4P3/4K3")
	if err != nil {
		t.Fatalf("ParsePlacement error: %v", err)
	}

	tests := []struct {
		sq        string
		wantMoved bool
	}{
		{"a7", false}, // black pawn on its starting rank
		{"e2", false}, // white pawn on its starting rank
		{"d5", true},  // advanced white pawn
	}
	for _, tt := range tests {
		p := board.Get(MustParseSquare(tt.sq))
		if p.Kind != Pawn || p.Moved != tt.wantMoved {
			t.Errorf("Get(%s) = %+v; want pawn with Moved=%v", tt.sq, p, tt.wantMoved)
		}
	}
}

func TestPlacement_RoundTrip(t *testing.T) {
	placements := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
		"r3k2r/8/8/8/8/8/8/R3K2R",
		"8/5k2/8/8/8/8/5K2/4R3",
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR",
	}
	for _, placement := range placements {
		board, err := ParsePlacement(placement)
		if err != nil {
			t.Fatalf("ParsePlacement(%q) error: %v", placement, err)
		}
		if got := board.Placement(); got != placement {
			t.Errorf("Placement() = %q; want %q", got, placement)
		}
	}
}
