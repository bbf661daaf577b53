package engine

import (
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

var gameOpts = []cmp.Option{cmp.AllowUnexported(Game{}, chess.Board{})}

func mustGame(t *testing.T, position string) *Game {
	t.Helper()
	g, err := NewGameFromPosition(position)
	if err != nil {
		t.Fatalf("NewGameFromPosition(%q) error: %v", position, err)
	}
	return g
}

func TestNewGame(t *testing.T) {
	g := NewGame()

	testutil.AssertEqual(t, g.Turn(), chess.White, "Turn()")
	testutil.AssertEqual(t, g.Castling(), chess.AllCastling, "Castling()")
	testutil.AssertEqual(t, g.Status(), Status{Kind: Ongoing}, "Status()")
	testutil.AssertFalse(t, g.Check(), "Check()")
	testutil.AssertEqual(t, len(g.Captured()), 0, "Captured()")
	testutil.AssertEqual(t, g.Ply(), 0, "Ply()")
	testutil.AssertEqual(t, g.Position().String(), chess.InitialPosition, "Position()")
	testutil.AssertEqual(t, len(g.LegalMoves()), 20, "LegalMoves()")
}

func TestNewGameFromPosition_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		position string
	}{
		{"no white king", "4k3/8/8/8/8/8/8/8 w"},
		{"two black kings", "k3k3/8/8/8/8/8/8/4K3 w"},
		{"side not to move in check", "4k3/8/8/8/8/8/8/4R1K1 w"},
		{"bad text", "not a position"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGameFromPosition(tt.position)
			testutil.AssertErrorIs(t, err, errors.ErrInvalidPosition)
		})
	}
}

func TestNewGameFromPosition_State(t *testing.T) {
	// Rights for pieces away from home are dropped.
	g := mustGame(t, "r3k3/8/8/8/8/8/8/4K2R w KQkq")
	testutil.AssertEqual(t, g.Castling().String(), "Kq")

	// A position that is already mate carries that status.
	g = mustGame(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq")
	testutil.AssertTrue(t, g.Check(), "Check()")
	testutil.AssertEqual(t, g.Status(), Status{Kind: Checkmate, Colour: chess.White})
}

func TestTryMove_TurnAlternation(t *testing.T) {
	g := NewGame()
	moves := []string{"e2e4", "e7e5", "g1f3", "b8c6"}
	for i, text := range moves {
		want := chess.White
		if i%2 == 1 {
			want = chess.Black
		}
		testutil.AssertEqual(t, g.Turn(), want, "Turn() before %s", text)
		testutil.MustPlay(t, g, text)
	}
	testutil.AssertEqual(t, g.Turn(), chess.White)
	testutil.AssertEqual(t, g.Ply(), len(moves))
	testutil.AssertEqual(t, g.History()[2].String(), "g1f3")
}

func TestTryMove_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		position string
		setup    []string
		move     string
		want     error
	}{
		{"opponent piece", chess.InitialPosition, nil, "e7e5", errors.ErrOpponentPiece},
		{"empty square", chess.InitialPosition, nil, "e4e5", errors.ErrEmptySquare},
		{"friendly destination", chess.InitialPosition, nil, "d1d2", errors.ErrCollision},
		{"blocked path", chess.InitialPosition, nil, "a1a3", errors.ErrCollision},
		{"wrong movement", chess.InitialPosition, nil, "g1g3", errors.ErrWrongPieceMovement},
		{"pawn double after moving", chess.InitialPosition, []string{"e2e3", "e7e6"}, "e3e5", errors.ErrPawnDoubleMove},
		{"pinned piece", "4k3/4r3/8/8/8/8/4B3/4K3 w", nil, "e2d3", errors.ErrSelfCheck},
		{"king into attack", "4k3/8/8/8/8/8/5r2/3K4 w", nil, "d1d2", errors.ErrSelfCheck},
		{"ignoring check", "4k3/4r3/8/8/8/8/P7/4K3 w", nil, "a2a3", errors.ErrSelfCheck},
		{"castle through pieces", chess.InitialPosition, nil, "O-O", errors.ErrCollision},
		{"castle without right", "r3k2r/8/8/8/8/8/8/R3K2R w kq", nil, "O-O", errors.ErrCastling},
		{"castle out of check", "4k3/8/8/8/8/8/4r3/R3K2R w KQ", nil, "O-O-O", errors.ErrCastling},
		{"castle through attack", "4kr2/8/8/8/8/8/8/R3K2R w KQ", nil, "O-O", errors.ErrCastling},
		{"castle into attack", "4k1r1/8/8/8/8/8/8/R3K2R w KQ", nil, "O-O", errors.ErrCastling},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := mustGame(t, tt.position)
			testutil.MustPlay(t, g, tt.setup...)
			before := g.Clone()

			m, err := chess.ParseMove(tt.move)
			testutil.AssertNoError(t, err)
			err = g.TryMove(m)
			testutil.AssertErrorIs(t, err, tt.want, "TryMove(%s)", tt.move)

			var me *errors.MoveError
			if !stderrors.As(err, &me) {
				t.Fatalf("TryMove(%s) error %T is not *MoveError", tt.move, err)
			}
			testutil.AssertEqual(t, me.Ply, len(tt.setup)+1, "MoveError.Ply")
			testutil.AssertEqual(t, me.Move, m.String(), "MoveError.Move")

			testutil.AssertEqualOpts(t, g, before, gameOpts, "game changed by rejected move")
		})
	}
}

func TestTryMove_OffBoard(t *testing.T) {
	tests := []struct {
		name     string
		position string
		move     chess.Move
	}{
		{"knight off the a-file", chess.InitialPosition, chess.NormalMove(chess.MustParseSquare("b1"), chess.Square{File: -1, Rank: chess.Rank2})},
		{"king below rank 1", "4k3/8/8/8/8/8/8/4K3 w", chess.NormalMove(chess.MustParseSquare("e1"), chess.Square{File: chess.FileE, Rank: -1})},
		{"king past the h-file", "4k3/8/8/8/8/8/8/7K w", chess.NormalMove(chess.MustParseSquare("h1"), chess.Square{File: chess.FileH + 1, Rank: chess.Rank1})},
		{"origin off the board", chess.InitialPosition, chess.NormalMove(chess.Square{File: chess.FileA, Rank: chess.Rank8 + 1}, chess.MustParseSquare("a6"))},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := mustGame(t, tt.position)
			before := g.Clone()

			err := g.TryMove(tt.move)
			testutil.AssertErrorIs(t, err, errors.ErrInvalidSquare, "TryMove(%s)", tt.move)
			var me *errors.MoveError
			testutil.AssertTrue(t, stderrors.As(err, &me), "error %T is not *MoveError", err)
			testutil.AssertEqualOpts(t, g, before, gameOpts, "game changed by off-board move")
		})
	}
}

func TestPossibleMoves_OffBoard(t *testing.T) {
	g := NewGame()
	_, _, err := g.PossibleMoves(chess.Square{File: chess.FileH + 1, Rank: chess.Rank1}, false)
	testutil.AssertErrorIs(t, err, errors.ErrInvalidSquare)
	_, _, err = g.PossibleMoves(chess.Square{File: chess.FileA, Rank: -1}, true)
	testutil.AssertErrorIs(t, err, errors.ErrInvalidSquare)
}

func TestTryMove_NoMove(t *testing.T) {
	g := NewGame()
	testutil.AssertErrorIs(t, g.TryMove(chess.Move{}), errors.ErrInvalidMove)
}

func TestTryMove_Captures(t *testing.T) {
	g := NewGame()
	testutil.MustPlay(t, g, "e2e4", "d7d5", "e4d5", "d8d5", "b1c3", "d5a2", "a1a2")

	want := []chess.Piece{chess.B(chess.Pawn), chess.W(chess.Pawn), chess.W(chess.Pawn), chess.B(chess.Queen)}
	want[1].Moved = true
	want[0].Moved = true
	testutil.AssertEqual(t, g.Captured(), want)

	// Captured is a copy.
	g.Captured()[0] = chess.NoPiece
	testutil.AssertEqual(t, g.Captured()[0].Kind, chess.Pawn)
}

func TestTryMove_FoolsMate(t *testing.T) {
	g := NewGame()
	testutil.MustPlay(t, g, testutil.FoolsMate...)

	testutil.AssertEqual(t, g.Status(), Status{Kind: Checkmate, Colour: chess.White})
	testutil.AssertEqual(t, g.Status().String(), "Checkmate(White)")
	testutil.AssertTrue(t, g.Check(), "Check()")
	testutil.AssertEqual(t, g.Turn(), chess.White)

	winner, ok := g.Status().Winner()
	testutil.AssertTrue(t, ok, "Winner() ok")
	testutil.AssertEqual(t, winner, chess.Black)
	testutil.AssertEqual(t, len(g.LegalMoves()), 0, "LegalMoves() after mate")
}

func TestTryMove_ScholarsMate(t *testing.T) {
	g := NewGame()
	testutil.MustPlay(t, g, testutil.ScholarsMate...)

	testutil.AssertEqual(t, g.Status(), Status{Kind: Checkmate, Colour: chess.Black})
	testutil.AssertEqual(t, len(g.Captured()), 1)
}

func TestTryMove_CheckWithoutMate(t *testing.T) {
	g := NewGame()
	testutil.MustPlay(t, g, "e2e4", "f7f6", "d1h5")

	testutil.AssertTrue(t, g.Check(), "Check() after Qh5+")
	testutil.AssertEqual(t, g.Status().Kind, Ongoing)

	// The checking queen reaches the king square under the raw rules.
	board := g.Board()
	raw, err := possibleMoves(&board, testutil.Sq(t, "h5"), true)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, raw.Contains(testutil.Sq(t, "e8")), "queen attacks e8")

	testutil.MustPlay(t, g, "g7g6")
	testutil.AssertFalse(t, g.Check(), "Check() after block")
}

func TestTryMove_Castling(t *testing.T) {
	g := mustGame(t, "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq")
	testutil.MustPlay(t, g, "O-O")

	board := g.Board()
	testutil.AssertTrue(t, board.Get(testutil.Sq(t, "g1")).Is(chess.King, chess.White), "king on g1")
	testutil.AssertTrue(t, board.Get(testutil.Sq(t, "f1")).Is(chess.Rook, chess.White), "rook on f1")
	testutil.AssertFalse(t, board.Occupied(testutil.Sq(t, "e1")), "e1 empty")
	testutil.AssertFalse(t, board.Occupied(testutil.Sq(t, "h1")), "h1 empty")
	testutil.AssertEqual(t, g.Castling().String(), "kq")
	testutil.AssertEqual(t, g.Turn(), chess.Black)

	testutil.MustPlay(t, g, "O-O-O")
	board = g.Board()
	testutil.AssertTrue(t, board.Get(testutil.Sq(t, "c8")).Is(chess.King, chess.Black), "king on c8")
	testutil.AssertTrue(t, board.Get(testutil.Sq(t, "d8")).Is(chess.Rook, chess.Black), "rook on d8")
	testutil.AssertFalse(t, board.Occupied(testutil.Sq(t, "a8")), "a8 empty")
	testutil.AssertEqual(t, g.Castling(), chess.NoCastling)
}

func TestTryMove_CastlingRightsBookkeeping(t *testing.T) {
	const position = "r3k2r/1pppppp1/8/8/8/8/1PPPPPP1/R3K2R w KQkq"

	tests := []struct {
		name  string
		moves []string
		want  string
	}{
		{"king moves", []string{"e1f1"}, "kq"},
		{"king returns home", []string{"e1f1", "b7b6", "f1e1"}, "kq"},
		{"king side rook", []string{"h1h4"}, "Qkq"},
		{"queen side rook", []string{"a1a5"}, "Kkq"},
		{"rook captures rook at home", []string{"h1h8"}, "Qq"},
		{"rook returns home", []string{"a1a4", "b7b6", "a4a1"}, "Kkq"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := mustGame(t, position)
			testutil.MustPlay(t, g, tt.moves...)
			testutil.AssertEqual(t, g.Castling().String(), tt.want)
		})
	}
}

func TestPossibleMoves(t *testing.T) {
	g := mustGame(t, "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq")

	tests := []struct {
		from        string
		wantSquares []string
		wantCastles []chess.Move
	}{
		{"e1", []string{"d1", "f1"}, nil},
		{"h1", []string{"f1", "g1"}, []chess.Move{chess.CastleMove(chess.KingSide)}},
		{"a1", []string{"b1", "c1", "d1"}, []chess.Move{chess.CastleMove(chess.QueenSide)}},
		{"a2", []string{"a3", "a4"}, nil},
		{"h8", []string{"f8", "g8"}, []chess.Move{chess.CastleMove(chess.KingSide)}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.from, func(t *testing.T) {
			mb, castles, err := g.PossibleMoves(testutil.Sq(t, tt.from), false)
			testutil.AssertNoError(t, err)

			var got []string
			for _, sq := range mb.Squares() {
				got = append(got, sq.String())
			}
			testutil.AssertEqual(t, got, tt.wantSquares, "destinations from %s", tt.from)
			testutil.AssertEqual(t, castles, tt.wantCastles, "castles from %s", tt.from)
		})
	}

	_, _, err := g.PossibleMoves(testutil.Sq(t, "e4"), false)
	testutil.AssertErrorIs(t, err, errors.ErrEmptySquare)
}

func TestPossibleMoves_SuppressCheckFilter(t *testing.T) {
	g := mustGame(t, "4k3/4r3/8/8/8/8/4B3/4K3 w")
	e2 := testutil.Sq(t, "e2")

	filtered, _, err := g.PossibleMoves(e2, false)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, filtered.Len(), 0, "pinned bishop legal moves")

	raw, castles, err := g.PossibleMoves(e2, true)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, raw.Len(), 9, "pinned bishop raw moves")
	testutil.AssertEqual(t, len(castles), 0)

	m, ok := raw.At(testutil.Sq(t, "a6"))
	testutil.AssertTrue(t, ok, "At(a6)")
	testutil.AssertEqual(t, m, testutil.Move(t, "e2", "a6"))
}

func TestLegalCastles(t *testing.T) {
	g := mustGame(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq")
	testutil.AssertEqual(t, g.LegalCastles(), []chess.Move{chess.CastleMove(chess.KingSide), chess.CastleMove(chess.QueenSide)})

	g = mustGame(t, "r3k2r/8/8/8/8/8/8/RN2K2R w KQkq")
	testutil.AssertEqual(t, g.LegalCastles(), []chess.Move{chess.CastleMove(chess.KingSide)})

	testutil.AssertEqual(t, len(NewGame().LegalCastles()), 0)
}

func TestClone(t *testing.T) {
	g := NewGame()
	testutil.MustPlay(t, g, "e2e4", "d7d5")

	c := g.Clone()
	testutil.AssertEqualOpts(t, c, g, gameOpts)

	testutil.MustPlay(t, c, "e4d5")
	testutil.AssertEqual(t, g.Ply(), 2, "original Ply()")
	testutil.AssertEqual(t, len(g.Captured()), 0, "original Captured()")
	testutil.AssertEqual(t, c.Ply(), 3, "clone Ply()")
}

func TestStatus(t *testing.T) {
	tests := []struct {
		status     Status
		wantString string
		wantOver   bool
	}{
		{Status{}, "Ongoing", false},
		{Status{Kind: Checkmate, Colour: chess.Black}, "Checkmate(Black)", true},
		{Status{Kind: Promoting, Colour: chess.White}, "Promoting(White)", false},
	}
	for _, tt := range tests {
		tt := tt
		testutil.AssertEqual(t, tt.status.String(), tt.wantString)
		testutil.AssertEqual(t, tt.status.IsOver(), tt.wantOver, "%s IsOver()", tt.wantString)
	}

	if _, ok := (Status{}).Winner(); ok {
		t.Error("Winner() ok for an ongoing game")
	}
}
