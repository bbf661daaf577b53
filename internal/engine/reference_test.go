package engine

import (
	"math/rand"
	"sort"
	"testing"

	refchess "github.com/notnil/chess"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

// The reference library plays full chess. Moves outside this engine's rule
// set (castling, en passant, promotion) are left out of both sides of the
// comparison; castling has its own tests.

var referencePositions = []string{
	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq",
	"r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w -",
	"4k3/4r3/8/8/8/8/4B3/4K3 w -",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w -",
	"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq",
}

func referenceGame(t *testing.T, position string) *refchess.Game {
	t.Helper()
	opt, err := refchess.FEN(position + " - 0 1")
	if err != nil {
		t.Fatalf("reference FEN(%q) error: %v", position, err)
	}
	return refchess.NewGame(opt)
}

// referenceMoves returns the reference library's legal moves in UCI form,
// minus the moves this engine does not model.
func referenceMoves(g *refchess.Game) []string {
	var out []string
	for _, m := range g.ValidMoves() {
		if m.HasTag(refchess.KingSideCastle) || m.HasTag(refchess.QueenSideCastle) ||
			m.HasTag(refchess.EnPassant) || m.Promo() != refchess.NoPieceType {
			continue
		}
		out = append(out, m.S1().String()+m.S2().String())
	}
	sort.Strings(out)
	return out
}

// normalMoves returns the side to move's legal normal moves, without pawn
// moves onto the last rank.
func normalMoves(g *Game) []string {
	board := g.Board()
	var out []string
	for _, from := range board.Pieces(g.Turn()) {
		mb, _, _ := g.PossibleMoves(from, false)
		for _, m := range mb.Moves() {
			if board.Get(m.From).Kind == chess.Pawn && (m.To.Rank == chess.Rank1 || m.To.Rank == chess.Rank8) {
				continue
			}
			out = append(out, m.String())
		}
	}
	sort.Strings(out)
	return out
}

func TestLegalMoves_MatchReference(t *testing.T) {
	for _, position := range referencePositions {
		position := position
		t.Run(position, func(t *testing.T) {
			t.Parallel()
			g := mustGame(t, position)
			ref := referenceGame(t, position)
			testutil.AssertEqual(t, normalMoves(g), referenceMoves(ref), "legal moves")
		})
	}
}

func TestRandomGames_MatchReference(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping reference playouts in short mode")
	}

	const plies = 80
	for seed := int64(1); seed <= 6; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g := NewGame()
		ref := refchess.NewGame()

		for ply := 0; ply < plies && ref.Outcome() == refchess.NoOutcome; ply++ {
			ours := normalMoves(g)
			testutil.AssertEqual(t, ours, referenceMoves(ref), "seed %d ply %d", seed, ply)
			if len(ours) == 0 {
				break
			}

			pick := ours[rng.Intn(len(ours))]
			testutil.MustPlay(t, g, pick)

			var played *refchess.Move
			for _, m := range ref.ValidMoves() {
				if m.S1().String()+m.S2().String() == pick && m.Promo() == refchess.NoPieceType {
					played = m
					break
				}
			}
			if played == nil {
				t.Fatalf("seed %d ply %d: reference has no move %s", seed, ply, pick)
			}
			if err := ref.Move(played); err != nil {
				t.Fatalf("seed %d ply %d: reference rejected %s: %v", seed, ply, pick, err)
			}

			testutil.AssertEqual(t, g.Check(), played.HasTag(refchess.Check), "seed %d ply %d check after %s", seed, ply, pick)
			testutil.AssertEqual(t, g.Status().IsOver(), ref.Method() == refchess.Checkmate, "seed %d ply %d mate after %s", seed, ply, pick)
		}
	}
}
