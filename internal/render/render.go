// Package render draws boards, move grids and game status as text for the
// terminal front end and the store tools.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Empty squares and move grid cells.
const (
	EmptyGlyph     = "."
	ReachableGlyph = "#"
)

var unicodeGlyphs = [2][chess.NumPieceKinds]string{
	chess.Black: {"", "♟", "♞", "♝", "♜", "♛", "♚"},
	chess.White: {"", "♙", "♘", "♗", "♖", "♕", "♔"},
}

// Glyph returns the one-character drawing of a piece.
func Glyph(p chess.Piece, set config.GlyphSet) string {
	if p.IsEmpty() {
		return EmptyGlyph
	}
	if set == config.UnicodeGlyphs {
		return unicodeGlyphs[p.Colour][p.Kind]
	}
	return p.String()
}

// Board draws the board with one "[x]" cell per square. When FlipForBlack
// is set and perspective is Black, rank 1 is drawn at the top.
func Board(w io.Writer, board *chess.Board, perspective chess.Colour, cfg *config.DisplayConfig) error {
	return grid(w, perspective, cfg, func(sq chess.Square) string {
		return Glyph(board.Get(sq), cfg.Glyphs)
	})
}

// Moves draws a move grid: ReachableGlyph where a move lands, EmptyGlyph
// elsewhere, followed by a line per available castle.
func Moves(w io.Writer, mb *engine.MoveBoard, castles []chess.Move, perspective chess.Colour, cfg *config.DisplayConfig) error {
	err := grid(w, perspective, cfg, func(sq chess.Square) string {
		if mb.Contains(sq) {
			return ReachableGlyph
		}
		return EmptyGlyph
	})
	if err != nil || len(castles) == 0 {
		return err
	}

	names := make([]string, 0, len(castles))
	for _, m := range castles {
		names = append(names, fmt.Sprintf("%s (%s)", sideName(m.Side), m.Side.Notation()))
	}
	_, err = fmt.Fprintf(w, "Available castles: %s\n", strings.Join(names, ", "))
	return err
}

func grid(w io.Writer, perspective chess.Colour, cfg *config.DisplayConfig, cell func(chess.Square) string) error {
	flip := cfg.FlipForBlack && perspective == chess.Black

	files := make([]chess.File, 0, chess.BoardSize)
	ranks := make([]chess.Rank, 0, chess.BoardSize)
	for i := 0; i < chess.BoardSize; i++ {
		if flip {
			files = append(files, chess.FileH-chess.File(i))
			ranks = append(ranks, chess.Rank1+chess.Rank(i))
		} else {
			files = append(files, chess.FileA+chess.File(i))
			ranks = append(ranks, chess.Rank8-chess.Rank(i))
		}
	}

	var sb strings.Builder
	if cfg.ShowCoordinates {
		sb.WriteString(" ")
		for _, f := range files {
			sb.WriteString("  " + strings.ToUpper(f.String()))
		}
		sb.WriteString(" \n")
	}
	for _, r := range ranks {
		if cfg.ShowCoordinates {
			sb.WriteString(r.String())
		}
		for _, f := range files {
			sb.WriteString("[" + cell(chess.NewSquare(f, r)) + "]")
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Status writes the side to move, check, remaining castling rights and the
// captured pieces, and the result once the game is over.
func Status(w io.Writer, g *engine.Game, set config.GlyphSet) error {
	var sb strings.Builder
	turn := g.Turn()

	if status := g.Status(); status.IsOver() {
		winner, _ := status.Winner()
		fmt.Fprintf(&sb, "Checkmate! %s is mated, %s wins.\n", status.Colour, winner)
	} else {
		fmt.Fprintf(&sb, "It is %s's turn.\n", turn)
		if g.Check() {
			fmt.Fprintf(&sb, "%s is in check!\n", turn)
		}
	}

	sides := g.Castling().Sides(turn)
	names := make([]string, 0, len(sides))
	for _, side := range sides {
		names = append(names, sideName(side))
	}
	if len(names) == 0 {
		names = append(names, "none")
	}
	fmt.Fprintf(&sb, "Remaining castles for %s: %s\n", turn, strings.Join(names, ", "))

	captured := g.Captured()
	glyphs := make([]string, 0, len(captured))
	for _, p := range captured {
		glyphs = append(glyphs, Glyph(p, set))
	}
	fmt.Fprintf(&sb, "Captured pieces: %s\n", strings.Join(glyphs, " "))

	_, err := io.WriteString(w, sb.String())
	return err
}

// Attempt describes a move about to be tried, for the prompt transcript.
func Attempt(board *chess.Board, turn chess.Colour, m chess.Move, set config.GlyphSet) string {
	if m.IsCastle() {
		return fmt.Sprintf("%s is castling %s", turn, sideName(m.Side))
	}
	return fmt.Sprintf("%s is trying to move %s from %s to %s", turn, Glyph(board.Get(m.From), set), m.From, m.To)
}

// Rejection explains a failed move in one line, led by the rejection kind.
func Rejection(err error) string {
	if kind := errors.Kind(err); kind != "" {
		return kind + ": " + err.Error()
	}
	return err.Error()
}

func sideName(side chess.CastlingSide) string {
	if side == chess.KingSide {
		return "king side"
	}
	return "queen side"
}
