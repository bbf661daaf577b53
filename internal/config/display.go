package config

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// GlyphSet selects how pieces are drawn.
type GlyphSet int

const (
	ASCIIGlyphs   GlyphSet = iota // PNBRQK / pnbrqk
	UnicodeGlyphs                 // chess symbols
)

// String returns the flag spelling of the glyph set.
func (g GlyphSet) String() string {
	if g == UnicodeGlyphs {
		return "unicode"
	}
	return "ascii"
}

// ParseGlyphSet parses "ascii" or "unicode".
func ParseGlyphSet(s string) (GlyphSet, error) {
	switch strings.ToLower(s) {
	case "ascii":
		return ASCIIGlyphs, nil
	case "unicode":
		return UnicodeGlyphs, nil
	}
	return ASCIIGlyphs, fmt.Errorf("unknown glyph set %q: %w", s, errors.ErrInvalidConfig)
}

// DisplayConfig holds settings for text rendering.
type DisplayConfig struct {
	// Glyphs selects ASCII letters or Unicode chess symbols
	Glyphs GlyphSet

	// ShowCoordinates prints file letters and rank numbers around the board
	ShowCoordinates bool

	// FlipForBlack draws the board from Black's side when Black is to move
	FlipForBlack bool
}

// NewDisplayConfig creates a DisplayConfig with default values.
func NewDisplayConfig() *DisplayConfig {
	return &DisplayConfig{
		Glyphs:          ASCIIGlyphs,
		ShowCoordinates: true,
	}
}

// Validate checks that the display configuration is valid.
func (d *DisplayConfig) Validate() error {
	if d.Glyphs != ASCIIGlyphs && d.Glyphs != UnicodeGlyphs {
		return fmt.Errorf("glyph set %d: %w", int(d.Glyphs), errors.ErrInvalidConfig)
	}
	return nil
}
