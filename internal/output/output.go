// Package output writes games as text transcripts or JSON.
package output

import (
	"fmt"
	"io"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// OutputMoves writes a numbered move list ("1. e2e4 e7e5 2. g1f3"). When
// Black made the first move the list opens with "1...".
func OutputMoves(ow *OutputWriter, moves []chess.Move, first chess.Colour) {
	number := 1
	colour := first
	for i, m := range moves {
		switch {
		case colour == chess.White:
			ow.Write(fmt.Sprintf("%d.", number))
		case i == 0:
			ow.Write(fmt.Sprintf("%d...", number))
		}
		ow.Write(m.String())
		if colour == chess.Black {
			number++
		}
		colour = colour.Opposite()
	}
	if len(moves) > 0 {
		ow.NewLine()
	}
}
