// Package errors provides sentinel errors and error types for the chess rules engine.
// It defines the move-rejection taxonomy and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Move rejection kinds. Exactly one of these is wrapped by every error
// returned from a failed move attempt.
var (
	// ErrOpponentPiece indicates the origin square holds a piece of the side not to move.
	ErrOpponentPiece = errors.New("piece belongs to the opponent")

	// ErrEmptySquare indicates the origin (or queried) square holds no piece.
	ErrEmptySquare = errors.New("square is empty")

	// ErrCollision indicates a friendly piece on the destination or a blocked path.
	ErrCollision = errors.New("path or destination is blocked")

	// ErrWrongPieceMovement indicates the destination is unreachable for the piece kind.
	ErrWrongPieceMovement = errors.New("piece cannot move that way")

	// ErrPawnDoubleMove indicates a two-square advance by a pawn that has already moved.
	ErrPawnDoubleMove = errors.New("pawn has already moved and cannot advance two squares")

	// ErrCastling indicates a missing castling right or a king that starts in,
	// passes through or lands on an attacked square.
	ErrCastling = errors.New("castling not allowed")

	// ErrSelfCheck indicates the move would leave the mover's own king in check.
	ErrSelfCheck = errors.New("move leaves own king in check")
)

// Sentinel errors for input and infrastructure failures.
var (
	// ErrInvalidSquare indicates a malformed square or out-of-range coordinate.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrInvalidMove indicates move text that could not be parsed.
	ErrInvalidMove = errors.New("invalid move notation")

	// ErrInvalidPosition indicates a malformed position string.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrGameOver indicates a move was offered after the game ended.
	ErrGameOver = errors.New("game is over")

	// ErrGameNotFound indicates an unknown game identifier.
	ErrGameNotFound = errors.New("game not found")
)

// Kind returns a short stable name for the rejection kind wrapped by err,
// or "" when err wraps none of them. Front ends use it for display and
// for machine-readable API responses.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrOpponentPiece):
		return "OpponentPiece"
	case errors.Is(err, ErrEmptySquare):
		return "EmptySquare"
	case errors.Is(err, ErrCollision):
		return "Collision"
	case errors.Is(err, ErrWrongPieceMovement):
		return "WrongPieceMovement"
	case errors.Is(err, ErrPawnDoubleMove):
		return "PawnDoubleMove"
	case errors.Is(err, ErrCastling):
		return "CastlingError"
	case errors.Is(err, ErrSelfCheck):
		return "SelfCheck"
	case errors.Is(err, ErrGameOver):
		return "GameOver"
	case errors.Is(err, ErrInvalidSquare), errors.Is(err, ErrInvalidMove):
		return "InvalidInput"
	}
	return ""
}

// MoveError wraps a rejection with the context of the attempted move:
// ply number, move text and the side that tried it. It implements the
// error interface and supports unwrapping via errors.Is() and errors.As().
type MoveError struct {
	Err    error  // The underlying rejection kind
	Ply    int    // 1-based ply the move would have been (0 if not applicable)
	Move   string // Move text, e.g. "e2e4" or "O-O"
	Colour string // Side that attempted the move (if known)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}
	if e.Colour != "" {
		parts = append(parts, e.Colour)
	}
	if e.Move != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.Move))
	}

	context := strings.Join(parts, ", ")

	if e.Err != nil {
		if context == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	if context == "" {
		return "move rejected"
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
