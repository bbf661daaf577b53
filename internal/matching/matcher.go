// Package matching selects stored games by their status and by the
// material reached during play.
package matching

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/store"
)

// GameMatcher is the interface for all game matching implementations.
type GameMatcher interface {
	// Match returns true if the record matches the matcher's criteria.
	Match(rec *store.Record) bool

	// Name returns a descriptive name for this matcher.
	Name() string
}

// MatchMode specifies how multiple matchers are combined.
type MatchMode int

const (
	// MatchAll requires all matchers to match (AND logic).
	MatchAll MatchMode = iota

	// MatchAny requires at least one matcher to match (OR logic).
	MatchAny
)

// CompositeMatcher combines multiple GameMatchers with AND or OR logic.
type CompositeMatcher struct {
	matchers []GameMatcher
	mode     MatchMode
}

// NewCompositeMatcher creates a new CompositeMatcher with the given mode and matchers.
func NewCompositeMatcher(mode MatchMode, matchers ...GameMatcher) *CompositeMatcher {
	return &CompositeMatcher{
		matchers: matchers,
		mode:     mode,
	}
}

// Match implements GameMatcher.
func (c *CompositeMatcher) Match(rec *store.Record) bool {
	if len(c.matchers) == 0 {
		// AND over nothing holds, OR over nothing does not
		return c.mode == MatchAll
	}

	for _, m := range c.matchers {
		matched := m.Match(rec)
		if c.mode == MatchAll && !matched {
			return false
		}
		if c.mode == MatchAny && matched {
			return true
		}
	}
	return c.mode == MatchAll
}

// Name implements GameMatcher.
func (c *CompositeMatcher) Name() string {
	if len(c.matchers) == 0 {
		return "CompositeMatcher(empty)"
	}

	names := make([]string, len(c.matchers))
	for i, m := range c.matchers {
		names[i] = m.Name()
	}

	modeStr := "AND"
	if c.mode == MatchAny {
		modeStr = "OR"
	}
	return fmt.Sprintf("CompositeMatcher(%s: %s)", modeStr, strings.Join(names, ", "))
}

// Add adds a matcher to the composite.
func (c *CompositeMatcher) Add(m GameMatcher) {
	c.matchers = append(c.matchers, m)
}

// Len returns the number of matchers in the composite.
func (c *CompositeMatcher) Len() int {
	return len(c.matchers)
}

// StatusMatcher matches records whose status starts with a given text,
// ignoring case: "checkmate" selects every finished game, "checkmate(black)"
// the games Black lost.
type StatusMatcher struct {
	prefix string
}

// NewStatusMatcher creates a status matcher.
func NewStatusMatcher(prefix string) *StatusMatcher {
	return &StatusMatcher{prefix: strings.ToLower(prefix)}
}

// Match implements GameMatcher.
func (sm *StatusMatcher) Match(rec *store.Record) bool {
	return strings.HasPrefix(strings.ToLower(rec.Status), sm.prefix)
}

// Name implements GameMatcher.
func (sm *StatusMatcher) Name() string {
	return "StatusMatcher(" + sm.prefix + ")"
}
