package matching

import (
	"testing"

	chesserrors "github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/store"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

var (
	foolRecord    = &store.Record{ID: "fool", Moves: testutil.FoolsMate, Status: "Checkmate(White)"}
	scholarRecord = &store.Record{ID: "scholar", Moves: testutil.ScholarsMate, Status: "Checkmate(Black)"}
	openRecord    = &store.Record{ID: "open", Moves: []string{"e2e4"}, Status: "Ongoing"}
)

func mustMaterial(t *testing.T, pattern string, exact bool) *MaterialMatcher {
	t.Helper()
	mm, err := NewMaterialMatcher(pattern, exact)
	if err != nil {
		t.Fatalf("NewMaterialMatcher(%q) error: %v", pattern, err)
	}
	return mm
}

func TestMaterialMatcher(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		exact   bool
		rec     *store.Record
		want    bool
	}{
		{"queens present at start", "Q:q", false, openRecord, true},
		{"two white queens never", "QQ", false, scholarRecord, false},
		{"black lost a pawn", "KQRRBBNNPPPPPPPP:kqrrbbnnppppppp", true, scholarRecord, true},
		{"no capture in fool's mate", "KQRRBBNNPPPPPPPP:kqrrbbnnppppppp", true, foolRecord, false},
		{"exact full set at start", "KQRRBBNNPPPPPPPP:kqrrbbnnpppppppp", true, foolRecord, true},
		{"empty pattern matches anything", "", false, openRecord, true},
		{
			"from a position",
			"KR:k", true,
			&store.Record{ID: "ending", Start: "4k3/8/8/8/8/8/8/R3K3 w Q", Moves: []string{"a1a7"}},
			true,
		},
		{
			"broken record stops",
			"KQRRBBNNPPPPPPPP:kqrrbbnnppppppp", true,
			&store.Record{ID: "bad", Moves: []string{"e2e4", "e2e4", "d1h5"}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustMaterial(t, tt.pattern, tt.exact).Match(tt.rec)
			testutil.AssertEqual(t, got, tt.want)
		})
	}
}

func TestNewMaterialMatcher_Invalid(t *testing.T) {
	for _, pattern := range []string{"QX:q", "q:q", "Q:Q"} {
		_, err := NewMaterialMatcher(pattern, false)
		testutil.AssertErrorIs(t, err, chesserrors.ErrInvalidConfig)
	}
}

func TestStatusMatcher(t *testing.T) {
	finished := NewStatusMatcher("checkmate")
	testutil.AssertTrue(t, finished.Match(foolRecord), "fool's mate is finished")
	testutil.AssertTrue(t, finished.Match(scholarRecord), "scholar's mate is finished")
	testutil.AssertFalse(t, finished.Match(openRecord), "open game is not finished")

	blackLost := NewStatusMatcher("Checkmate(Black)")
	testutil.AssertTrue(t, blackLost.Match(scholarRecord), "black is mated in scholar's mate")
	testutil.AssertFalse(t, blackLost.Match(foolRecord), "white is mated in fool's mate")
}

func TestCompositeMatcher(t *testing.T) {
	finished := NewStatusMatcher("checkmate")
	capture := mustMaterial(t, "KQRRBBNNPPPPPPPP:kqrrbbnnppppppp", true)

	all := NewCompositeMatcher(MatchAll, finished, capture)
	testutil.AssertTrue(t, all.Match(scholarRecord), "scholar's mate is finished with a capture")
	testutil.AssertFalse(t, all.Match(foolRecord), "fool's mate has no capture")

	anyOf := NewCompositeMatcher(MatchAny, finished, capture)
	testutil.AssertTrue(t, anyOf.Match(foolRecord), "fool's mate is finished")
	testutil.AssertFalse(t, anyOf.Match(openRecord), "open game matches neither")

	testutil.AssertTrue(t, NewCompositeMatcher(MatchAll).Match(openRecord), "empty AND matches")
	testutil.AssertFalse(t, NewCompositeMatcher(MatchAny).Match(openRecord), "empty OR matches nothing")

	c := NewCompositeMatcher(MatchAny)
	c.Add(finished)
	testutil.AssertEqual(t, c.Len(), 1)
	testutil.AssertEqual(t, c.Name(), "CompositeMatcher(OR: StatusMatcher(checkmate))")
}
