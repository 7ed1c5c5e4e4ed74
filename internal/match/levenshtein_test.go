package match_test

import (
	"testing"

	"github.com/ijwilabs/ijwi/internal/match"
)

func TestDistance_KnownValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"scan", "skan", 1},
		{"navigate", "navigate", 0},
		{"go", "no", 1},
	}
	for _, tc := range cases {
		if got := match.Distance(tc.a, tc.b); got != tc.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestDistance_Symmetry(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"kitten", "sitting"},
		{"call lucy", "call"},
		{"", "emergency"},
		{"uwimana lucy", "lucy"},
	}
	for _, p := range pairs {
		ab := match.Distance(p[0], p[1])
		ba := match.Distance(p[1], p[0])
		if ab != ba {
			t.Errorf("Distance(%q, %q) = %d but Distance(%q, %q) = %d", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestSimilarity_Identity(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"navigate", "scan area", "x", "where am i"} {
		if got := match.Similarity(s, s); got != 1.0 {
			t.Errorf("Similarity(%q, %q) = %f, want 1.0", s, s, got)
		}
	}

	// Both empty is defined as 1.0, not a division by zero.
	if got := match.Similarity("", ""); got != 1.0 {
		t.Errorf("Similarity(\"\", \"\") = %f, want 1.0", got)
	}
}

func TestSimilarity_Bounds(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"a", "zzzzzzzz"},
		{"scan", "skan"},
		{"", "stop"},
		{"please go now", "navigate"},
		{"UWIMANA Lucy", "lucy"},
	}
	for _, p := range pairs {
		got := match.Similarity(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("Similarity(%q, %q) = %f, want value in [0, 1]", p[0], p[1], got)
		}
	}
}

func TestSimilarity_CaseInsensitive(t *testing.T) {
	t.Parallel()

	if got := match.Similarity("SCAN", "scan"); got != 1.0 {
		t.Errorf("Similarity(\"SCAN\", \"scan\") = %f, want 1.0", got)
	}
}

func TestSimilarity_KnownValues(t *testing.T) {
	t.Parallel()

	// distance("scan", "skan") = 1, max length 4.
	if got, want := match.Similarity("scan", "skan"), 0.75; got != want {
		t.Errorf("Similarity(scan, skan) = %f, want %f", got, want)
	}

	// distance("lucy", "uwimana lucy") = 8, max length 12.
	got := match.Similarity("lucy", "uwimana lucy")
	want := 1.0 - 8.0/12.0
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Similarity(lucy, uwimana lucy) = %f, want %f", got, want)
	}
}
