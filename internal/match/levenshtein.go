package match

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// Distance returns the classic single-character edit distance between a and b:
// insertions, deletions, and substitutions each cost 1. The value is symmetric
// in its arguments and deterministic.
func Distance(a, b string) int {
	return matchr.Levenshtein(a, b)
}

// Similarity returns a normalized similarity score in [0, 1] between a and b,
// defined as 1 - Distance(lower(a), lower(b)) / max(len(a), len(b)).
//
// Two empty strings are defined to have similarity 1.0. This is a normalized
// score, not a metric distance.
func Similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	longest := max(len(a), len(b))
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(Distance(a, b))/float64(longest)
}
