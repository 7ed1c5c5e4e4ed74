package match

import (
	"regexp"
	"strings"
)

// Confusion-class placeholders. They are uppercase so the remaining rules,
// which only look at lowercase letters, leave them alone within a single
// normalization pass. Because NormalizePhonetic lowercases its input first,
// feeding an already-normalized string back in can rewrite the placeholders
// again — normalization is NOT idempotent.
const (
	classRL = "R" // word-initial r / l
	classTH = "T" // th / t / d cluster
	classVB = "B" // word-initial v / b
)

// Rewrite rules, applied in fixed order. Consonant rules run strictly before
// vowel collapsing so the vowel markers cannot disturb word-initial positions.
var (
	reWordInitialRL = regexp.MustCompile(`\b[rl]`)
	reTH            = regexp.MustCompile(`th`)
	reWordInitialVB = regexp.MustCompile(`\b[vb]`)

	reVowelRuns = []struct {
		run *regexp.Regexp
		out string
	}{
		{regexp.MustCompile(`a+`), "a"},
		{regexp.MustCompile(`e+`), "e"},
		{regexp.MustCompile(`i+`), "i"},
		{regexp.MustCompile(`o+`), "o"},
		{regexp.MustCompile(`u+`), "u"},
	}
)

// NormalizePhonetic rewrites text into a canonical form that collapses
// commonly confused sound classes, so that mis-transcribed near-homophones
// compare as more similar under [Similarity].
//
// The rules are textual pattern rewrites over the lowercased input, not
// phoneme lookups — approximate by design:
//
//   - word-initial r and l map to one shared placeholder ("lemon" / "remon"),
//   - any "th" maps to a th/t/d placeholder,
//   - word-initial v and b map to one shared placeholder ("very" / "berry"),
//   - runs of the same vowel collapse to a single vowel ("aaa" == "a").
func NormalizePhonetic(text string) string {
	s := strings.ToLower(text)

	s = reWordInitialRL.ReplaceAllString(s, classRL)
	s = reTH.ReplaceAllString(s, classTH)
	s = reWordInitialVB.ReplaceAllString(s, classVB)

	for _, v := range reVowelRuns {
		s = v.run.ReplaceAllString(s, v.out)
	}
	return s
}
