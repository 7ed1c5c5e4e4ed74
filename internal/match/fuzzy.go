// Package match provides the fuzzy string-matching primitives underneath the
// Ijwi command resolver: normalized edit-distance similarity, confusion-class
// phonetic normalization, and the best-match / contains-fuzzy / phonetic-
// fallback combinators built on top of them.
//
// All functions are pure, total over their input domain (empty strings and
// empty option lists yield zero-value results, never errors), and safe for
// concurrent use.
package match

import (
	"sort"
	"strings"
)

// ScoredOption pairs a candidate option with its similarity score.
type ScoredOption struct {
	Option string
	Score  float64
}

// BestMatch is the result of [FindBestMatch].
type BestMatch struct {
	// Match is the best-scoring option, or "" when no option clears the
	// threshold.
	Match string

	// Score is the similarity of Match; 0 when Match is "".
	Score float64

	// AllMatches holds every option scoring at or above the threshold,
	// sorted by descending score. Equal scores keep input order, so the
	// earlier option wins ties. Used for suggestion generation.
	AllMatches []ScoredOption
}

// FindBestMatch scores input against every option with [Similarity] and
// returns the top candidate when its score clears threshold.
func FindBestMatch(input string, options []string, threshold float64) BestMatch {
	scored := make([]ScoredOption, 0, len(options))
	for _, opt := range options {
		if s := Similarity(input, opt); s >= threshold {
			scored = append(scored, ScoredOption{Option: opt, Score: s})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	result := BestMatch{AllMatches: scored}
	if len(scored) > 0 {
		result.Match = scored[0].Option
		result.Score = scored[0].Score
	}
	return result
}

// WordHit is the result of [ContainsFuzzy].
type WordHit struct {
	// Found reports whether any (word, target) pair cleared the threshold.
	Found bool

	// Word is the input word that produced the hit.
	Word string

	// Score is the similarity of the hit pair; 0 when Found is false.
	Score float64
}

// ContainsFuzzy splits input on whitespace and tests each word (outer loop)
// against each target (inner loop), returning the FIRST pair whose similarity
// clears threshold — not the globally best pair.
//
// The early exit on the first qualifying hit is a deliberate policy: it
// favors earlier words in the utterance, and downstream suggestion behavior
// depends on it. Callers that need best-of semantics should use
// [FindBestMatch] per word instead.
func ContainsFuzzy(input string, targets []string, threshold float64) WordHit {
	for _, word := range strings.Fields(input) {
		for _, target := range targets {
			if s := Similarity(word, target); s >= threshold {
				return WordHit{Found: true, Word: word, Score: s}
			}
		}
	}
	return WordHit{}
}

// PhoneticResult is the result of [MatchPhonetic].
type PhoneticResult struct {
	// Match reports whether the direct or the phonetic comparison cleared
	// the threshold.
	Match bool

	// Score is the larger of the direct and phonetic similarity scores.
	// Always >= Similarity(input, target).
	Score float64
}

// MatchPhonetic compares input and target directly first; only when the
// direct similarity misses the threshold does it fall back to comparing the
// [NormalizePhonetic] forms. Direct similarity is always preferred when it
// already clears the bar.
func MatchPhonetic(input, target string, threshold float64) PhoneticResult {
	direct := Similarity(input, target)
	if direct >= threshold {
		return PhoneticResult{Match: true, Score: direct}
	}

	phonetic := Similarity(NormalizePhonetic(input), NormalizePhonetic(target))
	return PhoneticResult{
		Match: phonetic >= threshold,
		Score: max(direct, phonetic),
	}
}
