package contact

import (
	"regexp"
	"strings"

	"github.com/ijwilabs/ijwi/internal/match"
)

// DefaultNameThreshold is the minimum similarity a candidate name must
// reach. Lower than the command threshold because names are short and STT
// mangles them more.
const DefaultNameThreshold = 0.6

// callVerbPrefix strips one leading call verb plus the following whitespace
// from an utterance ("call lucy" → "lucy").
var callVerbPrefix = regexp.MustCompile(`(?i)^(call|phone|ring|dial)\s+`)

// NameMatch is the result of [MatchName] and [MatchContact].
type NameMatch struct {
	// Name is the matched candidate string, or "" when nothing cleared the
	// threshold.
	Name string

	// Confidence is the similarity of the match; 0 when Name is "".
	Confidence float64
}

// MatchName resolves a spoken utterance to the best-matching entry of names.
//
// The input is lower-cased, trimmed, and stripped of one leading call verb,
// then scored against each candidate with [match.FindBestMatch].
//
// Candidates are compared as whole strings, not token by token: "lucy"
// against "UWIMANA Lucy" scores on the full name and usually misses the
// threshold. That is the documented behavior — callers who want short names
// reachable should register them as extra candidates (see
// [Contact.SpokenForms]) rather than expect token-aware matching here.
func MatchName(input string, names []string, threshold float64) NameMatch {
	stripped := callVerbPrefix.ReplaceAllString(strings.ToLower(strings.TrimSpace(input)), "")

	best := match.FindBestMatch(stripped, names, threshold)
	if best.Match == "" {
		return NameMatch{}
	}
	return NameMatch{Name: best.Match, Confidence: best.Score}
}

// MatchContact resolves a spoken utterance against a contact list. Every
// contact contributes its display name plus all spoken forms as candidates;
// the returned contact is the owner of the best-matching candidate.
//
// Returns (nil, zero NameMatch) when nothing clears the threshold.
func MatchContact(input string, contacts []Contact, threshold float64) (*Contact, NameMatch) {
	candidates := make([]string, 0, len(contacts)*2)
	owner := make(map[string]*Contact, len(contacts)*2)

	for i := range contacts {
		c := &contacts[i]
		for _, cand := range append([]string{c.Name}, c.SpokenForms...) {
			if cand == "" {
				continue
			}
			candidates = append(candidates, cand)
			if _, taken := owner[strings.ToLower(cand)]; !taken {
				owner[strings.ToLower(cand)] = c
			}
		}
	}

	m := MatchName(input, candidates, threshold)
	if m.Name == "" {
		return nil, NameMatch{}
	}
	return owner[strings.ToLower(m.Name)], m
}
