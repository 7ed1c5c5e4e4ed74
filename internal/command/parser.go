package command

import "strings"

// Parsed is the output of [Resolver.ParseComplex]: the resolved action plus
// any free-text parameter left over after the matched alias words are
// removed from the utterance.
type Parsed struct {
	// Action is the canonical command id, or "" when nothing matched.
	Action string

	// Parameter is the remaining free text ("lucy" in "call lucy"), or ""
	// when the utterance carried no parameter.
	Parameter string

	// Confidence is the confidence of the underlying command match; 0 when
	// Action is "".
	Confidence float64
}

// ParseComplex splits an utterance into an action portion and a free-text
// parameter portion (e.g., "call" + "lucy").
//
// The input is first resolved against catalog at the fixed
// [DefaultThreshold] — deliberately not the resolver's configured
// threshold, so parsing behaves identically across contexts. When the
// utterance is a single word, the whole input is the action. Otherwise the
// words of the matched alias are removed from the input word list — a
// multiset difference, each alias occurrence removes at most one input
// word — and the remainder joined with single spaces becomes the parameter.
func (r *Resolver) ParseComplex(input string, catalog Catalog) Parsed {
	res := r.match(input, catalog, DefaultThreshold)
	if res == nil {
		return Parsed{}
	}

	words := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(words) <= 1 {
		return Parsed{Action: res.Command, Confidence: res.Confidence}
	}

	aliasCounts := make(map[string]int)
	for _, w := range strings.Fields(strings.ToLower(res.MatchedPhrase)) {
		aliasCounts[w]++
	}

	remainder := make([]string, 0, len(words))
	for _, w := range words {
		if aliasCounts[w] > 0 {
			aliasCounts[w]--
			continue
		}
		remainder = append(remainder, w)
	}

	return Parsed{
		Action:     res.Command,
		Parameter:  strings.Join(remainder, " "),
		Confidence: res.Confidence,
	}
}
