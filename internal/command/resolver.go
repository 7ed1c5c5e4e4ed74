package command

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/ijwilabs/ijwi/internal/match"
)

const (
	// DefaultThreshold is the minimum fuzzy similarity a candidate must
	// reach to be accepted. It balances false accepts against rejecting
	// genuine mispronunciations; callers may override per context.
	DefaultThreshold = 0.65

	// SuggestionThreshold is deliberately low so that every alias receives
	// a score when ranking "did you mean" prompts.
	SuggestionThreshold = 0.3

	// DefaultMaxSuggestions is the number of aliases Suggestions returns
	// when not configured otherwise.
	DefaultMaxSuggestions = 3

	// containmentConfidence is the fixed confidence reported for
	// substring/overlap matches; the overlap ratio itself is only a gate.
	containmentConfidence = 0.9

	// overlapRatioFloor is the word-overlap ratio a containment candidate
	// must strictly exceed.
	overlapRatioFloor = 0.5

	// maxFuzzyConfidence caps fuzzy-stage confidence so that 1.0 stays an
	// exact-match-only signal even when phonetic forms compare identical.
	maxFuzzyConfidence = 0.99
)

// Stage identifies which pipeline stage produced a match. Useful for
// logging and metrics attribution.
type Stage string

const (
	StageExact       Stage = "exact"
	StageContainment Stage = "containment"
	StagePhonetic    Stage = "phonetic"
	StageWord        Stage = "word"
)

// Result is a successful command resolution. Results are transient,
// produced per call, and never persisted.
type Result struct {
	// Command is the matched canonical identifier.
	Command string

	// Confidence is in [0, 1]. Exactly 1.0 only for exact matches.
	Confidence float64

	// MatchedPhrase is the alias text that produced the match, in its
	// original catalog casing.
	MatchedPhrase string

	// Stage records the pipeline stage that matched.
	Stage Stage
}

// Option is a functional option for configuring a [Resolver].
type Option func(*Resolver)

// WithThreshold sets the fuzzy-match acceptance threshold used by
// [Resolver.Match]. Default: 0.65.
func WithThreshold(threshold float64) Option {
	return func(r *Resolver) {
		r.threshold = threshold
	}
}

// WithMaxSuggestions sets how many aliases [Resolver.Suggestions] returns.
// Default: 3.
func WithMaxSuggestions(n int) Option {
	return func(r *Resolver) {
		r.maxSuggestions = n
	}
}

// Resolver maps transcripts to catalog commands through a staged pipeline.
// It holds only configuration, no per-call state, and is safe for
// concurrent use.
type Resolver struct {
	threshold      float64
	maxSuggestions int
}

// New returns a [Resolver] configured with the supplied options.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		threshold:      DefaultThreshold,
		maxSuggestions: DefaultMaxSuggestions,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Match resolves input against catalog and returns the matched command, or
// nil when nothing clears the configured threshold.
//
// The pipeline runs in strict order and short-circuits on first success:
//
//  1. Exact: normalized input equals a lower-cased alias. First hit in
//     catalog order wins with confidence 1.0.
//  2. Containment: input contains the alias or vice versa AND the
//     word-overlap ratio |words(input) ∩ words(alias)| / max word count
//     exceeds 0.5. First hit wins with fixed confidence 0.9.
//  3. Phonetic fuzzy: [match.MatchPhonetic] over every (command, alias)
//     pair; the single best score across ALL pairs wins.
//  4. Per-word fuzzy: every input word against every alias word via
//     [match.ContainsFuzzy]. Shares the stage-3 best-so-far tracker and
//     overrides it only with a strictly higher score.
//
// Stages 1–2 are cheap, high-precision checks that handle the common case;
// the expensive fuzzy scoring is reserved for noisy input. The first-hit
// policy of stages 1–2 versus the best-of policy of stages 3–4 is a
// documented compatibility decision, not an accident.
func (r *Resolver) Match(input string, catalog Catalog) *Result {
	return r.match(input, catalog, r.threshold)
}

func (r *Resolver) match(input string, catalog Catalog, threshold float64) *Result {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return nil
	}

	// Stage 1: exact alias equality.
	for _, def := range catalog.Commands {
		for _, alias := range def.Aliases {
			if normalized == strings.ToLower(alias) {
				return &Result{
					Command:       def.Command,
					Confidence:    1.0,
					MatchedPhrase: alias,
					Stage:         StageExact,
				}
			}
		}
	}

	inputWords := strings.Fields(normalized)

	// Stage 2: substring containment in either direction, gated on word
	// overlap so that a short shared word ("go" inside "please go now")
	// does not qualify on its own.
	for _, def := range catalog.Commands {
		for _, alias := range def.Aliases {
			aliasLower := strings.ToLower(alias)
			if !strings.Contains(normalized, aliasLower) && !strings.Contains(aliasLower, normalized) {
				continue
			}
			if overlapRatio(inputWords, strings.Fields(aliasLower)) > overlapRatioFloor {
				return &Result{
					Command:       def.Command,
					Confidence:    containmentConfidence,
					MatchedPhrase: alias,
					Stage:         StageContainment,
				}
			}
		}
	}

	// Stages 3 and 4 share one best-so-far tracker: the per-word fallback
	// only overrides a phonetic match with a strictly higher score.
	var best *Result
	bestScore := 0.0

	// Stage 3: phonetic fuzzy, true best-of across all pairs.
	for _, def := range catalog.Commands {
		for _, alias := range def.Aliases {
			pr := match.MatchPhonetic(normalized, strings.ToLower(alias), threshold)
			if pr.Match && pr.Score > bestScore {
				best = &Result{
					Command:       def.Command,
					MatchedPhrase: alias,
					Stage:         StagePhonetic,
				}
				bestScore = pr.Score
			}
		}
	}

	// Stage 4: per-word fuzzy fallback.
	for _, def := range catalog.Commands {
		for _, alias := range def.Aliases {
			aliasWords := strings.Fields(strings.ToLower(alias))
			for _, word := range inputWords {
				hit := match.ContainsFuzzy(word, aliasWords, threshold)
				if hit.Found && hit.Score > bestScore {
					best = &Result{
						Command:       def.Command,
						MatchedPhrase: alias,
						Stage:         StageWord,
					}
					bestScore = hit.Score
				}
			}
		}
	}

	if best == nil {
		return nil
	}
	best.Confidence = min(bestScore, maxFuzzyConfidence)

	slog.Debug("command: fuzzy resolution",
		"catalog", catalog.Name,
		"input", normalized,
		"command", best.Command,
		"stage", best.Stage,
		"confidence", best.Confidence,
	)
	return best
}

// Suggestions ranks every alias in catalog against input using the low
// suggestion threshold and returns the top alias strings for "did you
// mean …" prompts. The sort is stable, so equal scores keep catalog scan
// order.
func (r *Resolver) Suggestions(input string, catalog Catalog) []string {
	if r.maxSuggestions <= 0 {
		return nil
	}
	normalized := strings.ToLower(strings.TrimSpace(input))

	type scored struct {
		alias string
		score float64
	}
	var all []scored
	for _, def := range catalog.Commands {
		for _, alias := range def.Aliases {
			pr := match.MatchPhonetic(normalized, strings.ToLower(alias), SuggestionThreshold)
			all = append(all, scored{alias: alias, score: pr.Score})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].score > all[j].score
	})

	n := min(r.maxSuggestions, len(all))
	suggestions := make([]string, 0, n)
	for _, s := range all[:n] {
		suggestions = append(suggestions, s.alias)
	}
	return suggestions
}

// overlapRatio computes |set(a) ∩ set(b)| / max(len(a), len(b)) over word
// slices. Duplicate words count once in the intersection.
func overlapRatio(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inB := make(map[string]struct{}, len(b))
	for _, w := range b {
		inB[w] = struct{}{}
	}
	counted := make(map[string]struct{}, len(a))
	common := 0
	for _, w := range a {
		if _, ok := inB[w]; !ok {
			continue
		}
		if _, dup := counted[w]; dup {
			continue
		}
		counted[w] = struct{}{}
		common++
	}
	return float64(common) / float64(max(len(a), len(b)))
}
