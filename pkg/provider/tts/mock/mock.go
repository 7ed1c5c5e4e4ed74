// Package mock provides a test double for the tts.Speaker interface.
//
// Use Speaker to capture spoken utterances and to inject errors or blocking
// behaviour into speech-output tests.
//
// Example:
//
//	sp := &mock.Speaker{}
//	queue := speech.New(sp)
//	...
//	if got := sp.Spoken(); got[0].Text != "navigating" { ... }
package mock

import (
	"context"
	"sync"

	"github.com/ijwilabs/ijwi/pkg/provider/tts"
	"github.com/ijwilabs/ijwi/pkg/types"
)

// Compile-time interface assertion.
var _ tts.Speaker = (*Speaker)(nil)

// Utterance records a single invocation of Speak.
type Utterance struct {
	// Text is the text passed to Speak.
	Text string
	// Opts is the SpeechOptions passed to Speak.
	Opts types.SpeechOptions
}

// Speaker is a mock implementation of tts.Speaker.
type Speaker struct {
	mu sync.Mutex

	// SpeakErr, if non-nil, is returned from every Speak call after the
	// utterance has been recorded.
	SpeakErr error

	// Block, if non-nil, is received from inside Speak after recording the
	// utterance, letting tests hold a speak in flight. Close the channel to
	// release all blocked calls.
	Block chan struct{}

	utterances []Utterance
}

// Speak implements [tts.Speaker]. The utterance is recorded before any
// configured blocking or error injection takes effect.
func (s *Speaker) Speak(ctx context.Context, text string, opts types.SpeechOptions) error {
	s.mu.Lock()
	s.utterances = append(s.utterances, Utterance{Text: text, Opts: opts})
	block := s.Block
	err := s.SpeakErr
	s.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err != nil {
		return err
	}
	return ctx.Err()
}

// Spoken returns a copy of all recorded utterances in call order.
func (s *Speaker) Spoken() []Utterance {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Utterance, len(s.utterances))
	copy(out, s.utterances)
	return out
}
