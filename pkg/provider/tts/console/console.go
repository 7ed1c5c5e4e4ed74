// Package console provides a tts.Speaker that writes utterances to an
// io.Writer instead of synthesising audio. It is the speech backend used in
// demo mode and on headless systems.
package console

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/ijwilabs/ijwi/pkg/provider/tts"
	"github.com/ijwilabs/ijwi/pkg/types"
)

// Compile-time interface assertion.
var _ tts.Speaker = (*Speaker)(nil)

// Speaker writes each utterance as a single line to its writer.
type Speaker struct {
	mu sync.Mutex
	w  io.Writer
}

// New returns a [Speaker] that writes to w.
func New(w io.Writer) *Speaker {
	return &Speaker{w: w}
}

// Speak implements [tts.Speaker]. The language tag is included when set so
// demo transcripts show which locale an utterance was rendered in.
func (s *Speaker) Speak(ctx context.Context, text string, opts types.SpeechOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if opts.Language != "" {
		_, err = fmt.Fprintf(s.w, "[speak %s] %s\n", opts.Language, text)
	} else {
		_, err = fmt.Fprintf(s.w, "[speak] %s\n", text)
	}
	if err != nil {
		return fmt.Errorf("console: write utterance: %w", err)
	}
	return nil
}
