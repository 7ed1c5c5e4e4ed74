// Package console provides an stt.Provider that reads lines from an
// io.Reader and emits each one as a final transcript. It is the speech-input
// backend used in demo mode, where typed input stands in for recognised
// speech.
package console

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/ijwilabs/ijwi/pkg/provider/stt"
	"github.com/ijwilabs/ijwi/pkg/types"
)

// Compile-time interface assertions.
var (
	_ stt.Provider = (*Provider)(nil)
	_ stt.Session  = (*session)(nil)
)

// Provider turns lines read from an io.Reader into final transcripts.
type Provider struct {
	r io.Reader
}

// New returns a [Provider] reading from r, typically os.Stdin.
func New(r io.Reader) *Provider {
	return &Provider{r: r}
}

// Listen implements [stt.Provider]. The session's reader goroutine stops at
// EOF, on read error, when ctx is cancelled, or when the session is closed.
func (p *Provider) Listen(ctx context.Context, _ stt.StreamConfig) (stt.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := &session{
		out:   make(chan types.Transcript),
		done:  make(chan struct{}),
		start: time.Now(),
	}
	go s.read(ctx, p.r)
	return s, nil
}

type session struct {
	out   chan types.Transcript
	done  chan struct{}
	start time.Time

	closeOnce sync.Once
}

func (s *session) Transcripts() <-chan types.Transcript { return s.out }

func (s *session) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	return nil
}

func (s *session) read(ctx context.Context, r io.Reader) {
	defer close(s.out)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		t := types.Transcript{
			Text:       line,
			IsFinal:    true,
			Confidence: 1.0,
			Timestamp:  time.Since(s.start),
		}
		select {
		case s.out <- t:
		case <-ctx.Done():
			return
		case <-s.done:
			return
		}
	}
}
