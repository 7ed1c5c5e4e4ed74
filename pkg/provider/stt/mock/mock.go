// Package mock provides test doubles for the stt.Provider and stt.Session
// interfaces.
//
// Use Provider to feed scripted transcripts to consumers:
//
//	p := mock.NewProvider(
//	    types.Transcript{Text: "scan", IsFinal: true, Confidence: 0.9},
//	)
//	sess, _ := p.Listen(ctx, stt.StreamConfig{})
//	for t := range sess.Transcripts() { ... }
package mock

import (
	"context"
	"sync"

	"github.com/ijwilabs/ijwi/pkg/provider/stt"
	"github.com/ijwilabs/ijwi/pkg/types"
)

// Compile-time interface assertions.
var (
	_ stt.Provider = (*Provider)(nil)
	_ stt.Session  = (*Session)(nil)
)

// Provider is a mock implementation of stt.Provider. Every Listen call
// returns a fresh Session that replays the configured transcripts and then
// closes its channel.
type Provider struct {
	mu sync.Mutex

	// Transcripts is the scripted sequence emitted by each session.
	transcripts []types.Transcript

	// ListenErr, if non-nil, is returned from Listen.
	ListenErr error

	// ListenCalls counts Listen invocations.
	ListenCalls int
}

// NewProvider returns a [Provider] whose sessions replay the given
// transcripts in order.
func NewProvider(transcripts ...types.Transcript) *Provider {
	return &Provider{transcripts: transcripts}
}

// Listen implements [stt.Provider].
func (p *Provider) Listen(ctx context.Context, _ stt.StreamConfig) (stt.Session, error) {
	p.mu.Lock()
	p.ListenCalls++
	err := p.ListenErr
	script := p.transcripts
	p.mu.Unlock()

	if err != nil {
		return nil, err
	}

	s := &Session{
		out:  make(chan types.Transcript),
		done: make(chan struct{}),
	}
	go s.replay(ctx, script)
	return s, nil
}

// Session is a mock implementation of stt.Session.
type Session struct {
	out  chan types.Transcript
	done chan struct{}

	closeOnce sync.Once
}

// Transcripts implements [stt.Session].
func (s *Session) Transcripts() <-chan types.Transcript { return s.out }

// Close implements [stt.Session].
func (s *Session) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	return nil
}

func (s *Session) replay(ctx context.Context, script []types.Transcript) {
	defer close(s.out)

	for _, t := range script {
		select {
		case s.out <- t:
		case <-ctx.Done():
			return
		case <-s.done:
			return
		}
	}
}
