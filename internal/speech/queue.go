// Package speech serializes speech output. A [Queue] owns a single worker
// goroutine that feeds utterances to a [tts.Speaker] one at a time, so
// confirmations and prompts never talk over each other. Urgent utterances
// (SpeechOptions.Interrupt) cancel whatever is playing or pending.
package speech

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ijwilabs/ijwi/pkg/provider/tts"
	"github.com/ijwilabs/ijwi/pkg/types"
)

// defaultPendingCap is the initial capacity hint for the pending slice.
const defaultPendingCap = 8

// Option configures a [Queue] during construction.
type Option func(*Queue)

// WithLogger sets the logger used for speak failures. Defaults to
// [slog.Default].
func WithLogger(log *slog.Logger) Option {
	return func(q *Queue) {
		q.log = log
	}
}

// WithDepthFunc registers a callback invoked with the queue depth (pending
// plus in-flight) after every change. Used to drive the queue-depth gauge.
func WithDepthFunc(fn func(depth int)) Option {
	return func(q *Queue) {
		q.depthFn = fn
	}
}

// utterance is a single queued speak request.
type utterance struct {
	text string
	opts types.SpeechOptions

	// spoken is closed when the utterance has been spoken, cancelled, or
	// dropped at shutdown.
	spoken chan struct{}
}

// Queue serializes utterances onto a [tts.Speaker].
//
// All exported methods are safe for concurrent use.
type Queue struct {
	speaker tts.Speaker
	log     *slog.Logger
	depthFn func(int)

	mu            sync.Mutex
	pending       []*utterance
	playing       *utterance
	cancelPlaying context.CancelFunc

	notify chan struct{} // signalled when work is enqueued
	done   chan struct{} // closed by Close to stop the worker
	closed bool
}

// New creates a [Queue] that delivers utterances to speaker. The worker
// goroutine starts immediately; call [Queue.Close] to stop it.
func New(speaker tts.Speaker, opts ...Option) *Queue {
	q := &Queue{
		speaker: speaker,
		log:     slog.Default(),
		pending: make([]*utterance, 0, defaultPendingCap),
		notify:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	for _, o := range opts {
		o(q)
	}
	go q.dispatch()
	return q
}

// Enqueue schedules text for speech output and returns a channel that is
// closed once the utterance has been spoken, cancelled, or dropped at
// shutdown. Callers that do not care about completion may ignore the channel.
//
// When opts.Interrupt is set, the current utterance is cut off and all
// pending utterances are cancelled before the new one is queued.
func (q *Queue) Enqueue(text string, opts types.SpeechOptions) <-chan struct{} {
	u := &utterance{text: text, opts: opts, spoken: make(chan struct{})}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		close(u.spoken)
		return u.spoken
	}
	if opts.Interrupt {
		q.cancelAllLocked()
	}
	q.pending = append(q.pending, u)
	depth := q.depthLocked()
	q.mu.Unlock()

	q.reportDepth(depth)

	// Wake the worker.
	select {
	case q.notify <- struct{}{}:
	default:
	}
	return u.spoken
}

// CancelAll cuts off the current utterance, drops all pending ones, and
// returns how many utterances were cancelled.
func (q *Queue) CancelAll() int {
	q.mu.Lock()
	n := q.cancelAllLocked()
	depth := q.depthLocked()
	q.mu.Unlock()

	q.reportDepth(depth)
	return n
}

// Len returns the number of utterances not yet fully spoken, including the
// one currently in flight.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.depthLocked()
}

// Close cancels all queued speech and stops the worker goroutine. Close is
// idempotent; subsequent calls are no-ops and return nil.
func (q *Queue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	q.cancelAllLocked()
	q.mu.Unlock()

	close(q.done)
	q.reportDepth(0)
	return nil
}

// cancelAllLocked drops every pending utterance and interrupts the one in
// flight. Must be called with q.mu held. Returns the number cancelled.
func (q *Queue) cancelAllLocked() int {
	n := len(q.pending)
	for _, u := range q.pending {
		close(u.spoken)
	}
	q.pending = q.pending[:0]

	if q.playing != nil {
		n++
		if q.cancelPlaying != nil {
			q.cancelPlaying()
			q.cancelPlaying = nil
		}
		close(q.playing.spoken)
		q.playing = nil
	}
	return n
}

func (q *Queue) depthLocked() int {
	depth := len(q.pending)
	if q.playing != nil {
		depth++
	}
	return depth
}

func (q *Queue) reportDepth(depth int) {
	if q.depthFn != nil {
		q.depthFn(depth)
	}
}

// dispatch is the worker goroutine. It pulls utterances in FIFO order and
// speaks them one at a time until [Close] is called.
func (q *Queue) dispatch() {
	for {
		select {
		case <-q.done:
			return
		case <-q.notify:
		}

		for {
			u, ctx, ok := q.dequeue()
			if !ok {
				break
			}

			if err := q.speaker.Speak(ctx, u.text, u.opts); err != nil && ctx.Err() == nil {
				q.log.Error("speech: speak failed", "text", u.text, "error", err)
			}
			q.finish(u)
		}
	}
}

// dequeue pops the next pending utterance and marks it as playing with a
// fresh cancellable context. Returns ok=false when nothing is pending.
func (q *Queue) dequeue() (*utterance, context.Context, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed || len(q.pending) == 0 {
		return nil, nil, false
	}

	u := q.pending[0]
	q.pending = q.pending[1:]

	ctx, cancel := context.WithCancel(context.Background())
	q.playing = u
	q.cancelPlaying = cancel
	return u, ctx, true
}

// finish clears the playing state for u unless it was already cancelled.
func (q *Queue) finish(u *utterance) {
	q.mu.Lock()
	if q.playing == u {
		q.playing = nil
		if q.cancelPlaying != nil {
			q.cancelPlaying()
			q.cancelPlaying = nil
		}
		close(u.spoken)
	}
	depth := q.depthLocked()
	q.mu.Unlock()

	q.reportDepth(depth)
}
