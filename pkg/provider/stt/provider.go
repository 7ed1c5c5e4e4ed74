// Package stt defines the Provider interface for speech-input backends.
//
// An STT provider wraps whatever turns the user's voice into text (a platform
// recogniser, a cloud streaming API, or a console reader in demo mode) and
// exposes a uniform session abstraction: once opened, a [Session] emits
// [types.Transcript] values on a channel until it is closed. Interim partials
// and committed finals travel on the same channel, distinguished by
// Transcript.IsFinal.
//
// Implementations must be safe for concurrent use.
package stt

import (
	"context"

	"github.com/ijwilabs/ijwi/pkg/types"
)

// StreamConfig describes the recognition hints for a new STT session.
type StreamConfig struct {
	// Language is the BCP-47 language tag for recognition (e.g., "en-US",
	// "rw-RW"). An empty string lets the provider auto-detect the language,
	// if supported.
	Language string

	// Keywords is a list of vocabulary hints that increase recognition
	// probability for uncommon words such as contact names. Providers that
	// do not support keyword boosting ignore it.
	Keywords []string
}

// Session represents an open recognition session. It is an interface so that
// test code can provide mock implementations without a live provider
// connection.
//
// Callers must call Close when the session is no longer needed; failing to do
// so may leak goroutines inside the provider implementation.
type Session interface {
	// Transcripts returns a read-only channel that emits recognition
	// results. Values with IsFinal=false are low-latency interim guesses;
	// values with IsFinal=true are authoritative and should be fed to the
	// command resolver. The channel is closed when the session ends.
	Transcripts() <-chan types.Transcript

	// Close terminates the session and releases all associated resources.
	// After Close returns, the Transcripts channel will be closed. Calling
	// Close more than once is safe and returns nil.
	Close() error
}

// Provider is the abstraction over any STT backend.
type Provider interface {
	// Listen opens a new recognition session. The returned Session emits
	// transcripts immediately. Returns an error if the session cannot be
	// established or ctx is already cancelled. The caller owns the Session
	// and must call Close when done.
	Listen(ctx context.Context, cfg StreamConfig) (Session, error)
}
