// Package tts defines the Speaker interface for speech-output backends.
//
// A speaker wraps whatever produces audible speech on the device (a platform
// TTS engine, a cloud synthesis API, or a console printer in demo mode) and
// presents a single blocking call: Speak returns once the utterance has been
// delivered. Queueing and interruption policy live above this interface, in
// internal/speech.
//
// Implementations must be safe for concurrent use.
package tts

import (
	"context"

	"github.com/ijwilabs/ijwi/pkg/types"
)

// Speaker is the abstraction over any speech-output backend.
type Speaker interface {
	// Speak renders text as speech and blocks until the utterance has been
	// fully delivered or ctx is cancelled. opts carries rate and language
	// hints; implementations ignore fields they do not support.
	//
	// Returns ctx.Err() on cancellation, or a backend error if synthesis
	// fails. Implementations must not retain text or opts after returning.
	Speak(ctx context.Context, text string, opts types.SpeechOptions) error
}
