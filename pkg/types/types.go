// Package types defines the shared types used across all Ijwi packages.
//
// Each package defines its own domain types; cross-cutting data structures
// live here to avoid circular imports.
package types

import "time"

// Transcript represents a speech-to-text result from an STT provider.
// Both partial (interim) and final transcripts use this type.
type Transcript struct {
	// Text is the transcribed speech content.
	Text string

	// IsFinal indicates whether this is a final (authoritative) or partial
	// (interim) transcript. Only finals are fed to command resolution.
	IsFinal bool

	// Confidence is the provider's overall confidence score (0.0–1.0).
	// May be zero if the provider does not report confidence.
	Confidence float64

	// Timestamp marks when the utterance started, relative to session start.
	Timestamp time.Duration
}

// SpeechOptions configures a single speech-output request.
type SpeechOptions struct {
	// Rate adjusts speaking speed in the range [0.5, 2.0]. 0 means the
	// provider default.
	Rate float64

	// Language is the BCP-47 language tag for synthesis (e.g., "en-US",
	// "rw-RW"). An empty string uses the provider default.
	Language string

	// Interrupt requests that any queued speech be cancelled before this
	// utterance is spoken. Used for high-priority announcements.
	Interrupt bool
}
