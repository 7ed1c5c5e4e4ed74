// Package config provides the configuration schema and loader for the ijwi
// voice-command engine.
package config

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration structure. It is typically loaded from a
// YAML file using [Load] or [LoadFromReader].
type Config struct {
	// LogLevel controls verbosity. Default: info.
	LogLevel LogLevel `yaml:"log_level"`

	// MetricsAddr is the TCP address of the Prometheus /metrics listener
	// (e.g., ":9090"). Empty disables the listener.
	MetricsAddr string `yaml:"metrics_addr"`

	Matching MatchingConfig `yaml:"matching"`
	Catalogs CatalogsConfig `yaml:"catalogs"`
	Contacts ContactsConfig `yaml:"contacts"`
	Speech   SpeechConfig   `yaml:"speech"`
}

// MatchingConfig tunes the fuzzy matchers.
type MatchingConfig struct {
	// Threshold is the minimum similarity for command resolution.
	// Default: 0.65.
	Threshold float64 `yaml:"threshold"`

	// ContactThreshold is the minimum similarity for contact-name
	// resolution. Default: 0.6.
	ContactThreshold float64 `yaml:"contact_threshold"`

	// MaxSuggestions caps the "did you mean" list. Default: 3.
	MaxSuggestions int `yaml:"max_suggestions"`
}

// CatalogsConfig locates optional catalog overrides.
type CatalogsConfig struct {
	// Path is a YAML file of command catalogs merged over the built-in
	// ones. Empty means built-ins only.
	Path string `yaml:"path"`
}

// ContactsConfig selects the contact directory backend.
type ContactsConfig struct {
	// Path is a YAML contact file imported at startup. Empty means no
	// import.
	Path string `yaml:"path"`

	// PostgresDSN selects the PostgreSQL-backed store when set; otherwise
	// the in-memory store is used.
	PostgresDSN string `yaml:"postgres_dsn"`
}

// SpeechConfig tunes speech output.
type SpeechConfig struct {
	// Rate is the speech rate multiplier passed to the speaker. Zero means
	// provider default.
	Rate float64 `yaml:"rate"`

	// Language is the BCP-47 tag for speech output (e.g., "rw-RW").
	Language string `yaml:"language"`
}
