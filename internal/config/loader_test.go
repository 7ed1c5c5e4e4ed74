package config_test

import (
	"strings"
	"testing"

	"github.com/ijwilabs/ijwi/internal/config"
)

func TestLoadFromReader_FullConfig(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFromReader(strings.NewReader(`
log_level: debug
metrics_addr: ":9090"
matching:
  threshold: 0.7
  contact_threshold: 0.5
  max_suggestions: 5
catalogs:
  path: /etc/ijwi/catalogs.yaml
contacts:
  path: /etc/ijwi/contacts.yaml
  postgres_dsn: postgres://localhost/ijwi
speech:
  rate: 1.1
  language: rw-RW
`))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}

	if cfg.LogLevel != config.LogDebug {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("MetricsAddr = %q", cfg.MetricsAddr)
	}
	if cfg.Matching.Threshold != 0.7 || cfg.Matching.ContactThreshold != 0.5 || cfg.Matching.MaxSuggestions != 5 {
		t.Errorf("Matching = %+v", cfg.Matching)
	}
	if cfg.Contacts.PostgresDSN != "postgres://localhost/ijwi" {
		t.Errorf("PostgresDSN = %q", cfg.Contacts.PostgresDSN)
	}
	if cfg.Speech.Language != "rw-RW" {
		t.Errorf("Speech.Language = %q", cfg.Speech.Language)
	}
}

func TestLoadFromReader_AppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.LogLevel != config.LogInfo {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.Matching.Threshold != config.DefaultThreshold {
		t.Errorf("Threshold = %v, want %v", cfg.Matching.Threshold, config.DefaultThreshold)
	}
	if cfg.Matching.ContactThreshold != config.DefaultContactThreshold {
		t.Errorf("ContactThreshold = %v, want %v", cfg.Matching.ContactThreshold, config.DefaultContactThreshold)
	}
	if cfg.Matching.MaxSuggestions != config.DefaultMaxSuggestions {
		t.Errorf("MaxSuggestions = %d, want %d", cfg.Matching.MaxSuggestions, config.DefaultMaxSuggestions)
	}
}

func TestLoadFromReader_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	_, err := config.LoadFromReader(strings.NewReader("log_lvl: debug\n"))
	if err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
}

func TestLoadFromReader_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad log level", "log_level: verbose\n", "log_level"},
		{"threshold too high", "matching:\n  threshold: 1.5\n", "matching.threshold"},
		{"negative contact threshold", "matching:\n  contact_threshold: -0.1\n", "matching.contact_threshold"},
		{"negative suggestions", "matching:\n  max_suggestions: -1\n", "matching.max_suggestions"},
		{"negative rate", "speech:\n  rate: -1\n", "speech.rate"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := config.LoadFromReader(strings.NewReader(tt.yaml))
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.want)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	if err := config.Validate(cfg); err != nil {
		t.Errorf("Default() is not valid: %v", err)
	}
}
