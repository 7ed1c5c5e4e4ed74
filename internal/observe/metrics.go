// Package observe provides application-wide observability primitives for
// ijwi: OpenTelemetry metrics with a Prometheus exporter bridge.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter is wired up via [InitProvider] so that metrics can be scraped via
// the standard /metrics endpoint. A package-level default [Metrics] instance
// ([DefaultMetrics]) is provided for convenience; tests should use
// [NewMetrics] with a custom [metric.MeterProvider] to avoid cross-test
// pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all ijwi metrics.
const meterName = "github.com/ijwilabs/ijwi"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// ResolveDuration tracks command resolution latency.
	ResolveDuration metric.Float64Histogram

	// CommandMatches counts resolved commands. Use with attributes:
	//   attribute.String("stage", ...), attribute.String("catalog", ...)
	CommandMatches metric.Int64Counter

	// CommandMisses counts final transcripts that resolved to nothing.
	CommandMisses metric.Int64Counter

	// SuggestionRequests counts "did you mean" suggestion computations.
	SuggestionRequests metric.Int64Counter

	// ContactMatches counts contact-name resolutions. Use with attribute:
	//   attribute.String("status", "hit"|"miss")
	ContactMatches metric.Int64Counter

	// SpeechQueueDepth tracks the number of queued utterances.
	SpeechQueueDepth metric.Int64UpDownCounter
}

// latencyBuckets defines histogram bucket boundaries (in seconds). Command
// resolution is pure string work, so the buckets skew far lower than typical
// RPC latencies.
var latencyBuckets = []float64{
	0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.ResolveDuration, err = m.Float64Histogram("ijwi.resolve.duration",
		metric.WithDescription("Latency of command resolution."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.CommandMatches, err = m.Int64Counter("ijwi.command.matches",
		metric.WithDescription("Total resolved commands by stage and catalog."),
	); err != nil {
		return nil, err
	}
	if met.CommandMisses, err = m.Int64Counter("ijwi.command.misses",
		metric.WithDescription("Total final transcripts that matched no command."),
	); err != nil {
		return nil, err
	}
	if met.SuggestionRequests, err = m.Int64Counter("ijwi.suggestion.requests",
		metric.WithDescription("Total suggestion computations after a failed resolution."),
	); err != nil {
		return nil, err
	}
	if met.ContactMatches, err = m.Int64Counter("ijwi.contact.matches",
		metric.WithDescription("Total contact-name resolutions by status."),
	); err != nil {
		return nil, err
	}
	if met.SpeechQueueDepth, err = m.Int64UpDownCounter("ijwi.speech.queue_depth",
		metric.WithDescription("Number of utterances queued for speech output."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordMatch records a resolved command with its stage and catalog.
func (m *Metrics) RecordMatch(ctx context.Context, stage, catalog string) {
	m.CommandMatches.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("stage", stage),
			attribute.String("catalog", catalog),
		),
	)
}

// RecordMiss records a final transcript that matched no command.
func (m *Metrics) RecordMiss(ctx context.Context) {
	m.CommandMisses.Add(ctx, 1)
}

// RecordContactMatch records a contact-name resolution outcome.
func (m *Metrics) RecordContactMatch(ctx context.Context, hit bool) {
	status := "miss"
	if hit {
		status = "hit"
	}
	m.ContactMatches.Add(ctx, 1,
		metric.WithAttributes(attribute.String("status", status)),
	)
}
