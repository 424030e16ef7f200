package session

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments, initialized once via InitMetrics().
var (
	pressCounter   metric.Int64Counter
	pressHistogram metric.Float64Histogram
	errorCounter   metric.Int64Counter
	displayGauge   metric.Float64Gauge
)

// InitMetrics registers custom OTel metric instruments for the keypad
// domain. Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("keypad")

	var err error

	pressCounter, err = meter.Int64Counter("keypad.presses.total",
		metric.WithDescription("Total number of key presses applied"),
		metric.WithUnit("{press}"),
	)
	if err != nil {
		return fmt.Errorf("creating press counter: %w", err)
	}

	pressHistogram, err = meter.Float64Histogram("keypad.press.duration",
		metric.WithDescription("Duration of key press handling in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating press histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("keypad.errors.total",
		metric.WithDescription("Total number of keypad errors, divide-by-zero included"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	displayGauge, err = meter.Float64Gauge("keypad.display.value",
		metric.WithDescription("The numeric value currently on the display"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating display gauge: %w", err)
	}

	return nil
}
