package analyzer

import (
	"time"

	"github.com/rs/zerolog"
)

type Option func(*Analyzer)

// WithConfig replaces the default configuration.
func WithConfig(config *Config) Option {
	return func(a *Analyzer) {
		if config != nil {
			a.config = config
		}
	}
}

// WithLogger attaches a logger, the engine is silent without one.
func WithLogger(log zerolog.Logger) Option {
	return func(a *Analyzer) {
		a.log = log
	}
}

// WithDetectors replaces the default detector set.
func WithDetectors(detectors ...Detector) Option {
	return func(a *Analyzer) {
		a.detectors = detectors
	}
}

// WithExpectedIssues enables the accuracy report against a known defect count.
func WithExpectedIssues(expected int) Option {
	return func(a *Analyzer) {
		a.expected = &expected
	}
}

// WithClock overrides the timestamp source for the export metadata.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}
