package scanner

import (
	"errors"
	"time"

	"portscanner/netutil"
)

// Defaults applied by Options.withDefaults.
const (
	DefaultConcurrency = 100
	DefaultTimeout     = 500 * time.Millisecond
)

// Options configures a scan. The zero value is usable; zero fields take the
// defaults above. Options are immutable once a scan starts.
type Options struct {
	// Concurrency caps the number of simultaneously in-flight probes.
	Concurrency int
	// Timeout bounds each individual probe, independent of Deadline.
	Timeout time.Duration
	// Deadline bounds the whole scan; zero means unbounded. When it elapses
	// first the scan ends as ScanPartial.
	Deadline time.Duration
	// RateLimit caps probe launches per second; zero disables limiting.
	RateLimit float64
	// RateBurst is the limiter burst size; defaults to Concurrency.
	RateBurst int
	// Retries is how many extra attempts a probe ending in StatusError gets.
	// Probes that conclude open, closed or filtered are never retried.
	Retries int
	// Policy, when set, refuses disallowed targets before any probe runs.
	Policy *netutil.Policy
}

func (o Options) withDefaults() Options {
	if o.Concurrency == 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
	if o.RateBurst == 0 {
		o.RateBurst = o.Concurrency
	}
	return o
}

func (o Options) validate() error {
	if o.Concurrency < 0 {
		return errors.New("concurrency must not be negative")
	}
	if o.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	if o.Deadline < 0 {
		return errors.New("deadline must not be negative")
	}
	if o.RateLimit < 0 {
		return errors.New("rate limit must not be negative")
	}
	if o.Retries < 0 {
		return errors.New("retries must not be negative")
	}
	return nil
}
