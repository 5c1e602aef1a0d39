package scanner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// probeFunc matches Probe; tests swap in instrumented implementations.
type probeFunc func(ctx context.Context, addr string, portNum uint16, timeout time.Duration) Outcome

// Manager schedules probes for one scan: it fans ports out across a bounded
// worker pool, enforces the concurrency cap and per-probe timeout, observes
// cancellation at slot-acquisition points and streams outcomes as they
// complete. One Manager runs one scan.
type Manager struct {
	target string
	addr   string
	ports  []uint16
	opts   Options

	sem        *semaphore.Weighted
	limiter    *rate.Limiter
	probe      probeFunc
	newBackoff func() backoff.BackOff
	lg         *zap.Logger
}

// NewManager validates the request and prepares a scheduler for it. The
// ports slice must be sorted ascending with no duplicates (ParseSpec output).
func NewManager(target, addr string, ports []uint16, opts Options, lg *zap.Logger) (*Manager, error) {
	if target == "" || addr == "" {
		return nil, errors.New("scanner: missing target or address")
	}
	if len(ports) == 0 {
		return nil, errors.New("scanner: no ports to scan")
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	if lg == nil {
		lg = zap.NewNop()
	}

	m := &Manager{
		target: target,
		addr:   addr,
		ports:  ports,
		opts:   opts,
		sem:    semaphore.NewWeighted(int64(opts.Concurrency)),
		probe:  Probe,
		newBackoff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
		lg: lg.With(zap.String("component", "scanner")),
	}
	if opts.RateLimit > 0 {
		m.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateBurst)
	}
	return m, nil
}

// Stream starts the scan and returns a channel delivering outcomes as probes
// finish. Completion order is unspecified; only the finalized Result is
// ordered by port. The channel closes once every attempted probe has
// reported. Ports not yet scheduled when ctx ends are never probed and never
// produce an outcome.
func (m *Manager) Stream(ctx context.Context) <-chan Outcome {
	// Buffered for the worst case so workers never block on send and slots
	// are released the moment a probe concludes.
	out := make(chan Outcome, len(m.ports))

	go func() {
		defer close(out)
		var wg sync.WaitGroup
		for _, p := range m.ports {
			if m.limiter != nil {
				if err := m.limiter.Wait(ctx); err != nil {
					break
				}
			}
			// Cancellation is observed here, at the slot-acquisition
			// point: once ctx ends no new probe starts.
			if err := m.sem.Acquire(ctx, 1); err != nil {
				break
			}
			wg.Add(1)
			go func(p uint16) {
				defer wg.Done()
				defer m.sem.Release(1)
				out <- m.runProbe(ctx, p)
			}(p)
		}
		wg.Wait()
	}()
	return out
}

// runProbe executes a single probe, retrying only StatusError outcomes and
// only when Retries is set. Retries run inside the worker's slot so the
// concurrency cap holds across attempts.
func (m *Manager) runProbe(ctx context.Context, p uint16) Outcome {
	var res Outcome
	attempt := func() error {
		res = m.probe(ctx, m.addr, p, m.opts.Timeout)
		if res.Status == StatusError {
			return errors.New(res.Detail)
		}
		return nil
	}

	if m.opts.Retries <= 0 {
		_ = attempt()
	} else {
		bo := backoff.WithContext(
			backoff.WithMaxRetries(m.newBackoff(), uint64(m.opts.Retries)), ctx)
		if err := backoff.Retry(attempt, bo); err != nil {
			m.lg.Debug("probe failed after retries",
				zap.Uint16("port", p), zap.Error(err))
		}
	}
	return res
}

// Scan drives Stream to completion and finalizes the report. The returned
// Result's status reflects how the scan ended: completed, cancelled (caller
// abort) or partial (overall deadline elapsed first).
func (m *Manager) Scan(ctx context.Context) (*Result, error) {
	scanCtx := ctx
	if m.opts.Deadline > 0 {
		var cancel context.CancelFunc
		scanCtx, cancel = context.WithTimeout(ctx, m.opts.Deadline)
		defer cancel()
	}

	started := time.Now()
	m.lg.Info("scan started",
		zap.String("target", m.target),
		zap.String("addr", m.addr),
		zap.Int("ports", len(m.ports)),
		zap.Int("concurrency", m.opts.Concurrency))

	outcomes := make([]Outcome, 0, len(m.ports))
	for o := range m.Stream(scanCtx) {
		outcomes = append(outcomes, o)
	}
	ended := time.Now()

	// Classify by how the contexts stood when the stream closed: a caller
	// abort wins over the deadline, and either wins over completed even
	// when every port was already dispatched — in-flight probes were
	// force-aborted, so the outcome set is not a completed scan.
	var status ScanStatus
	switch {
	case ctx.Err() != nil:
		status = ScanCancelled
	case scanCtx.Err() != nil:
		status = ScanPartial
	default:
		status = ScanCompleted
	}

	res := BuildResult(m.target, m.addr, m.ports, outcomes, status, started, ended)
	m.lg.Info("scan finished",
		zap.String("status", string(res.Status)),
		zap.Int("attempted", len(res.Outcomes)),
		zap.Int("open", len(res.Open())),
		zap.Duration("took", res.Duration()))
	return res, nil
}
