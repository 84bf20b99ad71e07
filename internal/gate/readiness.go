// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package gate

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/mylife-client/internal/adapter"
	"github.com/MKhiriev/mylife-client/internal/logger"
)

// ProbeResult is the outcome of one health check.
type ProbeResult int

const (
	NotReady ProbeResult = iota
	Ready
)

// ProbeAttempt is published after every health check.
type ProbeAttempt struct {
	// Attempt counts checks since the probe was created, starting at 1.
	Attempt int
	Result  ProbeResult
	Err     error
}

// DefaultReadinessInterval is the fixed delay between failed checks.
const DefaultReadinessInterval = time.Second

// ReadinessProbe waits for the backend before any network gate. Failed
// checks are retried after a fixed delay, without backoff or limit. Ready is
// terminal: once seen the probe never runs again.
type ReadinessProbe struct {
	backend   adapter.BackendAdapter
	interval  time.Duration
	onAttempt func(ProbeAttempt)

	attempts atomic.Int64
	ready    chan struct{}
	once     sync.Once

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewReadinessProbe creates an idle probe. onAttempt may be nil; it is
// called from the probe goroutine.
func NewReadinessProbe(backend adapter.BackendAdapter, interval time.Duration, onAttempt func(ProbeAttempt), logger *logger.Logger) *ReadinessProbe {
	if interval <= 0 {
		interval = DefaultReadinessInterval
	}
	if onAttempt == nil {
		onAttempt = func(ProbeAttempt) {}
	}

	return &ReadinessProbe{
		backend:   backend,
		interval:  interval,
		onAttempt: onAttempt,
		ready:     make(chan struct{}),
		logger:    logger,
	}
}

// Probe performs one bounded health check and publishes the attempt.
func (p *ReadinessProbe) Probe(ctx context.Context) ProbeResult {
	err := p.backend.Health(ctx)
	attempt := ProbeAttempt{Attempt: int(p.attempts.Add(1)), Result: Ready, Err: err}
	if err != nil {
		attempt.Result = NotReady
		p.logger.Debug().Err(err).Int("attempt", attempt.Attempt).Msg("backend not ready")
	} else {
		p.once.Do(func() { close(p.ready) })
		p.logger.Info().Int("attempt", attempt.Attempt).Msg("backend ready")
	}

	p.onAttempt(attempt)
	return attempt.Result
}

// Start launches the retry loop. It is a no-op once the backend was seen
// ready; a running loop is replaced. The loop exits on readiness, when ctx
// is cancelled or when Stop is called.
func (p *ReadinessProbe) Start(ctx context.Context) {
	if p.IsReady() {
		return
	}

	p.Stop()

	p.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()

		timer := time.NewTimer(0)
		defer timer.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-timer.C:
				if p.Probe(jobCtx) == Ready {
					return
				}
				timer.Reset(p.interval)
			}
		}
	}()
}

// Stop cancels the loop and blocks until it has exited. Safe to call when
// the probe is not running.
func (p *ReadinessProbe) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}

// Wait blocks until the backend is ready or ctx is done.
func (p *ReadinessProbe) Wait(ctx context.Context) error {
	select {
	case <-p.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsReady reports whether a check has succeeded.
func (p *ReadinessProbe) IsReady() bool {
	select {
	case <-p.ready:
		return true
	default:
		return false
	}
}

// Attempts returns the number of checks performed so far.
func (p *ReadinessProbe) Attempts() int {
	return int(p.attempts.Load())
}
