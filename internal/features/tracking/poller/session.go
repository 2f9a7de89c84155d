// Package poller implements the order tracking state machine: a per-token
// session that repeatedly fetches the order snapshot from the order service
// until a terminal status is observed or the session is torn down.
package poller

import (
	"context"
	"sync"
	"time"

	"metalmart-gateway/internal/features/tracking/domain"
	"metalmart-gateway/internal/features/tracking/ports"

	"go.uber.org/zap"
)

// State is the lifecycle state of a tracking session.
type State string

const (
	// StateIdle means the session has been created but not started.
	StateIdle State = "idle"
	// StateLoading means the first fetch is in flight and no snapshot exists yet.
	StateLoading State = "loading"
	// StateTracking means a snapshot is available and polling continues.
	StateTracking State = "tracking"
	// StateSettled means a terminal status was observed and polling stopped.
	StateSettled State = "settled"
	// StateFailed means the initial fetch failed and no snapshot was ever obtained.
	StateFailed State = "failed"
)

// View is a consistent read of a session's current state.
type View struct {
	// Token is the tracking token the session polls for.
	Token string
	// State is the session's lifecycle state.
	State State
	// Snapshot is the last good order snapshot, nil until the first fetch succeeds.
	Snapshot *domain.OrderSnapshot
	// Err is set only when the initial fetch failed (StateFailed).
	Err error
}

// Session polls the order service for one tracking token.
//
// Scheduling is strictly serialized: the next poll is armed only after the
// current fetch settles, so at most one fetch is ever in flight per session.
// Steady-state fetch failures keep the last good snapshot and keep polling;
// only the initial fetch failure is terminal. Stop cancels the pending timer
// and guarantees no further fetch is issued for the token.
type Session struct {
	token    string
	provider ports.OrderProvider
	interval time.Duration
	logger   *zap.Logger

	mu       sync.RWMutex
	state    State
	snapshot *domain.OrderSnapshot
	lastErr  error

	startOnce sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewSession creates a session in StateIdle. Call Start to begin polling.
func NewSession(token string, provider ports.OrderProvider, interval time.Duration, logger *zap.Logger) *Session {
	return &Session{
		token:    token,
		provider: provider,
		interval: interval,
		logger:   logger,
		state:    StateIdle,
		done:     make(chan struct{}),
	}
}

// Start launches the polling loop. Calling Start more than once is a no-op.
func (s *Session) Start() {
	s.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())

		s.mu.Lock()
		s.cancel = cancel
		s.state = StateLoading
		s.mu.Unlock()

		go s.run(ctx)
	})
}

// Stop tears the session down: it cancels any pending poll and waits for the
// loop to exit, so no fetch for this token happens after Stop returns.
// Stop is idempotent and safe to call on a never-started session.
func (s *Session) Stop() {
	// Consume the start slot so a later Start becomes a no-op.
	s.startOnce.Do(func() {
		close(s.done)
	})

	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	<-s.done
}

// Done is closed once the polling loop has exited (settled, failed or stopped).
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// View returns a consistent snapshot of the session state.
func (s *Session) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{
		Token:    s.token,
		State:    s.state,
		Snapshot: s.snapshot,
		Err:      s.lastErr,
	}
}

// run is the polling loop. It owns all state transitions after Start.
func (s *Session) run(ctx context.Context) {
	defer close(s.done)

	// Initial fetch. Failure here is terminal for the session: the order is
	// reported as not found and no retry is scheduled.
	snap, err := s.provider.GetOrderByToken(ctx, s.token)
	if err != nil {
		s.mu.Lock()
		s.state = StateFailed
		s.lastErr = err
		s.mu.Unlock()

		s.logger.Warn("Initial order fetch failed",
			zap.String("token", s.token),
			zap.Error(err),
		)
		return
	}

	s.replace(snap, StateTracking)

	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		snap, err := s.provider.GetOrderByToken(ctx, s.token)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			// Transient failure: keep the last good snapshot and keep polling.
			s.logger.Warn("Order poll failed, keeping last snapshot",
				zap.String("token", s.token),
				zap.Error(err),
			)
			timer.Reset(s.interval)
			continue
		}

		if snap.Status.IsTerminal() {
			s.replace(snap, StateSettled)
			s.logger.Info("Order reached terminal status, polling stopped",
				zap.String("token", s.token),
				zap.String("status", string(snap.Status)),
			)
			return
		}

		s.replace(snap, StateTracking)
		timer.Reset(s.interval)
	}
}

// replace swaps in a fresh snapshot unconditionally; snapshots are never
// partially merged.
func (s *Session) replace(snap *domain.OrderSnapshot, state State) {
	s.mu.Lock()
	s.snapshot = snap
	s.state = state
	s.mu.Unlock()
}
