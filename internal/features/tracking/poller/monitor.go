package poller

import (
	"context"
	"sync"
	"time"

	"metalmart-gateway/internal/features/tracking/domain"
	"metalmart-gateway/internal/features/tracking/ports"

	"go.uber.org/zap"
)

// Monitor is the order-confirmation view's poller. It shares the fetch and
// interval mechanics of Session but performs no terminal-status detection:
// it keeps refreshing the snapshot until it is torn down, even after the
// order has shipped.
type Monitor struct {
	orderID  string
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

// NewMonitor creates a monitor in StateIdle. Call Start to begin polling.
func NewMonitor(orderID string, provider ports.OrderProvider, interval time.Duration, logger *zap.Logger) *Monitor {
	return &Monitor{
		orderID:  orderID,
		provider: provider,
		interval: interval,
		logger:   logger,
		state:    StateIdle,
		done:     make(chan struct{}),
	}
}

// Start launches the refresh loop. Calling Start more than once is a no-op.
func (m *Monitor) Start() {
	m.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())

		m.mu.Lock()
		m.cancel = cancel
		m.state = StateLoading
		m.mu.Unlock()

		go m.run(ctx)
	})
}

// Stop tears the monitor down and waits for the loop to exit. Idempotent.
func (m *Monitor) Stop() {
	m.startOnce.Do(func() {
		close(m.done)
	})

	m.mu.Lock()
	cancel := m.cancel
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	<-m.done
}

// View returns a consistent snapshot of the monitor state.
func (m *Monitor) View() View {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return View{
		Token:    m.orderID,
		State:    m.state,
		Snapshot: m.snapshot,
		Err:      m.lastErr,
	}
}

// run refreshes the snapshot until cancelled.
func (m *Monitor) run(ctx context.Context) {
	defer close(m.done)

	snap, err := m.provider.GetOrder(ctx, m.orderID)
	if err != nil {
		m.mu.Lock()
		m.state = StateFailed
		m.lastErr = err
		m.mu.Unlock()

		m.logger.Warn("Initial confirmation fetch failed",
			zap.String("order_id", m.orderID),
			zap.Error(err),
		)
		return
	}

	m.mu.Lock()
	m.snapshot = snap
	m.state = StateTracking
	m.mu.Unlock()

	timer := time.NewTimer(m.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		snap, err := m.provider.GetOrder(ctx, m.orderID)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			m.logger.Warn("Confirmation poll failed, keeping last snapshot",
				zap.String("order_id", m.orderID),
				zap.Error(err),
			)
			timer.Reset(m.interval)
			continue
		}

		m.mu.Lock()
		m.snapshot = snap
		m.state = StateTracking
		m.mu.Unlock()

		timer.Reset(m.interval)
	}
}
