package service

import (
	"context"
	"sync"
	"time"

	"metalmart-gateway/internal/core/logger"
	"metalmart-gateway/internal/features/tracking/domain"
	"metalmart-gateway/internal/features/tracking/poller"
	"metalmart-gateway/internal/features/tracking/ports"
)

// TrackingService owns the tracking sessions and confirmation monitors, keyed
// by token and order id respectively. Each key has at most one live poller;
// a key must be torn down before a new poller for it can start.
type TrackingService struct {
	provider ports.OrderProvider
	interval time.Duration

	mu       sync.Mutex
	sessions map[string]*poller.Session
	monitors map[string]*poller.Monitor
}

// NewTrackingService creates a TrackingService polling through the given
// provider at the given interval.
func NewTrackingService(provider ports.OrderProvider, interval time.Duration) *TrackingService {
	return &TrackingService{
		provider: provider,
		interval: interval,
		sessions: make(map[string]*poller.Session),
		monitors: make(map[string]*poller.Monitor),
	}
}

// Track returns the current view for the token, starting a tracking session
// on first sight. Repeated calls for a live token are idempotent reads;
// settled and failed sessions keep serving their final view without any new
// fetches until the token is torn down.
func (s *TrackingService) Track(token string) poller.View {
	s.mu.Lock()
	sess, ok := s.sessions[token]
	if !ok {
		sess = poller.NewSession(token, s.provider, s.interval, logger.Named("tracking"))
		s.sessions[token] = sess
		sess.Start()
	}
	s.mu.Unlock()

	return sess.View()
}

// StopTracking tears down the session for the token, cancelling any pending
// poll. A later Track for the same token restarts from Loading.
func (s *TrackingService) StopTracking(token string) {
	s.mu.Lock()
	sess, ok := s.sessions[token]
	delete(s.sessions, token)
	s.mu.Unlock()

	if ok {
		sess.Stop()
	}
}

// Confirm returns the current confirmation view for the order id, starting a
// monitor on first sight. Monitors never settle on their own.
func (s *TrackingService) Confirm(orderID string) poller.View {
	s.mu.Lock()
	mon, ok := s.monitors[orderID]
	if !ok {
		mon = poller.NewMonitor(orderID, s.provider, s.interval, logger.Named("confirmation"))
		s.monitors[orderID] = mon
		mon.Start()
	}
	s.mu.Unlock()

	return mon.View()
}

// StopConfirm tears down the monitor for the order id.
func (s *TrackingService) StopConfirm(orderID string) {
	s.mu.Lock()
	mon, ok := s.monitors[orderID]
	delete(s.monitors, orderID)
	s.mu.Unlock()

	if ok {
		mon.Stop()
	}
}

// GetOrder is a plain pass-through lookup by internal order id.
func (s *TrackingService) GetOrder(ctx context.Context, orderID string) (*domain.OrderSnapshot, error) {
	return s.provider.GetOrder(ctx, orderID)
}

// GetOrderStatus is a plain pass-through status lookup by internal order id.
func (s *TrackingService) GetOrderStatus(ctx context.Context, orderID string) (domain.OrderStatus, error) {
	return s.provider.GetOrderStatus(ctx, orderID)
}

// Close stops every live session and monitor. Used on gateway shutdown.
func (s *TrackingService) Close() {
	s.mu.Lock()
	sessions := make([]*poller.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	monitors := make([]*poller.Monitor, 0, len(s.monitors))
	for _, mon := range s.monitors {
		monitors = append(monitors, mon)
	}
	s.sessions = make(map[string]*poller.Session)
	s.monitors = make(map[string]*poller.Monitor)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Stop()
	}
	for _, mon := range monitors {
		mon.Stop()
	}
}
