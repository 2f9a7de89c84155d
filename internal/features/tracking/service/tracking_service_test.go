package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"metalmart-gateway/internal/features/tracking/domain"
	"metalmart-gateway/internal/features/tracking/poller"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockOrderProvider serves a fixed status per token and counts fetches.
type mockOrderProvider struct {
	mu       sync.Mutex
	statuses map[string]domain.OrderStatus
	calls    map[string]int
}

func newMockOrderProvider() *mockOrderProvider {
	return &mockOrderProvider{
		statuses: make(map[string]domain.OrderStatus),
		calls:    make(map[string]int),
	}
}

func (m *mockOrderProvider) GetOrderByToken(ctx context.Context, token string) (*domain.OrderSnapshot, error) {
	return m.fetch(token)
}

func (m *mockOrderProvider) GetOrder(ctx context.Context, orderID string) (*domain.OrderSnapshot, error) {
	return m.fetch(orderID)
}

func (m *mockOrderProvider) GetOrderStatus(ctx context.Context, orderID string) (domain.OrderStatus, error) {
	snap, err := m.fetch(orderID)
	if err != nil {
		return "", err
	}
	return snap.Status, nil
}

func (m *mockOrderProvider) fetch(key string) (*domain.OrderSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls[key]++
	status, ok := m.statuses[key]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return &domain.OrderSnapshot{TrackingToken: key, Status: status}, nil
}

func (m *mockOrderProvider) setStatus(key string, status domain.OrderStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses[key] = status
}

func (m *mockOrderProvider) callCount(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[key]
}

// TestTrackingService_TrackStartsOneSessionPerToken verifies repeated Track
// calls share a single poller.
func TestTrackingService_TrackStartsOneSessionPerToken(t *testing.T) {
	provider := newMockOrderProvider()
	provider.setStatus("tok", domain.OrderStatusPending)

	svc := NewTrackingService(provider, time.Hour)
	defer svc.Close()

	svc.Track("tok")
	svc.Track("tok")
	svc.Track("tok")

	require.Eventually(t, func() bool {
		return svc.Track("tok").State == poller.StateTracking
	}, time.Second, time.Millisecond)

	// One initial fetch; the hour-long interval means no second poll yet.
	assert.Equal(t, 1, provider.callCount("tok"))
}

// TestTrackingService_FailedSessionIsNotRetried verifies the initial-failure
// asymmetry: a failed token keeps serving Failed without refetching.
func TestTrackingService_FailedSessionIsNotRetried(t *testing.T) {
	provider := newMockOrderProvider()

	svc := NewTrackingService(provider, 5*time.Millisecond)
	defer svc.Close()

	require.Eventually(t, func() bool {
		return svc.Track("ghost").State == poller.StateFailed
	}, time.Second, time.Millisecond)

	svc.Track("ghost")
	svc.Track("ghost")
	assert.Equal(t, 1, provider.callCount("ghost"))
}

// TestTrackingService_StopAndRestart verifies teardown allows a fresh session
// for the same token, restarting from Loading.
func TestTrackingService_StopAndRestart(t *testing.T) {
	provider := newMockOrderProvider()
	provider.setStatus("tok", domain.OrderStatusPending)

	svc := NewTrackingService(provider, time.Hour)
	defer svc.Close()

	require.Eventually(t, func() bool {
		return svc.Track("tok").State == poller.StateTracking
	}, time.Second, time.Millisecond)

	svc.StopTracking("tok")

	view := svc.Track("tok")
	assert.Contains(t, []poller.State{poller.StateLoading, poller.StateTracking}, view.State)

	require.Eventually(t, func() bool {
		return provider.callCount("tok") == 2
	}, time.Second, time.Millisecond)
}

// TestTrackingService_ConfirmMonitorsIndependently verifies confirmation
// monitors are keyed separately from tracking sessions.
func TestTrackingService_ConfirmMonitorsIndependently(t *testing.T) {
	provider := newMockOrderProvider()
	provider.setStatus("ord-1", domain.OrderStatusShipped)

	svc := NewTrackingService(provider, 5*time.Millisecond)
	defer svc.Close()

	require.Eventually(t, func() bool {
		return svc.Confirm("ord-1").State == poller.StateTracking
	}, time.Second, time.Millisecond)

	// Terminal status does not settle a confirmation monitor.
	require.Eventually(t, func() bool {
		return provider.callCount("ord-1") >= 3
	}, time.Second, time.Millisecond)

	svc.StopConfirm("ord-1")
	calls := provider.callCount("ord-1")
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, calls, provider.callCount("ord-1"))
}

// TestTrackingService_Passthroughs verifies the plain order lookups.
func TestTrackingService_Passthroughs(t *testing.T) {
	provider := newMockOrderProvider()
	provider.setStatus("ord-1", domain.OrderStatusConfirmed)

	svc := NewTrackingService(provider, time.Hour)
	defer svc.Close()

	snap, err := svc.GetOrder(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, snap.Status)

	status, err := svc.GetOrderStatus(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, status)

	_, err = svc.GetOrder(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

// TestTrackingService_Close verifies Close stops all live pollers.
func TestTrackingService_Close(t *testing.T) {
	provider := newMockOrderProvider()
	provider.setStatus("tok", domain.OrderStatusPending)
	provider.setStatus("ord-1", domain.OrderStatusPending)

	svc := NewTrackingService(provider, 5*time.Millisecond)
	svc.Track("tok")
	svc.Confirm("ord-1")

	require.Eventually(t, func() bool {
		return provider.callCount("tok") >= 1 && provider.callCount("ord-1") >= 1
	}, time.Second, time.Millisecond)

	svc.Close()
	tokCalls := provider.callCount("tok")
	ordCalls := provider.callCount("ord-1")

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, tokCalls, provider.callCount("tok"))
	assert.Equal(t, ordCalls, provider.callCount("ord-1"))
}
