package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Daksh-create349/stock-Master/internal/domain"
	"github.com/Daksh-create349/stock-Master/pkg/logging"
)

func TestNotificationCenter_ExpiresAfterTTL(t *testing.T) {
	n := NewNotificationCenter(&NotificationConfig{TTL: 5 * time.Second, SweepInterval: time.Second}, logging.Discard(), nil)
	clock := fixedNow
	n.now = func() time.Time { return clock }

	first := n.Emit(domain.NotificationSuccess, "first")
	clock = clock.Add(2 * time.Second)
	second := n.Emit(domain.NotificationError, "second")

	list := n.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")

	clock = fixedNow.Add(5 * time.Second)
	list = n.List()
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)
	assert.NotEqual(t, first.ID, list[0].ID)

	assert.True(t, n.Dismiss(second.ID))
	assert.False(t, n.Dismiss(second.ID))
	assert.Empty(t, n.List())
}

func TestNotificationCenter_Sweep(t *testing.T) {
	n := NewNotificationCenter(nil, logging.Discard(), nil)
	clock := fixedNow
	n.now = func() time.Time { return clock }

	n.Emit(domain.NotificationInfo, "a")
	n.Emit(domain.NotificationInfo, "b")
	assert.Equal(t, 0, n.Sweep())

	clock = clock.Add(time.Minute)
	assert.Equal(t, 2, n.Sweep())
}

func TestNotificationCenter_Janitor(t *testing.T) {
	defer goleak.VerifyNone(t)

	n := NewNotificationCenter(&NotificationConfig{TTL: 10 * time.Millisecond, SweepInterval: 5 * time.Millisecond}, logging.Discard(), nil)
	ctx := context.Background()

	require.NoError(t, n.Start(ctx))
	assert.Error(t, n.Start(ctx), "second start is refused")

	n.Emit(domain.NotificationWarning, "short lived")
	assert.Eventually(t, func() bool {
		n.mu.Lock()
		defer n.mu.Unlock()
		return len(n.items) == 0
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, n.Stop())
	assert.Error(t, n.Stop())

	require.NoError(t, n.Start(ctx), "restart after stop")
	require.NoError(t, n.Stop())
}

func TestNotificationCenter_StopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	n := NewNotificationCenter(nil, logging.Discard(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, n.Start(ctx))
	cancel()
	require.NoError(t, n.Stop())
}
