package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Daksh-create349/stock-Master/internal/domain"
	"github.com/Daksh-create349/stock-Master/pkg/logging"
	"github.com/Daksh-create349/stock-Master/pkg/metrics"
)

var _ Notifier = (*NotificationCenter)(nil)

// NotificationConfig holds the expiry settings of the notification center
type NotificationConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

// DefaultNotificationConfig returns the 5 second toast lifetime
func DefaultNotificationConfig() *NotificationConfig {
	return &NotificationConfig{
		TTL:           5 * time.Second,
		SweepInterval: 1 * time.Second,
	}
}

// NotificationCenter keeps the transient notification list. Expired
// entries are hidden on read and dropped by a background janitor.
type NotificationCenter struct {
	logger  *logging.Logger
	metrics *metrics.Metrics
	ttl     time.Duration
	sweep   time.Duration
	now     func() time.Time

	mu    sync.Mutex
	items []domain.Notification // newest first

	lifecycle sync.Mutex
	running   bool
	stopCh    chan struct{}
	stoppedCh chan struct{}
}

// NewNotificationCenter creates a notification center
func NewNotificationCenter(config *NotificationConfig, logger *logging.Logger, m *metrics.Metrics) *NotificationCenter {
	if config == nil {
		config = DefaultNotificationConfig()
	}
	if config.SweepInterval <= 0 {
		config.SweepInterval = time.Second
	}
	return &NotificationCenter{
		logger:  logger,
		metrics: m,
		ttl:     config.TTL,
		sweep:   config.SweepInterval,
		now:     time.Now,
	}
}

// Emit prepends a notification
func (n *NotificationCenter) Emit(kind domain.NotificationType, message string) domain.Notification {
	note := domain.Notification{
		ID:        uuid.NewString(),
		Type:      kind,
		Message:   message,
		Timestamp: n.now(),
	}

	n.mu.Lock()
	n.items = append([]domain.Notification{note}, n.items...)
	n.mu.Unlock()

	n.metrics.RecordNotification(string(kind))
	n.logger.Debug("Notification emitted", "type", kind, "message", message)
	return note
}

// List returns the live notifications, newest first
func (n *NotificationCenter) List() []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.pruneLocked()
	return append([]domain.Notification(nil), n.items...)
}

// Dismiss removes a notification. It reports whether one was removed.
func (n *NotificationCenter) Dismiss(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, item := range n.items {
		if item.ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return true
		}
	}
	return false
}

// Sweep drops expired notifications and returns how many were dropped
func (n *NotificationCenter) Sweep() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pruneLocked()
}

func (n *NotificationCenter) pruneLocked() int {
	if n.ttl <= 0 {
		return 0
	}
	now := n.now()
	kept := n.items[:0]
	for _, item := range n.items {
		if !item.ExpiredAt(now, n.ttl) {
			kept = append(kept, item)
		}
	}
	dropped := len(n.items) - len(kept)
	clear(n.items[len(kept):])
	n.items = kept
	return dropped
}

// Start runs the janitor until Stop is called or ctx is done
func (n *NotificationCenter) Start(ctx context.Context) error {
	n.lifecycle.Lock()
	defer n.lifecycle.Unlock()

	if n.running {
		return fmt.Errorf("notification janitor already running")
	}
	n.running = true
	n.stopCh = make(chan struct{})
	n.stoppedCh = make(chan struct{})

	n.logger.Info("Starting notification janitor", "ttl", n.ttl, "interval", n.sweep)
	go n.run(ctx, n.stopCh, n.stoppedCh)
	return nil
}

// Stop halts the janitor and waits for it to exit
func (n *NotificationCenter) Stop() error {
	n.lifecycle.Lock()
	defer n.lifecycle.Unlock()

	if !n.running {
		return fmt.Errorf("notification janitor not running")
	}
	close(n.stopCh)
	<-n.stoppedCh
	n.running = false

	n.logger.Info("Notification janitor stopped")
	return nil
}

func (n *NotificationCenter) run(ctx context.Context, stopCh <-chan struct{}, stoppedCh chan<- struct{}) {
	defer close(stoppedCh)

	ticker := time.NewTicker(n.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if dropped := n.Sweep(); dropped > 0 {
				n.logger.Debug("Expired notifications dropped", "count", dropped)
			}
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}
