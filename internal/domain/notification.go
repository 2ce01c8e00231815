package domain

import "time"

// NotificationType is the severity shown to the user
type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
)

// Notification is an ephemeral message. It is not an audit record.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
}

// ExpiredAt reports whether the notification outlived ttl at now
func (n Notification) ExpiredAt(now time.Time, ttl time.Duration) bool {
	return !now.Before(n.Timestamp.Add(ttl))
}
