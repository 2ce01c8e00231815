package application

import (
	"context"

	"github.com/Daksh-create349/stock-Master/internal/domain"
)

// Notifier emits user-facing notifications
type Notifier interface {
	Emit(kind domain.NotificationType, message string) domain.Notification
}

// GeofenceSource supplies the inputs of the validator's location gate
type GeofenceSource interface {
	Geofence() domain.Geofence
}

// SessionSource exposes the warehouse the signed-in user operates from
type SessionSource interface {
	// ActiveWarehouse is "" when nobody is signed in
	ActiveWarehouse() string
	// DefaultWarehouse falls back to the first registered warehouse
	DefaultWarehouse() string
}

// LanguageModel is a hosted generative model. Implementations return
// ErrModelNotConfigured when no credential is available.
type LanguageModel interface {
	// Generate returns free text for prompt
	Generate(ctx context.Context, prompt string) (string, error)
	// GenerateCommand returns the raw JSON reply for a command
	// interpretation prompt
	GenerateCommand(ctx context.Context, prompt string) ([]byte, error)
}
