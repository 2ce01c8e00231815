package application

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Daksh-create349/stock-Master/internal/domain"
	"github.com/Daksh-create349/stock-Master/pkg/errors"
	"github.com/Daksh-create349/stock-Master/pkg/logging"
)

var (
	_ GeofenceSource = (*Workspace)(nil)
	_ SessionSource  = (*Workspace)(nil)
)

// Themes accepted by the settings screen
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// WorkspaceConfig holds the initial workspace settings
type WorkspaceConfig struct {
	GeofencingEnabled bool
	Theme             string
}

// Workspace holds the per-deployment session and settings. Login is
// cosmetic: any non-empty credentials are accepted.
type Workspace struct {
	registry domain.WarehouseRegistry
	notifier Notifier
	logger   *logging.Logger
	now      func() time.Time

	mu       sync.RWMutex
	session  *SessionDTO
	settings SettingsDTO
}

// NewWorkspace creates a workspace with no signed-in user
func NewWorkspace(config WorkspaceConfig, registry domain.WarehouseRegistry, notifier Notifier, logger *logging.Logger) *Workspace {
	theme := config.Theme
	if theme != ThemeDark {
		theme = ThemeLight
	}
	return &Workspace{
		registry: registry,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		settings: SettingsDTO{GeofencingEnabled: config.GeofencingEnabled, Theme: theme},
	}
}

// Login opens a session for email at warehouse. An empty warehouse selects
// the first registered one.
func (w *Workspace) Login(ctx context.Context, cmd LoginCommand) (*SessionDTO, error) {
	email := strings.TrimSpace(cmd.Email)
	if email == "" || cmd.Password == "" {
		return nil, errors.ErrValidation("email and password are required")
	}

	warehouse := strings.TrimSpace(cmd.Warehouse)
	if warehouse == "" {
		sites := w.registry.FindAll()
		if len(sites) == 0 {
			return nil, errors.ErrValidation("no warehouse is registered")
		}
		warehouse = sites[0].Name
	} else if _, ok := w.registry.FindByName(warehouse); !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrWarehouseNotFound, warehouse)
	}

	name := email
	if at := strings.Index(email, "@"); at >= 0 {
		name = email[:at]
	}

	session := &SessionDTO{
		UserID:     "u1",
		Name:       name,
		Email:      email,
		Role:       "Manager",
		Warehouse:  warehouse,
		LoggedInAt: w.now(),
		Message:    fmt.Sprintf("Welcome to %s, %s!", warehouse, name),
	}

	w.mu.Lock()
	w.session = session
	w.mu.Unlock()

	w.notifier.Emit(domain.NotificationSuccess, session.Message)
	w.logger.Audit(logging.ContextWithUser(ctx, name), "login", "session", session.UserID, map[string]any{"warehouse": warehouse})

	out := *session
	return &out, nil
}

// Logout clears the session. It is a no-op when nobody is signed in.
func (w *Workspace) Logout(ctx context.Context) string {
	w.mu.Lock()
	prev := w.session
	w.session = nil
	w.mu.Unlock()

	const msg = "Logged out successfully."
	if prev != nil {
		w.logger.Audit(logging.ContextWithUser(ctx, prev.Name), "logout", "session", prev.UserID, nil)
	}
	w.notifier.Emit(domain.NotificationInfo, msg)
	return msg
}

// Session returns the signed-in user, if any
func (w *Workspace) Session() (*SessionDTO, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.session == nil {
		return nil, false
	}
	out := *w.session
	out.Message = ""
	return &out, true
}

// ActiveWarehouse is the session warehouse, or "" when nobody is signed in
func (w *Workspace) ActiveWarehouse() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.session == nil {
		return ""
	}
	return w.session.Warehouse
}

// Settings returns a copy of the current settings
func (w *Workspace) Settings() SettingsDTO {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.settingsLocked()
}

func (w *Workspace) settingsLocked() SettingsDTO {
	s := w.settings
	if s.UserLocation != nil {
		loc := *s.UserLocation
		s.UserLocation = &loc
	}
	return s
}

// UpdateSettings applies the non-nil fields of cmd
func (w *Workspace) UpdateSettings(ctx context.Context, cmd UpdateSettingsCommand) (SettingsDTO, error) {
	if cmd.Theme != nil && *cmd.Theme != ThemeLight && *cmd.Theme != ThemeDark {
		return SettingsDTO{}, errors.ErrValidationWithFields("invalid theme", map[string]string{"theme": "must be light or dark"})
	}
	if loc := cmd.UserLocation; loc != nil {
		if loc.Lat < -90 || loc.Lat > 90 || loc.Lng < -180 || loc.Lng > 180 {
			return SettingsDTO{}, errors.ErrValidationWithFields("invalid coordinate", map[string]string{"userLocation": "latitude or longitude out of range"})
		}
	}

	w.mu.Lock()
	if cmd.GeofencingEnabled != nil {
		w.settings.GeofencingEnabled = *cmd.GeofencingEnabled
	}
	if cmd.ClearUserLocation {
		w.settings.UserLocation = nil
	}
	if cmd.UserLocation != nil {
		loc := *cmd.UserLocation
		w.settings.UserLocation = &loc
	}
	if cmd.Theme != nil {
		w.settings.Theme = *cmd.Theme
	}
	out := w.settingsLocked()
	w.mu.Unlock()

	if cmd.UserLocation != nil {
		w.notifier.Emit(domain.NotificationSuccess, "Location updated.")
	}
	w.logger.WithContext(ctx).Info("Settings updated",
		"geofencing", out.GeofencingEnabled,
		"hasLocation", out.UserLocation != nil,
		"theme", out.Theme,
	)
	return out, nil
}

// Geofence snapshots the gate inputs for one validator call
func (w *Workspace) Geofence() domain.Geofence {
	s := w.Settings()
	return domain.Geofence{
		Enabled:      s.GeofencingEnabled,
		UserLocation: s.UserLocation,
		Lookup:       w.registry.FindByName,
	}
}

// Warehouses lists the registry annotated with the user's distance to each site
func (w *Workspace) Warehouses() []WarehouseDTO {
	user := w.Settings().UserLocation
	sites := w.registry.FindAll()
	out := make([]WarehouseDTO, 0, len(sites))
	for _, site := range sites {
		out = append(out, ToWarehouseDTO(site, user))
	}
	return out
}

// DefaultWarehouse is the active warehouse, or the first registered one
func (w *Workspace) DefaultWarehouse() string {
	if wh := w.ActiveWarehouse(); wh != "" {
		return wh
	}
	if sites := w.registry.FindAll(); len(sites) > 0 {
		return sites[0].Name
	}
	return ""
}
