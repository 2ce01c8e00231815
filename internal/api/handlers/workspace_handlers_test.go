package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Daksh-create349/stock-Master/internal/application"
	"github.com/Daksh-create349/stock-Master/internal/domain"
	"github.com/Daksh-create349/stock-Master/pkg/logging"
)

func TestWorkspaceHandlers_Session(t *testing.T) {
	ws := &mockWorkspace{}
	ws.login = func(cmd application.LoginCommand) (*application.SessionDTO, error) {
		if cmd.Warehouse == "atlantis" {
			return nil, domain.ErrWarehouseNotFound
		}
		ws.session = &application.SessionDTO{Email: cmd.Email, Warehouse: "mumbai", Message: "Welcome back"}
		return ws.session, nil
	}
	router := setupRouter(NewWorkspaceHandlers(ws, testLogger))

	w := doRequest(t, router, http.MethodGet, "/api/v1/session", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["authenticated"])

	w = doRequest(t, router, http.MethodPost, "/api/v1/session", map[string]any{"email": "manager@stockmaster.example", "password": "x"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "mumbai", decode(t, w)["warehouse"])

	w = doRequest(t, router, http.MethodGet, "/api/v1/session", nil)
	assert.Equal(t, true, decode(t, w)["authenticated"])

	w = doRequest(t, router, http.MethodPost, "/api/v1/session", map[string]any{"email": "a@b.c", "password": "x", "warehouse": "atlantis"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/v1/session", map[string]any{"email": "a@b.c"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodDelete, "/api/v1/session", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, ws.session)
}

func TestWorkspaceHandlers_Settings(t *testing.T) {
	var got application.UpdateSettingsCommand
	ws := &mockWorkspace{
		settings: application.SettingsDTO{GeofencingEnabled: true, Theme: "light"},
		update: func(cmd application.UpdateSettingsCommand) (application.SettingsDTO, error) {
			got = cmd
			return application.SettingsDTO{GeofencingEnabled: *cmd.GeofencingEnabled, UserLocation: cmd.UserLocation, Theme: "light"}, nil
		},
	}
	router := setupRouter(NewWorkspaceHandlers(ws, testLogger))

	w := doRequest(t, router, http.MethodGet, "/api/v1/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["geofencingEnabled"])

	w = doRequest(t, router, http.MethodPut, "/api/v1/settings", map[string]any{
		"geofencingEnabled": false,
		"userLocation":      map[string]any{"lat": 19.07, "lng": 72.87},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got.UserLocation)
	assert.InDelta(t, 19.07, got.UserLocation.Lat, 1e-9)
	assert.Nil(t, got.Theme)

	w = doRequest(t, router, http.MethodPut, "/api/v1/settings", map[string]any{"theme": "sepia"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWorkspaceHandlers_Warehouses(t *testing.T) {
	ws := &mockWorkspace{warehouses: []application.WarehouseDTO{{Name: "Mumbai Central Hub"}, {Name: "Pune Distribution Center"}}}
	router := setupRouter(NewWorkspaceHandlers(ws, testLogger))

	w := doRequest(t, router, http.MethodGet, "/api/v1/warehouses", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 2)
}

func TestSessionUser(t *testing.T) {
	ws := &mockWorkspace{}
	router := setupRouter(NewWorkspaceHandlers(ws, testLogger))
	var actor string
	router.GET("/whoami", SessionUser(ws), func(c *gin.Context) {
		actor = logging.UserFrom(c.Request.Context())
		c.Status(http.StatusOK)
	})

	doRequest(t, router, http.MethodGet, "/whoami", nil)
	assert.Empty(t, actor)

	ws.session = &application.SessionDTO{Name: "manager"}
	doRequest(t, router, http.MethodGet, "/whoami", nil)
	assert.Equal(t, "manager", actor)
}
