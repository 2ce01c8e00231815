package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Daksh-create349/stock-Master/internal/application"
	"github.com/Daksh-create349/stock-Master/internal/domain"
)

func TestOperationHandlers_CreateOperation(t *testing.T) {
	var got application.CreateOperationCommand
	catalog := &mockCatalog{
		createOperation: func(cmd application.CreateOperationCommand) (*application.OperationDTO, error) {
			got = cmd
			return &application.OperationDTO{ID: "o9", Reference: "WH/IN/0001", Type: string(cmd.Type), Status: "Draft"}, nil
		},
	}
	router := setupRouter(NewOperationHandlers(catalog, &mockInventory{}, testLogger))

	t.Run("success", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/v1/operations", map[string]any{
			"type":      "Receipt",
			"partnerId": "c1",
			"items":     []map[string]any{{"productId": "p1", "quantity": 5}},
		})

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "WH/IN/0001", decode(t, w)["reference"])
		assert.Equal(t, domain.OperationReceipt, got.Type)
		assert.Equal(t, []domain.LineItem{{ProductID: "p1", Quantity: 5}}, got.Items)
		assert.Equal(t, "c1", got.PartnerID)
	})

	t.Run("unknown type", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/v1/operations", map[string]any{
			"type":  "Teleport",
			"items": []map[string]any{{"productId": "p1", "quantity": 5}},
		})

		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, "VALIDATION_ERROR", body["code"])
		assert.Contains(t, body["details"], "type")
	})

	t.Run("no items", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/v1/operations", map[string]any{"type": "Delivery", "items": []any{}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/v1/operations", "{not json")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "BAD_REQUEST", decode(t, w)["code"])
	})
}

func TestOperationHandlers_ValidateOperation(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		check      func(t *testing.T, body map[string]any)
	}{
		{
			name:       "geofence violation",
			err:        &domain.GeofenceViolationError{Warehouse: "Mumbai Central Hub", Distance: 1200.4, Radius: 500},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "GEOFENCE_VIOLATION",
			check: func(t *testing.T, body map[string]any) {
				details := body["details"].(map[string]any)
				assert.Equal(t, "Mumbai Central Hub", details["warehouse"])
				assert.Equal(t, "1200", details["distance"])
				assert.Equal(t, "500", details["radius"])
			},
		},
		{
			name: "insufficient stock",
			err: &domain.InsufficientStockError{Shortages: []domain.Shortage{
				{ProductID: "p2", Requested: 10, Available: 8},
			}},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "INSUFFICIENT_STOCK",
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "p2: 8/10", body["details"].(map[string]any)["shortages"])
			},
		},
		{
			name:       "unknown operation",
			err:        domain.ErrOperationNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "RESOURCE_NOT_FOUND",
		},
		{
			name:       "terminal operation",
			err:        fmt.Errorf("operation o1 is Cancelled: %w", domain.ErrInvalidStatusTransition),
			wantStatus: http.StatusConflict,
			wantCode:   "BUSINESS_RULE_VIOLATION",
		},
		{
			name:       "unexpected failure",
			err:        fmt.Errorf("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inventory := &mockInventory{
				validate: func(application.ValidateOperationCommand) (*application.ValidationResultDTO, error) {
					return nil, tt.err
				},
			}
			router := setupRouter(NewOperationHandlers(&mockCatalog{}, inventory, testLogger))

			w := doRequest(t, router, http.MethodPost, "/api/v1/operations/o1/validate", nil)

			require.Equal(t, tt.wantStatus, w.Code)
			body := decode(t, w)
			assert.Equal(t, tt.wantCode, body["code"])
			assert.Equal(t, "/api/v1/operations/o1/validate", body["path"])
			if tt.check != nil {
				tt.check(t, body)
			}
		})
	}

	t.Run("success", func(t *testing.T) {
		inventory := &mockInventory{
			validate: func(cmd application.ValidateOperationCommand) (*application.ValidationResultDTO, error) {
				assert.Equal(t, "o1", cmd.OperationID)
				return &application.ValidationResultDTO{Outcome: "validated", PreviousStatus: "Ready", Status: "Done"}, nil
			},
		}
		router := setupRouter(NewOperationHandlers(&mockCatalog{}, inventory, testLogger))

		w := doRequest(t, router, http.MethodPost, "/api/v1/operations/o1/validate", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Done", decode(t, w)["status"])
	})
}

func TestOperationHandlers_ListOperations(t *testing.T) {
	var got application.ListOperationsQuery
	catalog := &mockCatalog{
		listOperations: func(q application.ListOperationsQuery) ([]application.OperationDTO, error) {
			got = q
			ops := make([]application.OperationDTO, 25)
			for i := range ops {
				ops[i] = application.OperationDTO{ID: fmt.Sprintf("o%d", i+1)}
			}
			return ops, nil
		},
	}
	router := setupRouter(NewOperationHandlers(catalog, &mockInventory{}, testLogger))

	w := doRequest(t, router, http.MethodGet, "/api/v1/operations?type=Delivery&status=Ready&all=true&page=2", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.OperationDelivery, got.Type)
	assert.Equal(t, domain.StatusReady, got.Status)
	assert.True(t, got.AllWarehouses)

	body := decode(t, w)
	assert.Len(t, body["data"], 5)
	assert.Equal(t, float64(25), body["totalItems"])
	assert.Equal(t, true, body["hasPrev"])
}

func TestOperationHandlers_CancelAndConfirm(t *testing.T) {
	inventory := &mockInventory{
		cancel: func(cmd application.CancelOperationCommand) (*application.OperationDTO, error) {
			return &application.OperationDTO{ID: cmd.OperationID, Status: "Cancelled"}, nil
		},
		confirm: func(application.ConfirmOperationCommand) (*application.OperationDTO, error) {
			return nil, domain.ErrInvalidStatusTransition
		},
	}
	router := setupRouter(NewOperationHandlers(&mockCatalog{}, inventory, testLogger))

	w := doRequest(t, router, http.MethodPost, "/api/v1/operations/o3/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cancelled", decode(t, w)["status"])

	w = doRequest(t, router, http.MethodPost, "/api/v1/operations/o3/confirm", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}
