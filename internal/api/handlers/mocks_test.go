package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Daksh-create349/stock-Master/internal/application"
	"github.com/Daksh-create349/stock-Master/internal/domain"
	"github.com/Daksh-create349/stock-Master/pkg/logging"
	"github.com/Daksh-create349/stock-Master/pkg/middleware"
)

type mockInventory struct {
	validate func(cmd application.ValidateOperationCommand) (*application.ValidationResultDTO, error)
	confirm  func(cmd application.ConfirmOperationCommand) (*application.OperationDTO, error)
	cancel   func(cmd application.CancelOperationCommand) (*application.OperationDTO, error)
	change   func(cmd application.StockChangeCommand) (*application.StockChangeResultDTO, error)
	quickAdd func(productID string, quantity int) (*application.StockChangeResultDTO, error)
	setStock func(productID string, quantity int) (*application.StockChangeResultDTO, error)
}

func (m *mockInventory) ValidateOperation(_ context.Context, cmd application.ValidateOperationCommand) (*application.ValidationResultDTO, error) {
	return m.validate(cmd)
}

func (m *mockInventory) ConfirmOperation(_ context.Context, cmd application.ConfirmOperationCommand) (*application.OperationDTO, error) {
	return m.confirm(cmd)
}

func (m *mockInventory) CancelOperation(_ context.Context, cmd application.CancelOperationCommand) (*application.OperationDTO, error) {
	return m.cancel(cmd)
}

func (m *mockInventory) ApplyStockChange(_ context.Context, cmd application.StockChangeCommand) (*application.StockChangeResultDTO, error) {
	return m.change(cmd)
}

func (m *mockInventory) QuickAdd(_ context.Context, productID string, quantity int) (*application.StockChangeResultDTO, error) {
	return m.quickAdd(productID, quantity)
}

func (m *mockInventory) SetStock(_ context.Context, productID string, quantity int) (*application.StockChangeResultDTO, error) {
	return m.setStock(productID, quantity)
}

type mockCatalog struct {
	createProduct   func(cmd application.CreateProductCommand) (*application.ProductDTO, error)
	getProduct      func(id string) (*application.ProductDTO, error)
	listProducts    func(q application.ListProductsQuery) ([]application.ProductDTO, error)
	createOperation func(cmd application.CreateOperationCommand) (*application.OperationDTO, error)
	getOperation    func(id string) (*application.OperationDTO, error)
	listOperations  func(q application.ListOperationsQuery) ([]application.OperationDTO, error)
	history         func() ([]application.OperationDTO, error)
	createContact   func(cmd application.CreateContactCommand) (*application.ContactDTO, error)
	listContacts    func(q application.ListContactsQuery) ([]application.ContactDTO, error)
	deleteContact   func(id string) error
}

func (m *mockCatalog) CreateProduct(_ context.Context, cmd application.CreateProductCommand) (*application.ProductDTO, error) {
	return m.createProduct(cmd)
}

func (m *mockCatalog) GetProduct(_ context.Context, id string) (*application.ProductDTO, error) {
	return m.getProduct(id)
}

func (m *mockCatalog) ListProducts(_ context.Context, q application.ListProductsQuery) ([]application.ProductDTO, error) {
	return m.listProducts(q)
}

func (m *mockCatalog) CreateOperation(_ context.Context, cmd application.CreateOperationCommand) (*application.OperationDTO, error) {
	return m.createOperation(cmd)
}

func (m *mockCatalog) GetOperation(_ context.Context, id string) (*application.OperationDTO, error) {
	return m.getOperation(id)
}

func (m *mockCatalog) ListOperations(_ context.Context, q application.ListOperationsQuery) ([]application.OperationDTO, error) {
	return m.listOperations(q)
}

func (m *mockCatalog) History(context.Context) ([]application.OperationDTO, error) {
	return m.history()
}

func (m *mockCatalog) CreateContact(_ context.Context, cmd application.CreateContactCommand) (*application.ContactDTO, error) {
	return m.createContact(cmd)
}

func (m *mockCatalog) ListContacts(_ context.Context, q application.ListContactsQuery) ([]application.ContactDTO, error) {
	return m.listContacts(q)
}

func (m *mockCatalog) DeleteContact(_ context.Context, id string) error {
	return m.deleteContact(id)
}

type mockWorkspace struct {
	login      func(cmd application.LoginCommand) (*application.SessionDTO, error)
	session    *application.SessionDTO
	settings   application.SettingsDTO
	update     func(cmd application.UpdateSettingsCommand) (application.SettingsDTO, error)
	warehouses []application.WarehouseDTO
}

func (m *mockWorkspace) Login(_ context.Context, cmd application.LoginCommand) (*application.SessionDTO, error) {
	return m.login(cmd)
}

func (m *mockWorkspace) Logout(context.Context) string {
	m.session = nil
	return "Logged out successfully"
}

func (m *mockWorkspace) Session() (*application.SessionDTO, bool) {
	return m.session, m.session != nil
}

func (m *mockWorkspace) Settings() application.SettingsDTO { return m.settings }

func (m *mockWorkspace) UpdateSettings(_ context.Context, cmd application.UpdateSettingsCommand) (application.SettingsDTO, error) {
	return m.update(cmd)
}

func (m *mockWorkspace) Warehouses() []application.WarehouseDTO { return m.warehouses }

type mockDashboard struct {
	dashboard func() (*application.DashboardDTO, error)
}

func (m *mockDashboard) Dashboard(context.Context) (*application.DashboardDTO, error) {
	return m.dashboard()
}

type mockNotifications struct {
	notes []domain.Notification
}

func (m *mockNotifications) List() []domain.Notification { return m.notes }

func (m *mockNotifications) Dismiss(id string) bool {
	for i, n := range m.notes {
		if n.ID == id {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			return true
		}
	}
	return false
}

type mockAssistant struct {
	summary func() (*application.SummaryDTO, error)
	execute func(command string) (*application.AssistantReplyDTO, error)
}

func (m *mockAssistant) ExecutiveSummary(context.Context) (*application.SummaryDTO, error) {
	return m.summary()
}

func (m *mockAssistant) ExecuteCommand(_ context.Context, command string) (*application.AssistantReplyDTO, error) {
	return m.execute(command)
}

type registrar interface {
	RegisterRoutes(router *gin.RouterGroup)
}

func setupRouter(h registrar) *gin.Engine {
	gin.SetMode(gin.TestMode)
	middleware.InitValidator()
	router := gin.New()
	h.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

var testLogger = logging.Discard()
