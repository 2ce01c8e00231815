package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Daksh-create349/stock-Master/internal/domain"
	"github.com/Daksh-create349/stock-Master/internal/infrastructure/memory"
	"github.com/Daksh-create349/stock-Master/pkg/logging"
)

var fixedNow = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

// Two sites roughly 120km apart
var (
	mumbai = domain.WarehouseLocation{Name: "Mumbai Central", Lat: 19.0760, Lng: 72.8777, Radius: 500}
	pune   = domain.WarehouseLocation{Name: "Pune Hub", Lat: 18.5204, Lng: 73.8567, Radius: 500}
)

type recordingNotifier struct {
	mu    sync.Mutex
	notes []domain.Notification
}

func (r *recordingNotifier) Emit(kind domain.NotificationType, message string) domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := domain.Notification{Type: kind, Message: message, Timestamp: fixedNow}
	r.notes = append(r.notes, n)
	return n
}

func (r *recordingNotifier) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.notes))
	for _, n := range r.notes {
		out = append(out, n.Message)
	}
	return out
}

func (r *recordingNotifier) last() domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notes) == 0 {
		return domain.Notification{}
	}
	return r.notes[len(r.notes)-1]
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.DomainEvent
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, event domain.DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingPublisher) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.EventType())
	}
	return out
}

type fixture struct {
	store     *memory.Store
	registry  *memory.WarehouseRegistry
	workspace *Workspace
	notifier  *recordingNotifier
	publisher *recordingPublisher
	inventory *InventoryService
	catalog   *CatalogService
	dashboard *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := logging.Discard()

	f := &fixture{
		store:     memory.NewStore(),
		registry:  memory.NewWarehouseRegistry([]domain.WarehouseLocation{mumbai, pune}),
		notifier:  &recordingNotifier{},
		publisher: &recordingPublisher{},
	}
	f.workspace = NewWorkspace(WorkspaceConfig{}, f.registry, f.notifier, logger)
	f.workspace.now = func() time.Time { return fixedNow }

	f.inventory = NewInventoryService(f.store, f.store.Products(), f.registry, f.workspace, f.publisher, f.notifier, nil, logger)
	f.inventory.now = func() time.Time { return fixedNow }
	f.catalog = NewCatalogService(f.store, f.store.Products(), f.store.Operations(), f.store.Contacts(), f.registry, f.workspace, f.publisher, f.notifier, logger)
	f.catalog.now = func() time.Time { return fixedNow }
	f.dashboard = NewDashboardService(f.store.Products(), f.store.Operations(), nil)
	f.dashboard.now = func() time.Time { return fixedNow }

	ctx := context.Background()
	for _, p := range []*domain.Product{
		{ID: "p1", Name: "Steel Rods", SKU: "STL-001", Category: "Raw Materials", UOM: "kg", Stock: 100, Location: mumbai.Name, MinStockRule: 20},
		{ID: "p2", Name: "Office Chair", SKU: "FUR-002", Category: "Furniture", UOM: "Units", Stock: 8, Location: mumbai.Name, MinStockRule: 10},
		{ID: "p3", Name: "Copper Wire", SKU: "CU-003", Category: "Raw Materials", UOM: "m", Stock: 500, Location: pune.Name, MinStockRule: 50},
	} {
		require.NoError(t, f.store.Products().Save(ctx, p))
	}
	for _, c := range []*domain.Contact{
		{ID: "c1", Name: "Tata Steel Ltd", Type: domain.ContactVendor, Email: "supply@tatasteel.example"},
		{ID: "c2", Name: "Reliance Retail", Type: domain.ContactCustomer, Email: "orders@reliance.example"},
	} {
		require.NoError(t, f.store.Contacts().Save(ctx, c))
	}
	return f
}

// addOperation stores op directly, bypassing the catalog
func (f *fixture) addOperation(t *testing.T, op *domain.Operation) {
	t.Helper()
	if op.Date.IsZero() {
		op.Date = fixedNow
	}
	require.NoError(t, f.store.Operations().Save(context.Background(), op))
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Products().FindByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func (f *fixture) status(t *testing.T, id string) domain.OperationStatus {
	t.Helper()
	op, err := f.store.Operations().FindByID(context.Background(), id)
	require.NoError(t, err)
	return op.Status
}

func ptr[T any](v T) *T { return &v }
