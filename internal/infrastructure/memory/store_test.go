package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Daksh-create349/stock-Master/internal/domain"
)

func seededStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Products().Save(ctx, &domain.Product{ID: "p1", Name: "Steel Rods", Stock: 100}))
	require.NoError(t, s.Products().Save(ctx, &domain.Product{ID: "p3", Name: "Office Chair", Stock: 8}))
	require.NoError(t, s.Operations().Save(ctx, &domain.Operation{ID: "op1", Reference: "WH/IN/0001"}))
	require.NoError(t, s.Operations().Save(ctx, &domain.Operation{ID: "op2", Reference: "WH/OUT/0005"}))
	return s
}

func TestStore_ReadsReturnClones(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	p, err := s.Products().FindByID(ctx, "p1")
	require.NoError(t, err)
	p.Stock = 0

	again, err := s.Products().FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 100, again.Stock)
}

func TestStore_OrderSemantics(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	products, err := s.Products().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "p1", products[0].ID, "products keep insertion order")

	ops, err := s.Operations().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, "op2", ops[0].ID, "operations are newest first")
}

func TestStore_AtomicallyRollsBackOnError(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Atomically(ctx, func(ctx context.Context, repos domain.Repositories) error {
		p, err := repos.Products.FindByID(ctx, "p1")
		require.NoError(t, err)
		p.Stock = 1
		require.NoError(t, repos.Products.Save(ctx, p))
		_ = repos.References.Next("WH/IN")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, err := s.Products().FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 100, p.Stock)
	assert.Equal(t, "WH/IN/0002", s.References().Next("WH/IN"))
}

func TestStore_AtomicallyCommits(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	err := s.Atomically(ctx, func(ctx context.Context, repos domain.Repositories) error {
		p, err := repos.Products.FindByID(ctx, "p3")
		if err != nil {
			return err
		}
		p.Stock = 3
		return repos.Products.Save(ctx, p)
	})
	require.NoError(t, err)

	p, err := s.Products().FindByID(ctx, "p3")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stock)
}

func TestStore_AtomicallyHonoursCancelledContext(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.Atomically(ctx, func(context.Context, domain.Repositories) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestStore_ReferencesContinueFromSeed(t *testing.T) {
	s := seededStore(t)

	assert.Equal(t, "WH/IN/0002", s.References().Next("WH/IN"))
	assert.Equal(t, "WH/OUT/0006", s.References().Next("WH/OUT"))
	assert.Equal(t, "ADJ/QUICK/0001", s.References().Next("ADJ/QUICK"))
	assert.Equal(t, "ADJ/QUICK/0002", s.References().Next("ADJ/QUICK"))
}

func TestStore_ConcurrentReferencesAreUnique(t *testing.T) {
	s := NewStore()
	const n = 200

	var wg sync.WaitGroup
	refs := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			refs <- s.References().Next("INV/ADJ")
		}()
	}
	wg.Wait()
	close(refs)

	seen := make(map[string]bool, n)
	for r := range refs {
		assert.False(t, seen[r], "duplicate reference %s", r)
		seen[r] = true
	}
	assert.Len(t, seen, n)
}

func TestStore_ContactDelete(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Contacts().Save(ctx, &domain.Contact{ID: "c1", Name: "Tata Steel"}))
	require.NoError(t, s.Contacts().Save(ctx, &domain.Contact{ID: "c2", Name: "Reliance Retail"}))

	require.NoError(t, s.Contacts().Delete(ctx, "c1"))
	assert.ErrorIs(t, s.Contacts().Delete(ctx, "c1"), domain.ErrContactNotFound)

	all, err := s.Contacts().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "c2", all[0].ID)
}

func TestStore_NotFound(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.Products().FindByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	_, err = s.Operations().FindByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrOperationNotFound)
}

func TestWarehouseRegistry(t *testing.T) {
	r := NewWarehouseRegistry([]domain.WarehouseLocation{
		{Name: "Main Warehouse", Lat: 40.7128, Lng: -74.0060, Radius: 500},
		{Name: "Production Floor", Lat: 34.0522, Lng: -118.2437, Radius: 300},
		{Name: "Main Warehouse", Lat: 1, Lng: 1, Radius: 10},
	})

	all := r.FindAll()
	require.Len(t, all, 2)
	assert.Equal(t, "Main Warehouse", all[0].Name)

	w, ok := r.FindByName("Main Warehouse")
	require.True(t, ok)
	assert.Equal(t, 10.0, w.Radius)

	_, ok = r.FindByName("Nowhere")
	assert.False(t, ok)
}
