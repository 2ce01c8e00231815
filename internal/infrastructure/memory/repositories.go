package memory

import (
	"context"
	"fmt"

	"github.com/Daksh-create349/stock-Master/internal/domain"
)

// productRepo works on a state the caller already holds the lock for
type productRepo struct {
	st *state
}

func (r *productRepo) Save(_ context.Context, p *domain.Product) error {
	if p == nil || p.ID == "" {
		return fmt.Errorf("memory: product id required")
	}
	if _, exists := r.st.products[p.ID]; !exists {
		r.st.productOrder = append(r.st.productOrder, p.ID)
	}
	r.st.products[p.ID] = p.Clone()
	return nil
}

func (r *productRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.st.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	return p.Clone(), nil
}

func (r *productRepo) FindAll(_ context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(r.st.productOrder))
	for _, id := range r.st.productOrder {
		out = append(out, r.st.products[id].Clone())
	}
	return out, nil
}

type operationRepo struct {
	st *state
}

func (r *operationRepo) Save(_ context.Context, op *domain.Operation) error {
	if op == nil || op.ID == "" {
		return fmt.Errorf("memory: operation id required")
	}
	if _, exists := r.st.operations[op.ID]; !exists {
		r.st.opOrder = append([]string{op.ID}, r.st.opOrder...)
		(&sequence{st: r.st}).observe(op.Reference)
	}
	r.st.operations[op.ID] = op.Clone()
	return nil
}

func (r *operationRepo) FindByID(_ context.Context, id string) (*domain.Operation, error) {
	op, ok := r.st.operations[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrOperationNotFound, id)
	}
	return op.Clone(), nil
}

func (r *operationRepo) FindAll(_ context.Context) ([]*domain.Operation, error) {
	out := make([]*domain.Operation, 0, len(r.st.opOrder))
	for _, id := range r.st.opOrder {
		out = append(out, r.st.operations[id].Clone())
	}
	return out, nil
}

type contactRepo struct {
	st *state
}

func (r *contactRepo) Save(_ context.Context, c *domain.Contact) error {
	if c == nil || c.ID == "" {
		return fmt.Errorf("memory: contact id required")
	}
	if _, exists := r.st.contacts[c.ID]; !exists {
		r.st.contactOrder = append(r.st.contactOrder, c.ID)
	}
	cp := *c
	r.st.contacts[c.ID] = &cp
	return nil
}

func (r *contactRepo) FindByID(_ context.Context, id string) (*domain.Contact, error) {
	c, ok := r.st.contacts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrContactNotFound, id)
	}
	cp := *c
	return &cp, nil
}

func (r *contactRepo) FindAll(_ context.Context) ([]*domain.Contact, error) {
	out := make([]*domain.Contact, 0, len(r.st.contactOrder))
	for _, id := range r.st.contactOrder {
		cp := *r.st.contacts[id]
		out = append(out, &cp)
	}
	return out, nil
}

// Delete removes a contact. Operations that reference it keep the dangling id.
func (r *contactRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.st.contacts[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrContactNotFound, id)
	}
	delete(r.st.contacts, id)
	for i, cid := range r.st.contactOrder {
		if cid == id {
			r.st.contactOrder = append(r.st.contactOrder[:i], r.st.contactOrder[i+1:]...)
			break
		}
	}
	return nil
}

// The locked* wrappers take the store lock around each call for callers
// outside a unit of work.

type lockedProducts struct {
	store *Store
}

func (l *lockedProducts) Save(ctx context.Context, p *domain.Product) error {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return (&productRepo{st: &l.store.state}).Save(ctx, p)
}

func (l *lockedProducts) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	l.store.mu.RLock()
	defer l.store.mu.RUnlock()
	return (&productRepo{st: &l.store.state}).FindByID(ctx, id)
}

func (l *lockedProducts) FindAll(ctx context.Context) ([]*domain.Product, error) {
	l.store.mu.RLock()
	defer l.store.mu.RUnlock()
	return (&productRepo{st: &l.store.state}).FindAll(ctx)
}

type lockedOperations struct {
	store *Store
}

func (l *lockedOperations) Save(ctx context.Context, op *domain.Operation) error {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return (&operationRepo{st: &l.store.state}).Save(ctx, op)
}

func (l *lockedOperations) FindByID(ctx context.Context, id string) (*domain.Operation, error) {
	l.store.mu.RLock()
	defer l.store.mu.RUnlock()
	return (&operationRepo{st: &l.store.state}).FindByID(ctx, id)
}

func (l *lockedOperations) FindAll(ctx context.Context) ([]*domain.Operation, error) {
	l.store.mu.RLock()
	defer l.store.mu.RUnlock()
	return (&operationRepo{st: &l.store.state}).FindAll(ctx)
}

type lockedContacts struct {
	store *Store
}

func (l *lockedContacts) Save(ctx context.Context, c *domain.Contact) error {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return (&contactRepo{st: &l.store.state}).Save(ctx, c)
}

func (l *lockedContacts) FindByID(ctx context.Context, id string) (*domain.Contact, error) {
	l.store.mu.RLock()
	defer l.store.mu.RUnlock()
	return (&contactRepo{st: &l.store.state}).FindByID(ctx, id)
}

func (l *lockedContacts) FindAll(ctx context.Context) ([]*domain.Contact, error) {
	l.store.mu.RLock()
	defer l.store.mu.RUnlock()
	return (&contactRepo{st: &l.store.state}).FindAll(ctx)
}

func (l *lockedContacts) Delete(ctx context.Context, id string) error {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return (&contactRepo{st: &l.store.state}).Delete(ctx, id)
}
