// Package memory keeps the inventory state in process memory. Every read
// hands out clones, and writes made inside Atomically are staged on a copy
// of the state that is swapped in only when the callback succeeds.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/Daksh-create349/stock-Master/internal/domain"
)

var _ domain.UnitOfWork = (*Store)(nil)

type state struct {
	products     map[string]*domain.Product
	productOrder []string
	operations   map[string]*domain.Operation
	opOrder      []string // newest first
	contacts     map[string]*domain.Contact
	contactOrder []string
	sequences    map[string]int
}

func newState() state {
	return state{
		products:   make(map[string]*domain.Product),
		operations: make(map[string]*domain.Operation),
		contacts:   make(map[string]*domain.Contact),
		sequences:  make(map[string]int),
	}
}

func (s *state) clone() state {
	c := state{
		products:     make(map[string]*domain.Product, len(s.products)),
		productOrder: append([]string(nil), s.productOrder...),
		operations:   make(map[string]*domain.Operation, len(s.operations)),
		opOrder:      append([]string(nil), s.opOrder...),
		contacts:     make(map[string]*domain.Contact, len(s.contacts)),
		contactOrder: append([]string(nil), s.contactOrder...),
		sequences:    make(map[string]int, len(s.sequences)),
	}
	for k, v := range s.products {
		c.products[k] = v.Clone()
	}
	for k, v := range s.operations {
		c.operations[k] = v.Clone()
	}
	for k, v := range s.contacts {
		cp := *v
		c.contacts[k] = &cp
	}
	for k, v := range s.sequences {
		c.sequences[k] = v
	}
	return c
}

// Store is the process-wide inventory state
type Store struct {
	mu    sync.RWMutex
	state state
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{state: newState()}
}

// Atomically runs fn under the write lock against a staged copy of the
// state. The copy replaces the live state only if fn returns nil.
func (s *Store) Atomically(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.state.clone()
	if err := fn(ctx, reposFor(&staged)); err != nil {
		return err
	}

	s.state = staged
	return nil
}

// Products returns a product repository that locks per call
func (s *Store) Products() domain.ProductRepository { return &lockedProducts{store: s} }

// Operations returns an operation repository that locks per call
func (s *Store) Operations() domain.OperationRepository { return &lockedOperations{store: s} }

// Contacts returns a contact repository that locks per call
func (s *Store) Contacts() domain.ContactRepository { return &lockedContacts{store: s} }

// References returns the reference sequence, locking per call
func (s *Store) References() domain.ReferenceSequence { return &lockedSequence{store: s} }

// Counts reports the number of stored records, used by readiness checks
func (s *Store) Counts() (products, operations, contacts int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.products), len(s.state.operations), len(s.state.contacts)
}

func reposFor(st *state) domain.Repositories {
	return domain.Repositories{
		Products:   &productRepo{st: st},
		Operations: &operationRepo{st: st},
		Contacts:   &contactRepo{st: st},
		References: &sequence{st: st},
	}
}

// sequence issues prefix/NNNN references, one counter per prefix
type sequence struct {
	st *state
}

func (q *sequence) Next(prefix string) string {
	q.st.sequences[prefix]++
	return fmt.Sprintf("%s/%04d", prefix, q.st.sequences[prefix])
}

// observe advances the counter for ref's prefix so later references never
// collide with a seeded one.
func (q *sequence) observe(ref string) {
	i := strings.LastIndex(ref, "/")
	if i <= 0 {
		return
	}
	n, err := strconv.Atoi(ref[i+1:])
	if err != nil {
		return
	}
	prefix := ref[:i]
	if n > q.st.sequences[prefix] {
		q.st.sequences[prefix] = n
	}
}

type lockedSequence struct {
	store *Store
}

func (l *lockedSequence) Next(prefix string) string {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return (&sequence{st: &l.store.state}).Next(prefix)
}
