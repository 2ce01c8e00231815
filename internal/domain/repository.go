package domain

import "context"

// ProductRepository defines product persistence
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	FindAll(ctx context.Context) ([]*Product, error)
}

// OperationRepository defines operation persistence. FindAll returns
// newest first.
type OperationRepository interface {
	Save(ctx context.Context, op *Operation) error
	FindByID(ctx context.Context, id string) (*Operation, error)
	FindAll(ctx context.Context) ([]*Operation, error)
}

// ContactRepository defines contact persistence
type ContactRepository interface {
	Save(ctx context.Context, contact *Contact) error
	FindByID(ctx context.Context, id string) (*Contact, error)
	FindAll(ctx context.Context) ([]*Contact, error)
	Delete(ctx context.Context, id string) error
}

// WarehouseRegistry is the static list of geofenced sites
type WarehouseRegistry interface {
	FindByName(name string) (WarehouseLocation, bool)
	FindAll() []WarehouseLocation
}

// Repositories groups the repositories visible inside a unit of work
type Repositories struct {
	Products   ProductRepository
	Operations OperationRepository
	Contacts   ContactRepository
	References ReferenceSequence
}

// UnitOfWork runs fn with exclusive access to the store. Nothing fn saved
// is kept when it returns an error.
type UnitOfWork interface {
	Atomically(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// ReferenceSequence issues operation references such as WH/IN/0007
type ReferenceSequence interface {
	Next(prefix string) string
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
}
