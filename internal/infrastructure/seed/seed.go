// Package seed loads the reference warehouses, products, contacts and
// operations the service starts with, plus a deterministic batch of
// generated demo records.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Daksh-create349/stock-Master/internal/domain"
)

//go:embed seed.yaml
var defaultSeed []byte

type seedOperation struct {
	domain.Operation `yaml:",inline"`
	DaysAgo          int `yaml:"daysAgo"`
}

type document struct {
	Warehouses []domain.WarehouseLocation `yaml:"warehouses"`
	Products   []domain.Product           `yaml:"products"`
	Contacts   []domain.Contact           `yaml:"contacts"`
	Operations []seedOperation            `yaml:"operations"`
}

// Dataset is everything the store is primed with
type Dataset struct {
	Warehouses []domain.WarehouseLocation
	Products   []*domain.Product
	Contacts   []*domain.Contact
	Operations []*domain.Operation
}

// Options controls the generated part of the dataset
type Options struct {
	DemoProducts int
	DemoContacts int
	RandomSeed   uint64
	Now          time.Time
}

// DefaultOptions returns the demo volumes the UI was built around
func DefaultOptions() Options {
	return Options{DemoProducts: 150, DemoContacts: 80, RandomSeed: 42}
}

// Default parses the embedded seed file and appends generated records
func Default(opts Options) (*Dataset, error) {
	return Parse(defaultSeed, opts)
}

// Parse decodes a seed document and appends generated records
func Parse(raw []byte, opts Options) (*Dataset, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}

	ds := &Dataset{Warehouses: doc.Warehouses}
	for i := range doc.Products {
		p := doc.Products[i]
		p.UpdatedAt = opts.Now
		ds.Products = append(ds.Products, &p)
	}
	for i := range doc.Contacts {
		c := doc.Contacts[i]
		if _, err := domain.ParseContactType(string(c.Type)); err != nil {
			return nil, fmt.Errorf("contact %s: %w", c.ID, err)
		}
		ds.Contacts = append(ds.Contacts, &c)
	}
	for i := range doc.Operations {
		so := doc.Operations[i]
		op := so.Operation
		if _, err := domain.ParseOperationType(string(op.Type)); err != nil {
			return nil, fmt.Errorf("operation %s: %w", op.ID, err)
		}
		op.Date = opts.Now.AddDate(0, 0, -so.DaysAgo)
		op.Items = append([]domain.LineItem(nil), op.Items...)
		ds.Operations = append(ds.Operations, &op)
	}

	gen := NewGenerator(opts.RandomSeed)
	names := make([]string, 0, len(ds.Warehouses))
	for _, w := range ds.Warehouses {
		names = append(names, w.Name)
	}
	ds.Products = append(ds.Products, gen.Products(len(ds.Products)+1, opts.DemoProducts, names, opts.Now)...)
	ds.Contacts = append(ds.Contacts, gen.Contacts(opts.DemoContacts)...)

	return ds, nil
}

// Apply writes the dataset through a single unit of work. Operations are
// saved in reverse so the newest-first listing follows file order.
func Apply(ctx context.Context, uow domain.UnitOfWork, ds *Dataset) error {
	return uow.Atomically(ctx, func(ctx context.Context, repos domain.Repositories) error {
		for _, p := range ds.Products {
			if err := repos.Products.Save(ctx, p); err != nil {
				return fmt.Errorf("seed product %s: %w", p.ID, err)
			}
		}
		for _, c := range ds.Contacts {
			if err := repos.Contacts.Save(ctx, c); err != nil {
				return fmt.Errorf("seed contact %s: %w", c.ID, err)
			}
		}
		for i := len(ds.Operations) - 1; i >= 0; i-- {
			op := ds.Operations[i]
			if err := repos.Operations.Save(ctx, op); err != nil {
				return fmt.Errorf("seed operation %s: %w", op.ID, err)
			}
		}
		return nil
	})
}
