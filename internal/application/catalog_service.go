package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Daksh-create349/stock-Master/internal/domain"
	"github.com/Daksh-create349/stock-Master/pkg/errors"
	"github.com/Daksh-create349/stock-Master/pkg/logging"
)

// Defaults applied to products created without a category or unit
const (
	DefaultCategory = "Uncategorized"
	DefaultUOM      = "Units"
)

// CatalogService handles products, operations and contacts outside the
// validator
type CatalogService struct {
	uow        domain.UnitOfWork
	products   domain.ProductRepository
	operations domain.OperationRepository
	contacts   domain.ContactRepository
	warehouses domain.WarehouseRegistry
	session    SessionSource
	publisher  domain.EventPublisher
	notifier   Notifier
	logger     *logging.Logger
	now        func() time.Time
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	uow domain.UnitOfWork,
	products domain.ProductRepository,
	operations domain.OperationRepository,
	contacts domain.ContactRepository,
	warehouses domain.WarehouseRegistry,
	session SessionSource,
	publisher domain.EventPublisher,
	notifier Notifier,
	logger *logging.Logger,
) *CatalogService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &CatalogService{
		uow:        uow,
		products:   products,
		operations: operations,
		contacts:   contacts,
		warehouses: warehouses,
		session:    session,
		publisher:  publisher,
		notifier:   notifier,
		logger:     logger.WithComponent("catalog"),
		now:        time.Now,
	}
}

// CreateProduct adds a product. SKUs must be unique.
func (s *CatalogService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (*ProductDTO, error) {
	name := strings.TrimSpace(cmd.Name)
	sku := strings.TrimSpace(cmd.SKU)
	if name == "" || sku == "" {
		return nil, errors.ErrValidation("name and sku are required")
	}
	if cmd.Stock < 0 || cmd.MinStockRule < 0 || cmd.Price < 0 {
		return nil, errors.ErrValidation("stock, price and minStockRule cannot be negative")
	}

	location := cmd.Location
	if location == "" {
		location = s.session.DefaultWarehouse()
	}
	if _, ok := s.warehouses.FindByName(location); !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrWarehouseNotFound, location)
	}

	product := &domain.Product{
		ID:           uuid.NewString(),
		Name:         name,
		SKU:          sku,
		Barcode:      cmd.Barcode,
		Category:     orDefault(cmd.Category, DefaultCategory),
		UOM:          orDefault(cmd.UOM, DefaultUOM),
		Stock:        cmd.Stock,
		Location:     location,
		Price:        cmd.Price,
		MinStockRule: cmd.MinStockRule,
		UpdatedAt:    s.now(),
	}

	err := s.uow.Atomically(ctx, func(ctx context.Context, repos domain.Repositories) error {
		existing, err := repos.Products.FindAll(ctx)
		if err != nil {
			return err
		}
		for _, p := range existing {
			if strings.EqualFold(p.SKU, sku) {
				return errors.ErrConflict(fmt.Sprintf("a product with SKU %s already exists", sku))
			}
		}
		return repos.Products.Save(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	s.announceProduct(ctx, product)
	return ToProductDTO(product), nil
}

func (s *CatalogService) announceProduct(ctx context.Context, product *domain.Product) {
	s.notifier.Emit(domain.NotificationSuccess, fmt.Sprintf("Product %s created.", product.Name))
	s.logger.Info("Product created", "productId", product.ID, "sku", product.SKU, "location", product.Location)

	events := []domain.DomainEvent{&domain.ProductCreatedEvent{
		ProductID: product.ID,
		SKU:       product.SKU,
		Name:      product.Name,
		Location:  product.Location,
		Stock:     product.Stock,
		CreatedAt: product.UpdatedAt,
	}}
	events = append(events, lowStockEvents([]*domain.Product{product})...)
	publishAll(ctx, s.publisher, s.logger, events)
}

// GetProduct returns one product
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*ProductDTO, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductDTO(p), nil
}

// ListProducts returns products in catalog order. Search matches name, SKU
// or barcode, case-insensitively.
func (s *CatalogService) ListProducts(ctx context.Context, query ListProductsQuery) ([]ProductDTO, error) {
	all, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(query.Search))
	filtered := all[:0]
	for _, p := range all {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.SKU), term) &&
			!strings.Contains(strings.ToLower(p.Barcode), term) {
			continue
		}
		if query.Category != "" && p.Category != query.Category {
			continue
		}
		if query.Location != "" && p.Location != query.Location {
			continue
		}
		if query.LowStock && !p.IsLowStock() {
			continue
		}
		filtered = append(filtered, p)
	}
	return ToProductDTOs(filtered), nil
}

// CreateOperation records a Draft operation. Blank lines are dropped;
// locations left empty follow the type and the active warehouse.
func (s *CatalogService) CreateOperation(ctx context.Context, cmd CreateOperationCommand) (*OperationDTO, error) {
	if _, err := domain.ParseOperationType(string(cmd.Type)); err != nil {
		return nil, err
	}

	source, dest, err := s.resolveLocations(cmd)
	if err != nil {
		return nil, err
	}

	items := make([]domain.LineItem, 0, len(cmd.Items))
	for _, item := range cmd.Items {
		if item.ProductID == "" {
			continue
		}
		items = append(items, item)
	}

	op := &domain.Operation{
		ID:             uuid.NewString(),
		Type:           cmd.Type,
		Status:         domain.StatusDraft,
		SourceLocation: source,
		DestLocation:   dest,
		Items:          items,
		Date:           s.now(),
		PartnerID:      cmd.PartnerID,
	}
	if err := op.CheckItems(); err != nil {
		return nil, err
	}

	err = s.uow.Atomically(ctx, func(ctx context.Context, repos domain.Repositories) error {
		if op.PartnerID != "" {
			if _, err := repos.Contacts.FindByID(ctx, op.PartnerID); err != nil {
				return err
			}
		}
		op.Reference = repos.References.Next(orDefault(cmd.ReferencePrefix, op.Type.ReferencePrefix()))
		return repos.Operations.Save(ctx, op)
	})
	if err != nil {
		return nil, err
	}

	s.announceOperation(ctx, op)
	return ToOperationDTO(op), nil
}

func (s *CatalogService) announceOperation(ctx context.Context, op *domain.Operation) {
	s.notifier.Emit(domain.NotificationInfo, fmt.Sprintf("%s created (%s).", op.Type, op.Reference))
	s.logger.WithOperation(op.ID, op.Reference).Info("Operation created",
		"type", op.Type,
		"source", op.SourceLocation,
		"dest", op.DestLocation,
		"items", len(op.Items),
	)
	publishAll(ctx, s.publisher, s.logger, []domain.DomainEvent{&domain.OperationCreatedEvent{
		OperationID: op.ID,
		Reference:   op.Reference,
		Type:        op.Type,
		Status:      op.Status,
		CreatedAt:   op.Date,
	}})
}

func (s *CatalogService) resolveLocations(cmd CreateOperationCommand) (string, string, error) {
	wh := s.session.DefaultWarehouse()
	source, dest := cmd.SourceLocation, cmd.DestLocation

	switch cmd.Type {
	case domain.OperationReceipt:
		source = orDefault(source, domain.LocationVendor)
		dest = orDefault(dest, wh)
	case domain.OperationDelivery:
		source = orDefault(source, wh)
		dest = orDefault(dest, domain.LocationCustomer)
	case domain.OperationInternal:
		source = orDefault(source, wh)
		if dest == "" {
			return "", "", errors.ErrValidationWithFields("destination required", map[string]string{"destLocation": "required for internal transfers"})
		}
	case domain.OperationAdjustment:
		source = orDefault(source, wh)
		dest = orDefault(dest, source)
	}

	if source == "" || dest == "" {
		return "", "", errors.ErrValidation("no warehouse available for the operation")
	}
	return source, dest, nil
}

// GetOperation returns one operation
func (s *CatalogService) GetOperation(ctx context.Context, id string) (*OperationDTO, error) {
	op, err := s.operations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToOperationDTO(op), nil
}

// ListOperations returns operations newest first
func (s *CatalogService) ListOperations(ctx context.Context, query ListOperationsQuery) ([]OperationDTO, error) {
	all, err := s.operations.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	warehouse := query.Warehouse
	if warehouse == "" && !query.AllWarehouses {
		warehouse = s.session.ActiveWarehouse()
	}

	filtered := all[:0]
	for _, op := range all {
		if query.Type != "" && op.Type != query.Type {
			continue
		}
		if query.Status != "" && op.Status != query.Status {
			continue
		}
		if warehouse != "" && !query.AllWarehouses && !op.TouchesWarehouse(warehouse) {
			continue
		}
		filtered = append(filtered, op)
	}
	return ToOperationDTOs(filtered), nil
}

// History returns the Done and Shipped operations, newest first
func (s *CatalogService) History(ctx context.Context) ([]OperationDTO, error) {
	all, err := s.operations.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	done := all[:0]
	for _, op := range all {
		if op.IsHistorical() {
			done = append(done, op)
		}
	}
	return ToOperationDTOs(done), nil
}

// CreateContact adds a partner
func (s *CatalogService) CreateContact(ctx context.Context, cmd CreateContactCommand) (*ContactDTO, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, errors.ErrValidation("name is required")
	}
	kind, err := domain.ParseContactType(string(cmd.Type))
	if err != nil {
		return nil, err
	}

	contact := &domain.Contact{
		ID:      uuid.NewString(),
		Name:    name,
		Type:    kind,
		Email:   strings.TrimSpace(cmd.Email),
		Phone:   strings.TrimSpace(cmd.Phone),
		Address: strings.TrimSpace(cmd.Address),
	}
	if err := s.contacts.Save(ctx, contact); err != nil {
		return nil, err
	}

	s.notifier.Emit(domain.NotificationSuccess, fmt.Sprintf("Contact %s added.", contact.Name))
	s.logger.Info("Contact created", "contactId", contact.ID, "type", contact.Type)
	return ToContactDTO(contact), nil
}

// ListContacts returns contacts in creation order. Search matches name or
// email, case-insensitively.
func (s *CatalogService) ListContacts(ctx context.Context, query ListContactsQuery) ([]ContactDTO, error) {
	all, err := s.contacts.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(query.Search))
	filtered := all[:0]
	for _, c := range all {
		if term != "" &&
			!strings.Contains(strings.ToLower(c.Name), term) &&
			!strings.Contains(strings.ToLower(c.Email), term) {
			continue
		}
		if query.Type != "" && c.Type != query.Type {
			continue
		}
		filtered = append(filtered, c)
	}
	return ToContactDTOs(filtered), nil
}

// DeleteContact removes a partner. Operations keep the dangling partner id.
func (s *CatalogService) DeleteContact(ctx context.Context, id string) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.Emit(domain.NotificationInfo, "Contact removed.")
	s.logger.Info("Contact removed", "contactId", id)
	return nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
