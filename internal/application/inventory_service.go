package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Daksh-create349/stock-Master/internal/domain"
	"github.com/Daksh-create349/stock-Master/pkg/logging"
	"github.com/Daksh-create349/stock-Master/pkg/metrics"
)

// InventoryService owns every write to product stock: the operation
// validator and the direct stock change entry point.
type InventoryService struct {
	uow        domain.UnitOfWork
	products   domain.ProductRepository
	warehouses domain.WarehouseRegistry
	fence      GeofenceSource
	publisher  domain.EventPublisher
	notifier   Notifier
	metrics    *metrics.Metrics
	logger     *logging.Logger
	tracer     trace.Tracer
	now        func() time.Time
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	uow domain.UnitOfWork,
	products domain.ProductRepository,
	warehouses domain.WarehouseRegistry,
	fence GeofenceSource,
	publisher domain.EventPublisher,
	notifier Notifier,
	m *metrics.Metrics,
	logger *logging.Logger,
) *InventoryService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &InventoryService{
		uow:        uow,
		products:   products,
		warehouses: warehouses,
		fence:      fence,
		publisher:  publisher,
		notifier:   notifier,
		metrics:    m,
		logger:     logger.WithComponent("inventory"),
		tracer:     otel.Tracer("stockmaster/inventory"),
		now:        time.Now,
	}
}

// loadProducts fetches working copies of every product op references.
// Missing products are left out of the set for the validator to report.
func loadProducts(ctx context.Context, repo domain.ProductRepository, op *domain.Operation) (domain.ProductSet, error) {
	set := make(domain.ProductSet, len(op.Items))
	for _, item := range op.Items {
		if _, seen := set[item.ProductID]; seen {
			continue
		}
		p, err := repo.FindByID(ctx, item.ProductID)
		if errors.Is(err, domain.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		set[item.ProductID] = p
	}
	return set, nil
}

// ValidateOperation advances an operation through the validator. The gates
// and the stock mutation run as one unit of work, so a rejected operation
// leaves both the operation and the products untouched.
func (s *InventoryService) ValidateOperation(ctx context.Context, cmd ValidateOperationCommand) (*ValidationResultDTO, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.ValidateOperation",
		trace.WithAttributes(attribute.String("operation.id", cmd.OperationID)))
	defer span.End()

	fence := s.fence.Geofence()
	now := s.now()

	var (
		target  *domain.Operation
		from    domain.OperationStatus
		outcome domain.ValidationOutcome
		touched []*domain.Product
	)

	err := s.uow.Atomically(ctx, func(ctx context.Context, repos domain.Repositories) error {
		op, err := repos.Operations.FindByID(ctx, cmd.OperationID)
		if err != nil {
			return err
		}
		target = op
		from = op.Status

		products, err := loadProducts(ctx, repos.Products, op)
		if err != nil {
			return err
		}

		outcome, err = domain.Validate(op, products, fence, now)
		if err != nil {
			return err
		}
		if outcome == domain.OutcomeUnchanged {
			return nil
		}

		if outcome != domain.OutcomeDelivered {
			for _, p := range products {
				if err := repos.Products.Save(ctx, p); err != nil {
					return err
				}
				touched = append(touched, p)
			}
		}
		return repos.Operations.Save(ctx, op)
	})

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if target != nil {
			s.reject(ctx, target, err)
		}
		return nil, err
	}

	span.SetAttributes(
		attribute.String("operation.reference", target.Reference),
		attribute.String("validation.outcome", string(outcome)),
	)
	s.metrics.RecordValidation(string(target.Type), string(outcome))

	result := &ValidationResultDTO{
		Operation:      ToOperationDTO(target),
		Outcome:        string(outcome),
		PreviousStatus: from.String(),
		Status:         target.Status.String(),
		Message:        outcome.Message(),
	}
	if outcome == domain.OutcomeUnchanged {
		return result, nil
	}

	s.notifier.Emit(domain.NotificationSuccess, result.Message)
	s.logger.WithOperation(target.ID, target.Reference).Info("Operation validated",
		"type", target.Type,
		"from", from,
		"to", target.Status,
		"outcome", outcome,
	)

	events := []domain.DomainEvent{&domain.OperationValidatedEvent{
		OperationID: target.ID,
		Reference:   target.Reference,
		Type:        target.Type,
		From:        from,
		To:          target.Status,
		Outcome:     outcome,
		Items:       append([]domain.LineItem(nil), target.Items...),
		ValidatedAt: now,
	}}
	if target.Type == domain.OperationDelivery {
		events = append(events, lowStockEvents(touched)...)
	}
	publishAll(ctx, s.publisher, s.logger, events)
	s.refreshLowStock(ctx)

	return result, nil
}

// reject records a validator rejection: a notification, a metric and an event
func (s *InventoryService) reject(ctx context.Context, op *domain.Operation, err error) {
	reason := rejectionReason(err)

	var gv *domain.GeofenceViolationError
	if errors.As(err, &gv) {
		s.metrics.RecordGeofenceRejection(gv.Warehouse)
	}
	s.metrics.RecordRejection(string(op.Type), reason)

	s.notifier.Emit(domain.NotificationError, err.Error())
	s.logger.WithOperation(op.ID, op.Reference).Warn("Operation rejected", "reason", reason, "error", err)

	publishAll(ctx, s.publisher, s.logger, []domain.DomainEvent{&domain.OperationRejectedEvent{
		OperationID: op.ID,
		Reference:   op.Reference,
		Reason:      reason,
		Message:     err.Error(),
		RejectedAt:  s.now(),
	}})
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrGeofenceViolation):
		return "geofence"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, domain.ErrInvalidStatusTransition):
		return "invalid_transition"
	default:
		return "error"
	}
}

// ConfirmOperation moves a Draft or Waiting operation to Ready when stock
// covers it, or to Waiting when it does not yet.
func (s *InventoryService) ConfirmOperation(ctx context.Context, cmd ConfirmOperationCommand) (*OperationDTO, error) {
	var op *domain.Operation
	var from domain.OperationStatus

	err := s.uow.Atomically(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		op, err = repos.Operations.FindByID(ctx, cmd.OperationID)
		if err != nil {
			return err
		}
		from = op.Status

		products, err := loadProducts(ctx, repos.Products, op)
		if err != nil {
			return err
		}
		if _, err := domain.Confirm(op, products); err != nil {
			return err
		}
		if op.Status == from {
			return nil
		}
		return repos.Operations.Save(ctx, op)
	})
	if err != nil {
		return nil, err
	}

	if op.Status != from {
		msg := fmt.Sprintf("%s %s is %s.", op.Type, op.Reference, op.Status)
		kind := domain.NotificationSuccess
		if op.Status == domain.StatusWaiting {
			kind = domain.NotificationWarning
		}
		s.notifier.Emit(kind, msg)
		s.logger.WithOperation(op.ID, op.Reference).Info("Operation confirmed", "from", from, "to", op.Status)
	}
	return ToOperationDTO(op), nil
}

// CancelOperation cancels a Draft, Waiting or Ready operation
func (s *InventoryService) CancelOperation(ctx context.Context, cmd CancelOperationCommand) (*OperationDTO, error) {
	var op *domain.Operation

	err := s.uow.Atomically(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		op, err = repos.Operations.FindByID(ctx, cmd.OperationID)
		if err != nil {
			return err
		}
		if err := op.TransitionTo(domain.StatusCancelled); err != nil {
			return err
		}
		return repos.Operations.Save(ctx, op)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Emit(domain.NotificationInfo, fmt.Sprintf("%s %s cancelled.", op.Type, op.Reference))
	s.logger.WithOperation(op.ID, op.Reference).Info("Operation cancelled")
	publishAll(ctx, s.publisher, s.logger, []domain.DomainEvent{&domain.OperationCancelledEvent{
		OperationID: op.ID,
		Reference:   op.Reference,
		CancelledAt: s.now(),
	}})
	return ToOperationDTO(op), nil
}

// ApplyStockChange is the single entry point for stock writes that bypass
// the validator. Quick adds and adjustments also record a Done Adjustment
// operation so the change shows up in the move history.
func (s *InventoryService) ApplyStockChange(ctx context.Context, cmd StockChangeCommand) (*StockChangeResultDTO, error) {
	if err := checkStockChange(cmd); err != nil {
		return nil, err
	}

	now := s.now()
	var (
		product  *domain.Product
		previous int
		logOp    *domain.Operation
	)

	err := s.uow.Atomically(ctx, func(ctx context.Context, repos domain.Repositories) error {
		var err error
		product, err = repos.Products.FindByID(ctx, cmd.ProductID)
		if err != nil {
			return err
		}

		location := cmd.Location
		if location == "" {
			location = product.Location
		}
		if cmd.Audited && cmd.Source == SourceAdjustment {
			if _, ok := s.warehouses.FindByName(location); !ok {
				return fmt.Errorf("%w: %s", domain.ErrWarehouseNotFound, location)
			}
		}

		previous, err = domain.ApplyStockChange(product, cmd.Mode, cmd.Quantity, cmd.Audited, now)
		if err != nil {
			return err
		}
		if err := repos.Products.Save(ctx, product); err != nil {
			return err
		}

		switch cmd.Source {
		case SourceQuickAdd:
			logOp = &domain.Operation{
				ID:             uuid.NewString(),
				Reference:      repos.References.Next(PrefixQuickAdd),
				Type:           domain.OperationAdjustment,
				Status:         domain.StatusDone,
				SourceLocation: domain.LocationAdjustment,
				DestLocation:   product.Location,
				Items:          []domain.LineItem{{ProductID: product.ID, Quantity: cmd.Quantity}},
				Date:           now,
			}
		case SourceAdjustment:
			logOp = &domain.Operation{
				ID:             uuid.NewString(),
				Reference:      repos.References.Next(PrefixAdjustment),
				Type:           domain.OperationAdjustment,
				Status:         domain.StatusDone,
				SourceLocation: location,
				DestLocation:   location,
				Items:          []domain.LineItem{{ProductID: product.ID, Quantity: domain.LoggedQuantity(cmd.Mode, previous, cmd.Quantity)}},
				Date:           now,
				PartnerID:      AuditPartner,
			}
		}
		if logOp != nil {
			return repos.Operations.Save(ctx, logOp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordStockChange(string(cmd.Source), string(cmd.Mode), cmd.Audited)

	result := &StockChangeResultDTO{
		Product:       ToProductDTO(product),
		PreviousStock: previous,
		NewStock:      product.Stock,
		LogOperation:  ToOperationDTO(logOp),
	}
	switch cmd.Source {
	case SourceAdjustment:
		result.Message = fmt.Sprintf("Stock updated for %s to %d units.", product.Name, product.Stock)
	default:
		result.Message = "Stock adjusted manually."
	}
	if logOp != nil {
		s.notifier.Emit(domain.NotificationInfo, fmt.Sprintf("%s created (%s).", logOp.Type, logOp.Reference))
	}
	s.notifier.Emit(domain.NotificationSuccess, result.Message)

	s.logger.Audit(ctx, "stock."+string(cmd.Source), "product", product.ID, map[string]any{
		"mode":     cmd.Mode,
		"previous": previous,
		"new":      product.Stock,
		"audited":  cmd.Audited,
	})

	events := []domain.DomainEvent{&domain.StockAdjustedEvent{
		ProductID:     product.ID,
		SKU:           product.SKU,
		Location:      product.Location,
		PreviousStock: previous,
		NewStock:      product.Stock,
		Mode:          cmd.Mode,
		Source:        string(cmd.Source),
		Audited:       cmd.Audited,
		AdjustedAt:    now,
	}}
	if logOp != nil {
		events = append(events, &domain.OperationCreatedEvent{
			OperationID: logOp.ID,
			Reference:   logOp.Reference,
			Type:        logOp.Type,
			Status:      logOp.Status,
			CreatedAt:   now,
		})
	}
	events = append(events, lowStockEvents([]*domain.Product{product})...)
	publishAll(ctx, s.publisher, s.logger, events)
	s.refreshLowStock(ctx)

	return result, nil
}

func checkStockChange(cmd StockChangeCommand) error {
	if cmd.ProductID == "" {
		return fmt.Errorf("%w: product id required", domain.ErrProductNotFound)
	}
	if _, err := domain.ParseStockChangeMode(string(cmd.Mode)); err != nil {
		return err
	}
	switch cmd.Source {
	case SourceQuickAdd:
		if cmd.Mode != domain.StockChangeAdd || cmd.Quantity <= 0 {
			return fmt.Errorf("%w: quick add needs a positive quantity", domain.ErrInvalidQuantity)
		}
	case SourceAdjustment, SourceManual:
	default:
		return fmt.Errorf("%w: unknown stock change source %q", domain.ErrInvalidQuantity, cmd.Source)
	}
	return nil
}

// QuickAdd adds quantity units to a product's stock from the product list
func (s *InventoryService) QuickAdd(ctx context.Context, productID string, quantity int) (*StockChangeResultDTO, error) {
	return s.ApplyStockChange(ctx, StockChangeCommand{
		ProductID: productID,
		Mode:      domain.StockChangeAdd,
		Quantity:  quantity,
		Audited:   true,
		Source:    SourceQuickAdd,
	})
}

// SetStock overwrites a product's stock without any check
func (s *InventoryService) SetStock(ctx context.Context, productID string, quantity int) (*StockChangeResultDTO, error) {
	return s.ApplyStockChange(ctx, StockChangeCommand{
		ProductID: productID,
		Mode:      domain.StockChangeSet,
		Quantity:  quantity,
		Source:    SourceManual,
	})
}

func (s *InventoryService) refreshLowStock(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return
	}
	count := 0
	for _, p := range products {
		if p.IsLowStock() {
			count++
		}
	}
	s.metrics.SetLowStockProducts(count)
}
