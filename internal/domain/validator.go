package domain

import (
	"fmt"
	"sort"
	"time"
)

// ValidationOutcome says what a validator call did
type ValidationOutcome string

const (
	// OutcomeShipped: a delivery left the warehouse and its stock was taken.
	OutcomeShipped ValidationOutcome = "shipped"
	// OutcomeCompleted: a receipt, transfer or adjustment was applied and closed.
	OutcomeCompleted ValidationOutcome = "completed"
	// OutcomeDelivered: a shipped delivery was closed without touching stock.
	OutcomeDelivered ValidationOutcome = "delivered"
	// OutcomeUnchanged: the operation was already Done or Cancelled.
	OutcomeUnchanged ValidationOutcome = "unchanged"
)

// Message is the user-facing confirmation for the outcome
func (o ValidationOutcome) Message() string {
	switch o {
	case OutcomeShipped:
		return "Order marked as Shipped."
	case OutcomeCompleted:
		return "Operation validated successfully."
	case OutcomeDelivered:
		return "Delivery marked as completed."
	default:
		return "Operation is already closed."
	}
}

// ProductSet holds working copies of the products an operation references
type ProductSet map[string]*Product

// Validate advances op by one validator step, mutating op and products in
// place. Gates run before any mutation, so on error neither is modified.
func Validate(op *Operation, products ProductSet, fence Geofence, now time.Time) (ValidationOutcome, error) {
	if op.Status.IsTerminal() {
		return OutcomeUnchanged, nil
	}

	if op.Type == OperationDelivery && op.Status == StatusShipped {
		if err := op.TransitionTo(StatusDone); err != nil {
			return "", err
		}
		return OutcomeDelivered, nil
	}

	if err := fence.Check(op.GeofencedWarehouse()); err != nil {
		return "", err
	}

	if op.ConsumesStock() {
		if shortages := Shortages(op, products); len(shortages) > 0 {
			return "", &InsufficientStockError{Shortages: shortages}
		}
	} else {
		for _, item := range op.Items {
			if _, ok := products[item.ProductID]; !ok {
				return "", fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
			}
		}
	}

	next := StatusDone
	outcome := OutcomeCompleted
	if op.Type == OperationDelivery {
		next = StatusShipped
		outcome = OutcomeShipped
	}
	if !op.Status.CanTransitionTo(next) {
		return "", fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, op.Status, next)
	}

	for _, item := range op.Items {
		p := products[item.ProductID]
		switch op.Type {
		case OperationReceipt:
			p.Stock += item.Quantity
		case OperationDelivery:
			p.Stock -= item.Quantity
		case OperationInternal:
			p.Location = op.DestLocation
		}
		p.UpdatedAt = now
	}

	op.Status = next
	return outcome, nil
}

// Shortages lists the lines the current stock cannot cover. Quantities for
// a product repeated across lines are summed.
func Shortages(op *Operation, products ProductSet) []Shortage {
	requested := make(map[string]int)
	var order []string
	for _, item := range op.Items {
		if _, seen := requested[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}
		requested[item.ProductID] += item.Quantity
	}

	var shortages []Shortage
	for _, id := range order {
		p, ok := products[id]
		switch {
		case !ok:
			shortages = append(shortages, Shortage{ProductID: id, Requested: requested[id], Missing: true})
		case p.Stock < requested[id]:
			shortages = append(shortages, Shortage{ProductID: id, Requested: requested[id], Available: p.Stock})
		}
	}
	sort.SliceStable(shortages, func(i, j int) bool { return shortages[i].Missing && !shortages[j].Missing })
	return shortages
}

// Confirm checks availability for a Draft or Waiting operation and moves it
// to Ready, or to Waiting when stock does not cover it yet.
func Confirm(op *Operation, products ProductSet) (OperationStatus, error) {
	if op.Status != StatusDraft && op.Status != StatusWaiting {
		return "", fmt.Errorf("%w: cannot confirm a %s operation", ErrInvalidStatusTransition, op.Status)
	}

	target := StatusReady
	if op.ConsumesStock() && len(Shortages(op, products)) > 0 {
		target = StatusWaiting
	}
	if target == op.Status {
		return target, nil
	}
	if err := op.TransitionTo(target); err != nil {
		return "", err
	}
	return target, nil
}
