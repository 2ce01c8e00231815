package application

import (
	"context"
	"sort"
	"time"

	"github.com/Daksh-create349/stock-Master/internal/domain"
	"github.com/Daksh-create349/stock-Master/pkg/metrics"
)

const (
	topCategories    = 5
	activityDays     = 7
	recentOperations = 4
)

// DashboardService computes the KPI board
type DashboardService struct {
	products   domain.ProductRepository
	operations domain.OperationRepository
	metrics    *metrics.Metrics
	now        func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(products domain.ProductRepository, operations domain.OperationRepository, m *metrics.Metrics) *DashboardService {
	return &DashboardService{products: products, operations: operations, metrics: m, now: time.Now}
}

// Dashboard computes the KPIs from the current state
func (s *DashboardService) Dashboard(ctx context.Context) (*DashboardDTO, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	operations, err := s.operations.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	d := &DashboardDTO{
		TotalProducts:    len(products),
		LowStock:         []ProductDTO{},
		RecentOperations: []OperationDTO{},
	}

	for _, p := range products {
		if p.IsLowStock() {
			d.LowStockCount++
			d.LowStock = append(d.LowStock, *ToProductDTO(p))
		}
	}
	d.HealthyStockCount = d.TotalProducts - d.LowStockCount

	for _, op := range operations {
		switch op.Type {
		case domain.OperationReceipt:
			if op.IsPending() {
				d.PendingReceipts++
			}
		case domain.OperationDelivery:
			if op.IsPending() {
				d.PendingDeliveries++
			}
		case domain.OperationInternal:
			d.InternalTransfers++
		}
	}

	d.Categories = categoryBreakdown(products)
	d.Activity = activity(operations, s.now())
	for i := 0; i < len(operations) && i < recentOperations; i++ {
		d.RecentOperations = append(d.RecentOperations, *ToOperationDTO(operations[i]))
	}

	s.metrics.SetLowStockProducts(d.LowStockCount)
	return d, nil
}

// categoryBreakdown counts products per category, keeps the five largest
// and folds the rest into "Others". Ties keep alphabetical order.
func categoryBreakdown(products []*domain.Product) []CategoryCountDTO {
	counts := make(map[string]int)
	for _, p := range products {
		cat := p.Category
		if cat == "" {
			cat = DefaultCategory
		}
		counts[cat]++
	}

	all := make([]CategoryCountDTO, 0, len(counts))
	for name, n := range counts {
		all = append(all, CategoryCountDTO{Name: name, Value: n})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Value != all[j].Value {
			return all[i].Value > all[j].Value
		}
		return all[i].Name < all[j].Name
	})

	if len(all) <= topCategories {
		return all
	}
	others := 0
	for _, c := range all[topCategories:] {
		others += c.Value
	}
	return append(all[:topCategories:topCategories], CategoryCountDTO{Name: "Others", Value: others})
}

// activity counts receipts and deliveries per UTC day over the last week,
// oldest day first
func activity(operations []*domain.Operation, now time.Time) []ActivityDayDTO {
	today := now.UTC().Truncate(24 * time.Hour)
	days := make([]ActivityDayDTO, activityDays)
	index := make(map[string]int, activityDays)
	for i := range days {
		date := today.AddDate(0, 0, i-(activityDays-1)).Format(time.DateOnly)
		days[i].Date = date
		index[date] = i
	}

	for _, op := range operations {
		i, ok := index[op.Date.UTC().Format(time.DateOnly)]
		if !ok {
			continue
		}
		switch op.Type {
		case domain.OperationReceipt:
			days[i].Incoming++
		case domain.OperationDelivery:
			days[i].Outgoing++
		}
	}
	return days
}
