package application

import "github.com/Daksh-create349/stock-Master/internal/domain"

// ToProductDTO converts a domain Product to ProductDTO
func ToProductDTO(p *domain.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:           p.ID,
		Name:         p.Name,
		SKU:          p.SKU,
		Barcode:      p.Barcode,
		Category:     p.Category,
		UOM:          p.UOM,
		Stock:        p.Stock,
		Location:     p.Location,
		Price:        p.Price,
		MinStockRule: p.MinStockRule,
		LowStock:     p.IsLowStock(),
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToProductDTOs converts a slice of products
func ToProductDTOs(products []*domain.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, *ToProductDTO(p))
	}
	return out
}

// ToOperationDTO converts a domain Operation to OperationDTO
func ToOperationDTO(op *domain.Operation) *OperationDTO {
	if op == nil {
		return nil
	}
	items := make([]LineItemDTO, 0, len(op.Items))
	for _, item := range op.Items {
		items = append(items, LineItemDTO{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return &OperationDTO{
		ID:             op.ID,
		Reference:      op.Reference,
		Type:           string(op.Type),
		Status:         op.Status.String(),
		SourceLocation: op.SourceLocation,
		DestLocation:   op.DestLocation,
		Items:          items,
		Date:           op.Date,
		PartnerID:      op.PartnerID,
	}
}

// ToOperationDTOs converts a slice of operations
func ToOperationDTOs(ops []*domain.Operation) []OperationDTO {
	out := make([]OperationDTO, 0, len(ops))
	for _, op := range ops {
		out = append(out, *ToOperationDTO(op))
	}
	return out
}

// ToContactDTO converts a domain Contact to ContactDTO
func ToContactDTO(c *domain.Contact) *ContactDTO {
	if c == nil {
		return nil
	}
	return &ContactDTO{
		ID:      c.ID,
		Name:    c.Name,
		Type:    string(c.Type),
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
	}
}

// ToContactDTOs converts a slice of contacts
func ToContactDTOs(contacts []*domain.Contact) []ContactDTO {
	out := make([]ContactDTO, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, *ToContactDTO(c))
	}
	return out
}

// ToWarehouseDTO converts a registry entry, annotating the distance from
// user when it is known
func ToWarehouseDTO(w domain.WarehouseLocation, user *domain.Coordinate) WarehouseDTO {
	dto := WarehouseDTO{Name: w.Name, Lat: w.Lat, Lng: w.Lng, Radius: w.Radius}
	if user != nil {
		d := w.DistanceFrom(*user)
		inside := d <= w.Radius
		dto.DistanceMeters = &d
		dto.WithinRadius = &inside
	}
	return dto
}

// ToNotificationDTO converts a domain Notification
func ToNotificationDTO(n domain.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID,
		Type:      string(n.Type),
		Message:   n.Message,
		Timestamp: n.Timestamp,
	}
}
