package domain

import "time"

// Product is a stocked item. Location is a single warehouse name, so one
// record cannot represent units split across sites.
type Product struct {
	ID           string    `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	SKU          string    `json:"sku" yaml:"sku"`
	Barcode      string    `json:"barcode,omitempty" yaml:"barcode"`
	Category     string    `json:"category" yaml:"category"`
	UOM          string    `json:"uom" yaml:"uom"`
	Stock        int       `json:"stock" yaml:"stock"`
	Location     string    `json:"location" yaml:"location"`
	Price        float64   `json:"price" yaml:"price"`
	MinStockRule int       `json:"minStockRule" yaml:"minStockRule"`
	UpdatedAt    time.Time `json:"updatedAt" yaml:"-"`
}

// IsLowStock reports whether stock is at or below the reorder threshold
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStockRule
}

// Clone returns a copy the caller may mutate freely
func (p *Product) Clone() *Product {
	c := *p
	return &c
}
