package domain

import "fmt"

// ContactType tags a business partner
type ContactType string

const (
	ContactVendor   ContactType = "Vendor"
	ContactCustomer ContactType = "Customer"
	ContactInternal ContactType = "Internal"
)

// ParseContactType validates s
func ParseContactType(s string) (ContactType, error) {
	switch t := ContactType(s); t {
	case ContactVendor, ContactCustomer, ContactInternal:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidContactType, s)
}

// Contact is a vendor, customer or internal party referenced by operations
type Contact struct {
	ID      string      `json:"id" yaml:"id"`
	Name    string      `json:"name" yaml:"name"`
	Type    ContactType `json:"type" yaml:"type"`
	Email   string      `json:"email" yaml:"email"`
	Phone   string      `json:"phone" yaml:"phone"`
	Address string      `json:"address" yaml:"address"`
}
