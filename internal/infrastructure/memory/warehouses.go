package memory

import "github.com/Daksh-create349/stock-Master/internal/domain"

var _ domain.WarehouseRegistry = (*WarehouseRegistry)(nil)

// WarehouseRegistry is the fixed list of geofenced sites, in registration order
type WarehouseRegistry struct {
	sites  []domain.WarehouseLocation
	byName map[string]int
}

// NewWarehouseRegistry indexes sites by name. A later duplicate name
// replaces the earlier coordinates.
func NewWarehouseRegistry(sites []domain.WarehouseLocation) *WarehouseRegistry {
	r := &WarehouseRegistry{byName: make(map[string]int, len(sites))}
	for _, s := range sites {
		if i, ok := r.byName[s.Name]; ok {
			r.sites[i] = s
			continue
		}
		r.byName[s.Name] = len(r.sites)
		r.sites = append(r.sites, s)
	}
	return r
}

func (r *WarehouseRegistry) FindByName(name string) (domain.WarehouseLocation, bool) {
	i, ok := r.byName[name]
	if !ok {
		return domain.WarehouseLocation{}, false
	}
	return r.sites[i], true
}

func (r *WarehouseRegistry) FindAll() []domain.WarehouseLocation {
	return append([]domain.WarehouseLocation(nil), r.sites...)
}
