package seed

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/Daksh-create349/stock-Master/internal/domain"
)

var (
	productCategories = []string{"Raw Material", "Work in Progress", "Finished Goods", "Safety Gear", "Tools", "Packaging", "Office Supplies", "Electronics"}
	productUOMs       = []string{"Units", "Meters", "Kg", "Liters", "Box", "Roll", "Pair"}
	productMaterials  = []string{"Steel", "Wood", "Plastic", "Aluminum", "Copper", "Glass", "Rubber", "Cotton", "Nylon", "Leather"}
	productItems      = []string{"Tube", "Sheet", "Screw", "Bolt", "Nut", "Panel", "Wire", "Cable", "Valve", "Gasket", "Filter", "Paint", "Glue", "Tape", "Box", "Gloves", "Helmet"}
)

type contactTemplate struct {
	suffix string
	kind   domain.ContactType
	areas  []string
}

var contactTemplates = []contactTemplate{
	{"Steel & Alloys", domain.ContactVendor, []string{"Carnac Bunder", "Masjid Bunder", "Kalamboli"}},
	{"Pharma Distributors", domain.ContactVendor, []string{"Andheri MIDC", "Saki Naka", "Dava Bazaar"}},
	{"Textiles Pvt Ltd", domain.ContactVendor, []string{"Kalbadevi", "Dadar Market", "Bhiwandi"}},
	{"Electronics World", domain.ContactVendor, []string{"Lamington Road", "Grant Road", "Manish Market"}},
	{"Polymers & Plast", domain.ContactVendor, []string{"Goregaon East", "Vasai East", "Saki Naka"}},
	{"Logistics Solutions", domain.ContactInternal, []string{"Nhava Sheva", "Bhiwandi", "Taloja"}},
	{"Retail Mart", domain.ContactCustomer, []string{"Bandra West", "Colaba", "Juhu"}},
	{"Supermarkets", domain.ContactCustomer, []string{"Thane West", "Kalyan", "Borivali"}},
	{"Builders & Developers", domain.ContactCustomer, []string{"Worli", "Lower Parel", "Navi Mumbai"}},
	{"Enterprises", domain.ContactVendor, []string{"Kurla West", "Ghatkopar", "Sion"}},
	{"Trading Co", domain.ContactVendor, []string{"Masjid Bunder", "Crawford Market", "Byculla"}},
	{"Tech Solutions", domain.ContactCustomer, []string{"Powai", "Airoli Mindspace", "Malad Mindspace"}},
	{"Automobiles", domain.ContactCustomer, []string{"Kurla", "Andheri West", "Worli Naka"}},
	{"Chemicals Corp", domain.ContactVendor, []string{"Turbhe MIDC", "Mahape", "Rabale"}},
	{"Packaging Industries", domain.ContactVendor, []string{"Vasai", "Palghar", "Bhiwandi"}},
}

var contactPrefixes = []string{
	"Ramesh", "Suresh", "Jayant", "Aditya", "Vijay", "Ketan", "Rajesh", "Amit", "Sanjay", "Manoj",
	"Pooja", "Deepak", "Anil", "Sunil", "Chetan", "Nitin", "Gaurav", "Rahul", "Prakash", "Vinay",
	"Om", "Sai", "Shree", "Royal", "Apex", "Zenith", "Global", "National", "Bombay", "Maharashtra",
	"United", "Prime", "Star", "Delta", "Sigma", "Alpha", "Classic", "Modern", "Metro", "Urban",
}

// Generator produces demo records. The same seed yields the same records.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator for seed
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func pick[T any](g *Generator, items []T) T {
	return items[g.rng.IntN(len(items))]
}

// Products generates count products with ids p{startID}.., spread across
// warehouses.
func (g *Generator) Products(startID, count int, warehouses []string, now time.Time) []*domain.Product {
	if count <= 0 || len(warehouses) == 0 {
		return nil
	}

	out := make([]*domain.Product, 0, count)
	for i := 0; i < count; i++ {
		material := pick(g, productMaterials)
		item := pick(g, productItems)
		category := pick(g, productCategories)

		out = append(out, &domain.Product{
			ID:           fmt.Sprintf("p%d", startID+i),
			Name:         fmt.Sprintf("%s %s %d", material, item, g.rng.IntN(100)),
			SKU:          fmt.Sprintf("%s-%d", strings.ToUpper(category[:2]), 10000+g.rng.IntN(90000)),
			Barcode:      fmt.Sprintf("%d", 10000000+g.rng.IntN(90000000)),
			Category:     category,
			UOM:          pick(g, productUOMs),
			Stock:        g.rng.IntN(1000),
			Location:     pick(g, warehouses),
			Price:        math.Round((g.rng.Float64()*500+1)*100) / 100,
			MinStockRule: g.rng.IntN(50) + 5,
			UpdatedAt:    now,
		})
	}
	return out
}

// Contacts generates count Mumbai-area partners with ids c-mum-N
func (g *Generator) Contacts(count int) []*domain.Contact {
	out := make([]*domain.Contact, 0, max(count, 0))
	for i := 0; i < count; i++ {
		tpl := pick(g, contactTemplates)
		prefix := pick(g, contactPrefixes)
		domainPart := strings.ToLower(strings.ReplaceAll(prefix, " ", "")) + strings.ToLower(strings.Fields(tpl.suffix)[0])

		out = append(out, &domain.Contact{
			ID:      fmt.Sprintf("c-mum-%d", i),
			Name:    prefix + " " + tpl.suffix,
			Type:    tpl.kind,
			Email:   "contact@" + domainPart + ".com",
			Phone:   fmt.Sprintf("+91-%d", 9000000000+g.rng.Int64N(999999999)),
			Address: fmt.Sprintf("Shop %d, %s, Mumbai", g.rng.IntN(500)+1, pick(g, tpl.areas)),
		})
	}
	return out
}
