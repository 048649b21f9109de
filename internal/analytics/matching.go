package analytics

import (
	"strings"

	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
)

// SuppliesProduct reports whether one of the supplier's supplied-product
// entries matches the product name. An entry matches when it appears anywhere
// in the product name, or when it contains the product's first word. Both
// comparisons ignore case. "Rose" matches "Rose Incense Sticks" and "Roseberry Dhoop".
func SuppliesProduct(supplier domain.Supplier, product domain.Product) bool {
	name := strings.ToLower(strings.TrimSpace(product.Name))
	if name == "" {
		return false
	}
	firstWord := name
	if fields := strings.Fields(name); len(fields) > 0 {
		firstWord = fields[0]
	}
	for _, entry := range supplier.SuppliedProducts {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		if strings.Contains(name, entry) || strings.Contains(entry, firstWord) {
			return true
		}
	}
	return false
}

// SupplierProducts lists the catalog items a supplier's entries match.
func SupplierProducts(supplier domain.Supplier, products []domain.Product) []domain.Product {
	out := make([]domain.Product, 0)
	for _, p := range products {
		if SuppliesProduct(supplier, p) {
			out = append(out, p)
		}
	}
	return out
}

// ProductSuppliers lists the suppliers whose entries match a product.
func ProductSuppliers(product domain.Product, suppliers []domain.Supplier) []domain.Supplier {
	out := make([]domain.Supplier, 0)
	for _, s := range suppliers {
		if SuppliesProduct(s, product) {
			out = append(out, s)
		}
	}
	return out
}
