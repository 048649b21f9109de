package analytics

import (
	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
)

// ItemResolution is the outcome of matching order items against the catalog.
type ItemResolution struct {
	// Items are the input items with ProductID filled where a product was found.
	Items       domain.OrderItems
	Adjustments []domain.StockAdjustment
	Unresolved  []domain.OrderItem
}

// ResolveOrderItems matches each item to a product by id, or by exact name
// when the item has no id. Quantities of items resolving to the same product
// are merged into one adjustment, in first-seen order.
func ResolveOrderItems(products []domain.Product, items domain.OrderItems) ItemResolution {
	byID := make(map[int64]domain.Product, len(products))
	byName := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
		if _, seen := byName[p.Name]; !seen {
			byName[p.Name] = p
		}
	}

	res := ItemResolution{
		Items:      make(domain.OrderItems, 0, len(items)),
		Unresolved: make([]domain.OrderItem, 0),
	}
	position := make(map[int64]int)
	for _, item := range items {
		var (
			product domain.Product
			found   bool
		)
		if item.ProductID != nil {
			product, found = byID[*item.ProductID]
		} else {
			product, found = byName[item.ProductName]
		}
		if !found {
			res.Items = append(res.Items, item)
			res.Unresolved = append(res.Unresolved, item)
			continue
		}

		item.ProductID = domain.Int64Ptr(product.ID)
		if item.ProductName == "" {
			item.ProductName = product.Name
		}
		res.Items = append(res.Items, item)

		if idx, ok := position[product.ID]; ok {
			res.Adjustments[idx].Quantity += item.Quantity
			continue
		}
		position[product.ID] = len(res.Adjustments)
		res.Adjustments = append(res.Adjustments, domain.StockAdjustment{
			ProductID: product.ID,
			Quantity:  item.Quantity,
		})
	}
	return res
}
