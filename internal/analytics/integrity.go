package analytics

import (
	"fmt"

	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
)

// UnresolvedReference is a record field that points at nothing.
type UnresolvedReference struct {
	Collection domain.Collection `json:"collection"`
	RecordID   int64             `json:"recordId"`
	Field      string            `json:"field"`
	Reference  string            `json:"reference"`
}

// CheckIntegrity reports every dangling reference in the snapshot. References
// kept only as names (product supplier, order customer without id) are
// checked by exact name.
func CheckIntegrity(s *domain.Snapshot) []UnresolvedReference {
	products := make(map[int64]bool, len(s.Products))
	productNames := make(map[string]bool, len(s.Products))
	for _, p := range s.Products {
		products[p.ID] = true
		productNames[p.Name] = true
	}
	customers := make(map[int64]bool, len(s.Customers))
	customerNames := make(map[string]bool, len(s.Customers))
	for _, c := range s.Customers {
		customers[c.ID] = true
		customerNames[c.Name] = true
	}
	suppliers := make(map[int64]bool, len(s.Suppliers))
	supplierNames := make(map[string]bool, len(s.Suppliers))
	for _, sup := range s.Suppliers {
		suppliers[sup.ID] = true
		supplierNames[sup.Name] = true
	}
	accounts := make(map[int64]bool, len(s.BankAccounts))
	for _, a := range s.BankAccounts {
		accounts[a.ID] = true
	}
	orderNumbers := make(map[string]bool, len(s.SalesOrders))
	orders := make(map[int64]bool, len(s.SalesOrders))
	for _, o := range s.SalesOrders {
		orderNumbers[o.OrderNumber] = true
		orders[o.ID] = true
	}

	out := make([]UnresolvedReference, 0)
	add := func(c domain.Collection, id int64, field string, ref any) {
		out = append(out, UnresolvedReference{Collection: c, RecordID: id, Field: field, Reference: fmt.Sprint(ref)})
	}

	for _, p := range s.Products {
		if p.SupplierID != nil {
			if !suppliers[*p.SupplierID] {
				add(domain.CollectionProducts, p.ID, "supplierId", *p.SupplierID)
			}
		} else if p.Supplier != "" && !supplierNames[p.Supplier] {
			add(domain.CollectionProducts, p.ID, "supplier", p.Supplier)
		}
	}
	for _, a := range s.BankAccounts {
		switch a.OwnerType {
		case domain.OwnerCustomer:
			if !customers[a.OwnerID] {
				add(domain.CollectionBankAccounts, a.ID, "ownerId", a.OwnerID)
			}
		case domain.OwnerSupplier:
			if !suppliers[a.OwnerID] {
				add(domain.CollectionBankAccounts, a.ID, "ownerId", a.OwnerID)
			}
		default:
			add(domain.CollectionBankAccounts, a.ID, "ownerType", a.OwnerType)
		}
	}
	checkItems := func(c domain.Collection, id int64, items domain.OrderItems) {
		for i, item := range items {
			field := fmt.Sprintf("items[%d].productName", i)
			if item.ProductID != nil {
				if !products[*item.ProductID] {
					add(c, id, fmt.Sprintf("items[%d].productId", i), *item.ProductID)
				}
			} else if !productNames[item.ProductName] {
				add(c, id, field, item.ProductName)
			}
		}
	}
	for _, o := range s.SalesOrders {
		if o.CustomerID != nil {
			if !customers[*o.CustomerID] {
				add(domain.CollectionSalesOrders, o.ID, "customerId", *o.CustomerID)
			}
		} else if !customerNames[o.CustomerName] {
			add(domain.CollectionSalesOrders, o.ID, "customerName", o.CustomerName)
		}
		if o.BankAccountID != nil && !accounts[*o.BankAccountID] {
			add(domain.CollectionSalesOrders, o.ID, "bankAccountId", *o.BankAccountID)
		}
		checkItems(domain.CollectionSalesOrders, o.ID, o.Items)
	}
	for _, inv := range s.Invoices {
		if !orderNumbers[inv.OrderNumber] {
			add(domain.CollectionInvoices, inv.ID, "orderNumber", inv.OrderNumber)
		}
		if inv.BankAccountID != nil && !accounts[*inv.BankAccountID] {
			add(domain.CollectionInvoices, inv.ID, "bankAccountId", *inv.BankAccountID)
		}
	}
	for _, t := range s.Transactions {
		if !accounts[t.BankAccountID] {
			add(domain.CollectionTransactions, t.ID, "bankAccountId", t.BankAccountID)
		}
		if t.RelatedOrderID != nil && !orders[*t.RelatedOrderID] {
			add(domain.CollectionTransactions, t.ID, "relatedOrderId", *t.RelatedOrderID)
		}
	}
	return out
}
