package analytics

import (
	"strconv"
	"testing"

	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
)

func TestResolveOrderItems(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Name: "Rose Incense Sticks"},
		{ID: 2, Name: "Sandalwood Cones"},
	}
	items := domain.OrderItems{
		{ProductName: "Rose Incense Sticks", Quantity: 3},
		{ProductID: domain.Int64Ptr(2), Quantity: 1},
		{ProductName: "Lavender Candles", Quantity: 4},
		{ProductName: "Rose Incense Sticks", Quantity: 2},
		{ProductID: domain.Int64Ptr(77), ProductName: "Sandalwood Cones", Quantity: 1},
	}

	res := ResolveOrderItems(products, items)

	if len(res.Items) != len(items) {
		t.Fatalf("items = %d, want %d", len(res.Items), len(items))
	}
	if res.Items[0].ProductID == nil || *res.Items[0].ProductID != 1 {
		t.Fatalf("first item not linked to product 1: %+v", res.Items[0])
	}
	if res.Items[1].ProductName != "Sandalwood Cones" {
		t.Fatalf("name not filled from catalog: %+v", res.Items[1])
	}

	want := []domain.StockAdjustment{{ProductID: 1, Quantity: 5}, {ProductID: 2, Quantity: 1}}
	if len(res.Adjustments) != len(want) {
		t.Fatalf("adjustments = %+v, want %+v", res.Adjustments, want)
	}
	for i := range want {
		if res.Adjustments[i] != want[i] {
			t.Fatalf("adjustment %d = %+v, want %+v", i, res.Adjustments[i], want[i])
		}
	}

	// an unknown name and a stale id are both reported
	if len(res.Unresolved) != 2 {
		t.Fatalf("unresolved = %+v, want 2 items", res.Unresolved)
	}
	if res.Unresolved[0].ProductName != "Lavender Candles" {
		t.Fatalf("unexpected unresolved item %+v", res.Unresolved[0])
	}
}

func TestSupplierProductMatching(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Name: "Rose Incense Sticks"},
		{ID: 2, Name: "Sandalwood Cones"},
		{ID: 3, Name: "Roseberry Dhoop"},
	}
	supplier := domain.Supplier{ID: 1, SuppliedProducts: domain.StringList{"rose", "  "}}

	got := SupplierProducts(supplier, products)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("supplier products = %+v", got)
	}

	suppliers := []domain.Supplier{
		supplier,
		{ID: 2, SuppliedProducts: domain.StringList{"Sandalwood Cones and Sticks"}},
		{ID: 3},
	}
	matched := ProductSuppliers(products[1], suppliers)
	if len(matched) != 1 || matched[0].ID != 2 {
		t.Fatalf("product suppliers = %+v", matched)
	}
}

func TestCheckIntegrity(t *testing.T) {
	s := domain.NewSnapshot()
	s.Customers = []domain.Customer{{ID: 1, Name: "John Smith"}}
	s.Suppliers = []domain.Supplier{{ID: 1, Name: "Mysore Fragrances"}}
	s.Products = []domain.Product{
		{ID: 1, Name: "Rose Incense Sticks", Supplier: "Mysore Fragrances"},
		{ID: 2, Name: "Sandalwood Cones", SupplierID: domain.Int64Ptr(5)},
	}
	s.BankAccounts = []domain.BankAccount{
		{ID: 1, OwnerType: domain.OwnerCustomer, OwnerID: 1},
		{ID: 2, OwnerType: domain.OwnerSupplier, OwnerID: 9},
	}
	s.SalesOrders = []domain.SalesOrder{{
		ID:            1,
		OrderNumber:   "SO-001-2026",
		CustomerName:  "Ghost",
		BankAccountID: domain.Int64Ptr(1),
		Items:         domain.OrderItems{{ProductName: "Rose Incense Sticks", Quantity: 1}},
	}}
	s.Invoices = []domain.Invoice{{ID: 1, OrderNumber: "SO-404-2026"}}
	s.Transactions = []domain.Transaction{{ID: 1, BankAccountID: 3, RelatedOrderID: domain.Int64Ptr(1)}}

	refs := CheckIntegrity(s)

	want := map[string]bool{
		"products/2/supplierId":        true,
		"bankAccounts/2/ownerId":       true,
		"salesOrders/1/customerName":   true,
		"invoices/1/orderNumber":       true,
		"transactions/1/bankAccountId": true,
	}
	if len(refs) != len(want) {
		t.Fatalf("got %d references, want %d: %+v", len(refs), len(want), refs)
	}
	for _, r := range refs {
		key := string(r.Collection) + "/" + strconv.FormatInt(r.RecordID, 10) + "/" + r.Field
		if !want[key] {
			t.Errorf("unexpected reference %s (%s)", key, r.Reference)
		}
	}
}
