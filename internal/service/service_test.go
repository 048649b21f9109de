package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andresuchdata/agarbatti/backend-go/internal/blob"
	"github.com/andresuchdata/agarbatti/backend-go/internal/config"
	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
	"github.com/andresuchdata/agarbatti/backend-go/internal/repository/local"
	"github.com/shopspring/decimal"
)

func testClock() time.Time {
	return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
}

func newTestStore(t *testing.T) *local.Store {
	t.Helper()
	s, err := local.Open(context.Background(), blob.NewMemory(), local.WithClock(testClock))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireFields(t *testing.T, err error, fields ...string) {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	for _, f := range fields {
		if _, ok := verr.Fields[f]; !ok {
			t.Fatalf("field %q missing from %v", f, verr.Fields)
		}
	}
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewOrderService(store, NewValidator("IN"))

	orderDate := domain.NewDate(2026, time.March, 1)
	placement, err := svc.PlaceOrder(ctx, PlaceOrderRequest{
		CustomerID: domain.Int64Ptr(1),
		OrderDate:  &orderDate,
		Items: []domain.OrderItem{
			{ProductName: "Rose Incense Sticks", Quantity: 2, Price: dec("12.50")},
			{ProductName: "Lavender Candles", Quantity: 1, Price: dec("5")},
		},
		BankAccountID: domain.Int64Ptr(1),
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	order := placement.Order
	if order.OrderNumber != "SO-003-2026" {
		t.Errorf("order number = %s", order.OrderNumber)
	}
	if order.CustomerName != "John Smith" || order.CompanyName != "Smith Wellness Store" {
		t.Errorf("customer not filled from record: %+v", order)
	}
	if !order.TotalAmount.Equal(dec("30")) {
		t.Errorf("total = %s, want 30", order.TotalAmount)
	}
	if order.Status != domain.OrderPending {
		t.Errorf("status = %s", order.Status)
	}

	inv := placement.Invoice
	if inv.OrderNumber != order.OrderNumber || inv.InvoiceNumber != "INV-003-2026" {
		t.Errorf("invoice = %s for %s", inv.InvoiceNumber, inv.OrderNumber)
	}
	if inv.Status != domain.InvoicePending || !inv.Amount.Equal(order.TotalAmount) {
		t.Errorf("invoice status/amount = %s %s", inv.Status, inv.Amount)
	}
	if inv.DueDate.String() != "2026-03-31" {
		t.Errorf("invoice due = %s, want 2026-03-31", inv.DueDate)
	}

	if len(placement.Unresolved) != 1 || placement.Unresolved[0].ProductName != "Lavender Candles" {
		t.Fatalf("unresolved = %+v", placement.Unresolved)
	}

	rose, _ := store.GetProduct(ctx, 1)
	if rose.StockQuantity != 148 {
		t.Errorf("rose stock = %d, want 148", rose.StockQuantity)
	}
}

func TestPlaceOrderRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewOrderService(store, NewValidator("IN"))

	_, err := svc.PlaceOrder(ctx, PlaceOrderRequest{CustomerName: "John Smith"})
	requireFields(t, err, "items")

	_, err = svc.PlaceOrder(ctx, PlaceOrderRequest{
		CustomerName: "John Smith",
		Items:        []domain.OrderItem{{ProductName: "Rose Incense Sticks", Quantity: 0, Price: dec("-1")}},
	})
	requireFields(t, err, "items[0].quantity", "items[0].price")

	_, err = svc.PlaceOrder(ctx, PlaceOrderRequest{
		CustomerID: domain.Int64Ptr(77),
		Items:      []domain.OrderItem{{ProductName: "Rose Incense Sticks", Quantity: 1, Price: dec("1")}},
	})
	requireFields(t, err, "customerId")

	orders, _ := store.ListSalesOrders(ctx)
	if len(orders) != 2 {
		t.Fatalf("rejected orders were written: %d orders", len(orders))
	}
}

func TestCatalogValidation(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewCatalogService(store, NewValidator("IN"))

	err := svc.CreateProduct(ctx, &domain.Product{Name: "Camphor", CostPrice: dec("10"), SellingPrice: dec("10")})
	requireFields(t, err, "sellingPrice")

	p := &domain.Product{Name: "Camphor", CostPrice: dec("10"), SellingPrice: dec("14"), StockQuantity: 30}
	if err := svc.CreateProduct(ctx, p); err != nil {
		t.Fatal(err)
	}
	if p.ID != 6 {
		t.Fatalf("product id = %d, want 6", p.ID)
	}

	// price edits after creation are not held to the margin rule
	lower := dec("9")
	if _, err := svc.UpdateProduct(ctx, p.ID, domain.ProductPatch{SellingPrice: &lower}); err != nil {
		t.Fatal(err)
	}

	c := &domain.Customer{Name: "Meera Iyer", Phone: "98450 12345"}
	if err := svc.CreateCustomer(ctx, c); err != nil {
		t.Fatal(err)
	}
	if c.Phone != "+919845012345" {
		t.Fatalf("phone = %s, want E.164", c.Phone)
	}

	err = svc.CreateCustomer(ctx, &domain.Customer{Name: "Bad", Phone: "12", Email: "nope"})
	requireFields(t, err, "phone", "email")
}

func TestCreateBankAccount(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewCatalogService(store, NewValidator("IN"))

	err := svc.CreateBankAccount(ctx, &domain.BankAccount{
		BankName: "Axis Bank", AccountNumber: "9170", OwnerType: domain.OwnerSupplier, OwnerID: 42,
	})
	requireFields(t, err, "ownerId")

	err = svc.CreateBankAccount(ctx, &domain.BankAccount{
		BankName: "Axis Bank", AccountNumber: "9170", IFSCCode: "utib123", OwnerType: domain.OwnerSupplier, OwnerID: 1,
	})
	requireFields(t, err, "ifscCode")

	a := &domain.BankAccount{
		BankName: "Axis Bank", AccountNumber: "9170", IFSCCode: "utib0000917", OwnerType: domain.OwnerSupplier, OwnerID: 2, IsActive: true,
	}
	if err := svc.CreateBankAccount(ctx, a); err != nil {
		t.Fatal(err)
	}
	if a.IFSCCode != "UTIB0000917" || a.ID != 4 {
		t.Fatalf("unexpected account %+v", a)
	}

	owned, err := svc.ListBankAccounts(ctx, domain.OwnerSupplier, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(owned) != 1 || owned[0].ID != 4 {
		t.Fatalf("supplier 2 accounts = %+v", owned)
	}
}

func TestLedger(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewLedgerService(store, NewValidator("IN"))

	err := svc.CreateTransaction(ctx, &domain.Transaction{BankAccountID: 99, Type: domain.TransactionSale, Amount: dec("1")})
	requireFields(t, err, "bankAccountId")

	txn := &domain.Transaction{BankAccountID: 1, Type: domain.TransactionRefund, Amount: dec("-20")}
	if err := svc.CreateTransaction(ctx, txn); err != nil {
		t.Fatal(err)
	}
	if txn.TransactionNumber != "TXN-004-2026" || txn.Status != domain.TransactionCompleted {
		t.Fatalf("unexpected transaction %+v", txn)
	}

	paid := domain.InvoiceStatus("paid")
	inv, err := svc.UpdateInvoice(ctx, 2, domain.InvoicePatch{Status: &paid})
	if err != nil {
		t.Fatal(err)
	}
	if inv.Status != domain.InvoicePaid {
		t.Fatalf("status = %s", inv.Status)
	}

	bogus := domain.InvoiceStatus("settled")
	_, err = svc.UpdateInvoice(ctx, 2, domain.InvoicePatch{Status: &bogus})
	requireFields(t, err, "status")

	manual := &domain.Invoice{
		CustomerName: "Sarah Johnson",
		InvoiceDate:  domain.NewDate(2026, time.February, 1),
		Items:        domain.OrderItems{{ProductName: "Jasmine Dhoop", Quantity: 2, Price: dec("29.99")}},
	}
	if err := svc.CreateInvoice(ctx, manual); err != nil {
		t.Fatal(err)
	}
	if !manual.Amount.Equal(dec("59.98")) || manual.DueDate.String() != "2026-03-03" || manual.InvoiceNumber != "INV-003-2026" {
		t.Fatalf("unexpected invoice %+v", manual)
	}
}

func TestInsights(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewInsightService(store, config.AnalyticsConfig{})

	low, err := svc.LowStock(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if low.Threshold != 20 || len(low.Products) != 2 {
		t.Fatalf("low stock = %+v", low)
	}

	deals, err := svc.CustomerDeals(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !deals.Total.Equal(dec("156.50")) || deals.OrderCount != 1 {
		t.Fatalf("customer deals = %+v", deals)
	}

	supplier, err := svc.SupplierDeals(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	// (200-150)*8 + (200-80)*15 + (200-40)*45
	if !supplier.Total.Equal(dec("9400")) || !supplier.Estimated {
		t.Fatalf("supplier deals = %+v", supplier)
	}

	summary, err := svc.BankAccountSummary(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !summary.TotalOutflow.Equal(dec("1200")) || !summary.NetBalance.Equal(dec("-1200")) {
		t.Fatalf("summary = %+v", summary)
	}

	revenue, err := svc.BankAccountRevenue(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !revenue.Revenue.Equal(dec("89.97")) {
		t.Fatalf("revenue = %s", revenue.Revenue)
	}

	products, err := svc.SupplierProducts(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 2 {
		t.Fatalf("supplier 2 products = %+v", products)
	}

	refs, err := svc.Integrity(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 0 {
		t.Fatalf("default dataset has dangling references: %+v", refs)
	}
}
