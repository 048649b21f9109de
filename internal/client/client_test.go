package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andresuchdata/agarbatti/backend-go/internal/api"
	"github.com/andresuchdata/agarbatti/backend-go/internal/blob"
	"github.com/andresuchdata/agarbatti/backend-go/internal/config"
	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
	"github.com/andresuchdata/agarbatti/backend-go/internal/repository"
	"github.com/andresuchdata/agarbatti/backend-go/internal/repository/local"
	"github.com/andresuchdata/agarbatti/backend-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func newRemote(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := func() time.Time { return time.Date(2026, time.July, 1, 8, 0, 0, 0, time.UTC) }
	store, err := local.Open(context.Background(), blob.NewMemory(), local.WithClock(clock))
	if err != nil {
		t.Fatal(err)
	}
	validate := service.NewValidator("IN")
	router := api.NewRouter(&api.Services{
		Catalog:   service.NewCatalogService(store, validate),
		Orders:    service.NewOrderService(store, validate),
		Ledger:    service.NewLedgerService(store, validate),
		Insights:  service.NewInsightService(store, config.AnalyticsConfig{}),
		Snapshots: service.NewSnapshotService(store, nil),
	}, nil, "token-1")

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	c := New(srv.URL+"/", "token-1", srv.Client())
	t.Cleanup(func() { _ = c.Close(context.Background()) })
	return c
}

func TestClientRowOperations(t *testing.T) {
	ctx := context.Background()
	c := newRemote(t)

	products, err := c.ListProducts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 5 {
		t.Fatalf("products = %d", len(products))
	}

	p := &domain.Product{Name: "Camphor Tablets", CostPrice: decimal.NewFromInt(2), SellingPrice: decimal.NewFromInt(3), StockQuantity: 60}
	if err := c.CreateProduct(ctx, p); err != nil {
		t.Fatal(err)
	}
	if p.ID != 6 {
		t.Fatalf("created id = %d", p.ID)
	}

	stock := 55
	updated, err := c.UpdateProduct(ctx, p.ID, domain.ProductPatch{StockQuantity: &stock})
	if err != nil {
		t.Fatal(err)
	}
	if updated.StockQuantity != 55 || updated.Name != "Camphor Tablets" {
		t.Fatalf("updated = %+v", updated)
	}

	if err := c.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetProduct(ctx, p.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	account, err := c.GetBankAccount(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if account.IFSCCode != "CNRB0000412" {
		t.Fatalf("account = %+v", account)
	}
	if _, err := c.GetInvoice(ctx, 40); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	txn := &domain.Transaction{BankAccountID: 3, Type: domain.TransactionPurchase, Amount: decimal.NewFromInt(-300)}
	if err := c.CreateTransaction(ctx, txn); err != nil {
		t.Fatal(err)
	}
	if txn.TransactionNumber != "TXN-004-2026" {
		t.Fatalf("transaction number = %s", txn.TransactionNumber)
	}
}

func TestClientValidationError(t *testing.T) {
	c := newRemote(t)

	err := c.CreateCustomer(context.Background(), &domain.Customer{Name: "", Email: "bad"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", apiErr.StatusCode)
	}
	if _, ok := apiErr.Fields["name"]; !ok {
		t.Fatalf("fields = %v", apiErr.Fields)
	}
	if errors.Is(err, repository.ErrNotFound) {
		t.Fatal("validation error must not match ErrNotFound")
	}
}

func TestClientCommitOrder(t *testing.T) {
	ctx := context.Background()
	c := newRemote(t)

	orderDate := domain.NewDate(2026, time.July, 1)
	commit := &domain.OrderCommit{
		Order: domain.SalesOrder{
			CustomerName: "Walk-in",
			OrderDate:    orderDate,
			Items: domain.OrderItems{
				{ProductName: "Sandalwood Cones", Quantity: 10, Price: decimal.RequireFromString("23.50")},
			},
		},
	}
	if err := c.CommitOrder(ctx, commit); err != nil {
		t.Fatal(err)
	}
	if commit.Order.OrderNumber != "SO-003-2026" || commit.Invoice.OrderNumber != "SO-003-2026" {
		t.Fatalf("order %s invoice for %s", commit.Order.OrderNumber, commit.Invoice.OrderNumber)
	}
	if !commit.Order.TotalAmount.Equal(decimal.RequireFromString("235")) {
		t.Fatalf("total = %s", commit.Order.TotalAmount)
	}

	sandalwood, err := c.GetProduct(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if sandalwood.StockQuantity != 70 {
		t.Fatalf("stock = %d, want 70", sandalwood.StockQuantity)
	}
}

func TestClientSnapshot(t *testing.T) {
	ctx := context.Background()
	c := newRemote(t)

	snap, err := c.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Customers) != 2 {
		t.Fatalf("customers = %d", len(snap.Customers))
	}

	only := domain.NewSnapshot()
	only.Customers = []domain.Customer{{ID: 12, Name: "Anil Mehta"}}
	if err := c.ReplaceCollection(ctx, domain.CollectionCustomers, only); err != nil {
		t.Fatal(err)
	}

	customers, err := c.ListCustomers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(customers) != 1 || customers[0].ID != 12 {
		t.Fatalf("customers = %+v", customers)
	}
	products, err := c.ListProducts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 5 {
		t.Fatalf("replacing customers touched products: %d", len(products))
	}
}

func TestClientRejectsMissingToken(t *testing.T) {
	c := newRemote(t)
	c.token = ""

	_, err := c.ListProducts(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401", err)
	}
}
