package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andresuchdata/agarbatti/backend-go/internal/blob"
	"github.com/andresuchdata/agarbatti/backend-go/internal/config"
	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
	"github.com/andresuchdata/agarbatti/backend-go/internal/repository/local"
	"github.com/andresuchdata/agarbatti/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, token string) (*gin.Engine, *local.Store) {
	t.Helper()
	clock := func() time.Time { return time.Date(2026, time.May, 4, 10, 0, 0, 0, time.UTC) }
	store, err := local.Open(context.Background(), blob.NewMemory(), local.WithClock(clock))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	validate := service.NewValidator("IN")
	services := &Services{
		Catalog:   service.NewCatalogService(store, validate),
		Orders:    service.NewOrderService(store, validate),
		Ledger:    service.NewLedgerService(store, validate),
		Insights:  service.NewInsightService(store, config.AnalyticsConfig{}),
		Snapshots: service.NewSnapshotService(store, nil),
	}
	return NewRouter(services, []string{"*"}, token), store
}

func doRequest(router http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthAndRequestID(t *testing.T) {
	router, _ := newTestRouter(t, "")

	w := doRequest(router, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("missing generated request id")
	}

	w = doRequest(router, http.MethodGet, "/health", "", "X-Request-ID", "abc-123")
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("request id = %q, want echoed value", got)
	}
}

func TestPlaceOrderEndpoint(t *testing.T) {
	router, store := newTestRouter(t, "")

	body := `{
		"customerId": 2,
		"orderDate": "2026-05-04",
		"bankAccountId": 2,
		"items": [
			{"productName": "Jasmine Dhoop", "quantity": 20, "price": 29.99},
			{"productName": "Camphor Tablets", "quantity": 1, "price": 3}
		]
	}`
	w := doRequest(router, http.MethodPost, "/api/sales-orders", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}

	var placement domain.OrderPlacement
	if err := json.Unmarshal(w.Body.Bytes(), &placement); err != nil {
		t.Fatal(err)
	}
	if placement.Order.OrderNumber != "SO-003-2026" || placement.Invoice.InvoiceNumber != "INV-003-2026" {
		t.Fatalf("numbers = %s / %s", placement.Order.OrderNumber, placement.Invoice.InvoiceNumber)
	}
	if placement.Order.CustomerName != "Sarah Johnson" {
		t.Fatalf("customer name = %q", placement.Order.CustomerName)
	}
	if placement.Invoice.DueDate.String() != "2026-06-03" {
		t.Fatalf("due date = %s", placement.Invoice.DueDate)
	}
	if len(placement.Unresolved) != 1 {
		t.Fatalf("unresolved = %+v", placement.Unresolved)
	}

	jasmine, err := store.GetProduct(context.Background(), 3)
	if err != nil {
		t.Fatal(err)
	}
	if jasmine.StockQuantity != 0 {
		t.Fatalf("jasmine stock = %d, want clamped to 0", jasmine.StockQuantity)
	}
}

func TestErrorResponses(t *testing.T) {
	router, _ := newTestRouter(t, "")

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		field  string
	}{
		{name: "malformed json", method: http.MethodPost, path: "/api/products", body: `{"name":`, status: http.StatusBadRequest},
		{name: "margin rule", method: http.MethodPost, path: "/api/products", body: `{"name":"Camphor","costPrice":5,"sellingPrice":4}`, status: http.StatusBadRequest, field: "sellingPrice"},
		{name: "empty order", method: http.MethodPost, path: "/api/sales-orders", body: `{"customerName":"Walk-in","items":[]}`, status: http.StatusBadRequest, field: "items"},
		{name: "bad ifsc", method: http.MethodPost, path: "/api/bank-accounts", body: `{"bankName":"Axis","accountNumber":"1","ifscCode":"AXIS1","ownerType":"customer","ownerId":1}`, status: http.StatusBadRequest, field: "ifscCode"},
		{name: "unknown product", method: http.MethodGet, path: "/api/products/99", status: http.StatusNotFound},
		{name: "bad id", method: http.MethodGet, path: "/api/products/abc", status: http.StatusBadRequest},
		{name: "unknown owner type", method: http.MethodGet, path: "/api/bank-accounts?ownerType=bank&ownerId=1", status: http.StatusBadRequest},
		{name: "future snapshot", method: http.MethodPost, path: "/api/snapshot", body: `{"schemaVersion": 42}`, status: http.StatusBadRequest},
		{name: "unknown csv collection", method: http.MethodGet, path: "/api/export/csv?collection=widgets", status: http.StatusBadRequest},
		{name: "archives disabled", method: http.MethodPost, path: "/api/snapshot/archives", status: http.StatusServiceUnavailable},
		{name: "unknown supplier deals", method: http.MethodGet, path: "/api/insights/suppliers/9/deals", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.method, tt.path, tt.body)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.status, w.Body.String())
			}
			var payload struct {
				Error  string            `json:"error"`
				Fields map[string]string `json:"fields"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if payload.Error == "" {
				t.Fatal("error message missing")
			}
			if tt.field != "" {
				if _, ok := payload.Fields[tt.field]; !ok {
					t.Fatalf("fields = %v, want %s", payload.Fields, tt.field)
				}
			}
		})
	}
}

func TestBankAccountsByOwner(t *testing.T) {
	router, _ := newTestRouter(t, "")

	w := doRequest(router, http.MethodGet, "/api/bank-accounts?ownerType=Supplier&ownerId=1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var accounts []domain.BankAccount
	if err := json.Unmarshal(w.Body.Bytes(), &accounts); err != nil {
		t.Fatal(err)
	}
	if len(accounts) != 1 || accounts[0].BankName != "Canara Bank" {
		t.Fatalf("accounts = %+v", accounts)
	}
}

func TestInsightEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, "")

	w := doRequest(router, http.MethodGet, "/api/insights/low-stock?threshold=15", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var report service.LowStockReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatal(err)
	}
	if report.Threshold != 15 || len(report.Products) != 1 || report.Products[0].Name != "Lavender Incense Sticks" {
		t.Fatalf("report = %+v", report)
	}

	w = doRequest(router, http.MethodGet, "/api/insights/suppliers/2/deals", "")
	if !strings.Contains(w.Body.String(), `"estimated":true`) {
		t.Fatalf("supplier deals not flagged as estimate: %s", w.Body.String())
	}

	w = doRequest(router, http.MethodGet, "/api/insights/integrity", "")
	if !strings.Contains(w.Body.String(), `"count":0`) {
		t.Fatalf("integrity = %s", w.Body.String())
	}
}

func TestExportEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, "")

	w := doRequest(router, http.MethodGet, "/api/export/csv?collection=bank-accounts", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.HasPrefix(w.Body.String(), "id,bankName,") {
		t.Fatalf("csv = %q", w.Body.String())
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "bankAccounts-") {
		t.Fatalf("disposition = %q", w.Header().Get("Content-Disposition"))
	}

	w = doRequest(router, http.MethodGet, "/api/export/xlsx", "")
	if w.Code != http.StatusOK || w.Body.Len() == 0 {
		t.Fatalf("xlsx status = %d, %d bytes", w.Code, w.Body.Len())
	}
}

func TestBearerAuth(t *testing.T) {
	router, _ := newTestRouter(t, "s3cret")

	if w := doRequest(router, http.MethodGet, "/api/products", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("status without token = %d", w.Code)
	}
	if w := doRequest(router, http.MethodGet, "/api/products", "", "Authorization", "Bearer nope"); w.Code != http.StatusUnauthorized {
		t.Fatalf("status with wrong token = %d", w.Code)
	}
	if w := doRequest(router, http.MethodGet, "/api/products", "", "Authorization", "Bearer s3cret"); w.Code != http.StatusOK {
		t.Fatalf("status with token = %d", w.Code)
	}
	if w := doRequest(router, http.MethodGet, "/health", ""); w.Code != http.StatusOK {
		t.Fatalf("health should stay open, got %d", w.Code)
	}
}

func TestNormalizeAllowedOrigins(t *testing.T) {
	origins, allowAll := normalizeAllowedOrigins([]string{"http://a.test, http://b.test", " ", "*"})
	if !allowAll {
		t.Fatal("wildcard not detected")
	}
	if len(origins) != 2 || origins[1] != "http://b.test" {
		t.Fatalf("origins = %v", origins)
	}
}
