package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
)

func itemPath(collection string, id int64) string {
	return fmt.Sprintf("/api/%s/%d", collection, id)
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodGet, itemPath("products", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, p *domain.Product) error {
	return c.do(ctx, http.MethodPost, "/api/products", p, p)
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, patch domain.ProductPatch) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodPut, itemPath("products", id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, itemPath("products", id), nil, nil)
}

func (c *Client) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	var out []domain.Customer
	if err := c.do(ctx, http.MethodGet, "/api/customers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	var out domain.Customer
	if err := c.do(ctx, http.MethodGet, itemPath("customers", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCustomer(ctx context.Context, cu *domain.Customer) error {
	return c.do(ctx, http.MethodPost, "/api/customers", cu, cu)
}

func (c *Client) UpdateCustomer(ctx context.Context, id int64, patch domain.CustomerPatch) (*domain.Customer, error) {
	var out domain.Customer
	if err := c.do(ctx, http.MethodPut, itemPath("customers", id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCustomer(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, itemPath("customers", id), nil, nil)
}

func (c *Client) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	var out []domain.Supplier
	if err := c.do(ctx, http.MethodGet, "/api/suppliers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error) {
	var out domain.Supplier
	if err := c.do(ctx, http.MethodGet, itemPath("suppliers", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSupplier(ctx context.Context, s *domain.Supplier) error {
	return c.do(ctx, http.MethodPost, "/api/suppliers", s, s)
}

func (c *Client) UpdateSupplier(ctx context.Context, id int64, patch domain.SupplierPatch) (*domain.Supplier, error) {
	var out domain.Supplier
	if err := c.do(ctx, http.MethodPut, itemPath("suppliers", id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSupplier(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, itemPath("suppliers", id), nil, nil)
}

// ListBankAccounts fetches every account; owner filtering happens in the
// caller.
func (c *Client) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	var out []domain.BankAccount
	if err := c.do(ctx, http.MethodGet, "/api/bank-accounts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBankAccount has no dedicated route and scans the full list.
func (c *Client) GetBankAccount(ctx context.Context, id int64) (*domain.BankAccount, error) {
	accounts, err := c.ListBankAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, &APIError{StatusCode: http.StatusNotFound, Message: fmt.Sprintf("bank account %d not found", id)}
}

func (c *Client) CreateBankAccount(ctx context.Context, a *domain.BankAccount) error {
	return c.do(ctx, http.MethodPost, "/api/bank-accounts", a, a)
}

func (c *Client) UpdateBankAccount(ctx context.Context, id int64, patch domain.BankAccountPatch) (*domain.BankAccount, error) {
	var out domain.BankAccount
	if err := c.do(ctx, http.MethodPut, itemPath("bank-accounts", id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListSalesOrders(ctx context.Context) ([]domain.SalesOrder, error) {
	var out []domain.SalesOrder
	if err := c.do(ctx, http.MethodGet, "/api/sales-orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSalesOrder(ctx context.Context, id int64) (*domain.SalesOrder, error) {
	var out domain.SalesOrder
	if err := c.do(ctx, http.MethodGet, itemPath("sales-orders", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type orderRequest struct {
	CustomerName  string             `json:"customerName"`
	CustomerID    *int64             `json:"customerId,omitempty"`
	CompanyName   string             `json:"companyName"`
	OrderDate     *domain.Date       `json:"orderDate,omitempty"`
	DueDate       *domain.Date       `json:"dueDate,omitempty"`
	Status        domain.OrderStatus `json:"status"`
	Items         domain.OrderItems  `json:"items"`
	BankAccountID *int64             `json:"bankAccountId,omitempty"`
}

// CommitOrder posts the order to the server, which resolves items, moves
// stock and writes the invoice in its own store. The returned order and
// invoice replace the ones in commit.
func (c *Client) CommitOrder(ctx context.Context, commit *domain.OrderCommit) error {
	o := commit.Order
	req := orderRequest{
		CustomerName:  o.CustomerName,
		CustomerID:    o.CustomerID,
		CompanyName:   o.CompanyName,
		DueDate:       o.DueDate,
		Status:        o.Status,
		Items:         o.Items,
		BankAccountID: o.BankAccountID,
	}
	if !o.OrderDate.IsZero() {
		req.OrderDate = &o.OrderDate
	}

	var placement domain.OrderPlacement
	if err := c.do(ctx, http.MethodPost, "/api/sales-orders", req, &placement); err != nil {
		return err
	}
	commit.Order = placement.Order
	commit.Invoice = placement.Invoice
	return nil
}

func (c *Client) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	var out []domain.Invoice
	if err := c.do(ctx, http.MethodGet, "/api/invoices", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetInvoice has no dedicated route and scans the full list.
func (c *Client) GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error) {
	invoices, err := c.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}
	for _, inv := range invoices {
		if inv.ID == id {
			return &inv, nil
		}
	}
	return nil, &APIError{StatusCode: http.StatusNotFound, Message: fmt.Sprintf("invoice %d not found", id)}
}

func (c *Client) CreateInvoice(ctx context.Context, inv *domain.Invoice) error {
	return c.do(ctx, http.MethodPost, "/api/invoices", inv, inv)
}

func (c *Client) UpdateInvoice(ctx context.Context, id int64, patch domain.InvoicePatch) (*domain.Invoice, error) {
	var out domain.Invoice
	if err := c.do(ctx, http.MethodPut, itemPath("invoices", id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	var out []domain.Transaction
	if err := c.do(ctx, http.MethodGet, "/api/transactions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTransaction(ctx context.Context, t *domain.Transaction) error {
	return c.do(ctx, http.MethodPost, "/api/transactions", t, t)
}
