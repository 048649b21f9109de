package repository

import (
	"context"
	"errors"

	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

type SnapshotStore interface {
	// Load returns every collection at once.
	Load(ctx context.Context) (*domain.Snapshot, error)
	// Replace swaps the whole dataset, counters included.
	Replace(ctx context.Context, snap *domain.Snapshot) error
	// ReplaceCollection overwrites one collection with the matching slice of src.
	ReplaceCollection(ctx context.Context, c domain.Collection, src *domain.Snapshot) error
}

type ProductStore interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, id int64, patch domain.ProductPatch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type CustomerStore interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	CreateCustomer(ctx context.Context, c *domain.Customer) error
	UpdateCustomer(ctx context.Context, id int64, patch domain.CustomerPatch) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

type SupplierStore interface {
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
	GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error)
	CreateSupplier(ctx context.Context, s *domain.Supplier) error
	UpdateSupplier(ctx context.Context, id int64, patch domain.SupplierPatch) (*domain.Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) error
}

type BankAccountStore interface {
	ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error)
	GetBankAccount(ctx context.Context, id int64) (*domain.BankAccount, error)
	CreateBankAccount(ctx context.Context, a *domain.BankAccount) error
	UpdateBankAccount(ctx context.Context, id int64, patch domain.BankAccountPatch) (*domain.BankAccount, error)
}

// SalesOrderStore has no plain create: orders are only written together with
// their invoice and stock movements through CommitOrder.
type SalesOrderStore interface {
	ListSalesOrders(ctx context.Context) ([]domain.SalesOrder, error)
	GetSalesOrder(ctx context.Context, id int64) (*domain.SalesOrder, error)
	CommitOrder(ctx context.Context, commit *domain.OrderCommit) error
}

type InvoiceStore interface {
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
	GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error)
	CreateInvoice(ctx context.Context, inv *domain.Invoice) error
	UpdateInvoice(ctx context.Context, id int64, patch domain.InvoicePatch) (*domain.Invoice, error)
}

type TransactionStore interface {
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	CreateTransaction(ctx context.Context, t *domain.Transaction) error
}

// Store is the record store every backend implements. Create methods assign
// the id and, for orders, invoices and transactions, the sequence number in
// the same write as the insert.
type Store interface {
	SnapshotStore
	ProductStore
	CustomerStore
	SupplierStore
	BankAccountStore
	SalesOrderStore
	InvoiceStore
	TransactionStore

	Close(ctx context.Context) error
}
