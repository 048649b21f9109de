package local

import (
	"context"
	"fmt"

	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
)

func productID(p domain.Product) int64         { return p.ID }
func customerID(c domain.Customer) int64       { return c.ID }
func supplierID(s domain.Supplier) int64       { return s.ID }
func bankAccountID(a domain.BankAccount) int64 { return a.ID }
func salesOrderID(o domain.SalesOrder) int64   { return o.ID }
func invoiceID(inv domain.Invoice) int64       { return inv.ID }

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	err := s.view(func(cur *domain.Snapshot) {
		out = make([]domain.Product, len(cur.Products))
		for i, p := range cur.Products {
			out[i] = domain.CloneProduct(p)
		}
	})
	return out, err
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var out *domain.Product
	if err := s.view(func(cur *domain.Snapshot) {
		if i := indexOf(cur.Products, id, productID); i >= 0 {
			p := domain.CloneProduct(cur.Products[i])
			out = &p
		}
	}); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, notFound(domain.CollectionProducts, id)
	}
	return out, nil
}

func (s *Store) CreateProduct(ctx context.Context, p *domain.Product) error {
	created := domain.CloneProduct(*p)
	err := s.mutate(ctx, func(next *domain.Snapshot) error {
		created.ID = next.NextID(domain.CollectionProducts)
		next.Products = append(next.Products, domain.CloneProduct(created))
		return nil
	})
	if err != nil {
		return err
	}
	*p = created
	return nil
}

func (s *Store) UpdateProduct(ctx context.Context, id int64, patch domain.ProductPatch) (*domain.Product, error) {
	var out domain.Product
	err := s.mutate(ctx, func(next *domain.Snapshot) error {
		i := indexOf(next.Products, id, productID)
		if i < 0 {
			return notFound(domain.CollectionProducts, id)
		}
		patch.Apply(&next.Products[i])
		out = domain.CloneProduct(next.Products[i])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	return s.mutate(ctx, func(next *domain.Snapshot) error {
		i := indexOf(next.Products, id, productID)
		if i < 0 {
			return notFound(domain.CollectionProducts, id)
		}
		next.Products = append(next.Products[:i], next.Products[i+1:]...)
		return nil
	})
}

func (s *Store) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	var out []domain.Customer
	err := s.view(func(cur *domain.Snapshot) {
		out = append([]domain.Customer{}, cur.Customers...)
	})
	return out, err
}

func (s *Store) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	var out *domain.Customer
	if err := s.view(func(cur *domain.Snapshot) {
		if i := indexOf(cur.Customers, id, customerID); i >= 0 {
			c := cur.Customers[i]
			out = &c
		}
	}); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, notFound(domain.CollectionCustomers, id)
	}
	return out, nil
}

func (s *Store) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	created := *c
	err := s.mutate(ctx, func(next *domain.Snapshot) error {
		created.ID = next.NextID(domain.CollectionCustomers)
		next.Customers = append(next.Customers, created)
		return nil
	})
	if err != nil {
		return err
	}
	*c = created
	return nil
}

func (s *Store) UpdateCustomer(ctx context.Context, id int64, patch domain.CustomerPatch) (*domain.Customer, error) {
	var out domain.Customer
	err := s.mutate(ctx, func(next *domain.Snapshot) error {
		i := indexOf(next.Customers, id, customerID)
		if i < 0 {
			return notFound(domain.CollectionCustomers, id)
		}
		patch.Apply(&next.Customers[i])
		out = next.Customers[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) DeleteCustomer(ctx context.Context, id int64) error {
	return s.mutate(ctx, func(next *domain.Snapshot) error {
		i := indexOf(next.Customers, id, customerID)
		if i < 0 {
			return notFound(domain.CollectionCustomers, id)
		}
		next.Customers = append(next.Customers[:i], next.Customers[i+1:]...)
		return nil
	})
}

func (s *Store) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	var out []domain.Supplier
	err := s.view(func(cur *domain.Snapshot) {
		out = make([]domain.Supplier, len(cur.Suppliers))
		for i, sup := range cur.Suppliers {
			out[i] = domain.CloneSupplier(sup)
		}
	})
	return out, err
}

func (s *Store) GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error) {
	var out *domain.Supplier
	if err := s.view(func(cur *domain.Snapshot) {
		if i := indexOf(cur.Suppliers, id, supplierID); i >= 0 {
			sup := domain.CloneSupplier(cur.Suppliers[i])
			out = &sup
		}
	}); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, notFound(domain.CollectionSuppliers, id)
	}
	return out, nil
}

func (s *Store) CreateSupplier(ctx context.Context, sup *domain.Supplier) error {
	created := domain.CloneSupplier(*sup)
	err := s.mutate(ctx, func(next *domain.Snapshot) error {
		created.ID = next.NextID(domain.CollectionSuppliers)
		next.Suppliers = append(next.Suppliers, domain.CloneSupplier(created))
		return nil
	})
	if err != nil {
		return err
	}
	*sup = created
	return nil
}

func (s *Store) UpdateSupplier(ctx context.Context, id int64, patch domain.SupplierPatch) (*domain.Supplier, error) {
	var out domain.Supplier
	err := s.mutate(ctx, func(next *domain.Snapshot) error {
		i := indexOf(next.Suppliers, id, supplierID)
		if i < 0 {
			return notFound(domain.CollectionSuppliers, id)
		}
		patch.Apply(&next.Suppliers[i])
		out = domain.CloneSupplier(next.Suppliers[i])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) DeleteSupplier(ctx context.Context, id int64) error {
	return s.mutate(ctx, func(next *domain.Snapshot) error {
		i := indexOf(next.Suppliers, id, supplierID)
		if i < 0 {
			return notFound(domain.CollectionSuppliers, id)
		}
		next.Suppliers = append(next.Suppliers[:i], next.Suppliers[i+1:]...)
		return nil
	})
}

func (s *Store) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	var out []domain.BankAccount
	err := s.view(func(cur *domain.Snapshot) {
		out = append([]domain.BankAccount{}, cur.BankAccounts...)
	})
	return out, err
}

func (s *Store) GetBankAccount(ctx context.Context, id int64) (*domain.BankAccount, error) {
	var out *domain.BankAccount
	if err := s.view(func(cur *domain.Snapshot) {
		if i := indexOf(cur.BankAccounts, id, bankAccountID); i >= 0 {
			a := cur.BankAccounts[i]
			out = &a
		}
	}); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, notFound(domain.CollectionBankAccounts, id)
	}
	return out, nil
}

func (s *Store) CreateBankAccount(ctx context.Context, a *domain.BankAccount) error {
	created := *a
	err := s.mutate(ctx, func(next *domain.Snapshot) error {
		created.ID = next.NextID(domain.CollectionBankAccounts)
		next.BankAccounts = append(next.BankAccounts, created)
		return nil
	})
	if err != nil {
		return err
	}
	*a = created
	return nil
}

func (s *Store) UpdateBankAccount(ctx context.Context, id int64, patch domain.BankAccountPatch) (*domain.BankAccount, error) {
	var out domain.BankAccount
	err := s.mutate(ctx, func(next *domain.Snapshot) error {
		i := indexOf(next.BankAccounts, id, bankAccountID)
		if i < 0 {
			return notFound(domain.CollectionBankAccounts, id)
		}
		patch.Apply(&next.BankAccounts[i])
		out = next.BankAccounts[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) ListSalesOrders(ctx context.Context) ([]domain.SalesOrder, error) {
	var out []domain.SalesOrder
	err := s.view(func(cur *domain.Snapshot) {
		out = make([]domain.SalesOrder, len(cur.SalesOrders))
		for i, o := range cur.SalesOrders {
			out[i] = domain.CloneSalesOrder(o)
		}
	})
	return out, err
}

func (s *Store) GetSalesOrder(ctx context.Context, id int64) (*domain.SalesOrder, error) {
	var out *domain.SalesOrder
	if err := s.view(func(cur *domain.Snapshot) {
		if i := indexOf(cur.SalesOrders, id, salesOrderID); i >= 0 {
			o := domain.CloneSalesOrder(cur.SalesOrders[i])
			out = &o
		}
	}); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, notFound(domain.CollectionSalesOrders, id)
	}
	return out, nil
}

// CommitOrder moves stock, then writes the order and its invoice in a single
// document write.
func (s *Store) CommitOrder(ctx context.Context, commit *domain.OrderCommit) error {
	order := domain.CloneSalesOrder(commit.Order)
	invoice := domain.CloneInvoice(commit.Invoice)
	year := s.year()

	err := s.mutate(ctx, func(next *domain.Snapshot) error {
		for _, adj := range commit.Adjustments {
			i := indexOf(next.Products, adj.ProductID, productID)
			if i < 0 {
				return fmt.Errorf("adjust stock: %w", notFound(domain.CollectionProducts, adj.ProductID))
			}
			next.Products[i].StockQuantity = domain.ClampStock(next.Products[i].StockQuantity, adj.Quantity)
		}

		order.ID = next.NextID(domain.CollectionSalesOrders)
		order.OrderNumber = next.NextNumber(domain.SequenceSalesOrder, year)
		next.SalesOrders = append(next.SalesOrders, domain.CloneSalesOrder(order))

		invoice.ID = next.NextID(domain.CollectionInvoices)
		invoice.InvoiceNumber = next.NextNumber(domain.SequenceInvoice, year)
		invoice.OrderNumber = order.OrderNumber
		next.Invoices = append(next.Invoices, domain.CloneInvoice(invoice))
		return nil
	})
	if err != nil {
		return err
	}
	commit.Order = order
	commit.Invoice = invoice
	return nil
}

func (s *Store) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	var out []domain.Invoice
	err := s.view(func(cur *domain.Snapshot) {
		out = make([]domain.Invoice, len(cur.Invoices))
		for i, inv := range cur.Invoices {
			out[i] = domain.CloneInvoice(inv)
		}
	})
	return out, err
}

func (s *Store) GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error) {
	var out *domain.Invoice
	if err := s.view(func(cur *domain.Snapshot) {
		if i := indexOf(cur.Invoices, id, invoiceID); i >= 0 {
			inv := domain.CloneInvoice(cur.Invoices[i])
			out = &inv
		}
	}); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, notFound(domain.CollectionInvoices, id)
	}
	return out, nil
}

func (s *Store) CreateInvoice(ctx context.Context, inv *domain.Invoice) error {
	created := domain.CloneInvoice(*inv)
	year := s.year()
	err := s.mutate(ctx, func(next *domain.Snapshot) error {
		created.ID = next.NextID(domain.CollectionInvoices)
		created.InvoiceNumber = next.NextNumber(domain.SequenceInvoice, year)
		next.Invoices = append(next.Invoices, domain.CloneInvoice(created))
		return nil
	})
	if err != nil {
		return err
	}
	*inv = created
	return nil
}

func (s *Store) UpdateInvoice(ctx context.Context, id int64, patch domain.InvoicePatch) (*domain.Invoice, error) {
	var out domain.Invoice
	err := s.mutate(ctx, func(next *domain.Snapshot) error {
		i := indexOf(next.Invoices, id, invoiceID)
		if i < 0 {
			return notFound(domain.CollectionInvoices, id)
		}
		patch.Apply(&next.Invoices[i])
		out = domain.CloneInvoice(next.Invoices[i])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	var out []domain.Transaction
	err := s.view(func(cur *domain.Snapshot) {
		out = make([]domain.Transaction, len(cur.Transactions))
		for i, t := range cur.Transactions {
			out[i] = domain.CloneTransaction(t)
		}
	})
	return out, err
}

func (s *Store) CreateTransaction(ctx context.Context, t *domain.Transaction) error {
	created := domain.CloneTransaction(*t)
	year := s.year()
	err := s.mutate(ctx, func(next *domain.Snapshot) error {
		created.ID = next.NextID(domain.CollectionTransactions)
		created.TransactionNumber = next.NextNumber(domain.SequenceTransaction, year)
		next.Transactions = append(next.Transactions, domain.CloneTransaction(created))
		return nil
	})
	if err != nil {
		return err
	}
	*t = created
	return nil
}
