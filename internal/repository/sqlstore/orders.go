package sqlstore

import (
	"context"
	"fmt"

	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
	"github.com/jmoiron/sqlx"
)

const (
	salesOrderColumns  = "id, order_number, customer_name, customer_id, company_name, order_date, due_date, status, total_amount, bank_account_id"
	invoiceColumns     = "id, invoice_number, customer_name, company_name, order_number, invoice_date, due_date, amount, status, items, bank_account_id"
	transactionColumns = "id, transaction_number, bank_account_id, type, amount, date, description, status, related_order_id, customer_name, supplier_name, reference"
)

type orderItemRow struct {
	OrderID  int64 `db:"order_id"`
	Position int   `db:"position"`
	domain.OrderItem
}

func (s *Store) ListSalesOrders(ctx context.Context) ([]domain.SalesOrder, error) {
	orders := []domain.SalesOrder{}
	if err := s.db.SelectContext(ctx, &orders, "SELECT "+salesOrderColumns+" FROM sales_orders ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}

	var rows []orderItemRow
	if err := s.db.SelectContext(ctx, &rows, `
		SELECT order_id, position, product_id, product_name, quantity, price
		FROM sales_order_items ORDER BY order_id, position`); err != nil {
		return nil, fmt.Errorf("list sales order items: %w", err)
	}

	byOrder := make(map[int64]domain.OrderItems, len(orders))
	for _, r := range rows {
		byOrder[r.OrderID] = append(byOrder[r.OrderID], r.OrderItem)
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = domain.OrderItems{}
		}
	}
	return orders, nil
}

func (s *Store) GetSalesOrder(ctx context.Context, id int64) (*domain.SalesOrder, error) {
	var o domain.SalesOrder
	if err := getRow(ctx, s.db, &o, domain.CollectionSalesOrders, "SELECT "+salesOrderColumns+" FROM sales_orders WHERE id = ?", id); err != nil {
		return nil, err
	}

	o.Items = domain.OrderItems{}
	if err := s.db.SelectContext(ctx, &o.Items, s.db.Rebind(`
		SELECT product_id, product_name, quantity, price
		FROM sales_order_items WHERE order_id = ? ORDER BY position`), id); err != nil {
		return nil, fmt.Errorf("get sales order %d items: %w", id, err)
	}
	return &o, nil
}

func insertSalesOrder(ctx context.Context, tx *sqlx.Tx, o *domain.SalesOrder) error {
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO sales_orders (`+salesOrderColumns+`)
		VALUES (:id, :order_number, :customer_name, :customer_id, :company_name, :order_date, :due_date,
			:status, :total_amount, :bank_account_id)`, o)
	if err != nil {
		return fmt.Errorf("insert sales order %d: %w", o.ID, err)
	}

	for i, item := range o.Items {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO sales_order_items (order_id, position, product_id, product_name, quantity, price)
			VALUES (:order_id, :position, :product_id, :product_name, :quantity, :price)`,
			orderItemRow{OrderID: o.ID, Position: i, OrderItem: item})
		if err != nil {
			return fmt.Errorf("insert sales order %d item %d: %w", o.ID, i, err)
		}
	}
	return nil
}

// CommitOrder applies the stock adjustments and inserts the order and its
// invoice in one transaction.
func (s *Store) CommitOrder(ctx context.Context, commit *domain.OrderCommit) error {
	order := domain.CloneSalesOrder(commit.Order)
	invoice := domain.CloneInvoice(commit.Invoice)

	err := s.write(ctx, func(tx *sqlx.Tx) error {
		for _, adj := range commit.Adjustments {
			var stock int
			if err := getRow(ctx, tx, &stock, domain.CollectionProducts, "SELECT stock_quantity FROM products WHERE id = ?", adj.ProductID); err != nil {
				return fmt.Errorf("adjust stock: %w", err)
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind("UPDATE products SET stock_quantity = ? WHERE id = ?"),
				domain.ClampStock(stock, adj.Quantity), adj.ProductID); err != nil {
				return fmt.Errorf("adjust stock of product %d: %w", adj.ProductID, err)
			}
		}

		var err error
		if order.ID, err = s.nextID(ctx, tx, domain.CollectionSalesOrders); err != nil {
			return err
		}
		if order.OrderNumber, err = s.nextNumber(ctx, tx, domain.SequenceSalesOrder); err != nil {
			return err
		}
		if err := insertSalesOrder(ctx, tx, &order); err != nil {
			return err
		}

		if invoice.ID, err = s.nextID(ctx, tx, domain.CollectionInvoices); err != nil {
			return err
		}
		if invoice.InvoiceNumber, err = s.nextNumber(ctx, tx, domain.SequenceInvoice); err != nil {
			return err
		}
		invoice.OrderNumber = order.OrderNumber
		return insertInvoice(ctx, tx, &invoice)
	})
	if err != nil {
		return err
	}

	commit.Order = order
	commit.Invoice = invoice
	return nil
}

func (s *Store) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	invoices := []domain.Invoice{}
	if err := s.db.SelectContext(ctx, &invoices, "SELECT "+invoiceColumns+" FROM invoices ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

func (s *Store) GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error) {
	var inv domain.Invoice
	if err := getRow(ctx, s.db, &inv, domain.CollectionInvoices, "SELECT "+invoiceColumns+" FROM invoices WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &inv, nil
}

func insertInvoice(ctx context.Context, tx *sqlx.Tx, inv *domain.Invoice) error {
	if inv.Items == nil {
		inv.Items = domain.OrderItems{}
	}
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES (:id, :invoice_number, :customer_name, :company_name, :order_number, :invoice_date, :due_date,
			:amount, :status, :items, :bank_account_id)`, inv)
	if err != nil {
		return fmt.Errorf("insert invoice %d: %w", inv.ID, err)
	}
	return nil
}

func (s *Store) CreateInvoice(ctx context.Context, inv *domain.Invoice) error {
	created := domain.CloneInvoice(*inv)
	err := s.write(ctx, func(tx *sqlx.Tx) error {
		var err error
		if created.ID, err = s.nextID(ctx, tx, domain.CollectionInvoices); err != nil {
			return err
		}
		if created.InvoiceNumber, err = s.nextNumber(ctx, tx, domain.SequenceInvoice); err != nil {
			return err
		}
		return insertInvoice(ctx, tx, &created)
	})
	if err != nil {
		return err
	}
	*inv = created
	return nil
}

func (s *Store) UpdateInvoice(ctx context.Context, id int64, patch domain.InvoicePatch) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := s.write(ctx, func(tx *sqlx.Tx) error {
		if err := getRow(ctx, tx, &inv, domain.CollectionInvoices, "SELECT "+invoiceColumns+" FROM invoices WHERE id = ?", id); err != nil {
			return err
		}
		patch.Apply(&inv)
		if _, err := tx.NamedExecContext(ctx, "UPDATE invoices SET status = :status, due_date = :due_date WHERE id = :id", &inv); err != nil {
			return fmt.Errorf("update invoice %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *Store) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	txns := []domain.Transaction{}
	if err := s.db.SelectContext(ctx, &txns, "SELECT "+transactionColumns+" FROM transactions ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txns, nil
}

func insertTransaction(ctx context.Context, tx *sqlx.Tx, t *domain.Transaction) error {
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES (:id, :transaction_number, :bank_account_id, :type, :amount, :date, :description, :status,
			:related_order_id, :customer_name, :supplier_name, :reference)`, t)
	if err != nil {
		return fmt.Errorf("insert transaction %d: %w", t.ID, err)
	}
	return nil
}

func (s *Store) CreateTransaction(ctx context.Context, t *domain.Transaction) error {
	created := domain.CloneTransaction(*t)
	err := s.write(ctx, func(tx *sqlx.Tx) error {
		var err error
		if created.ID, err = s.nextID(ctx, tx, domain.CollectionTransactions); err != nil {
			return err
		}
		if created.TransactionNumber, err = s.nextNumber(ctx, tx, domain.SequenceTransaction); err != nil {
			return err
		}
		return insertTransaction(ctx, tx, &created)
	})
	if err != nil {
		return err
	}
	*t = created
	return nil
}
