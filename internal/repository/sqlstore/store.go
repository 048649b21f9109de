// Package sqlstore is the row-oriented record store over postgres or sqlite.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
	"github.com/andresuchdata/agarbatti/backend-go/internal/repository"
	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"
)

const metaLastUpdated = "last_updated"

// Store keeps one table per collection. Ids and sequence numbers come from
// the sequences table and are allocated inside the inserting transaction.
type Store struct {
	db  *DB
	now func() time.Time
}

var _ repository.Store = (*Store)(nil)

func New(db *DB) *Store {
	return &Store{db: db, now: time.Now}
}

// WithClock overrides the clock used for sequence years and lastUpdated.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Close(ctx context.Context) error {
	return s.db.Close()
}

func idSequence(c domain.Collection) string {
	return "id:" + string(c)
}

func numberSequence(kind domain.SequenceKind) string {
	return "seq:" + string(kind)
}

// nextValue bumps a named counter and returns the new value.
func nextValue(ctx context.Context, tx *sqlx.Tx, name string) (int64, error) {
	var value int64
	err := tx.GetContext(ctx, &value, tx.Rebind(`
		INSERT INTO sequences (name, value) VALUES (?, 1)
		ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
		RETURNING value`), name)
	if err != nil {
		return 0, fmt.Errorf("allocate %s: %w", name, err)
	}
	return value, nil
}

func (s *Store) nextID(ctx context.Context, tx *sqlx.Tx, c domain.Collection) (int64, error) {
	return nextValue(ctx, tx, idSequence(c))
}

func (s *Store) nextNumber(ctx context.Context, tx *sqlx.Tx, kind domain.SequenceKind) (string, error) {
	n, err := nextValue(ctx, tx, numberSequence(kind))
	if err != nil {
		return "", err
	}
	return domain.FormatSequenceNumber(kind, int(n), s.now().Year()), nil
}

func setSequence(ctx context.Context, tx *sqlx.Tx, name string, value int64) error {
	_, err := tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO sequences (name, value) VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET value = excluded.value`), name, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}
	return nil
}

// raiseSequence moves a counter up to value; it never moves it down.
func raiseSequence(ctx context.Context, tx *sqlx.Tx, name string, value int64) error {
	var current int64
	err := tx.GetContext(ctx, &current, tx.Rebind("SELECT value FROM sequences WHERE name = ?"), name)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if value <= current {
		return nil
	}
	return setSequence(ctx, tx, name, value)
}

// write runs fn in a transaction and stamps the store's lastUpdated.
func (s *Store) write(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	return s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := fn(tx); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO store_meta (name, value) VALUES (?, ?)
			ON CONFLICT (name) DO UPDATE SET value = excluded.value`),
			metaLastUpdated, s.now().UTC().Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("touch store: %w", err)
		}
		return nil
	})
}

func (s *Store) lastUpdated(ctx context.Context) (time.Time, error) {
	var value string
	err := s.db.GetContext(ctx, &value, s.db.Rebind("SELECT value FROM store_meta WHERE name = ?"), metaLastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("read last updated: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, nil
	}
	return t, nil
}

type sequenceRow struct {
	Name  string `db:"name"`
	Value int64  `db:"value"`
}

func (s *Store) counters(ctx context.Context) (domain.Counters, error) {
	var rows []sequenceRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT name, value FROM sequences"); err != nil {
		return domain.Counters{}, fmt.Errorf("read sequences: %w", err)
	}
	counters := domain.Counters{
		IDs:       make(map[domain.Collection]int64),
		Sequences: make(map[domain.SequenceKind]int),
	}
	for _, r := range rows {
		for _, c := range domain.Collections {
			if r.Name == idSequence(c) {
				counters.IDs[c] = r.Value
			}
		}
		for _, k := range domain.SequenceKinds {
			if r.Name == numberSequence(k) {
				counters.Sequences[k] = int(r.Value)
			}
		}
	}
	return counters, nil
}

// Load reads every table concurrently.
func (s *Store) Load(ctx context.Context) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{SchemaVersion: domain.SchemaVersion}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Products, err = s.ListProducts(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Customers, err = s.ListCustomers(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Suppliers, err = s.ListSuppliers(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.BankAccounts, err = s.ListBankAccounts(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.SalesOrders, err = s.ListSalesOrders(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Invoices, err = s.ListInvoices(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Transactions, err = s.ListTransactions(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Counters, err = s.counters(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.LastUpdated, err = s.lastUpdated(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap.Normalize()
	return snap, nil
}

// Replace deletes every row and writes snap in one transaction.
func (s *Store) Replace(ctx context.Context, snap *domain.Snapshot) error {
	if err := snap.CheckVersion(); err != nil {
		return err
	}
	next := snap.Clone()
	next.Normalize()

	return s.write(ctx, func(tx *sqlx.Tx) error {
		for _, c := range domain.Collections {
			if err := clearCollection(ctx, tx, c); err != nil {
				return err
			}
			if err := insertCollection(ctx, tx, c, next); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM sequences"); err != nil {
			return fmt.Errorf("clear sequences: %w", err)
		}
		for c, v := range next.Counters.IDs {
			if err := setSequence(ctx, tx, idSequence(c), v); err != nil {
				return err
			}
		}
		for k, v := range next.Counters.Sequences {
			if err := setSequence(ctx, tx, numberSequence(k), int64(v)); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceCollection swaps the rows of one table. Counters are raised to
// cover the new rows and never lowered.
func (s *Store) ReplaceCollection(ctx context.Context, c domain.Collection, src *domain.Snapshot) error {
	next := domain.NewSnapshot()
	if err := next.CopyCollection(c, src); err != nil {
		return err
	}

	return s.write(ctx, func(tx *sqlx.Tx) error {
		if err := clearCollection(ctx, tx, c); err != nil {
			return err
		}
		if err := insertCollection(ctx, tx, c, next); err != nil {
			return err
		}
		if err := raiseSequence(ctx, tx, idSequence(c), next.Counters.IDs[c]); err != nil {
			return err
		}
		for k, v := range next.Counters.Sequences {
			if v == 0 {
				continue
			}
			if err := raiseSequence(ctx, tx, numberSequence(k), int64(v)); err != nil {
				return err
			}
		}
		return nil
	})
}

var collectionTables = map[domain.Collection]string{
	domain.CollectionProducts:     "products",
	domain.CollectionCustomers:    "customers",
	domain.CollectionSuppliers:    "suppliers",
	domain.CollectionBankAccounts: "bank_accounts",
	domain.CollectionSalesOrders:  "sales_orders",
	domain.CollectionInvoices:     "invoices",
	domain.CollectionTransactions: "transactions",
}

func clearCollection(ctx context.Context, tx *sqlx.Tx, c domain.Collection) error {
	table, ok := collectionTables[c]
	if !ok {
		return fmt.Errorf("unknown collection %q", c)
	}
	if c == domain.CollectionSalesOrders {
		if _, err := tx.ExecContext(ctx, "DELETE FROM sales_order_items"); err != nil {
			return fmt.Errorf("clear sales_order_items: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	return nil
}

func insertCollection(ctx context.Context, tx *sqlx.Tx, c domain.Collection, snap *domain.Snapshot) error {
	switch c {
	case domain.CollectionProducts:
		for i := range snap.Products {
			if err := insertProduct(ctx, tx, &snap.Products[i]); err != nil {
				return err
			}
		}
	case domain.CollectionCustomers:
		for i := range snap.Customers {
			if err := insertCustomer(ctx, tx, &snap.Customers[i]); err != nil {
				return err
			}
		}
	case domain.CollectionSuppliers:
		for i := range snap.Suppliers {
			if err := insertSupplier(ctx, tx, &snap.Suppliers[i]); err != nil {
				return err
			}
		}
	case domain.CollectionBankAccounts:
		for i := range snap.BankAccounts {
			if err := insertBankAccount(ctx, tx, &snap.BankAccounts[i]); err != nil {
				return err
			}
		}
	case domain.CollectionSalesOrders:
		for i := range snap.SalesOrders {
			if err := insertSalesOrder(ctx, tx, &snap.SalesOrders[i]); err != nil {
				return err
			}
		}
	case domain.CollectionInvoices:
		for i := range snap.Invoices {
			if err := insertInvoice(ctx, tx, &snap.Invoices[i]); err != nil {
				return err
			}
		}
	case domain.CollectionTransactions:
		for i := range snap.Transactions {
			if err := insertTransaction(ctx, tx, &snap.Transactions[i]); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown collection %q", c)
	}
	return nil
}

func notFound(c domain.Collection, id int64) error {
	return fmt.Errorf("%s %d: %w", c, id, repository.ErrNotFound)
}

type queryer interface {
	sqlx.QueryerContext
	Rebind(query string) string
}

// getRow loads one row by id, mapping sql.ErrNoRows to ErrNotFound.
func getRow(ctx context.Context, q queryer, dest any, c domain.Collection, query string, id int64) error {
	err := sqlx.GetContext(ctx, q, dest, q.Rebind(query), id)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(c, id)
	}
	if err != nil {
		return fmt.Errorf("get %s %d: %w", c, id, err)
	}
	return nil
}

func deleteRow(ctx context.Context, tx *sqlx.Tx, c domain.Collection, id int64) error {
	res, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM "+collectionTables[c]+" WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", c, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", c, id, err)
	}
	if n == 0 {
		return notFound(c, id)
	}
	return nil
}
