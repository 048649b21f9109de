package sqlstore

import (
	"context"
	"fmt"

	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
	"github.com/jmoiron/sqlx"
)

const (
	productColumns     = "id, name, description, cost_price, selling_price, stock_quantity, category, supplier, supplier_id"
	customerColumns    = "id, name, email, phone, company, address"
	supplierColumns    = "id, name, company_name, email, phone, address, contact_person, supplied_products"
	bankAccountColumns = "id, bank_name, account_number, ifsc_code, account_type, owner_type, owner_id, is_active"
)

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	if err := s.db.SelectContext(ctx, &products, "SELECT "+productColumns+" FROM products ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	if err := getRow(ctx, s.db, &p, domain.CollectionProducts, "SELECT "+productColumns+" FROM products WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &p, nil
}

func insertProduct(ctx context.Context, tx *sqlx.Tx, p *domain.Product) error {
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES (:id, :name, :description, :cost_price, :selling_price, :stock_quantity, :category, :supplier, :supplier_id)`, p)
	if err != nil {
		return fmt.Errorf("insert product %d: %w", p.ID, err)
	}
	return nil
}

func (s *Store) CreateProduct(ctx context.Context, p *domain.Product) error {
	created := domain.CloneProduct(*p)
	err := s.write(ctx, func(tx *sqlx.Tx) error {
		id, err := s.nextID(ctx, tx, domain.CollectionProducts)
		if err != nil {
			return err
		}
		created.ID = id
		return insertProduct(ctx, tx, &created)
	})
	if err != nil {
		return err
	}
	*p = created
	return nil
}

func (s *Store) UpdateProduct(ctx context.Context, id int64, patch domain.ProductPatch) (*domain.Product, error) {
	var p domain.Product
	err := s.write(ctx, func(tx *sqlx.Tx) error {
		if err := getRow(ctx, tx, &p, domain.CollectionProducts, "SELECT "+productColumns+" FROM products WHERE id = ?", id); err != nil {
			return err
		}
		patch.Apply(&p)
		_, err := tx.NamedExecContext(ctx, `
			UPDATE products SET name = :name, description = :description, cost_price = :cost_price,
				selling_price = :selling_price, stock_quantity = :stock_quantity, category = :category,
				supplier = :supplier, supplier_id = :supplier_id
			WHERE id = :id`, &p)
		if err != nil {
			return fmt.Errorf("update product %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	return s.write(ctx, func(tx *sqlx.Tx) error {
		return deleteRow(ctx, tx, domain.CollectionProducts, id)
	})
}

func (s *Store) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	customers := []domain.Customer{}
	if err := s.db.SelectContext(ctx, &customers, "SELECT "+customerColumns+" FROM customers ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

func (s *Store) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	var c domain.Customer
	if err := getRow(ctx, s.db, &c, domain.CollectionCustomers, "SELECT "+customerColumns+" FROM customers WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &c, nil
}

func insertCustomer(ctx context.Context, tx *sqlx.Tx, c *domain.Customer) error {
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO customers (`+customerColumns+`)
		VALUES (:id, :name, :email, :phone, :company, :address)`, c)
	if err != nil {
		return fmt.Errorf("insert customer %d: %w", c.ID, err)
	}
	return nil
}

func (s *Store) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	created := *c
	err := s.write(ctx, func(tx *sqlx.Tx) error {
		id, err := s.nextID(ctx, tx, domain.CollectionCustomers)
		if err != nil {
			return err
		}
		created.ID = id
		return insertCustomer(ctx, tx, &created)
	})
	if err != nil {
		return err
	}
	*c = created
	return nil
}

func (s *Store) UpdateCustomer(ctx context.Context, id int64, patch domain.CustomerPatch) (*domain.Customer, error) {
	var c domain.Customer
	err := s.write(ctx, func(tx *sqlx.Tx) error {
		if err := getRow(ctx, tx, &c, domain.CollectionCustomers, "SELECT "+customerColumns+" FROM customers WHERE id = ?", id); err != nil {
			return err
		}
		patch.Apply(&c)
		_, err := tx.NamedExecContext(ctx, `
			UPDATE customers SET name = :name, email = :email, phone = :phone, company = :company, address = :address
			WHERE id = :id`, &c)
		if err != nil {
			return fmt.Errorf("update customer %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) DeleteCustomer(ctx context.Context, id int64) error {
	return s.write(ctx, func(tx *sqlx.Tx) error {
		return deleteRow(ctx, tx, domain.CollectionCustomers, id)
	})
}

func (s *Store) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	suppliers := []domain.Supplier{}
	if err := s.db.SelectContext(ctx, &suppliers, "SELECT "+supplierColumns+" FROM suppliers ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return suppliers, nil
}

func (s *Store) GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error) {
	var sup domain.Supplier
	if err := getRow(ctx, s.db, &sup, domain.CollectionSuppliers, "SELECT "+supplierColumns+" FROM suppliers WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &sup, nil
}

func insertSupplier(ctx context.Context, tx *sqlx.Tx, sup *domain.Supplier) error {
	if sup.SuppliedProducts == nil {
		sup.SuppliedProducts = domain.StringList{}
	}
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO suppliers (`+supplierColumns+`)
		VALUES (:id, :name, :company_name, :email, :phone, :address, :contact_person, :supplied_products)`, sup)
	if err != nil {
		return fmt.Errorf("insert supplier %d: %w", sup.ID, err)
	}
	return nil
}

func (s *Store) CreateSupplier(ctx context.Context, sup *domain.Supplier) error {
	created := domain.CloneSupplier(*sup)
	err := s.write(ctx, func(tx *sqlx.Tx) error {
		id, err := s.nextID(ctx, tx, domain.CollectionSuppliers)
		if err != nil {
			return err
		}
		created.ID = id
		return insertSupplier(ctx, tx, &created)
	})
	if err != nil {
		return err
	}
	*sup = created
	return nil
}

func (s *Store) UpdateSupplier(ctx context.Context, id int64, patch domain.SupplierPatch) (*domain.Supplier, error) {
	var sup domain.Supplier
	err := s.write(ctx, func(tx *sqlx.Tx) error {
		if err := getRow(ctx, tx, &sup, domain.CollectionSuppliers, "SELECT "+supplierColumns+" FROM suppliers WHERE id = ?", id); err != nil {
			return err
		}
		patch.Apply(&sup)
		_, err := tx.NamedExecContext(ctx, `
			UPDATE suppliers SET name = :name, company_name = :company_name, email = :email, phone = :phone,
				address = :address, contact_person = :contact_person, supplied_products = :supplied_products
			WHERE id = :id`, &sup)
		if err != nil {
			return fmt.Errorf("update supplier %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sup, nil
}

func (s *Store) DeleteSupplier(ctx context.Context, id int64) error {
	return s.write(ctx, func(tx *sqlx.Tx) error {
		return deleteRow(ctx, tx, domain.CollectionSuppliers, id)
	})
}

func (s *Store) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	accounts := []domain.BankAccount{}
	if err := s.db.SelectContext(ctx, &accounts, "SELECT "+bankAccountColumns+" FROM bank_accounts ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list bank accounts: %w", err)
	}
	return accounts, nil
}

func (s *Store) GetBankAccount(ctx context.Context, id int64) (*domain.BankAccount, error) {
	var a domain.BankAccount
	if err := getRow(ctx, s.db, &a, domain.CollectionBankAccounts, "SELECT "+bankAccountColumns+" FROM bank_accounts WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &a, nil
}

func insertBankAccount(ctx context.Context, tx *sqlx.Tx, a *domain.BankAccount) error {
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO bank_accounts (`+bankAccountColumns+`)
		VALUES (:id, :bank_name, :account_number, :ifsc_code, :account_type, :owner_type, :owner_id, :is_active)`, a)
	if err != nil {
		return fmt.Errorf("insert bank account %d: %w", a.ID, err)
	}
	return nil
}

func (s *Store) CreateBankAccount(ctx context.Context, a *domain.BankAccount) error {
	created := *a
	err := s.write(ctx, func(tx *sqlx.Tx) error {
		id, err := s.nextID(ctx, tx, domain.CollectionBankAccounts)
		if err != nil {
			return err
		}
		created.ID = id
		return insertBankAccount(ctx, tx, &created)
	})
	if err != nil {
		return err
	}
	*a = created
	return nil
}

func (s *Store) UpdateBankAccount(ctx context.Context, id int64, patch domain.BankAccountPatch) (*domain.BankAccount, error) {
	var a domain.BankAccount
	err := s.write(ctx, func(tx *sqlx.Tx) error {
		if err := getRow(ctx, tx, &a, domain.CollectionBankAccounts, "SELECT "+bankAccountColumns+" FROM bank_accounts WHERE id = ?", id); err != nil {
			return err
		}
		patch.Apply(&a)
		_, err := tx.NamedExecContext(ctx, `
			UPDATE bank_accounts SET bank_name = :bank_name, account_number = :account_number, ifsc_code = :ifsc_code,
				account_type = :account_type, is_active = :is_active
			WHERE id = :id`, &a)
		if err != nil {
			return fmt.Errorf("update bank account %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}
