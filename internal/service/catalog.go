package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/andresuchdata/agarbatti/backend-go/internal/analytics"
	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
	"github.com/andresuchdata/agarbatti/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

type CatalogStore interface {
	repository.ProductStore
	repository.CustomerStore
	repository.SupplierStore
	repository.BankAccountStore
}

// CatalogService owns products, customers, suppliers and bank accounts.
type CatalogService struct {
	store    CatalogStore
	validate *Validator
}

func NewCatalogService(store CatalogStore, validate *Validator) *CatalogService {
	return &CatalogService{store: store, validate: validate}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.store.ListProducts(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.store.GetProduct(ctx, id)
}

// CreateProduct requires a selling price above the cost price. Later price
// edits are not held to that rule.
func (s *CatalogService) CreateProduct(ctx context.Context, p *domain.Product) error {
	err := s.validate.Struct(p)
	if p.CostPrice.IsNegative() {
		err = merge(err, fieldError("costPrice", "gte"))
	}
	if !p.SellingPrice.GreaterThan(p.CostPrice) {
		err = merge(err, fieldError("sellingPrice", "gtfield"))
	}
	if err != nil {
		return err
	}
	if err := s.checkSupplier(ctx, p.SupplierID); err != nil {
		return err
	}

	if err := s.store.CreateProduct(ctx, p); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	log.Info().Int64("product_id", p.ID).Str("name", p.Name).Msg("product created")
	return nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, patch domain.ProductPatch) (*domain.Product, error) {
	var err error
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		err = merge(err, fieldError("name", "required"))
	}
	if patch.CostPrice != nil && patch.CostPrice.IsNegative() {
		err = merge(err, fieldError("costPrice", "gte"))
	}
	if patch.SellingPrice != nil && patch.SellingPrice.IsNegative() {
		err = merge(err, fieldError("sellingPrice", "gte"))
	}
	if patch.StockQuantity != nil && *patch.StockQuantity < 0 {
		err = merge(err, fieldError("stockQuantity", "gte"))
	}
	if err != nil {
		return nil, err
	}
	if err := s.checkSupplier(ctx, patch.SupplierID); err != nil {
		return nil, err
	}
	return s.store.UpdateProduct(ctx, id, patch)
}

func (s *CatalogService) checkSupplier(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	if _, err := s.store.GetSupplier(ctx, *id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fieldError("supplierId", "exists")
		}
		return err
	}
	return nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	return s.store.DeleteProduct(ctx, id)
}

func (s *CatalogService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.store.ListCustomers(ctx)
}

func (s *CatalogService) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.store.GetCustomer(ctx, id)
}

func (s *CatalogService) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	err := s.validate.Struct(c)
	phone, phoneErr := s.validate.NormalizePhone("phone", c.Phone)
	if err = merge(err, phoneErr); err != nil {
		return err
	}
	c.Phone = phone

	if err := s.store.CreateCustomer(ctx, c); err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

func (s *CatalogService) UpdateCustomer(ctx context.Context, id int64, patch domain.CustomerPatch) (*domain.Customer, error) {
	var err error
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		err = merge(err, fieldError("name", "required"))
	}
	if patch.Email != nil && *patch.Email != "" {
		err = merge(err, s.validate.Var("email", *patch.Email, "email"))
	}
	if patch.Phone != nil {
		phone, phoneErr := s.validate.NormalizePhone("phone", *patch.Phone)
		err = merge(err, phoneErr)
		patch.Phone = &phone
	}
	if err != nil {
		return nil, err
	}
	return s.store.UpdateCustomer(ctx, id, patch)
}

func (s *CatalogService) DeleteCustomer(ctx context.Context, id int64) error {
	return s.store.DeleteCustomer(ctx, id)
}

func (s *CatalogService) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	return s.store.ListSuppliers(ctx)
}

func (s *CatalogService) GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error) {
	return s.store.GetSupplier(ctx, id)
}

func (s *CatalogService) CreateSupplier(ctx context.Context, sup *domain.Supplier) error {
	err := s.validate.Struct(sup)
	phone, phoneErr := s.validate.NormalizePhone("phone", sup.Phone)
	if err = merge(err, phoneErr); err != nil {
		return err
	}
	sup.Phone = phone
	if sup.SuppliedProducts == nil {
		sup.SuppliedProducts = domain.StringList{}
	}

	if err := s.store.CreateSupplier(ctx, sup); err != nil {
		return fmt.Errorf("create supplier: %w", err)
	}
	return nil
}

func (s *CatalogService) UpdateSupplier(ctx context.Context, id int64, patch domain.SupplierPatch) (*domain.Supplier, error) {
	var err error
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		err = merge(err, fieldError("name", "required"))
	}
	if patch.Email != nil && *patch.Email != "" {
		err = merge(err, s.validate.Var("email", *patch.Email, "email"))
	}
	if patch.Phone != nil {
		phone, phoneErr := s.validate.NormalizePhone("phone", *patch.Phone)
		err = merge(err, phoneErr)
		patch.Phone = &phone
	}
	if err != nil {
		return nil, err
	}
	return s.store.UpdateSupplier(ctx, id, patch)
}

func (s *CatalogService) DeleteSupplier(ctx context.Context, id int64) error {
	return s.store.DeleteSupplier(ctx, id)
}

// ListBankAccounts filters by owner when ownerType is set.
func (s *CatalogService) ListBankAccounts(ctx context.Context, ownerType domain.OwnerType, ownerID int64) ([]domain.BankAccount, error) {
	accounts, err := s.store.ListBankAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.BankAccountsByOwner(accounts, ownerType, ownerID), nil
}

// CreateBankAccount checks that the owner exists before inserting.
func (s *CatalogService) CreateBankAccount(ctx context.Context, a *domain.BankAccount) error {
	a.IFSCCode = strings.ToUpper(strings.TrimSpace(a.IFSCCode))
	if err := s.validate.Struct(a); err != nil {
		return err
	}

	var err error
	switch a.OwnerType {
	case domain.OwnerCustomer:
		_, err = s.store.GetCustomer(ctx, a.OwnerID)
	case domain.OwnerSupplier:
		_, err = s.store.GetSupplier(ctx, a.OwnerID)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return fieldError("ownerId", "exists")
	}
	if err != nil {
		return err
	}

	if err := s.store.CreateBankAccount(ctx, a); err != nil {
		return fmt.Errorf("create bank account: %w", err)
	}
	return nil
}

func (s *CatalogService) UpdateBankAccount(ctx context.Context, id int64, patch domain.BankAccountPatch) (*domain.BankAccount, error) {
	var err error
	if patch.IFSCCode != nil {
		code := strings.ToUpper(strings.TrimSpace(*patch.IFSCCode))
		if code != "" && !ifscPattern.MatchString(code) {
			err = merge(err, fieldError("ifscCode", "ifsc"))
		}
		patch.IFSCCode = &code
	}
	if patch.BankName != nil && strings.TrimSpace(*patch.BankName) == "" {
		err = merge(err, fieldError("bankName", "required"))
	}
	if patch.AccountNumber != nil && strings.TrimSpace(*patch.AccountNumber) == "" {
		err = merge(err, fieldError("accountNumber", "required"))
	}
	if err != nil {
		return nil, err
	}
	return s.store.UpdateBankAccount(ctx, id, patch)
}
