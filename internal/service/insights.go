package service

import (
	"context"

	"github.com/andresuchdata/agarbatti/backend-go/internal/analytics"
	"github.com/andresuchdata/agarbatti/backend-go/internal/config"
	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
	"github.com/andresuchdata/agarbatti/backend-go/internal/repository"
	"github.com/shopspring/decimal"
)

type InsightStore interface {
	repository.SnapshotStore
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error)
	GetBankAccount(ctx context.Context, id int64) (*domain.BankAccount, error)
}

// InsightService serves derived figures. Every call reads fresh data.
type InsightService struct {
	store InsightStore
	cfg   config.AnalyticsConfig
}

func NewInsightService(store InsightStore, cfg config.AnalyticsConfig) *InsightService {
	if cfg.LowStockThreshold <= 0 {
		cfg.LowStockThreshold = analytics.DefaultLowStockThreshold
	}
	if cfg.AssumedInitialStock <= 0 {
		cfg.AssumedInitialStock = analytics.DefaultAssumedInitialStock
	}
	return &InsightService{store: store, cfg: cfg}
}

type LowStockReport struct {
	Threshold int              `json:"threshold"`
	Products  []domain.Product `json:"products"`
}

// LowStock uses the configured threshold unless one is given.
func (s *InsightService) LowStock(ctx context.Context, threshold *int) (*LowStockReport, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	t := s.cfg.LowStockThreshold
	if threshold != nil {
		t = *threshold
	}
	return &LowStockReport{Threshold: t, Products: analytics.LowStockProducts(snap.Products, t)}, nil
}

type CustomerDeals struct {
	CustomerID   int64           `json:"customerId"`
	CustomerName string          `json:"customerName"`
	Total        decimal.Decimal `json:"total"`
	OrderCount   int             `json:"orderCount"`
}

func (s *InsightService) CustomerDeals(ctx context.Context, customerID int64) (*CustomerDeals, error) {
	customer, err := s.store.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	deals := &CustomerDeals{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Total:        analytics.CustomerTotalDeals(snap.SalesOrders, *customer),
	}
	for _, o := range snap.SalesOrders {
		if analytics.OrderBelongsTo(o, *customer) {
			deals.OrderCount++
		}
	}
	return deals, nil
}

func (s *InsightService) SupplierDeals(ctx context.Context, supplierID int64) (*analytics.SupplierDeals, error) {
	supplier, err := s.store.GetSupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	deals := analytics.SupplierTotalDeals(snap.Products, supplier.Name, s.cfg.AssumedInitialStock)
	return &deals, nil
}

func (s *InsightService) SupplierProducts(ctx context.Context, supplierID int64) ([]domain.Product, error) {
	supplier, err := s.store.GetSupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.SupplierProducts(*supplier, snap.Products), nil
}

type AccountRevenue struct {
	BankAccountID int64           `json:"bankAccountId"`
	Revenue       decimal.Decimal `json:"revenue"`
}

func (s *InsightService) BankAccountRevenue(ctx context.Context, bankAccountID int64) (*AccountRevenue, error) {
	if _, err := s.store.GetBankAccount(ctx, bankAccountID); err != nil {
		return nil, err
	}
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &AccountRevenue{
		BankAccountID: bankAccountID,
		Revenue:       analytics.BankAccountRevenue(snap.SalesOrders, bankAccountID),
	}, nil
}

func (s *InsightService) BankAccountSummary(ctx context.Context, bankAccountID int64) (*analytics.TransactionSummary, error) {
	if _, err := s.store.GetBankAccount(ctx, bankAccountID); err != nil {
		return nil, err
	}
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	summary := analytics.BankAccountTransactionSummary(snap.Transactions, bankAccountID)
	return &summary, nil
}

// Integrity lists references that point at missing records.
func (s *InsightService) Integrity(ctx context.Context) ([]analytics.UnresolvedReference, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.CheckIntegrity(snap), nil
}
