// Package analytics derives read-only figures from loaded collections. Every
// function rescans its input; nothing is cached between calls.
package analytics

import (
	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// DefaultLowStockThreshold marks products at or below this quantity as low.
	DefaultLowStockThreshold = 20
	// DefaultAssumedInitialStock is the baseline SupplierTotalDeals assumes
	// every product started from.
	DefaultAssumedInitialStock = 200
)

// ClientTotalDeals sums the totals of orders placed under customerName.
// Names are compared exactly, case included.
func ClientTotalDeals(orders []domain.SalesOrder, customerName string) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if o.CustomerName == customerName {
			total = total.Add(o.TotalAmount)
		}
	}
	return total
}

// CustomerTotalDeals sums orders linked to customer by id. Orders that carry
// no customer id are matched by exact name instead.
func CustomerTotalDeals(orders []domain.SalesOrder, customer domain.Customer) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if OrderBelongsTo(o, customer) {
			total = total.Add(o.TotalAmount)
		}
	}
	return total
}

// OrderBelongsTo matches by customer id, or by exact name when the order
// carries no id.
func OrderBelongsTo(o domain.SalesOrder, customer domain.Customer) bool {
	if o.CustomerID != nil {
		return *o.CustomerID == customer.ID
	}
	return o.CustomerName == customer.Name
}

// SupplierDeals is an estimate of the value bought from one supplier.
type SupplierDeals struct {
	SupplierName        string          `json:"supplierName"`
	Total               decimal.Decimal `json:"total"`
	EstimatedUnits      int             `json:"estimatedUnits"`
	ProductCount        int             `json:"productCount"`
	AssumedInitialStock int             `json:"assumedInitialStock"`
	Estimated           bool            `json:"estimated"`
}

// SupplierTotalDeals estimates purchases from a supplier without a purchase
// ledger: every product of the supplier is assumed to have started at
// assumedInitialStock units, so max(0, baseline - stock) units were bought at
// cost price. The figure is flagged as an estimate.
func SupplierTotalDeals(products []domain.Product, supplierName string, assumedInitialStock int) SupplierDeals {
	if assumedInitialStock <= 0 {
		assumedInitialStock = DefaultAssumedInitialStock
	}
	deals := SupplierDeals{
		SupplierName:        supplierName,
		Total:               decimal.Zero,
		AssumedInitialStock: assumedInitialStock,
		Estimated:           true,
	}
	for _, p := range products {
		if p.Supplier != supplierName {
			continue
		}
		units := assumedInitialStock - p.StockQuantity
		if units < 0 {
			units = 0
		}
		deals.ProductCount++
		deals.EstimatedUnits += units
		deals.Total = deals.Total.Add(p.CostPrice.Mul(decimal.NewFromInt(int64(units))))
	}
	return deals
}

// BankAccountRevenue sums the totals of orders paid into bankAccountID.
func BankAccountRevenue(orders []domain.SalesOrder, bankAccountID int64) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if o.BankAccountID != nil && *o.BankAccountID == bankAccountID {
			total = total.Add(o.TotalAmount)
		}
	}
	return total
}

// TransactionSummary partitions an account's transactions by sign.
type TransactionSummary struct {
	BankAccountID    int64           `json:"bankAccountId"`
	TotalInflow      decimal.Decimal `json:"totalInflow"`
	TotalOutflow     decimal.Decimal `json:"totalOutflow"`
	NetBalance       decimal.Decimal `json:"netBalance"`
	TransactionCount int             `json:"transactionCount"`
}

// BankAccountTransactionSummary totals inflows and outflows of one account.
// Outflow is reported as a positive magnitude.
func BankAccountTransactionSummary(transactions []domain.Transaction, bankAccountID int64) TransactionSummary {
	summary := TransactionSummary{
		BankAccountID: bankAccountID,
		TotalInflow:   decimal.Zero,
		TotalOutflow:  decimal.Zero,
	}
	for _, t := range transactions {
		if t.BankAccountID != bankAccountID {
			continue
		}
		summary.TransactionCount++
		switch t.Amount.Sign() {
		case 1:
			summary.TotalInflow = summary.TotalInflow.Add(t.Amount)
		case -1:
			summary.TotalOutflow = summary.TotalOutflow.Add(t.Amount.Abs())
		}
	}
	summary.NetBalance = summary.TotalInflow.Sub(summary.TotalOutflow)
	return summary
}

// LowStockProducts returns products whose stock is at or below threshold, in
// input order.
func LowStockProducts(products []domain.Product, threshold int) []domain.Product {
	low := make([]domain.Product, 0)
	for _, p := range products {
		if p.StockQuantity <= threshold {
			low = append(low, p)
		}
	}
	return low
}

// BankAccountsByOwner filters accounts owned by (ownerType, ownerID). An empty
// ownerType matches every account.
func BankAccountsByOwner(accounts []domain.BankAccount, ownerType domain.OwnerType, ownerID int64) []domain.BankAccount {
	out := make([]domain.BankAccount, 0)
	for _, a := range accounts {
		if ownerType != "" && (a.OwnerType != ownerType || a.OwnerID != ownerID) {
			continue
		}
		out = append(out, a)
	}
	return out
}
