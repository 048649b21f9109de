package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
	"github.com/andresuchdata/agarbatti/backend-go/internal/repository"
)

type LedgerStore interface {
	repository.InvoiceStore
	repository.TransactionStore
	GetBankAccount(ctx context.Context, id int64) (*domain.BankAccount, error)
}

// LedgerService owns invoices and bank transactions.
type LedgerService struct {
	store    LedgerStore
	validate *Validator
	now      func() time.Time
}

func NewLedgerService(store LedgerStore, validate *Validator) *LedgerService {
	return &LedgerService{store: store, validate: validate, now: time.Now}
}

func (s *LedgerService) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	return s.store.ListInvoices(ctx)
}

func (s *LedgerService) GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error) {
	return s.store.GetInvoice(ctx, id)
}

// CreateInvoice records a stand-alone invoice. A missing amount is taken
// from the items and a missing due date from the usual payment term.
func (s *LedgerService) CreateInvoice(ctx context.Context, inv *domain.Invoice) error {
	if inv.Status == "" {
		inv.Status = domain.InvoicePending
	}
	if inv.InvoiceDate.IsZero() {
		inv.InvoiceDate = domain.DateOf(s.now())
	}
	if inv.DueDate.IsZero() {
		inv.DueDate = inv.InvoiceDate.AddDays(domain.InvoiceTermDays)
	}
	if inv.Amount.IsZero() && len(inv.Items) > 0 {
		inv.Amount = inv.Items.Total()
	}
	if inv.Items == nil {
		inv.Items = domain.OrderItems{}
	}

	err := s.validate.Struct(inv)
	if _, ok := domain.ParseInvoiceStatus(string(inv.Status)); !ok {
		err = merge(err, fieldError("status", "oneof"))
	}
	if inv.Amount.IsNegative() {
		err = merge(err, fieldError("amount", "gte"))
	}
	if err != nil {
		return err
	}
	if err := s.checkBankAccount(ctx, "bankAccountId", inv.BankAccountID); err != nil {
		return err
	}

	if err := s.store.CreateInvoice(ctx, inv); err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}
	return nil
}

// UpdateInvoice only edits status and due date. Status labels are accepted in
// any case.
func (s *LedgerService) UpdateInvoice(ctx context.Context, id int64, patch domain.InvoicePatch) (*domain.Invoice, error) {
	if patch.Status != nil {
		status, ok := domain.ParseInvoiceStatus(string(*patch.Status))
		if !ok {
			return nil, fieldError("status", "oneof")
		}
		patch.Status = &status
	}
	if patch.DueDate != nil && patch.DueDate.IsZero() {
		return nil, fieldError("dueDate", "required")
	}
	return s.store.UpdateInvoice(ctx, id, patch)
}

func (s *LedgerService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return s.store.ListTransactions(ctx)
}

// CreateTransaction records a movement on an existing bank account. Amounts
// are signed: positive is money in.
func (s *LedgerService) CreateTransaction(ctx context.Context, t *domain.Transaction) error {
	if t.Status == "" {
		t.Status = domain.TransactionCompleted
	}
	if t.Date.IsZero() {
		t.Date = domain.DateOf(s.now())
	}
	if err := s.validate.Struct(t); err != nil {
		return err
	}
	if err := s.checkBankAccount(ctx, "bankAccountId", &t.BankAccountID); err != nil {
		return err
	}

	if err := s.store.CreateTransaction(ctx, t); err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

func (s *LedgerService) checkBankAccount(ctx context.Context, field string, id *int64) error {
	if id == nil {
		return nil
	}
	if _, err := s.store.GetBankAccount(ctx, *id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fieldError(field, "exists")
		}
		return err
	}
	return nil
}
