package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andresuchdata/agarbatti/backend-go/internal/analytics"
	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
	"github.com/andresuchdata/agarbatti/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

type OrderStore interface {
	repository.SalesOrderStore
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	GetBankAccount(ctx context.Context, id int64) (*domain.BankAccount, error)
}

// PlaceOrderRequest is a proposed sales order before numbering.
type PlaceOrderRequest struct {
	CustomerName  string             `json:"customerName"`
	CustomerID    *int64             `json:"customerId"`
	CompanyName   string             `json:"companyName"`
	OrderDate     *domain.Date       `json:"orderDate"`
	DueDate       *domain.Date       `json:"dueDate"`
	Status        domain.OrderStatus `json:"status"`
	Items         []domain.OrderItem `json:"items" validate:"required,min=1,dive"`
	BankAccountID *int64             `json:"bankAccountId"`
}

type OrderService struct {
	store    OrderStore
	validate *Validator
	now      func() time.Time
}

func NewOrderService(store OrderStore, validate *Validator) *OrderService {
	return &OrderService{store: store, validate: validate, now: time.Now}
}

func (s *OrderService) ListSalesOrders(ctx context.Context) ([]domain.SalesOrder, error) {
	return s.store.ListSalesOrders(ctx)
}

func (s *OrderService) GetSalesOrder(ctx context.Context, id int64) (*domain.SalesOrder, error) {
	return s.store.GetSalesOrder(ctx, id)
}

// PlaceOrder writes the order, its pending invoice and the stock movements of
// its items as one unit. Items that match no product are kept on the order,
// move no stock and are reported back in Unresolved.
func (s *OrderService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*domain.OrderPlacement, error) {
	order, err := s.buildOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	resolved := analytics.ResolveOrderItems(products, order.Items)
	order.Items = resolved.Items
	order.TotalAmount = order.Items.Total()

	commit := &domain.OrderCommit{
		Order:       order,
		Invoice:     domain.InvoiceForOrder(order),
		Adjustments: resolved.Adjustments,
	}
	if err := s.store.CommitOrder(ctx, commit); err != nil {
		return nil, fmt.Errorf("commit order: %w", err)
	}

	for _, item := range resolved.Unresolved {
		log.Warn().
			Str("order_number", commit.Order.OrderNumber).
			Str("product_name", item.ProductName).
			Int("quantity", item.Quantity).
			Msg("order item matches no product; stock not adjusted")
	}
	log.Info().
		Str("order_number", commit.Order.OrderNumber).
		Str("invoice_number", commit.Invoice.InvoiceNumber).
		Str("total", commit.Order.TotalAmount.StringFixed(2)).
		Msg("order placed")

	return &domain.OrderPlacement{
		Order:      commit.Order,
		Invoice:    commit.Invoice,
		Unresolved: resolved.Unresolved,
	}, nil
}

func (s *OrderService) buildOrder(ctx context.Context, req PlaceOrderRequest) (domain.SalesOrder, error) {
	err := s.validate.Struct(req)
	for i, item := range req.Items {
		if item.Price.IsNegative() {
			err = merge(err, fieldError(fmt.Sprintf("items[%d].price", i), "gte"))
		}
	}
	if req.CustomerID == nil && req.CustomerName == "" {
		err = merge(err, fieldError("customerName", "required"))
	}
	status := domain.OrderPending
	if req.Status != "" {
		parsed, ok := domain.ParseOrderStatus(string(req.Status))
		if !ok {
			err = merge(err, fieldError("status", "oneof"))
		}
		status = parsed
	}
	if err != nil {
		return domain.SalesOrder{}, err
	}

	order := domain.SalesOrder{
		CustomerName:  req.CustomerName,
		CustomerID:    req.CustomerID,
		CompanyName:   req.CompanyName,
		OrderDate:     domain.DateOf(s.now()),
		DueDate:       req.DueDate,
		Status:        status,
		Items:         append(domain.OrderItems{}, req.Items...),
		BankAccountID: req.BankAccountID,
	}
	if req.OrderDate != nil && !req.OrderDate.IsZero() {
		order.OrderDate = *req.OrderDate
	}

	if req.CustomerID != nil {
		customer, err := s.store.GetCustomer(ctx, *req.CustomerID)
		if errors.Is(err, repository.ErrNotFound) {
			return domain.SalesOrder{}, fieldError("customerId", "exists")
		}
		if err != nil {
			return domain.SalesOrder{}, err
		}
		if order.CustomerName == "" {
			order.CustomerName = customer.Name
		}
		if order.CompanyName == "" {
			order.CompanyName = customer.Company
		}
	}
	if req.BankAccountID != nil {
		if _, err := s.store.GetBankAccount(ctx, *req.BankAccountID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.SalesOrder{}, fieldError("bankAccountId", "exists")
			}
			return domain.SalesOrder{}, err
		}
	}
	return order, nil
}
