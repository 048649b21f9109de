package domain

import "strings"

type OwnerType string

const (
	OwnerCustomer OwnerType = "customer"
	OwnerSupplier OwnerType = "supplier"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderConfirmed OrderStatus = "Confirmed"
	OrderShipped   OrderStatus = "Shipped"
	OrderDelivered OrderStatus = "Delivered"
	OrderCancelled OrderStatus = "Cancelled"
)

type InvoiceStatus string

const (
	InvoicePaid    InvoiceStatus = "Paid"
	InvoicePending InvoiceStatus = "Pending"
	InvoiceOverdue InvoiceStatus = "Overdue"
)

type TransactionType string

const (
	TransactionSale     TransactionType = "sale"
	TransactionPurchase TransactionType = "purchase"
	TransactionTransfer TransactionType = "transfer"
	TransactionRefund   TransactionType = "refund"
)

type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionPending   TransactionStatus = "pending"
	TransactionFailed    TransactionStatus = "failed"
)

var orderStatuses = map[string]OrderStatus{
	"pending":   OrderPending,
	"confirmed": OrderConfirmed,
	"shipped":   OrderShipped,
	"delivered": OrderDelivered,
	"cancelled": OrderCancelled,
}

var invoiceStatuses = map[string]InvoiceStatus{
	"paid":    InvoicePaid,
	"pending": InvoicePending,
	"overdue": InvoiceOverdue,
}

// ParseOrderStatus returns the status for a given label (case-insensitive).
func ParseOrderStatus(label string) (OrderStatus, bool) {
	status, ok := orderStatuses[strings.ToLower(strings.TrimSpace(label))]

	return status, ok
}

// ParseInvoiceStatus returns the status for a given label (case-insensitive).
func ParseInvoiceStatus(label string) (InvoiceStatus, bool) {
	status, ok := invoiceStatuses[strings.ToLower(strings.TrimSpace(label))]

	return status, ok
}

// ParseOwnerType accepts "customer" or "supplier" in any case.
func ParseOwnerType(label string) (OwnerType, bool) {
	switch OwnerType(strings.ToLower(strings.TrimSpace(label))) {
	case OwnerCustomer:
		return OwnerCustomer, true
	case OwnerSupplier:
		return OwnerSupplier, true
	}

	return "", false
}
