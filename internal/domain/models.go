// backend-go/internal/domain/models.go
package domain

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Amounts travel as JSON numbers, the shape the web client already consumes.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a catalog item held in stock.
type Product struct {
	ID            int64           `json:"id" db:"id"`
	Name          string          `json:"name" db:"name" validate:"required"`
	Description   string          `json:"description" db:"description"`
	CostPrice     decimal.Decimal `json:"costPrice" db:"cost_price"`
	SellingPrice  decimal.Decimal `json:"sellingPrice" db:"selling_price"`
	StockQuantity int             `json:"stockQuantity" db:"stock_quantity" validate:"gte=0"`
	Category      string          `json:"category" db:"category"`
	Supplier      string          `json:"supplier" db:"supplier"`
	SupplierID    *int64          `json:"supplierId,omitempty" db:"supplier_id"`
}

// Customer buys from the distributor.
type Customer struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name" validate:"required"`
	Email   string `json:"email" db:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" db:"phone"`
	Company string `json:"company" db:"company"`
	Address string `json:"address" db:"address"`
}

// Supplier sells goods to the distributor. SuppliedProducts holds product
// name fragments used to match catalog items.
type Supplier struct {
	ID               int64      `json:"id" db:"id"`
	Name             string     `json:"name" db:"name" validate:"required"`
	CompanyName      string     `json:"companyName" db:"company_name"`
	Email            string     `json:"email" db:"email" validate:"omitempty,email"`
	Phone            string     `json:"phone" db:"phone"`
	Address          string     `json:"address" db:"address"`
	ContactPerson    string     `json:"contactPerson" db:"contact_person"`
	SuppliedProducts StringList `json:"suppliedProducts" db:"supplied_products"`
}

// BankAccount belongs to exactly one customer or supplier.
type BankAccount struct {
	ID            int64     `json:"id" db:"id"`
	BankName      string    `json:"bankName" db:"bank_name" validate:"required"`
	AccountNumber string    `json:"accountNumber" db:"account_number" validate:"required"`
	IFSCCode      string    `json:"ifscCode" db:"ifsc_code" validate:"omitempty,ifsc"`
	AccountType   string    `json:"accountType" db:"account_type"`
	OwnerType     OwnerType `json:"ownerType" db:"owner_type" validate:"required,oneof=customer supplier"`
	OwnerID       int64     `json:"ownerId" db:"owner_id" validate:"gt=0"`
	IsActive      bool      `json:"isActive" db:"is_active"`
}

// OrderItem is one line of a sales order or invoice.
type OrderItem struct {
	ProductID   *int64          `json:"productId,omitempty" db:"product_id"`
	ProductName string          `json:"productName" db:"product_name" validate:"required_without=ProductID"`
	Quantity    int             `json:"quantity" db:"quantity" validate:"gt=0"`
	Price       decimal.Decimal `json:"price" db:"price"`
}

// Subtotal is quantity times unit price.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SalesOrder is a customer order. CustomerID is optional because older
// records only carry the customer's name.
type SalesOrder struct {
	ID            int64           `json:"id" db:"id"`
	OrderNumber   string          `json:"orderNumber" db:"order_number"`
	CustomerName  string          `json:"customerName" db:"customer_name" validate:"required"`
	CustomerID    *int64          `json:"customerId,omitempty" db:"customer_id"`
	CompanyName   string          `json:"companyName" db:"company_name"`
	OrderDate     Date            `json:"orderDate" db:"order_date"`
	DueDate       *Date           `json:"dueDate,omitempty" db:"due_date"`
	Status        OrderStatus     `json:"status" db:"status"`
	TotalAmount   decimal.Decimal `json:"totalAmount" db:"total_amount"`
	Items         OrderItems      `json:"items" db:"-" validate:"required,min=1,dive"`
	BankAccountID *int64          `json:"bankAccountId,omitempty" db:"bank_account_id"`
}

// Invoice bills one sales order.
type Invoice struct {
	ID            int64           `json:"id" db:"id"`
	InvoiceNumber string          `json:"invoiceNumber" db:"invoice_number"`
	CustomerName  string          `json:"customerName" db:"customer_name" validate:"required"`
	CompanyName   string          `json:"companyName" db:"company_name"`
	OrderNumber   string          `json:"orderNumber" db:"order_number"`
	InvoiceDate   Date            `json:"invoiceDate" db:"invoice_date"`
	DueDate       Date            `json:"dueDate" db:"due_date"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Status        InvoiceStatus   `json:"status" db:"status"`
	Items         OrderItems      `json:"items" db:"items"`
	BankAccountID *int64          `json:"bankAccountId,omitempty" db:"bank_account_id"`
}

// Transaction is a bank movement. Positive amounts are inflows, negative
// amounts are outflows.
type Transaction struct {
	ID                int64             `json:"id" db:"id"`
	TransactionNumber string            `json:"transactionNumber" db:"transaction_number"`
	BankAccountID     int64             `json:"bankAccountId" db:"bank_account_id" validate:"gt=0"`
	Type              TransactionType   `json:"type" db:"type" validate:"required,oneof=sale purchase transfer refund"`
	Amount            decimal.Decimal   `json:"amount" db:"amount"`
	Date              Date              `json:"date" db:"date"`
	Description       string            `json:"description" db:"description"`
	Status            TransactionStatus `json:"status" db:"status" validate:"required,oneof=completed pending failed"`
	RelatedOrderID    *int64            `json:"relatedOrderId,omitempty" db:"related_order_id"`
	CustomerName      string            `json:"customerName,omitempty" db:"customer_name"`
	SupplierName      string            `json:"supplierName,omitempty" db:"supplier_name"`
	Reference         string            `json:"reference,omitempty" db:"reference"`
}

// Int64Ptr returns a pointer to v.
func Int64Ptr(v int64) *int64 {
	return &v
}
