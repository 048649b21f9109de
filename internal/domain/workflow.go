package domain

// InvoiceTermDays is the gap between an order date and its invoice due date.
const InvoiceTermDays = 30

// StockAdjustment removes Quantity units from a product. Stores clamp the
// result at zero.
type StockAdjustment struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// OrderCommit is everything one order placement writes. Stores apply it as a
// unit and fill in the allocated ids and numbers; Invoice.OrderNumber is set
// to the allocated order number.
type OrderCommit struct {
	Order       SalesOrder
	Invoice     Invoice
	Adjustments []StockAdjustment
}

// OrderPlacement is the outcome of placing an order. Unresolved lists items
// whose product could not be found; they did not move stock.
type OrderPlacement struct {
	Order      SalesOrder  `json:"order"`
	Invoice    Invoice     `json:"invoice"`
	Unresolved []OrderItem `json:"unresolved"`
}

// InvoiceForOrder synthesizes the pending invoice that accompanies a new order.
func InvoiceForOrder(order SalesOrder) Invoice {
	return Invoice{
		CustomerName:  order.CustomerName,
		CompanyName:   order.CompanyName,
		OrderNumber:   order.OrderNumber,
		InvoiceDate:   order.OrderDate,
		DueDate:       order.OrderDate.AddDays(InvoiceTermDays),
		Amount:        order.TotalAmount,
		Status:        InvoicePending,
		Items:         cloneItems(order.Items),
		BankAccountID: cloneInt64(order.BankAccountID),
	}
}

// ClampStock subtracts quantity from stock without going below zero.
func ClampStock(stock, quantity int) int {
	if stock-quantity < 0 {
		return 0
	}
	return stock - quantity
}
