package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
)

// table is one collection flattened to text cells.
type table struct {
	Header []string
	Rows   [][]string
}

func optionalID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

func optionalDate(d *domain.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

// itemsCell renders items as "name x qty @ price" joined by "; ".
func itemsCell(items domain.OrderItems) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s x %d @ %s", item.ProductName, item.Quantity, item.Price.StringFixed(2)))
	}
	return strings.Join(parts, "; ")
}

func collectionTable(snap *domain.Snapshot, c domain.Collection) (table, error) {
	var t table
	switch c {
	case domain.CollectionProducts:
		t.Header = []string{"id", "name", "description", "costPrice", "sellingPrice", "stockQuantity", "category", "supplier", "supplierId"}
		for _, p := range snap.Products {
			t.Rows = append(t.Rows, []string{
				strconv.FormatInt(p.ID, 10), p.Name, p.Description, p.CostPrice.StringFixed(2), p.SellingPrice.StringFixed(2),
				strconv.Itoa(p.StockQuantity), p.Category, p.Supplier, optionalID(p.SupplierID),
			})
		}
	case domain.CollectionCustomers:
		t.Header = []string{"id", "name", "email", "phone", "company", "address"}
		for _, cu := range snap.Customers {
			t.Rows = append(t.Rows, []string{strconv.FormatInt(cu.ID, 10), cu.Name, cu.Email, cu.Phone, cu.Company, cu.Address})
		}
	case domain.CollectionSuppliers:
		t.Header = []string{"id", "name", "companyName", "email", "phone", "address", "contactPerson", "suppliedProducts"}
		for _, s := range snap.Suppliers {
			t.Rows = append(t.Rows, []string{
				strconv.FormatInt(s.ID, 10), s.Name, s.CompanyName, s.Email, s.Phone, s.Address, s.ContactPerson,
				strings.Join(s.SuppliedProducts, "; "),
			})
		}
	case domain.CollectionBankAccounts:
		t.Header = []string{"id", "bankName", "accountNumber", "ifscCode", "accountType", "ownerType", "ownerId", "isActive"}
		for _, a := range snap.BankAccounts {
			t.Rows = append(t.Rows, []string{
				strconv.FormatInt(a.ID, 10), a.BankName, a.AccountNumber, a.IFSCCode, a.AccountType, string(a.OwnerType),
				strconv.FormatInt(a.OwnerID, 10), strconv.FormatBool(a.IsActive),
			})
		}
	case domain.CollectionSalesOrders:
		t.Header = []string{"id", "orderNumber", "customerName", "customerId", "companyName", "orderDate", "dueDate", "status", "totalAmount", "items", "bankAccountId"}
		for _, o := range snap.SalesOrders {
			t.Rows = append(t.Rows, []string{
				strconv.FormatInt(o.ID, 10), o.OrderNumber, o.CustomerName, optionalID(o.CustomerID), o.CompanyName,
				o.OrderDate.String(), optionalDate(o.DueDate), string(o.Status), o.TotalAmount.StringFixed(2),
				itemsCell(o.Items), optionalID(o.BankAccountID),
			})
		}
	case domain.CollectionInvoices:
		t.Header = []string{"id", "invoiceNumber", "customerName", "companyName", "orderNumber", "invoiceDate", "dueDate", "amount", "status", "items", "bankAccountId"}
		for _, inv := range snap.Invoices {
			t.Rows = append(t.Rows, []string{
				strconv.FormatInt(inv.ID, 10), inv.InvoiceNumber, inv.CustomerName, inv.CompanyName, inv.OrderNumber,
				inv.InvoiceDate.String(), inv.DueDate.String(), inv.Amount.StringFixed(2), string(inv.Status),
				itemsCell(inv.Items), optionalID(inv.BankAccountID),
			})
		}
	case domain.CollectionTransactions:
		t.Header = []string{"id", "transactionNumber", "bankAccountId", "type", "amount", "date", "description", "status", "relatedOrderId", "customerName", "supplierName", "reference"}
		for _, tx := range snap.Transactions {
			t.Rows = append(t.Rows, []string{
				strconv.FormatInt(tx.ID, 10), tx.TransactionNumber, strconv.FormatInt(tx.BankAccountID, 10), string(tx.Type),
				tx.Amount.StringFixed(2), tx.Date.String(), tx.Description, string(tx.Status), optionalID(tx.RelatedOrderID),
				tx.CustomerName, tx.SupplierName, tx.Reference,
			})
		}
	default:
		return table{}, fmt.Errorf("unknown collection %q", c)
	}
	return t, nil
}
