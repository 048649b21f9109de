package domain

import "github.com/shopspring/decimal"

// ProductPatch is a partial product update; nil fields are left unchanged.
type ProductPatch struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	CostPrice     *decimal.Decimal `json:"costPrice"`
	SellingPrice  *decimal.Decimal `json:"sellingPrice"`
	StockQuantity *int             `json:"stockQuantity"`
	Category      *string          `json:"category"`
	Supplier      *string          `json:"supplier"`
	SupplierID    *int64           `json:"supplierId"`
}

func (p ProductPatch) Apply(dst *Product) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.CostPrice != nil {
		dst.CostPrice = *p.CostPrice
	}
	if p.SellingPrice != nil {
		dst.SellingPrice = *p.SellingPrice
	}
	if p.StockQuantity != nil {
		dst.StockQuantity = *p.StockQuantity
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.Supplier != nil {
		dst.Supplier = *p.Supplier
	}
	if p.SupplierID != nil {
		dst.SupplierID = cloneInt64(p.SupplierID)
	}
}

type CustomerPatch struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
	Address *string `json:"address"`
}

func (p CustomerPatch) Apply(dst *Customer) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Email != nil {
		dst.Email = *p.Email
	}
	if p.Phone != nil {
		dst.Phone = *p.Phone
	}
	if p.Company != nil {
		dst.Company = *p.Company
	}
	if p.Address != nil {
		dst.Address = *p.Address
	}
}

type SupplierPatch struct {
	Name             *string    `json:"name"`
	CompanyName      *string    `json:"companyName"`
	Email            *string    `json:"email"`
	Phone            *string    `json:"phone"`
	Address          *string    `json:"address"`
	ContactPerson    *string    `json:"contactPerson"`
	SuppliedProducts *[]string  `json:"suppliedProducts,omitempty"`
}

func (p SupplierPatch) Apply(dst *Supplier) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.CompanyName != nil {
		dst.CompanyName = *p.CompanyName
	}
	if p.Email != nil {
		dst.Email = *p.Email
	}
	if p.Phone != nil {
		dst.Phone = *p.Phone
	}
	if p.Address != nil {
		dst.Address = *p.Address
	}
	if p.ContactPerson != nil {
		dst.ContactPerson = *p.ContactPerson
	}
	if p.SuppliedProducts != nil {
		dst.SuppliedProducts = append(StringList{}, (*p.SuppliedProducts)...)
	}
}

type BankAccountPatch struct {
	BankName      *string `json:"bankName"`
	AccountNumber *string `json:"accountNumber"`
	IFSCCode      *string `json:"ifscCode"`
	AccountType   *string `json:"accountType"`
	IsActive      *bool   `json:"isActive"`
}

func (p BankAccountPatch) Apply(dst *BankAccount) {
	if p.BankName != nil {
		dst.BankName = *p.BankName
	}
	if p.AccountNumber != nil {
		dst.AccountNumber = *p.AccountNumber
	}
	if p.IFSCCode != nil {
		dst.IFSCCode = *p.IFSCCode
	}
	if p.AccountType != nil {
		dst.AccountType = *p.AccountType
	}
	if p.IsActive != nil {
		dst.IsActive = *p.IsActive
	}
}

// InvoicePatch covers the only invoice fields editable after creation.
type InvoicePatch struct {
	Status  *InvoiceStatus `json:"status"`
	DueDate *Date          `json:"dueDate"`
}

func (p InvoicePatch) Apply(dst *Invoice) {
	if p.Status != nil {
		dst.Status = *p.Status
	}
	if p.DueDate != nil {
		dst.DueDate = *p.DueDate
	}
}
