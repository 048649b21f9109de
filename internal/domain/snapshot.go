package domain

import (
	"fmt"
	"time"
)

// SchemaVersion is the snapshot layout written by this build. Snapshots
// without a version predate versioning and are read as version 1.
const SchemaVersion = 1

// Collection names one set of same-typed records.
type Collection string

const (
	CollectionProducts     Collection = "products"
	CollectionCustomers    Collection = "customers"
	CollectionSuppliers    Collection = "suppliers"
	CollectionBankAccounts Collection = "bankAccounts"
	CollectionSalesOrders  Collection = "salesOrders"
	CollectionInvoices     Collection = "invoices"
	CollectionTransactions Collection = "transactions"
)

// Collections lists every collection in export order.
var Collections = []Collection{
	CollectionProducts,
	CollectionSalesOrders,
	CollectionInvoices,
	CollectionCustomers,
	CollectionSuppliers,
	CollectionBankAccounts,
	CollectionTransactions,
}

// ParseCollection accepts the camelCase names and the kebab-case REST names.
func ParseCollection(name string) (Collection, bool) {
	switch name {
	case "products":
		return CollectionProducts, true
	case "customers":
		return CollectionCustomers, true
	case "suppliers":
		return CollectionSuppliers, true
	case "bankAccounts", "bank-accounts":
		return CollectionBankAccounts, true
	case "salesOrders", "sales-orders":
		return CollectionSalesOrders, true
	case "invoices":
		return CollectionInvoices, true
	case "transactions":
		return CollectionTransactions, true
	}
	return "", false
}

// Counters hold the last allocated id per collection and the last allocated
// number per sequence kind.
type Counters struct {
	IDs       map[Collection]int64 `json:"ids"`
	Sequences map[SequenceKind]int `json:"sequences"`
}

// Snapshot is the full contents of every collection at one point in time.
type Snapshot struct {
	SchemaVersion int           `json:"schemaVersion"`
	Products      []Product     `json:"products"`
	SalesOrders   []SalesOrder  `json:"salesOrders"`
	Invoices      []Invoice     `json:"invoices"`
	Customers     []Customer    `json:"customers"`
	Suppliers     []Supplier    `json:"suppliers"`
	BankAccounts  []BankAccount `json:"bankAccounts"`
	Transactions  []Transaction `json:"transactions"`
	Counters      Counters      `json:"counters"`
	LastUpdated   time.Time     `json:"lastUpdated"`
}

// NewSnapshot returns an empty snapshot with every collection present.
func NewSnapshot() *Snapshot {
	s := &Snapshot{SchemaVersion: SchemaVersion}
	s.Normalize()
	return s
}

// Normalize makes every collection non-nil and raises the counters so that
// the next allocation cannot collide with an existing record or number.
func (s *Snapshot) Normalize() {
	if s.SchemaVersion == 0 {
		s.SchemaVersion = SchemaVersion
	}
	if s.Products == nil {
		s.Products = []Product{}
	}
	if s.SalesOrders == nil {
		s.SalesOrders = []SalesOrder{}
	}
	if s.Invoices == nil {
		s.Invoices = []Invoice{}
	}
	if s.Customers == nil {
		s.Customers = []Customer{}
	}
	if s.Suppliers == nil {
		s.Suppliers = []Supplier{}
	}
	if s.BankAccounts == nil {
		s.BankAccounts = []BankAccount{}
	}
	if s.Transactions == nil {
		s.Transactions = []Transaction{}
	}
	if s.Counters.IDs == nil {
		s.Counters.IDs = make(map[Collection]int64)
	}
	if s.Counters.Sequences == nil {
		s.Counters.Sequences = make(map[SequenceKind]int)
	}

	raiseID := func(c Collection, id int64) {
		if id > s.Counters.IDs[c] {
			s.Counters.IDs[c] = id
		}
	}
	for _, p := range s.Products {
		raiseID(CollectionProducts, p.ID)
	}
	for _, c := range s.Customers {
		raiseID(CollectionCustomers, c.ID)
	}
	for _, sup := range s.Suppliers {
		raiseID(CollectionSuppliers, sup.ID)
	}
	for _, a := range s.BankAccounts {
		raiseID(CollectionBankAccounts, a.ID)
	}
	for _, o := range s.SalesOrders {
		raiseID(CollectionSalesOrders, o.ID)
	}
	for _, inv := range s.Invoices {
		raiseID(CollectionInvoices, inv.ID)
	}
	for _, t := range s.Transactions {
		raiseID(CollectionTransactions, t.ID)
	}

	raiseSeq := func(kind SequenceKind, number string, count int) {
		last := count
		if n, _, ok := ParseSequenceNumber(kind, number); ok && n > last {
			last = n
		}
		if last > s.Counters.Sequences[kind] {
			s.Counters.Sequences[kind] = last
		}
	}
	for i, o := range s.SalesOrders {
		raiseSeq(SequenceSalesOrder, o.OrderNumber, i+1)
	}
	for i, inv := range s.Invoices {
		raiseSeq(SequenceInvoice, inv.InvoiceNumber, i+1)
	}
	for i, t := range s.Transactions {
		raiseSeq(SequenceTransaction, t.TransactionNumber, i+1)
	}
}

// CheckVersion rejects snapshots written by a newer or unknown layout.
func (s *Snapshot) CheckVersion() error {
	if s.SchemaVersion == 0 || s.SchemaVersion == SchemaVersion {
		return nil
	}
	return fmt.Errorf("snapshot schema version %d is not supported (want %d)", s.SchemaVersion, SchemaVersion)
}

// NextID allocates the next id of collection c.
func (s *Snapshot) NextID(c Collection) int64 {
	s.Counters.IDs[c]++
	return s.Counters.IDs[c]
}

// NextNumber allocates the next number of kind for the given year.
func (s *Snapshot) NextNumber(kind SequenceKind, year int) string {
	s.Counters.Sequences[kind]++
	return FormatSequenceNumber(kind, s.Counters.Sequences[kind], year)
}

// CopyCollection replaces collection c of s with a copy of the one in src.
func (s *Snapshot) CopyCollection(c Collection, src *Snapshot) error {
	clone := src.Clone()
	switch c {
	case CollectionProducts:
		s.Products = clone.Products
	case CollectionCustomers:
		s.Customers = clone.Customers
	case CollectionSuppliers:
		s.Suppliers = clone.Suppliers
	case CollectionBankAccounts:
		s.BankAccounts = clone.BankAccounts
	case CollectionSalesOrders:
		s.SalesOrders = clone.SalesOrders
	case CollectionInvoices:
		s.Invoices = clone.Invoices
	case CollectionTransactions:
		s.Transactions = clone.Transactions
	default:
		return fmt.Errorf("unknown collection %q", c)
	}
	s.Normalize()
	return nil
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		SchemaVersion: s.SchemaVersion,
		Products:      make([]Product, len(s.Products)),
		SalesOrders:   make([]SalesOrder, len(s.SalesOrders)),
		Invoices:      make([]Invoice, len(s.Invoices)),
		Customers:     append([]Customer{}, s.Customers...),
		Suppliers:     make([]Supplier, len(s.Suppliers)),
		BankAccounts:  append([]BankAccount{}, s.BankAccounts...),
		Transactions:  make([]Transaction, len(s.Transactions)),
		Counters: Counters{
			IDs:       make(map[Collection]int64, len(s.Counters.IDs)),
			Sequences: make(map[SequenceKind]int, len(s.Counters.Sequences)),
		},
		LastUpdated: s.LastUpdated,
	}
	for i, p := range s.Products {
		out.Products[i] = CloneProduct(p)
	}
	for i, o := range s.SalesOrders {
		out.SalesOrders[i] = CloneSalesOrder(o)
	}
	for i, inv := range s.Invoices {
		out.Invoices[i] = CloneInvoice(inv)
	}
	for i, sup := range s.Suppliers {
		out.Suppliers[i] = CloneSupplier(sup)
	}
	for i, t := range s.Transactions {
		out.Transactions[i] = CloneTransaction(t)
	}
	for k, v := range s.Counters.IDs {
		out.Counters.IDs[k] = v
	}
	for k, v := range s.Counters.Sequences {
		out.Counters.Sequences[k] = v
	}
	return out
}

func cloneInt64(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func CloneProduct(p Product) Product {
	p.SupplierID = cloneInt64(p.SupplierID)
	return p
}

func CloneSupplier(s Supplier) Supplier {
	if s.SuppliedProducts != nil {
		s.SuppliedProducts = append(StringList{}, s.SuppliedProducts...)
	}
	return s
}

func cloneItems(items OrderItems) OrderItems {
	if items == nil {
		return nil
	}
	out := make(OrderItems, len(items))
	for i, item := range items {
		item.ProductID = cloneInt64(item.ProductID)
		out[i] = item
	}
	return out
}

func CloneSalesOrder(o SalesOrder) SalesOrder {
	o.CustomerID = cloneInt64(o.CustomerID)
	o.BankAccountID = cloneInt64(o.BankAccountID)
	if o.DueDate != nil {
		d := *o.DueDate
		o.DueDate = &d
	}
	o.Items = cloneItems(o.Items)
	return o
}

func CloneInvoice(inv Invoice) Invoice {
	inv.BankAccountID = cloneInt64(inv.BankAccountID)
	inv.Items = cloneItems(inv.Items)
	return inv
}

func CloneTransaction(t Transaction) Transaction {
	t.RelatedOrderID = cloneInt64(t.RelatedOrderID)
	return t
}
