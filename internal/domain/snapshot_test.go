package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizeRaisesCounters(t *testing.T) {
	s := &Snapshot{
		Products:    []Product{{ID: 7}, {ID: 3}},
		SalesOrders: []SalesOrder{{ID: 1, OrderNumber: "SO-001-2024"}, {ID: 2, OrderNumber: "SO-009-2024"}},
		Invoices:    []Invoice{{ID: 1, InvoiceNumber: "legacy"}},
	}
	s.Normalize()

	if got := s.Counters.IDs[CollectionProducts]; got != 7 {
		t.Fatalf("product id counter = %d, want 7", got)
	}
	if got := s.Counters.Sequences[SequenceSalesOrder]; got != 9 {
		t.Fatalf("order sequence = %d, want 9", got)
	}
	// unparsable numbers fall back to the collection length
	if got := s.Counters.Sequences[SequenceInvoice]; got != 1 {
		t.Fatalf("invoice sequence = %d, want 1", got)
	}
	if s.Customers == nil || s.Transactions == nil {
		t.Fatal("expected empty collections to be non-nil")
	}
	if got := s.NextNumber(SequenceSalesOrder, 2026); got != "SO-010-2026" {
		t.Fatalf("next order number = %q", got)
	}
	if got := s.NextID(CollectionProducts); got != 8 {
		t.Fatalf("next product id = %d, want 8", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := NewSnapshot()
	s.Suppliers = []Supplier{{ID: 1, SuppliedProducts: StringList{"Rose"}}}
	s.SalesOrders = []SalesOrder{{
		ID:            1,
		BankAccountID: Int64Ptr(4),
		Items:         OrderItems{{ProductName: "Rose", Quantity: 1, Price: decimal.NewFromInt(5)}},
	}}

	c := s.Clone()
	c.Suppliers[0].SuppliedProducts[0] = "Jasmine"
	c.SalesOrders[0].Items[0].Quantity = 99
	*c.SalesOrders[0].BankAccountID = 5

	if s.Suppliers[0].SuppliedProducts[0] != "Rose" {
		t.Fatal("supplier products shared between clones")
	}
	if s.SalesOrders[0].Items[0].Quantity != 1 {
		t.Fatal("order items shared between clones")
	}
	if *s.SalesOrders[0].BankAccountID != 4 {
		t.Fatal("bank account pointer shared between clones")
	}
}

func TestCheckVersion(t *testing.T) {
	if err := (&Snapshot{}).CheckVersion(); err != nil {
		t.Fatalf("unversioned snapshot rejected: %v", err)
	}
	if err := (&Snapshot{SchemaVersion: SchemaVersion + 1}).CheckVersion(); err == nil {
		t.Fatal("expected future schema version to be rejected")
	}
}

func TestSnapshotJSONLayout(t *testing.T) {
	data, err := json.Marshal(NewSnapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"products", "salesOrders", "invoices", "customers", "suppliers", "bankAccounts", "transactions", "lastUpdated"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("snapshot json missing %q", key)
		}
	}
}
