package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(2026, time.March, 5)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2026-03-05"` {
		t.Fatalf("marshal = %s", data)
	}

	var parsed Date
	if err := json.Unmarshal([]byte(`"2026-03-05T10:30:00.000Z"`), &parsed); err != nil {
		t.Fatalf("unmarshal timestamp: %v", err)
	}
	if !parsed.Equal(d) {
		t.Fatalf("parsed = %s, want %s", parsed, d)
	}
	if err := json.Unmarshal([]byte(`"yesterday"`), &parsed); err == nil {
		t.Fatal("expected invalid date error")
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan("2026-01-31 00:00:00"); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if d.String() != "2026-01-31" {
		t.Fatalf("scanned = %s", d)
	}
	if err := d.Scan(time.Date(2025, 12, 1, 15, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan time: %v", err)
	}
	if d.String() != "2025-12-01" {
		t.Fatalf("scanned = %s", d)
	}
	if got := d.AddDays(InvoiceTermDays).String(); got != "2025-12-31" {
		t.Fatalf("add days = %s", got)
	}
}

func TestOrderItemsTotal(t *testing.T) {
	items := OrderItems{
		{ProductName: "Rose Incense Sticks", Quantity: 10, Price: decimal.RequireFromString("12.50")},
		{ProductName: "Sandalwood Cones", Quantity: 2, Price: decimal.RequireFromString("15.75")},
	}
	want := decimal.RequireFromString("156.50")
	if got := items.Total(); !got.Equal(want) {
		t.Fatalf("total = %s, want %s", got, want)
	}
}

func TestOrderItemsValueRoundTrip(t *testing.T) {
	items := OrderItems{{ProductID: Int64Ptr(3), ProductName: "Rose", Quantity: 1, Price: decimal.NewFromInt(4)}}
	v, err := items.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	var back OrderItems
	if err := back.Scan(v); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(back) != 1 || *back[0].ProductID != 3 || !back[0].Price.Equal(decimal.NewFromInt(4)) {
		t.Fatalf("round trip = %+v", back)
	}
}

func TestInvoiceForOrder(t *testing.T) {
	order := SalesOrder{
		OrderNumber:   "SO-004-2026",
		CustomerName:  "John Smith",
		OrderDate:     NewDate(2026, time.February, 1),
		TotalAmount:   decimal.NewFromInt(100),
		BankAccountID: Int64Ptr(2),
		Items:         OrderItems{{ProductName: "Rose", Quantity: 4, Price: decimal.NewFromInt(25)}},
	}
	inv := InvoiceForOrder(order)
	if inv.Status != InvoicePending {
		t.Fatalf("status = %s", inv.Status)
	}
	if inv.DueDate.String() != "2026-03-03" {
		t.Fatalf("due date = %s", inv.DueDate)
	}
	if inv.OrderNumber != order.OrderNumber || !inv.Amount.Equal(order.TotalAmount) {
		t.Fatalf("invoice does not mirror order: %+v", inv)
	}
	inv.Items[0].Quantity = 1
	if order.Items[0].Quantity != 4 {
		t.Fatal("invoice shares items with order")
	}
}

func TestClampStock(t *testing.T) {
	if got := ClampStock(10, 3); got != 7 {
		t.Fatalf("ClampStock(10, 3) = %d", got)
	}
	if got := ClampStock(2, 5); got != 0 {
		t.Fatalf("ClampStock(2, 5) = %d", got)
	}
}
