package domain

import "testing"

func TestFormatSequenceNumber(t *testing.T) {
	cases := []struct {
		kind SequenceKind
		n    int
		year int
		want string
	}{
		{SequenceSalesOrder, 1, 2026, "SO-001-2026"},
		{SequenceInvoice, 42, 2025, "INV-042-2025"},
		{SequenceTransaction, 1234, 2026, "TXN-1234-2026"},
	}
	for _, tc := range cases {
		if got := FormatSequenceNumber(tc.kind, tc.n, tc.year); got != tc.want {
			t.Fatalf("FormatSequenceNumber(%s, %d, %d) = %q, want %q", tc.kind, tc.n, tc.year, got, tc.want)
		}
	}
}

func TestParseSequenceNumber(t *testing.T) {
	n, year, ok := ParseSequenceNumber(SequenceSalesOrder, "SO-017-2024")
	if !ok || n != 17 || year != 2024 {
		t.Fatalf("parse SO-017-2024 = (%d, %d, %v)", n, year, ok)
	}
	for _, bad := range []string{"", "INV-001-2024", "SO-abc-2024", "SO-001", "SO-000-2024"} {
		if _, _, ok := ParseSequenceNumber(SequenceSalesOrder, bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}
