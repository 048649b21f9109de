package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// SequenceKind identifies a human-readable numbering series.
type SequenceKind string

const (
	SequenceSalesOrder  SequenceKind = "SO"
	SequenceInvoice     SequenceKind = "INV"
	SequenceTransaction SequenceKind = "TXN"
)

// SequenceKinds lists every numbering series.
var SequenceKinds = []SequenceKind{SequenceSalesOrder, SequenceInvoice, SequenceTransaction}

// FormatSequenceNumber renders PREFIX-NNN-YYYY. Numbers past 999 keep all
// their digits.
func FormatSequenceNumber(kind SequenceKind, n int, year int) string {
	return fmt.Sprintf("%s-%03d-%d", kind, n, year)
}

// ParseSequenceNumber extracts the counter part of a number produced by
// FormatSequenceNumber. ok is false for numbers of another kind or shape.
func ParseSequenceNumber(kind SequenceKind, number string) (n int, year int, ok bool) {
	parts := strings.Split(strings.TrimSpace(number), "-")
	if len(parts) != 3 || parts[0] != string(kind) {
		return 0, 0, false
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n <= 0 {
		return 0, 0, false
	}
	year, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, false
	}
	return n, year, true
}
