package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is the canonical row produced by the ingestion pipeline for every
// spreadsheet row that passes validation. Records are never mutated after
// creation; they live only for the duration of an import.
type Record struct {
	DocumentCode   string          `csv:"document_code" yaml:"document_code"`
	Date           time.Time       `csv:"date" yaml:"date"`
	Identification string          `csv:"identification,omitempty" yaml:"identification,omitempty"`
	Provider       string          `csv:"provider,omitempty" yaml:"provider,omitempty"`
	Value          decimal.Decimal `csv:"value" yaml:"value"`
	Currency       string          `csv:"currency" yaml:"currency"`
	Type           DocumentType    `csv:"type" yaml:"type"`
	Month          int             `csv:"month" yaml:"month"` // 0-11
	Year           int             `csv:"year" yaml:"year"`
}

// Column is the resolved position of an optional semantic column. Found is
// false when the header row carries no matching label.
type Column struct {
	Index int
	Found bool
}

// Cell returns the cell at the column's position in row, or an empty cell
// when the column is absent or the row is too short.
func (c Column) Cell(row []RawCell) RawCell {
	if !c.Found || c.Index < 0 || c.Index >= len(row) {
		return EmptyCell()
	}
	return row[c.Index]
}

// ColumnMap holds the resolved positions of the semantic columns within a
// sheet. The three required indices are always non-negative once a header
// row has been accepted. Built once per file and immutable afterward.
type ColumnMap struct {
	DocumentCode int
	Date         int
	Value        int

	Provider       Column
	Identification Column
	Currency       Column

	// HeaderRow is the index of the accepted header row; data rows start
	// strictly after it.
	HeaderRow int
}

// Valid reports whether the required indices are structurally usable. The
// header qualification rules guarantee this; the normalizer still checks it
// defensively.
func (m ColumnMap) Valid() bool {
	return m.DocumentCode >= 0 && m.Date >= 0 && m.Value >= 0
}
