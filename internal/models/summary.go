package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TypeSummary accumulates the monetary totals for one document type.
// Total always equals the sum of ByMonth.
type TypeSummary struct {
	Total   decimal.Decimal
	ByMonth [12]decimal.Decimal
}

// AggregateSummary holds per-type, per-month running totals for one file.
type AggregateSummary map[DocumentType]*TypeSummary

// NewAggregateSummary returns a summary with a zeroed bucket for each of the
// four document types.
func NewAggregateSummary() AggregateSummary {
	s := make(AggregateSummary, len(DocumentTypes))
	for _, dt := range DocumentTypes {
		s[dt] = &TypeSummary{}
	}
	return s
}

// Add credits value to the type's total and to its month bucket.
func (s AggregateSummary) Add(dt DocumentType, month int, value decimal.Decimal) {
	ts := s[dt]
	if ts == nil {
		ts = &TypeSummary{}
		s[dt] = ts
	}
	ts.Total = ts.Total.Add(value)
	ts.ByMonth[month] = ts.ByMonth[month].Add(value)
}

// DateRange is the min/max date among a file's accepted records.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Extend widens the range to include d.
func (r *DateRange) Extend(d time.Time) {
	if r.Start.IsZero() || d.Before(r.Start) {
		r.Start = d
	}
	if r.End.IsZero() || d.After(r.End) {
		r.End = d
	}
}

// Metadata reports row accounting for one ingestion run.
// ProcessedRows + SkippedRows always equals TotalRows, and DateRange is nil
// exactly when ProcessedRows is zero.
type Metadata struct {
	TotalRows     int
	ProcessedRows int
	SkippedRows   int
	DateRange     *DateRange
}
