package models

import "time"

// CellKind discriminates the possible representations of a spreadsheet cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellBool
	CellString
	CellDate
)

// RawCell is a single spreadsheet cell value as produced by the workbook
// reader. Exactly one representation is populated, selected by Kind, so the
// normalizer can switch exhaustively instead of inspecting runtime types.
type RawCell struct {
	Kind CellKind
	Num  float64
	Bool bool
	Str  string
	Date time.Time
}

// EmptyCell returns a cell with no value.
func EmptyCell() RawCell {
	return RawCell{Kind: CellEmpty}
}

// NumberCell returns a numeric cell.
func NumberCell(v float64) RawCell {
	return RawCell{Kind: CellNumber, Num: v}
}

// BoolCell returns a boolean cell.
func BoolCell(v bool) RawCell {
	return RawCell{Kind: CellBool, Bool: v}
}

// StringCell returns a text cell. An empty or blank string is still a
// CellString; callers that care about blankness use Text and trim.
func StringCell(v string) RawCell {
	return RawCell{Kind: CellString, Str: v}
}

// DateCell returns a cell holding a native date value.
func DateCell(v time.Time) RawCell {
	return RawCell{Kind: CellDate, Date: v}
}

// IsEmpty reports whether the cell carries no value.
func (c RawCell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// Text returns the cell rendered as text. Numbers and booleans are not
// formatted here; only string cells produce text, which is what the header
// scanner and the document-code extractor need.
func (c RawCell) Text() string {
	if c.Kind == CellString {
		return c.Str
	}
	return ""
}
