package siigoparser

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"dcastano/siigo-ingest/internal/currencyutils"
	"dcastano/siigo-ingest/internal/dateutils"
	"dcastano/siigo-ingest/internal/ingesterror"
	"dcastano/siigo-ingest/internal/models"
)

// normalizeRows converts every row after the header into canonical records
// and accumulates the aggregate summary. Rows failing any validation rule
// (empty document code, unclassifiable type, implausible date, non-positive
// value) are skipped and counted, never reported as errors.
func normalizeRows(rows [][]models.RawCell, colmap models.ColumnMap, opts Options, filename string) (*Result, error) {
	if !colmap.Valid() {
		// Unreachable through locateHeader; guarded for direct callers.
		return nil, &ingesterror.RequiredColumnMissingError{FileName: filename, Column: "(column map)"}
	}

	result := &Result{
		Summary: models.NewAggregateSummary(),
	}
	var dateRange models.DateRange

	for i := colmap.HeaderRow + 1; i < len(rows); i++ {
		row := rows[i]
		result.Metadata.TotalRows++

		record, ok := normalizeRow(row, colmap, opts.YearWindow)
		if !ok {
			result.Metadata.SkippedRows++
			continue
		}

		result.Metadata.ProcessedRows++
		result.Records = append(result.Records, record)
		result.Summary.Add(record.Type, record.Month, record.Value)
		dateRange.Extend(record.Date)
	}

	if result.Metadata.ProcessedRows > 0 {
		result.Metadata.DateRange = &dateRange
	}
	return result, nil
}

func normalizeRow(row []models.RawCell, colmap models.ColumnMap, window dateutils.YearWindow) (models.Record, bool) {
	docCode := strings.TrimSpace(cellText(cellAt(row, colmap.DocumentCode)))
	if docCode == "" {
		return models.Record{}, false
	}

	docType, ok := models.Classify(docCode)
	if !ok {
		return models.Record{}, false
	}

	date, ok := coerceDate(cellAt(row, colmap.Date), window)
	if !ok {
		return models.Record{}, false
	}

	value := coerceValue(cellAt(row, colmap.Value))
	if !value.IsPositive() {
		return models.Record{}, false
	}

	currency := strings.TrimSpace(cellText(colmap.Currency.Cell(row)))
	if currency == "" {
		currency = models.DefaultCurrency
	}

	return models.Record{
		DocumentCode:   docCode,
		Date:           date,
		Identification: strings.TrimSpace(cellText(colmap.Identification.Cell(row))),
		Provider:       strings.TrimSpace(cellText(colmap.Provider.Cell(row))),
		Value:          value,
		Currency:       strings.ToUpper(currency),
		Type:           docType,
		Month:          int(date.Month()) - 1,
		Year:           date.Year(),
	}, true
}

// coerceDate applies the date precedence rules: a native date is used as-is,
// a number is treated as an Excel date serial, and a string must match the
// day-first DD/MM/YYYY pattern. Whatever the rule, the resulting year must
// fall inside the plausibility window.
func coerceDate(cell models.RawCell, window dateutils.YearWindow) (time.Time, bool) {
	var date time.Time

	switch cell.Kind {
	case models.CellDate:
		date = cell.Date
	case models.CellNumber:
		date = dateutils.FromExcelSerial(cell.Num)
	case models.CellString:
		parsed, err := dateutils.ParseDayFirst(cell.Str)
		if err != nil {
			return time.Time{}, false
		}
		date = parsed
	default:
		return time.Time{}, false
	}

	if !window.Contains(date) {
		return time.Time{}, false
	}
	return date, true
}

// coerceValue extracts the monetary value of a row. Numbers contribute their
// absolute value; strings go through the locale-format parser; anything else
// is zero, which the caller rejects.
func coerceValue(cell models.RawCell) decimal.Decimal {
	switch cell.Kind {
	case models.CellNumber:
		return decimal.NewFromFloat(cell.Num).Abs()
	case models.CellString:
		return currencyutils.ParseAmount(cell.Str)
	default:
		return decimal.Zero
	}
}

func cellAt(row []models.RawCell, index int) models.RawCell {
	if index < 0 || index >= len(row) {
		return models.EmptyCell()
	}
	return row[index]
}

// cellText renders a cell as text for the code/provider/identification
// fields. Numeric cells are formatted without an exponent so numeric NITs
// survive as identifiers.
func cellText(cell models.RawCell) string {
	switch cell.Kind {
	case models.CellString:
		return cell.Str
	case models.CellNumber:
		return strconv.FormatFloat(cell.Num, 'f', -1, 64)
	default:
		return ""
	}
}
