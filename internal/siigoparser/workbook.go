package siigoparser

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"

	"dcastano/siigo-ingest/internal/dateutils"
	"dcastano/siigo-ingest/internal/ingesterror"
	"dcastano/siigo-ingest/internal/models"
)

var (
	zipMagic = []byte{0x50, 0x4b, 0x03, 0x04}
	oleMagic = []byte{0xd0, 0xcf, 0x11, 0xe0}
)

// formattedDateLayouts are the renderings excelize produces for date-styled
// cells under the common number formats. They only detect that a numeric
// cell is styled as a date; the date value itself always comes from the raw
// serial, which carries no day/month order ambiguity.
var formattedDateLayouts = []string{
	"1/2/06",
	"01/02/06",
	"1/2/2006",
	"01/02/2006",
	"2006-01-02",
	"01-02-06",
	"1-2-06",
	"2-Jan-06",
	"02-Jan-06",
}

// readWorkbook parses the uploaded bytes into rows of raw cells, sniffing
// the container format from the file magic: zip means xlsx, an OLE compound
// file means legacy xls, anything else is treated as CSV. The first sheet is
// used unconditionally.
func readWorkbook(data []byte, filename string) ([][]models.RawCell, error) {
	var (
		rows [][]models.RawCell
		err  error
	)

	switch {
	case bytes.HasPrefix(data, zipMagic):
		rows, err = readXLSX(data, filename)
	case bytes.HasPrefix(data, oleMagic):
		rows, err = readXLS(data, filename)
	default:
		rows, err = readCSV(data, filename)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, &ingesterror.EmptyFileError{FileName: filename}
	}
	return rows, nil
}

func readXLSX(data []byte, filename string) ([][]models.RawCell, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ingesterror.ParseError{FileName: filename, Format: "xlsx", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ingesterror.EmptyFileError{FileName: filename}
	}
	sheet := sheets[0]

	rawRows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &ingesterror.ParseError{FileName: filename, Format: "xlsx", Err: err}
	}
	fmtRows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &ingesterror.ParseError{FileName: filename, Format: "xlsx", Err: err}
	}

	rows := make([][]models.RawCell, len(rawRows))
	for i, rawRow := range rawRows {
		cells := make([]models.RawCell, len(rawRow))
		for j, raw := range rawRow {
			var formatted string
			if i < len(fmtRows) && j < len(fmtRows[i]) {
				formatted = fmtRows[i][j]
			}
			cells[j] = coerceXLSXCell(raw, formatted)
		}
		rows[i] = cells
	}
	return rows, nil
}

// coerceXLSXCell turns an excelize cell into a RawCell. Numeric cells whose
// number format renders them as a date become native date cells built from
// the raw serial; other numeric cells stay numbers so the normalizer can
// apply the serial rule.
func coerceXLSXCell(raw, formatted string) models.RawCell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return models.EmptyCell()
	}

	if b, err := strconv.ParseBool(strings.ToUpper(trimmed)); err == nil && (trimmed == "TRUE" || trimmed == "FALSE") {
		return models.BoolCell(b)
	}

	num, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return models.StringCell(raw)
	}

	if formatted != "" && formatted != trimmed && looksLikeFormattedDate(formatted) {
		return models.DateCell(dateutils.FromExcelSerial(num))
	}
	return models.NumberCell(num)
}

func looksLikeFormattedDate(s string) bool {
	s = strings.TrimSpace(s)
	for _, layout := range formattedDateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func readXLS(data []byte, filename string) ([][]models.RawCell, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ingesterror.ParseError{FileName: filename, Format: "xls", Err: err}
	}

	if len(workbook.GetSheets()) == 0 {
		return nil, &ingesterror.EmptyFileError{FileName: filename}
	}
	sheet, err := workbook.GetSheet(0)
	if err != nil {
		return nil, &ingesterror.ParseError{FileName: filename, Format: "xls", Err: err}
	}

	var rows [][]models.RawCell
	for _, row := range sheet.GetRows() {
		var cells []models.RawCell
		for _, cell := range row.GetCols() {
			cells = append(cells, coerceTextCell(cell.GetString()))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func readCSV(data []byte, filename string) ([][]models.RawCell, error) {
	data = bytes.TrimPrefix(data, []byte{0xef, 0xbb, 0xbf}) // UTF-8 BOM

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var rows [][]models.RawCell
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ingesterror.ParseError{FileName: filename, Format: "csv", Err: err}
		}
		cells := make([]models.RawCell, len(record))
		for j, field := range record {
			cells[j] = coerceTextCell(field)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// sniffDelimiter picks ';' when the first line carries more semicolons than
// commas; accounting exports in es-CO locales commonly use either.
func sniffDelimiter(data []byte) rune {
	line := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		line = data[:idx]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}

// coerceTextCell classifies a text-sourced cell (csv, xls) as empty, numeric
// or string. Dates arrive as text here and are handled by the normalizer's
// string rule.
func coerceTextCell(s string) models.RawCell {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return models.EmptyCell()
	}
	if num, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return models.NumberCell(num)
	}
	return models.StringCell(s)
}
