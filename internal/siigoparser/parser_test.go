package siigoparser

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"dcastano/siigo-ingest/internal/ingesterror"
	"dcastano/siigo-ingest/internal/logging"
	"dcastano/siigo-ingest/internal/models"
)

func testParser() *Parser {
	return NewParser(Options{Logger: logging.NewNop()})
}

func TestParseCSV(t *testing.T) {
	data := []byte("Reporte de compras;;\n" +
		";;\n" +
		"No. Factura Proveedor;Fecha Elaboración;Valor;Proveedor\n" +
		"FC-001;15/01/2023;1.000,00;Acme SAS\n" +
		"ND-9;10/06/2023;500;Otro SAS\n" +
		"XX-123;15/01/2023;200;Malo\n")

	result, err := testParser().Parse(bytes.NewReader(data), "compras.csv")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Metadata.TotalRows)
	assert.Equal(t, 2, result.Metadata.ProcessedRows)
	assert.Equal(t, 1, result.Metadata.SkippedRows)
	require.Len(t, result.Records, 2)

	first := result.Records[0]
	assert.Equal(t, "FC-001", first.DocumentCode)
	assert.Equal(t, models.DocTypeFC, first.Type)
	assert.Equal(t, "Acme SAS", first.Provider)
	assert.Equal(t, "COP", first.Currency)
	assert.True(t, first.Value.Equal(decimal.NewFromInt(1000)))

	fc := result.Summary[models.DocTypeFC]
	require.NotNil(t, fc)
	assert.True(t, fc.Total.Equal(decimal.NewFromInt(1000)))
	assert.True(t, fc.ByMonth[0].Equal(decimal.NewFromInt(1000)))

	nd := result.Summary[models.DocTypeND]
	require.NotNil(t, nd)
	assert.True(t, nd.ByMonth[5].Equal(decimal.NewFromInt(500)))

	require.NotNil(t, result.Metadata.DateRange)
	assert.Equal(t, time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC), result.Metadata.DateRange.Start)
	assert.Equal(t, time.Date(2023, time.June, 10, 0, 0, 0, 0, time.UTC), result.Metadata.DateRange.End)
}

func TestParseCSVCommaDelimited(t *testing.T) {
	data := []byte("No. Factura Proveedor,Fecha Elaboración,Valor\n" +
		"FC-001,15/01/2023,1000\n")

	result, err := testParser().Parse(bytes.NewReader(data), "compras.csv")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Metadata.ProcessedRows)
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Reporte de compras"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"No. Factura Proveedor", "Fecha Elaboracion", "Valor", "Proveedor"}))
	// 44941 is the date serial for 2023-01-15.
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]interface{}{"FC-001", 44941.0, 1000.0, "Acme SAS"}))
	require.NoError(t, f.SetSheetRow(sheet, "A5", &[]interface{}{"ND-9", "10/06/2023", "500", "Otro SAS"}))
	require.NoError(t, f.SetSheetRow(sheet, "A6", &[]interface{}{"XX-123", 44941.0, 200.0, "Malo"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	result, err := testParser().Parse(buf, "compras.xlsx")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Metadata.TotalRows)
	assert.Equal(t, 2, result.Metadata.ProcessedRows)
	assert.Equal(t, 1, result.Metadata.SkippedRows)
	require.Len(t, result.Records, 2)

	first := result.Records[0]
	assert.Equal(t, time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, 0, first.Month)
	assert.Equal(t, 2023, first.Year)

	fc := result.Summary[models.DocTypeFC]
	require.NotNil(t, fc)
	assert.True(t, fc.ByMonth[0].Equal(decimal.NewFromInt(1000)))
}

func TestParseXLSXDateStyledCell(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"No. Factura Proveedor", "Fecha Elaboracion", "Valor"}))
	// 44990 is the date serial for 2023-03-05, ambiguous when rendered
	// day-first ("05/03/2023" reads as May 3 under a month-first layout).
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"FC-001", 44990.0, 1000.0}))

	numFmt := "dd/mm/yyyy"
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "B2", "B2", style))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	result, err := testParser().Parse(buf, "compras.xlsx")
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	record := result.Records[0]
	assert.Equal(t, time.Date(2023, time.March, 5, 0, 0, 0, 0, time.UTC), record.Date)
	assert.Equal(t, 2, record.Month)

	fc := result.Summary[models.DocTypeFC]
	require.NotNil(t, fc)
	assert.True(t, fc.ByMonth[2].Equal(decimal.NewFromInt(1000)))
	assert.True(t, fc.ByMonth[4].IsZero())
}

func TestCoerceXLSXCellDateStyled(t *testing.T) {
	// Formatted text differing from the raw serial marks a date-styled
	// cell; the value must come from the serial, not the rendered text.
	cell := coerceXLSXCell("44990", "05/03/2023")
	require.Equal(t, models.CellDate, cell.Kind)
	assert.Equal(t, time.Date(2023, time.March, 5, 0, 0, 0, 0, time.UTC), cell.Date)

	// Day above 12 matches no detection layout; the serial rule in the
	// normalizer covers it.
	assert.Equal(t, models.CellNumber, coerceXLSXCell("45010", "25/03/2023").Kind)

	// Plain numbers stay numeric.
	assert.Equal(t, models.CellNumber, coerceXLSXCell("1000", "1000").Kind)
}

func TestParseEmptyFile(t *testing.T) {
	_, err := testParser().Parse(bytes.NewReader(nil), "vacio.csv")
	require.Error(t, err)

	var empty *ingesterror.EmptyFileError
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, "vacio.csv", empty.FileName)
}

func TestParseHeaderNotFound(t *testing.T) {
	data := []byte("una;fila;cualquiera\notra;fila;mas\n")

	_, err := testParser().Parse(bytes.NewReader(data), "compras.csv")
	require.Error(t, err)

	var notFound *ingesterror.HeaderNotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestParseCorruptWorkbook(t *testing.T) {
	// OLE compound-file magic followed by garbage.
	data := append([]byte{0xd0, 0xcf, 0x11, 0xe0}, bytes.Repeat([]byte{0x00}, 64)...)

	_, err := testParser().Parse(bytes.NewReader(data), "compras.xls")
	require.Error(t, err)

	var parseErr *ingesterror.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "xls", parseErr.Format)
}

func TestNewParserFillsDefaults(t *testing.T) {
	p := NewParser(Options{})
	assert.Equal(t, 10, p.opts.HeaderScanRows)
	assert.Equal(t, 2020, p.opts.YearWindow.Min)
	assert.Equal(t, 2030, p.opts.YearWindow.Max)
	assert.NotNil(t, p.opts.Logger)
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, ';', sniffDelimiter([]byte("a;b;c\n1,2;3\n")))
	assert.Equal(t, ',', sniffDelimiter([]byte("a,b,c\n")))
	assert.Equal(t, ',', sniffDelimiter([]byte("")))
}

func TestCoerceTextCell(t *testing.T) {
	assert.Equal(t, models.CellEmpty, coerceTextCell("  ").Kind)
	assert.Equal(t, models.CellNumber, coerceTextCell("1500.25").Kind)
	assert.Equal(t, models.CellString, coerceTextCell("FC-001").Kind)
}
