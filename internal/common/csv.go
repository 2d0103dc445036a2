// Package common provides the canonical CSV export shared by the CLI
// commands.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"dcastano/siigo-ingest/internal/dateutils"
	"dcastano/siigo-ingest/internal/logging"
	"dcastano/siigo-ingest/internal/models"
)

// Delimiter is the CSV output delimiter, configurable via config or the
// CSV_DELIMITER environment variable.
var Delimiter rune = ','

func init() {
	if val := os.Getenv("CSV_DELIMITER"); val != "" {
		SetDelimiter([]rune(val)[0])
	}
}

// SetDelimiter sets the delimiter for CSV output.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// exportRow is the flat CSV shape of a canonical record.
type exportRow struct {
	DocumentCode   string `csv:"Documento"`
	Date           string `csv:"Fecha"`
	Type           string `csv:"Tipo"`
	TypeName       string `csv:"Tipo Nombre"`
	Identification string `csv:"Identificacion"`
	Provider       string `csv:"Proveedor"`
	Value          string `csv:"Valor"`
	Currency       string `csv:"Moneda"`
	Month          int    `csv:"Mes"`
	Year           int    `csv:"Anio"`
}

func toExportRow(r models.Record) exportRow {
	return exportRow{
		DocumentCode:   r.DocumentCode,
		Date:           dateutils.ToISODate(r.Date),
		Type:           string(r.Type),
		TypeName:       r.Type.Name(),
		Identification: r.Identification,
		Provider:       r.Provider,
		Value:          r.Value.StringFixed(2),
		Currency:       r.Currency,
		Month:          r.Month,
		Year:           r.Year,
	}
}

// WriteRecords writes canonical records as CSV to w.
func WriteRecords(records []models.Record, w io.Writer) error {
	rows := make([]exportRow, len(records))
	for i, r := range records {
		rows[i] = toExportRow(r)
	}

	return gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(newDelimitedWriter(w)))
}

// WriteRecordsToCSV writes canonical records to the CSV file at path.
func WriteRecordsToCSV(records []models.Record, path string, logger logging.Logger) error {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	logger.Info("Writing records to CSV",
		logging.Field{Key: "file", Value: path},
		logging.Field{Key: "count", Value: len(records)})

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, models.PermissionExportCSV) // #nosec G304 -- CLI tool writes user-chosen output paths
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logger.WithError(cerr).Warn("Failed to close CSV file")
		}
	}()

	if err := WriteRecords(records, f); err != nil {
		return fmt.Errorf("error writing CSV file: %w", err)
	}
	return nil
}

func newDelimitedWriter(w io.Writer) *csv.Writer {
	writer := csv.NewWriter(w)
	writer.Comma = Delimiter
	return writer
}
