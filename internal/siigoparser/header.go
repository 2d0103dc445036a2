package siigoparser

import (
	"strings"

	"dcastano/siigo-ingest/internal/ingesterror"
	"dcastano/siigo-ingest/internal/models"
	"dcastano/siigo-ingest/internal/textutils"
)

// Canonical header labels. Matching is done on normalized text (lowercase,
// accent-stripped, whitespace-collapsed), so "Fecha Elaboración" and
// "FECHA ELABORACION" both qualify.
const (
	labelValor          = "valor"
	labelProveedor      = "proveedor"
	labelIdentificacion = "identificacion"
	labelMoneda         = "moneda"
)

// soughtLabels describes the required columns in user-facing error messages.
var soughtLabels = []string{
	"factura ... proveedor",
	"fecha elaboracion",
	"valor",
}

// locateHeader scans at most scanRows leading rows for the header row and
// resolves the column positions of the semantic fields. A row qualifies as
// the header iff it carries all three required labels: a cell containing
// both "factura" and "proveedor", a cell containing "fecha" and
// "elaboracion", and a cell containing "valor". The first qualifying row
// wins.
func locateHeader(rows [][]models.RawCell, scanRows int, filename string) (models.ColumnMap, error) {
	limit := scanRows
	if limit > len(rows) {
		limit = len(rows)
	}

	for i := 0; i < limit; i++ {
		normalized := normalizeHeaderRow(rows[i])
		if !qualifiesAsHeader(normalized) {
			continue
		}
		return resolveColumns(normalized, i, filename)
	}

	return models.ColumnMap{}, &ingesterror.HeaderNotFoundError{
		FileName:     filename,
		ScannedRows:  limit,
		SoughtLabels: soughtLabels,
	}
}

func normalizeHeaderRow(row []models.RawCell) []string {
	normalized := make([]string, len(row))
	for i, cell := range row {
		normalized[i] = textutils.NormalizeLabel(cell.Text())
	}
	return normalized
}

func qualifiesAsHeader(labels []string) bool {
	var hasDocument, hasDate, hasValue bool
	for _, label := range labels {
		if label == "" {
			continue
		}
		if strings.Contains(label, "factura") && strings.Contains(label, labelProveedor) {
			hasDocument = true
		}
		if strings.Contains(label, "fecha") && strings.Contains(label, "elaboracion") {
			hasDate = true
		}
		if strings.Contains(label, labelValor) {
			hasValue = true
		}
	}
	return hasDocument && hasDate && hasValue
}

// resolveColumns maps each semantic field to its column index. The document
// and date columns match by substring; the value column must equal "valor"
// exactly after normalization, since "valor" as a substring is too common
// ("valor unitario"). Optional columns match by exact equality and stay
// unset when absent.
func resolveColumns(labels []string, headerRow int, filename string) (models.ColumnMap, error) {
	colmap := models.ColumnMap{
		DocumentCode: -1,
		Date:         -1,
		Value:        -1,
		HeaderRow:    headerRow,
	}

	for i, label := range labels {
		if label == "" {
			continue
		}
		if colmap.DocumentCode < 0 && strings.Contains(label, "factura") && strings.Contains(label, labelProveedor) {
			colmap.DocumentCode = i
		}
		if colmap.Date < 0 && strings.Contains(label, "fecha") && strings.Contains(label, "elaboracion") {
			colmap.Date = i
		}
		if colmap.Value < 0 && label == labelValor {
			colmap.Value = i
		}
		if !colmap.Provider.Found && label == labelProveedor {
			colmap.Provider = models.Column{Index: i, Found: true}
		}
		if !colmap.Identification.Found && label == labelIdentificacion {
			colmap.Identification = models.Column{Index: i, Found: true}
		}
		if !colmap.Currency.Found && label == labelMoneda {
			colmap.Currency = models.Column{Index: i, Found: true}
		}
	}

	switch {
	case colmap.DocumentCode < 0:
		return colmap, &ingesterror.RequiredColumnMissingError{FileName: filename, Column: "factura proveedor"}
	case colmap.Date < 0:
		return colmap, &ingesterror.RequiredColumnMissingError{FileName: filename, Column: "fecha elaboracion"}
	case colmap.Value < 0:
		return colmap, &ingesterror.RequiredColumnMissingError{FileName: filename, Column: labelValor}
	}
	return colmap, nil
}
