// Package ingesterror defines the error taxonomy of the ingestion pipeline.
// Stage-level failures abort the whole file; row-level problems are never
// errors, they are counted as skipped rows by the normalizer.
package ingesterror

import (
	"fmt"
	"strings"
)

// ParseError reports that the uploaded bytes are not a readable spreadsheet.
type ParseError struct {
	FileName string
	Format   string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: file is not a valid spreadsheet (%s): %v",
		e.FileName, e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EmptyFileError reports a workbook that parsed but has no rows.
type EmptyFileError struct {
	FileName string
}

func (e *EmptyFileError) Error() string {
	return fmt.Sprintf("%s: workbook contains no rows", e.FileName)
}

// HeaderNotFoundError reports that no row within the scan window carried all
// required column labels. SoughtLabels names the labels that were looked for
// so the user can correct the sheet.
type HeaderNotFoundError struct {
	FileName     string
	ScannedRows  int
	SoughtLabels []string
}

func (e *HeaderNotFoundError) Error() string {
	return fmt.Sprintf("%s: no header row found in the first %d rows (expected columns: %s)",
		e.FileName, e.ScannedRows, strings.Join(e.SoughtLabels, ", "))
}

// RequiredColumnMissingError reports a required column that resolved to no
// position after a header row was accepted. The header qualification rules
// make this unreachable; it is guarded defensively.
type RequiredColumnMissingError struct {
	FileName string
	Column   string
}

func (e *RequiredColumnMissingError) Error() string {
	return fmt.Sprintf("%s: required column %q missing after header match", e.FileName, e.Column)
}
