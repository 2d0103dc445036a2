// Package siigoparser implements the spreadsheet ingestion pipeline for
// SIIGO accounting documents: it reads an uploaded workbook (xlsx, xls or
// csv), locates the header row, and normalizes every data row into canonical
// records with per-type, per-month monetary totals.
//
// The pipeline is a strict linear sequence per file, reader to header
// locator to normalizer, with no shared state between files; callers may run
// several files concurrently.
package siigoparser

import (
	"fmt"
	"io"
	"os"

	"dcastano/siigo-ingest/internal/dateutils"
	"dcastano/siigo-ingest/internal/logging"
	"dcastano/siigo-ingest/internal/models"
)

// Options tune the pipeline. The zero value is not usable directly; use
// DefaultOptions and override what you need.
type Options struct {
	// YearWindow bounds plausible elaboration years. Rows dated outside the
	// window are skipped.
	YearWindow dateutils.YearWindow

	// HeaderScanRows is how many leading rows are examined for the header.
	HeaderScanRows int

	// Logger receives stage-level diagnostics. Row skips are debug noise,
	// never errors.
	Logger logging.Logger
}

// DefaultOptions returns the standard pipeline configuration.
func DefaultOptions() Options {
	return Options{
		YearWindow:     dateutils.YearWindow{Min: 2020, Max: 2030},
		HeaderScanRows: 10,
		Logger:         logging.NewLogrusAdapter("info", "text"),
	}
}

// Result is the pipeline's output for one file. Records, summary and
// metadata are built together and satisfy the aggregate invariants: each
// type's total equals the sum of its month buckets and of its records'
// values, and processed+skipped equals total rows.
type Result struct {
	Records  []models.Record
	Summary  models.AggregateSummary
	Metadata models.Metadata
}

// Parser runs the ingestion pipeline. A Parser holds no per-file state and
// is safe to reuse across files.
type Parser struct {
	opts Options
}

// NewParser creates a Parser with the given options. Zero option fields are
// filled from DefaultOptions.
func NewParser(opts Options) *Parser {
	def := DefaultOptions()
	if opts.HeaderScanRows <= 0 {
		opts.HeaderScanRows = def.HeaderScanRows
	}
	if opts.YearWindow == (dateutils.YearWindow{}) {
		opts.YearWindow = def.YearWindow
	}
	if opts.Logger == nil {
		opts.Logger = def.Logger
	}
	return &Parser{opts: opts}
}

// Parse ingests one spreadsheet from r. The filename is used only for
// diagnostics and format sniffing, never for classification.
//
// Stage failures (unreadable file, empty workbook, missing header) abort the
// whole file and return a nil Result; row-level problems never fail, they
// are counted in Metadata.SkippedRows.
func (p *Parser) Parse(r io.Reader, filename string) (*Result, error) {
	log := p.opts.Logger.WithField("file", filename)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	rows, err := readWorkbook(data, filename)
	if err != nil {
		log.WithError(err).Error("Failed to open workbook")
		return nil, err
	}
	log.Debug("Workbook read", logging.Field{Key: "rows", Value: len(rows)})

	colmap, err := locateHeader(rows, p.opts.HeaderScanRows, filename)
	if err != nil {
		log.WithError(err).Error("Header row not found")
		return nil, err
	}
	log.Debug("Header row located",
		logging.Field{Key: "row", Value: colmap.HeaderRow},
		logging.Field{Key: "document_col", Value: colmap.DocumentCode},
		logging.Field{Key: "date_col", Value: colmap.Date},
		logging.Field{Key: "value_col", Value: colmap.Value})

	result, err := normalizeRows(rows, colmap, p.opts, filename)
	if err != nil {
		return nil, err
	}

	log.Info("File ingested",
		logging.Field{Key: "total", Value: result.Metadata.TotalRows},
		logging.Field{Key: "processed", Value: result.Metadata.ProcessedRows},
		logging.Field{Key: "skipped", Value: result.Metadata.SkippedRows})

	return result, nil
}

// ParseFile ingests the spreadsheet at path.
func (p *Parser) ParseFile(path string) (*Result, error) {
	f, err := os.Open(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			p.opts.Logger.WithError(cerr).Warn("Failed to close file")
		}
	}()
	return p.Parse(f, path)
}

// Parse ingests one spreadsheet with the default options.
func Parse(r io.Reader, filename string) (*Result, error) {
	return NewParser(DefaultOptions()).Parse(r, filename)
}
