// Package ingest implements the command that runs the ingestion pipeline on
// a single spreadsheet.
package ingest

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"dcastano/siigo-ingest/cmd/root"
	"dcastano/siigo-ingest/internal/common"
	"dcastano/siigo-ingest/internal/currencyutils"
	"dcastano/siigo-ingest/internal/dateutils"
	"dcastano/siigo-ingest/internal/logging"
	"dcastano/siigo-ingest/internal/models"
	"dcastano/siigo-ingest/internal/siigoparser"
	"dcastano/siigo-ingest/internal/store"
)

var userID string

// Cmd is the ingest command.
var Cmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest one spreadsheet and report its per-type monthly totals",
	Run: func(cmd *cobra.Command, args []string) {
		if root.SharedFlags.Input == "" {
			root.Log.Fatal("--input is required")
		}

		logger := logging.NewLogrusAdapterFromLogger(root.Log)
		parser := siigoparser.NewParser(ParserOptions(logger))

		result, err := parser.ParseFile(root.SharedFlags.Input)
		if err != nil {
			root.Log.Fatalf("Ingestion failed: %v", err)
		}

		PrintResult(root.SharedFlags.Input, result)

		if root.SharedFlags.Output != "" {
			if err := common.WriteRecordsToCSV(result.Records, root.SharedFlags.Output, logger); err != nil {
				root.Log.Fatalf("Export failed: %v", err)
			}
		}

		if root.SharedFlags.Save {
			if err := SaveResult(root.SharedFlags.Input, result, logger); err != nil {
				root.Log.Fatalf("Saving upload log failed: %v", err)
			}
		}
	},
}

// Init registers the command's flags.
func Init() {
	Cmd.Flags().StringVar(&userID, "user", "", "User id recorded in the upload log")
}

// ParserOptions builds pipeline options from the resolved configuration.
func ParserOptions(logger logging.Logger) siigoparser.Options {
	opts := siigoparser.DefaultOptions()
	opts.Logger = logger
	if root.Cfg != nil {
		opts.YearWindow = dateutils.YearWindow{
			Min: root.Cfg.Ingest.YearMin,
			Max: root.Cfg.Ingest.YearMax,
		}
		opts.HeaderScanRows = root.Cfg.Ingest.HeaderScanRows
	}
	return opts
}

// PrintResult reports row accounting and per-type totals for one file.
func PrintResult(path string, result *siigoparser.Result) {
	fmt.Printf("%s: %d rows, %d processed, %d skipped\n",
		filepath.Base(path),
		result.Metadata.TotalRows,
		result.Metadata.ProcessedRows,
		result.Metadata.SkippedRows)

	if result.Metadata.DateRange != nil {
		fmt.Printf("  dates: %s to %s\n",
			dateutils.ToISODate(result.Metadata.DateRange.Start),
			dateutils.ToISODate(result.Metadata.DateRange.End))
	}

	for _, dt := range models.DocumentTypes {
		ts := result.Summary[dt]
		if ts == nil || ts.Total.IsZero() {
			continue
		}
		fmt.Printf("  %s (%s): %s\n", dt, dt.Name(),
			currencyutils.FormatAmount(ts.Total, models.DefaultCurrency))
	}
}

// SaveResult appends the file's (type, month, year) totals to the upload log.
func SaveResult(path string, result *siigoparser.Result, logger logging.Logger) error {
	storePath := "uploads.yaml"
	if root.Cfg != nil && root.Cfg.Store.File != "" {
		storePath = root.Cfg.Store.File
	}

	rows := store.RowsFromRecords(userID, filepath.Base(path), result.Records, time.Now().UTC())
	if len(rows) == 0 {
		return nil
	}

	s := store.NewUploadStore(storePath, logger)
	saved, err := s.Append(rows)
	if err != nil {
		return err
	}
	fmt.Printf("  saved %d upload rows to %s\n", len(saved), storePath)
	return nil
}
