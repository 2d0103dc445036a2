// Package batch implements directory-level ingestion: every supported
// spreadsheet in a directory goes through the pipeline, and one bad file
// does not abort the rest.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"dcastano/siigo-ingest/cmd/ingest"
	"dcastano/siigo-ingest/cmd/root"
	"dcastano/siigo-ingest/internal/common"
	"dcastano/siigo-ingest/internal/logging"
	"dcastano/siigo-ingest/internal/siigoparser"
)

var (
	// InputDir is the directory scanned for spreadsheets.
	InputDir string
)

// Cmd is the batch command.
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Ingest every spreadsheet in a directory",
	Run: func(cmd *cobra.Command, args []string) {
		if InputDir == "" {
			root.Log.Fatal("--dir is required")
		}

		logger := logging.NewLogrusAdapterFromLogger(root.Log)
		count, failed, err := Run(InputDir, root.SharedFlags.Output, root.SharedFlags.Save, logger)
		if err != nil {
			root.Log.Fatalf("Batch ingestion failed: %v", err)
		}
		fmt.Printf("batch complete: %d files ingested, %d failed\n", count, failed)
	},
}

// Init registers the command's flags.
func Init() {
	Cmd.Flags().StringVarP(&InputDir, "dir", "d", "", "Directory containing spreadsheets to ingest")
}

// Run ingests every .xlsx/.xls/.csv file in inputDir. When outDir is set,
// each file's canonical records are exported next to it as
// <name>_records.csv. Returns the processed and failed file counts.
func Run(inputDir, outDir string, save bool, logger logging.Logger) (int, int, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		return 0, 0, fmt.Errorf("error accessing input directory: %w", err)
	}
	if !info.IsDir() {
		return 0, 0, fmt.Errorf("input path is not a directory: %s", inputDir)
	}

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0750); err != nil {
			return 0, 0, fmt.Errorf("error creating output directory: %w", err)
		}
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return 0, 0, fmt.Errorf("error reading input directory: %w", err)
	}

	parser := siigoparser.NewParser(ingest.ParserOptions(logger))

	count := 0
	failed := 0
	for _, entry := range entries {
		if entry.IsDir() || !supportedExtension(entry.Name()) {
			continue
		}

		path := filepath.Join(inputDir, entry.Name())
		result, err := parser.ParseFile(path)
		if err != nil {
			logger.WithError(err).Error("Skipping file",
				logging.Field{Key: "file", Value: entry.Name()})
			failed++
			continue
		}

		ingest.PrintResult(path, result)

		if outDir != "" {
			base := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
			outFile := filepath.Join(outDir, base+"_records.csv")
			if err := common.WriteRecordsToCSV(result.Records, outFile, logger); err != nil {
				logger.WithError(err).Error("Export failed",
					logging.Field{Key: "file", Value: outFile})
				failed++
				continue
			}
		}

		if save {
			if err := ingest.SaveResult(path, result, logger); err != nil {
				logger.WithError(err).Error("Saving upload log failed",
					logging.Field{Key: "file", Value: entry.Name()})
				failed++
				continue
			}
		}

		count++
	}

	return count, failed, nil
}

func supportedExtension(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xls", ".csv":
		return true
	}
	return false
}
