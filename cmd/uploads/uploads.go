// Package uploads implements the upload-log maintenance commands: listing
// persisted upload rows and deleting them by id or by the
// (type, month, year[, fileName]) tuple.
package uploads

import (
	"fmt"

	"github.com/spf13/cobra"

	"dcastano/siigo-ingest/cmd/root"
	"dcastano/siigo-ingest/internal/logging"
	"dcastano/siigo-ingest/internal/models"
	"dcastano/siigo-ingest/internal/store"
)

var (
	deleteID   int
	deleteType string
	deleteFile string
	// month defaults to -1 so "delete January" (month 0) stays expressible.
	deleteMonth int
	deleteYear  int
)

// Cmd is the uploads command group.
var Cmd = &cobra.Command{
	Use:   "uploads",
	Short: "Inspect and maintain the upload log",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List upload-log rows",
	Run: func(cmd *cobra.Command, args []string) {
		s := openStore()
		rows, err := s.List()
		if err != nil {
			root.Log.Fatalf("Listing uploads failed: %v", err)
		}
		if len(rows) == 0 {
			fmt.Println("upload log is empty")
			return
		}
		for _, r := range rows {
			fmt.Printf("%4d  %-4s %-10s %04d-%02d  %14s  %5d rows  %s\n",
				r.ID, r.DocumentType, models.MonthNames[r.Month],
				r.Year, r.Month+1, r.TotalValue, r.ProcessedRows, r.FileName)
		}
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete upload-log rows by id or by (type, month, year[, file])",
	Run: func(cmd *cobra.Command, args []string) {
		s := openStore()

		var (
			deleted int
			err     error
		)
		switch {
		case deleteID > 0:
			deleted, err = s.DeleteByID(deleteID)
		case deleteType != "":
			dt := models.DocumentType(deleteType)
			if !dt.Valid() {
				root.Log.Fatalf("Unknown document type: %s", deleteType)
			}
			if deleteMonth < 0 || deleteMonth > 11 || deleteYear == 0 {
				root.Log.Fatal("--month (0-11) and --year are required with --type")
			}
			deleted, err = s.DeleteByTuple(dt, deleteMonth, deleteYear, deleteFile)
		default:
			root.Log.Fatal("Either --id or --type must be given")
		}
		if err != nil {
			root.Log.Fatalf("Deleting uploads failed: %v", err)
		}
		fmt.Printf("deleted %d rows\n", deleted)
	},
}

// Init registers the subcommands and their flags.
func Init() {
	deleteCmd.Flags().IntVar(&deleteID, "id", 0, "Row id to delete")
	deleteCmd.Flags().StringVar(&deleteType, "type", "", "Document type (FC, ND, DS, RP)")
	deleteCmd.Flags().IntVar(&deleteMonth, "month", -1, "Month (0-11)")
	deleteCmd.Flags().IntVar(&deleteYear, "year", 0, "Year")
	deleteCmd.Flags().StringVar(&deleteFile, "file", "", "Restrict deletion to one file name")

	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(deleteCmd)
}

func openStore() *store.UploadStore {
	storePath := "uploads.yaml"
	if root.Cfg != nil && root.Cfg.Store.File != "" {
		storePath = root.Cfg.Store.File
	}
	return store.NewUploadStore(storePath, logging.NewLogrusAdapterFromLogger(root.Log))
}
