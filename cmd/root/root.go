// Package root contains the root command for the application.
package root

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dcastano/siigo-ingest/internal/common"
	"dcastano/siigo-ingest/internal/config"
)

// CommonFlags holds the flags shared by several commands.
type CommonFlags struct {
	Input  string
	Output string
	Save   bool
}

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg is the resolved application configuration, loaded before any
	// command runs.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "siigo-ingest",
		Short: "Ingest SIIGO accounting spreadsheets into canonical records and monthly totals.",
		Long: `siigo-ingest reads uploaded accounting spreadsheets (xlsx, xls or csv),
locates the header row, normalizes each row into a canonical record and
aggregates monetary totals per document type and month.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)

			if delim := os.Getenv("CSV_DELIMITER"); delim != "" {
				common.SetDelimiter([]rune(delim)[0])
			} else if cfg.CSV.Delimiter != "" {
				common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
			}
		},
	}

	// SharedFlags are the common flags accessible to all commands.
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and its persistent flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input spreadsheet file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output CSV file or directory")
	Cmd.PersistentFlags().BoolVar(&SharedFlags.Save, "save", false, "Append the ingestion summary to the upload log")
}
