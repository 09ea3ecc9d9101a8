package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vbastos/deskparse/internal/ingest"
	"github.com/vbastos/deskparse/internal/logging"
	"github.com/vbastos/deskparse/pkg/models"
)

// ingestCmd validates and normalizes a spreadsheet export, printing the
// per-row validation errors and a summary.
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Validate and normalize a spreadsheet export",
	Long: `Validate and normalize a service-desk spreadsheet export.

The sheet's first row must be headers. Header spellings are matched
against the built-in alias table (English and Portuguese variants), so
exports from different source systems ingest without remapping.

Rows that fail validation are dropped and reported individually with
their spreadsheet row number; the run succeeds as long as at least one
row survives. The run fails outright only when a required column is
missing from the header entirely, or when no row at all validates.

Example:
  deskparse ingest -f incidents.xlsx -k incidents`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, kind, _, err := commonArgs(cmd)
		if err != nil {
			return err
		}

		opts := ingest.Options{
			Progress: func(percent int) {
				logging.Debug("ingestion progress", "percent", percent)
			},
		}

		result, err := ingest.IngestFile(cmd.Context(), file, kind, opts)
		if err != nil {
			return fmt.Errorf("ingestion failed: %w", err)
		}

		for _, ve := range result.Errors {
			fmt.Printf("row %d  %-20s %s", ve.Row, ve.Field, ve.Reason)
			if ve.Value != "" {
				fmt.Printf(" (%q)", ve.Value)
			}
			fmt.Println()
		}

		fmt.Printf("%d of %d rows ingested, %d validation errors\n",
			len(result.Records), result.TotalRows, len(result.Errors))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

// commonArgs reads the shared file/kind/config flags and validates them.
func commonArgs(cmd *cobra.Command) (string, models.RecordKind, string, error) {
	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return "", "", "", err
	}
	if file == "" {
		return "", "", "", fmt.Errorf("file flag is required")
	}

	kindStr, err := cmd.Flags().GetString("kind")
	if err != nil {
		return "", "", "", err
	}
	kind := models.RecordKind(kindStr)
	if !kind.Valid() {
		return "", "", "", fmt.Errorf("unknown record kind %q: use 'incidents' or 'requests'", kindStr)
	}

	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return "", "", "", err
	}

	return file, kind, configFile, nil
}
