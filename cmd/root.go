// Package cmd provides the command-line interface for the deskparse tool.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "deskparse",
	Short: "Deskparse normalizes service-desk spreadsheet exports",
	Long: `Deskparse ingests incident and service-request spreadsheet exports
(CSV or XLSX, mixed Portuguese/English headers) and produces a validated
canonical record set, plus SLA-compliance and shift-distribution reports
derived from it.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Persistent flags shared by every subcommand
	rootCmd.PersistentFlags().StringP("file", "f", "", "Spreadsheet to ingest (.csv or .xlsx)")
	rootCmd.PersistentFlags().StringP("kind", "k", "incidents", "Record kind: 'incidents' or 'requests'")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Optional YAML config file with shift windows and SLA thresholds")
}
