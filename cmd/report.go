package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vbastos/deskparse/internal/config"
	"github.com/vbastos/deskparse/internal/ingest"
	"github.com/vbastos/deskparse/internal/logging"
	"github.com/vbastos/deskparse/internal/sla"
	"github.com/vbastos/deskparse/pkg/models"
)

// reportCmd ingests a spreadsheet and prints SLA compliance per priority
// plus the shift distribution of opened records.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Ingest a spreadsheet and report SLA compliance and shift distribution",
	Long: `Ingest a service-desk spreadsheet export and derive operational metrics
from the canonical record set:

- SLA compliance per priority tier: how many records are within budget,
  in the warning band (75-99% of budget consumed), or in breach. Closed
  records are measured against their last update; open records against
  the current time.
- Shift distribution: how many records were opened in the morning,
  afternoon, and night windows.

Shift windows and SLA thresholds come from the built-in defaults unless
overridden by a config file or DESKPARSE_* environment variables.

Example:
  deskparse report -f requests.xlsx -k requests -c deskparse.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, kind, configFile, err := commonArgs(cmd)
		if err != nil {
			return err
		}

		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		result, err := ingest.IngestFile(cmd.Context(), file, kind, ingest.Options{})
		if err != nil {
			return fmt.Errorf("ingestion failed: %w", err)
		}

		if len(result.Errors) > 0 {
			logging.Warn("some rows were dropped during ingestion",
				"dropped", len(result.Errors),
				"ingested", len(result.Records))
		}

		printSLAReport(result.Records, cfg.SLAFor(kind))
		fmt.Println()
		printShiftReport(result.Records, cfg)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

// printSLAReport prints per-priority status counts and the overall
// compliance percentage (records not in breach).
func printSLAReport(records []models.CanonicalRecord, thresholds sla.Thresholds) {
	now := time.Now()

	statusByPriority := make(map[models.Priority]map[sla.Status]int)
	breached := 0

	for _, record := range records {
		evaluation := sla.EvaluateRecord(record, thresholds, now)
		if statusByPriority[record.Priority] == nil {
			statusByPriority[record.Priority] = make(map[sla.Status]int)
		}
		statusByPriority[record.Priority][evaluation.Status]++
		if evaluation.Status == sla.StatusCritical {
			breached++
		}
	}

	fmt.Println("SLA compliance by priority:")
	for _, priority := range priorityOrder(statusByPriority) {
		counts := statusByPriority[priority]
		fmt.Printf("  %-8s normal=%d warning=%d critical=%d\n",
			priority,
			counts[sla.StatusNormal],
			counts[sla.StatusWarning],
			counts[sla.StatusCritical])
	}

	compliance := 100.0
	if len(records) > 0 {
		compliance = float64(len(records)-breached) / float64(len(records)) * 100
	}
	fmt.Printf("overall compliance: %.1f%% (%d of %d within budget)\n",
		compliance, len(records)-breached, len(records))
}

// priorityOrder returns the priorities present in the report in their
// severity order.
func priorityOrder(byPriority map[models.Priority]map[sla.Status]int) []models.Priority {
	ordered := []models.Priority{
		models.PriorityP1, models.PriorityP2, models.PriorityP3, models.PriorityP4,
		models.PriorityHigh, models.PriorityMedium, models.PriorityLow,
	}
	var present []models.Priority
	for _, p := range ordered {
		if _, ok := byPriority[p]; ok {
			present = append(present, p)
		}
	}
	return present
}

// printShiftReport prints how many records were opened in each shift
// window.
func printShiftReport(records []models.CanonicalRecord, cfg *config.Config) {
	counts := make(map[models.Shift]int)
	for _, record := range records {
		counts[cfg.Shifts.Classify(record.Opened)]++
	}

	fmt.Println("records opened by shift:")
	for _, s := range []models.Shift{models.ShiftMorning, models.ShiftAfternoon, models.ShiftNight} {
		fmt.Printf("  %-10s %d\n", s, counts[s])
	}
}
