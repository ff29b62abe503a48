package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var metricsDays int

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show aggregated metrics from the event log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if MetricsCalc == nil {
			return fmt.Errorf("metrics calculator not initialized (observability may be disabled)")
		}

		since := time.Now().UTC().AddDate(0, 0, -metricsDays)
		m, err := MetricsCalc.Calculate(since)
		if err != nil {
			return fmt.Errorf("calculating metrics: %w", err)
		}

		fmt.Printf("Metrics (last %dd):\n", metricsDays)
		fmt.Printf("  Plans initialized: %d\n", m.PlansInitialized)
		fmt.Printf("  Tasks completed:   %d\n", m.TasksCompleted)
		fmt.Printf("  Tasks reopened:    %d\n", m.TasksReopened)
		fmt.Printf("  Projects resumed:  %d\n", m.ProjectsResumed)
		fmt.Printf("  Events:            %d\n", m.EventCount)
		return nil
	},
}

func init() {
	metricsCmd.Flags().IntVar(&metricsDays, "days", 7, "Time window in days")
	rootCmd.AddCommand(metricsCmd)
}
