package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/garden-planner-service/internal/advisory"
	"github.com/couchcryptid/garden-planner-service/internal/domain"
	"github.com/couchcryptid/garden-planner-service/internal/planner"
)

var advisoryCmd = &cobra.Command{
	Use:   "advisory",
	Short: "Print the seasonal advisory for a state, city and month",
	Long:  "Looks up the advisory through the city, representative city, state and global fallbacks and reports which level answered.",
	RunE:  runAdvisory,
}

var (
	advisoryState   string
	advisoryCity    string
	advisoryMonth   string
	advisoryDataDir string
)

type advisoryOutput struct {
	State    domain.StateCode      `json:"state"`
	City     string                `json:"city,omitempty"`
	Month    domain.MonthName      `json:"month"`
	Level    advisory.Level        `json:"level"`
	Advisory domain.AdvisoryRecord `json:"advisory"`
}

func init() {
	advisoryCmd.Flags().StringVarP(&advisoryState, "state", "s", "", "State code or name (required)")
	advisoryCmd.Flags().StringVarP(&advisoryCity, "city", "c", "", "City name")
	advisoryCmd.Flags().StringVarP(&advisoryMonth, "month", "m", "", "Month name or abbreviation (default: current month)")
	advisoryCmd.Flags().StringVar(&advisoryDataDir, "data-dir", "", "Directory of reference tables (default: embedded)")

	if err := advisoryCmd.MarkFlagRequired("state"); err != nil {
		panic(fmt.Sprintf("failed to mark state flag as required: %v", err))
	}

	rootCmd.AddCommand(advisoryCmd)
}

func runAdvisory(cmd *cobra.Command, _ []string) error {
	month := domain.CurrentMonth()
	if advisoryMonth != "" {
		m, ok := domain.ParseMonth(advisoryMonth)
		if !ok {
			return fmt.Errorf("unknown month %q", advisoryMonth)
		}
		month = m
	}

	tables, err := loadTables(advisoryDataDir)
	if err != nil {
		return err
	}
	comp := newCLIComposer(tables, planner.DefaultMinPerBucket)

	state, ok := comp.NormalizeState(advisoryState)
	if !ok {
		return fmt.Errorf("unknown state %q", advisoryState)
	}
	if advisoryCity != "" && !comp.ValidatePair(state, advisoryCity) {
		return fmt.Errorf("city %q not found in %s", advisoryCity, state)
	}

	record, level := comp.LookupAdvisory(state, advisoryCity, month)
	return writeIndented(cmd.OutOrStdout(), advisoryOutput{
		State:    state,
		City:     advisoryCity,
		Month:    month,
		Level:    level,
		Advisory: record,
	})
}
