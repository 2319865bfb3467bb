package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/garden-planner-service/internal/composer"
	"github.com/couchcryptid/garden-planner-service/internal/observability"
	"github.com/couchcryptid/garden-planner-service/internal/planner"
	"github.com/couchcryptid/garden-planner-service/internal/reference"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the recommendation for one location and month as JSON",
	Long:  "Resolves the climate zone and advisory for a state and city, then composes the four-week sowing and planting plan. Month defaults to the current month.",
	RunE:  runPlan,
}

var (
	planState        string
	planCity         string
	planMonth        string
	planSubscriberID string
	planDataDir      string
	planMinPerBucket int
)

func init() {
	planCmd.Flags().StringVarP(&planState, "state", "s", "", "State code or name (required)")
	planCmd.Flags().StringVarP(&planCity, "city", "c", "", "City name (required)")
	planCmd.Flags().StringVarP(&planMonth, "month", "m", "", "Month name or abbreviation (default: current month)")
	planCmd.Flags().StringVar(&planSubscriberID, "subscriber-id", "", "Subscriber UUID to stamp on the recommendation")
	planCmd.Flags().StringVar(&planDataDir, "data-dir", "", "Directory of reference tables (default: embedded)")
	planCmd.Flags().IntVar(&planMinPerBucket, "min-per-bucket", planner.DefaultMinPerBucket, "Minimum sow and plant items per week")

	if err := planCmd.MarkFlagRequired("state"); err != nil {
		panic(fmt.Sprintf("failed to mark state flag as required: %v", err))
	}
	if err := planCmd.MarkFlagRequired("city"); err != nil {
		panic(fmt.Sprintf("failed to mark city flag as required: %v", err))
	}

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	if planMinPerBucket < 1 {
		return fmt.Errorf("min-per-bucket must be at least 1, got %d", planMinPerBucket)
	}

	tables, err := loadTables(planDataDir)
	if err != nil {
		return err
	}
	comp := newCLIComposer(tables, planMinPerBucket)

	rec, err := comp.Compose(cmd.Context(), composer.PlanRequest{
		State:        planState,
		City:         planCity,
		Month:        planMonth,
		SubscriberID: planSubscriberID,
	})
	if err != nil {
		return err
	}
	return writeIndented(cmd.OutOrStdout(), rec)
}

// newCLIComposer builds a Composer for a single lookup: no advisory cache,
// metrics kept local, warnings logged to stderr.
func newCLIComposer(tables *reference.Tables, minPerBucket int) *composer.Composer {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return composer.New(tables, composer.Options{MinPerBucket: minPerBucket}, logger, observability.NewUnregisteredMetrics())
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
