// Command planner serves location-aware weekly planting plans over HTTP and,
// optionally, from a Kafka plan-request stream. It also answers one-off plan
// and advisory lookups from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "planner",
	Short:         "Garden planner service",
	Long:          "Resolves seasonal advisories and composes four-week sowing and planting plans for Australian locations.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
