package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/garden-planner-service/internal/composer"
	"github.com/couchcryptid/garden-planner-service/internal/domain"
	"github.com/couchcryptid/garden-planner-service/internal/planner"
	"github.com/couchcryptid/garden-planner-service/internal/reference"
)

var checkDataCmd = &cobra.Command{
	Use:   "check-data",
	Short: "Validate reference tables and the guarantees built on them",
	Long:  "Loads the reference tables (schema and cross-table rules), then walks every state, city, zone and month to confirm locations resolve, advisories are complete and every plan meets its weekly minimum.",
	RunE:  runCheckData,
}

var (
	checkDataDir      string
	checkMinPerBucket int
)

func init() {
	checkDataCmd.Flags().StringVar(&checkDataDir, "data-dir", "", "Directory of reference tables (default: embedded)")
	checkDataCmd.Flags().IntVar(&checkMinPerBucket, "min-per-bucket", planner.DefaultMinPerBucket, "Weekly minimum to check plans against")
	rootCmd.AddCommand(checkDataCmd)
}

// phase tracks pass/fail for a check phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func runCheckData(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== Reference Data Check ===")

	tables, err := loadTables(checkDataDir)
	if err != nil {
		return err
	}
	if checkMinPerBucket < 1 {
		return fmt.Errorf("min-per-bucket must be at least 1, got %d", checkMinPerBucket)
	}
	comp := newCLIComposer(tables, checkMinPerBucket)

	phases := []*phase{
		checkLocations(comp, tables),
		checkAdvisoryCoverage(comp, tables),
		checkAdvisoryCities(comp, tables),
		checkPlanMinimums(comp, checkMinPerBucket),
	}

	if !report(out, phases) {
		return fmt.Errorf("reference data check failed")
	}
	return nil
}

func report(out io.Writer, phases []*phase) bool {
	fmt.Fprintln(out)
	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-36s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll checks passed.")
	}
	return allPassed
}

// checkLocations confirms every listed and zoned city is a valid pair and
// every state resolves to a zone with its name and code.
func checkLocations(comp *composer.Composer, t *reference.Tables) *phase {
	p := &phase{name: "Locations resolve"}
	for _, s := range t.States {
		for _, raw := range []string{string(s.Code), s.Name} {
			if got, ok := comp.NormalizeState(raw); !ok || got != s.Code {
				p.errorf("state %q normalizes to %q (ok=%v)", raw, got, ok)
			}
		}
		if !comp.ResolveClimateZone(s.Code, "").Valid() {
			p.errorf("%s has no valid default zone", s.Code)
		}
		for _, city := range comp.Cities(s.Code) {
			if !comp.ValidatePair(s.Code, city) {
				p.errorf("%s/%s is listed but not valid", s.Code, city)
			}
		}
	}
	return p
}

// checkAdvisoryCoverage resolves every state, city and month and expects
// non-nil lists back.
func checkAdvisoryCoverage(comp *composer.Composer, t *reference.Tables) *phase {
	p := &phase{name: "Advisories total"}
	for _, s := range t.States {
		cities := append([]string{""}, comp.Cities(s.Code)...)
		for _, city := range cities {
			for _, m := range domain.Months {
				rec := comp.ResolveAdvisory(s.Code, city, m)
				if rec.Mistakes == nil || rec.Warnings == nil || rec.CommonErrors == nil {
					p.errorf("%s/%s/%s returned a nil list", s.Code, city, m)
				}
			}
		}
	}
	return p
}

// checkAdvisoryCities flags advisory data filed under a city that is not a
// valid location for its state and so can never be requested.
func checkAdvisoryCities(comp *composer.Composer, t *reference.Tables) *phase {
	p := &phase{name: "Advisory cities are locations"}
	for _, s := range t.Advisories.States {
		for _, c := range s.Cities {
			if !comp.ValidatePair(s.Code, c.Name) {
				p.errorf("advisory city %s/%s is not a known location", s.Code, c.Name)
			}
		}
	}
	return p
}

// checkPlanMinimums builds the plan for every zone and month and checks the
// weekly minimum for sow, and for plant when any seedling exists.
func checkPlanMinimums(comp *composer.Composer, minPerBucket int) *phase {
	p := &phase{name: "Weekly minimums hold"}
	for _, z := range domain.ClimateZones {
		for _, m := range domain.Months {
			plan := comp.BuildWeeklyPlan(z, m, nil, nil)
			if len(plan.Weeks) != planner.Weeks {
				p.errorf("%s/%s has %d weeks", z, m, len(plan.Weeks))
				continue
			}
			if plan.SowCandidates == 0 {
				p.errorf("%s/%s has no sow candidates", z, m)
			}
			for _, w := range plan.Weeks {
				if plan.SowCandidates > 0 && len(w.Sow) < minPerBucket {
					p.errorf("%s/%s week %d sow has %d items", z, m, w.Index, len(w.Sow))
				}
				if plan.PlantCandidates > 0 && len(w.Plant) < minPerBucket {
					p.errorf("%s/%s week %d plant has %d items", z, m, w.Index, len(w.Plant))
				}
			}
		}
	}
	return p
}
