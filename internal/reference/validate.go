package reference

import (
	"errors"
	"fmt"
	"strings"

	"github.com/couchcryptid/garden-planner-service/internal/domain"
)

// ErrInvalidTables wraps every cross-table rule violation.
var ErrInvalidTables = errors.New("invalid reference tables")

// Validate checks the rules a schema cannot express: every state is listed
// once, every advisory state has a default record, every city with month data
// covers all twelve months, and catalog keys name a zone or a zone synonym.
func (t *Tables) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	seen := make(map[domain.StateCode]bool, len(t.States))
	for _, s := range t.States {
		if !s.Code.Valid() {
			add("locations: unknown state %q", s.Code)
			continue
		}
		if seen[s.Code] {
			add("locations: state %s listed twice", s.Code)
		}
		seen[s.Code] = true
		if !s.DefaultZone.Valid() {
			add("locations: state %s has unknown default zone %q", s.Code, s.DefaultZone)
		}
	}
	for _, code := range domain.States {
		if !seen[code] {
			add("locations: state %s missing", code)
		}
	}

	for state, cities := range t.CityZones {
		if !state.Valid() {
			add("climate zones: unknown state %q", state)
		}
		for city, zone := range cities {
			if !zone.Valid() {
				add("climate zones: %s/%s has unknown zone %q", state, city, zone)
			}
		}
	}

	labels := make(map[string]bool)
	for _, z := range domain.ClimateZones {
		labels[string(z)] = true
	}
	for zone, synonyms := range t.ZoneSynonyms {
		if !zone.Valid() {
			add("climate zones: synonyms for unknown zone %q", zone)
		}
		for _, s := range synonyms {
			if domain.ClimateZone(s).Valid() {
				add("climate zones: synonym %q of %s is itself a zone", s, zone)
			}
			labels[s] = true
		}
	}

	problems = append(problems, t.Advisories.problems()...)

	for _, z := range domain.ClimateZones {
		if _, ok := t.Defaults[z]; !ok {
			add("candidates: zone %q has no default list", z)
		}
	}
	for label := range t.Catalog {
		if !labels[label] {
			add("candidates: catalog key %q is neither a zone nor a synonym", label)
		}
	}
	for state := range t.Curated {
		if !state.Valid() {
			add("candidates: curated data for unknown state %q", state)
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w:\n  %s", ErrInvalidTables, strings.Join(problems, "\n  "))
}

func (a AdvisoryTable) problems() []string {
	var out []string
	seen := make(map[domain.StateCode]bool)
	for _, s := range a.States {
		if seen[s.Code] {
			out = append(out, fmt.Sprintf("advisories: state %s listed twice", s.Code))
		}
		seen[s.Code] = true
		if s.Default == nil {
			out = append(out, fmt.Sprintf("advisories: state %s has no default record", s.Code))
		}

		cities := make(map[string]bool)
		for _, c := range s.Cities {
			key := strings.ToLower(strings.TrimSpace(c.Name))
			if cities[key] {
				out = append(out, fmt.Sprintf("advisories: %s/%s listed twice", s.Code, c.Name))
			}
			cities[key] = true
			for _, m := range domain.Months {
				if _, ok := c.Months[m]; !ok {
					out = append(out, fmt.Sprintf("advisories: %s/%s missing %s", s.Code, c.Name, m))
				}
			}
		}
	}
	return out
}
