// Package location maps free-form state and city input onto canonical state
// codes, validates state/city pairs and derives climate zones.
package location

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/couchcryptid/garden-planner-service/internal/domain"
	"github.com/couchcryptid/garden-planner-service/internal/reference"
)

// Resolver answers location questions from the reference tables. It is
// immutable after construction and safe for concurrent use.
type Resolver struct {
	aliases map[string]domain.StateCode
	cities  map[domain.StateCode]citySet
	zones   map[domain.StateCode]map[string]domain.ClimateZone
	dflt    map[domain.StateCode]domain.ClimateZone
}

// NewResolver indexes the location list and the climate-zone city table.
func NewResolver(t *reference.Tables) *Resolver {
	r := &Resolver{
		aliases: make(map[string]domain.StateCode),
		cities:  make(map[domain.StateCode]citySet),
		zones:   make(map[domain.StateCode]map[string]domain.ClimateZone),
		dflt:    make(map[domain.StateCode]domain.ClimateZone),
	}

	for _, s := range t.States {
		r.aliases[normaliseKey(string(s.Code))] = s.Code
		r.aliases[normaliseKey(s.Name)] = s.Code
		for _, a := range s.Aliases {
			r.aliases[normaliseKey(a)] = s.Code
		}
		r.dflt[s.Code] = s.DefaultZone
	}

	for state, byCity := range t.CityZones {
		m := make(map[string]domain.ClimateZone, len(byCity))
		for city, zone := range byCity {
			m[cityKey(city)] = zone
		}
		r.zones[state] = m
	}

	for _, code := range domain.States {
		var referenceCities []string
		if s, ok := t.State(code); ok {
			referenceCities = s.Cities
		}
		r.cities[code] = unionCities(referenceCities, t.CityZones[code])
	}
	return r
}

// NormalizeState maps a full name ("Tasmania"), an abbreviation ("TAS") or a
// registered alias to its state code. Case, surrounding whitespace and
// punctuation are ignored.
func (r *Resolver) NormalizeState(raw string) (domain.StateCode, bool) {
	key := normaliseKey(raw)
	if key == "" {
		return "", false
	}
	code, ok := r.aliases[key]
	return code, ok
}

// ValidatePair reports whether city belongs to state according to either the
// location list or the climate-zone city table.
func (r *Resolver) ValidatePair(state domain.StateCode, city string) bool {
	set, ok := r.cities[state]
	if !ok {
		return false
	}
	return set.contains(city)
}

// Cities returns the known cities of a state in display order: the location
// list first, then cities found only in the climate-zone table.
func (r *Resolver) Cities(state domain.StateCode) []string {
	set := r.cities[state]
	out := make([]string, len(set.names))
	copy(out, set.names)
	return out
}

// SuggestCities returns up to n known cities of state that are close to the
// given (probably misspelled) name, nearest first.
func (r *Resolver) SuggestCities(state domain.StateCode, city string, n int) []string {
	set, ok := r.cities[state]
	query := cityKey(city)
	if !ok || query == "" || n <= 0 {
		return nil
	}

	type scored struct {
		name string
		dist int
	}
	var hits []scored
	for _, name := range set.names {
		key := cityKey(name)
		dist := levenshtein.ComputeDistance(query, key)
		if strings.HasPrefix(key, query) && len(query) >= 3 {
			dist = 0
		}
		if dist > distanceLimit(len(key)) {
			continue
		}
		hits = append(hits, scored{name: name, dist: dist})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })

	out := make([]string, 0, n)
	for _, h := range hits {
		if len(out) == n {
			break
		}
		out = append(out, h.name)
	}
	return out
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// normaliseKey lower-cases s, drops punctuation and collapses whitespace, so
// "N.S.W." and "n s w" compare equal after the dots are removed.
func normaliseKey(s string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastSpace = false
		case r == ' ' || r == '\t' || r == '-' || r == '_':
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}
