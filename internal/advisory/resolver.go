// Package advisory resolves seasonal gardening advisories for a location and
// month through a fixed fallback hierarchy: exact city and month, the state's
// representative city, the state default and finally the global default.
package advisory

import (
	"strings"

	"github.com/couchcryptid/garden-planner-service/internal/domain"
	"github.com/couchcryptid/garden-planner-service/internal/reference"
)

// Level names the fallback step that answered a lookup.
type Level string

const (
	LevelCityMonth          Level = "city_month"
	LevelRepresentativeCity Level = "representative_city"
	LevelStateDefault       Level = "state_default"
	LevelGlobalDefault      Level = "global_default"
)

// Levels lists every level in fallback order.
var Levels = []Level{LevelCityMonth, LevelRepresentativeCity, LevelStateDefault, LevelGlobalDefault}

// Source answers advisory lookups. Resolver and CachedResolver implement it.
type Source interface {
	Lookup(state domain.StateCode, city string, month domain.MonthName) (domain.AdvisoryRecord, Level)
}

// Resolver looks advisories up in an immutable index built from the advisory
// table. It holds no cache and is safe for concurrent use.
type Resolver struct {
	global domain.AdvisoryRecord
	states map[domain.StateCode]stateIndex
}

type stateIndex struct {
	dflt           *domain.AdvisoryRecord
	cities         map[string]map[domain.MonthName]domain.AdvisoryRecord
	representative map[domain.MonthName]domain.AdvisoryRecord
}

// NewResolver indexes the advisory table. The first city listed under a
// state becomes that state's representative city.
func NewResolver(table reference.AdvisoryTable) *Resolver {
	r := &Resolver{
		global: table.GlobalDefault,
		states: make(map[domain.StateCode]stateIndex, len(table.States)),
	}
	for _, s := range table.States {
		idx := stateIndex{
			dflt:   s.Default,
			cities: make(map[string]map[domain.MonthName]domain.AdvisoryRecord, len(s.Cities)),
		}
		for i, c := range s.Cities {
			idx.cities[cityKey(c.Name)] = c.Months
			if i == 0 {
				idx.representative = c.Months
			}
		}
		r.states[stateKey(s.Code)] = idx
	}
	return r
}

// Resolve returns the advisory for a location and month. It never fails and
// the returned lists are never nil.
func (r *Resolver) Resolve(state domain.StateCode, city string, month domain.MonthName) domain.AdvisoryRecord {
	rec, _ := r.Lookup(state, city, month)
	return rec
}

// Lookup is Resolve that also reports which fallback level answered.
func (r *Resolver) Lookup(state domain.StateCode, city string, month domain.MonthName) (domain.AdvisoryRecord, Level) {
	s, ok := r.states[stateKey(state)]
	if !ok || s.dflt == nil {
		return r.global.Normalized(), LevelGlobalDefault
	}

	m := monthKey(month)
	if months, ok := s.cities[cityKey(city)]; ok {
		if rec, ok := months[m]; ok {
			return rec.Normalized(), LevelCityMonth
		}
	} else if rec, ok := s.representative[m]; ok {
		return rec.Normalized(), LevelRepresentativeCity
	}
	return s.dflt.Normalized(), LevelStateDefault
}

func stateKey(s domain.StateCode) domain.StateCode {
	return domain.StateCode(strings.ToUpper(strings.TrimSpace(string(s))))
}

func cityKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

func monthKey(m domain.MonthName) domain.MonthName {
	return domain.MonthName(strings.ToLower(strings.TrimSpace(string(m))))
}
