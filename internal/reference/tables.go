// Package reference loads the read-only lookup tables behind the planner:
// the location list, the climate-zone city table, the seasonal advisory table
// and the plant candidate catalogs.
//
// Tables are authored as YAML, embedded in the binary and checked against a
// JSON Schema plus a set of semantic rules when loaded. A table that fails
// either check is a startup error; nothing downstream re-validates them.
package reference

import "github.com/couchcryptid/garden-planner-service/internal/domain"

// Tables is the complete, validated reference data set. It is never mutated
// after Load returns and is safe for concurrent reads.
type Tables struct {
	States       []StateInfo
	CityZones    map[domain.StateCode]map[string]domain.ClimateZone
	ZoneSynonyms map[domain.ClimateZone][]string
	Advisories   AdvisoryTable
	Catalog      map[string]map[domain.MonthName]CandidateSet
	Defaults     map[domain.ClimateZone]CandidateSet
	Curated      map[domain.StateCode]map[domain.MonthName]CandidateSet
}

// StateInfo is one entry of the general location list.
type StateInfo struct {
	Code        domain.StateCode   `yaml:"code"`
	Name        string             `yaml:"name"`
	Aliases     []string           `yaml:"aliases"`
	DefaultZone domain.ClimateZone `yaml:"default_zone"`
	Cities      []string           `yaml:"cities"`
}

// AdvisoryTable nests advisories as state -> city -> month, with a default
// record per state and one global default.
type AdvisoryTable struct {
	GlobalDefault domain.AdvisoryRecord `yaml:"global_default"`
	States        []StateAdvisories     `yaml:"states"`
}

// StateAdvisories holds a state's default record and the cities that have
// month-level data, in table order.
type StateAdvisories struct {
	Code    domain.StateCode       `yaml:"code"`
	Default *domain.AdvisoryRecord `yaml:"default"`
	Cities  []CityAdvisories       `yaml:"cities"`
}

// CityAdvisories is a city's month-keyed advisory data.
type CityAdvisories struct {
	Name   string                                    `yaml:"name"`
	Months map[domain.MonthName]domain.AdvisoryRecord `yaml:"months"`
}

// CandidateSet is a group of sow/plant candidates and garden tasks.
type CandidateSet struct {
	Sow   []string `yaml:"sow"`
	Plant []string `yaml:"plant"`
	Tasks []string `yaml:"tasks"`
}

// State returns the location entry for code.
func (t *Tables) State(code domain.StateCode) (StateInfo, bool) {
	for _, s := range t.States {
		if s.Code == code {
			return s, true
		}
	}
	return StateInfo{}, false
}

// CuratedCandidates returns the curated candidates for a state and month as
// explicit sow and plant lists. Both are nil when nothing is curated.
func (t *Tables) CuratedCandidates(state domain.StateCode, month domain.MonthName) (sow, plant []domain.PlantCandidate) {
	set, ok := t.Curated[state][month]
	if !ok {
		return nil, nil
	}
	for _, name := range set.Sow {
		sow = append(sow, domain.Sow(name))
	}
	for _, name := range set.Plant {
		plant = append(plant, domain.Plant(name))
	}
	return sow, plant
}

type locationsFile struct {
	States []StateInfo `yaml:"states"`
}

type climateZonesFile struct {
	CityZones map[domain.StateCode]map[string]domain.ClimateZone `yaml:"city_zones"`
	Synonyms  map[domain.ClimateZone][]string                     `yaml:"synonyms"`
}

type candidatesFile struct {
	Defaults map[domain.ClimateZone]CandidateSet                     `yaml:"defaults"`
	Catalog  map[string]map[domain.MonthName]CandidateSet            `yaml:"catalog"`
	Curated  map[domain.StateCode]map[domain.MonthName]CandidateSet `yaml:"curated"`
}
