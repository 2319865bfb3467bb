package planner

import (
	"strings"

	"github.com/couchcryptid/garden-planner-service/internal/domain"
	"github.com/couchcryptid/garden-planner-service/internal/reference"
)

// Aggregator merges plant candidates for a zone and month from the curated
// data, the zone catalog, legacy catalog labels and the zone defaults.
type Aggregator struct {
	catalog  map[string]map[domain.MonthName]reference.CandidateSet
	synonyms map[domain.ClimateZone][]string
	defaults map[domain.ClimateZone]reference.CandidateSet
	floor    int
}

// NewAggregator builds an Aggregator over the reference tables. Zone
// defaults are only drawn on until a category holds floor items.
func NewAggregator(t *reference.Tables, floor int) *Aggregator {
	if floor < 1 {
		floor = 1
	}
	return &Aggregator{
		catalog:  t.Catalog,
		synonyms: t.ZoneSynonyms,
		defaults: t.Defaults,
		floor:    floor,
	}
}

// Aggregate returns the deduplicated sow and plant names for zone and month.
// Explicit candidates come first, then the catalog entry for the zone, then
// entries filed under the zone's legacy labels, then the zone defaults.
// Names are compared trimmed and case-folded and the first spelling wins.
// Neither result is nil; an empty plant list means no source had seedlings.
func (a *Aggregator) Aggregate(zone domain.ClimateZone, month domain.MonthName, explicit []domain.PlantCandidate) (sow, plant []string) {
	s, p := newCollector(), newCollector()

	for _, c := range explicit {
		switch c.Kind {
		case domain.KindSow:
			s.add(c.Name)
		case domain.KindPlant:
			p.add(c.Name)
		}
	}

	for _, set := range a.catalogSets(zone, month) {
		s.add(set.Sow...)
		p.add(set.Plant...)
	}

	dflt := a.defaults[zone]
	s.fill(a.floor, dflt.Sow)
	p.fill(a.floor, dflt.Plant)

	return s.items, p.items
}

// Tasks returns the garden tasks for zone and month from the catalog and the
// zone defaults, deduplicated in first-seen order.
func (a *Aggregator) Tasks(zone domain.ClimateZone, month domain.MonthName) []string {
	t := newCollector()
	for _, set := range a.catalogSets(zone, month) {
		t.add(set.Tasks...)
	}
	t.add(a.defaults[zone].Tasks...)
	return t.items
}

// catalogSets returns the exact (zone, month) entry followed by any entries
// for the month filed under the zone's legacy labels.
func (a *Aggregator) catalogSets(zone domain.ClimateZone, month domain.MonthName) []reference.CandidateSet {
	var sets []reference.CandidateSet
	if set, ok := a.catalog[string(zone)][month]; ok {
		sets = append(sets, set)
	}
	for _, label := range a.synonyms[zone] {
		if set, ok := a.catalog[label][month]; ok {
			sets = append(sets, set)
		}
	}
	return sets
}

// collector deduplicates names by trimmed, case-folded key.
type collector struct {
	seen  map[string]bool
	items []string
}

func newCollector() *collector {
	return &collector{seen: make(map[string]bool), items: []string{}}
}

func (c *collector) add(names ...string) {
	for _, n := range names {
		n = strings.TrimSpace(n)
		key := strings.ToLower(n)
		if key == "" || c.seen[key] {
			continue
		}
		c.seen[key] = true
		c.items = append(c.items, n)
	}
}

func (c *collector) fill(floor int, names []string) {
	for _, n := range names {
		if len(c.items) >= floor {
			return
		}
		c.add(n)
	}
}
