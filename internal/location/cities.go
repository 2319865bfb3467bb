package location

import (
	"sort"
	"strings"

	"github.com/couchcryptid/garden-planner-service/internal/domain"
)

// citySet is the union of a state's cities from the location list and the
// climate-zone table. Membership is case-insensitive on the trimmed name.
type citySet struct {
	names []string
	keys  map[string]bool
}

func unionCities(reference []string, zoned map[string]domain.ClimateZone) citySet {
	set := citySet{keys: make(map[string]bool, len(reference)+len(zoned))}
	for _, c := range reference {
		set.add(c)
	}

	// Map order is random; keep the zone-only cities sorted so Cities() is stable.
	extra := make([]string, 0, len(zoned))
	for c := range zoned {
		if !set.keys[cityKey(c)] {
			extra = append(extra, c)
		}
	}
	sort.Strings(extra)
	for _, c := range extra {
		set.add(c)
	}
	return set
}

func (s *citySet) add(city string) {
	key := cityKey(city)
	if key == "" || s.keys[key] {
		return
	}
	s.keys[key] = true
	s.names = append(s.names, strings.TrimSpace(city))
}

func (s citySet) contains(city string) bool {
	key := cityKey(city)
	return key != "" && s.keys[key]
}

func cityKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}
