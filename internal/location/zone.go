package location

import "github.com/couchcryptid/garden-planner-service/internal/domain"

// ResolveClimateZone returns the climate zone for a state and optional city:
// the city's entry in the climate-zone table if present, else the state's
// default zone, else domain.FallbackZone. It never fails.
func (r *Resolver) ResolveClimateZone(state domain.StateCode, city string) domain.ClimateZone {
	if zone, ok := r.zones[state][cityKey(city)]; ok && zone.Valid() {
		return zone
	}
	if zone, ok := r.dflt[state]; ok && zone.Valid() {
		return zone
	}
	return domain.FallbackZone
}

// Locate validates a state/city pair and builds the Location with its derived
// zone. ok is false when the city is not known for the state.
func (r *Resolver) Locate(state domain.StateCode, city string) (domain.Location, bool) {
	if !r.ValidatePair(state, city) {
		return domain.Location{}, false
	}
	return domain.Location{
		State:       state,
		City:        r.canonicalCity(state, city),
		ClimateZone: r.ResolveClimateZone(state, city),
	}, true
}

// canonicalCity returns the table spelling of city ("hobart" -> "Hobart").
func (r *Resolver) canonicalCity(state domain.StateCode, city string) string {
	key := cityKey(city)
	for _, name := range r.cities[state].names {
		if cityKey(name) == key {
			return name
		}
	}
	return city
}
