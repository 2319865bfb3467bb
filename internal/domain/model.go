package domain

// StateCode is the postal abbreviation of an Australian state or territory.
type StateCode string

const (
	StateNSW StateCode = "NSW"
	StateVIC StateCode = "VIC"
	StateQLD StateCode = "QLD"
	StateWA  StateCode = "WA"
	StateSA  StateCode = "SA"
	StateTAS StateCode = "TAS"
	StateACT StateCode = "ACT"
	StateNT  StateCode = "NT"
)

// States lists every valid state code in display order.
var States = []StateCode{StateNSW, StateVIC, StateQLD, StateWA, StateSA, StateTAS, StateACT, StateNT}

// Valid reports whether s is one of the known state codes.
func (s StateCode) Valid() bool {
	for _, v := range States {
		if v == s {
			return true
		}
	}
	return false
}

// ClimateZone is a coarse climate classification used to pick plant candidates.
type ClimateZone string

const (
	ZoneTropical      ClimateZone = "tropical"
	ZoneSubtropical   ClimateZone = "subtropical"
	ZoneArid          ClimateZone = "arid"
	ZoneWarmTemperate ClimateZone = "warm temperate"
	ZoneCoolTemperate ClimateZone = "cool temperate"
	ZoneAlpine        ClimateZone = "alpine"

	// FallbackZone applies when neither a city override nor a state default exists.
	FallbackZone = ZoneCoolTemperate
)

// ClimateZones lists every valid zone.
var ClimateZones = []ClimateZone{
	ZoneTropical, ZoneSubtropical, ZoneArid, ZoneWarmTemperate, ZoneCoolTemperate, ZoneAlpine,
}

// Valid reports whether z is one of the known climate zones.
func (z ClimateZone) Valid() bool {
	for _, v := range ClimateZones {
		if v == z {
			return true
		}
	}
	return false
}

// Location is a validated state/city pair with its derived climate zone.
type Location struct {
	State       StateCode   `json:"state"`
	City        string      `json:"city"`
	ClimateZone ClimateZone `json:"climate_zone"`
}

// AdvisoryRecord is seasonal gardening guidance for a location and month.
type AdvisoryRecord struct {
	Mistakes     []string `json:"mistakes" yaml:"mistakes"`
	Warnings     []string `json:"warnings" yaml:"warnings"`
	CommonErrors []string `json:"common_errors" yaml:"common_errors"`
}

// EmptyAdvisory returns a record whose lists are empty but not nil.
func EmptyAdvisory() AdvisoryRecord {
	return AdvisoryRecord{Mistakes: []string{}, Warnings: []string{}, CommonErrors: []string{}}
}

// Normalized returns a copy of r with nil lists replaced by empty ones.
// The copy shares no backing arrays with r.
func (r AdvisoryRecord) Normalized() AdvisoryRecord {
	return AdvisoryRecord{
		Mistakes:     cloneStrings(r.Mistakes),
		Warnings:     cloneStrings(r.Warnings),
		CommonErrors: cloneStrings(r.CommonErrors),
	}
}

// CandidateKind says whether a plant is sown from seed or planted as a seedling.
type CandidateKind string

const (
	KindSow   CandidateKind = "sow"
	KindPlant CandidateKind = "plant"
)

// PlantCandidate is a named plant proposed for a month. Identity is (Name, Kind).
type PlantCandidate struct {
	Name string        `json:"name"`
	Kind CandidateKind `json:"kind"`
}

// Sow is shorthand for a sow candidate.
func Sow(name string) PlantCandidate { return PlantCandidate{Name: name, Kind: KindSow} }

// Plant is shorthand for a plant candidate.
func Plant(name string) PlantCandidate { return PlantCandidate{Name: name, Kind: KindPlant} }

// WeekBucket is one week of a monthly plan. Index runs 1..4.
type WeekBucket struct {
	Index int      `json:"index"`
	Sow   []string `json:"sow"`
	Plant []string `json:"plant"`
	Tasks []string `json:"tasks"`
}

// WeeklyPlan is a month's recommendations spread over four weeks.
type WeeklyPlan struct {
	Zone  ClimateZone  `json:"zone"`
	Month MonthName    `json:"month"`
	Weeks []WeekBucket `json:"weeks"`

	// Number of distinct candidates before padding.
	SowCandidates   int `json:"sow_candidates"`
	PlantCandidates int `json:"plant_candidates"`
}

// PlantRecommended reports whether any seedling candidates exist for the month.
func (p WeeklyPlan) PlantRecommended() bool { return p.PlantCandidates > 0 }

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
