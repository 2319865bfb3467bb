// Package planner turns plant candidates into a four-week plan: it merges the
// candidate sources for a zone and month and spreads each category over the
// weeks with a guaranteed minimum per week.
package planner

import (
	"github.com/couchcryptid/garden-planner-service/internal/domain"
	"github.com/couchcryptid/garden-planner-service/internal/reference"
)

const (
	// Weeks is the number of buckets in a monthly plan.
	Weeks = 4
	// DefaultMinPerBucket is the minimum sow/plant items per week.
	DefaultMinPerBucket = 2

	taskMinPerBucket = 1
)

// Planner builds weekly plans from the reference catalogs.
type Planner struct {
	agg          *Aggregator
	minPerBucket int
}

// New creates a Planner. A minPerBucket below 1 uses DefaultMinPerBucket.
func New(t *reference.Tables, minPerBucket int) *Planner {
	if minPerBucket < 1 {
		minPerBucket = DefaultMinPerBucket
	}
	return &Planner{
		agg:          NewAggregator(t, Weeks*minPerBucket),
		minPerBucket: minPerBucket,
	}
}

// MinPerBucket returns the per-week minimum for sow and plant items.
func (p *Planner) MinPerBucket() int { return p.minPerBucket }

// Floor returns the candidate count below which a category gets padded.
func (p *Planner) Floor() int { return Weeks * p.minPerBucket }

// BuildWeeklyPlan aggregates the candidates for zone and month and spreads
// them over four weeks. The explicit lists are curated candidates and take
// priority; each is filed under the category of the list it arrives in,
// whatever its Kind says.
func (p *Planner) BuildWeeklyPlan(zone domain.ClimateZone, month domain.MonthName, explicitSow, explicitPlant []domain.PlantCandidate) domain.WeeklyPlan {
	explicit := make([]domain.PlantCandidate, 0, len(explicitSow)+len(explicitPlant))
	for _, c := range explicitSow {
		explicit = append(explicit, domain.Sow(c.Name))
	}
	for _, c := range explicitPlant {
		explicit = append(explicit, domain.Plant(c.Name))
	}

	sow, plant := p.agg.Aggregate(zone, month, explicit)
	tasks := p.agg.Tasks(zone, month)

	sowWeeks := Distribute(sow, Weeks, p.minPerBucket)
	plantWeeks := Distribute(plant, Weeks, p.minPerBucket)
	taskWeeks := Distribute(tasks, Weeks, taskMinPerBucket)

	weeks := make([]domain.WeekBucket, Weeks)
	for i := range weeks {
		weeks[i] = domain.WeekBucket{
			Index: i + 1,
			Sow:   sowWeeks[i],
			Plant: plantWeeks[i],
			Tasks: taskWeeks[i],
		}
	}

	return domain.WeeklyPlan{
		Zone:            zone,
		Month:           month,
		Weeks:           weeks,
		SowCandidates:   len(sow),
		PlantCandidates: len(plant),
	}
}
