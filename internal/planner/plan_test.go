package planner

import (
	"testing"

	"github.com/couchcryptid/garden-planner-service/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWeeklyPlan_CuratedMonth(t *testing.T) {
	tables := loadTables(t)
	p := New(tables, DefaultMinPerBucket)
	sow, plant := tables.CuratedCandidates(domain.StateTAS, "july")

	plan := p.BuildWeeklyPlan(domain.ZoneCoolTemperate, "july", sow, plant)

	want := []domain.WeekBucket{
		{Index: 1, Sow: []string{"broad beans", "radish"}, Plant: []string{"garlic", "seed potatoes"},
			Tasks: []string{"Prune apples and pears"}},
		{Index: 2, Sow: []string{"snow peas", "lettuce"}, Plant: []string{"shallots", "cabbage"},
			Tasks: []string{"Spread compost over empty beds"}},
		{Index: 3, Sow: []string{"onions", "spinach"}, Plant: []string{"asparagus crowns", "kale"},
			Tasks: []string{"Add compost to beds"}},
		{Index: 4, Sow: []string{"peas", "spring onions"}, Plant: []string{"rhubarb crowns", "silverbeet"},
			Tasks: []string{"Check for slugs after rain"}},
	}
	if diff := cmp.Diff(want, plan.Weeks); diff != "" {
		t.Errorf("weeks mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, domain.ZoneCoolTemperate, plan.Zone)
	assert.Equal(t, domain.MonthName("july"), plan.Month)
	assert.Equal(t, 8, plan.SowCandidates)
	assert.Equal(t, 8, plan.PlantCandidates)
	assert.True(t, plan.PlantRecommended())
}

func TestBuildWeeklyPlan_NoSeedlings(t *testing.T) {
	p := New(loadTables(t), DefaultMinPerBucket)

	plan := p.BuildWeeklyPlan(domain.ZoneAlpine, "july", nil, nil)

	require.Len(t, plan.Weeks, Weeks)
	assert.False(t, plan.PlantRecommended())
	for _, w := range plan.Weeks {
		assert.NotNil(t, w.Plant)
		assert.Empty(t, w.Plant, "week %d", w.Index)
		assert.Len(t, w.Sow, 2, "week %d", w.Index)
		assert.Len(t, w.Tasks, 1, "week %d", w.Index)
	}
	assert.Equal(t, []string{"radish", "lettuce"}, plan.Weeks[0].Sow)
	assert.Equal(t, 3, plan.SowCandidates)
}

func TestBuildWeeklyPlan_ExplicitListDecidesCategory(t *testing.T) {
	p := New(loadTables(t), DefaultMinPerBucket)

	sow := []domain.PlantCandidate{{Name: "garlic", Kind: domain.KindPlant}}
	plant := []domain.PlantCandidate{{Name: "kale"}}
	plan := p.BuildWeeklyPlan(domain.ZoneAlpine, "july", sow, plant)

	require.Len(t, plan.Weeks, Weeks)
	assert.Equal(t, "garlic", plan.Weeks[0].Sow[0])
	assert.Equal(t, 1, plan.PlantCandidates)
	for _, w := range plan.Weeks {
		assert.Equal(t, []string{"kale", "kale"}, w.Plant, "week %d", w.Index)
	}
}

func TestBuildWeeklyPlan_MinimumForEveryZoneAndMonth(t *testing.T) {
	for _, minPer := range []int{1, 2, 3} {
		p := New(loadTables(t), minPer)
		for _, zone := range domain.ClimateZones {
			for _, m := range domain.Months {
				plan := p.BuildWeeklyPlan(zone, m, nil, nil)
				require.Len(t, plan.Weeks, Weeks)
				for i, w := range plan.Weeks {
					assert.Equal(t, i+1, w.Index)
					assert.GreaterOrEqual(t, len(w.Sow), minPer, "%s/%s week %d", zone, m, w.Index)
					if plan.PlantRecommended() {
						assert.GreaterOrEqual(t, len(w.Plant), minPer, "%s/%s week %d", zone, m, w.Index)
					} else {
						assert.Empty(t, w.Plant, "%s/%s week %d", zone, m, w.Index)
					}
					assert.NotEmpty(t, w.Tasks, "%s/%s week %d", zone, m, w.Index)
				}
			}
		}
	}
}

func TestNew_DefaultMinimum(t *testing.T) {
	p := New(loadTables(t), 0)
	assert.Equal(t, DefaultMinPerBucket, p.MinPerBucket())
	assert.Equal(t, Weeks*DefaultMinPerBucket, p.Floor())
}
