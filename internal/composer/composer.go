// Package composer runs the recommendation data flow for one request:
// normalise the location, derive its climate zone, resolve the advisory and
// build the weekly plan from curated and catalog candidates.
package composer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/couchcryptid/garden-planner-service/internal/advisory"
	"github.com/couchcryptid/garden-planner-service/internal/domain"
	"github.com/couchcryptid/garden-planner-service/internal/location"
	"github.com/couchcryptid/garden-planner-service/internal/observability"
	"github.com/couchcryptid/garden-planner-service/internal/planner"
	"github.com/couchcryptid/garden-planner-service/internal/reference"
)

const maxSuggestions = 3

// Options tunes a Composer.
type Options struct {
	// MinPerBucket is the per-week minimum for sow and plant items.
	MinPerBucket int
	// AdvisoryCacheSize bounds the advisory LRU; 0 disables caching.
	AdvisoryCacheSize int
}

// Composer exposes the location, zone, advisory and plan operations over one
// set of reference tables. It is safe for concurrent use.
type Composer struct {
	tables     *reference.Tables
	locations  *location.Resolver
	advisories advisory.Source
	planner    *planner.Planner
	validate   *validator.Validate
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// New wires a Composer over validated reference tables.
func New(tables *reference.Tables, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Composer {
	var src advisory.Source = advisory.NewResolver(tables.Advisories)
	if opts.AdvisoryCacheSize > 0 {
		src = advisory.NewCachedResolver(src, opts.AdvisoryCacheSize, metrics.CacheObserver())
	}

	return &Composer{
		tables:     tables,
		locations:  location.NewResolver(tables),
		advisories: src,
		planner:    planner.New(tables, opts.MinPerBucket),
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		logger:     logger,
		metrics:    metrics,
	}
}

// NormalizeState maps free-form state input to a state code.
func (c *Composer) NormalizeState(raw string) (domain.StateCode, bool) {
	return c.locations.NormalizeState(raw)
}

// ValidatePair reports whether city is a known city of state.
func (c *Composer) ValidatePair(state domain.StateCode, city string) bool {
	return c.locations.ValidatePair(state, city)
}

// SuggestCities returns known cities of state close to city.
func (c *Composer) SuggestCities(state domain.StateCode, city string) []string {
	return c.locations.SuggestCities(state, city, maxSuggestions)
}

// Cities returns the known cities of state.
func (c *Composer) Cities(state domain.StateCode) []string {
	return c.locations.Cities(state)
}

// States returns the location list in display order.
func (c *Composer) States() []reference.StateInfo {
	out := make([]reference.StateInfo, len(c.tables.States))
	copy(out, c.tables.States)
	return out
}

// ResolveClimateZone returns the zone for a state and optional city.
func (c *Composer) ResolveClimateZone(state domain.StateCode, city string) domain.ClimateZone {
	return c.locations.ResolveClimateZone(state, city)
}

// ResolveAdvisory returns the advisory for a location and month.
func (c *Composer) ResolveAdvisory(state domain.StateCode, city string, month domain.MonthName) domain.AdvisoryRecord {
	rec, _ := c.LookupAdvisory(state, city, month)
	return rec
}

// BuildWeeklyPlan builds a four-week plan for zone and month.
func (c *Composer) BuildWeeklyPlan(zone domain.ClimateZone, month domain.MonthName, explicitSow, explicitPlant []domain.PlantCandidate) domain.WeeklyPlan {
	return c.planner.BuildWeeklyPlan(zone, month, explicitSow, explicitPlant)
}

// Compose validates the request and produces the full recommendation. An
// unknown location yields an error wrapping ErrInvalidLocation; no default
// location is ever substituted.
func (c *Composer) Compose(ctx context.Context, req PlanRequest) (Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return Recommendation{}, err
	}
	start := time.Now()

	rec, err := c.compose(req)
	if err != nil {
		c.metrics.PlanRequests.WithLabelValues(outcome(err)).Inc()
		return Recommendation{}, err
	}

	c.metrics.PlanRequests.WithLabelValues("ok").Inc()
	c.metrics.ComposeDuration.Observe(time.Since(start).Seconds())
	c.logger.Debug("plan composed",
		"id", rec.ID,
		"state", rec.Location.State,
		"city", rec.Location.City,
		"zone", rec.Location.ClimateZone,
		"month", rec.Month,
		"advisory_level", rec.AdvisoryLevel,
	)
	return rec, nil
}

func (c *Composer) compose(req PlanRequest) (Recommendation, error) {
	if err := c.validate.Struct(req); err != nil {
		return Recommendation{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	month, err := resolveMonth(req.Month)
	if err != nil {
		return Recommendation{}, err
	}

	loc, err := c.locate(req.State, req.City)
	if err != nil {
		return Recommendation{}, err
	}

	adv, level := c.LookupAdvisory(loc.State, loc.City, month)

	curatedSow, curatedPlant := c.tables.CuratedCandidates(loc.State, month)
	plan := c.planner.BuildWeeklyPlan(loc.ClimateZone, month, curatedSow, curatedPlant)
	c.recordPlan(plan)

	return Recommendation{
		ID:            recommendationID(loc.State, loc.City, month, req.SubscriberID),
		SubscriberID:  req.SubscriberID,
		Location:      loc,
		Month:         month,
		Advisory:      adv,
		AdvisoryLevel: level,
		Plan:          plan,
		GeneratedAt:   domain.Now(),
	}, nil
}

func (c *Composer) locate(rawState, city string) (domain.Location, error) {
	state, ok := c.locations.NormalizeState(rawState)
	if !ok {
		return domain.Location{}, &LocationError{State: rawState, City: city}
	}
	loc, ok := c.locations.Locate(state, city)
	if !ok {
		return domain.Location{}, &LocationError{
			State:       string(state),
			City:        city,
			StateKnown:  true,
			Suggestions: c.locations.SuggestCities(state, city, maxSuggestions),
		}
	}
	return loc, nil
}

// LookupAdvisory is ResolveAdvisory that also reports the fallback level.
func (c *Composer) LookupAdvisory(state domain.StateCode, city string, month domain.MonthName) (domain.AdvisoryRecord, advisory.Level) {
	rec, level := c.advisories.Lookup(state, city, month)
	c.metrics.AdvisoryResolutions.WithLabelValues(string(level)).Inc()
	return rec, level
}

func (c *Composer) recordPlan(plan domain.WeeklyPlan) {
	floor := c.planner.Floor()
	for category, n := range map[string]int{"sow": plan.SowCandidates, "plant": plan.PlantCandidates} {
		switch {
		case n == 0:
			c.metrics.EmptyCategories.WithLabelValues(category).Inc()
		case n < floor:
			c.metrics.PaddedCategories.WithLabelValues(category).Inc()
		}
	}
}

// resolveMonth parses an explicit month or falls back to the current one.
func resolveMonth(raw string) (domain.MonthName, error) {
	if raw == "" {
		return domain.CurrentMonth(), nil
	}
	m, ok := domain.ParseMonth(raw)
	if !ok {
		return "", fmt.Errorf("%w: unknown month %q", ErrInvalidRequest, raw)
	}
	return m, nil
}
