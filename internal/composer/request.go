package composer

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/couchcryptid/garden-planner-service/internal/advisory"
	"github.com/couchcryptid/garden-planner-service/internal/domain"
)

var (
	// ErrInvalidRequest marks a request that is malformed before any lookup.
	ErrInvalidRequest = errors.New("invalid plan request")
	// ErrInvalidLocation marks an unknown state or a city outside its state.
	ErrInvalidLocation = errors.New("invalid location")
)

// PlanRequest asks for the recommendation of one location and month. Month
// may be empty, meaning the current month.
type PlanRequest struct {
	State        string `json:"state" validate:"required,max=64"`
	City         string `json:"city" validate:"required,max=64"`
	Month        string `json:"month,omitempty" validate:"omitempty,max=16"`
	SubscriberID string `json:"subscriber_id,omitempty" validate:"omitempty,uuid"`
}

// Recommendation is everything the presentation layer shows for a location
// and month.
type Recommendation struct {
	ID            string                `json:"id"`
	SubscriberID  string                `json:"subscriber_id,omitempty"`
	Location      domain.Location       `json:"location"`
	Month         domain.MonthName      `json:"month"`
	Advisory      domain.AdvisoryRecord `json:"advisory"`
	AdvisoryLevel advisory.Level        `json:"advisory_level"`
	Plan          domain.WeeklyPlan     `json:"plan"`
	GeneratedAt   time.Time             `json:"generated_at"`
}

// LocationError reports an unusable location together with nearby city
// names when the state itself was recognised.
type LocationError struct {
	State       string
	City        string
	StateKnown  bool
	Suggestions []string
}

func (e *LocationError) Error() string {
	if !e.StateKnown {
		return fmt.Sprintf("%s: unknown state %q", ErrInvalidLocation, e.State)
	}
	msg := fmt.Sprintf("%s: city %q not found in %s", ErrInvalidLocation, e.City, e.State)
	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
	}
	return msg
}

func (e *LocationError) Unwrap() error { return ErrInvalidLocation }

// recommendationID produces a deterministic ID so replaying a request yields
// the same message key downstream.
func recommendationID(state domain.StateCode, city string, month domain.MonthName, subscriber string) string {
	input := fmt.Sprintf("%s|%s|%s|%s", state, strings.ToLower(strings.TrimSpace(city)), month, subscriber)
	hash := sha256.Sum256([]byte(input))
	return "plan-" + hex.EncodeToString(hash[:8])
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrInvalidLocation):
		return "invalid_location"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	default:
		return "error"
	}
}
