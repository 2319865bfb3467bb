package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/couchcryptid/garden-planner-service/internal/advisory"
	"github.com/couchcryptid/garden-planner-service/internal/composer"
	"github.com/couchcryptid/garden-planner-service/internal/domain"
	"github.com/couchcryptid/garden-planner-service/internal/reference"
)

// Planner is the recommendation surface the HTTP API serves.
type Planner interface {
	Compose(ctx context.Context, req composer.PlanRequest) (composer.Recommendation, error)
	NormalizeState(raw string) (domain.StateCode, bool)
	ValidatePair(state domain.StateCode, city string) bool
	SuggestCities(state domain.StateCode, city string) []string
	Cities(state domain.StateCode) []string
	ResolveClimateZone(state domain.StateCode, city string) domain.ClimateZone
	LookupAdvisory(state domain.StateCode, city string, month domain.MonthName) (domain.AdvisoryRecord, advisory.Level)
	States() []reference.StateInfo
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := composer.PlanRequest{
		State:        q.Get("state"),
		City:         q.Get("city"),
		Month:        q.Get("month"),
		SubscriberID: q.Get("subscriber_id"),
	}

	rec, err := s.planner.Compose(r.Context(), req)
	if err != nil {
		s.writeComposeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlanResponse(rec))
}

func (s *Server) handleAdvisory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := locationQuery{State: q.Get("state"), City: q.Get("city"), Month: q.Get("month")}
	if err := s.validate.Struct(in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	month := domain.CurrentMonth()
	if in.Month != "" {
		m, ok := domain.ParseMonth(in.Month)
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown month " + in.Month})
			return
		}
		month = m
	}

	state, ok := s.planner.NormalizeState(in.State)
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "unknown state " + in.State})
		return
	}
	if in.City != "" && !s.planner.ValidatePair(state, in.City) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:       "unknown city " + in.City,
			Suggestions: s.planner.SuggestCities(state, in.City),
		})
		return
	}

	rec, level := s.planner.LookupAdvisory(state, in.City, month)
	writeJSON(w, http.StatusOK, advisoryResponse{
		State:    string(state),
		City:     in.City,
		Month:    string(month),
		Level:    string(level),
		Advisory: toAdvisoryDTO(rec),
	})
}

func (s *Server) handleValidateLocation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := locationQuery{State: q.Get("state"), City: q.Get("city")}
	if err := s.validate.Struct(in); err != nil || in.City == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "state and city are required"})
		return
	}

	resp := validateResponse{City: in.City}
	state, ok := s.planner.NormalizeState(in.State)
	if !ok {
		writeJSON(w, http.StatusOK, resp)
		return
	}
	resp.State = string(state)

	if s.planner.ValidatePair(state, in.City) {
		resp.Valid = true
		resp.ClimateZone = string(s.planner.ResolveClimateZone(state, in.City))
	} else {
		resp.Suggestions = s.planner.SuggestCities(state, in.City)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleZones(w http.ResponseWriter, _ *http.Request) {
	states := s.planner.States()
	resp := zonesResponse{
		Zones:    domain.ClimateZones,
		Fallback: domain.FallbackZone,
		States:   make([]stateZonesDTO, 0, len(states)),
	}
	for _, st := range states {
		cities := s.planner.Cities(st.Code)
		dto := stateZonesDTO{
			Code:        string(st.Code),
			Name:        st.Name,
			DefaultZone: string(s.planner.ResolveClimateZone(st.Code, "")),
			Cities:      make([]cityZoneDTO, 0, len(cities)),
		}
		for _, c := range cities {
			dto.Cities = append(dto.Cities, cityZoneDTO{Name: c, Zone: string(s.planner.ResolveClimateZone(st.Code, c))})
		}
		resp.States = append(resp.States, dto)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeComposeError(w http.ResponseWriter, r *http.Request, err error) {
	var locErr *composer.LocationError
	switch {
	case errors.As(err, &locErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Suggestions: locErr.Suggestions})
	case errors.Is(err, composer.ErrInvalidRequest):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		s.logger.Error("compose failed", "error", err, "request_id", RequestID(r.Context()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
