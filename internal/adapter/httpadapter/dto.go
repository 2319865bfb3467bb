package httpadapter

import (
	"time"

	"github.com/couchcryptid/garden-planner-service/internal/advisory"
	"github.com/couchcryptid/garden-planner-service/internal/composer"
	"github.com/couchcryptid/garden-planner-service/internal/domain"
)

// NotRecommendedNote is shown for a week that has no seedlings to plant.
const NotRecommendedNote = "Planting not recommended this week"

type locationQuery struct {
	State string `validate:"required,max=64"`
	City  string `validate:"omitempty,max=64"`
	Month string `validate:"omitempty,max=16"`
}

type errorResponse struct {
	Error       string   `json:"error"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type advisoryDTO struct {
	Mistakes     []advisory.Entry `json:"mistakes"`
	Warnings     []advisory.Entry `json:"warnings"`
	CommonErrors []advisory.Entry `json:"common_errors"`
}

type weekDTO struct {
	Index int      `json:"index"`
	Sow   []string `json:"sow"`
	Plant []string `json:"plant"`
	Tasks []string `json:"tasks"`
	Notes []string `json:"notes,omitempty"`
}

type planResponse struct {
	ID               string          `json:"id"`
	SubscriberID     string          `json:"subscriber_id,omitempty"`
	Location         domain.Location `json:"location"`
	Month            string          `json:"month"`
	Advisory         advisoryDTO     `json:"advisory"`
	AdvisoryLevel    string          `json:"advisory_level"`
	PlantRecommended bool            `json:"plant_recommended"`
	Weeks            []weekDTO       `json:"weeks"`
	GeneratedAt      time.Time       `json:"generated_at"`
}

type advisoryResponse struct {
	State    string      `json:"state"`
	City     string      `json:"city,omitempty"`
	Month    string      `json:"month"`
	Level    string      `json:"level"`
	Advisory advisoryDTO `json:"advisory"`
}

type validateResponse struct {
	Valid       bool     `json:"valid"`
	State       string   `json:"state,omitempty"`
	City        string   `json:"city"`
	ClimateZone string   `json:"climate_zone,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type cityZoneDTO struct {
	Name string `json:"name"`
	Zone string `json:"zone"`
}

type stateZonesDTO struct {
	Code        string        `json:"code"`
	Name        string        `json:"name"`
	DefaultZone string        `json:"default_zone"`
	Cities      []cityZoneDTO `json:"cities"`
}

type zonesResponse struct {
	Zones    []domain.ClimateZone `json:"zones"`
	Fallback domain.ClimateZone   `json:"fallback"`
	States   []stateZonesDTO      `json:"states"`
}

func toAdvisoryDTO(r domain.AdvisoryRecord) advisoryDTO {
	return advisoryDTO{
		Mistakes:     advisory.SplitEntries(r.Mistakes),
		Warnings:     advisory.SplitEntries(r.Warnings),
		CommonErrors: advisory.SplitEntries(r.CommonErrors),
	}
}

func toPlanResponse(rec composer.Recommendation) planResponse {
	weeks := make([]weekDTO, 0, len(rec.Plan.Weeks))
	for _, w := range rec.Plan.Weeks {
		dto := weekDTO{Index: w.Index, Sow: w.Sow, Plant: w.Plant, Tasks: w.Tasks}
		if len(w.Plant) == 0 {
			dto.Notes = []string{NotRecommendedNote}
		}
		weeks = append(weeks, dto)
	}
	return planResponse{
		ID:               rec.ID,
		SubscriberID:     rec.SubscriberID,
		Location:         rec.Location,
		Month:            string(rec.Month),
		Advisory:         toAdvisoryDTO(rec.Advisory),
		AdvisoryLevel:    string(rec.AdvisoryLevel),
		PlantRecommended: rec.Plan.PlantRecommended(),
		Weeks:            weeks,
		GeneratedAt:      rec.GeneratedAt,
	}
}
