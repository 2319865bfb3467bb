package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/garden-planner-service/internal/composer"
	"github.com/couchcryptid/garden-planner-service/internal/domain"
)

// Composer produces a recommendation for a plan request.
type Composer interface {
	Compose(ctx context.Context, req composer.PlanRequest) (composer.Recommendation, error)
}

// PlanTransformer implements Transformer: it decodes a JSON plan request,
// composes the recommendation and serializes it for the sink topic.
type PlanTransformer struct {
	composer Composer
	logger   *slog.Logger
}

// NewTransformer creates a PlanTransformer.
func NewTransformer(c Composer, logger *slog.Logger) *PlanTransformer {
	return &PlanTransformer{composer: c, logger: logger}
}

func (t *PlanTransformer) Transform(ctx context.Context, raw domain.RawMessage) (domain.OutputMessage, error) {
	var req composer.PlanRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return domain.OutputMessage{}, fmt.Errorf("decode plan request: %w", err)
	}

	rec, err := t.composer.Compose(ctx, req)
	if err != nil {
		return domain.OutputMessage{}, fmt.Errorf("compose plan: %w", err)
	}

	return SerializeRecommendation(rec)
}

// SerializeRecommendation encodes a recommendation keyed by its ID with
// zone, month and generated_at headers.
func SerializeRecommendation(rec composer.Recommendation) (domain.OutputMessage, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return domain.OutputMessage{}, fmt.Errorf("serialize recommendation: %w", err)
	}
	return domain.OutputMessage{
		Key:   []byte(rec.ID),
		Value: data,
		Headers: map[string]string{
			"zone":         string(rec.Location.ClimateZone),
			"month":        string(rec.Month),
			"generated_at": rec.GeneratedAt.Format(time.RFC3339),
		},
	}, nil
}
