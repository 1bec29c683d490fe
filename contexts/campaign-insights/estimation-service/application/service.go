package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"math"
	"strings"
	"time"

	"sherpa/contexts/campaign-insights/estimation-service/domain/entities"
	domainerrors "sherpa/contexts/campaign-insights/estimation-service/domain/errors"
	"sherpa/contexts/campaign-insights/estimation-service/domain/services"
	"sherpa/contexts/campaign-insights/estimation-service/ports"
)

type Service struct {
	Repo                                  ports.Repository
	Idempotency                           ports.IdempotencyStore
	Outbox                                ports.OutboxWriter
	Clock                                 ports.Clock
	IDGen                                 ports.IDGenerator
	IdempotencyTTL                        time.Duration
	DisableForecastGeneratedEventEmission bool
	Logger                                *slog.Logger
}

// GenerateForecast runs the pure calculators over the input and persists the
// result as a snapshot for the dashboard. The second return reports an
// idempotency replay. The calculators never fail for valid input, so a retry
// with the same key always replays the original snapshot.
func (s Service) GenerateForecast(
	ctx context.Context,
	idempotencyKey string,
	input ports.ForecastInput,
) (ports.ForecastSnapshot, bool, error) {
	if strings.TrimSpace(idempotencyKey) == "" {
		return ports.ForecastSnapshot{}, false, domainerrors.ErrIdempotencyKeyMissing
	}
	if strings.TrimSpace(input.CampaignID) == "" {
		return ports.ForecastSnapshot{}, false, domainerrors.ErrInvalidParameters
	}

	// Reject invalid parameters before touching the idempotency store so a
	// bad request never occupies a key.
	forecast, err := services.BuildForecast(input.Parameters)
	if err != nil {
		return ports.ForecastSnapshot{}, false, err
	}

	now := s.now()
	requestHash := hashPayload(map[string]any{
		"campaign_id":                strings.TrimSpace(input.CampaignID),
		"budget_per_creator":         round4(input.Parameters.BudgetPerCreator),
		"creator_count":              input.Parameters.CreatorCount,
		"average_followers":          input.Parameters.AverageFollowers,
		"average_engagement_percent": round4(input.Parameters.AverageEngagementPercent),
		"campaign_duration_days":     input.Parameters.CampaignDurationDays,
		"content_type":               string(input.Parameters.ContentType),
		"industry":                   string(input.Parameters.Industry),
	})

	record, found, err := s.Idempotency.GetRecord(ctx, strings.TrimSpace(idempotencyKey), now)
	if err != nil {
		return ports.ForecastSnapshot{}, false, err
	}
	if found {
		if record.RequestHash != requestHash {
			return ports.ForecastSnapshot{}, false, domainerrors.ErrIdempotencyConflict
		}
		var replayed ports.ForecastSnapshot
		if err := json.Unmarshal(record.ResponsePayload, &replayed); err != nil {
			return ports.ForecastSnapshot{}, false, err
		}
		return replayed, true, nil
	}

	forecastID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.ForecastSnapshot{}, false, err
	}

	snapshot := ports.ForecastSnapshot{
		ForecastID: strings.TrimSpace(forecastID),
		CampaignID: strings.TrimSpace(input.CampaignID),
		Parameters: input.Parameters,
		Forecast:   forecast,
		CreatedAt:  now,
	}
	if err := s.Repo.CreateSnapshot(ctx, snapshot); err != nil {
		return ports.ForecastSnapshot{}, false, err
	}
	if err := s.appendForecastGeneratedOutbox(ctx, snapshot); err != nil {
		return ports.ForecastSnapshot{}, false, err
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return ports.ForecastSnapshot{}, false, err
	}
	if err := s.Idempotency.PutRecord(ctx, ports.IdempotencyRecord{
		Key:             strings.TrimSpace(idempotencyKey),
		RequestHash:     requestHash,
		ResponsePayload: payload,
		ExpiresAt:       now.Add(s.idempotencyTTL()),
	}); err != nil {
		return ports.ForecastSnapshot{}, false, err
	}

	ResolveLogger(s.Logger).Info("campaign forecast generated",
		"event", "campaign_forecast_generated",
		"module", "campaign-insights/estimation-service",
		"layer", "application",
		"forecast_id", snapshot.ForecastID,
		"campaign_id", snapshot.CampaignID,
		"expected_reach", snapshot.Forecast.Reach.Expected,
		"confidence", snapshot.Forecast.Confidence,
	)
	return snapshot, false, nil
}

func (s Service) GetForecast(ctx context.Context, forecastID string) (ports.ForecastSnapshot, error) {
	if strings.TrimSpace(forecastID) == "" {
		return ports.ForecastSnapshot{}, domainerrors.ErrForecastNotFound
	}
	return s.Repo.GetSnapshot(ctx, strings.TrimSpace(forecastID))
}

func (s Service) ListCampaignForecasts(
	ctx context.Context,
	campaignID string,
	limit int,
	offset int,
) ([]ports.ForecastSnapshot, error) {
	if strings.TrimSpace(campaignID) == "" {
		return nil, domainerrors.ErrInvalidParameters
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.ListSnapshotsByCampaign(ctx, strings.TrimSpace(campaignID), limit, offset)
}

// OptimizeBudget is a pure pass-through to the tier allocator. The budget
// panel re-runs it on every input change, so nothing is persisted.
func (s Service) OptimizeBudget(
	_ context.Context,
	totalBudget float64,
	criteria entities.OfferCriteria,
) (entities.BudgetOptimization, error) {
	return services.AllocateBudget(totalBudget, criteria)
}

// ClassifyMatch buckets an upstream compatibility score for the marketplace
// ranking badge. The score blending itself happens outside this service.
func (s Service) ClassifyMatch(_ context.Context, matchScore float64) entities.MatchQuality {
	return services.ClassifyMatch(matchScore)
}

// ClassifyMatches classifies a ranked list in one call.
func (s Service) ClassifyMatches(_ context.Context, matchScores []float64) []entities.MatchQuality {
	qualities := make([]entities.MatchQuality, 0, len(matchScores))
	for _, score := range matchScores {
		qualities = append(qualities, services.ClassifyMatch(score))
	}
	return qualities
}

func (s Service) appendForecastGeneratedOutbox(ctx context.Context, snapshot ports.ForecastSnapshot) error {
	if s.Outbox == nil || s.DisableForecastGeneratedEventEmission {
		return nil
	}
	eventID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	data, err := json.Marshal(map[string]any{
		"forecast_id":         snapshot.ForecastID,
		"campaign_id":         snapshot.CampaignID,
		"expected_reach":      snapshot.Forecast.Reach.Expected,
		"expected_engagement": snapshot.Forecast.Engagement.Expected,
		"expected_roi_pct":    snapshot.Forecast.ROI.Percentage.Expected,
		"confidence":          snapshot.Forecast.Confidence,
		"generated_at":        snapshot.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return s.Outbox.AppendOutbox(ctx, ports.EventEnvelope{
		EventID:          strings.TrimSpace(eventID),
		EventType:        "forecast.generated",
		OccurredAt:       snapshot.CreatedAt.UTC(),
		SourceService:    "estimation-service",
		TraceID:          strings.TrimSpace(eventID),
		SchemaVersion:    1,
		PartitionKeyPath: "campaign_id",
		PartitionKey:     snapshot.CampaignID,
		Data:             data,
	})
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func (s Service) idempotencyTTL() time.Duration {
	if s.IdempotencyTTL <= 0 {
		return 24 * time.Hour
	}
	return s.IdempotencyTTL
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func hashPayload(payload map[string]any) string {
	raw, _ := json.Marshal(payload)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
