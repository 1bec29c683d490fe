package ports

import (
	"context"
	"time"

	"sherpa/contexts/campaign-insights/estimation-service/domain/entities"
	sharedevents "sherpa/internal/shared/events"
)

// ForecastInput is one estimation request assembled by a caller (campaign
// wizard, dashboard). The engine itself stays stateless; the snapshot is the
// application-level record the dashboard reads back.
type ForecastInput struct {
	CampaignID string
	Parameters entities.CampaignParameters
}

type ForecastSnapshot struct {
	ForecastID string
	CampaignID string
	Parameters entities.CampaignParameters
	Forecast   entities.CampaignForecast
	CreatedAt  time.Time
}

type Repository interface {
	CreateSnapshot(ctx context.Context, snapshot ForecastSnapshot) error
	GetSnapshot(ctx context.Context, forecastID string) (ForecastSnapshot, error)
	ListSnapshotsByCampaign(ctx context.Context, campaignID string, limit int, offset int) ([]ForecastSnapshot, error)
	DeleteSnapshotsBefore(ctx context.Context, cutoff time.Time) (int, error)
}

type IdempotencyRecord struct {
	Key             string
	RequestHash     string
	ResponsePayload []byte
	ExpiresAt       time.Time
}

type IdempotencyStore interface {
	GetRecord(ctx context.Context, key string, now time.Time) (IdempotencyRecord, bool, error)
	PutRecord(ctx context.Context, record IdempotencyRecord) error
}

type EventEnvelope = sharedevents.Envelope

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
