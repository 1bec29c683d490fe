package postgresadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"sherpa/contexts/campaign-insights/estimation-service/domain/entities"
	domainerrors "sherpa/contexts/campaign-insights/estimation-service/domain/errors"
	"sherpa/contexts/campaign-insights/estimation-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Migrate creates the estimation-service tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&forecastSnapshotModel{},
		&idempotencyModel{},
		&outboxModel{},
	)
}

func (r *Repository) CreateSnapshot(ctx context.Context, snapshot ports.ForecastSnapshot) error {
	row, err := snapshotModelFromPort(snapshot)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrIdempotencyConflict
		}
		return err
	}
	return nil
}

func (r *Repository) GetSnapshot(ctx context.Context, forecastID string) (ports.ForecastSnapshot, error) {
	var row forecastSnapshotModel
	err := r.db.WithContext(ctx).
		Where("forecast_id = ?", strings.TrimSpace(forecastID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ForecastSnapshot{}, domainerrors.ErrForecastNotFound
		}
		return ports.ForecastSnapshot{}, err
	}
	return row.toPort()
}

func (r *Repository) ListSnapshotsByCampaign(ctx context.Context, campaignID string, limit int, offset int) ([]ports.ForecastSnapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var rows []forecastSnapshotModel
	if err := r.db.WithContext(ctx).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]ports.ForecastSnapshot, 0, len(rows))
	for _, row := range rows {
		item, err := row.toPort()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) DeleteSnapshotsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff.UTC()).
		Delete(&forecastSnapshotModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

func (r *Repository) GetRecord(ctx context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	var row idempotencyModel
	err := r.db.WithContext(ctx).
		Where("key = ?", strings.TrimSpace(key)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.IdempotencyRecord{}, false, nil
		}
		return ports.IdempotencyRecord{}, false, err
	}

	if !row.ExpiresAt.IsZero() && now.UTC().After(row.ExpiresAt.UTC()) {
		if err := r.db.WithContext(ctx).
			Where("key = ?", strings.TrimSpace(key)).
			Delete(&idempotencyModel{}).
			Error; err != nil {
			return ports.IdempotencyRecord{}, false, err
		}
		return ports.IdempotencyRecord{}, false, nil
	}

	return ports.IdempotencyRecord{
		Key:             row.Key,
		RequestHash:     row.RequestHash,
		ResponsePayload: append([]byte(nil), row.ResponsePayload...),
		ExpiresAt:       row.ExpiresAt.UTC(),
	}, true, nil
}

func (r *Repository) PutRecord(ctx context.Context, record ports.IdempotencyRecord) error {
	row := idempotencyModel{
		Key:             strings.TrimSpace(record.Key),
		RequestHash:     record.RequestHash,
		ResponsePayload: append([]byte(nil), record.ResponsePayload...),
		ExpiresAt:       record.ExpiresAt.UTC(),
	}
	createResult := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).
		Create(&row)
	if createResult.Error != nil {
		return createResult.Error
	}
	if createResult.RowsAffected > 0 {
		return nil
	}

	var existing idempotencyModel
	if err := r.db.WithContext(ctx).
		Where("key = ?", row.Key).
		First(&existing).
		Error; err != nil {
		return err
	}
	if existing.RequestHash != row.RequestHash || !bytes.Equal(existing.ResponsePayload, row.ResponsePayload) {
		return domainerrors.ErrIdempotencyConflict
	}
	return nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:     strings.TrimSpace(envelope.EventID),
		EventType:    envelope.EventType,
		PartitionKey: envelope.PartitionKey,
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	if row.OutboxID == "" {
		return domainerrors.ErrInvalidParameters
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return err
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      append([]byte(nil), row.Payload...),
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrForecastNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

type forecastSnapshotModel struct {
	ForecastID string    `gorm:"column:forecast_id;primaryKey"`
	CampaignID string    `gorm:"column:campaign_id;index"`
	Parameters []byte    `gorm:"column:parameters;type:jsonb"`
	Forecast   []byte    `gorm:"column:forecast;type:jsonb"`
	CreatedAt  time.Time `gorm:"column:created_at;index"`
}

func (forecastSnapshotModel) TableName() string {
	return "forecast_snapshots"
}

func snapshotModelFromPort(snapshot ports.ForecastSnapshot) (forecastSnapshotModel, error) {
	parameters, err := json.Marshal(snapshot.Parameters)
	if err != nil {
		return forecastSnapshotModel{}, err
	}
	forecast, err := json.Marshal(snapshot.Forecast)
	if err != nil {
		return forecastSnapshotModel{}, err
	}
	return forecastSnapshotModel{
		ForecastID: strings.TrimSpace(snapshot.ForecastID),
		CampaignID: strings.TrimSpace(snapshot.CampaignID),
		Parameters: parameters,
		Forecast:   forecast,
		CreatedAt:  snapshot.CreatedAt.UTC(),
	}, nil
}

func (m forecastSnapshotModel) toPort() (ports.ForecastSnapshot, error) {
	var parameters entities.CampaignParameters
	if err := json.Unmarshal(m.Parameters, &parameters); err != nil {
		return ports.ForecastSnapshot{}, err
	}
	var forecast entities.CampaignForecast
	if err := json.Unmarshal(m.Forecast, &forecast); err != nil {
		return ports.ForecastSnapshot{}, err
	}
	return ports.ForecastSnapshot{
		ForecastID: m.ForecastID,
		CampaignID: m.CampaignID,
		Parameters: parameters,
		Forecast:   forecast,
		CreatedAt:  m.CreatedAt.UTC(),
	}, nil
}

type idempotencyModel struct {
	Key             string    `gorm:"column:key;primaryKey"`
	RequestHash     string    `gorm:"column:request_hash"`
	ResponsePayload []byte    `gorm:"column:response_payload;type:jsonb"`
	ExpiresAt       time.Time `gorm:"column:expires_at"`
}

func (idempotencyModel) TableName() string {
	return "estimation_idempotency"
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload;type:jsonb"`
	Status       string     `gorm:"column:status;index"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "estimation_outbox"
}
