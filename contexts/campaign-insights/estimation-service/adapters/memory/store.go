package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	domainerrors "sherpa/contexts/campaign-insights/estimation-service/domain/errors"
	"sherpa/contexts/campaign-insights/estimation-service/ports"

	"github.com/google/uuid"
)

// Store implements every estimation-service port in memory. Used by tests
// and by local runs without a Postgres DSN.
type Store struct {
	mu sync.RWMutex

	snapshots   map[string]ports.ForecastSnapshot
	idempotency map[string]ports.IdempotencyRecord
	outbox      map[string]outboxRecord
}

type outboxRecord struct {
	Message     ports.OutboxMessage
	Status      string
	PublishedAt *time.Time
}

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

func NewStore() *Store {
	return &Store{
		snapshots:   make(map[string]ports.ForecastSnapshot),
		idempotency: make(map[string]ports.IdempotencyRecord),
		outbox:      make(map[string]outboxRecord),
	}
}

func (s *Store) CreateSnapshot(_ context.Context, snapshot ports.ForecastSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(snapshot.ForecastID)
	if id == "" {
		return domainerrors.ErrInvalidParameters
	}
	if _, exists := s.snapshots[id]; exists {
		return domainerrors.ErrIdempotencyConflict
	}
	s.snapshots[id] = snapshot
	return nil
}

func (s *Store) GetSnapshot(_ context.Context, forecastID string) (ports.ForecastSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.snapshots[strings.TrimSpace(forecastID)]
	if !ok {
		return ports.ForecastSnapshot{}, domainerrors.ErrForecastNotFound
	}
	return item, nil
}

func (s *Store) ListSnapshotsByCampaign(_ context.Context, campaignID string, limit int, offset int) ([]ports.ForecastSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	items := make([]ports.ForecastSnapshot, 0)
	for _, item := range s.snapshots {
		if item.CampaignID == strings.TrimSpace(campaignID) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ForecastID < items[j].ForecastID
	})
	if offset >= len(items) {
		return []ports.ForecastSnapshot{}, nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return append([]ports.ForecastSnapshot(nil), items[offset:end]...), nil
}

func (s *Store) DeleteSnapshotsBefore(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for id, item := range s.snapshots {
		if item.CreatedAt.UTC().Before(cutoff.UTC()) {
			delete(s.snapshots, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *Store) GetRecord(_ context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.idempotency[strings.TrimSpace(key)]
	if !ok {
		return ports.IdempotencyRecord{}, false, nil
	}
	if !record.ExpiresAt.After(now.UTC()) {
		delete(s.idempotency, strings.TrimSpace(key))
		return ports.IdempotencyRecord{}, false, nil
	}
	return record, true, nil
}

func (s *Store) PutRecord(_ context.Context, record ports.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.TrimSpace(record.Key)
	if key == "" {
		return domainerrors.ErrIdempotencyKeyMissing
	}
	if existing, ok := s.idempotency[key]; ok {
		if existing.RequestHash != record.RequestHash {
			return domainerrors.ErrIdempotencyConflict
		}
		if !bytes.Equal(existing.ResponsePayload, record.ResponsePayload) {
			return domainerrors.ErrIdempotencyConflict
		}
		return nil
	}
	s.idempotency[key] = record
	return nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	outboxID := strings.TrimSpace(envelope.EventID)
	if outboxID == "" {
		return domainerrors.ErrInvalidParameters
	}

	if existing, ok := s.outbox[outboxID]; ok {
		if !bytes.Equal(existing.Message.Payload, payload) {
			return domainerrors.ErrIdempotencyConflict
		}
		return nil
	}

	s.outbox[outboxID] = outboxRecord{
		Message: ports.OutboxMessage{
			OutboxID:     outboxID,
			EventType:    envelope.EventType,
			PartitionKey: envelope.PartitionKey,
			Payload:      payload,
			CreatedAt:    envelope.OccurredAt.UTC(),
		},
		Status: outboxStatusPending,
	}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}

	items := make([]ports.OutboxMessage, 0)
	for _, record := range s.outbox {
		if record.Status == outboxStatusPending {
			items = append(items, record.Message)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].OutboxID < items[j].OutboxID
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return append([]ports.OutboxMessage(nil), items...), nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return domainerrors.ErrForecastNotFound
	}
	published := publishedAt.UTC()
	record.Status = outboxStatusPublished
	record.PublishedAt = &published
	s.outbox[strings.TrimSpace(outboxID)] = record
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
