package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"sherpa/contexts/campaign-insights/estimation-service/adapters/memory"
	"sherpa/contexts/campaign-insights/estimation-service/domain/entities"
	domainerrors "sherpa/contexts/campaign-insights/estimation-service/domain/errors"
	"sherpa/contexts/campaign-insights/estimation-service/ports"
)

type stubClock struct {
	now time.Time
}

func (c *stubClock) Now() time.Time { return c.now }

type seqIDGen struct {
	next int
}

func (g *seqIDGen) NewID(context.Context) (string, error) {
	g.next++
	return fmt.Sprintf("id-%04d", g.next), nil
}

func newTestService(store *memory.Store, clock *stubClock, ids *seqIDGen) Service {
	return Service{
		Repo:        store,
		Idempotency: store,
		Outbox:      store,
		Clock:       clock,
		IDGen:       ids,
	}
}

func validInput() ports.ForecastInput {
	return ports.ForecastInput{
		CampaignID: "campaign-1",
		Parameters: entities.CampaignParameters{
			BudgetPerCreator:         500,
			CreatorCount:             3,
			AverageFollowers:         10_000,
			AverageEngagementPercent: 4,
			CampaignDurationDays:     14,
			ContentType:              entities.ContentTypeVideo,
			Industry:                 entities.IndustryFashion,
		},
	}
}

func TestGenerateForecastReplaysOnSameKey(t *testing.T) {
	store := memory.NewStore()
	clock := &stubClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	svc := newTestService(store, clock, &seqIDGen{})
	ctx := context.Background()

	first, replayed, err := svc.GenerateForecast(ctx, "key-1", validInput())
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if replayed {
		t.Fatal("first call must not be a replay")
	}

	second, replayed, err := svc.GenerateForecast(ctx, "key-1", validInput())
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if !replayed {
		t.Fatal("retry with the same key and payload must replay")
	}
	if second.ForecastID != first.ForecastID {
		t.Fatalf("replay returned a new forecast id: %s vs %s", second.ForecastID, first.ForecastID)
	}

	snapshots, err := store.ListSnapshotsByCampaign(ctx, "campaign-1", 10, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(snapshots) != 1 {
		t.Fatalf("replay persisted a second snapshot: %d", len(snapshots))
	}
}

func TestGenerateForecastConflictsOnSameKeyDifferentPayload(t *testing.T) {
	store := memory.NewStore()
	clock := &stubClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	svc := newTestService(store, clock, &seqIDGen{})
	ctx := context.Background()

	if _, _, err := svc.GenerateForecast(ctx, "key-1", validInput()); err != nil {
		t.Fatalf("first call failed: %v", err)
	}

	changed := validInput()
	changed.Parameters.CreatorCount = 5
	if _, _, err := svc.GenerateForecast(ctx, "key-1", changed); !errors.Is(err, domainerrors.ErrIdempotencyConflict) {
		t.Fatalf("expected ErrIdempotencyConflict, got %v", err)
	}
}

func TestGenerateForecastRequiresIdempotencyKey(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store, &stubClock{now: time.Now().UTC()}, &seqIDGen{})

	for _, key := range []string{"", "   "} {
		if _, _, err := svc.GenerateForecast(context.Background(), key, validInput()); !errors.Is(err, domainerrors.ErrIdempotencyKeyMissing) {
			t.Fatalf("key %q: expected ErrIdempotencyKeyMissing, got %v", key, err)
		}
	}
}

func TestGenerateForecastInvalidInputDoesNotOccupyKey(t *testing.T) {
	store := memory.NewStore()
	clock := &stubClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	svc := newTestService(store, clock, &seqIDGen{})
	ctx := context.Background()

	bad := validInput()
	bad.Parameters.CreatorCount = 0
	if _, _, err := svc.GenerateForecast(ctx, "key-1", bad); !errors.Is(err, domainerrors.ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters, got %v", err)
	}

	// The same key must still accept a valid request afterwards.
	if _, replayed, err := svc.GenerateForecast(ctx, "key-1", validInput()); err != nil || replayed {
		t.Fatalf("key poisoned by invalid request: replayed=%v err=%v", replayed, err)
	}
}

func TestGenerateForecastAppendsOutboxEnvelope(t *testing.T) {
	store := memory.NewStore()
	clock := &stubClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	svc := newTestService(store, clock, &seqIDGen{})
	ctx := context.Background()

	snapshot, _, err := svc.GenerateForecast(ctx, "key-1", validInput())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	pending, err := store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending outbox message, got %d", len(pending))
	}
	if pending[0].EventType != "forecast.generated" {
		t.Fatalf("event type = %s, want forecast.generated", pending[0].EventType)
	}
	if pending[0].PartitionKey != "campaign-1" {
		t.Fatalf("partition key = %s, want campaign-1", pending[0].PartitionKey)
	}

	var envelope ports.EventEnvelope
	if err := json.Unmarshal(pending[0].Payload, &envelope); err != nil {
		t.Fatalf("envelope decode failed: %v", err)
	}
	if envelope.SourceService != "estimation-service" {
		t.Fatalf("source service = %s", envelope.SourceService)
	}
	if envelope.SchemaVersion != 1 {
		t.Fatalf("schema version = %d", envelope.SchemaVersion)
	}
	if envelope.PartitionKeyPath != "campaign_id" {
		t.Fatalf("partition key path = %s", envelope.PartitionKeyPath)
	}

	var data map[string]any
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		t.Fatalf("data decode failed: %v", err)
	}
	if data["forecast_id"] != snapshot.ForecastID {
		t.Fatalf("data forecast_id = %v, want %s", data["forecast_id"], snapshot.ForecastID)
	}
	if data["campaign_id"] != "campaign-1" {
		t.Fatalf("data campaign_id = %v", data["campaign_id"])
	}
}

func TestGenerateForecastCanSuppressEventEmission(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store, &stubClock{now: time.Now().UTC()}, &seqIDGen{})
	svc.DisableForecastGeneratedEventEmission = true

	if _, _, err := svc.GenerateForecast(context.Background(), "key-1", validInput()); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no outbox messages, got %d", len(pending))
	}
}

func TestListCampaignForecastsReturnsNewestFirst(t *testing.T) {
	store := memory.NewStore()
	clock := &stubClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	svc := newTestService(store, clock, &seqIDGen{})
	ctx := context.Background()

	first, _, err := svc.GenerateForecast(ctx, "key-1", validInput())
	if err != nil {
		t.Fatalf("first generate failed: %v", err)
	}

	clock.now = clock.now.Add(time.Hour)
	changed := validInput()
	changed.Parameters.CreatorCount = 5
	second, _, err := svc.GenerateForecast(ctx, "key-2", changed)
	if err != nil {
		t.Fatalf("second generate failed: %v", err)
	}

	snapshots, err := svc.ListCampaignForecasts(ctx, "campaign-1", 0, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snapshots))
	}
	if snapshots[0].ForecastID != second.ForecastID || snapshots[1].ForecastID != first.ForecastID {
		t.Fatalf("snapshots out of order: %s, %s", snapshots[0].ForecastID, snapshots[1].ForecastID)
	}
}

func TestGetForecastNotFound(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store, &stubClock{now: time.Now().UTC()}, &seqIDGen{})

	if _, err := svc.GetForecast(context.Background(), "missing"); !errors.Is(err, domainerrors.ErrForecastNotFound) {
		t.Fatalf("expected ErrForecastNotFound, got %v", err)
	}
	if _, err := svc.GetForecast(context.Background(), "  "); !errors.Is(err, domainerrors.ErrForecastNotFound) {
		t.Fatalf("blank id: expected ErrForecastNotFound, got %v", err)
	}
}

func TestClassifyMatchesPreservesOrder(t *testing.T) {
	svc := newTestService(memory.NewStore(), &stubClock{now: time.Now().UTC()}, &seqIDGen{})

	qualities := svc.ClassifyMatches(context.Background(), []float64{90, 72, 55, 10})
	wantLabels := []string{"Best Match", "Great Match", "Good Match", "Potential Match"}
	if len(qualities) != len(wantLabels) {
		t.Fatalf("expected %d qualities, got %d", len(wantLabels), len(qualities))
	}
	for i, want := range wantLabels {
		if qualities[i].Label != want {
			t.Fatalf("quality %d = %s, want %s", i, qualities[i].Label, want)
		}
	}
}
