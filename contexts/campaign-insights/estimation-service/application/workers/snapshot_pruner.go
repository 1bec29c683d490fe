package workers

import (
	"context"
	"log/slog"
	"time"

	application "sherpa/contexts/campaign-insights/estimation-service/application"
	"sherpa/contexts/campaign-insights/estimation-service/ports"
)

// SnapshotPruner deletes forecast snapshots older than the retention window
// so the dashboard tables stay bounded.
type SnapshotPruner struct {
	Repo      ports.Repository
	Clock     ports.Clock
	Retention time.Duration
	Logger    *slog.Logger
}

func (p SnapshotPruner) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(p.Logger)
	retention := p.Retention
	if retention <= 0 {
		retention = 90 * 24 * time.Hour
	}

	now := time.Now().UTC()
	if p.Clock != nil {
		now = p.Clock.Now().UTC()
	}

	pruned, err := p.Repo.DeleteSnapshotsBefore(ctx, now.Add(-retention))
	if err != nil {
		logger.Error("snapshot prune sweep failed",
			"event", "estimation_snapshot_prune_failed",
			"module", "campaign-insights/estimation-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if pruned > 0 {
		logger.Info("snapshot prune sweep completed",
			"event", "estimation_snapshot_prune_completed",
			"module", "campaign-insights/estimation-service",
			"layer", "worker",
			"pruned_count", pruned,
		)
	}
	return nil
}
