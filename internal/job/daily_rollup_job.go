package job

import (
	"context"
	log "log/slog"
	"time"

	"leakerflow/internal/pkg/logger"
	"leakerflow/internal/pkg/util"
	"leakerflow/internal/service"

	"github.com/google/uuid"
)

// DailyRollupJob aggregates yesterday's event ledger into the daily
// analytics table. The rollup is idempotent, so a crashed run is simply
// retried on the next tick.
type DailyRollupJob struct {
	analyticsSvc service.AnalyticsService
}

func NewDailyRollupJob(analyticsSvc service.AnalyticsService) *DailyRollupJob {
	return &DailyRollupJob{analyticsSvc: analyticsSvc}
}

func (s *DailyRollupJob) Run() {
	traceID := "job-rollup-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	target := util.Yesterday(time.Now())
	start := time.Now()

	written, err := s.analyticsSvc.RollupDay(ctx, target)
	if err != nil {
		log.ErrorContext(ctx, "daily analytics rollup error",
			"date", target.Format(time.DateOnly), "err", err)
		return
	}

	log.InfoContext(ctx, "daily analytics rollup success",
		"date", target.Format(time.DateOnly),
		"rows", written,
		"elapsed", time.Since(start))
}
