package job

import (
	"context"
	log "log/slog"
	"time"

	"leakerflow/internal/pkg/logger"
	"leakerflow/internal/service"

	"github.com/google/uuid"
)

// TrendScoreJob ages out stale trends on a fixed interval, so scores keep
// decaying even for articles that receive no new votes.
type TrendScoreJob struct {
	trendSvc service.TrendService
}

func NewTrendScoreJob(trendSvc service.TrendService) *TrendScoreJob {
	return &TrendScoreJob{trendSvc: trendSvc}
}

func (s *TrendScoreJob) Run() {
	traceID := "job-trend-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	start := time.Now()
	updated, err := s.trendSvc.RecomputeAll(ctx)
	if err != nil {
		log.ErrorContext(ctx, "trend score recompute error", "err", err)
		return
	}

	log.InfoContext(ctx, "trend score recompute success",
		"articles", updated,
		"elapsed", time.Since(start))
}
