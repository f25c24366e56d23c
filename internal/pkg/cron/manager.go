package cron

import (
	log "log/slog"

	"leakerflow/internal/job"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine        *cron.Cron
	trendScoreJob *job.TrendScoreJob
	dailyRollup   *job.DailyRollupJob
}

func NewCronManager(trendScoreJob *job.TrendScoreJob, dailyRollup *job.DailyRollupJob) *Manager {
	return &Manager{
		engine:        cron.New(cron.WithSeconds()),
		trendScoreJob: trendScoreJob,
		dailyRollup:   dailyRollup,
	}
}

// RegisterJobs registers the scheduled jobs.
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("@hourly", s.trendScoreJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@daily", s.dailyRollup); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron engine started")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron engine stopped")
	s.engine.Stop()
}
