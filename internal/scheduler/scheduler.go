package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/kenneldesk/kenneldesk/internal/config"
	"github.com/kenneldesk/kenneldesk/internal/domain/models"
	"github.com/kenneldesk/kenneldesk/internal/service/reports"
)

// Scheduler runs the full all-roles report on a cron schedule and archives it.
type Scheduler struct {
	cron       *cron.Cron
	reportsSvc *reports.Service
	cfg        config.ReportingConfig
	logger     *zap.Logger
}

// NewScheduler creates a new scheduler instance in the configured timezone,
// falling back to the process-local one when the zone cannot be loaded.
func NewScheduler(cfg config.ReportingConfig, reportsSvc *reports.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []cron.Option{}
	if location, err := time.LoadLocation(cfg.Timezone); err == nil {
		opts = append(opts, cron.WithLocation(location))
	} else {
		logger.Warn("invalid timezone, using local", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	return &Scheduler{
		cron:       cron.New(opts...),
		reportsSvc: reportsSvc,
		cfg:        cfg,
		logger:     logger,
	}
}

// Start registers the scheduled report job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runScheduledReport); err != nil {
		s.logger.Error("failed to schedule report job", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runScheduledReport() {
	s.logger.Info("generating scheduled analysis report")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	report, _, err := s.reportsSvc.Generate(ctx, models.AllRoles(), models.TriggerSchedule)
	if err != nil {
		s.logger.Error("scheduled report failed", zap.Error(err))
		return
	}

	s.logger.Info("scheduled report generated",
		zap.String("report_id", report.ID),
		zap.Int("roles", len(report.Analyses)))
}
