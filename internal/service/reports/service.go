// Package reports composes the aggregator, the analysis orchestrator and the
// report archive into the single operation exposed to HTTP callers and the
// scheduler.
package reports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kenneldesk/kenneldesk/internal/domain/models"
	"github.com/kenneldesk/kenneldesk/internal/repository/mongodb"
	"github.com/kenneldesk/kenneldesk/internal/service/aggregator"
	"github.com/kenneldesk/kenneldesk/internal/service/analysis"
)

// Service is the report consumer surface: "produce expert analyses for
// role(s) X given the current business snapshot".
type Service struct {
	aggregator   *aggregator.Service
	orchestrator *analysis.Orchestrator
	archive      mongodb.Repository
	logger       *zap.Logger
	now          func() time.Time
}

// NewService wires a report service instance. The archive may be nil; report
// persistence is best-effort and never fails a request.
func NewService(agg *aggregator.Service, orch *analysis.Orchestrator, archive mongodb.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		aggregator:   agg,
		orchestrator: orch,
		archive:      archive,
		logger:       logger,
		now:          time.Now,
	}
}

// Generate aggregates a fresh snapshot, runs the requested expert roles and
// archives the outcome. Aggregation failure or all roles failing surface as
// errors; partial role success returns normally with the failed roles absent.
func (s *Service) Generate(ctx context.Context, roles []models.ExpertRole, trigger models.ReportTrigger) (*models.AnalysisReport, *models.ExpertAnalysisResult, error) {
	data, err := s.aggregator.Aggregate(ctx)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.orchestrator.GenerateReport(ctx, data, roles)
	if err != nil {
		return nil, nil, err
	}

	report := &models.AnalysisReport{
		ID:          uuid.NewString(),
		GeneratedAt: result.GeneratedAt,
		Trigger:     trigger,
		Summary:     result.Summary,
		Analyses:    make(map[string]string, len(result.Analyses)),
		Combined:    result.Combined,
		CreatedAt:   s.now().UTC(),
	}
	for role, narrative := range result.Analyses {
		report.Analyses[string(role)] = narrative
	}

	if s.archive != nil {
		if err := s.archive.SaveReport(ctx, *report); err != nil {
			s.logger.Warn("failed to archive analysis report", zap.String("report_id", report.ID), zap.Error(err))
		}
	}

	return report, result, nil
}

// Snapshot runs aggregation only, without any LLM calls.
func (s *Service) Snapshot(ctx context.Context) (*models.AggregateResult, error) {
	return s.aggregator.Aggregate(ctx)
}

// Recent lists archived reports, newest first.
func (s *Service) Recent(ctx context.Context, limit int64) ([]models.AnalysisReport, error) {
	if s.archive == nil {
		return []models.AnalysisReport{}, nil
	}
	return s.archive.ListRecentReports(ctx, limit)
}
