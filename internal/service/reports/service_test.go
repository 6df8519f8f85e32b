package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kenneldesk/kenneldesk/internal/domain/models"
	"github.com/kenneldesk/kenneldesk/internal/service/aggregator"
	"github.com/kenneldesk/kenneldesk/internal/service/analysis"
)

type stubRepository struct {
	dogs []models.Dog
}

func (s *stubRepository) ListDogs(ctx context.Context) ([]models.Dog, error) { return s.dogs, nil }
func (s *stubRepository) ListPurchases(ctx context.Context) ([]models.PurchaseRecord, error) {
	return nil, nil
}
func (s *stubRepository) ListSales(ctx context.Context) ([]models.SaleRecord, error) {
	return nil, nil
}
func (s *stubRepository) ListExpenses(ctx context.Context) ([]models.ExpenseRecord, error) {
	return nil, nil
}
func (s *stubRepository) ListHealthEvents(ctx context.Context) ([]models.HealthEvent, error) {
	return nil, nil
}
func (s *stubRepository) ListLitters(ctx context.Context) ([]models.LitterEvent, error) {
	return nil, nil
}

type stubLLM struct{}

func (stubLLM) Complete(ctx context.Context, prompt string) (string, error) {
	return "a calm, data-driven narrative", nil
}

type recordingArchive struct {
	saved []models.AnalysisReport
}

func (r *recordingArchive) SaveReport(ctx context.Context, report models.AnalysisReport) error {
	r.saved = append(r.saved, report)
	return nil
}

func (r *recordingArchive) ListRecentReports(ctx context.Context, limit int64) ([]models.AnalysisReport, error) {
	return r.saved, nil
}

func TestGenerateArchivesReport(t *testing.T) {
	repo := &stubRepository{dogs: []models.Dog{
		{ID: "d1", Name: "Nori", Breed: "Shiba Inu", Gender: models.GenderFemale, BirthDate: time.Now().AddDate(-2, 0, 0)},
	}}
	archive := &recordingArchive{}

	svc := NewService(
		aggregator.NewService(repo, zap.NewNop()),
		analysis.NewOrchestrator(stubLLM{}, zap.NewNop()),
		archive,
		zap.NewNop(),
	)

	report, result, err := svc.Generate(context.Background(), nil, models.TriggerAPI)
	require.NoError(t, err)

	assert.Len(t, result.Analyses, 3)
	assert.NotEmpty(t, result.Combined)
	assert.Equal(t, 1, result.Summary.TotalDogs)

	require.Len(t, archive.saved, 1)
	assert.Equal(t, report.ID, archive.saved[0].ID)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, models.TriggerAPI, archive.saved[0].Trigger)
	assert.Len(t, archive.saved[0].Analyses, 3)
}

func TestGenerateWithoutArchive(t *testing.T) {
	svc := NewService(
		aggregator.NewService(&stubRepository{}, zap.NewNop()),
		analysis.NewOrchestrator(stubLLM{}, zap.NewNop()),
		nil,
		zap.NewNop(),
	)

	_, result, err := svc.Generate(context.Background(), []models.ExpertRole{models.RoleHealth}, models.TriggerSchedule)
	require.NoError(t, err)
	assert.Len(t, result.Analyses, 1)

	recent, err := svc.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}
