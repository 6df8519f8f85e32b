package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kenneldesk/kenneldesk/internal/domain/models"
)

// fakeClient scripts per-role outcomes, identifying the role by its persona
// line in the prompt.
type fakeClient struct {
	failures map[models.ExpertRole]int // fail the first N calls per role
	calls    map[models.ExpertRole]int
}

func newFakeClient(failures map[models.ExpertRole]int) *fakeClient {
	return &fakeClient{
		failures: failures,
		calls:    make(map[models.ExpertRole]int),
	}
}

func roleFromPrompt(prompt string) models.ExpertRole {
	switch {
	case strings.Contains(prompt, "financial advisor"):
		return models.RoleFinancial
	case strings.Contains(prompt, "reproduction consultant"):
		return models.RoleBreeding
	default:
		return models.RoleHealth
	}
}

func (f *fakeClient) Complete(ctx context.Context, prompt string) (string, error) {
	role := roleFromPrompt(prompt)
	f.calls[role]++
	if f.calls[role] <= f.failures[role] {
		return "", errors.New("service unavailable")
	}
	return string(role) + " narrative line 1\nline 2\nline 3", nil
}

func newTestOrchestrator(client *fakeClient) (*Orchestrator, *[]time.Duration) {
	o := NewOrchestrator(client, zap.NewNop())
	sleeps := &[]time.Duration{}
	o.sleep = func(d time.Duration) { *sleeps = append(*sleeps, d) }
	return o, sleeps
}

func TestGenerateReportAllRolesSucceed(t *testing.T) {
	client := newFakeClient(nil)
	o, _ := newTestOrchestrator(client)

	result, err := o.GenerateReport(context.Background(), &models.AggregateResult{}, nil)
	require.NoError(t, err)
	assert.Len(t, result.Analyses, 3, "empty role list defaults to all three")

	assert.Contains(t, result.Combined, "## Financial Outlook")
	assert.Contains(t, result.Combined, "## Breeding Program")
	assert.Contains(t, result.Combined, "## Kennel Health")
	assert.Contains(t, result.Combined, "## Priority Actions")
}

func TestGenerateReportSingleRoleAllAttemptsFail(t *testing.T) {
	client := newFakeClient(map[models.ExpertRole]int{models.RoleFinancial: maxCallAttempts})
	o, sleeps := newTestOrchestrator(client)

	_, err := o.GenerateReport(context.Background(), &models.AggregateResult{}, []models.ExpertRole{models.RoleFinancial})
	require.ErrorIs(t, err, ErrAllRolesFailed)
	assert.Equal(t, maxCallAttempts, client.calls[models.RoleFinancial])
	assert.Equal(t, []time.Duration{
		1000 * time.Millisecond,
		2000 * time.Millisecond,
		4000 * time.Millisecond,
		8000 * time.Millisecond,
	}, *sleeps)
}

func TestGenerateReportRetryThenSuccess(t *testing.T) {
	client := newFakeClient(map[models.ExpertRole]int{models.RoleFinancial: maxCallAttempts - 1})
	o, _ := newTestOrchestrator(client)

	result, err := o.GenerateReport(context.Background(), &models.AggregateResult{}, []models.ExpertRole{models.RoleFinancial})
	require.NoError(t, err)
	assert.Equal(t, maxCallAttempts, client.calls[models.RoleFinancial])
	assert.Contains(t, result.Analyses[models.RoleFinancial], "financial narrative")
	assert.Empty(t, result.Combined, "a single requested role never produces a combined narrative")
}

func TestGenerateReportPartialSuccessOmitsFailedRole(t *testing.T) {
	client := newFakeClient(map[models.ExpertRole]int{models.RoleFinancial: maxCallAttempts})
	o, _ := newTestOrchestrator(client)

	result, err := o.GenerateReport(context.Background(), &models.AggregateResult{}, models.AllRoles())
	require.NoError(t, err, "sibling role failures do not fail the request")

	assert.NotContains(t, result.Analyses, models.RoleFinancial)
	assert.Contains(t, result.Analyses, models.RoleBreeding)
	assert.Contains(t, result.Analyses, models.RoleHealth)

	assert.NotContains(t, result.Combined, "## Financial Outlook")
	assert.Contains(t, result.Combined, "## Breeding Program")
	assert.Contains(t, result.Combined, "## Kennel Health")
}

func TestGenerateReportSingleSurvivorSkipsCombined(t *testing.T) {
	client := newFakeClient(map[models.ExpertRole]int{
		models.RoleFinancial: maxCallAttempts,
		models.RoleBreeding:  maxCallAttempts,
	})
	o, _ := newTestOrchestrator(client)

	result, err := o.GenerateReport(context.Background(), &models.AggregateResult{}, models.AllRoles())
	require.NoError(t, err)
	assert.Len(t, result.Analyses, 1)
	assert.Empty(t, result.Combined, "combined narrative needs at least two sections")
}

func TestBackoffDelay(t *testing.T) {
	expected := []time.Duration{
		1000 * time.Millisecond,
		2000 * time.Millisecond,
		4000 * time.Millisecond,
		8000 * time.Millisecond,
		10000 * time.Millisecond,
		10000 * time.Millisecond,
	}
	for attempt, want := range expected {
		assert.Equal(t, want, backoffDelay(attempt), "attempt %d", attempt)
	}
}

func TestFirstLines(t *testing.T) {
	long := strings.Repeat("line\n", 20)
	assert.Len(t, strings.Split(firstLines(long, 10), "\n"), 10)

	short := "one\ntwo"
	assert.Equal(t, short, firstLines(short, 10))
}
