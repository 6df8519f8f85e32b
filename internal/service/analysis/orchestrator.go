// Package analysis turns an aggregated business snapshot into narrative
// expert reports by driving role-specific calls against the Anthropic client.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kenneldesk/kenneldesk/internal/domain/models"
	"github.com/kenneldesk/kenneldesk/pkg/clients/anthropic"
)

const (
	maxCallAttempts   = 5
	attemptTimeout    = 60 * time.Second
	backoffBaseMillis = 1000
	backoffCapMillis  = 10000

	combinedSectionLines = 10
)

// ErrAllRolesFailed signals that every requested expert role exhausted its
// retries. Single-role failures are recorded as absent narratives instead.
var ErrAllRolesFailed = errors.New("all requested expert roles failed")

// Orchestrator runs the per-role prompt/call/retry sequence. Each role's call
// is independent: one role failing never cancels its siblings.
type Orchestrator struct {
	client         anthropic.Client
	logger         *zap.Logger
	sleep          func(time.Duration)
	attemptTimeout time.Duration
}

// NewOrchestrator wires a report orchestrator.
func NewOrchestrator(client anthropic.Client, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		client:         client,
		logger:         logger,
		sleep:          time.Sleep,
		attemptTimeout: attemptTimeout,
	}
}

// GenerateReport produces narratives for the requested roles (all three when
// roles is empty) against one aggregated snapshot. Partial success is a valid
// terminal state; the error is non-nil only when every requested role failed.
func (o *Orchestrator) GenerateReport(ctx context.Context, data *models.AggregateResult, roles []models.ExpertRole) (*models.ExpertAnalysisResult, error) {
	if len(roles) == 0 {
		roles = models.AllRoles()
	}

	result := &models.ExpertAnalysisResult{
		Analyses:    make(map[models.ExpertRole]string, len(roles)),
		Summary:     data.Summary,
		GeneratedAt: data.GeneratedAt,
	}

	var failures []string
	for _, role := range roles {
		narrative, err := o.callWithRetry(ctx, role, buildPrompt(role, data))
		if err != nil {
			o.logger.Error("expert role failed", zap.String("role", string(role)), zap.Error(err))
			failures = append(failures, fmt.Sprintf("%s: %v", role, err))
			continue
		}
		result.Analyses[role] = narrative
	}

	if len(result.Analyses) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrAllRolesFailed, strings.Join(failures, "; "))
	}

	if coversAllRoles(roles) {
		result.Combined = combineNarratives(result.Analyses)
	}

	return result, nil
}

// callWithRetry performs up to five single-flight attempts for one role, each
// bounded by its own timeout, waiting min(1000*2^n, 10000) ms between
// attempts. A malformed response counts against the attempt budget exactly
// like a network failure.
func (o *Orchestrator) callWithRetry(ctx context.Context, role models.ExpertRole, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < maxCallAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, o.attemptTimeout)
		narrative, err := o.client.Complete(attemptCtx, prompt)
		cancel()
		if err == nil {
			return narrative, nil
		}
		lastErr = err
		o.logger.Warn("llm attempt failed",
			zap.String("role", string(role)),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
		if attempt < maxCallAttempts-1 {
			o.sleep(backoffDelay(attempt))
		}
	}
	return "", fmt.Errorf("role %s exhausted %d attempts: %w", role, maxCallAttempts, lastErr)
}

func backoffDelay(attempt int) time.Duration {
	millis := backoffBaseMillis << attempt
	if millis > backoffCapMillis {
		millis = backoffCapMillis
	}
	return time.Duration(millis) * time.Millisecond
}

func coversAllRoles(roles []models.ExpertRole) bool {
	if len(roles) < len(models.AllRoles()) {
		return false
	}
	seen := make(map[models.ExpertRole]bool, len(roles))
	for _, role := range roles {
		seen[role] = true
	}
	for _, role := range models.AllRoles() {
		if !seen[role] {
			return false
		}
	}
	return true
}

// combineNarratives synthesizes the combined report from the successful
// per-role narratives: the leading lines of each section under fixed headers
// plus a static action plan. Failed roles are omitted without comment. Returns
// empty unless at least two narratives succeeded.
func combineNarratives(analyses map[models.ExpertRole]string) string {
	if len(analyses) < 2 {
		return ""
	}

	sections := []struct {
		role   models.ExpertRole
		header string
	}{
		{models.RoleFinancial, "## Financial Outlook"},
		{models.RoleBreeding, "## Breeding Program"},
		{models.RoleHealth, "## Kennel Health"},
	}

	var b strings.Builder
	b.WriteString("# Kennel Business Review\n")
	for _, section := range sections {
		narrative, ok := analyses[section.role]
		if !ok {
			continue
		}
		b.WriteString("\n")
		b.WriteString(section.header)
		b.WriteString("\n")
		b.WriteString(firstLines(narrative, combinedSectionLines))
		b.WriteString("\n")
	}

	b.WriteString("\n## Priority Actions\n")
	b.WriteString("1. Settle any urgent care items before scheduling new matings.\n")
	b.WriteString("2. Review animals with negative ROI for sale or retirement.\n")
	b.WriteString("3. Confirm expected whelping dates and prepare whelping supplies.\n")
	b.WriteString("4. Bring overdue core vaccinations current within two weeks.\n")

	return b.String()
}

func firstLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) <= n {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[:n], "\n")
}
