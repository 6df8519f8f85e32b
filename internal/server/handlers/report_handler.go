package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kenneldesk/kenneldesk/internal/domain/models"
	"github.com/kenneldesk/kenneldesk/internal/service/analysis"
)

const defaultReportListLimit = 20

// ReportService describes the operations the HTTP layer can perform.
type ReportService interface {
	Generate(ctx context.Context, roles []models.ExpertRole, trigger models.ReportTrigger) (*models.AnalysisReport, *models.ExpertAnalysisResult, error)
	Snapshot(ctx context.Context) (*models.AggregateResult, error)
	Recent(ctx context.Context, limit int64) ([]models.AnalysisReport, error)
}

// ReportHandler exposes report generation and snapshot reads over HTTP.
type ReportHandler struct {
	svc    ReportService
	logger *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(svc ReportService, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

type generateRequest struct {
	Roles []string `json:"roles"`
}

// Generate runs aggregation plus the requested expert roles and returns the
// narrative result. An empty role list requests all three roles.
func (h *ReportHandler) Generate(c *gin.Context) {
	var req generateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn("invalid report request payload", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	roles := make([]models.ExpertRole, 0, len(req.Roles))
	for _, raw := range req.Roles {
		role, ok := models.ParseRole(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role: " + raw})
			return
		}
		roles = append(roles, role)
	}

	_, result, err := h.svc.Generate(c.Request.Context(), roles, models.TriggerAPI)
	if err != nil {
		if errors.Is(err, analysis.ErrAllRolesFailed) {
			h.logger.Error("all expert roles failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "analysis service unavailable"})
			return
		}
		h.logger.Error("report generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Snapshot returns the aggregated business model without any LLM calls.
func (h *ReportHandler) Snapshot(c *gin.Context) {
	result, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		h.logger.Error("snapshot aggregation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate snapshot"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// List returns recently archived reports, newest first.
func (h *ReportHandler) List(c *gin.Context) {
	limit := int64(defaultReportListLimit)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	reports, err := h.svc.Recent(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed listing reports", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}
