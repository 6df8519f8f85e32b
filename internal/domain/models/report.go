package models

import "time"

// ExpertRole is one of the narrative-generation lenses applied to the same
// aggregated snapshot.
type ExpertRole string

const (
	RoleFinancial ExpertRole = "financial"
	RoleBreeding  ExpertRole = "breeding"
	RoleHealth    ExpertRole = "health"
)

// AllRoles returns every supported expert role in its canonical order.
func AllRoles() []ExpertRole {
	return []ExpertRole{RoleFinancial, RoleBreeding, RoleHealth}
}

// ParseRole validates a role string coming from the API surface.
func ParseRole(s string) (ExpertRole, bool) {
	switch ExpertRole(s) {
	case RoleFinancial, RoleBreeding, RoleHealth:
		return ExpertRole(s), true
	}
	return "", false
}

// ExpertAnalysisResult maps each successful role to its narrative. Roles that
// exhausted their retries are simply absent from Analyses; callers must check
// which roles are present.
type ExpertAnalysisResult struct {
	Analyses    map[ExpertRole]string `json:"expert_analyses"`
	Combined    string                `json:"combined_narrative,omitempty"`
	Summary     AggregateSummary      `json:"summary"`
	GeneratedAt time.Time             `json:"generated_at"`
}

// ReportTrigger records what initiated a report run.
type ReportTrigger string

const (
	TriggerAPI      ReportTrigger = "api"
	TriggerSchedule ReportTrigger = "schedule"
)

// AnalysisReport is the archived form of one report run, stored in MongoDB.
type AnalysisReport struct {
	ID          string            `bson:"_id" json:"id"`
	GeneratedAt time.Time         `bson:"generated_at" json:"generated_at"`
	Trigger     ReportTrigger     `bson:"trigger" json:"trigger"`
	Summary     AggregateSummary  `bson:"summary" json:"summary"`
	Analyses    map[string]string `bson:"analyses" json:"analyses"`
	Combined    string            `bson:"combined,omitempty" json:"combined,omitempty"`
	CreatedAt   time.Time         `bson:"created_at" json:"created_at"`
}
