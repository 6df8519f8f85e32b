package analysis

import (
	"encoding/json"
	"fmt"

	"github.com/kenneldesk/kenneldesk/internal/domain/models"
)

// Role personas and requested dimensions are deterministic string templates.
// The snapshot data is embedded as JSON the way the spreadsheet rows were
// shown to the model in earlier revisions; the templates carry no logic.

const financialPersonaTemplate = `You are a veteran financial advisor for small dog-breeding businesses.

Business summary (JSON):
%s

Per-animal and per-litter financial analysis (JSON):
%s

Write a financial report covering these dimensions:
1. Overall profitability and cash position.
2. Animals with the strongest and weakest return on investment.
3. Expense structure: which categories dominate and whether they look healthy.
4. Litter economics: cost per puppy and average sale price trends.
5. Three concrete recommendations to improve margin next quarter.

Write in clear prose under 600 words. Do not invent numbers that are not in the data.`

const breedingPersonaTemplate = `You are an experienced canine reproduction consultant.

Business summary (JSON):
%s

Breeding analysis (JSON):
%s

Write a breeding program report covering these dimensions:
1. Current pregnancies: stage, expected whelping dates, and preparations needed.
2. Which females and studs are available for the next breeding cycle.
3. Historical litter outcomes and what they suggest about pairings.
4. Animals aging out of the program and succession planning.
5. Three concrete recommendations for the next two heat cycles.

Write in clear prose under 600 words. Do not invent records that are not in the data.`

const healthPersonaTemplate = `You are a preventive-care veterinarian advising a breeding kennel.

Business summary (JSON):
%s

Health analysis (JSON):
%s

Write a kennel health report covering these dimensions:
1. Animals with low health scores and likely causes from their recent events.
2. Core vaccination coverage: who is current, due, or overdue.
3. Upcoming care tasks ranked by urgency.
4. Health risks relevant to pregnant and nursing females.
5. Three concrete preventive-care recommendations.

Write in clear prose under 600 words. Do not invent clinical findings that are not in the data.`

// buildPrompt renders the deterministic role prompt for one snapshot.
func buildPrompt(role models.ExpertRole, data *models.AggregateResult) string {
	summaryJSON := mustJSON(data.Summary)

	switch role {
	case models.RoleFinancial:
		return fmt.Sprintf(financialPersonaTemplate, summaryJSON, mustJSON(data.Financial))
	case models.RoleBreeding:
		return fmt.Sprintf(breedingPersonaTemplate, summaryJSON, mustJSON(data.Breeding))
	case models.RoleHealth:
		return fmt.Sprintf(healthPersonaTemplate, summaryJSON, mustJSON(data.Health))
	default:
		return ""
	}
}

func mustJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
