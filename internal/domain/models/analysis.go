package models

import "time"

// BreedingStatus classifies an animal's current breeding availability.
type BreedingStatus string

const (
	BreedingAvailable BreedingStatus = "available"
	BreedingPregnant  BreedingStatus = "pregnant"
	BreedingNursing   BreedingStatus = "nursing"
	BreedingTooYoung  BreedingStatus = "too_young"
	BreedingTooOld    BreedingStatus = "too_old"
	BreedingRetired   BreedingStatus = "retired"
)

// GestationStage is a coarse bucket derived from elapsed days since mating.
type GestationStage string

const (
	StageEarly    GestationStage = "early"
	StageMid      GestationStage = "mid"
	StageLate     GestationStage = "late"
	StageImminent GestationStage = "imminent"
)

// PregnancyDetail describes an open pregnancy derived from the most recent
// litter record without a birth date.
type PregnancyDetail struct {
	MatingDate    time.Time      `json:"mating_date"`
	ExpectedBirth time.Time      `json:"expected_birth"`
	CurrentStage  GestationStage `json:"current_stage"`
	DaysPregnant  int            `json:"days_pregnant"`
	PartnerID     string         `json:"partner_id"`
	PartnerName   string         `json:"partner_name,omitempty"`
}

// BreedingOutcome labels a recorded birth as productive or not.
type BreedingOutcome string

const (
	OutcomeSuccess BreedingOutcome = "success"
	OutcomeFailure BreedingOutcome = "failure"
)

// BreedingHistoryEntry summarizes one recorded birth.
type BreedingHistoryEntry struct {
	Date         time.Time       `json:"date"`
	PartnerID    string          `json:"partner_id"`
	Outcome      BreedingOutcome `json:"outcome"`
	PuppiesCount int             `json:"puppies_count"`
}

// FemaleBreedingInfo is the per-female slice of the breeding analysis.
type FemaleBreedingInfo struct {
	DogID            string                 `json:"dog_id"`
	Name             string                 `json:"name"`
	AgeMonths        int                    `json:"age_months"`
	BreedingStatus   BreedingStatus         `json:"breeding_status"`
	PregnancyDetails *PregnancyDetail       `json:"pregnancy_details,omitempty"`
	NextHeatEstimate *time.Time             `json:"next_heat_estimate,omitempty"`
	History          []BreedingHistoryEntry `json:"history"`
}

// MaleBreedingInfo is the per-male slice of the breeding analysis.
type MaleBreedingInfo struct {
	DogID          string         `json:"dog_id"`
	Name           string         `json:"name"`
	AgeMonths      int            `json:"age_months"`
	BreedingStatus BreedingStatus `json:"breeding_status"`
}

// BreedingAnalysis groups breeding state for the whole kennel.
type BreedingAnalysis struct {
	FemaleDogs []FemaleBreedingInfo `json:"female_dogs"`
	MaleDogs   []MaleBreedingInfo   `json:"male_dogs"`
}

// ExpenseBreakdown buckets expenses into the five tracked categories.
type ExpenseBreakdown struct {
	Food       float64 `json:"food"`
	Healthcare float64 `json:"healthcare"`
	Breeding   float64 `json:"breeding"`
	Grooming   float64 `json:"grooming"`
	Other      float64 `json:"other"`
}

// MonthlyCost is one bucket of the per-animal expense time series.
type MonthlyCost struct {
	Month  string  `json:"month"` // YYYY-MM
	Amount float64 `json:"amount"`
}

// FinancialSummary is the per-animal profitability view.
type FinancialSummary struct {
	DogID                string           `json:"dog_id"`
	Name                 string           `json:"name"`
	PurchasePrice        float64          `json:"purchase_price"`
	SalePrice            float64          `json:"sale_price"`
	EstimatedMarketValue float64          `json:"estimated_market_value"`
	TotalExpenses        float64          `json:"total_expenses"`
	ProfitLoss           float64          `json:"profit_loss"`
	ROIPercent           float64          `json:"roi_percentage"`
	ExpenseBreakdown     ExpenseBreakdown `json:"expense_breakdown"`
	MonthlyCosts         []MonthlyCost    `json:"monthly_costs"`
}

// LitterProfit is the profitability view of one delivered litter.
type LitterProfit struct {
	MotherID         string  `json:"mother_id"`
	FatherID         string  `json:"father_id"`
	PuppiesCount     int     `json:"puppies_count"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalCosts       float64 `json:"total_costs"`
	NetProfit        float64 `json:"net_profit"`
	CostPerPuppy     float64 `json:"cost_per_puppy"`
	AverageSalePrice float64 `json:"average_sale_price"`
}

// FinancialAnalysis groups profitability for the whole kennel.
type FinancialAnalysis struct {
	Dogs          []FinancialSummary `json:"dogs"`
	Litters       []LitterProfit     `json:"litters"`
	TotalRevenue  float64            `json:"total_revenue"`
	TotalExpenses float64            `json:"total_expenses"`
	NetProfit     float64            `json:"net_profit"`
}

// VaccineSlotStatus classifies one core vaccine slot.
type VaccineSlotStatus string

const (
	VaccineCurrent VaccineSlotStatus = "current"
	VaccineDue     VaccineSlotStatus = "due"
	VaccineOverdue VaccineSlotStatus = "overdue"
)

// VaccineSlot tracks the latest administration of one core vaccine.
type VaccineSlot struct {
	LastDate *time.Time        `json:"last_date,omitempty"`
	NextDue  *time.Time        `json:"next_due,omitempty"`
	Status   VaccineSlotStatus `json:"status"`
}

// VaccinationStatus covers the three core vaccines plus anything optional.
type VaccinationStatus struct {
	Rabies           VaccineSlot         `json:"rabies"`
	DHPPCombo        VaccineSlot         `json:"dhpp_combo"`
	Bordetella       VaccineSlot         `json:"bordetella"`
	OptionalVaccines []VaccinationRecord `json:"optional_vaccines"`
}

// CarePriority ranks upcoming care tasks.
type CarePriority string

const (
	PriorityUrgent    CarePriority = "urgent"
	PriorityImportant CarePriority = "important"
)

// CareTask is one upcoming care item for an animal.
type CareTask struct {
	TaskType    string       `json:"task_type"` // vaccination | checkup
	Description string       `json:"description"`
	DueDate     time.Time    `json:"due_date"`
	Priority    CarePriority `json:"priority"`
}

// HealthReport is the per-animal slice of the health analysis.
type HealthReport struct {
	DogID        string            `json:"dog_id"`
	Name         string            `json:"name"`
	HealthScore  int               `json:"health_score"`
	Vaccinations VaccinationStatus `json:"vaccinations"`
	UpcomingCare []CareTask        `json:"upcoming_care"`
}

// HealthAnalysis groups health state for the whole kennel.
type HealthAnalysis struct {
	Dogs []HealthReport `json:"dogs"`
}

// AggregateSummary is the top-level snapshot view, recomputed on every
// aggregation run.
type AggregateSummary struct {
	TotalDogs        int     `json:"total_dogs"`
	FemaleDogs       int     `json:"female_dogs"`
	MaleDogs         int     `json:"male_dogs"`
	BreedingEligible int     `json:"breeding_eligible"`
	PregnantDogs     int     `json:"pregnant_dogs"`
	UrgentCareDogs   int     `json:"urgent_care_dogs"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalExpenses    float64 `json:"total_expenses"`
}

// AggregateResult is the unified output of one aggregation run.
type AggregateResult struct {
	Dogs        []DogDetail       `json:"dogs"`
	Breeding    BreedingAnalysis  `json:"breeding_analysis"`
	Financial   FinancialAnalysis `json:"financial_analysis"`
	Health      HealthAnalysis    `json:"health_analysis"`
	Summary     AggregateSummary  `json:"summary"`
	GeneratedAt time.Time         `json:"generated_at"`
}
