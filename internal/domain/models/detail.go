package models

import "time"

// BreedingRecordKind tags entries in a dog's breeding sub-collection.
type BreedingRecordKind string

const (
	BreedingRecordMating BreedingRecordKind = "mating"
	BreedingRecordBirth  BreedingRecordKind = "birth"
)

// FinancialRecordKind tags entries in a dog's financial sub-collection.
type FinancialRecordKind string

const (
	FinancialRecordPurchase FinancialRecordKind = "purchase"
	FinancialRecordSale     FinancialRecordKind = "sale"
	FinancialRecordExpense  FinancialRecordKind = "expense"
)

// VaccinationRecord is a single administered vaccine with its projected due date.
type VaccinationRecord struct {
	VaccineType  string    `json:"vaccine_type"`
	Date         time.Time `json:"date"`
	NextDue      time.Time `json:"next_due"`
	Veterinarian string    `json:"veterinarian,omitempty"`
	Cost         float64   `json:"cost,omitempty"`
}

// BreedingRecord is a single mating or birth entry attributed to one dog.
type BreedingRecord struct {
	Kind         BreedingRecordKind `json:"kind"`
	Date         time.Time          `json:"date"`
	PartnerID    string             `json:"partner_id"`
	PuppiesCount int                `json:"puppies_count"`
}

// FinancialRecord is a single money movement attributed to one dog.
type FinancialRecord struct {
	Kind     FinancialRecordKind `json:"kind"`
	Date     time.Time           `json:"date"`
	Amount   float64             `json:"amount"`
	Category string              `json:"category,omitempty"`
}

// DogDetail is the per-animal computed view assembled by the aggregator.
// Sub-collections preserve the repository's original row order filtered per
// animal. The financial records carry at most one purchase and one sale entry
// (the first of each found) but any number of expenses.
type DogDetail struct {
	Dog
	AgeMonths       int        `json:"age_months"`
	HealthScore     int        `json:"health_score"`
	LastHealthCheck *time.Time `json:"last_health_check,omitempty"`

	VaccinationRecords []VaccinationRecord `json:"vaccination_records,omitempty"`
	BreedingRecords    []BreedingRecord    `json:"breeding_records,omitempty"`
	FinancialRecords   []FinancialRecord   `json:"financial_records,omitempty"`
}
