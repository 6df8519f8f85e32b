package models

import "time"

// Gender identifies the sex of an animal.
type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
)

// Health event record types recognized at the repository boundary.
const (
	HealthRecordVaccination = "vaccination"
	HealthRecordTreatment   = "treatment"
	HealthRecordCheckup     = "checkup"
)

// Dog is the raw animal row as stored in the spreadsheet.
type Dog struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Breed     string    `json:"breed"`
	Gender    Gender    `json:"gender"`
	BirthDate time.Time `json:"birth_date"`
	Status    string    `json:"status,omitempty"`
	WeightKg  float64   `json:"weight_kg,omitempty"`
}

// PurchaseRecord captures the acquisition of an animal.
type PurchaseRecord struct {
	DogID  string    `json:"dog_id"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

// SaleRecord captures the sale of an animal.
type SaleRecord struct {
	DogID  string    `json:"dog_id"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

// ExpenseRecord captures a per-animal operating expense.
type ExpenseRecord struct {
	DogID       string    `json:"dog_id"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
}

// HealthEvent captures a vaccination, treatment or checkup entry.
type HealthEvent struct {
	DogID         string    `json:"dog_id"`
	RecordType    string    `json:"record_type"`
	TreatmentType string    `json:"treatment_type,omitempty"`
	Description   string    `json:"description,omitempty"`
	Date          time.Time `json:"date"`
	Veterinarian  string    `json:"veterinarian,omitempty"`
	Cost          float64   `json:"cost,omitempty"`
}

// LitterEvent is a combined mating/pregnancy/birth record linking one female
// and one male animal. BirthDate is nil while the pregnancy is open.
type LitterEvent struct {
	MotherID          string     `json:"mother_id"`
	FatherID          string     `json:"father_id"`
	MatingDate        time.Time  `json:"mating_date"`
	BirthDate         *time.Time `json:"birth_date,omitempty"`
	ExpectedBirthDate time.Time  `json:"expected_birth_date"`
	PuppiesCount      int        `json:"puppies_count"`
	Notes             string     `json:"notes,omitempty"`
}
