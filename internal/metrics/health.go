package metrics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kenneldesk/kenneldesk/internal/domain/models"
)

const (
	baseHealthScore    = 80
	unknownHealthScore = 70 // no events at all: unknown, not healthy

	recentEventWindowDays = 90
	vaccinationBonus      = 5
	vaccinationBonusCap   = 20
	treatmentPenalty      = 10
	treatmentPenaltyCap   = 30

	careLookaheadDays = 30
)

// Core vaccine synonym lists. These are best-effort substring classifiers
// maintained as configuration, not a closed enumeration; the Chinese entries
// mirror how the clinic spreadsheets label vaccines.
var (
	rabiesSynonyms     = []string{"rabies", "狂犬"}
	dhppComboSynonyms  = []string{"dhpp", "combo", "distemper", "parvo", "犬瘟", "细小", "四联", "五联"}
	bordetellaSynonyms = []string{"bordetella", "kennel cough", "支气管"}
)

// HealthScore derives a synthetic 0-100 index from recent health events.
// Vaccinations within the window raise the base score, treatments lower it;
// both effects are capped. An animal with no events at all scores 70,
// distinguishable from a computed 80.
func HealthScore(events []models.HealthEvent, now time.Time) int {
	if len(events) == 0 {
		return unknownHealthScore
	}

	cutoff := now.AddDate(0, 0, -recentEventWindowDays)
	var bonus, penalty int
	for _, event := range events {
		if event.Date.Before(cutoff) {
			continue
		}
		switch event.RecordType {
		case models.HealthRecordVaccination:
			bonus += vaccinationBonus
		case models.HealthRecordTreatment:
			penalty += treatmentPenalty
		}
	}
	if bonus > vaccinationBonusCap {
		bonus = vaccinationBonusCap
	}
	if penalty > treatmentPenaltyCap {
		penalty = treatmentPenaltyCap
	}

	score := baseHealthScore + bonus - penalty
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// VaccinationStatus classifies vaccination records into the three core slots
// by synonym matching; everything unmatched lands in OptionalVaccines. A slot
// is current only while its next due date is strictly in the future, due when
// the recorded date has passed, and overdue when no record exists at all.
func VaccinationStatus(records []models.VaccinationRecord, now time.Time) models.VaccinationStatus {
	status := models.VaccinationStatus{
		Rabies:           models.VaccineSlot{Status: models.VaccineOverdue},
		DHPPCombo:        models.VaccineSlot{Status: models.VaccineOverdue},
		Bordetella:       models.VaccineSlot{Status: models.VaccineOverdue},
		OptionalVaccines: []models.VaccinationRecord{},
	}

	for _, record := range records {
		switch {
		case matchesAny(record.VaccineType, rabiesSynonyms):
			applyVaccineRecord(&status.Rabies, record, now)
		case matchesAny(record.VaccineType, dhppComboSynonyms):
			applyVaccineRecord(&status.DHPPCombo, record, now)
		case matchesAny(record.VaccineType, bordetellaSynonyms):
			applyVaccineRecord(&status.Bordetella, record, now)
		default:
			status.OptionalVaccines = append(status.OptionalVaccines, record)
		}
	}

	return status
}

func applyVaccineRecord(slot *models.VaccineSlot, record models.VaccinationRecord, now time.Time) {
	if slot.LastDate != nil && !record.Date.After(*slot.LastDate) {
		return
	}
	last := record.Date
	next := record.NextDue
	slot.LastDate = &last
	slot.NextDue = &next
	if next.After(now) {
		slot.Status = models.VaccineCurrent
	} else {
		slot.Status = models.VaccineDue
	}
}

func matchesAny(name string, synonyms []string) bool {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, synonym := range synonyms {
		if strings.Contains(normalized, synonym) {
			return true
		}
	}
	return false
}

// UpcomingCare lists vaccinations falling due within the next thirty days,
// urgent when already past due, plus an urgent checkup entry for animals
// scoring under 70. The result is sorted ascending by due date.
func UpcomingCare(records []models.VaccinationRecord, healthScore int, now time.Time) []models.CareTask {
	horizon := now.AddDate(0, 0, careLookaheadDays)

	tasks := make([]models.CareTask, 0, len(records))
	for _, record := range records {
		if record.NextDue.After(horizon) {
			continue
		}
		priority := models.PriorityImportant
		if !record.NextDue.After(now) {
			priority = models.PriorityUrgent
		}
		tasks = append(tasks, models.CareTask{
			TaskType:    "vaccination",
			Description: fmt.Sprintf("%s booster due", record.VaccineType),
			DueDate:     record.NextDue,
			Priority:    priority,
		})
	}

	if healthScore < unknownHealthScore {
		tasks = append(tasks, models.CareTask{
			TaskType:    "checkup",
			Description: "general health checkup recommended",
			DueDate:     now,
			Priority:    models.PriorityUrgent,
		})
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].DueDate.Before(tasks[j].DueDate)
	})
	return tasks
}
