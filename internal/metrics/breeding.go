package metrics

import (
	"time"

	"github.com/kenneldesk/kenneldesk/internal/domain/models"
)

// Breeding age thresholds in months.
const (
	femaleMinBreedingAge = 6
	femaleMaxBreedingAge = 96
	maleMinBreedingAge   = 8
	maleMaxBreedingAge   = 96
)

// ClassifyFemale derives a female's breeding status. An open pregnancy takes
// precedence over the age-based classification.
func ClassifyFemale(ageMonths int, pregnant bool) models.BreedingStatus {
	if pregnant {
		return models.BreedingPregnant
	}
	switch {
	case ageMonths < femaleMinBreedingAge:
		return models.BreedingTooYoung
	case ageMonths > femaleMaxBreedingAge:
		return models.BreedingTooOld
	default:
		return models.BreedingAvailable
	}
}

// ClassifyMale derives a male's breeding status.
func ClassifyMale(ageMonths int) models.BreedingStatus {
	switch {
	case ageMonths < maleMinBreedingAge:
		return models.BreedingTooYoung
	case ageMonths > maleMaxBreedingAge:
		return models.BreedingRetired
	default:
		return models.BreedingAvailable
	}
}

// CurrentPregnancy selects the most recent litter record without a recorded
// birth and derives its pregnancy detail. Returns nil when no open record
// exists or when the open record is older than the staleness cutoff, in which
// case the pregnancy is treated as lapsed rather than active.
func CurrentPregnancy(litters []models.LitterEvent, now time.Time) *models.PregnancyDetail {
	var open *models.LitterEvent
	for i := range litters {
		if litters[i].BirthDate != nil {
			continue
		}
		if open == nil || litters[i].MatingDate.After(open.MatingDate) {
			open = &litters[i]
		}
	}
	if open == nil {
		return nil
	}

	days := GestationDaysSince(open.MatingDate, now)
	if days > PregnancyStaleDays {
		return nil
	}

	return &models.PregnancyDetail{
		MatingDate:    open.MatingDate,
		ExpectedBirth: open.MatingDate.AddDate(0, 0, GestationDays),
		CurrentStage:  StageForDays(days),
		DaysPregnant:  days,
		PartnerID:     open.FatherID,
	}
}

// BreedingHistory maps delivered litters to history entries. Input order is
// preserved; no recency sort is applied.
func BreedingHistory(litters []models.LitterEvent) []models.BreedingHistoryEntry {
	history := make([]models.BreedingHistoryEntry, 0, len(litters))
	for _, litter := range litters {
		if litter.BirthDate == nil {
			continue
		}
		outcome := models.OutcomeFailure
		if litter.PuppiesCount > 0 {
			outcome = models.OutcomeSuccess
		}
		history = append(history, models.BreedingHistoryEntry{
			Date:         *litter.BirthDate,
			PartnerID:    litter.FatherID,
			Outcome:      outcome,
			PuppiesCount: litter.PuppiesCount,
		})
	}
	return history
}
