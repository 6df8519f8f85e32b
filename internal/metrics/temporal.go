// Package metrics derives higher-order business facts from raw kennel records:
// temporal estimates, per-animal profitability, health scoring and breeding
// classification. Everything here is a pure function of its inputs.
package metrics

import (
	"strings"
	"time"

	"github.com/kenneldesk/kenneldesk/internal/domain/models"
)

// Biological constants. These are approximations baked into the model, named
// here so they can be tuned per breed later without touching the consumers.
const (
	// DaysPerMonth is the average Gregorian month length used for age math.
	DaysPerMonth = 30.44

	// GestationDays is the canine gestation period assumed for expected
	// birth dates.
	GestationDays = 63

	// PregnancyStaleDays is the cutoff after which an open mating record is
	// no longer considered an active pregnancy.
	PregnancyStaleDays = 70

	// HeatCycleMonths is the assumed interval between heat cycles.
	HeatCycleMonths = 6

	// MinHeatAgeMonths is the age below which heat estimation is undefined.
	MinHeatAgeMonths = 6

	defaultVaccineIntervalDays = 365
)

// vaccineIntervals lists the recognized vaccine types and their boost
// intervals in days. Unrecognized types fall back to the 365 day default;
// that fallback is deliberate policy, not a missing entry.
var vaccineIntervals = map[string]int{
	"rabies":        365,
	"dhpp":          365,
	"bordetella":    365,
	"leptospirosis": 365,
	"lyme":          365,
	"influenza":     365,
}

// AgeInMonths returns the floor of the elapsed age in average months.
func AgeInMonths(birthDate, now time.Time) int {
	days := now.Sub(birthDate).Hours() / 24
	if days < 0 {
		return 0
	}
	return int(days / DaysPerMonth)
}

// GestationDaysSince returns whole days elapsed since mating, clamped at zero
// for mating dates in the future.
func GestationDaysSince(matingDate, now time.Time) int {
	days := int(now.Sub(matingDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// StageForDays buckets elapsed gestation days into a coarse stage.
func StageForDays(days int) models.GestationStage {
	switch {
	case days < 21:
		return models.StageEarly
	case days < 42:
		return models.StageMid
	case days < GestationDays:
		return models.StageLate
	default:
		return models.StageImminent
	}
}

// NextVaccinationDue projects the next due date for a vaccine administration.
func NextVaccinationDue(vaccineType string, lastDate time.Time) time.Time {
	interval := defaultVaccineIntervalDays
	if v, ok := vaccineIntervals[strings.ToLower(strings.TrimSpace(vaccineType))]; ok {
		interval = v
	}
	return lastDate.AddDate(0, 0, interval)
}

// EstimateNextHeatCycle projects the next heat date from the last observed
// one. Returns nil for animals under six months or when no last heat date is
// known. The six month interval is an approximation, not a veterinary
// guarantee.
func EstimateNextHeatCycle(lastHeatDate *time.Time, ageMonths int) *time.Time {
	if lastHeatDate == nil || ageMonths < MinHeatAgeMonths {
		return nil
	}
	next := lastHeatDate.Add(time.Duration(HeatCycleMonths*DaysPerMonth*24*float64(time.Hour)))
	return &next
}
