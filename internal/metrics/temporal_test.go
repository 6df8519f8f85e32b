package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenneldesk/kenneldesk/internal/domain/models"
)

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func TestAgeInMonths(t *testing.T) {
	assert.Equal(t, 2, AgeInMonths(testNow.AddDate(0, 0, -61), testNow))
	assert.Equal(t, 0, AgeInMonths(testNow.AddDate(0, 0, -29), testNow))
	assert.Equal(t, 0, AgeInMonths(testNow.AddDate(0, 0, 10), testNow), "future birth date clamps to zero")
}

func TestGestationDaysSince(t *testing.T) {
	assert.Equal(t, 10, GestationDaysSince(testNow.AddDate(0, 0, -10), testNow))
	assert.Equal(t, 0, GestationDaysSince(testNow.AddDate(0, 0, 5), testNow), "future mating date clamps to zero")
}

func TestStageForDays(t *testing.T) {
	assert.Equal(t, models.StageEarly, StageForDays(0))
	assert.Equal(t, models.StageEarly, StageForDays(20))
	assert.Equal(t, models.StageMid, StageForDays(21))
	assert.Equal(t, models.StageMid, StageForDays(41))
	assert.Equal(t, models.StageLate, StageForDays(42))
	assert.Equal(t, models.StageLate, StageForDays(62))
	assert.Equal(t, models.StageImminent, StageForDays(63))
	assert.Equal(t, models.StageImminent, StageForDays(70))
}

func TestNextVaccinationDue(t *testing.T) {
	last := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, last.AddDate(0, 0, 365), NextVaccinationDue("rabies", last))
	assert.Equal(t, last.AddDate(0, 0, 365), NextVaccinationDue("  Bordetella ", last))
	// Unrecognized types fall back to the 365 day default by policy.
	assert.Equal(t, last.AddDate(0, 0, 365), NextVaccinationDue("experimental-vax", last))
}

func TestEstimateNextHeatCycle(t *testing.T) {
	last := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, EstimateNextHeatCycle(nil, 24))
	assert.Nil(t, EstimateNextHeatCycle(&last, 5), "too young for heat estimation")

	next := EstimateNextHeatCycle(&last, 24)
	require.NotNil(t, next)
	expected := last.Add(time.Duration(HeatCycleMonths*DaysPerMonth*24*float64(time.Hour)))
	assert.Equal(t, expected, *next)
}
