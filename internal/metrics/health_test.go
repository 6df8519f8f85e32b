package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenneldesk/kenneldesk/internal/domain/models"
)

func vaccinationEvent(daysAgo int) models.HealthEvent {
	return models.HealthEvent{RecordType: models.HealthRecordVaccination, Date: testNow.AddDate(0, 0, -daysAgo)}
}

func treatmentEvent(daysAgo int) models.HealthEvent {
	return models.HealthEvent{RecordType: models.HealthRecordTreatment, Date: testNow.AddDate(0, 0, -daysAgo)}
}

func TestHealthScore(t *testing.T) {
	assert.Equal(t, 70, HealthScore(nil, testNow), "no events signals unknown, not healthy")

	fourVaccinations := []models.HealthEvent{
		vaccinationEvent(10), vaccinationEvent(20), vaccinationEvent(30), vaccinationEvent(40),
	}
	assert.Equal(t, 100, HealthScore(fourVaccinations, testNow), "vaccination bonus caps at +20")

	fiveTreatments := []models.HealthEvent{
		treatmentEvent(5), treatmentEvent(15), treatmentEvent(25), treatmentEvent(35), treatmentEvent(45),
	}
	assert.Equal(t, 50, HealthScore(fiveTreatments, testNow), "treatment penalty caps at -30")

	// Events outside the 90 day window exist but do not move the base score.
	assert.Equal(t, 80, HealthScore([]models.HealthEvent{treatmentEvent(120)}, testNow))
}

func TestVaccinationStatus(t *testing.T) {
	records := []models.VaccinationRecord{
		{VaccineType: "Rabies", Date: testNow.AddDate(0, -2, 0), NextDue: testNow.AddDate(0, 10, 0)},
		{VaccineType: "犬瘟细小疫苗", Date: testNow.AddDate(-1, -1, 0), NextDue: testNow.AddDate(0, -1, 0)},
		{VaccineType: "Lyme", Date: testNow.AddDate(0, -3, 0), NextDue: testNow.AddDate(0, 9, 0)},
	}

	status := VaccinationStatus(records, testNow)
	assert.Equal(t, models.VaccineCurrent, status.Rabies.Status)
	assert.Equal(t, models.VaccineDue, status.DHPPCombo.Status, "recorded but past due collapses to due")
	assert.Equal(t, models.VaccineOverdue, status.Bordetella.Status, "empty slot defaults to overdue")
	require.Len(t, status.OptionalVaccines, 1)
	assert.Equal(t, "Lyme", status.OptionalVaccines[0].VaccineType)
}

func TestVaccinationStatusKeepsLatestRecord(t *testing.T) {
	records := []models.VaccinationRecord{
		{VaccineType: "rabies", Date: testNow.AddDate(-2, 0, 0), NextDue: testNow.AddDate(-1, 0, 0)},
		{VaccineType: "rabies booster", Date: testNow.AddDate(0, -1, 0), NextDue: testNow.AddDate(0, 11, 0)},
	}

	status := VaccinationStatus(records, testNow)
	assert.Equal(t, models.VaccineCurrent, status.Rabies.Status)
	require.NotNil(t, status.Rabies.LastDate)
	assert.Equal(t, testNow.AddDate(0, -1, 0), *status.Rabies.LastDate)
}

func TestUpcomingCare(t *testing.T) {
	records := []models.VaccinationRecord{
		{VaccineType: "rabies", NextDue: testNow.AddDate(0, 0, 10)},
		{VaccineType: "dhpp", NextDue: testNow.AddDate(0, 0, -3)},
		{VaccineType: "bordetella", NextDue: testNow.AddDate(0, 0, 45)}, // beyond the horizon
	}

	tasks := UpcomingCare(records, 90, testNow)
	require.Len(t, tasks, 2)
	// Ascending by due date: the overdue dhpp booster first.
	assert.Equal(t, models.PriorityUrgent, tasks[0].Priority)
	assert.Contains(t, tasks[0].Description, "dhpp")
	assert.Equal(t, models.PriorityImportant, tasks[1].Priority)
	assert.Contains(t, tasks[1].Description, "rabies")
}

func TestUpcomingCareLowScoreCheckup(t *testing.T) {
	tasks := UpcomingCare(nil, 60, testNow)
	require.Len(t, tasks, 1)
	assert.Equal(t, "checkup", tasks[0].TaskType)
	assert.Equal(t, models.PriorityUrgent, tasks[0].Priority)

	assert.Empty(t, UpcomingCare(nil, 70, testNow), "score of 70 does not trigger a checkup")
}

func TestUpcomingCareSorted(t *testing.T) {
	records := []models.VaccinationRecord{
		{VaccineType: "rabies", NextDue: testNow.AddDate(0, 0, 20)},
		{VaccineType: "dhpp", NextDue: testNow.AddDate(0, 0, 5)},
		{VaccineType: "bordetella", NextDue: testNow.AddDate(0, 0, 12)},
	}

	tasks := UpcomingCare(records, 95, testNow)
	require.Len(t, tasks, 3)
	for i := 1; i < len(tasks); i++ {
		assert.False(t, tasks[i].DueDate.Before(tasks[i-1].DueDate))
	}
}
