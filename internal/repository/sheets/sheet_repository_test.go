package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenneldesk/kenneldesk/internal/domain/models"
)

func TestParseDate(t *testing.T) {
	date, err := parseDate("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), date)

	// Datetime strings from the sheet are truncated to the date part.
	date, err = parseDate("2026-03-15T10:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), date)

	_, err = parseDate("")
	assert.Error(t, err)

	_, err = parseDate("not a date")
	assert.Error(t, err)
}

func TestParseFloat(t *testing.T) {
	v, err := parseFloat("1,250.50")
	require.NoError(t, err)
	assert.InDelta(t, 1250.5, v, 1e-9)

	_, err = parseFloat("")
	assert.Error(t, err)
}

func TestParseInt(t *testing.T) {
	v, err := parseInt(" 6 ")
	require.NoError(t, err)
	assert.Equal(t, 6, v)

	_, err = parseInt("6.5")
	assert.Error(t, err)
}

func TestParseGender(t *testing.T) {
	assert.Equal(t, models.GenderFemale, parseGender("Female"))
	assert.Equal(t, models.GenderFemale, parseGender("f"))
	assert.Equal(t, models.GenderFemale, parseGender("母"))
	assert.Equal(t, models.GenderMale, parseGender("male"))
	assert.Equal(t, models.GenderMale, parseGender("anything else"))
}
