package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordSetAndMatches(t *testing.T) {
	var p Password
	require.NoError(t, p.Set("correct horse battery staple"))
	require.NotEmpty(t, p.Hash)

	match, err := p.Matches("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, match)

	match, err = p.Matches("wrong password")
	require.NoError(t, err)
	assert.False(t, match)
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
}

func TestValidCarStatus(t *testing.T) {
	for _, s := range []string{CarStatusAvailable, CarStatusUnavailable, CarStatusSold} {
		assert.True(t, ValidCarStatus(s), s)
	}
	assert.False(t, ValidCarStatus("PARKED"))
	assert.False(t, ValidCarStatus("available"))
}

func TestValidDayOfWeek(t *testing.T) {
	assert.True(t, ValidDayOfWeek("MONDAY"))
	assert.True(t, ValidDayOfWeek("SUNDAY"))
	assert.False(t, ValidDayOfWeek("monday"))
	assert.False(t, ValidDayOfWeek("FUNDAY"))
}

func TestDefaultWorkingHours(t *testing.T) {
	hours := DefaultWorkingHours()
	require.Len(t, hours, 7)

	byDay := make(map[string]WorkingHour, 7)
	for _, wh := range hours {
		byDay[wh.DayOfWeek] = wh
	}

	monday := byDay["MONDAY"]
	assert.Equal(t, "09:00", monday.OpenTime)
	assert.Equal(t, "18:00", monday.CloseTime)
	assert.True(t, monday.IsOpen)

	saturday := byDay["SATURDAY"]
	assert.Equal(t, "10:00", saturday.OpenTime)
	assert.Equal(t, "16:00", saturday.CloseTime)
	assert.True(t, saturday.IsOpen)

	assert.False(t, byDay["SUNDAY"].IsOpen)
}
