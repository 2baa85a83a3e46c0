package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateAge(t *testing.T) {
	today := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		dob  string
		want int
	}{
		{"2000-06-16", 23},
		{"2000-06-15", 24},
		{"2000-06-14", 24},
		{"2000-07-01", 23},
		{"2000-01-31", 24},
		{"2024-06-15", 0},
	}

	for _, tt := range tests {
		t.Run(tt.dob, func(t *testing.T) {
			dob, err := ParseDate(tt.dob)
			require.NoError(t, err)
			assert.Equal(t, tt.want, CalculateAge(dob, today))
		})
	}
}

func TestCalculateAgeLeapDay(t *testing.T) {
	dob := time.Date(2004, time.February, 29, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 18, CalculateAge(dob, time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 19, CalculateAge(dob, time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)))
}

func TestParseDateRejectsGarbage(t *testing.T) {
	_, err := ParseDate("15/06/2024")
	assert.Error(t, err)
}

func TestToday(t *testing.T) {
	now := time.Date(2024, time.June, 15, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2024-06-15", Today(now).Format(DateLayout))
}
