package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecurrenceValid(t *testing.T) {
	cases := []struct {
		r Recurrence
	}{
		{r: Recurrence{Frequency: FrequencyWeekly}},
		{r: Recurrence{Frequency: FrequencyBiweekly}},
		{r: Recurrence{Frequency: FrequencyMonthly}},
		{r: Recurrence{Frequency: FrequencyQuarterly}},
		{r: Recurrence{Frequency: FrequencyYearly}},
		{r: Recurrence{Frequency: FrequencyCustom, CustomDays: 1}},
		{r: Recurrence{Frequency: FrequencyCustom, CustomDays: 45}},
	}

	for _, testcase := range cases {
		t.Run(testcase.r.String(), func(t *testing.T) {
			assert.Nil(t, testcase.r.Validate())
		})
	}
}

func TestRecurrenceError(t *testing.T) {
	cases := []struct {
		id       string
		r        Recurrence
		expected error
	}{
		{id: "1", r: Recurrence{}, expected: ErrParseFrequency},
		{id: "2", r: Recurrence{Frequency: FrequencyCustom}, expected: ErrInvalidCustomDays},
		{id: "3", r: Recurrence{Frequency: FrequencyCustom, CustomDays: 0}, expected: ErrInvalidCustomDays},
		{id: "4", r: Recurrence{Frequency: FrequencyCustom, CustomDays: -3}, expected: ErrInvalidCustomDays},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			assert.ErrorIs(t, testcase.r.Validate(), testcase.expected)
		})
	}
}

func TestRecurrenceNextFrom(t *testing.T) {
	cases := []struct {
		r        Recurrence
		from     string
		expected string
	}{
		{
			r:        Recurrence{Frequency: FrequencyWeekly},
			from:     "2024-06-03T10:30:00Z",
			expected: "2024-06-10T10:30:00Z",
		},
		{
			r:        Recurrence{Frequency: FrequencyBiweekly},
			from:     "2024-12-25T08:00:00Z",
			expected: "2025-01-08T08:00:00Z",
		},
		{
			r:        Recurrence{Frequency: FrequencyMonthly},
			from:     "2024-06-15T09:00:00Z",
			expected: "2024-07-15T09:00:00Z",
		},
		{
			// Month-end anchors clamp into short months.
			r:        Recurrence{Frequency: FrequencyMonthly},
			from:     "2024-01-31T09:00:00Z",
			expected: "2024-02-29T09:00:00Z",
		},
		{
			r:        Recurrence{Frequency: FrequencyMonthly},
			from:     "2023-01-31T09:00:00Z",
			expected: "2023-02-28T09:00:00Z",
		},
		{
			r:        Recurrence{Frequency: FrequencyMonthly},
			from:     "2024-03-31T09:00:00Z",
			expected: "2024-04-30T09:00:00Z",
		},
		{
			r:        Recurrence{Frequency: FrequencyQuarterly},
			from:     "2024-11-30T23:59:59Z",
			expected: "2025-02-28T23:59:59Z",
		},
		{
			r:        Recurrence{Frequency: FrequencyQuarterly},
			from:     "2024-02-29T12:00:00Z",
			expected: "2024-05-29T12:00:00Z",
		},
		{
			r:        Recurrence{Frequency: FrequencyYearly},
			from:     "2024-06-01T00:00:00Z",
			expected: "2025-06-01T00:00:00Z",
		},
		{
			// Feb 29 anchors clamp to Feb 28 on non-leap years.
			r:        Recurrence{Frequency: FrequencyYearly},
			from:     "2024-02-29T09:00:00Z",
			expected: "2025-02-28T09:00:00Z",
		},
		{
			r:        Recurrence{Frequency: FrequencyCustom, CustomDays: 10},
			from:     "2024-02-25T09:00:00Z",
			expected: "2024-03-06T09:00:00Z",
		},
		{
			r:        Recurrence{Frequency: FrequencyCustom, CustomDays: 1},
			from:     "2024-12-31T21:00:00Z",
			expected: "2025-01-01T21:00:00Z",
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.r.String()+" from "+testcase.from, func(t *testing.T) {
			from, err := time.Parse(time.RFC3339, testcase.from)
			require.Nil(t, err)
			expected, err := time.Parse(time.RFC3339, testcase.expected)
			require.Nil(t, err)

			next, err := testcase.r.NextFrom(from)
			require.Nil(t, err)
			assert.True(t, next.Equal(expected), "got %v, expected %v", next, expected)
			assert.True(t, next.After(from))
		})
	}
}

func TestRecurrenceNextFromInvalidConfiguration(t *testing.T) {
	from := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	r := Recurrence{Frequency: FrequencyCustom, CustomDays: 0}
	next, err := r.NextFrom(from)

	assert.ErrorIs(t, err, ErrInvalidCustomDays)
	assert.True(t, next.Equal(from))
}
