package reminder

import (
	"testing"
	"time"

	c "github.com/CarelessWhissper/expense-tracker/internal/core/domain/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestReminderValidate(t *testing.T) {
	valid := Reminder{
		ID:         ID("reminder-1"),
		Type:       TypePayment,
		Title:      "Rent",
		Recurrence: Recurrence{Frequency: FrequencyMonthly},
		NextDueAt:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		DaysBefore: 3,
		IsActive:   true,
	}
	assert.Nil(t, valid.Validate())

	noTitle := valid
	noTitle.Title = ""
	assert.ErrorIs(t, noTitle.Validate(), ErrReminderTitleNotSet)

	noDueAt := valid
	noDueAt.NextDueAt = time.Time{}
	assert.ErrorIs(t, noDueAt.Validate(), ErrReminderDueAtNotSet)

	negativeAmount := valid
	negativeAmount.Amount = c.NewOptional(decimal.NewFromInt(-1), true)
	assert.ErrorIs(t, negativeAmount.Validate(), ErrNegativeAmount)

	badRecurrence := valid
	badRecurrence.Recurrence = Recurrence{Frequency: FrequencyCustom}
	assert.ErrorIs(t, badRecurrence.Validate(), ErrInvalidCustomDays)
}

func TestReminderIsDueOn(t *testing.T) {
	cases := []struct {
		id       string
		dueAt    time.Time
		now      time.Time
		expected bool
	}{
		{
			id:       "same day, different time",
			dueAt:    time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
			now:      time.Date(2024, 6, 10, 18, 45, 0, 0, time.UTC),
			expected: true,
		},
		{
			id:       "day before",
			dueAt:    time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
			now:      time.Date(2024, 6, 9, 23, 59, 0, 0, time.UTC),
			expected: false,
		},
		{
			id:       "overdue is not due today",
			dueAt:    time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
			now:      time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
			expected: false,
		},
		{
			id:       "same day number, different month",
			dueAt:    time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
			now:      time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
			expected: false,
		},
		{
			id:       "same day and month, different year",
			dueAt:    time.Date(2023, 6, 10, 0, 0, 0, 0, time.UTC),
			now:      time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
			expected: false,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			r := Reminder{NextDueAt: testcase.dueAt}
			assert.Equal(t, testcase.expected, r.IsDueOn(testcase.now))
		})
	}
}

func TestReminderIsSettledOn(t *testing.T) {
	now := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)

	unsettled := Reminder{}
	assert.False(t, unsettled.IsSettledOn(now))

	settledToday := Reminder{LastPaidAt: c.NewOptional(time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC), true)}
	assert.True(t, settledToday.IsSettledOn(now))

	settledYesterday := Reminder{LastPaidAt: c.NewOptional(time.Date(2024, 6, 9, 8, 0, 0, 0, time.UTC), true)}
	assert.False(t, settledYesterday.IsSettledOn(now))
}

func TestReminderNotifyAt(t *testing.T) {
	at, err := ParseTimeOfDay("09:00")
	assert.Nil(t, err)

	r := Reminder{
		NextDueAt:  time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		DaysBefore: 3,
	}
	assert.Equal(t, time.Date(2024, 6, 7, 9, 0, 0, 0, time.UTC), r.NotifyAt(at))

	sameDay := Reminder{NextDueAt: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC), sameDay.NotifyAt(at))
}
