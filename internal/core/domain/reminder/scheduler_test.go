package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanNotification(t *testing.T) {
	at, err := ParseTimeOfDay("09:00")
	require.Nil(t, err)

	reminder := Reminder{
		ID:         ID("reminder-1"),
		Type:       TypePayment,
		Title:      "Electricity bill",
		NextDueAt:  time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		DaysBefore: 3,
		IsActive:   true,
	}

	t.Run("fire time still ahead", func(t *testing.T) {
		now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

		n, ok := PlanNotification(reminder, at, now, false)

		require.True(t, ok)
		assert.Equal(t, reminder.ID, n.ReminderID)
		assert.Equal(t, "Electricity bill", n.Title)
		assert.Equal(t, "Your recurring payment is coming up.", n.Body)
		assert.Equal(t, time.Date(2024, 6, 7, 9, 0, 0, 0, time.UTC), n.FireAt)
	})

	t.Run("fire window passed", func(t *testing.T) {
		now := time.Date(2024, 6, 8, 12, 0, 0, 0, time.UTC)

		_, ok := PlanNotification(reminder, at, now, false)

		assert.False(t, ok)
	})

	t.Run("fire window passed, missed notifications enabled", func(t *testing.T) {
		now := time.Date(2024, 6, 8, 12, 0, 0, 0, time.UTC)

		n, ok := PlanNotification(reminder, at, now, true)

		require.True(t, ok)
		assert.Equal(t, now, n.FireAt)
	})

	t.Run("inactive reminder is never planned", func(t *testing.T) {
		inactive := reminder
		inactive.IsActive = false
		now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

		_, ok := PlanNotification(inactive, at, now, false)

		assert.False(t, ok)
	})

	t.Run("savings wording", func(t *testing.T) {
		savings := reminder
		savings.Type = TypeSavings
		now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

		n, ok := PlanNotification(savings, at, now, false)

		require.True(t, ok)
		assert.Equal(t, "Time to contribute to your savings goal.", n.Body)
	})
}
