package reminder

import (
	"time"

	c "github.com/CarelessWhissper/expense-tracker/internal/core/domain/common"
	"github.com/shopspring/decimal"
)

type ID string

type Reminder struct {
	ID         ID
	Type       Type
	Title      string
	Amount     c.Optional[decimal.Decimal]
	Category   c.Optional[string]
	Notes      c.Optional[string]
	Recurrence Recurrence
	NextDueAt  time.Time
	DaysBefore uint
	IsActive   bool
	CreatedAt  time.Time
	LastPaidAt c.Optional[time.Time]
	// NotifiedDueAt is the due date a notification has already been
	// delivered for. Advancing NextDueAt makes the stamp obsolete on its own.
	NotifiedDueAt c.Optional[time.Time]
}

func (r *Reminder) Validate() error {
	if r.Title == "" {
		return ErrReminderTitleNotSet
	}
	if r.NextDueAt.IsZero() {
		return ErrReminderDueAtNotSet
	}
	if r.Amount.IsPresent && r.Amount.Value.IsNegative() {
		return ErrNegativeAmount
	}
	return r.Recurrence.Validate()
}

// IsDueOn reports whether the reminder's due date falls on the same
// calendar day as t.
func (r *Reminder) IsDueOn(t time.Time) bool {
	return sameCalendarDay(r.NextDueAt, t)
}

// IsSettledOn reports whether the reminder has already been marked paid
// on the calendar day of t.
func (r *Reminder) IsSettledOn(t time.Time) bool {
	return r.LastPaidAt.IsPresent && sameCalendarDay(r.LastPaidAt.Value, t)
}

// NotifyAt returns the instant a notification for the reminder should fire:
// DaysBefore days ahead of the due date, at the given time of day.
func (r *Reminder) NotifyAt(at TimeOfDay) time.Time {
	day := r.NextDueAt.AddDate(0, 0, -int(r.DaysBefore))
	return at.On(day)
}

func sameCalendarDay(a time.Time, b time.Time) bool {
	return a.Day() == b.Day() && a.Month() == b.Month() && a.Year() == b.Year()
}
