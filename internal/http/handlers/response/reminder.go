package response

import (
	"time"

	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/reminder"
)

type Reminder struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	Amount     *string    `json:"amount"`
	Category   *string    `json:"category"`
	Notes      *string    `json:"notes"`
	Frequency  string     `json:"frequency"`
	CustomDays *int       `json:"custom_days,omitempty"`
	NextDueAt  time.Time  `json:"next_due_date"`
	DaysBefore uint       `json:"reminder_days_before"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	LastPaidAt *time.Time `json:"last_paid"`
}

func (r *Reminder) FromDomainType(dr reminder.Reminder) {
	r.ID = string(dr.ID)
	r.Type = dr.Type.String()
	r.Title = dr.Title
	if dr.Amount.IsPresent {
		amount := dr.Amount.Value.String()
		r.Amount = &amount
	}
	if dr.Category.IsPresent {
		r.Category = &dr.Category.Value
	}
	if dr.Notes.IsPresent {
		r.Notes = &dr.Notes.Value
	}
	r.Frequency = dr.Recurrence.Frequency.String()
	if dr.Recurrence.Frequency == reminder.FrequencyCustom {
		customDays := dr.Recurrence.CustomDays
		r.CustomDays = &customDays
	}
	r.NextDueAt = dr.NextDueAt
	r.DaysBefore = dr.DaysBefore
	r.IsActive = dr.IsActive
	r.CreatedAt = dr.CreatedAt
	if dr.LastPaidAt.IsPresent {
		r.LastPaidAt = &dr.LastPaidAt.Value
	}
}
