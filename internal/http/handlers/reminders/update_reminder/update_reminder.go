package updatereminder

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	c "github.com/CarelessWhissper/expense-tracker/internal/core/domain/common"
	e "github.com/CarelessWhissper/expense-tracker/internal/core/domain/errors"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/reminder"
	"github.com/CarelessWhissper/expense-tracker/internal/core/services"
	service "github.com/CarelessWhissper/expense-tracker/internal/core/services/update_reminder"
	"github.com/CarelessWhissper/expense-tracker/internal/http/handlers/response"
	"github.com/shopspring/decimal"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

// Absent fields are left untouched, null clears the optional ones.
type Input struct {
	Title       *string    `json:"title"`
	Amount      *string    `json:"amount"`
	HasAmount   bool       `json:"-"`
	Category    *string    `json:"category"`
	HasCategory bool       `json:"-"`
	Notes       *string    `json:"notes"`
	HasNotes    bool       `json:"-"`
	Frequency   *string    `json:"frequency"`
	CustomDays  *int       `json:"custom_days"`
	NextDueAt   *time.Time `json:"next_due_date"`
	DaysBefore  *uint      `json:"reminder_days_before"`
}

type Result struct {
	Reminder response.Reminder `json:"reminder"`
}

func (i *Input) FromJSON(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, i); err != nil {
		return err
	}
	keys := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	_, i.HasAmount = keys["amount"]
	_, i.HasCategory = keys["category"]
	_, i.HasNotes = keys["notes"]
	return nil
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Title, validation.Length(1, 256)),
		validation.Field(&i.Category, validation.Length(0, 128)),
		validation.Field(&i.Notes, validation.Length(0, 1024)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	reminderID := chi.URLParam(r, "reminderID")
	if reminderID == "" {
		response.RenderError(rw, "invalid reminder ID", http.StatusBadRequest)
		return
	}

	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	serviceInput := service.Input{ReminderID: reminder.ID(reminderID)}
	if input.Title != nil {
		serviceInput.DoTitleUpdate = true
		serviceInput.Title = *input.Title
	}
	if input.HasAmount {
		serviceInput.DoAmountUpdate = true
		if input.Amount != nil {
			amount, err := decimal.NewFromString(*input.Amount)
			if err != nil {
				response.RenderError(rw, "invalid amount", http.StatusBadRequest)
				return
			}
			serviceInput.Amount = c.NewOptional(amount, true)
		}
	}
	if input.HasCategory {
		serviceInput.DoCategoryUpdate = true
		if input.Category != nil {
			serviceInput.Category = c.NewOptional(*input.Category, true)
		}
	}
	if input.HasNotes {
		serviceInput.DoNotesUpdate = true
		if input.Notes != nil {
			serviceInput.Notes = c.NewOptional(*input.Notes, true)
		}
	}
	if input.Frequency != nil {
		frequency, err := reminder.ParseFrequency(*input.Frequency)
		if err != nil {
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
			return
		}
		customDays := 0
		if input.CustomDays != nil {
			customDays = *input.CustomDays
		}
		serviceInput.DoRecurrenceUpdate = true
		serviceInput.Recurrence = reminder.NewRecurrence(frequency, customDays)
	}
	if input.NextDueAt != nil {
		serviceInput.DoNextDueAtUpdate = true
		serviceInput.NextDueAt = input.NextDueAt.UTC()
	}
	if input.DaysBefore != nil {
		serviceInput.DoDaysBeforeUpdate = true
		serviceInput.DaysBefore = *input.DaysBefore
	}

	result, err := h.service.Run(r.Context(), serviceInput)
	if err != nil {
		switch {
		case errors.Is(err, reminder.ErrReminderDoesNotExist):
			response.RenderNotFound(rw)
		case isExpectedError(err):
			response.RenderError(rw, err.Error(), http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	rem := response.Reminder{}
	rem.FromDomainType(result.Reminder)
	response.Render(rw, Result{Reminder: rem}, http.StatusOK)
}

func isExpectedError(err error) bool {
	return (errors.Is(err, reminder.ErrReminderTitleNotSet) ||
		errors.Is(err, reminder.ErrReminderDueAtNotSet) ||
		errors.Is(err, reminder.ErrNegativeAmount) ||
		errors.Is(err, reminder.ErrInvalidCustomDays) ||
		errors.Is(err, reminder.ErrParseFrequency))
}
