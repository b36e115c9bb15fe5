package createreminder

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
	service "github.com/CarelessWhissper/expense-tracker/internal/core/services/create_reminder"
	"github.com/CarelessWhissper/expense-tracker/internal/http/handlers/response"
	"github.com/shopspring/decimal"

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

type Input struct {
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Amount     *string   `json:"amount"`
	Category   *string   `json:"category"`
	Notes      *string   `json:"notes"`
	Frequency  string    `json:"frequency"`
	CustomDays *int      `json:"custom_days"`
	NextDueAt  time.Time `json:"next_due_date"`
	DaysBefore uint      `json:"reminder_days_before"`
}

type Result struct {
	Reminder response.Reminder `json:"reminder"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Type, validation.Required),
		validation.Field(&i.Title, validation.Required, validation.Length(1, 256)),
		validation.Field(&i.Frequency, validation.Required),
		validation.Field(&i.NextDueAt, validation.Required),
		validation.Field(&i.Category, validation.Length(0, 128)),
		validation.Field(&i.Notes, validation.Length(0, 1024)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	remType, err := reminder.ParseType(input.Type)
	if err != nil {
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	}
	frequency, err := reminder.ParseFrequency(input.Frequency)
	if err != nil {
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	}
	customDays := 0
	if input.CustomDays != nil {
		customDays = *input.CustomDays
	}
	var amount c.Optional[decimal.Decimal]
	if input.Amount != nil {
		a, err := decimal.NewFromString(*input.Amount)
		if err != nil {
			response.RenderError(rw, "invalid amount", http.StatusBadRequest)
			return
		}
		amount = c.NewOptional(a, true)
	}
	var category c.Optional[string]
	if input.Category != nil {
		category = c.NewOptional(*input.Category, true)
	}
	var notes c.Optional[string]
	if input.Notes != nil {
		notes = c.NewOptional(*input.Notes, true)
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			Type:       remType,
			Title:      input.Title,
			Amount:     amount,
			Category:   category,
			Notes:      notes,
			Recurrence: reminder.NewRecurrence(frequency, customDays),
			NextDueAt:  input.NextDueAt.UTC(),
			DaysBefore: input.DaysBefore,
		},
	)
	if err != nil {
		switch {
		case isExpectedError(err):
			response.RenderError(rw, err.Error(), http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	rem := response.Reminder{}
	rem.FromDomainType(result.Reminder)
	response.Render(rw, Result{Reminder: rem}, http.StatusCreated)
}

func isExpectedError(err error) bool {
	return (errors.Is(err, reminder.ErrReminderTitleNotSet) ||
		errors.Is(err, reminder.ErrReminderDueAtNotSet) ||
		errors.Is(err, reminder.ErrNegativeAmount) ||
		errors.Is(err, reminder.ErrInvalidCustomDays) ||
		errors.Is(err, reminder.ErrParseFrequency))
}
