package createreminder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/reminder"
	service "github.com/CarelessWhissper/expense-tracker/internal/core/services/create_reminder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	result.Reminder = reminder.Reminder{
		ID:         reminder.ID("reminder-1"),
		Type:       input.Type,
		Title:      input.Title,
		Amount:     input.Amount,
		Recurrence: input.Recurrence,
		NextDueAt:  input.NextDueAt,
		DaysBefore: input.DaysBefore,
		IsActive:   true,
		CreatedAt:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	return result, nil
}

func TestCreateReminderHandlerSuccess(t *testing.T) {
	stub := &stubService{}
	handler := New(stub)

	body := `{
		"type": "payment",
		"title": "Rent",
		"amount": "1200.50",
		"frequency": "monthly",
		"next_due_date": "2024-07-01T00:00:00Z",
		"reminder_days_before": 3
	}`
	request := httptest.NewRequest(http.MethodPost, "/reminders", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusCreated, recorder.Result().StatusCode)
	require.NotNil(t, stub.input)
	assert.Equal(t, reminder.TypePayment, stub.input.Type)
	assert.Equal(t, "Rent", stub.input.Title)
	assert.True(t, stub.input.Amount.IsPresent)
	assert.Equal(t, "1200.5", stub.input.Amount.Value.String())
	assert.Equal(t, reminder.FrequencyMonthly, stub.input.Recurrence.Frequency)
	assert.Contains(t, recorder.Body.String(), `"id":"reminder-1"`)
}

func TestCreateReminderHandlerBadRequest(t *testing.T) {
	cases := []struct {
		id   string
		body string
	}{
		{id: "not json", body: `{asd`},
		{
			id:   "missing title",
			body: `{"type": "payment", "frequency": "monthly", "next_due_date": "2024-07-01T00:00:00Z"}`,
		},
		{
			id:   "unknown type",
			body: `{"type": "asd", "title": "Rent", "frequency": "monthly", "next_due_date": "2024-07-01T00:00:00Z"}`,
		},
		{
			id:   "unknown frequency",
			body: `{"type": "payment", "title": "Rent", "frequency": "asd", "next_due_date": "2024-07-01T00:00:00Z"}`,
		},
		{
			id:   "invalid amount",
			body: `{"type": "payment", "title": "Rent", "amount": "asd", "frequency": "monthly", "next_due_date": "2024-07-01T00:00:00Z"}`,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{}
			handler := New(stub)

			request := httptest.NewRequest(http.MethodPost, "/reminders", strings.NewReader(testcase.body))
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusBadRequest, recorder.Result().StatusCode)
			assert.Nil(t, stub.input)
		})
	}
}

func TestCreateReminderHandlerUnprocessable(t *testing.T) {
	stub := &stubService{err: reminder.ErrInvalidCustomDays}
	handler := New(stub)

	body := `{
		"type": "payment",
		"title": "Rent",
		"frequency": "custom",
		"custom_days": 0,
		"next_due_date": "2024-07-01T00:00:00Z"
	}`
	request := httptest.NewRequest(http.MethodPost, "/reminders", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Result().StatusCode)
}
