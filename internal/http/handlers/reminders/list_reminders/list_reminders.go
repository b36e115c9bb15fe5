package listreminders

import (
	"net/http"
	"strconv"

	c "github.com/CarelessWhissper/expense-tracker/internal/core/domain/common"
	e "github.com/CarelessWhissper/expense-tracker/internal/core/domain/errors"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/reminder"
	"github.com/CarelessWhissper/expense-tracker/internal/core/services"
	service "github.com/CarelessWhissper/expense-tracker/internal/core/services/list_reminders"
	"github.com/CarelessWhissper/expense-tracker/internal/http/handlers/response"
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

type Result struct {
	Reminders []response.Reminder `json:"reminders"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := service.Input{}

	if rawIsActive := r.URL.Query().Get("is_active"); rawIsActive != "" {
		isActive, err := strconv.ParseBool(rawIsActive)
		if err != nil {
			response.RenderError(rw, "invalid is_active value", http.StatusBadRequest)
			return
		}
		input.IsActiveEquals = c.NewOptional(isActive, true)
	}
	if rawType := r.URL.Query().Get("type"); rawType != "" {
		remType, err := reminder.ParseType(rawType)
		if err != nil {
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
			return
		}
		input.TypeEquals = c.NewOptional(remType, true)
	}
	if rawOrderBy := r.URL.Query().Get("order_by"); rawOrderBy != "" {
		orderBy, err := reminder.ParseOrderBy(rawOrderBy)
		if err != nil {
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
			return
		}
		input.OrderBy = orderBy
	}

	result, err := h.service.Run(r.Context(), input)
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	reminders := make([]response.Reminder, len(result.Reminders))
	for ix, rem := range result.Reminders {
		reminders[ix].FromDomainType(rem)
	}
	response.Render(rw, Result{Reminders: reminders}, http.StatusOK)
}
