package http

import (
	"encoding/json"
	"net/http"

	"github.com/presensia/attendance-backend-go/internal/domain/settings"
	"github.com/presensia/attendance-backend-go/internal/handler/http/response"
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

type SettingsHandler interface {
	GetWorkSettings(w http.ResponseWriter, r *http.Request)
	UpdateWorkSettings(w http.ResponseWriter, r *http.Request)
	ListHolidays(w http.ResponseWriter, r *http.Request)
	UpsertHoliday(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	settingsService settings.SettingsService
}

func NewSettingsHandler(settingsService settings.SettingsService) SettingsHandler {
	return &settingsHandlerImpl{
		settingsService: settingsService,
	}
}

// GetWorkSettings implements SettingsHandler.
func (h *settingsHandlerImpl) GetWorkSettings(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingsService.GetWorkSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateWorkSettings implements SettingsHandler.
func (h *settingsHandlerImpl) UpdateWorkSettings(w http.ResponseWriter, r *http.Request) {
	var req settings.UpdateWorkSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.settingsService.UpdateWorkSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListHolidays implements SettingsHandler.
func (h *settingsHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	from, okFrom := validator.IsValidDate(r.URL.Query().Get("from"))
	to, okTo := validator.IsValidDate(r.URL.Query().Get("to"))
	if !okFrom || !okTo {
		response.BadRequest(w, "Query parameters 'from' and 'to' must be dates in YYYY-MM-DD form", nil)
		return
	}
	if to.Before(from) {
		response.BadRequest(w, "'to' must not be before 'from'", nil)
		return
	}

	result, err := h.settingsService.ListHolidays(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpsertHoliday implements SettingsHandler.
func (h *settingsHandlerImpl) UpsertHoliday(w http.ResponseWriter, r *http.Request) {
	var req settings.UpsertHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.settingsService.UpsertHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
