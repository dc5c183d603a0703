package get_court_grid

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	getCourtGrid "github.com/m04kA/SMC-CourtBooking/internal/usecase/get_court_grid"
)

const (
	msgInvalidFacilityID = "некорректный ID площадки"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPastDate          = "нельзя выбрать прошедшую дату"
	msgFacilityNotFound  = "площадка не найдена"
)

type Handler struct {
	useCase GetCourtGridUseCase
	logger  Logger
}

func NewHandler(useCase GetCourtGridUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/grid
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем facilityId из URL
	facilityID, err := strconv.ParseInt(vars["facilityId"], 10, 64)
	if err != nil || facilityID <= 0 {
		h.logger.Warn("GET /facilities/{id}/grid - Invalid facility ID: %s", vars["facilityId"])
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /facilities/{id}/grid - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/grid - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getCourtGrid.Request{
		FacilityID: facilityID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getCourtGrid.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/{id}/grid - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, getCourtGrid.ErrInvalidDate):
			h.logger.Warn("GET /facilities/{id}/grid - Past date: facility_id=%d, date=%s", facilityID, dateStr)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getCourtGrid.ErrInvalidInput):
			h.logger.Warn("GET /facilities/{id}/grid - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFacilityID)

		default:
			h.logger.Error("GET /facilities/{id}/grid - Failed to build grid: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /facilities/{id}/grid - Grid built: facility_id=%d, courts=%d", facilityID, len(result.Courts))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
