package submit_booking

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	submitBooking "github.com/m04kA/SMC-CourtBooking/internal/usecase/submit_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "комментарий слишком длинный"
	msgSessionNotFound    = "сессия не найдена или истекла"
	msgForbidden          = "доступ запрещен"
	msgNotSubmittable     = "для брони нужно выбрать не меньше трёх слотов подряд"
	msgNotPriced          = "цена выбора ещё не получена"
	msgGridRefreshing     = "занятость кортов обновляется, повторите через мгновение"
	msgSlotNotAvailable   = "выбранное время уже занято"
)

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/submit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /sessions/{id}/submit - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	sessionID := mux.Vars(r)["sessionId"]

	// Тело запроса опционально
	var req SubmitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /sessions/{id}/submit - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &submitBooking.Request{
		SessionID: sessionID,
		UserID:    userID,
		Note:      req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, submitBooking.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{id}/submit - Invalid input: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, submitBooking.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/submit - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, submitBooking.ErrAccessDenied):
			h.logger.Warn("POST /sessions/{id}/submit - Access denied: session_id=%s, user_id=%d", sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, submitBooking.ErrNotSubmittable):
			handlers.RespondError(w, http.StatusConflict, msgNotSubmittable)

		case errors.Is(err, submitBooking.ErrNotPriced):
			handlers.RespondError(w, http.StatusConflict, msgNotPriced)

		case errors.Is(err, submitBooking.ErrGridRefreshing):
			handlers.RespondError(w, http.StatusConflict, msgGridRefreshing)

		case errors.Is(err, submitBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /sessions/{id}/submit - Slot not available: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		default:
			h.logger.Error("POST /sessions/{id}/submit - Failed to submit booking: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/submit - Booking submitted: booking_id=%d, status=%s, user_id=%d",
		result.ID, result.Status, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
