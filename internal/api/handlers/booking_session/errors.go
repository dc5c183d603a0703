package booking_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/service/sessions"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidSlot        = "некорректный формат слота, ожидается HH:MM"
	msgInvalidInput       = "некорректные данные запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSessionNotFound    = "сессия не найдена или истекла"
	msgFacilityNotFound   = "площадка не найдена"
	msgCourtNotFound      = "корт не найден"
	msgForbidden          = "доступ запрещен"
	msgGridRefreshing     = "занятость кортов обновляется, повторите через мгновение"
)

// respondServiceError переводит ошибку сервиса сессий в HTTP ответ
func (h *Handler) respondServiceError(w http.ResponseWriter, route, sessionID string, err error) {
	switch {
	case errors.Is(err, sessions.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: session_id=%s, error=%v", route, sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, sessions.ErrSessionNotFound):
		h.logger.Warn("%s - Session not found: session_id=%s", route, sessionID)
		handlers.RespondNotFound(w, msgSessionNotFound)

	case errors.Is(err, sessions.ErrFacilityNotFound):
		h.logger.Warn("%s - Facility not found: session_id=%s", route, sessionID)
		handlers.RespondNotFound(w, msgFacilityNotFound)

	case errors.Is(err, sessions.ErrCourtNotFound):
		h.logger.Warn("%s - Court not found: session_id=%s", route, sessionID)
		handlers.RespondNotFound(w, msgCourtNotFound)

	case errors.Is(err, sessions.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: session_id=%s", route, sessionID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, sessions.ErrGridRefreshing):
		h.logger.Warn("%s - Grid refreshing: session_id=%s", route, sessionID)
		handlers.RespondError(w, http.StatusConflict, msgGridRefreshing)

	default:
		h.logger.Error("%s - Failed: session_id=%s, error=%v", route, sessionID, err)
		handlers.RespondInternalError(w)
	}
}
