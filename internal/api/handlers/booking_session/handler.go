package booking_session

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// Handler обработчики сессии выбора слотов
type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Start POST /api/v1/sessions
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	const route = "POST /sessions"

	userID, ok := h.userID(w, r, route)
	if !ok {
		return
	}

	var req StartSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		h.logger.Warn("%s - Invalid date: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	session, err := h.service.Start(r.Context(), userID, req.FacilityID, date)
	if err != nil {
		h.respondServiceError(w, route, "", err)
		return
	}

	h.logger.Info("%s - Session started: session_id=%s, user_id=%d, facility_id=%d",
		route, session.ID, userID, req.FacilityID)
	handlers.RespondJSON(w, http.StatusCreated, session)
}

// Get GET /api/v1/sessions/{sessionId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const route = "GET /sessions/{id}"

	userID, ok := h.userID(w, r, route)
	if !ok {
		return
	}
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.service.Get(r.Context(), sessionID, userID)
	if err != nil {
		h.respondServiceError(w, route, sessionID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}

// SelectCourt PUT /api/v1/sessions/{sessionId}/court
func (h *Handler) SelectCourt(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /sessions/{id}/court"

	userID, ok := h.userID(w, r, route)
	if !ok {
		return
	}
	sessionID := mux.Vars(r)["sessionId"]

	var req SelectCourtRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.SelectCourt(r.Context(), sessionID, userID, req.CourtID)
	if err != nil {
		h.respondServiceError(w, route, sessionID, err)
		return
	}

	h.logger.Info("%s - Court selected: session_id=%s, court_id=%d", route, sessionID, req.CourtID)
	handlers.RespondJSON(w, http.StatusOK, session)
}

// ChangeDate PUT /api/v1/sessions/{sessionId}/date
func (h *Handler) ChangeDate(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /sessions/{id}/date"

	userID, ok := h.userID(w, r, route)
	if !ok {
		return
	}
	sessionID := mux.Vars(r)["sessionId"]

	var req ChangeDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		h.logger.Warn("%s - Invalid date: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	session, err := h.service.ChangeDate(r.Context(), sessionID, userID, date)
	if err != nil {
		h.respondServiceError(w, route, sessionID, err)
		return
	}

	h.logger.Info("%s - Date changed: session_id=%s, date=%s", route, sessionID, session.Date)
	handlers.RespondJSON(w, http.StatusOK, session)
}

// Refresh POST /api/v1/sessions/{sessionId}/refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	const route = "POST /sessions/{id}/refresh"

	userID, ok := h.userID(w, r, route)
	if !ok {
		return
	}
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.service.Refresh(r.Context(), sessionID, userID)
	if err != nil {
		h.respondServiceError(w, route, sessionID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}

// Click POST /api/v1/sessions/{sessionId}/clicks
// Отказ в клике возвращается с кодом 200 и outcome=rejected
func (h *Handler) Click(w http.ResponseWriter, r *http.Request) {
	const route = "POST /sessions/{id}/clicks"

	userID, ok := h.userID(w, r, route)
	if !ok {
		return
	}
	sessionID := mux.Vars(r)["sessionId"]

	var req ClickRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := types.NewTimeStringFromString(req.Slot)
	if err != nil {
		h.logger.Warn("%s - Invalid slot %q: %v", route, req.Slot, err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	result, err := h.service.Click(r.Context(), sessionID, userID, slot)
	if err != nil {
		h.respondServiceError(w, route, sessionID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Clear DELETE /api/v1/sessions/{sessionId}/selection
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /sessions/{id}/selection"

	userID, ok := h.userID(w, r, route)
	if !ok {
		return
	}
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.service.Clear(r.Context(), sessionID, userID)
	if err != nil {
		h.respondServiceError(w, route, sessionID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
	}
	return userID, ok
}
