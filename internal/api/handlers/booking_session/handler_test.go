package booking_session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/service/sessions"
	"github.com/m04kA/SMC-CourtBooking/internal/service/sessions/models"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

type fakeService struct {
	err       error
	gotUser   int64
	gotID     string
	gotDate   time.Time
	gotCourt  int64
	gotSlot   types.TimeString
	lastCalls []string
}

func (f *fakeService) record(name, id string, userID int64) (*models.SessionResponse, error) {
	f.lastCalls = append(f.lastCalls, name)
	f.gotID = id
	f.gotUser = userID
	if f.err != nil {
		return nil, f.err
	}
	return &models.SessionResponse{ID: "sess-1", Date: "2025-01-02"}, nil
}

func (f *fakeService) Start(_ context.Context, userID, _ int64, date time.Time) (*models.SessionResponse, error) {
	f.gotDate = date
	return f.record("start", "", userID)
}

func (f *fakeService) Get(_ context.Context, id string, userID int64) (*models.SessionResponse, error) {
	return f.record("get", id, userID)
}

func (f *fakeService) SelectCourt(_ context.Context, id string, userID, courtID int64) (*models.SessionResponse, error) {
	f.gotCourt = courtID
	return f.record("court", id, userID)
}

func (f *fakeService) ChangeDate(_ context.Context, id string, userID int64, date time.Time) (*models.SessionResponse, error) {
	f.gotDate = date
	return f.record("date", id, userID)
}

func (f *fakeService) Refresh(_ context.Context, id string, userID int64) (*models.SessionResponse, error) {
	return f.record("refresh", id, userID)
}

func (f *fakeService) Click(_ context.Context, id string, userID int64, slot types.TimeString) (*models.ClickResponse, error) {
	f.gotSlot = slot
	session, err := f.record("click", id, userID)
	if err != nil {
		return nil, err
	}
	return &models.ClickResponse{Outcome: "rejected", Reason: "blocked", Session: *session}, nil
}

func (f *fakeService) Clear(_ context.Context, id string, userID int64) (*models.SessionResponse, error) {
	return f.record("clear", id, userID)
}

func newRouter(svc SessionService) *mux.Router {
	h := NewHandler(svc, logger.NewNop())
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/sessions", h.Start).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{sessionId}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{sessionId}/court", h.SelectCourt).Methods(http.MethodPut)
	r.HandleFunc("/sessions/{sessionId}/date", h.ChangeDate).Methods(http.MethodPut)
	r.HandleFunc("/sessions/{sessionId}/refresh", h.Refresh).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{sessionId}/clicks", h.Click).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{sessionId}/selection", h.Clear).Methods(http.MethodDelete)
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, "42")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestStart(t *testing.T) {
	svc := &fakeService{}
	rec := do(newRouter(svc), http.MethodPost, "/sessions", `{"facilityId":7,"date":"2025-01-02"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(42), svc.gotUser)
	assert.Equal(t, "2025-01-02", svc.gotDate.Format("2006-01-02"))
}

func TestStart_BadInput(t *testing.T) {
	r := newRouter(&fakeService{})

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/sessions", `{"facilityId":7,"date":"tomorrow"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/sessions", `{"facility":7}`).Code)
}

func TestClick(t *testing.T) {
	svc := &fakeService{}
	rec := do(newRouter(svc), http.MethodPost, "/sessions/sess-1/clicks", `{"slot":"10:30"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sess-1", svc.gotID)
	assert.Equal(t, types.MustTimeString("10:30"), svc.gotSlot)

	var body models.ClickResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "rejected", body.Outcome)
	assert.Equal(t, "sess-1", body.Session.ID)
}

func TestClick_InvalidSlot(t *testing.T) {
	svc := &fakeService{}
	rec := do(newRouter(svc), http.MethodPost, "/sessions/sess-1/clicks", `{"slot":"25:99"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.lastCalls)
}

func TestRoutes(t *testing.T) {
	svc := &fakeService{}
	r := newRouter(svc)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/sessions/sess-1", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPut, "/sessions/sess-1/court", `{"courtId":12}`).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPut, "/sessions/sess-1/date", `{"date":"2025-01-03"}`).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/sessions/sess-1/refresh", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodDelete, "/sessions/sess-1/selection", "").Code)

	assert.Equal(t, []string{"get", "court", "date", "refresh", "clear"}, svc.lastCalls)
	assert.Equal(t, int64(12), svc.gotCourt)
}

func TestServiceErrors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{sessions.ErrInvalidInput, http.StatusBadRequest},
		{sessions.ErrSessionNotFound, http.StatusNotFound},
		{sessions.ErrFacilityNotFound, http.StatusNotFound},
		{sessions.ErrCourtNotFound, http.StatusNotFound},
		{sessions.ErrAccessDenied, http.StatusForbidden},
		{sessions.ErrGridRefreshing, http.StatusConflict},
		{sessions.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := do(newRouter(&fakeService{err: tc.err}), http.MethodGet, "/sessions/sess-1", "")
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestMissingUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/sessions/sess-1", nil)
	rec := httptest.NewRecorder()
	newRouter(&fakeService{}).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
