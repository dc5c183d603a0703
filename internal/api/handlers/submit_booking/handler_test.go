package submit_booking

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
	submitBooking "github.com/m04kA/SMC-CourtBooking/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
	"github.com/m04kA/SMC-CourtBooking/pkg/ptr"
)

type fakeUseCase struct {
	got *submitBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *submitBooking.Request) (*submitBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	start := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	return &submitBooking.Response{
		ID:           1,
		CourtID:      11,
		StartAt:      start,
		EndAt:        start.Add(90 * time.Minute),
		Slots:        []string{"10:00", "10:30", "11:00"},
		TotalPrice:   150000,
		Status:       "payment_failed",
		PaymentError: ptr.Ptr("оплата не прошла"),
	}, nil
}

func serve(uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/sessions/{sessionId}/submit", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/sessions/sess-1/submit", strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, "42")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, `{"note":"đôi nam"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, "sess-1", uc.got.SessionID)
	assert.Equal(t, int64(42), uc.got.UserID)
	require.NotNil(t, uc.got.Note)
	assert.Equal(t, "đôi nam", *uc.got.Note)

	var body BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "10:00", body.StartTime)
	assert.Equal(t, "11:30", body.EndTime)
	assert.Equal(t, "payment_failed", body.Status)
	assert.NotNil(t, body.PaymentError)
}

func TestHandle_EmptyBody(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Nil(t, uc.got.Note)
}

func TestHandle_Errors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{submitBooking.ErrInvalidInput, http.StatusBadRequest},
		{submitBooking.ErrSessionNotFound, http.StatusNotFound},
		{submitBooking.ErrAccessDenied, http.StatusForbidden},
		{submitBooking.ErrNotSubmittable, http.StatusConflict},
		{submitBooking.ErrNotPriced, http.StatusConflict},
		{submitBooking.ErrGridRefreshing, http.StatusConflict},
		{submitBooking.ErrSlotNotAvailable, http.StatusConflict},
		{submitBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.want, serve(&fakeUseCase{err: tc.err}, "{}").Code)
		})
	}
}
