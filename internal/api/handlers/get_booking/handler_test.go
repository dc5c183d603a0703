package get_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
)

type fakeService struct{ err error }

func (f fakeService) GetByID(_ context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, UserID: userID}, nil
}

func serve(svc BookingService, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/bookings/{bookingId}", NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set(middleware.UserIDHeader, "42")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	cases := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{"ok", "/bookings/1", nil, http.StatusOK},
		{"bad id", "/bookings/abc", nil, http.StatusBadRequest},
		{"not found", "/bookings/1", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"other user", "/bookings/1", bookings.ErrAccessDenied, http.StatusForbidden},
		{"db down", "/bookings/1", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, serve(fakeService{err: tc.err}, tc.target).Code)
		})
	}
}
