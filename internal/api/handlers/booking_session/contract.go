package booking_session

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/service/sessions/models"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

type SessionService interface {
	Start(ctx context.Context, userID, facilityID int64, date time.Time) (*models.SessionResponse, error)
	Get(ctx context.Context, id string, userID int64) (*models.SessionResponse, error)
	SelectCourt(ctx context.Context, id string, userID, courtID int64) (*models.SessionResponse, error)
	ChangeDate(ctx context.Context, id string, userID int64, date time.Time) (*models.SessionResponse, error)
	Refresh(ctx context.Context, id string, userID int64) (*models.SessionResponse, error)
	Click(ctx context.Context, id string, userID int64, slot types.TimeString) (*models.ClickResponse, error)
	Clear(ctx context.Context, id string, userID int64) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
