package get_court_grid

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// CourtAPIClient интерфейс клиента бэкенда площадок
type CourtAPIClient interface {
	GetFacility(ctx context.Context, facilityID int64) (*domain.Facility, error)
	GetCourts(ctx context.Context, facilityID int64) ([]int64, error)
	GetBookedIntervals(ctx context.Context, facilityID int64, date time.Time) (domain.BookedIntervals, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
