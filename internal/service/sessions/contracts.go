package sessions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// SessionRepository хранилище сессий
type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.BookingSession, error)
	Save(ctx context.Context, s *domain.BookingSession) error
	Delete(ctx context.Context, id string) error
}

// CourtAPIClient интерфейс клиента бэкенда площадок
type CourtAPIClient interface {
	GetFacility(ctx context.Context, facilityID int64) (*domain.Facility, error)
	GetCourts(ctx context.Context, facilityID int64) ([]int64, error)
	GetBookedIntervals(ctx context.Context, facilityID int64, date time.Time) (domain.BookedIntervals, error)
	GetPrice(ctx context.Context, courtID int64, start, end time.Time) (int64, error)
}

// Metrics счётчики событий сессий
type Metrics interface {
	ObserveClick(outcome string)
	ObservePriceLookup(result string)
	ObserveRefresh(result string)
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
