package submit_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// SessionService интерфейс сервиса сессий выбора
type SessionService interface {
	PrepareSubmission(ctx context.Context, id string, userID int64) (*domain.BookingDraft, error)
	CompleteSubmission(ctx context.Context, id string, userID int64, courtID int64, booked domain.BookedInterval) error
}

// CourtAPIClient интерфейс клиента бэкенда площадок
type CourtAPIClient interface {
	GetBookedIntervals(ctx context.Context, facilityID int64, date time.Time) (domain.BookedIntervals, error)
	CreateBooking(ctx context.Context, courtID int64, note string, totalPrice int64, start, end time.Time) (int64, error)
	CapturePayment(ctx context.Context, bookingID int64) (string, error)
}

// BookingRepository интерфейс журнала броней
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.CourtBooking) (*domain.CourtBooking, error)
	CountOverlapping(ctx context.Context, courtID int64, start, end, reservedSince time.Time) (int, error)
	AttachExternalBooking(ctx context.Context, id, externalBookingID int64) error
	UpdatePayment(ctx context.Context, id int64, status domain.BookingStatus, paymentURL *string) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики отправок
type Metrics interface {
	ObserveSubmission(result string)
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
