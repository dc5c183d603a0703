package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// BookingStatus статус брони в локальном журнале
// reserving - интервал занят в журнале, бронь в бэкенде ещё не создана;
// rejected - бэкенд бронь не создал, интервал свободен
type BookingStatus string

const (
	StatusReserving      BookingStatus = "reserving"
	StatusPendingPayment BookingStatus = "pending_payment"
	StatusPaid           BookingStatus = "paid"
	StatusPaymentFailed  BookingStatus = "payment_failed"
	StatusRejected       BookingStatus = "rejected"
)

// CourtBooking бронь, отправленная во внешний бэкенд через этот сервис
type CourtBooking struct {
	ID                int64
	ExternalBookingID int64 // ID брони во внешнем бэкенде, 0 пока бронь не создана
	SessionID         string
	UserID            int64
	FacilityID        int64
	CourtID           int64
	StartAt           time.Time
	EndAt             time.Time
	TotalPrice        int64
	Note              *string
	Status            BookingStatus
	PaymentURL        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPaid true, если оплата прошла
func (b *CourtBooking) IsPaid() bool {
	return b.Status == StatusPaid
}

// Hours длительность брони в часах
func (b *CourtBooking) Hours() float64 {
	return b.EndAt.Sub(b.StartAt).Hours()
}

// ValidStatuses все допустимые статусы
var ValidStatuses = []BookingStatus{
	StatusReserving,
	StatusPendingPayment,
	StatusPaid,
	StatusPaymentFailed,
	StatusRejected,
}

// IsValid проверяет, что статус входит в ValidStatuses
func (s BookingStatus) IsValid() bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// BookingDraft данные для создания брони из зафиксированного выбора
type BookingDraft struct {
	SessionID  string
	UserID     int64
	FacilityID int64
	CourtID    int64
	Date       time.Time
	StartAt    time.Time
	EndAt      time.Time
	Slots      []types.TimeString
	TotalPrice int64
}
