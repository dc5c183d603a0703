package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                int64   `json:"id"`
	ExternalBookingID int64   `json:"externalBookingId"`
	SessionID         string  `json:"sessionId,omitempty"`
	UserID            int64   `json:"userId"`
	FacilityID        int64   `json:"facilityId"`
	CourtID           int64   `json:"courtId"`
	Date              string  `json:"date"`      // "2025-10-15"
	StartTime         string  `json:"startTime"` // "10:00"
	EndTime           string  `json:"endTime"`   // "11:30"
	Hours             float64 `json:"hours"`
	TotalPrice        int64   `json:"totalPrice"`
	Status            string  `json:"status"`
	Note              *string `json:"note,omitempty"`
	PaymentURL        *string `json:"paymentUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.CourtBooking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                b.ID,
		ExternalBookingID: b.ExternalBookingID,
		SessionID:         b.SessionID,
		UserID:            b.UserID,
		FacilityID:        b.FacilityID,
		CourtID:           b.CourtID,
		Date:              b.StartAt.Format(domain.DateFormat),
		StartTime:         b.StartAt.Format(domain.TimeFormat),
		EndTime:           b.EndAt.Format(domain.TimeFormat),
		Hours:             b.Hours(),
		TotalPrice:        b.TotalPrice,
		Status:            string(b.Status),
		Note:              b.Note,
		PaymentURL:        b.PaymentURL,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.CourtBooking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
