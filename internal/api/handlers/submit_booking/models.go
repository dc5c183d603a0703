package submit_booking

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	submitBooking "github.com/m04kA/SMC-CourtBooking/internal/usecase/submit_booking"
)

// SubmitBookingRequest HTTP request model
type SubmitBookingRequest struct {
	Note *string `json:"note,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                int64    `json:"id"`
	ExternalBookingID int64    `json:"externalBookingId"`
	FacilityID        int64    `json:"facilityId"`
	CourtID           int64    `json:"courtId"`
	Date              string   `json:"date"`
	StartTime         string   `json:"startTime"`
	EndTime           string   `json:"endTime"`
	Slots             []string `json:"slots"`
	TotalPrice        int64    `json:"totalPrice"`
	Note              *string  `json:"note,omitempty"`
	Status            string   `json:"status"`
	PaymentURL        *string  `json:"paymentUrl,omitempty"`
	PaymentError      *string  `json:"paymentError,omitempty"`
	CreatedAt         string   `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                resp.ID,
		ExternalBookingID: resp.ExternalBookingID,
		FacilityID:        resp.FacilityID,
		CourtID:           resp.CourtID,
		Date:              resp.StartAt.Format(domain.DateFormat),
		StartTime:         resp.StartAt.Format(domain.TimeFormat),
		EndTime:           resp.EndAt.Format(domain.TimeFormat),
		Slots:             resp.Slots,
		TotalPrice:        resp.TotalPrice,
		Note:              resp.Note,
		Status:            resp.Status,
		PaymentURL:        resp.PaymentURL,
		PaymentError:      resp.PaymentError,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
	}
}
