package models

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// FacilityResponse метаданные площадки
type FacilityResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	OpenTime   string `json:"openTime,omitempty"`
	CloseTime  string `json:"closeTime,omitempty"`
	MinPrice   int64  `json:"minPrice"`
	MaxPrice   int64  `json:"maxPrice"`
	CourtCount int    `json:"courtCount"`
}

// CourtRowResponse статусы слотов одного корта в порядке Labels
type CourtRowResponse struct {
	CourtID  int64    `json:"courtId"`
	Statuses []string `json:"statuses"`
}

// SelectionResponse текущий выбор на активном корте
type SelectionResponse struct {
	CourtID      int64    `json:"courtId"`
	Phase        string   `json:"phase"`
	Anchor       *string  `json:"anchor,omitempty"`
	Slots        []string `json:"slots"`
	StartTime    *string  `json:"startTime,omitempty"` // начало первого слота, HH:MM
	EndTime      *string  `json:"endTime,omitempty"`   // конец последнего слота, HH:MM
	TotalHours   float64  `json:"totalHours"`
	Price        *int64   `json:"price,omitempty"`
	PricePending bool     `json:"pricePending"`
	PriceError   *string  `json:"priceError,omitempty"`
	CanPrice     bool     `json:"canPrice"`
	CanSubmit    bool     `json:"canSubmit"`
}

// SessionResponse состояние сессии выбора вместе с сеткой статусов
type SessionResponse struct {
	ID          string             `json:"id"`
	Facility    FacilityResponse   `json:"facility"`
	Date        string             `json:"date"`
	PendingDate *string            `json:"pendingDate,omitempty"` // дата, занятость которой загружается
	Labels      []string           `json:"labels"`
	Courts      []CourtRowResponse `json:"courts"`
	Selection   SelectionResponse  `json:"selection"`
	Refreshing  bool               `json:"refreshing"`
	LoadedAt    string             `json:"loadedAt"`
}

// ClickResponse результат клика и новое состояние
type ClickResponse struct {
	Outcome string          `json:"outcome"`
	Reason  string          `json:"reason,omitempty"`
	Session SessionResponse `json:"session"`
}

// FromDomainFacility конвертирует площадку
func FromDomainFacility(f domain.Facility) FacilityResponse {
	return FacilityResponse{
		ID:         f.ID,
		Name:       f.Name,
		OpenTime:   f.OpenTime.String(),
		CloseTime:  f.CloseTime.String(),
		MinPrice:   f.MinPrice,
		MaxPrice:   f.MaxPrice,
		CourtCount: f.CourtCount,
	}
}

// FormatLoadedAt формат момента загрузки занятости
func FormatLoadedAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
