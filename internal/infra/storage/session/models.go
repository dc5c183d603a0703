package session

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

type facilityDTO struct {
	ID         int64            `json:"id"`
	Name       string           `json:"name"`
	OpenTime   types.TimeString `json:"openTime"`
	CloseTime  types.TimeString `json:"closeTime"`
	MinPrice   int64            `json:"minPrice"`
	MaxPrice   int64            `json:"maxPrice"`
	CourtCount int              `json:"courtCount"`
	CourtIDs   []int64          `json:"courtIds"`
}

type intervalDTO struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// sessionDTO формат хранения сессии в Redis
type sessionDTO struct {
	ID               string                  `json:"id"`
	UserID           int64                   `json:"userId"`
	FacilityID       int64                   `json:"facilityId"`
	Facility         facilityDTO             `json:"facility"`
	Date             time.Time               `json:"date"`
	Intervals        map[int64][]intervalDTO `json:"intervals"`
	LoadedAt         time.Time               `json:"loadedAt"`
	Refreshing       bool                    `json:"refreshing"`
	RefreshSeq       uint64                  `json:"refreshSeq"`
	PendingDate      time.Time               `json:"pendingDate"`
	RefreshStartedAt time.Time               `json:"refreshStartedAt"`
	Selection        domain.SelectionState   `json:"selection"`
	PriceFailedToken uint64                  `json:"priceFailedToken"`
	PriceRequestedAt time.Time               `json:"priceRequestedAt"`
	CreatedAt        time.Time               `json:"createdAt"`
	UpdatedAt        time.Time               `json:"updatedAt"`
}

func toDTO(s *domain.BookingSession) sessionDTO {
	intervals := make(map[int64][]intervalDTO, len(s.Intervals))
	for courtID, list := range s.Intervals {
		dtos := make([]intervalDTO, len(list))
		for i, interval := range list {
			dtos[i] = intervalDTO{Start: interval.Start, End: interval.End}
		}
		intervals[courtID] = dtos
	}

	return sessionDTO{
		ID:         s.ID,
		UserID:     s.UserID,
		FacilityID: s.FacilityID,
		Facility: facilityDTO{
			ID:         s.Facility.ID,
			Name:       s.Facility.Name,
			OpenTime:   s.Facility.OpenTime,
			CloseTime:  s.Facility.CloseTime,
			MinPrice:   s.Facility.MinPrice,
			MaxPrice:   s.Facility.MaxPrice,
			CourtCount: s.Facility.CourtCount,
			CourtIDs:   s.Facility.CourtIDs,
		},
		Date:             s.Date,
		Intervals:        intervals,
		LoadedAt:         s.LoadedAt,
		Refreshing:       s.Refreshing,
		RefreshSeq:       s.RefreshSeq,
		PendingDate:      s.PendingDate,
		RefreshStartedAt: s.RefreshStartedAt,
		Selection:        s.Selection,
		PriceFailedToken: s.PriceFailedToken,
		PriceRequestedAt: s.PriceRequestedAt,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// toDomain восстанавливает сессию; даты переводятся в loc,
// чтобы метки слотов раскладывались в часовом поясе площадки
func (d sessionDTO) toDomain(loc *time.Location) *domain.BookingSession {
	intervals := make(domain.BookedIntervals, len(d.Intervals))
	for courtID, dtos := range d.Intervals {
		list := make([]domain.BookedInterval, len(dtos))
		for i, dto := range dtos {
			list[i] = domain.BookedInterval{Start: dto.Start, End: dto.End}
		}
		intervals[courtID] = list
	}

	return &domain.BookingSession{
		ID:         d.ID,
		UserID:     d.UserID,
		FacilityID: d.FacilityID,
		Facility: domain.Facility{
			ID:         d.Facility.ID,
			Name:       d.Facility.Name,
			OpenTime:   d.Facility.OpenTime,
			CloseTime:  d.Facility.CloseTime,
			MinPrice:   d.Facility.MinPrice,
			MaxPrice:   d.Facility.MaxPrice,
			CourtCount: d.Facility.CourtCount,
			CourtIDs:   d.Facility.CourtIDs,
		},
		Date:             d.Date.In(loc),
		Intervals:        intervals,
		LoadedAt:         d.LoadedAt,
		Refreshing:       d.Refreshing,
		RefreshSeq:       d.RefreshSeq,
		PendingDate:      d.PendingDate.In(loc),
		RefreshStartedAt: d.RefreshStartedAt,
		Selection:        d.Selection,
		PriceFailedToken: d.PriceFailedToken,
		PriceRequestedAt: d.PriceRequestedAt,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}
