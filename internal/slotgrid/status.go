package slotgrid

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// DeriveStatus вычисляет статус ячейки (корт, слот) на дату date
//
// Порядок проверок:
//  1. слот [t, t+30м) пересекается с любой бронью корта [start, end) -> booked
//  2. момент слота раньше now + 1 час (включая прошедшие) -> locked
//  3. слот выбран на этом корте -> selected
//  4. иначе available
//
// Сравнение идёт по абсолютным моментам, поэтому брони, не выровненные
// по границам слотов, тоже корректно закрывают все пересекающиеся слоты
func DeriveStatus(
	courtID int64,
	label types.TimeString,
	date time.Time,
	intervals domain.BookedIntervals,
	selection domain.SelectedRange,
	now time.Time,
) domain.SlotStatus {
	return deriveStatus(courtID, label, date, intervals, selection, now, domain.DefaultLockHorizon)
}

func deriveStatus(
	courtID int64,
	label types.TimeString,
	date time.Time,
	intervals domain.BookedIntervals,
	selection domain.SelectedRange,
	now time.Time,
	lockHorizon time.Duration,
) domain.SlotStatus {
	instant := label.On(date)
	slotEnd := instant.Add(domain.SlotStepMinutes * time.Minute)

	for _, interval := range intervals.ForCourt(courtID) {
		if interval.Overlaps(instant, slotEnd) {
			return domain.SlotBooked
		}
	}

	if instant.Before(now.Add(lockHorizon)) {
		return domain.SlotLocked
	}

	if selection.Contains(courtID, label) {
		return domain.SlotSelected
	}

	return domain.SlotAvailable
}
