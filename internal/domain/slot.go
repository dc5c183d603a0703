package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// SlotStatus отображаемый статус ячейки сетки (корт × слот)
// Никогда не хранится, всегда вычисляется заново
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
	SlotLocked    SlotStatus = "locked"
	SlotSelected  SlotStatus = "selected"
)

// IsBlocked true для статусов, через которые нельзя выбирать
func (s SlotStatus) IsBlocked() bool {
	return s == SlotBooked || s == SlotLocked
}

// BookedInterval существующая бронь корта, полуоткрытый интервал [Start, End)
type BookedInterval struct {
	Start time.Time
	End   time.Time
}

// Contains проверяет, попадает ли момент t в [Start, End)
// Момент, равный End, интервалу не принадлежит
func (i BookedInterval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Overlaps проверяет пересечение с полуоткрытым интервалом [from, to)
// Интервалы, которые только граничат, не пересекаются
func (i BookedInterval) Overlaps(from, to time.Time) bool {
	return i.Start.Before(to) && i.End.After(from)
}

// BookedIntervals брони на дату по ID корта
// Отсутствие ключа означает, что броней у корта нет
type BookedIntervals map[int64][]BookedInterval

// ForCourt возвращает брони корта (nil для неизвестного корта)
func (b BookedIntervals) ForCourt(courtID int64) []BookedInterval {
	if b == nil {
		return nil
	}
	return b[courtID]
}

// SelectedRange текущий выбор пользователя на активном корте
type SelectedRange struct {
	CourtID int64
	Slots   []types.TimeString
}

// Contains проверяет, что слот выбран на указанном корте
func (r SelectedRange) Contains(courtID int64, slot types.TimeString) bool {
	if r.CourtID != courtID {
		return false
	}
	for _, s := range r.Slots {
		if s == slot {
			return true
		}
	}
	return false
}
