package domain

import "github.com/m04kA/SMC-CourtBooking/pkg/types"

// Facility площадка (клуб) с набором кортов
type Facility struct {
	ID         int64
	Name       string
	OpenTime   types.TimeString // приходит как HH:mm:ss
	CloseTime  types.TimeString
	MinPrice   int64
	MaxPrice   int64
	CourtCount int
	CourtIDs   []int64 // порядок отображения, не связан со значением ID
}

// HasCourt проверяет, что корт принадлежит площадке
func (f *Facility) HasCourt(courtID int64) bool {
	for _, id := range f.CourtIDs {
		if id == courtID {
			return true
		}
	}
	return false
}

// FirstCourt возвращает первый корт в порядке отображения
func (f *Facility) FirstCourt() (int64, bool) {
	if len(f.CourtIDs) == 0 {
		return 0, false
	}
	return f.CourtIDs[0], true
}
