package slotgrid

import (
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// GenerateLabels генерирует фиксированную сетку получасовых слотов
// от firstHour:00 до lastHour:30 включительно (5..23 -> 05:00 ... 23:30)
func GenerateLabels(firstHour, lastHour int) ([]types.TimeString, error) {
	if firstHour < 0 || lastHour > 23 || firstHour > lastHour {
		return nil, fmt.Errorf("invalid grid hours %d..%d", firstHour, lastHour)
	}

	count := (lastHour - firstHour + 1) * 60 / domain.SlotStepMinutes
	labels := make([]types.TimeString, 0, count)

	for minutes := firstHour * 60; minutes < (lastHour+1)*60; minutes += domain.SlotStepMinutes {
		label, err := types.NewTimeStringFromMinutes(minutes)
		if err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}

	return labels, nil
}

// DefaultLabels сетка 05:00-23:30
func DefaultLabels() []types.TimeString {
	labels, _ := GenerateLabels(domain.DefaultFirstHour, domain.DefaultLastHour)
	return labels
}

// IndexOf возвращает позицию слота в сетке или -1
func IndexOf(labels []types.TimeString, slot types.TimeString) int {
	for i, l := range labels {
		if l == slot {
			return i
		}
	}
	return -1
}
