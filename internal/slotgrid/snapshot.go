package slotgrid

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// Snapshot контекст одного вычисления сетки: дата, загруженные брони и текущий момент
type Snapshot struct {
	Date        time.Time
	Intervals   domain.BookedIntervals
	Now         time.Time
	LockHorizon time.Duration // 0 = domain.DefaultLockHorizon
}

// CourtRow статусы всех слотов одного корта
type CourtRow struct {
	CourtID  int64
	Statuses []domain.SlotStatus // в порядке labels
}

func (s Snapshot) horizon() time.Duration {
	if s.LockHorizon <= 0 {
		return domain.DefaultLockHorizon
	}
	return s.LockHorizon
}

// Status статус ячейки с учётом выбора
func (s Snapshot) Status(courtID int64, label types.TimeString, selection domain.SelectedRange) domain.SlotStatus {
	return deriveStatus(courtID, label, s.Date, s.Intervals, selection, s.Now, s.horizon())
}

// IsBlocked true, если слот занят или заблокирован по времени
func (s Snapshot) IsBlocked(courtID int64, label types.TimeString) bool {
	return s.Status(courtID, label, domain.SelectedRange{}).IsBlocked()
}

// Grid строит матрицу статусов для всех кортов в порядке отображения
func (s Snapshot) Grid(courtIDs []int64, labels []types.TimeString, selection domain.SelectedRange) []CourtRow {
	rows := make([]CourtRow, len(courtIDs))

	for i, courtID := range courtIDs {
		statuses := make([]domain.SlotStatus, len(labels))
		for j, label := range labels {
			statuses[j] = s.Status(courtID, label, selection)
		}
		rows[i] = CourtRow{CourtID: courtID, Statuses: statuses}
	}

	return rows
}
