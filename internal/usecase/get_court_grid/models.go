package get_court_grid

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// Request модель запроса сетки
type Request struct {
	FacilityID int64     // ID площадки
	Date       time.Time // Дата (без времени)
}

// CourtRow статусы слотов одного корта
type CourtRow struct {
	CourtID  int64
	Statuses []domain.SlotStatus // в порядке Labels
}

// Response сетка статусов всех кортов площадки
type Response struct {
	Facility    domain.Facility
	Date        time.Time
	Labels      []types.TimeString
	Courts      []CourtRow
	GeneratedAt time.Time // момент, на который вычислены статусы
}
