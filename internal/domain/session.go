package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// PriceState цена текущего выбора
// Token растёт при каждом запросе цены и каждом изменении выбора,
// ответ применяется только если его токен всё ещё последний
type PriceState struct {
	Token   uint64 `json:"token"`
	Pending bool   `json:"pending"`
	Priced  bool   `json:"priced"`
	Amount  int64  `json:"amount"`
}

// SelectionState сериализуемое состояние выбора слотов
type SelectionState struct {
	CourtID int64              `json:"courtId"`
	Phase   string             `json:"phase"` // idle | anchoring
	Anchor  types.TimeString   `json:"anchor"`
	Slots   []types.TimeString `json:"slots"`
	Price   PriceState         `json:"price"`
}

// BookingSession сессия выбора времени на площадке для одного пользователя
type BookingSession struct {
	ID         string
	UserID     int64
	FacilityID int64
	Facility   Facility
	Date       time.Time // полночь даты в часовом поясе площадки
	Intervals  BookedIntervals
	LoadedAt   time.Time // момент получения Intervals

	// Обновление занятости: ответ применяется, только если RefreshSeq не изменился
	Refreshing       bool
	RefreshSeq       uint64
	PendingDate      time.Time
	RefreshStartedAt time.Time

	Selection SelectionState

	// Токен цены, запрос по которому завершился ошибкой
	PriceFailedToken uint64
	PriceRequestedAt time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
