package submit_booking

import "time"

// Request модель запроса на отправку брони
type Request struct {
	SessionID string  // ID сессии выбора
	UserID    int64   // ID пользователя из заголовка
	Note      *string // Комментарий к брони (опционально)
}

// Response модель ответа после создания брони
type Response struct {
	ID                int64 // ID записи в журнале
	ExternalBookingID int64 // ID брони во внешнем бэкенде
	FacilityID        int64
	CourtID           int64
	StartAt           time.Time
	EndAt             time.Time
	Slots             []string // HH:MM
	TotalPrice        int64
	Note              *string
	Status            string
	PaymentURL        *string
	PaymentError      *string // заполнено, если оплату провести не удалось
	CreatedAt         time.Time
}
