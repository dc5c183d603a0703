package courtapi

// Facility площадка в формате бэкенда
type Facility struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	OpenTime   string `json:"openTime"`  // "05:00:00"
	CloseTime  string `json:"closeTime"` // "23:30:00"
	MinPrice   int64  `json:"minPrice"`
	MaxPrice   int64  `json:"maxPrice"`
	CourtCount int    `json:"courtCount"`
}

// Court корт площадки
type Court struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookedSlots брони корта на дату: параллельные массивы начал и концов (ISO-8601)
type BookedSlots struct {
	StartTimes []string `json:"startTimes"`
	EndTimes   []string `json:"endTimes"`
}

// PriceRequest запрос цены; начало и конец обёрнуты в массивы из одного элемента
type PriceRequest struct {
	CourtID   int64    `json:"courtId"`
	StartTime []string `json:"startTime"`
	EndTime   []string `json:"endTime"`
}

// PriceResponse ответ с итоговой ценой (целое число, донги)
type PriceResponse struct {
	TotalPrice int64 `json:"totalPrice"`
}

// CreateBookingRequest запрос на создание брони
type CreateBookingRequest struct {
	CourtID    int64    `json:"courtId"`
	Note       string   `json:"note"`
	TotalPrice int64    `json:"totalPrice"`
	StartTime  []string `json:"startTime"`
	EndTime    []string `json:"endTime"`
}

// CreateBookingResponse ответ с ID созданной брони
type CreateBookingResponse struct {
	BookingID int64 `json:"bookingId"`
}

// PaymentResponse ответ на запрос оплаты
type PaymentResponse struct {
	PaymentURL string `json:"paymentUrl"`
}

// ErrorResponse модель ошибки бэкенда
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
