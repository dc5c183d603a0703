package courtapi

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда площадка не найдена
	ErrFacilityNotFound = errors.New("courtapi: facility not found")

	// ErrBookingNotFound возвращается, когда бронь для оплаты не найдена
	ErrBookingNotFound = errors.New("courtapi: booking not found")

	// ErrSlotUnavailable возвращается, когда бэкенд отклонил бронь из-за занятого времени
	ErrSlotUnavailable = errors.New("courtapi: slot is no longer available")

	// ErrInternal возвращается при внутренних ошибках клиента (сеть, таймаут)
	ErrInternal = errors.New("courtapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от бэкенда
	ErrInvalidResponse = errors.New("courtapi client: invalid response")
)
