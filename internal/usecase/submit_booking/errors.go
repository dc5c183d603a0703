package submit_booking

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("submit_booking: session not found")

	// ErrAccessDenied возвращается, когда сессия принадлежит другому пользователю
	ErrAccessDenied = errors.New("submit_booking: access denied")

	// ErrNotSubmittable возвращается, когда выбор не зафиксирован или меньше трёх слотов
	ErrNotSubmittable = errors.New("submit_booking: selection is not submittable")

	// ErrNotPriced возвращается, когда цена выбора ещё не получена
	ErrNotPriced = errors.New("submit_booking: selection is not priced")

	// ErrGridRefreshing возвращается во время обновления занятости
	ErrGridRefreshing = errors.New("submit_booking: grid is refreshing")

	// ErrSlotNotAvailable возвращается, когда слот успели занять или он заблокирован по времени
	ErrSlotNotAvailable = errors.New("submit_booking: slot not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_booking: internal error")
)
