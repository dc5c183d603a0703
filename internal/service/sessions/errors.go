package sessions

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("session not found")

	// ErrFacilityNotFound возвращается, когда площадка не найдена
	ErrFacilityNotFound = errors.New("facility not found")

	// ErrCourtNotFound возвращается, когда корт не принадлежит площадке
	ErrCourtNotFound = errors.New("court not found")

	// ErrGridRefreshing возвращается на клик, пока занятость кортов обновляется
	ErrGridRefreshing = errors.New("grid is refreshing")

	// ErrNotSubmittable возвращается, когда выбор меньше минимального для брони
	ErrNotSubmittable = errors.New("selection is not submittable")

	// ErrNotPriced возвращается, когда цена выбора ещё не получена
	ErrNotPriced = errors.New("selection is not priced")

	// ErrAccessDenied возвращается, когда сессия принадлежит другому пользователю
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("sessions service: internal error")
)
