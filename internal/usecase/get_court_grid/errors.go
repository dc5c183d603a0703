package get_court_grid

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда площадка не найдена
	ErrFacilityNotFound = errors.New("get_court_grid: facility not found")

	// ErrInvalidDate возвращается для прошедшей даты
	ErrInvalidDate = errors.New("get_court_grid: invalid date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_court_grid: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_court_grid: internal error")
)
