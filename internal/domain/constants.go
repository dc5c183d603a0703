package domain

import "time"

// Параметры сетки по умолчанию
const (
	SlotStepMinutes  = 30
	DefaultFirstHour = 5  // первый слот 05:00
	DefaultLastHour  = 23 // последний слот 23:30
	SlotHours        = 0.5

	DefaultLockHorizon = time.Hour // слот ближе часа от текущего момента не бронируется
)

// Пороги размера выбора, проверяются независимо
const (
	MinPricedSlots = 2 // минимум слотов для запроса цены
	MinSubmitSlots = 3 // минимум слотов для отправки брони
)

// Бизнес-ограничения
const (
	MaxNoteLength = 500
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
