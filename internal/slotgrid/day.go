package slotgrid

import (
	"errors"
	"time"
)

// ErrPastDate дата раньше текущего дня площадки
var ErrPastDate = errors.New("slotgrid: date is in the past")

// Day приводит дату к полуночи в часовом поясе площадок и проверяет, что она не в прошлом
func Day(date, now time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)

	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	if day.Before(today) {
		return time.Time{}, ErrPastDate
	}

	return day, nil
}
