package validator

import (
	"time"
	"unicode/utf8"
)

const DateLayout = "2006-01-02"

func EventName(name string) bool {
	return utf8.RuneCountInString(name) >= 1 && utf8.RuneCountInString(name) <= 100
}

func EventYear(year int) bool {
	return year >= 2000 && year <= 2100
}

// EventDates checks that the event does not end before it starts.
func EventDates(start, end time.Time) bool {
	return !end.Before(start)
}

// RegistrationWindow accepts an open-ended window, otherwise opens must not be after closes.
func RegistrationWindow(opens, closes *time.Time) bool {
	if opens == nil || closes == nil {
		return true
	}
	return !opens.After(*closes)
}
