package models

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

func (s BookingStatus) String() string {
	return string(s)
}

func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are allowed.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// BookingState is the filter accepted by booking list queries. APPROVED is
// intentionally not a state: approved bookings are reachable through ALL and
// the time windows only.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

var bookingStates = []BookingState{
	StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected,
}

// ParseBookingState matches raw case-insensitively against the known states.
// Surrounding whitespace is not stripped: " all " is an unknown state.
func ParseBookingState(raw string) (BookingState, bool) {
	upper := strings.ToUpper(raw)
	for _, s := range bookingStates {
		if string(s) == upper {
			return s, true
		}
	}
	return "", false
}

func (s BookingState) String() string {
	return string(s)
}

// Matches reports whether b falls into the state at the given instant.
// CURRENT is inclusive on both bounds, so CURRENT, PAST and FUTURE partition
// every booking with start < end.
func (s BookingState) Matches(b *Booking, now time.Time) bool {
	switch s {
	case StateAll:
		return true
	case StateCurrent:
		return !b.Start.After(now) && !b.End.Before(now)
	case StatePast:
		return b.End.Before(now)
	case StateFuture:
		return b.Start.After(now)
	case StateWaiting:
		return b.Status == StatusWaiting
	case StateRejected:
		return b.Status == StatusRejected
	default:
		return false
	}
}

const (
	// DefaultUserRateLimit количество запросов одного пользователя в окне
	DefaultUserRateLimit = 120

	// DefaultUserRateWindow окно ограничения частоты запросов
	DefaultUserRateWindow = 60 // 1 минута в секундах

	// ExportSheetName имя листа в XLSX-выгрузке бронирований
	ExportSheetName = "Bookings"
)
