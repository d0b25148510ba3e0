// Package tradingcal answers "is the venue in session" and "what trading
// day is it" for the Taiwan Stock Exchange. All date-scoped monitor state
// is keyed by the venue-local calendar day, never the server's.
package tradingcal

import (
	"time"
)

const (
	// Venue timezone.
	timezone = "Asia/Taipei"

	// TWSE regular session, venue-local.
	openHour    = 9
	closeHour   = 13
	closeMinute = 30
)

var venueLocation = mustLoadLocation(timezone)

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		// Asia/Taipei has no DST; a fixed offset is an exact fallback
		// for hosts without tzdata.
		return time.FixedZone("UTC+8", 8*60*60)
	}
	return loc
}

// InSession reports whether t falls inside TWSE trading hours:
// Monday to Friday, 09:00 to 13:30 inclusive, Taipei time.
func InSession(t time.Time) bool {
	local := t.In(venueLocation)

	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}

	hour, minute := local.Hour(), local.Minute()

	afterOpen := hour >= openHour
	beforeClose := hour < closeHour || (hour == closeHour && minute <= closeMinute)

	return afterOpen && beforeClose
}

// TradingDate returns the venue-local calendar day of t as YYYY-MM-DD.
func TradingDate(t time.Time) string {
	return t.In(venueLocation).Format("2006-01-02")
}
