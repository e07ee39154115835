// Package billing holds the money arithmetic of the fleet: job pricing, attendance
// tallies, salary netting, client statements, vehicle reports, monthly bills and
// paysheets.
//
// Every function is pure. Callers fetch the records, pass them in, and persist or
// serialise what comes back. Amounts leave this package rounded to two places.
package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

func round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// inRange reports whether the calendar date of t lies in [from, to].
func inRange(t, from, to time.Time) bool {
	d := dateOnly(t)
	return !d.Before(dateOnly(from)) && !d.After(dateOnly(to))
}

func valueOr(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
