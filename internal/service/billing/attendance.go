package billing

import (
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var half = decimal.RequireFromString("0.5")

// AggregateAttendance tallies the worker's records dated inside [from, to].
// Records of other workers or outside the period are ignored, and a date with no
// record counts nowhere. When a date appears twice the later record wins.
func AggregateAttendance(workerID string, from, to time.Time, records []attendance.WorkerAttendance) attendance.Summary {
	byDate := make(map[time.Time]attendance.Status)
	for _, r := range records {
		if r.WorkerID != workerID || !inRange(r.Date, from, to) {
			continue
		}
		byDate[dateOnly(r.Date)] = r.Status
	}

	s := attendance.Summary{
		WorkerID:   workerID,
		PeriodFrom: from.Format(validator.DateLayout),
		PeriodTo:   to.Format(validator.DateLayout),
	}
	for _, status := range byDate {
		switch status {
		case attendance.StatusPresent:
			s.PresentDays++
		case attendance.StatusHalfDay:
			s.HalfDays++
		case attendance.StatusAbsent:
			s.AbsentDays++
		}
	}
	s.WorkedDays = decimal.NewFromInt(int64(s.PresentDays)).
		Add(half.Mul(decimal.NewFromInt(int64(s.HalfDays))))

	return s
}
