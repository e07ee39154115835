package billing

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func mark(workerID, date string, status attendance.Status) attendance.WorkerAttendance {
	return attendance.WorkerAttendance{WorkerID: workerID, Date: day(date), Status: status}
}

func TestAggregateAttendance(t *testing.T) {
	records := []attendance.WorkerAttendance{
		mark("w1", "2024-03-01", attendance.StatusPresent),
		mark("w1", "2024-03-02", attendance.StatusPresent),
		mark("w1", "2024-03-03", attendance.StatusHalfDay),
		mark("w1", "2024-03-04", attendance.StatusAbsent),
		mark("w1", "2024-03-05", attendance.StatusHalfDay),
		mark("w1", "2024-03-31", attendance.StatusPresent),
		mark("w1", "2024-04-01", attendance.StatusPresent), // outside
		mark("w2", "2024-03-01", attendance.StatusPresent), // other worker
	}

	got := AggregateAttendance("w1", day("2024-03-01"), day("2024-03-31"), records)

	assert.Equal(t, 3, got.PresentDays)
	assert.Equal(t, 2, got.HalfDays)
	assert.Equal(t, 1, got.AbsentDays)
	assert.Equal(t, "4", got.WorkedDays.String())
	assert.Equal(t, "2024-03-01", got.PeriodFrom)
	assert.Equal(t, "2024-03-31", got.PeriodTo)
}

func TestAggregateAttendance_WorkedDaysFormula(t *testing.T) {
	var records []attendance.WorkerAttendance
	start := day("2024-01-01")
	for i := 0; i < 25; i++ {
		status := attendance.StatusPresent
		switch i % 5 {
		case 1:
			status = attendance.StatusHalfDay
		case 3:
			status = attendance.StatusAbsent
		}
		records = append(records, attendance.WorkerAttendance{WorkerID: "w", Date: start.AddDate(0, 0, i), Status: status})
	}

	got := AggregateAttendance("w", start, start.AddDate(0, 0, 24), records)

	want := dec("0.5").Mul(dec("5")).Add(dec("15"))
	assert.Equal(t, 15, got.PresentDays)
	assert.Equal(t, 5, got.HalfDays)
	assert.Equal(t, 5, got.AbsentDays)
	assert.True(t, want.Equal(got.WorkedDays), got.WorkedDays.String())
}

func TestAggregateAttendance_NoRecords(t *testing.T) {
	got := AggregateAttendance("w1", day("2024-03-01"), day("2024-03-31"), nil)
	assert.Zero(t, got.PresentDays)
	assert.Zero(t, got.HalfDays)
	assert.Zero(t, got.AbsentDays)
	assert.True(t, got.WorkedDays.IsZero())
}

func TestAggregateAttendance_DuplicateDateCountsOnce(t *testing.T) {
	records := []attendance.WorkerAttendance{
		mark("w1", "2024-03-01", attendance.StatusAbsent),
		mark("w1", "2024-03-01", attendance.StatusPresent),
	}
	got := AggregateAttendance("w1", day("2024-03-01"), day("2024-03-01"), records)
	assert.Equal(t, 1, got.PresentDays)
	assert.Equal(t, 0, got.AbsentDays)
}
