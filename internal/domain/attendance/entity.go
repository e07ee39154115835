package attendance

import "time"

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half_day"
)

func (s Status) IsValid() bool {
	return s == StatusPresent || s == StatusAbsent || s == StatusHalfDay
}

// WorkerAttendance is one day's attendance mark. There is at most one per worker and date.
type WorkerAttendance struct {
	ID        string
	WorkerID  string
	Date      time.Time
	Status    Status
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	WorkerName *string
}
