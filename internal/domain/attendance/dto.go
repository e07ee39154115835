package attendance

import (
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
)

type AttendanceResponse struct {
	ID         string  `json:"id"`
	WorkerID   string  `json:"worker_id"`
	WorkerName *string `json:"worker_name,omitempty"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes,omitempty"`
}

func NewAttendanceResponse(a WorkerAttendance) AttendanceResponse {
	return AttendanceResponse{
		ID:         a.ID,
		WorkerID:   a.WorkerID,
		WorkerName: a.WorkerName,
		Date:       a.Date.Format(validator.DateLayout),
		Status:     string(a.Status),
		Notes:      a.Notes,
	}
}

type MarkAttendanceRequest struct {
	WorkerID string  `json:"worker_id"`
	Date     string  `json:"date"`
	Status   string  `json:"status"`
	Notes    *string `json:"notes,omitempty"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs.Add("worker_id", "worker_id is required")
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	if !Status(r.Status).IsValid() {
		errs.Add("status", "status must be one of present, absent, half_day")
	}

	return errs.Err()
}

// ToEntity assumes Validate passed.
func (r *MarkAttendanceRequest) ToEntity() WorkerAttendance {
	date, _ := validator.IsValidDate(r.Date)
	return WorkerAttendance{
		WorkerID: r.WorkerID,
		Date:     date,
		Status:   Status(r.Status),
		Notes:    r.Notes,
	}
}

type BulkMarkEntry struct {
	WorkerID string  `json:"worker_id"`
	Status   string  `json:"status"`
	Notes    *string `json:"notes,omitempty"`
}

// BulkMarkAttendanceRequest marks many workers for a single date.
type BulkMarkAttendanceRequest struct {
	Date    string          `json:"date"`
	Entries []BulkMarkEntry `json:"entries"`
}

func (r *BulkMarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	if len(r.Entries) == 0 {
		errs.Add("entries", "at least one entry is required")
	}
	seen := make(map[string]bool, len(r.Entries))
	for _, e := range r.Entries {
		if validator.IsEmpty(e.WorkerID) {
			errs.Add("entries.worker_id", "worker_id is required")
			continue
		}
		if seen[e.WorkerID] {
			errs.Add("entries.worker_id", "worker "+e.WorkerID+" appears more than once")
		}
		seen[e.WorkerID] = true
		if !Status(e.Status).IsValid() {
			errs.Add("entries.status", "status must be one of present, absent, half_day")
		}
	}

	return errs.Err()
}

type AttendanceFilter struct {
	WorkerID *string
	Status   *string
	DateFrom *string
	DateTo   *string
	Page     int
	Limit    int
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs.Add("limit", "limit must not exceed 100")
	}
	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs.Add("status", "status must be one of present, absent, half_day")
	}
	var from, to string
	if f.DateFrom != nil {
		from = *f.DateFrom
	}
	if f.DateTo != nil {
		to = *f.DateTo
	}
	validator.ValidateDateRange(&errs, "date_from", from, "date_to", to)

	return errs.Err()
}

type ListAttendanceResponse struct {
	Data       []AttendanceResponse `json:"data"`
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
}

// SummaryRequest asks for the attendance tally of one worker. Empty dates default
// to the current month up to today.
type SummaryRequest struct {
	WorkerID string
	From     string
	To       string
}

// Resolve validates the request and returns the period, applying the default range.
func (r *SummaryRequest) Resolve(now time.Time) (time.Time, time.Time, error) {
	var errs validator.ValidationErrors
	from, to := validator.ValidateDateRange(&errs, "from", r.From, "to", r.To)
	if err := errs.Err(); err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, end := validator.DefaultRange(now, from, to)
	return start, end, nil
}
