package attendance

import "errors"

var (
	ErrAttendanceNotFound        = errors.New("attendance record not found")
	ErrAttendanceAlreadyRecorded = errors.New("attendance already recorded for this worker and date")
)
