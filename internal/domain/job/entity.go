package job

import (
	"time"

	"github.com/shopspring/decimal"
)

type JobType string

const (
	JobTypeJCB   JobType = "jcb"
	JobTypeLorry JobType = "lorry"
)

func (t JobType) IsValid() bool {
	return t == JobTypeJCB || t == JobTypeLorry
}

// RateType is the pricing basis a job is billed on.
type RateType string

const (
	RateTypeHourly  RateType = "hourly"
	RateTypeDaily   RateType = "daily"
	RateTypePerTrip RateType = "per_trip"
	RateTypePerKm   RateType = "per_km"
	RateTypePerDay  RateType = "per_day"
)

func (r RateType) IsValid() bool {
	switch r {
	case RateTypeHourly, RateTypeDaily, RateTypePerTrip, RateTypePerKm, RateTypePerDay:
		return true
	}
	return false
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusPaid      Status = "paid"
)

func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusCompleted || s == StatusPaid
}

// Quantities holds the rate-affecting measures of a job. Only the field matching the
// rate basis is read; a nil field counts as zero.
type Quantities struct {
	Hours      *decimal.Decimal
	Trips      *int
	DistanceKm *decimal.Decimal
	Days       *decimal.Decimal
}

type Job struct {
	ID           string
	Type         JobType
	VehicleID    string
	ClientID     string
	WorkerID     *string
	Date         time.Time
	RateType     RateType
	RateAmount   decimal.Decimal
	StartTime    *string // HH:MM, jcb only
	EndTime      *string
	TotalHours   *decimal.Decimal
	Trips        *int
	DistanceKm   *decimal.Decimal
	Days         *decimal.Decimal
	FromLocation *string
	ToLocation   *string
	Material     *string
	TotalAmount  decimal.Decimal
	Status       Status
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	ClientName            *string
	VehicleRegistrationNo *string
	WorkerName            *string
}

func (j Job) Quantities() Quantities {
	return Quantities{
		Hours:      j.TotalHours,
		Trips:      j.Trips,
		DistanceKm: j.DistanceKm,
		Days:       j.Days,
	}
}
