package billing

import (
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/job"
	"github.com/shopspring/decimal"
)

// RateBasis is the quantity a job's price is driven by.
type RateBasis int

const (
	BasisUnrecognized RateBasis = iota
	BasisHourly
	BasisPerTrip
	BasisPerKm
	BasisPerDay
)

func (b RateBasis) String() string {
	switch b {
	case BasisHourly:
		return "hourly"
	case BasisPerTrip:
		return "per_trip"
	case BasisPerKm:
		return "per_km"
	case BasisPerDay:
		return "per_day"
	}
	return "unrecognized"
}

// ResolveBasis maps a job and rate type to a pricing basis. JCB work is always
// priced by hours; lorry work by trips, kilometres or days.
func ResolveBasis(jobType job.JobType, rateType job.RateType) RateBasis {
	switch jobType {
	case job.JobTypeJCB:
		return BasisHourly
	case job.JobTypeLorry:
		switch rateType {
		case job.RateTypePerTrip:
			return BasisPerTrip
		case job.RateTypePerKm:
			return BasisPerKm
		case job.RateTypePerDay:
			return BasisPerDay
		}
	}
	return BasisUnrecognized
}

// ComputeJobTotal prices a job. Missing quantities count as zero. For an
// unrecognized basis current is returned untouched and the caller decides how to
// report it.
func ComputeJobTotal(jobType job.JobType, rateType job.RateType, rateAmount decimal.Decimal, q job.Quantities, current decimal.Decimal) (decimal.Decimal, RateBasis) {
	basis := ResolveBasis(jobType, rateType)

	var qty decimal.Decimal
	switch basis {
	case BasisHourly:
		qty = valueOr(q.Hours)
	case BasisPerTrip:
		if q.Trips != nil {
			qty = decimal.NewFromInt(int64(*q.Trips))
		}
	case BasisPerKm:
		qty = valueOr(q.DistanceKm)
	case BasisPerDay:
		qty = valueOr(q.Days)
	default:
		return current, basis
	}

	return round(rateAmount.Mul(qty)), basis
}

// HoursBetween returns the hours between two "HH:MM" clock readings. An end before
// the start is read as running past midnight.
func HoursBetween(start, end string) (decimal.Decimal, bool) {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return decimal.Zero, false
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return decimal.Zero, false
	}
	if e.Before(s) {
		e = e.Add(24 * time.Hour)
	}
	minutes := decimal.NewFromInt(int64(e.Sub(s) / time.Minute))
	return minutes.Div(decimal.NewFromInt(60)).Round(2), true
}
