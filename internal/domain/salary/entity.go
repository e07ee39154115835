package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is money paid to a worker against a pay period.
type Payment struct {
	ID          string
	WorkerID    string
	Amount      decimal.Decimal
	PaymentDate time.Time
	PeriodFrom  time.Time
	PeriodTo    time.Time
	WorkedDays  decimal.Decimal
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	WorkerName *string
}
