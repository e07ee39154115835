package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// Suggested categories; any non-empty category is accepted.
const (
	CategoryFuel            = "fuel"
	CategoryMaintenance     = "maintenance"
	CategoryRepair          = "repair"
	CategoryInsurance       = "insurance"
	CategoryTax             = "tax"
	CategoryDriverAllowance = "driver_allowance"
	CategoryOther           = "other"
)

// VehicleExpense is a cost booked against a vehicle. Date is the start of the
// expense period when DateTo is set.
type VehicleExpense struct {
	ID          string
	VehicleID   string
	Category    string
	Amount      decimal.Decimal
	Date        time.Time
	DateTo      *time.Time
	Description *string
	ReceiptPath *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	VehicleRegistrationNo *string
}
