package bill

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyVehicleBill is the monthly invoice for one vehicle hired by one client.
type MonthlyVehicleBill struct {
	ID             string
	VehicleID      string
	ClientID       string
	Month          int
	Year           int
	Rate           decimal.Decimal
	PerDayKm       decimal.Decimal
	OvertimeRate   decimal.Decimal
	OvertimeKms    decimal.Decimal
	TotalHoursSum  decimal.Decimal
	OvertimeAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	Notes          *string
	Items          []BillItem
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields
	VehicleRegistrationNo *string
	ClientName            *string
}

type BillItem struct {
	ID         string
	BillID     string
	ItemDate   time.Time
	StartMeter *decimal.Decimal
	EndMeter   *decimal.Decimal
	TotalHours decimal.Decimal
	Rate       decimal.Decimal
	Amount     decimal.Decimal
	IsManual   bool
	Remarks    *string
}

// BillInput is everything the bill builder needs. Identifiers are assumed resolved.
type BillInput struct {
	VehicleID    string
	ClientID     string
	Month        int
	Year         int
	Rate         decimal.Decimal
	PerDayKm     decimal.Decimal
	OvertimeRate decimal.Decimal
	OvertimeKms  decimal.Decimal
	Notes        *string
	Items        []ItemInput
}

// ItemInput is one day of a bill. Metered items derive hours from the meter pair;
// manual items carry Hours directly and may override Amount.
type ItemInput struct {
	ItemDate   time.Time
	StartMeter *decimal.Decimal
	EndMeter   *decimal.Decimal
	Hours      *decimal.Decimal
	Rate       *decimal.Decimal
	Amount     *decimal.Decimal
	IsManual   bool
	Remarks    *string
}
