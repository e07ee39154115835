package bill

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type BillItemRequest struct {
	ItemDate   string           `json:"item_date"`
	StartMeter *decimal.Decimal `json:"start_meter,omitempty"`
	EndMeter   *decimal.Decimal `json:"end_meter,omitempty"`
	TotalHours *decimal.Decimal `json:"total_hours,omitempty"`
	Rate       *decimal.Decimal `json:"rate,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	IsManual   bool             `json:"is_manual"`
	Remarks    *string          `json:"remarks,omitempty"`
}

// BillRequest is the body of both create and update.
type BillRequest struct {
	VehicleID    string            `json:"vehicle_id"`
	ClientID     string            `json:"client_id"`
	Month        int               `json:"month"`
	Year         int               `json:"year"`
	Rate         decimal.Decimal   `json:"rate"`
	PerDayKm     decimal.Decimal   `json:"per_day_km"`
	OvertimeRate decimal.Decimal   `json:"overtime_rate"`
	OvertimeKms  decimal.Decimal   `json:"overtime_kms"`
	Notes        *string           `json:"notes,omitempty"`
	Items        []BillItemRequest `json:"items"`
}

func (r *BillRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.VehicleID) {
		errs.Add("vehicle_id", "vehicle_id is required")
	}
	if validator.IsEmpty(r.ClientID) {
		errs.Add("client_id", "client_id is required")
	}
	if !validator.IsValidMonth(r.Month) {
		errs.Add("month", "month must be between 1 and 12")
	}
	if !validator.IsValidYear(r.Year) {
		errs.Add("year", "year is out of range")
	}
	if r.Rate.IsNegative() {
		errs.Add("rate", "rate must be non-negative")
	}
	if r.PerDayKm.IsNegative() {
		errs.Add("per_day_km", "per_day_km must be non-negative")
	}
	if r.OvertimeRate.IsNegative() {
		errs.Add("overtime_rate", "overtime_rate must be non-negative")
	}
	if r.OvertimeKms.IsNegative() {
		errs.Add("overtime_kms", "overtime_kms must be non-negative")
	}

	for i, item := range r.Items {
		field := fmt.Sprintf("items[%d]", i)
		d, ok := validator.IsValidDate(item.ItemDate)
		if !ok {
			errs.Add(field+".item_date", "item_date must be in YYYY-MM-DD format")
		} else if int(d.Month()) != r.Month || d.Year() != r.Year {
			errs.Add(field+".item_date", "item_date must fall inside the bill month")
		}
		if item.IsManual {
			if item.TotalHours == nil {
				errs.Add(field+".total_hours", "total_hours is required for manual items")
			} else if item.TotalHours.IsNegative() {
				errs.Add(field+".total_hours", "total_hours must be non-negative")
			}
			if item.Amount != nil && item.Amount.IsNegative() {
				errs.Add(field+".amount", "amount must be non-negative")
			}
		} else {
			if item.StartMeter == nil || item.EndMeter == nil {
				errs.Add(field, "start_meter and end_meter are required unless the item is manual")
			} else if item.EndMeter.LessThan(*item.StartMeter) {
				errs.Add(field+".end_meter", "end_meter must not be less than start_meter")
			}
			if item.Amount != nil {
				errs.Add(field+".amount", "amount can only be set on manual items")
			}
		}
		if item.Rate != nil && item.Rate.IsNegative() {
			errs.Add(field+".rate", "rate must be non-negative")
		}
	}

	return errs.Err()
}

// ToInput assumes Validate passed.
func (r *BillRequest) ToInput() BillInput {
	in := BillInput{
		VehicleID:    r.VehicleID,
		ClientID:     r.ClientID,
		Month:        r.Month,
		Year:         r.Year,
		Rate:         r.Rate,
		PerDayKm:     r.PerDayKm,
		OvertimeRate: r.OvertimeRate,
		OvertimeKms:  r.OvertimeKms,
		Notes:        r.Notes,
		Items:        make([]ItemInput, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		d, _ := validator.IsValidDate(item.ItemDate)
		in.Items = append(in.Items, ItemInput{
			ItemDate:   d,
			StartMeter: item.StartMeter,
			EndMeter:   item.EndMeter,
			Hours:      item.TotalHours,
			Rate:       item.Rate,
			Amount:     item.Amount,
			IsManual:   item.IsManual,
			Remarks:    item.Remarks,
		})
	}
	return in
}

type BillItemResponse struct {
	ID         string           `json:"id"`
	ItemDate   string           `json:"item_date"`
	StartMeter *decimal.Decimal `json:"start_meter,omitempty"`
	EndMeter   *decimal.Decimal `json:"end_meter,omitempty"`
	TotalHours decimal.Decimal  `json:"total_hours"`
	Rate       decimal.Decimal  `json:"rate"`
	Amount     decimal.Decimal  `json:"amount"`
	IsManual   bool             `json:"is_manual"`
	Remarks    *string          `json:"remarks,omitempty"`
}

type BillResponse struct {
	ID                    string             `json:"id"`
	VehicleID             string             `json:"vehicle_id"`
	VehicleRegistrationNo *string            `json:"vehicle_registration_no,omitempty"`
	ClientID              string             `json:"client_id"`
	ClientName            *string            `json:"client_name,omitempty"`
	Month                 int                `json:"month"`
	Year                  int                `json:"year"`
	Rate                  decimal.Decimal    `json:"rate"`
	PerDayKm              decimal.Decimal    `json:"per_day_km"`
	OvertimeRate          decimal.Decimal    `json:"overtime_rate"`
	OvertimeKms           decimal.Decimal    `json:"overtime_kms"`
	TotalHoursSum         decimal.Decimal    `json:"total_hours_sum"`
	OvertimeAmount        decimal.Decimal    `json:"overtime_amount"`
	TotalAmount           decimal.Decimal    `json:"total_amount"`
	Notes                 *string            `json:"notes,omitempty"`
	Items                 []BillItemResponse `json:"items,omitempty"`
	CreatedAt             string             `json:"created_at"`
}

func NewBillResponse(b MonthlyVehicleBill) BillResponse {
	resp := BillResponse{
		ID:                    b.ID,
		VehicleID:             b.VehicleID,
		VehicleRegistrationNo: b.VehicleRegistrationNo,
		ClientID:              b.ClientID,
		ClientName:            b.ClientName,
		Month:                 b.Month,
		Year:                  b.Year,
		Rate:                  b.Rate,
		PerDayKm:              b.PerDayKm,
		OvertimeRate:          b.OvertimeRate,
		OvertimeKms:           b.OvertimeKms,
		TotalHoursSum:         b.TotalHoursSum,
		OvertimeAmount:        b.OvertimeAmount,
		TotalAmount:           b.TotalAmount,
		Notes:                 b.Notes,
		CreatedAt:             b.CreatedAt.Format(time.RFC3339),
	}
	for _, item := range b.Items {
		resp.Items = append(resp.Items, BillItemResponse{
			ID:         item.ID,
			ItemDate:   item.ItemDate.Format(validator.DateLayout),
			StartMeter: item.StartMeter,
			EndMeter:   item.EndMeter,
			TotalHours: item.TotalHours,
			Rate:       item.Rate,
			Amount:     item.Amount,
			IsManual:   item.IsManual,
			Remarks:    item.Remarks,
		})
	}
	return resp
}

type BillFilter struct {
	VehicleID *string
	ClientID  *string
	Month     *int
	Year      *int
	Page      int
	Limit     int
}

type ListBillResponse struct {
	Data       []BillResponse `json:"data"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
}

type PrefillRequest struct {
	VehicleID string
	ClientID  string
	Month     int
	Year      int
}

func (r *PrefillRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.VehicleID) {
		errs.Add("vehicle_id", "vehicle_id is required")
	}
	if validator.IsEmpty(r.ClientID) {
		errs.Add("client_id", "client_id is required")
	}
	if !validator.IsValidMonth(r.Month) {
		errs.Add("month", "month must be between 1 and 12")
	}
	if !validator.IsValidYear(r.Year) {
		errs.Add("year", "year is out of range")
	}
	return errs.Err()
}

type PrefillResponse struct {
	VehicleID string            `json:"vehicle_id"`
	ClientID  string            `json:"client_id"`
	Month     int               `json:"month"`
	Year      int               `json:"year"`
	Items     []BillItemRequest `json:"items"`
}
