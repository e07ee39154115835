package expense

import (
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ExpenseResponse struct {
	ID                    string          `json:"id"`
	VehicleID             string          `json:"vehicle_id"`
	VehicleRegistrationNo *string         `json:"vehicle_registration_no,omitempty"`
	Category              string          `json:"category"`
	Amount                decimal.Decimal `json:"amount"`
	Date                  string          `json:"date"`
	DateTo                *string         `json:"date_to,omitempty"`
	Description           *string         `json:"description,omitempty"`
	ReceiptURL            *string         `json:"receipt_url,omitempty"`
}

// NewExpenseResponse maps e; urlFor turns a stored receipt path into a public URL.
func NewExpenseResponse(e VehicleExpense, urlFor func(string) string) ExpenseResponse {
	resp := ExpenseResponse{
		ID:                    e.ID,
		VehicleID:             e.VehicleID,
		VehicleRegistrationNo: e.VehicleRegistrationNo,
		Category:              e.Category,
		Amount:                e.Amount,
		Date:                  e.Date.Format(validator.DateLayout),
		Description:           e.Description,
	}
	if e.DateTo != nil {
		s := e.DateTo.Format(validator.DateLayout)
		resp.DateTo = &s
	}
	if e.ReceiptPath != nil && urlFor != nil {
		u := urlFor(*e.ReceiptPath)
		resp.ReceiptURL = &u
	}
	return resp
}

type CreateExpenseRequest struct {
	VehicleID   string          `json:"vehicle_id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	DateTo      *string         `json:"date_to,omitempty"`
	Description *string         `json:"description,omitempty"`
}

func (r *CreateExpenseRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.VehicleID) {
		errs.Add("vehicle_id", "vehicle_id is required")
	}
	if validator.IsEmpty(r.Category) {
		errs.Add("category", "category is required")
	}
	if len(r.Category) > 50 {
		errs.Add("category", "category must not exceed 50 characters")
	}
	if !validator.IsPositive(r.Amount) {
		errs.Add("amount", "amount must be greater than 0")
	}
	dateTo := ""
	if r.DateTo != nil {
		dateTo = *r.DateTo
	}
	if validator.IsEmpty(r.Date) {
		errs.Add("date", "date is required")
	} else {
		validator.ValidateDateRange(&errs, "date", r.Date, "date_to", dateTo)
	}

	return errs.Err()
}

type UpdateExpenseRequest struct {
	ID          string           `json:"-"`
	VehicleID   *string          `json:"vehicle_id,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Date        *string          `json:"date,omitempty"`
	DateTo      *string          `json:"date_to,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// ApplyTo merges the request onto e and validates the result. An empty date_to clears it.
func (r *UpdateExpenseRequest) ApplyTo(e *VehicleExpense) error {
	var errs validator.ValidationErrors

	if r.VehicleID != nil {
		if validator.IsEmpty(*r.VehicleID) {
			errs.Add("vehicle_id", "vehicle_id must not be empty")
		}
		e.VehicleID = *r.VehicleID
	}
	if r.Category != nil {
		if validator.IsEmpty(*r.Category) {
			errs.Add("category", "category must not be empty")
		}
		e.Category = *r.Category
	}
	if r.Amount != nil {
		if !validator.IsPositive(*r.Amount) {
			errs.Add("amount", "amount must be greater than 0")
		}
		e.Amount = *r.Amount
	}
	if r.Date != nil {
		d, ok := validator.IsValidDate(*r.Date)
		if !ok {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		} else {
			e.Date = d
		}
	}
	if r.DateTo != nil {
		if *r.DateTo == "" {
			e.DateTo = nil
		} else if d, ok := validator.IsValidDate(*r.DateTo); !ok {
			errs.Add("date_to", "date_to must be in YYYY-MM-DD format")
		} else {
			e.DateTo = &d
		}
	}
	if r.Description != nil {
		e.Description = r.Description
	}
	if e.DateTo != nil && e.DateTo.Before(e.Date) {
		errs.Add("date_to", "date_to must not be before date")
	}

	return errs.Err()
}

type ExpenseFilter struct {
	VehicleID *string
	Category  *string
	DateFrom  *string
	DateTo    *string
	Page      int
	Limit     int
}

func (f *ExpenseFilter) Validate() error {
	var errs validator.ValidationErrors
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

type ListExpenseResponse struct {
	Data       []ExpenseResponse `json:"data"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}
