package salary

import (
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PaymentResponse struct {
	ID          string          `json:"id"`
	WorkerID    string          `json:"worker_id"`
	WorkerName  *string         `json:"worker_name,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"`
	PeriodFrom  string          `json:"period_from"`
	PeriodTo    string          `json:"period_to"`
	WorkedDays  decimal.Decimal `json:"worked_days"`
	Notes       *string         `json:"notes,omitempty"`
}

func NewPaymentResponse(p Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		WorkerID:    p.WorkerID,
		WorkerName:  p.WorkerName,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate.Format(validator.DateLayout),
		PeriodFrom:  p.PeriodFrom.Format(validator.DateLayout),
		PeriodTo:    p.PeriodTo.Format(validator.DateLayout),
		WorkedDays:  p.WorkedDays,
		Notes:       p.Notes,
	}
}

type CreatePaymentRequest struct {
	WorkerID    string          `json:"worker_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"`
	PeriodFrom  string          `json:"period_from"`
	PeriodTo    string          `json:"period_to"`
	// WorkedDays is taken from attendance over the period when omitted.
	WorkedDays *decimal.Decimal `json:"worked_days,omitempty"`
	Notes      *string          `json:"notes,omitempty"`
}

func (r *CreatePaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs.Add("worker_id", "worker_id is required")
	}
	if !validator.IsPositive(r.Amount) {
		errs.Add("amount", "amount must be greater than 0")
	}
	if _, ok := validator.IsValidDate(r.PaymentDate); !ok {
		errs.Add("payment_date", "payment_date must be in YYYY-MM-DD format")
	}
	if validator.IsEmpty(r.PeriodFrom) {
		errs.Add("period_from", "period_from is required")
	}
	if validator.IsEmpty(r.PeriodTo) {
		errs.Add("period_to", "period_to is required")
	}
	validator.ValidateDateRange(&errs, "period_from", r.PeriodFrom, "period_to", r.PeriodTo)
	if r.WorkedDays != nil && r.WorkedDays.IsNegative() {
		errs.Add("worked_days", "worked_days must be non-negative")
	}

	return errs.Err()
}

// ToEntity assumes Validate passed. WorkedDays is left zero when not supplied.
func (r *CreatePaymentRequest) ToEntity() Payment {
	paymentDate, _ := validator.IsValidDate(r.PaymentDate)
	from, _ := validator.IsValidDate(r.PeriodFrom)
	to, _ := validator.IsValidDate(r.PeriodTo)
	p := Payment{
		WorkerID:    r.WorkerID,
		Amount:      r.Amount,
		PaymentDate: paymentDate,
		PeriodFrom:  from,
		PeriodTo:    to,
		Notes:       r.Notes,
	}
	if r.WorkedDays != nil {
		p.WorkedDays = *r.WorkedDays
	}
	return p
}

type UpdatePaymentRequest struct {
	ID          string           `json:"-"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	PaymentDate *string          `json:"payment_date,omitempty"`
	PeriodFrom  *string          `json:"period_from,omitempty"`
	PeriodTo    *string          `json:"period_to,omitempty"`
	WorkedDays  *decimal.Decimal `json:"worked_days,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

// ApplyTo merges the request onto p and validates the result.
func (r *UpdatePaymentRequest) ApplyTo(p *Payment) error {
	var errs validator.ValidationErrors

	if r.Amount != nil {
		if !validator.IsPositive(*r.Amount) {
			errs.Add("amount", "amount must be greater than 0")
		}
		p.Amount = *r.Amount
	}
	if r.PaymentDate != nil {
		if d, ok := validator.IsValidDate(*r.PaymentDate); ok {
			p.PaymentDate = d
		} else {
			errs.Add("payment_date", "payment_date must be in YYYY-MM-DD format")
		}
	}
	if r.PeriodFrom != nil {
		if d, ok := validator.IsValidDate(*r.PeriodFrom); ok {
			p.PeriodFrom = d
		} else {
			errs.Add("period_from", "period_from must be in YYYY-MM-DD format")
		}
	}
	if r.PeriodTo != nil {
		if d, ok := validator.IsValidDate(*r.PeriodTo); ok {
			p.PeriodTo = d
		} else {
			errs.Add("period_to", "period_to must be in YYYY-MM-DD format")
		}
	}
	if r.WorkedDays != nil {
		if r.WorkedDays.IsNegative() {
			errs.Add("worked_days", "worked_days must be non-negative")
		}
		p.WorkedDays = *r.WorkedDays
	}
	if r.Notes != nil {
		p.Notes = r.Notes
	}
	if p.PeriodTo.Before(p.PeriodFrom) {
		errs.Add("period_to", "period_to must not be before period_from")
	}

	return errs.Err()
}

type PaymentFilter struct {
	WorkerID *string
	DateFrom *string
	DateTo   *string
	Page     int
	Limit    int
}

func (f *PaymentFilter) Validate() error {
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

type ListPaymentResponse struct {
	Data       []PaymentResponse `json:"data"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}
