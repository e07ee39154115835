package payment

import (
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PayableDTO struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

func (p *PayableDTO) toRef() *PayableRef {
	if p == nil {
		return nil
	}
	return &PayableRef{Kind: PayableKind(p.Type), ID: p.ID}
}

func (p *PayableDTO) validate(errs *validator.ValidationErrors) {
	if p == nil {
		return
	}
	if PayableKind(p.Type) != PayableKindJob {
		errs.Add("payable.type", "payable.type must be 'job'")
	}
	if validator.IsEmpty(p.ID) {
		errs.Add("payable.id", "payable.id is required")
	}
}

type PaymentResponse struct {
	ID         string          `json:"id"`
	ClientID   string          `json:"client_id"`
	ClientName *string         `json:"client_name,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
	Method     string          `json:"method"`
	Reference  *string         `json:"reference,omitempty"`
	Notes      *string         `json:"notes,omitempty"`
	Payable    *PayableDTO     `json:"payable,omitempty"`
}

func NewPaymentResponse(p Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:         p.ID,
		ClientID:   p.ClientID,
		ClientName: p.ClientName,
		Amount:     p.Amount,
		Date:       p.Date.Format(validator.DateLayout),
		Method:     string(p.Method),
		Reference:  p.Reference,
		Notes:      p.Notes,
	}
	if p.Payable != nil {
		resp.Payable = &PayableDTO{Type: string(p.Payable.Kind), ID: p.Payable.ID}
	}
	return resp
}

type CreatePaymentRequest struct {
	ClientID  string          `json:"client_id"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
	Method    string          `json:"method"`
	Reference *string         `json:"reference,omitempty"`
	Notes     *string         `json:"notes,omitempty"`
	Payable   *PayableDTO     `json:"payable,omitempty"`
}

func (r *CreatePaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ClientID) {
		errs.Add("client_id", "client_id is required")
	}
	if !validator.IsPositive(r.Amount) {
		errs.Add("amount", "amount must be greater than 0")
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	if !Method(r.Method).IsValid() {
		errs.Add("method", "method must be one of cash, bank_transfer, cheque, upi, other")
	}
	r.Payable.validate(&errs)

	return errs.Err()
}

// ToEntity assumes Validate passed.
func (r *CreatePaymentRequest) ToEntity() Payment {
	date, _ := validator.IsValidDate(r.Date)
	return Payment{
		ClientID:  r.ClientID,
		Amount:    r.Amount,
		Date:      date,
		Method:    Method(r.Method),
		Reference: r.Reference,
		Notes:     r.Notes,
		Payable:   r.Payable.toRef(),
	}
}

type UpdatePaymentRequest struct {
	ID        string           `json:"-"`
	ClientID  *string          `json:"client_id,omitempty"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Date      *string          `json:"date,omitempty"`
	Method    *string          `json:"method,omitempty"`
	Reference *string          `json:"reference,omitempty"`
	Notes     *string          `json:"notes,omitempty"`
	Payable   *PayableDTO      `json:"payable,omitempty"`
	// Unlink drops an existing job link.
	Unlink bool `json:"unlink,omitempty"`
}

// ApplyTo merges the request onto p and validates the result.
func (r *UpdatePaymentRequest) ApplyTo(p *Payment) error {
	var errs validator.ValidationErrors

	if r.ClientID != nil {
		if validator.IsEmpty(*r.ClientID) {
			errs.Add("client_id", "client_id must not be empty")
		}
		p.ClientID = *r.ClientID
	}
	if r.Amount != nil {
		if !validator.IsPositive(*r.Amount) {
			errs.Add("amount", "amount must be greater than 0")
		}
		p.Amount = *r.Amount
	}
	if r.Date != nil {
		d, ok := validator.IsValidDate(*r.Date)
		if !ok {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		} else {
			p.Date = d
		}
	}
	if r.Method != nil {
		if !Method(*r.Method).IsValid() {
			errs.Add("method", "method must be one of cash, bank_transfer, cheque, upi, other")
		}
		p.Method = Method(*r.Method)
	}
	if r.Reference != nil {
		p.Reference = r.Reference
	}
	if r.Notes != nil {
		p.Notes = r.Notes
	}
	if r.Unlink {
		p.Payable = nil
	}
	if r.Payable != nil {
		r.Payable.validate(&errs)
		p.Payable = r.Payable.toRef()
	}

	return errs.Err()
}

type PaymentFilter struct {
	ClientID *string
	JobID    *string
	Method   *string
	DateFrom *string
	DateTo   *string
	Page     int
	Limit    int
}

func (f *PaymentFilter) Validate() error {
	var errs validator.ValidationErrors
	if f.Method != nil && !Method(*f.Method).IsValid() {
		errs.Add("method", "method must be one of cash, bank_transfer, cheque, upi, other")
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

type ListPaymentResponse struct {
	Data       []PaymentResponse `json:"data"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}
