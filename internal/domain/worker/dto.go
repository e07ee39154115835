package worker

import (
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type WorkerResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Phone         *string          `json:"phone,omitempty"`
	Role          *string          `json:"role,omitempty"`
	SalaryType    string           `json:"salary_type"`
	DailyRate     *decimal.Decimal `json:"daily_rate,omitempty"`
	MonthlySalary *decimal.Decimal `json:"monthly_salary,omitempty"`
	IsActive      bool             `json:"is_active"`
	JoinedAt      *string          `json:"joined_at,omitempty"`
}

func NewWorkerResponse(w Worker) WorkerResponse {
	var joinedAt *string
	if w.JoinedAt != nil {
		s := w.JoinedAt.Format(validator.DateLayout)
		joinedAt = &s
	}
	return WorkerResponse{
		ID:            w.ID,
		Name:          w.Name,
		Phone:         w.Phone,
		Role:          w.Role,
		SalaryType:    string(w.SalaryType),
		DailyRate:     w.DailyRate,
		MonthlySalary: w.MonthlySalary,
		IsActive:      w.IsActive,
		JoinedAt:      joinedAt,
	}
}

type CreateWorkerRequest struct {
	Name          string           `json:"name"`
	Phone         *string          `json:"phone,omitempty"`
	Role          *string          `json:"role,omitempty"`
	SalaryType    string           `json:"salary_type"`
	DailyRate     *decimal.Decimal `json:"daily_rate,omitempty"`
	MonthlySalary *decimal.Decimal `json:"monthly_salary,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"`
	JoinedAt      *string          `json:"joined_at,omitempty"`
}

func (r *CreateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs.Add("phone", "phone must be a valid phone number")
	}
	validateSalary(&errs, SalaryType(r.SalaryType), r.DailyRate, r.MonthlySalary)
	if r.JoinedAt != nil {
		if _, ok := validator.IsValidDate(*r.JoinedAt); !ok {
			errs.Add("joined_at", "joined_at must be in YYYY-MM-DD format")
		}
	}

	return errs.Err()
}

type UpdateWorkerRequest struct {
	ID            string           `json:"-"`
	Name          *string          `json:"name,omitempty"`
	Phone         *string          `json:"phone,omitempty"`
	Role          *string          `json:"role,omitempty"`
	SalaryType    *string          `json:"salary_type,omitempty"`
	DailyRate     *decimal.Decimal `json:"daily_rate,omitempty"`
	MonthlySalary *decimal.Decimal `json:"monthly_salary,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"`
	JoinedAt      *string          `json:"joined_at,omitempty"`
}

// ApplyTo merges the request onto w and validates the merged salary configuration.
func (r *UpdateWorkerRequest) ApplyTo(w *Worker) error {
	var errs validator.ValidationErrors

	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs.Add("name", "name must not be empty")
		}
		w.Name = *r.Name
	}
	if r.Phone != nil {
		if !validator.IsValidPhoneNumber(*r.Phone) {
			errs.Add("phone", "phone must be a valid phone number")
		}
		w.Phone = r.Phone
	}
	if r.Role != nil {
		w.Role = r.Role
	}
	if r.SalaryType != nil {
		w.SalaryType = SalaryType(*r.SalaryType)
	}
	if r.DailyRate != nil {
		w.DailyRate = r.DailyRate
	}
	if r.MonthlySalary != nil {
		w.MonthlySalary = r.MonthlySalary
	}
	if r.IsActive != nil {
		w.IsActive = *r.IsActive
	}
	if r.JoinedAt != nil {
		d, ok := validator.IsValidDate(*r.JoinedAt)
		if !ok {
			errs.Add("joined_at", "joined_at must be in YYYY-MM-DD format")
		} else {
			w.JoinedAt = &d
		}
	}
	validateSalary(&errs, w.SalaryType, w.DailyRate, w.MonthlySalary)

	return errs.Err()
}

func validateSalary(errs *validator.ValidationErrors, salaryType SalaryType, dailyRate, monthlySalary *decimal.Decimal) {
	switch salaryType {
	case SalaryTypeDaily:
		if dailyRate == nil || !validator.IsPositive(*dailyRate) {
			errs.Add("daily_rate", "daily_rate must be greater than 0 for daily workers")
		}
	case SalaryTypeMonthly:
		if monthlySalary == nil || !validator.IsPositive(*monthlySalary) {
			errs.Add("monthly_salary", "monthly_salary must be greater than 0 for monthly workers")
		}
	default:
		errs.Add("salary_type", "salary_type must be 'daily' or 'monthly'")
	}
}

type WorkerFilter struct {
	SalaryType *string
	IsActive   *bool
	Search     *string
	Page       int
	Limit      int
}

type ListWorkerResponse struct {
	Data       []WorkerResponse `json:"data"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}
