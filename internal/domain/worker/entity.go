package worker

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryType decides how a worker's pay is calculated.
type SalaryType string

const (
	SalaryTypeDaily   SalaryType = "daily"
	SalaryTypeMonthly SalaryType = "monthly"
)

func (s SalaryType) IsValid() bool {
	return s == SalaryTypeDaily || s == SalaryTypeMonthly
}

type Worker struct {
	ID            string
	Name          string
	Phone         *string
	Role          *string // driver, operator, helper...
	SalaryType    SalaryType
	DailyRate     *decimal.Decimal
	MonthlySalary *decimal.Decimal
	IsActive      bool
	JoinedAt      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
