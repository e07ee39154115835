package attendance

import "github.com/shopspring/decimal"

// Summary is the tally of a worker's attendance rows over a period. Dates
// without a row are not counted anywhere.
type Summary struct {
	WorkerID    string          `json:"worker_id"`
	PeriodFrom  string          `json:"period_from"`
	PeriodTo    string          `json:"period_to"`
	PresentDays int             `json:"present_days"`
	HalfDays    int             `json:"half_days"`
	AbsentDays  int             `json:"absent_days"`
	WorkedDays  decimal.Decimal `json:"worked_days"`
}
