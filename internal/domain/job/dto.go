package job

import (
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type JobResponse struct {
	ID                    string           `json:"id"`
	Type                  string           `json:"type"`
	VehicleID             string           `json:"vehicle_id"`
	VehicleRegistrationNo *string          `json:"vehicle_registration_no,omitempty"`
	ClientID              string           `json:"client_id"`
	ClientName            *string          `json:"client_name,omitempty"`
	WorkerID              *string          `json:"worker_id,omitempty"`
	WorkerName            *string          `json:"worker_name,omitempty"`
	Date                  string           `json:"date"`
	RateType              string           `json:"rate_type"`
	RateAmount            decimal.Decimal  `json:"rate_amount"`
	StartTime             *string          `json:"start_time,omitempty"`
	EndTime               *string          `json:"end_time,omitempty"`
	TotalHours            *decimal.Decimal `json:"total_hours,omitempty"`
	Trips                 *int             `json:"trips,omitempty"`
	DistanceKm            *decimal.Decimal `json:"distance_km,omitempty"`
	Days                  *decimal.Decimal `json:"days,omitempty"`
	FromLocation          *string          `json:"from_location,omitempty"`
	ToLocation            *string          `json:"to_location,omitempty"`
	Material              *string          `json:"material,omitempty"`
	TotalAmount           decimal.Decimal  `json:"total_amount"`
	Status                string           `json:"status"`
	Notes                 *string          `json:"notes,omitempty"`
}

func NewJobResponse(j Job) JobResponse {
	return JobResponse{
		ID:                    j.ID,
		Type:                  string(j.Type),
		VehicleID:             j.VehicleID,
		VehicleRegistrationNo: j.VehicleRegistrationNo,
		ClientID:              j.ClientID,
		ClientName:            j.ClientName,
		WorkerID:              j.WorkerID,
		WorkerName:            j.WorkerName,
		Date:                  j.Date.Format(validator.DateLayout),
		RateType:              string(j.RateType),
		RateAmount:            j.RateAmount,
		StartTime:             j.StartTime,
		EndTime:               j.EndTime,
		TotalHours:            j.TotalHours,
		Trips:                 j.Trips,
		DistanceKm:            j.DistanceKm,
		Days:                  j.Days,
		FromLocation:          j.FromLocation,
		ToLocation:            j.ToLocation,
		Material:              j.Material,
		TotalAmount:           j.TotalAmount,
		Status:                string(j.Status),
		Notes:                 j.Notes,
	}
}

func NewJobResponses(jobs []Job) []JobResponse {
	result := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		result = append(result, NewJobResponse(j))
	}
	return result
}

type CreateJobRequest struct {
	Type         string           `json:"type"`
	VehicleID    string           `json:"vehicle_id"`
	ClientID     string           `json:"client_id"`
	WorkerID     *string          `json:"worker_id,omitempty"`
	Date         string           `json:"date"`
	RateType     string           `json:"rate_type"`
	RateAmount   decimal.Decimal  `json:"rate_amount"`
	StartTime    *string          `json:"start_time,omitempty"`
	EndTime      *string          `json:"end_time,omitempty"`
	TotalHours   *decimal.Decimal `json:"total_hours,omitempty"`
	Trips        *int             `json:"trips,omitempty"`
	DistanceKm   *decimal.Decimal `json:"distance_km,omitempty"`
	Days         *decimal.Decimal `json:"days,omitempty"`
	FromLocation *string          `json:"from_location,omitempty"`
	ToLocation   *string          `json:"to_location,omitempty"`
	Material     *string          `json:"material,omitempty"`
	// TotalAmount is only kept when the rate basis is not one the calculator prices.
	TotalAmount *decimal.Decimal `json:"total_amount,omitempty"`
	Status      *string          `json:"status,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

func (r *CreateJobRequest) Validate() error {
	var errs validator.ValidationErrors

	if !JobType(r.Type).IsValid() {
		errs.Add("type", "type must be 'jcb' or 'lorry'")
	}
	if validator.IsEmpty(r.VehicleID) {
		errs.Add("vehicle_id", "vehicle_id is required")
	}
	if validator.IsEmpty(r.ClientID) {
		errs.Add("client_id", "client_id is required")
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	if !RateType(r.RateType).IsValid() {
		errs.Add("rate_type", "rate_type must be one of hourly, daily, per_trip, per_km, per_day")
	}
	if r.RateAmount.IsNegative() {
		errs.Add("rate_amount", "rate_amount must be non-negative")
	}
	if r.Status != nil && !Status(*r.Status).IsValid() {
		errs.Add("status", "status must be one of pending, completed, paid")
	}
	validateQuantities(&errs, r.StartTime, r.EndTime, r.TotalHours, r.Trips, r.DistanceKm, r.Days, r.TotalAmount)

	return errs.Err()
}

type UpdateJobRequest struct {
	ID           string           `json:"-"`
	Type         *string          `json:"type,omitempty"`
	VehicleID    *string          `json:"vehicle_id,omitempty"`
	ClientID     *string          `json:"client_id,omitempty"`
	WorkerID     *string          `json:"worker_id,omitempty"`
	Date         *string          `json:"date,omitempty"`
	RateType     *string          `json:"rate_type,omitempty"`
	RateAmount   *decimal.Decimal `json:"rate_amount,omitempty"`
	StartTime    *string          `json:"start_time,omitempty"`
	EndTime      *string          `json:"end_time,omitempty"`
	TotalHours   *decimal.Decimal `json:"total_hours,omitempty"`
	Trips        *int             `json:"trips,omitempty"`
	DistanceKm   *decimal.Decimal `json:"distance_km,omitempty"`
	Days         *decimal.Decimal `json:"days,omitempty"`
	FromLocation *string          `json:"from_location,omitempty"`
	ToLocation   *string          `json:"to_location,omitempty"`
	Material     *string          `json:"material,omitempty"`
	TotalAmount  *decimal.Decimal `json:"total_amount,omitempty"`
	Status       *string          `json:"status,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
}

func (r *UpdateJobRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Type != nil && !JobType(*r.Type).IsValid() {
		errs.Add("type", "type must be 'jcb' or 'lorry'")
	}
	if r.VehicleID != nil && validator.IsEmpty(*r.VehicleID) {
		errs.Add("vehicle_id", "vehicle_id must not be empty")
	}
	if r.ClientID != nil && validator.IsEmpty(*r.ClientID) {
		errs.Add("client_id", "client_id must not be empty")
	}
	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		}
	}
	if r.RateType != nil && !RateType(*r.RateType).IsValid() {
		errs.Add("rate_type", "rate_type must be one of hourly, daily, per_trip, per_km, per_day")
	}
	if r.RateAmount != nil && r.RateAmount.IsNegative() {
		errs.Add("rate_amount", "rate_amount must be non-negative")
	}
	if r.Status != nil && !Status(*r.Status).IsValid() {
		errs.Add("status", "status must be one of pending, completed, paid")
	}
	validateQuantities(&errs, r.StartTime, r.EndTime, r.TotalHours, r.Trips, r.DistanceKm, r.Days, r.TotalAmount)

	return errs.Err()
}

// ApplyTo copies every provided field onto j.
func (r *UpdateJobRequest) ApplyTo(j *Job) {
	if r.Type != nil {
		j.Type = JobType(*r.Type)
	}
	if r.VehicleID != nil {
		j.VehicleID = *r.VehicleID
	}
	if r.ClientID != nil {
		j.ClientID = *r.ClientID
	}
	if r.WorkerID != nil {
		if *r.WorkerID == "" {
			j.WorkerID = nil
		} else {
			j.WorkerID = r.WorkerID
		}
	}
	if r.Date != nil {
		d, _ := validator.IsValidDate(*r.Date)
		j.Date = d
	}
	if r.RateType != nil {
		j.RateType = RateType(*r.RateType)
	}
	if r.RateAmount != nil {
		j.RateAmount = *r.RateAmount
	}
	if r.StartTime != nil {
		j.StartTime = r.StartTime
	}
	if r.EndTime != nil {
		j.EndTime = r.EndTime
	}
	if r.TotalHours != nil {
		j.TotalHours = r.TotalHours
	}
	if r.Trips != nil {
		j.Trips = r.Trips
	}
	if r.DistanceKm != nil {
		j.DistanceKm = r.DistanceKm
	}
	if r.Days != nil {
		j.Days = r.Days
	}
	if r.FromLocation != nil {
		j.FromLocation = r.FromLocation
	}
	if r.ToLocation != nil {
		j.ToLocation = r.ToLocation
	}
	if r.Material != nil {
		j.Material = r.Material
	}
	if r.TotalAmount != nil {
		j.TotalAmount = *r.TotalAmount
	}
	if r.Status != nil {
		j.Status = Status(*r.Status)
	}
	if r.Notes != nil {
		j.Notes = r.Notes
	}
}

func validateQuantities(errs *validator.ValidationErrors, startTime, endTime *string, hours *decimal.Decimal, trips *int, distanceKm, days, totalAmount *decimal.Decimal) {
	if startTime != nil && !validator.IsValidClock(*startTime) {
		errs.Add("start_time", "start_time must be in HH:MM format")
	}
	if endTime != nil && !validator.IsValidClock(*endTime) {
		errs.Add("end_time", "end_time must be in HH:MM format")
	}
	if hours != nil && hours.IsNegative() {
		errs.Add("total_hours", "total_hours must be non-negative")
	}
	if trips != nil && *trips < 0 {
		errs.Add("trips", "trips must be non-negative")
	}
	if distanceKm != nil && distanceKm.IsNegative() {
		errs.Add("distance_km", "distance_km must be non-negative")
	}
	if days != nil && days.IsNegative() {
		errs.Add("days", "days must be non-negative")
	}
	if totalAmount != nil && totalAmount.IsNegative() {
		errs.Add("total_amount", "total_amount must be non-negative")
	}
}

type UpdateJobStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *UpdateJobStatusRequest) Validate() error {
	var errs validator.ValidationErrors
	if !Status(r.Status).IsValid() {
		errs.Add("status", "status must be one of pending, completed, paid")
	}
	return errs.Err()
}

type JobFilter struct {
	Type      *string
	ClientID  *string
	VehicleID *string
	WorkerID  *string
	Status    *string
	DateFrom  *string
	DateTo    *string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

func (f *JobFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Type != nil && !JobType(*f.Type).IsValid() {
		errs.Add("type", "type must be 'jcb' or 'lorry'")
	}
	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs.Add("status", "status must be one of pending, completed, paid")
	}
	var from, to string
	if f.DateFrom != nil {
		from = *f.DateFrom
	}
	if f.DateTo != nil {
		to = *f.DateTo
	}
	validator.ValidateDateRange(&errs, "date_from", from, "date_to", to)
	if f.SortBy != "" && !validator.IsInSlice(f.SortBy, []string{"date", "total_amount", "created_at"}) {
		errs.Add("sort_by", "sort_by must be one of date, total_amount, created_at")
	}

	return errs.Err()
}

type ListJobResponse struct {
	Data       []JobResponse `json:"data"`
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
}
