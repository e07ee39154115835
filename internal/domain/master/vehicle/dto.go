package vehicle

import (
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
)

type VehicleResponse struct {
	ID             string  `json:"id"`
	RegistrationNo string  `json:"registration_no"`
	Type           string  `json:"type"`
	Model          *string `json:"model,omitempty"`
	IsActive       bool    `json:"is_active"`
	Notes          *string `json:"notes,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func NewVehicleResponse(v Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:             v.ID,
		RegistrationNo: v.RegistrationNo,
		Type:           string(v.Type),
		Model:          v.Model,
		IsActive:       v.IsActive,
		Notes:          v.Notes,
		CreatedAt:      v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      v.UpdatedAt.Format(time.RFC3339),
	}
}

type CreateVehicleRequest struct {
	RegistrationNo string  `json:"registration_no"`
	Type           string  `json:"type"`
	Model          *string `json:"model,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

func (r *CreateVehicleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RegistrationNo) {
		errs.Add("registration_no", "registration_no is required")
	}
	if len(r.RegistrationNo) > 30 {
		errs.Add("registration_no", "registration_no must not exceed 30 characters")
	}
	if !Type(r.Type).IsValid() {
		errs.Add("type", "type must be 'jcb' or 'lorry'")
	}

	return errs.Err()
}

type UpdateVehicleRequest struct {
	ID             string  `json:"-"`
	RegistrationNo *string `json:"registration_no,omitempty"`
	Type           *string `json:"type,omitempty"`
	Model          *string `json:"model,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

func (r *UpdateVehicleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.RegistrationNo != nil && validator.IsEmpty(*r.RegistrationNo) {
		errs.Add("registration_no", "registration_no must not be empty")
	}
	if r.Type != nil && !Type(*r.Type).IsValid() {
		errs.Add("type", "type must be 'jcb' or 'lorry'")
	}

	return errs.Err()
}

type VehicleFilter struct {
	Type     *string
	IsActive *bool
	Search   *string
	Page     int
	Limit    int
}

type ListVehicleResponse struct {
	Data       []VehicleResponse `json:"data"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}
