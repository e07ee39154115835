package vehicle

import "errors"

var (
	ErrVehicleNotFound          = errors.New("vehicle not found")
	ErrRegistrationNumberExists = errors.New("registration number already exists")
	ErrVehicleInUse             = errors.New("vehicle still has jobs, expenses or bills")
)
