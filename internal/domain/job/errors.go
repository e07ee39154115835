package job

import "errors"

var (
	ErrJobNotFound         = errors.New("job not found")
	ErrJobInUse            = errors.New("job has payments recorded against it")
	ErrJobClientLocked     = errors.New("job client cannot change while payments are linked to it")
	ErrVehicleTypeMismatch = errors.New("vehicle type does not match job type")
)
