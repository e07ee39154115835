package bill

import "errors"

var (
	ErrBillNotFound      = errors.New("bill not found")
	ErrBillAlreadyExists = errors.New("a bill already exists for this vehicle, client and month")
)
