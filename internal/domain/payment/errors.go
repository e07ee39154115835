package payment

import "errors"

var (
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrPayableNotFound   = errors.New("linked job not found")
	ErrPayableWrongOwner = errors.New("linked job belongs to another client")
)
