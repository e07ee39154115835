package expense

import "errors"

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrReceiptRequired = errors.New("receipt file is required")
)
