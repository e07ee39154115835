package salary

import "errors"

var ErrSalaryPaymentNotFound = errors.New("salary payment not found")
