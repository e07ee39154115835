package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO 8601 calendar date format used on the wire.
const DateLayout = "2006-01-02"

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Err returns nil when no errors were collected, so callers can `return errs.Err()`.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

var uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[1-7][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// IsValidUUID accepts any RFC 4122 UUID version 1-7.
func IsValidUUID(uuid string) bool {
	return uuidRegex.MatchString(strings.ToLower(uuid))
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(DateLayout, dateStr)
	return date, err == nil
}

var clockRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// IsValidClock checks an "HH:MM" 24h time of day.
func IsValidClock(s string) bool {
	return clockRegex.MatchString(s)
}

// Phone number validation: digits with optional leading +, 7-15 digits.
var phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

func IsValidPhoneNumber(phone string) bool {
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	return phoneRegex.MatchString(phone)
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// IsValidMonth checks a calendar month number.
func IsValidMonth(month int) bool {
	return month >= 1 && month <= 12
}

// IsValidYear checks the year range accepted for bills and paysheets.
func IsValidYear(year int) bool {
	return year >= 2000 && year <= time.Now().Year()+1
}

// IsPositive reports whether d > 0.
func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(decimal.Zero)
}

// ValidateDateRange parses an optional from/to pair and checks from <= to.
// Empty strings are returned as nil pointers.
func ValidateDateRange(errs *ValidationErrors, fromField, from, toField, to string) (*time.Time, *time.Time) {
	var fromDate, toDate *time.Time
	if from != "" {
		d, ok := IsValidDate(from)
		if !ok {
			errs.Add(fromField, fromField+" must be in YYYY-MM-DD format")
		} else {
			fromDate = &d
		}
	}
	if to != "" {
		d, ok := IsValidDate(to)
		if !ok {
			errs.Add(toField, toField+" must be in YYYY-MM-DD format")
		} else {
			toDate = &d
		}
	}
	if fromDate != nil && toDate != nil && fromDate.After(*toDate) {
		errs.Add(toField, toField+" must not be before "+fromField)
	}
	return fromDate, toDate
}

// DefaultRange fills a missing report period: to defaults to today and from to the
// first day of to's month.
func DefaultRange(now time.Time, from, to *time.Time) (time.Time, time.Time) {
	var start, end time.Time
	if to != nil {
		end = *to
	} else {
		end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	if from != nil {
		start = *from
	} else {
		start = time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	if start.After(end) {
		end = start
	}
	return start, end
}

// MonthRange returns the first and last calendar day of month/year.
func MonthRange(month, year int) (time.Time, time.Time) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}
