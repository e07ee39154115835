package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/bill"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/job"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/client"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/vehicle"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/fleet-backend-go/internal/service/file"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrAccountDisabled), errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "Account is disabled")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")

	// Master data errors
	case errors.Is(err, client.ErrClientNotFound):
		NotFound(w, "Client not found")
	case errors.Is(err, client.ErrClientNameExists):
		Conflict(w, "Client name already exists")
	case errors.Is(err, client.ErrClientInUse):
		Conflict(w, "Client is still referenced by jobs, payments or bills")
	case errors.Is(err, vehicle.ErrVehicleNotFound):
		NotFound(w, "Vehicle not found")
	case errors.Is(err, vehicle.ErrRegistrationNumberExists):
		Conflict(w, "Registration number already exists")
	case errors.Is(err, vehicle.ErrVehicleInUse):
		Conflict(w, "Vehicle is still referenced by jobs, expenses or bills")
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrWorkerInUse):
		Conflict(w, "Worker is still referenced by attendance, salary payments or jobs")

	// Job domain errors
	case errors.Is(err, job.ErrJobNotFound):
		NotFound(w, "Job not found")
	case errors.Is(err, job.ErrJobInUse):
		Conflict(w, "Job has payments recorded against it")
	case errors.Is(err, job.ErrJobClientLocked):
		Conflict(w, "Job client cannot change while payments are linked to it")
	case errors.Is(err, job.ErrVehicleTypeMismatch):
		BadRequest(w, err.Error(), nil)

	// Expense domain errors
	case errors.Is(err, expense.ErrExpenseNotFound):
		NotFound(w, "Expense not found")
	case errors.Is(err, expense.ErrReceiptRequired):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, file.ErrUnsupportedFileType):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, storage.ErrFileNotFound):
		NotFound(w, "File not found")
	case errors.Is(err, storage.ErrInvalidPath):
		BadRequest(w, "Invalid file path", nil)

	// Payment domain errors
	case errors.Is(err, payment.ErrPaymentNotFound):
		NotFound(w, "Payment not found")
	case errors.Is(err, payment.ErrPayableNotFound):
		NotFound(w, "Linked job not found")
	case errors.Is(err, payment.ErrPayableWrongOwner):
		BadRequest(w, err.Error(), nil)

	// Attendance and salary errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAttendanceAlreadyRecorded):
		Conflict(w, err.Error())
	case errors.Is(err, salary.ErrSalaryPaymentNotFound):
		NotFound(w, "Salary payment not found")

	// Bill domain errors
	case errors.Is(err, bill.ErrBillNotFound):
		NotFound(w, "Bill not found")
	case errors.Is(err, bill.ErrBillAlreadyExists):
		Conflict(w, err.Error())
	case errors.Is(err, export.ErrUnknownFormat):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
