package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alefshop/attendance-backend/internal/domain/attendance"
	"github.com/alefshop/attendance-backend/internal/domain/auth"
	"github.com/alefshop/attendance-backend/internal/domain/finance"
	"github.com/alefshop/attendance-backend/internal/domain/report"
	"github.com/alefshop/attendance-backend/internal/domain/user"
	"github.com/alefshop/attendance-backend/internal/domain/worker"
	"github.com/alefshop/attendance-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid phone or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token has been revoked")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrPhoneExists):
		Conflict(w, "Phone number already registered")

	// Worker domain errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrWorkerCodeExists):
		Conflict(w, "Worker code already exists")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrInvalidTimeRange),
		errors.Is(err, attendance.ErrCheckOutWithoutIn),
		errors.Is(err, attendance.ErrDateMismatch):
		BadRequest(w, err.Error(), nil)

	// Finance and report errors
	case errors.Is(err, finance.ErrFinanceNotFound):
		NotFound(w, "Finance record not found")
	case errors.Is(err, report.ErrInvalidPeriod):
		BadRequest(w, "Invalid report period", nil)

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
