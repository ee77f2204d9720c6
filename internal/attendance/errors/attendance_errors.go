package attendanceerrors

import (
	"net/http"

	"github.com/aadesh1214/hrms-lite/internal/shared/apperror"
)

// Detail strings are part of the API contract: clients pattern-match on
// "not found", "future", "5 years", "already marked", "Status must be"
// and "YYYY-MM-DD", so the wording must stay stable.
var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrBadDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format. Please use YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrFutureDate = apperror.New(
		apperror.CodeInvalidInput,
		"Attendance date cannot be in the future. Please select today or an earlier date.",
		http.StatusBadRequest,
	)
	ErrDateTooOld = apperror.New(
		apperror.CodeInvalidInput,
		"Attendance date cannot be more than 5 years in the past",
		http.StatusBadRequest,
	)
	ErrBadStatus = apperror.New(
		apperror.CodeInvalidInput,
		`Status must be either "Present" or "Absent"`,
		http.StatusBadRequest,
	)
	ErrAlreadyMarked = apperror.New(
		apperror.CodeConflict,
		"Attendance already marked for this date",
		http.StatusBadRequest,
	)
)
