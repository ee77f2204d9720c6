package employeeerrors

import (
	"fmt"
	"net/http"

	"github.com/aadesh1214/hrms-lite/internal/shared/apperror"
)

// Detail strings are part of the API contract: clients pattern-match on
// them, so they must stay byte-for-byte stable.
var (
	ErrEmployeeIDEmpty = apperror.New(
		apperror.CodeInvalidInput,
		"Employee ID cannot be empty",
		http.StatusBadRequest,
	)
	ErrFullNameEmpty = apperror.New(
		apperror.CodeInvalidInput,
		"Full name cannot be empty",
		http.StatusBadRequest,
	)
	ErrDepartmentEmpty = apperror.New(
		apperror.CodeInvalidInput,
		"Department cannot be empty",
		http.StatusBadRequest,
	)
	ErrAllFieldsEqual = apperror.New(
		apperror.CodeInvalidInput,
		"All fields cannot have the same value. Please provide valid employee information.",
		http.StatusBadRequest,
	)
	ErrDeleteFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to delete employee",
		http.StatusInternalServerError,
	)
)

func EmployeeIDExists(employeeID string) *apperror.AppError {
	return apperror.New(
		apperror.CodeConflict,
		fmt.Sprintf("Employee ID '%s' already exists", employeeID),
		http.StatusBadRequest,
	)
}

func EmailRegistered(email string) *apperror.AppError {
	return apperror.New(
		apperror.CodeConflict,
		fmt.Sprintf("Email '%s' already registered", email),
		http.StatusBadRequest,
	)
}

func EmployeeNotFound(employeeID string) *apperror.AppError {
	return apperror.New(
		apperror.CodeNotFound,
		fmt.Sprintf("Employee with ID '%s' not found", employeeID),
		http.StatusNotFound,
	)
}
