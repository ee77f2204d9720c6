package employee

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	employeeerrors "github.com/aadesh1214/hrms-lite/internal/employee/errors"
)

// mapRepositoryError catches the uniqueness race the pre-checks cannot
// close: two concurrent creates for the same id or email resolve at the
// database index, not in the service.
func mapRepositoryError(err error, employeeID, email string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_employees_employee_id":
			return employeeerrors.EmployeeIDExists(employeeID)
		case "uq_employees_email":
			return employeeerrors.EmailRegistered(email)
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employees_employee_id") {
		return employeeerrors.EmployeeIDExists(employeeID)
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employees_email") {
		return employeeerrors.EmailRegistered(email)
	}

	return err
}
