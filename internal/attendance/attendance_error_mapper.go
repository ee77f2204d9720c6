package attendance

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	attendanceerrors "github.com/aadesh1214/hrms-lite/internal/attendance/errors"
)

// mapRepositoryError resolves the duplicate-submission race: the service
// pre-checks the (employee, date) pair, but only the composite unique
// index is authoritative.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == "uq_attendance_employee_date" {
			return attendanceerrors.ErrAlreadyMarked
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_attendance_employee_date") {
		return attendanceerrors.ErrAlreadyMarked
	}

	return err
}
