package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	attendanceerrors "github.com/aadesh1214/hrms-lite/internal/attendance/errors"
	"github.com/aadesh1214/hrms-lite/internal/shared/contextutil"
)

// EmployeeFinder verifies that a marked employee actually exists. The
// employee module's repository satisfies it.
type EmployeeFinder interface {
	ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context) ([]AttendanceResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees EmployeeFinder
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employees EmployeeFinder, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, employees: employees, logger: l}
}

func (s *service) Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("mark attendance requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
		zap.String("status", req.Status),
	)

	exists, err := s.employees.ExistsByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("mark attendance employee lookup failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	if !exists {
		return AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrBadDateFormat
	}

	// Both bounds are recomputed per request at day precision, so a record
	// for today or for exactly five years ago is accepted.
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if date.After(today) {
		return AttendanceResponse{}, attendanceerrors.ErrFutureDate
	}
	if date.Before(today.AddDate(-5, 0, 0)) {
		return AttendanceResponse{}, attendanceerrors.ErrDateTooOld
	}

	if req.Status != StatusPresent && req.Status != StatusAbsent {
		return AttendanceResponse{}, attendanceerrors.ErrBadStatus
	}

	if _, err := s.repo.FindByEmployeeAndDate(ctx, req.EmployeeID, date); err == nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyMarked
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("mark attendance duplicate lookup failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark attendance begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row := &Attendance{
		ID:         uuid.New(),
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     req.Status,
		CreatedAt:  time.Now().UTC(),
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("mark attendance persist failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("mark attendance commit failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("mark attendance success",
		zap.String("request_id", rid),
		zap.String("employee_id", row.EmployeeID),
		zap.String("date", req.Date),
	)

	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context) ([]AttendanceResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all attendance failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error) {
	exists, err := s.employees.ExistsByEmployeeID(ctx, employeeID)
	if err != nil {
		s.logger.Error("get employee attendance lookup failed", zap.Error(err))
		return nil, err
	}
	if !exists {
		return nil, attendanceerrors.ErrEmployeeNotFound
	}

	rows, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("get employee attendance failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:         a.ID.String(),
		EmployeeID: a.EmployeeID,
		Date:       a.Date.Format("2006-01-02"),
		Status:     a.Status,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(rows []Attendance) []AttendanceResponse {
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}
