package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	employeeerrors "github.com/aadesh1214/hrms-lite/internal/employee/errors"
	"github.com/aadesh1214/hrms-lite/internal/events"
	"github.com/aadesh1214/hrms-lite/internal/messaging/kafka"
	"github.com/aadesh1214/hrms-lite/internal/shared/contextutil"
)

const DirectoryCacheKey = "employees:directory"

// AttendanceCleaner removes an employee's attendance records when the
// employee is deleted and reports how many went with them. WithTx scopes
// the cascade to the caller's transaction so it rolls back with the
// employee row.
type AttendanceCleaner interface {
	WithTx(tx *sql.Tx) AttendanceCleaner
	DeleteByEmployee(ctx context.Context, employeeID string) (int64, error)
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (EmployeeResponse, error)
	Delete(ctx context.Context, employeeID string) (DeleteEmployeeResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	attendance AttendanceCleaner
	outbox     kafka.OutboxRepository
	rdb        *redis.Client
	sf         *singleflight.Group
	logger     *zap.Logger
}

func NewService(db *sql.DB, repo Repository, attendance AttendanceCleaner, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, attendance, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	attendance AttendanceCleaner,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		attendance: attendance,
		outbox:     outboxRepo,
		rdb:        rdb,
		sf:         &singleflight.Group{},
		logger:     l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("email", req.Email),
	)

	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	req.FullName = strings.TrimSpace(req.FullName)
	req.Department = strings.TrimSpace(req.Department)

	// Binding catches absent fields; whitespace-only values land here.
	if req.EmployeeID == "" {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeIDEmpty
	}
	if req.FullName == "" {
		return EmployeeResponse{}, employeeerrors.ErrFullNameEmpty
	}
	if req.Department == "" {
		return EmployeeResponse{}, employeeerrors.ErrDepartmentEmpty
	}

	if allFieldsEqual(req) {
		s.logger.Warn("create employee rejected as junk data",
			zap.String("request_id", rid),
			zap.String("employee_id", req.EmployeeID),
		)
		return EmployeeResponse{}, employeeerrors.ErrAllFieldsEqual
	}

	if _, err := s.repo.FindByEmployeeID(ctx, req.EmployeeID); err == nil {
		return EmployeeResponse{}, employeeerrors.EmployeeIDExists(req.EmployeeID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("create employee id lookup failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return EmployeeResponse{}, employeeerrors.EmailRegistered(req.Email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("create employee email lookup failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl := &Employee{
		ID:         uuid.New(),
		EmployeeID: req.EmployeeID,
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err, req.EmployeeID, req.Email)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:  "employee_created",
			RequestID:  rid,
			EmployeeID: empl.EmployeeID,
			Email:      empl.Email,
			OccurredAt: time.Now().UTC(),
		}
		if err := s.queueOutboxEvent(ctx, tx, empl.EmployeeID, event.EventType, event); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("request_id", rid),
				zap.String("employee_id", empl.EmployeeID),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateDirectoryCache(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.EmployeeID),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	// The directory backs every attendance form load, so it is cached.
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, DirectoryCacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(DirectoryCacheKey, func() (interface{}, error) {
		empls, err := s.repo.FindAll(ctx)
		if err != nil {
			s.logger.Error("get all employees failed", zap.Error(err))
			return nil, err
		}

		resp := mapToListResponse(empls)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, DirectoryCacheKey, jsonData, time.Hour)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByEmployeeID(ctx context.Context, employeeID string) (EmployeeResponse, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeIDEmpty
	}

	empl, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.EmployeeNotFound(employeeID)
		}
		s.logger.Error("get employee failed", zap.String("employee_id", employeeID), zap.Error(err))
		return EmployeeResponse{}, err
	}

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, employeeID string) (DeleteEmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return DeleteEmployeeResponse{}, employeeerrors.ErrEmployeeIDEmpty
	}

	empl, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DeleteEmployeeResponse{}, employeeerrors.EmployeeNotFound(employeeID)
		}
		s.logger.Error("delete employee lookup failed", zap.String("request_id", rid), zap.Error(err))
		return DeleteEmployeeResponse{}, err
	}

	// The stored casing wins: attendance rows reference it exactly.
	actualID := empl.EmployeeID

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return DeleteEmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	removed, err := s.attendance.WithTx(tx).DeleteByEmployee(ctx, actualID)
	if err != nil {
		s.logger.Error("delete employee cascade failed",
			zap.String("request_id", rid),
			zap.String("employee_id", actualID),
			zap.Error(err),
		)
		return DeleteEmployeeResponse{}, employeeerrors.ErrDeleteFailed
	}

	if err := qtx.Delete(ctx, actualID); err != nil {
		s.logger.Error("delete employee failed",
			zap.String("request_id", rid),
			zap.String("employee_id", actualID),
			zap.Error(err),
		)
		return DeleteEmployeeResponse{}, employeeerrors.ErrDeleteFailed
	}

	if s.outbox != nil {
		event := events.EmployeeDeletedEvent{
			EventType:                "employee_deleted",
			RequestID:                rid,
			EmployeeID:               actualID,
			DeletedAttendanceRecords: removed,
			OccurredAt:               time.Now().UTC(),
		}
		if err := s.queueOutboxEvent(ctx, tx, actualID, event.EventType, event); err != nil {
			s.logger.Error("delete employee outbox persist failed",
				zap.String("request_id", rid),
				zap.String("employee_id", actualID),
				zap.Error(err),
			)
			return DeleteEmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return DeleteEmployeeResponse{}, err
	}

	s.invalidateDirectoryCache(ctx)

	s.logger.Info("delete employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", actualID),
		zap.Int64("deleted_attendance_records", removed),
	)

	return DeleteEmployeeResponse{
		Message:                  fmt.Sprintf("Employee '%s' deleted successfully", actualID),
		DeletedEmployee:          1,
		DeletedAttendanceRecords: removed,
	}, nil
}

func (s *service) queueOutboxEvent(ctx context.Context, tx *sql.Tx, aggregateID, eventType string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "employee",
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         events.EmployeeLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) invalidateDirectoryCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, DirectoryCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee directory cache",
			zap.Error(err),
			zap.String("key", DirectoryCacheKey),
		)
	}
}

// allFieldsEqual flags obviously fake input where every field carries the
// same value (after trimming, ignoring case).
func allFieldsEqual(req CreateEmployeeRequest) bool {
	id := strings.ToLower(strings.TrimSpace(req.EmployeeID))
	name := strings.ToLower(strings.TrimSpace(req.FullName))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	dept := strings.ToLower(strings.TrimSpace(req.Department))
	return id == name && name == email && email == dept
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         empl.ID.String(),
		EmployeeID: empl.EmployeeID,
		FullName:   empl.FullName,
		Email:      empl.Email,
		Department: empl.Department,
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
