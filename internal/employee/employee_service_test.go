package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aadesh1214/hrms-lite/internal/employee"
	employeeerrors "github.com/aadesh1214/hrms-lite/internal/employee/errors"
	"github.com/aadesh1214/hrms-lite/internal/events"
	"github.com/aadesh1214/hrms-lite/internal/messaging/kafka"
	"github.com/aadesh1214/hrms-lite/internal/shared/apperror"
	"github.com/aadesh1214/hrms-lite/internal/shared/contextutil"

	employeeMock "github.com/aadesh1214/hrms-lite/internal/employee/mock"
	kafkaMock "github.com/aadesh1214/hrms-lite/internal/messaging/kafka/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   employee.Service
	repo      *employeeMock.MockRepository
	cleaner   *employeeMock.MockAttendanceCleaner
	outbox    *kafkaMock.MockOutboxRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	dbRedis, redisMock := redismock.NewClientMock()
	repo := employeeMock.NewMockRepository(ctrl)
	cleaner := employeeMock.NewMockAttendanceCleaner(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)

	svc := employee.NewServiceWithOutbox(db, repo, cleaner, outboxRepo, dbRedis)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		cleaner:   cleaner,
		outbox:    outboxRepo,
		redismock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func expectNotRegistered(deps *serviceDeps, ctx context.Context, employeeID, email string) {
	deps.repo.EXPECT().
		FindByEmployeeID(ctx, employeeID).
		Return(nil, gorm.ErrRecordNotFound)
	deps.repo.EXPECT().
		FindByEmail(ctx, email).
		Return(nil, gorm.ErrRecordNotFound)
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := employee.CreateEmployeeRequest{
			EmployeeID: "EMP-1",
			FullName:   "Budi Santoso",
			Email:      "budi@example.com",
			Department: "Engineering",
		}

		expectNotRegistered(deps, ctx, "EMP-1", "budi@example.com")
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, "EMP-1", e.EmployeeID)
				assert.Equal(t, "Budi Santoso", e.FullName)
				assert.Equal(t, "budi@example.com", e.Email)
				assert.Equal(t, "Engineering", e.Department)
				assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", e.ID.String())
				return nil
			})

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		deps.redismock.ExpectDel(employee.DirectoryCacheKey).SetVal(1)

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "EMP-1", resp.EmployeeID)
		assert.Equal(t, "Budi Santoso", resp.FullName)
		assert.NotEmpty(t, resp.ID)
	})

	t.Run("trims surrounding whitespace before persisting", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := employee.CreateEmployeeRequest{
			EmployeeID: "  EMP-2  ",
			FullName:   " Siti Rahma ",
			Email:      "siti@example.com",
			Department: " HR ",
		}

		expectNotRegistered(deps, ctx, "EMP-2", "siti@example.com")
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, "EMP-2", e.EmployeeID)
				assert.Equal(t, "Siti Rahma", e.FullName)
				assert.Equal(t, "HR", e.Department)
				return nil
			})

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		deps.redismock.ExpectDel(employee.DirectoryCacheKey).SetVal(1)

		_, err := deps.service.Create(ctx, req)
		assert.NoError(t, err)
	})

	t.Run("persists outbox event with request id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		rid := "req-123"
		ridCtx := contextutil.WithRequestID(ctx, rid)

		req := employee.CreateEmployeeRequest{
			EmployeeID: "EMP-3",
			FullName:   "Andi Wijaya",
			Email:      "andi@example.com",
			Department: "Finance",
		}

		expectNotRegistered(deps, ridCtx, "EMP-3", "andi@example.com")
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ridCtx, gomock.Any()).Return(nil)

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, event kafka.OutboxEvent) error {
				assert.Equal(t, rid, event.RequestID)
				assert.Equal(t, events.EmployeeLifecycleTopic, event.Topic)
				assert.Equal(t, "employee_created", event.EventType)
				assert.Equal(t, kafka.OutboxStatusPending, event.Status)

				var payload events.EmployeeCreatedEvent
				assert.NoError(t, json.Unmarshal(event.Payload, &payload))
				assert.Equal(t, "EMP-3", payload.EmployeeID)
				assert.Equal(t, "andi@example.com", payload.Email)
				return nil
			})

		deps.redismock.ExpectDel(employee.DirectoryCacheKey).SetVal(1)

		_, err := deps.service.Create(ridCtx, req)
		assert.NoError(t, err)
	})

	t.Run("rejects whitespace-only employee id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			EmployeeID: "   ",
			FullName:   "Budi",
			Email:      "budi@example.com",
			Department: "Engineering",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeIDEmpty)
	})

	t.Run("rejects identical values in every field", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			EmployeeID: "test",
			FullName:   "Test",
			Email:      "TEST",
			Department: "test",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrAllFieldsEqual)
	})

	t.Run("rejects duplicate employee id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindByEmployeeID(ctx, "EMP-1").
			Return(&employee.Employee{EmployeeID: "EMP-1"}, nil)

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			EmployeeID: "EMP-1",
			FullName:   "Budi",
			Email:      "other@example.com",
			Department: "Engineering",
		})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Employee ID 'EMP-1' already exists", appErr.Message)
		assert.Equal(t, 400, appErr.HTTPStatus)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindByEmployeeID(ctx, "EMP-9").
			Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().
			FindByEmail(ctx, "budi@example.com").
			Return(&employee.Employee{Email: "budi@example.com"}, nil)

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			EmployeeID: "EMP-9",
			FullName:   "Budi",
			Email:      "budi@example.com",
			Department: "Engineering",
		})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Email 'budi@example.com' already registered", appErr.Message)
	})

	t.Run("maps unique index race to duplicate id error", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectNotRegistered(deps, ctx, "EMP-1", "budi@example.com")
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employees_employee_id"})

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			EmployeeID: "EMP-1",
			FullName:   "Budi",
			Email:      "budi@example.com",
			Department: "Engineering",
		})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Employee ID 'EMP-1' already exists", appErr.Message)
	})
}

func TestEmployeeService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the repository", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		cached := []employee.EmployeeResponse{
			{ID: "id-1", EmployeeID: "EMP-1", FullName: "Budi", Email: "budi@example.com", Department: "Engineering"},
		}
		data, _ := json.Marshal(cached)
		deps.redismock.ExpectGet(employee.DirectoryCacheKey).SetVal(string(data))

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Equal(t, cached, resp)
	})

	t.Run("cache miss loads and stores the directory", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.redismock.ExpectGet(employee.DirectoryCacheKey).RedisNil()
		deps.repo.EXPECT().
			FindAll(ctx).
			Return([]employee.Employee{
				{EmployeeID: "EMP-1", FullName: "Budi", Email: "budi@example.com", Department: "Engineering"},
			}, nil)
		deps.redismock.Regexp().ExpectSet(employee.DirectoryCacheKey, `.*`, time.Hour).SetVal("OK")

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "EMP-1", resp[0].EmployeeID)
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.redismock.ExpectGet(employee.DirectoryCacheKey).RedisNil()
		deps.repo.EXPECT().FindAll(ctx).Return(nil, errors.New("db down"))

		_, err := deps.service.GetAll(ctx)
		assert.Error(t, err)
	})
}

func TestEmployeeService_GetByEmployeeID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindByEmployeeID(ctx, "EMP-1").
			Return(&employee.Employee{EmployeeID: "EMP-1", FullName: "Budi"}, nil)

		resp, err := deps.service.GetByEmployeeID(ctx, "EMP-1")

		assert.NoError(t, err)
		assert.Equal(t, "Budi", resp.FullName)
	})

	t.Run("unknown id returns not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindByEmployeeID(ctx, "ghost").
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByEmployeeID(ctx, "ghost")

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Employee with ID 'ghost' not found", appErr.Message)
		assert.Equal(t, 404, appErr.HTTPStatus)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades attendance and reports counts", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		// Lookup is case-insensitive, but the cascade and delete run
		// against the stored casing.
		deps.repo.EXPECT().
			FindByEmployeeID(ctx, "emp-1").
			Return(&employee.Employee{EmployeeID: "EMP-1"}, nil)

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.cleaner.EXPECT().WithTx(gomock.Any()).Return(deps.cleaner)
		deps.cleaner.EXPECT().DeleteByEmployee(ctx, "EMP-1").Return(int64(3), nil)
		deps.repo.EXPECT().Delete(ctx, "EMP-1").Return(nil)

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, event kafka.OutboxEvent) error {
				assert.Equal(t, "employee_deleted", event.EventType)

				var payload events.EmployeeDeletedEvent
				assert.NoError(t, json.Unmarshal(event.Payload, &payload))
				assert.Equal(t, int64(3), payload.DeletedAttendanceRecords)
				return nil
			})

		deps.redismock.ExpectDel(employee.DirectoryCacheKey).SetVal(1)

		resp, err := deps.service.Delete(ctx, "emp-1")

		assert.NoError(t, err)
		assert.Equal(t, "Employee 'EMP-1' deleted successfully", resp.Message)
		assert.Equal(t, 1, resp.DeletedEmployee)
		assert.Equal(t, int64(3), resp.DeletedAttendanceRecords)
	})

	t.Run("unknown employee returns not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindByEmployeeID(ctx, "ghost").
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Delete(ctx, "ghost")

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.HTTPStatus)
	})

	t.Run("cascade failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindByEmployeeID(ctx, "EMP-1").
			Return(&employee.Employee{EmployeeID: "EMP-1"}, nil)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.cleaner.EXPECT().WithTx(gomock.Any()).Return(deps.cleaner)
		deps.cleaner.EXPECT().
			DeleteByEmployee(ctx, "EMP-1").
			Return(int64(0), errors.New("cascade failed"))

		_, err := deps.service.Delete(ctx, "EMP-1")
		assert.ErrorIs(t, err, employeeerrors.ErrDeleteFailed)
	})
}
