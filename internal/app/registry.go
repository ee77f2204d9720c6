package app

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/aadesh1214/hrms-lite/internal/attendance"
	"github.com/aadesh1214/hrms-lite/internal/employee"
	"github.com/aadesh1214/hrms-lite/internal/messaging/kafka"
	"github.com/aadesh1214/hrms-lite/internal/middleware"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.RateLimitByIP(20, 40))

	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	// The attendance repository doubles as the employee module's cascade
	// cleaner, and the employee repository as the attendance module's
	// existence check.
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, attendanceCleaner{repo: attendanceRepo}, outboxRepo, rdb)
	attendanceService := attendance.NewService(db, attendanceRepo, employeeRepo)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	attendanceHandler := attendance.NewHandler(attendanceService)

	// --- Routes ---
	api := router.Group("/api")
	{
		employee.RegisterRoutes(api, employeeHandler)
		attendance.RegisterRoutes(api, attendanceHandler)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	return nil
}

// attendanceCleaner narrows the attendance repository to the employee
// module's cascade interface while keeping transaction scoping.
type attendanceCleaner struct {
	repo attendance.Repository
}

func (c attendanceCleaner) WithTx(tx *sql.Tx) employee.AttendanceCleaner {
	return attendanceCleaner{repo: c.repo.WithTx(tx)}
}

func (c attendanceCleaner) DeleteByEmployee(ctx context.Context, employeeID string) (int64, error) {
	return c.repo.DeleteByEmployee(ctx, employeeID)
}
