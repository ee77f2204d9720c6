package attendance

import (
	"time"

	"github.com/google/uuid"
)

type Attendance struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID string    `gorm:"column:employee_id;type:varchar(50);not null;uniqueIndex:uq_attendance_employee_date,priority:1"`
	Date       time.Time `gorm:"column:date;type:date;not null;uniqueIndex:uq_attendance_employee_date,priority:2"`
	Status     string    `gorm:"column:status;type:varchar(10);not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (Attendance) TableName() string {
	return "attendance_records"
}
