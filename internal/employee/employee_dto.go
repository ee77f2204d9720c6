package employee

type CreateEmployeeRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,max=50"`
	FullName   string `json:"full_name" binding:"required,max=100"`
	Email      string `json:"email" binding:"required,email"`
	Department string `json:"department" binding:"required,max=50"`
}

type EmployeeResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

type DeleteEmployeeResponse struct {
	Message                  string `json:"message"`
	DeletedEmployee          int    `json:"deleted_employee"`
	DeletedAttendanceRecords int64  `json:"deleted_attendance_records"`
}
