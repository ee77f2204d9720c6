package hrmsclient

import (
	"context"
	"net/http"
	"net/url"
)

type Employee struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

type NewEmployee struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

type DeleteSummary struct {
	Message                  string `json:"message"`
	DeletedEmployee          int    `json:"deleted_employee"`
	DeletedAttendanceRecords int64  `json:"deleted_attendance_records"`
}

// EmployeeAPI is the employee resource; *Client implements it, tests swap
// in fakes.
type EmployeeAPI interface {
	ListEmployees(ctx context.Context) ([]Employee, error)
	CreateEmployee(ctx context.Context, req NewEmployee) (Employee, error)
	GetEmployee(ctx context.Context, employeeID string) (Employee, error)
	DeleteEmployee(ctx context.Context, employeeID string) (DeleteSummary, error)
}

func (c *Client) ListEmployees(ctx context.Context) ([]Employee, error) {
	var out []Employee
	if err := c.do(ctx, http.MethodGet, "/api/employees/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateEmployee(ctx context.Context, req NewEmployee) (Employee, error) {
	var out Employee
	if err := c.do(ctx, http.MethodPost, "/api/employees/", req, &out); err != nil {
		return Employee{}, err
	}
	return out, nil
}

func (c *Client) GetEmployee(ctx context.Context, employeeID string) (Employee, error) {
	var out Employee
	if err := c.do(ctx, http.MethodGet, "/api/employees/"+url.PathEscape(employeeID), nil, &out); err != nil {
		return Employee{}, err
	}
	return out, nil
}

func (c *Client) DeleteEmployee(ctx context.Context, employeeID string) (DeleteSummary, error) {
	var out DeleteSummary
	if err := c.do(ctx, http.MethodDelete, "/api/employees/"+url.PathEscape(employeeID), nil, &out); err != nil {
		return DeleteSummary{}, err
	}
	return out, nil
}
