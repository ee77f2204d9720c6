package hrmsclient

import (
	"context"
	"net/http"
	"net/url"
)

type Attendance struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

type NewAttendance struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

// AttendanceAPI is the attendance resource; *Client implements it, tests
// swap in fakes.
type AttendanceAPI interface {
	ListAttendance(ctx context.Context) ([]Attendance, error)
	ListEmployeeAttendance(ctx context.Context, employeeID string) ([]Attendance, error)
	MarkAttendance(ctx context.Context, req NewAttendance) (Attendance, error)
}

func (c *Client) ListAttendance(ctx context.Context) ([]Attendance, error) {
	var out []Attendance
	if err := c.do(ctx, http.MethodGet, "/api/attendance/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListEmployeeAttendance(ctx context.Context, employeeID string) ([]Attendance, error) {
	var out []Attendance
	if err := c.do(ctx, http.MethodGet, "/api/attendance/"+url.PathEscape(employeeID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MarkAttendance(ctx context.Context, req NewAttendance) (Attendance, error) {
	var out Attendance
	if err := c.do(ctx, http.MethodPost, "/api/attendance/", req, &out); err != nil {
		return Attendance{}, err
	}
	return out, nil
}
