package workflow

import (
	"context"
	"sync"

	"github.com/aadesh1214/hrms-lite/internal/hrmsclient"
)

// EmployeeDirectory is the read-mostly local snapshot of the employee
// list. Each refresh replaces the snapshot wholesale; concurrent
// refreshes simply race to be last, which is fine because every fetch is
// idempotent.
type EmployeeDirectory struct {
	api hrmsclient.EmployeeAPI

	mu        sync.RWMutex
	employees []hrmsclient.Employee
}

func NewEmployeeDirectory(api hrmsclient.EmployeeAPI) *EmployeeDirectory {
	return &EmployeeDirectory{api: api}
}

func (d *EmployeeDirectory) Refresh(ctx context.Context) error {
	employees, err := d.api.ListEmployees(ctx)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.employees = employees
	d.mu.Unlock()
	return nil
}

func (d *EmployeeDirectory) Employees() []hrmsclient.Employee {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.employees
}

// DisplayName resolves an employee identifier to the full name from the
// cached snapshot, falling back to the raw identifier when the cache does
// not know it (e.g. the snapshot is stale).
func (d *EmployeeDirectory) DisplayName(employeeID string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, e := range d.employees {
		if e.EmployeeID == employeeID {
			return e.FullName
		}
	}
	return employeeID
}
