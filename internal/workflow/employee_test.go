package workflow_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/aadesh1214/hrms-lite/internal/hrmsclient"
	"github.com/aadesh1214/hrms-lite/internal/workflow"
)

func TestValidateEmployee(t *testing.T) {
	valid := workflow.EmployeeCandidate{
		EmployeeID: "EMP-1",
		FullName:   "Budi Santoso",
		Email:      "budi@example.com",
		Department: "Engineering",
	}

	tests := []struct {
		name   string
		mutate func(c *workflow.EmployeeCandidate)
		want   workflow.Reason
	}{
		{
			name:   "valid candidate",
			mutate: func(c *workflow.EmployeeCandidate) {},
			want:   "",
		},
		{
			name:   "missing employee id",
			mutate: func(c *workflow.EmployeeCandidate) { c.EmployeeID = "  " },
			want:   workflow.ReasonMissingEmployeeID,
		},
		{
			name:   "missing full name",
			mutate: func(c *workflow.EmployeeCandidate) { c.FullName = "" },
			want:   workflow.ReasonMissingFullName,
		},
		{
			name:   "missing email",
			mutate: func(c *workflow.EmployeeCandidate) { c.Email = "" },
			want:   workflow.ReasonMissingEmail,
		},
		{
			name:   "missing department",
			mutate: func(c *workflow.EmployeeCandidate) { c.Department = "" },
			want:   workflow.ReasonMissingDepartment,
		},
		{
			name: "employee id check wins when everything is missing",
			mutate: func(c *workflow.EmployeeCandidate) {
				*c = workflow.EmployeeCandidate{}
			},
			want: workflow.ReasonMissingEmployeeID,
		},
		{
			name:   "email without at sign",
			mutate: func(c *workflow.EmployeeCandidate) { c.Email = "budi.example.com" },
			want:   workflow.ReasonBadEmail,
		},
		{
			name:   "email without domain dot",
			mutate: func(c *workflow.EmployeeCandidate) { c.Email = "budi@example" },
			want:   workflow.ReasonBadEmail,
		},
		{
			name:   "email with whitespace",
			mutate: func(c *workflow.EmployeeCandidate) { c.Email = "bu di@example.com" },
			want:   workflow.ReasonBadEmail,
		},
		{
			name: "every field the same value",
			mutate: func(c *workflow.EmployeeCandidate) {
				*c = workflow.EmployeeCandidate{
					EmployeeID: "a@b.co",
					FullName:   "a@b.co",
					Email:      "a@b.co",
					Department: "a@b.co",
				}
			},
			want: workflow.ReasonAllFieldsEqual,
		},
		{
			name: "every field the same value ignoring case",
			mutate: func(c *workflow.EmployeeCandidate) {
				*c = workflow.EmployeeCandidate{
					EmployeeID: "A@b.co",
					FullName:   "a@B.co",
					Email:      "a@b.co",
					Department: "A@B.CO",
				}
			},
			want: workflow.ReasonAllFieldsEqual,
		},
		{
			name: "employee id over fifty characters",
			mutate: func(c *workflow.EmployeeCandidate) {
				c.EmployeeID = strings.Repeat("x", 51)
			},
			want: workflow.ReasonEmployeeIDTooLong,
		},
		{
			name: "full name over one hundred characters",
			mutate: func(c *workflow.EmployeeCandidate) {
				c.FullName = strings.Repeat("x", 101)
			},
			want: workflow.ReasonFullNameTooLong,
		},
		{
			name: "department over fifty characters",
			mutate: func(c *workflow.EmployeeCandidate) {
				c.Department = strings.Repeat("x", 51)
			},
			want: workflow.ReasonDepartmentTooLong,
		},
		{
			name: "length caps apply to the trimmed value",
			mutate: func(c *workflow.EmployeeCandidate) {
				c.EmployeeID = "  " + strings.Repeat("x", 50) + "  "
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand := valid
			tt.mutate(&cand)
			res := workflow.ValidateEmployee(cand)
			assert.Equal(t, tt.want, res.Reason)
		})
	}
}

func newEmployeeFixture(api *fakeEmployeeAPI, confirm workflow.ConfirmFunc) (*workflow.EmployeeWorkflow, *workflow.StatusBoard) {
	directory := workflow.NewEmployeeDirectory(api)
	status := workflow.NewStatusBoard(time.Minute)
	wf := workflow.NewEmployeeWorkflow(api, directory, status, confirm, zap.NewNop())
	return wf, status
}

func TestEmployeeWorkflow_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("junk data rejected before the network", func(t *testing.T) {
		api := &fakeEmployeeAPI{}
		wf, status := newEmployeeFixture(api, nil)

		wf.Candidate = workflow.EmployeeCandidate{
			EmployeeID: "a@b.co",
			FullName:   "a@b.co",
			Email:      "a@b.co",
			Department: "a@b.co",
		}

		err := wf.Add(ctx)

		assert.Error(t, err)
		assert.Equal(t, 0, api.createCalls)
		_, failure := status.Messages()
		assert.Equal(t, "❌ All fields cannot have the same value. Please provide valid employee information.", failure)
	})

	t.Run("success banners with the created name and clears the form", func(t *testing.T) {
		api := &fakeEmployeeAPI{}
		wf, status := newEmployeeFixture(api, nil)

		wf.Candidate = workflow.EmployeeCandidate{
			EmployeeID: "EMP-1",
			FullName:   "Budi Santoso",
			Email:      "budi@example.com",
			Department: "Engineering",
		}

		err := wf.Add(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, api.createCalls)

		success, _ := status.Messages()
		assert.Equal(t, "✅ Employee Budi Santoso added successfully", success)
		assert.Equal(t, workflow.EmployeeCandidate{}, wf.Candidate)
	})

	t.Run("server rejection surfaces the detail verbatim", func(t *testing.T) {
		api := &fakeEmployeeAPI{
			createFn: func(ctx context.Context, req hrmsclient.NewEmployee) (hrmsclient.Employee, error) {
				return hrmsclient.Employee{}, &hrmsclient.APIError{
					StatusCode: 400,
					Detail:     "Employee ID 'EMP-1' already exists",
				}
			},
		}
		wf, status := newEmployeeFixture(api, nil)

		wf.Candidate = workflow.EmployeeCandidate{
			EmployeeID: "EMP-1",
			FullName:   "Budi Santoso",
			Email:      "budi@example.com",
			Department: "Engineering",
		}

		assert.Error(t, wf.Add(ctx))
		_, failure := status.Messages()
		assert.Equal(t, "❌ Employee ID 'EMP-1' already exists", failure)
	})

	t.Run("transport failure falls back to the generic banner", func(t *testing.T) {
		api := &fakeEmployeeAPI{
			createFn: func(ctx context.Context, req hrmsclient.NewEmployee) (hrmsclient.Employee, error) {
				return hrmsclient.Employee{}, errors.New("connection refused")
			},
		}
		wf, status := newEmployeeFixture(api, nil)

		wf.Candidate = workflow.EmployeeCandidate{
			EmployeeID: "EMP-1",
			FullName:   "Budi Santoso",
			Email:      "budi@example.com",
			Department: "Engineering",
		}

		assert.Error(t, wf.Add(ctx))
		_, failure := status.Messages()
		assert.Equal(t, "❌ Failed to add employee. Please try again.", failure)
	})
}

func TestEmployeeWorkflow_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("declined confirmation cancels without the network", func(t *testing.T) {
		api := &fakeEmployeeAPI{}
		var prompted string
		wf, _ := newEmployeeFixture(api, func(prompt string) bool {
			prompted = prompt
			return false
		})

		err := wf.Delete(ctx, "EMP-1")

		assert.ErrorIs(t, err, workflow.ErrDeleteCancelled)
		assert.Equal(t, 0, api.deleteCalls)
		assert.Equal(t, "Are you sure you want to delete this employee? This will also delete all their attendance records.", prompted)
	})

	t.Run("success reports the cascade count", func(t *testing.T) {
		api := &fakeEmployeeAPI{
			deleteFn: func(ctx context.Context, employeeID string) (hrmsclient.DeleteSummary, error) {
				assert.Equal(t, "EMP-1", employeeID)
				return hrmsclient.DeleteSummary{
					Message:                  "Employee 'EMP-1' deleted successfully",
					DeletedEmployee:          1,
					DeletedAttendanceRecords: 4,
				}, nil
			},
		}
		wf, status := newEmployeeFixture(api, func(string) bool { return true })

		err := wf.Delete(ctx, "EMP-1")

		assert.NoError(t, err)
		success, _ := status.Messages()
		assert.Equal(t, "✅ Employee 'EMP-1' deleted successfully (4 attendance records removed)", success)
	})

	t.Run("server rejection surfaces the detail", func(t *testing.T) {
		api := &fakeEmployeeAPI{
			deleteFn: func(ctx context.Context, employeeID string) (hrmsclient.DeleteSummary, error) {
				return hrmsclient.DeleteSummary{}, &hrmsclient.APIError{
					StatusCode: 404,
					Detail:     "Employee with ID 'EMP-1' not found",
				}
			},
		}
		wf, status := newEmployeeFixture(api, func(string) bool { return true })

		assert.Error(t, wf.Delete(ctx, "EMP-1"))
		_, failure := status.Messages()
		assert.Equal(t, "❌ Employee with ID 'EMP-1' not found", failure)
	})
}

func TestEmployeeDirectory_DisplayName(t *testing.T) {
	api := &fakeEmployeeAPI{
		listFn: func(ctx context.Context) ([]hrmsclient.Employee, error) {
			return []hrmsclient.Employee{
				{EmployeeID: "EMP-1", FullName: "Budi Santoso"},
			}, nil
		},
	}
	directory := workflow.NewEmployeeDirectory(api)
	assert.NoError(t, directory.Refresh(context.Background()))

	assert.Equal(t, "Budi Santoso", directory.DisplayName("EMP-1"))
	// Unknown and case-mismatched ids fall back to the raw identifier.
	assert.Equal(t, "emp-1", directory.DisplayName("emp-1"))
	assert.Equal(t, "ghost", directory.DisplayName("ghost"))
}
