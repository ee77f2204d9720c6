package workflow

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/aadesh1214/hrms-lite/internal/hrmsclient"
)

const (
	maxEmployeeIDLen = 50
	maxFullNameLen   = 100
	maxDepartmentLen = 50
)

const (
	msgEmployeeIDRequired = "❌ Employee ID is required"
	msgFullNameRequired   = "❌ Full name is required"
	msgEmailRequired      = "❌ Email is required"
	msgDepartmentRequired = "❌ Department is required"
	msgBadEmail           = "❌ Please enter a valid email address"
	msgAllFieldsEqual     = "❌ All fields cannot have the same value. Please provide valid employee information."
	msgEmployeeIDTooLong  = "❌ Employee ID cannot exceed 50 characters"
	msgFullNameTooLong    = "❌ Full name cannot exceed 100 characters"
	msgDepartmentTooLong  = "❌ Department cannot exceed 50 characters"

	msgAddFailed    = "❌ Failed to add employee. Please try again."
	msgDeleteFailed = "❌ Failed to delete employee. Please try again."
	msgLoadFailed   = "❌ Failed to load employees"

	deleteConfirmPrompt = "Are you sure you want to delete this employee? This will also delete all their attendance records."
)

// ErrDeleteCancelled reports that the operator declined the delete
// confirmation; nothing was sent to the service.
var ErrDeleteCancelled = errors.New("delete cancelled")

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EmployeeCandidate is the raw operator input for a new employee.
type EmployeeCandidate struct {
	EmployeeID string
	FullName   string
	Email      string
	Department string
}

// trimmed returns a copy with surrounding whitespace removed from every
// field; validation and submission both operate on the trimmed values.
func (c EmployeeCandidate) trimmed() EmployeeCandidate {
	return EmployeeCandidate{
		EmployeeID: strings.TrimSpace(c.EmployeeID),
		FullName:   strings.TrimSpace(c.FullName),
		Email:      strings.TrimSpace(c.Email),
		Department: strings.TrimSpace(c.Department),
	}
}

// ValidateEmployee checks a candidate against the submission rules in a
// fixed order: required fields first, then email shape, then the
// same-value heuristic, then length caps. The first failure wins.
func ValidateEmployee(cand EmployeeCandidate) ValidationResult {
	c := cand.trimmed()

	if c.EmployeeID == "" {
		return fail(ReasonMissingEmployeeID, msgEmployeeIDRequired)
	}
	if c.FullName == "" {
		return fail(ReasonMissingFullName, msgFullNameRequired)
	}
	if c.Email == "" {
		return fail(ReasonMissingEmail, msgEmailRequired)
	}
	if c.Department == "" {
		return fail(ReasonMissingDepartment, msgDepartmentRequired)
	}

	if !emailRe.MatchString(c.Email) {
		return fail(ReasonBadEmail, msgBadEmail)
	}

	// Case-insensitive, matching the service's junk-data heuristic.
	id, name, email, dept := strings.ToLower(c.EmployeeID), strings.ToLower(c.FullName),
		strings.ToLower(c.Email), strings.ToLower(c.Department)
	if id == name && name == email && email == dept {
		return fail(ReasonAllFieldsEqual, msgAllFieldsEqual)
	}

	if len(c.EmployeeID) > maxEmployeeIDLen {
		return fail(ReasonEmployeeIDTooLong, msgEmployeeIDTooLong)
	}
	if len(c.FullName) > maxFullNameLen {
		return fail(ReasonFullNameTooLong, msgFullNameTooLong)
	}
	if len(c.Department) > maxDepartmentLen {
		return fail(ReasonDepartmentTooLong, msgDepartmentTooLong)
	}

	return ValidationResult{}
}

// ConfirmFunc asks the operator a yes/no question and reports the answer.
type ConfirmFunc func(prompt string) bool

// EmployeeWorkflow drives the add and delete flows for the directory.
type EmployeeWorkflow struct {
	api       hrmsclient.EmployeeAPI
	directory *EmployeeDirectory
	status    *StatusBoard
	confirm   ConfirmFunc
	logger    *zap.Logger

	// Candidate is the bound form state; Add consumes it and clears it
	// on success.
	Candidate EmployeeCandidate
}

func NewEmployeeWorkflow(api hrmsclient.EmployeeAPI, directory *EmployeeDirectory, status *StatusBoard, confirm ConfirmFunc, logger ...*zap.Logger) *EmployeeWorkflow {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	if confirm == nil {
		confirm = func(string) bool { return true }
	}
	return &EmployeeWorkflow{
		api:       api,
		directory: directory,
		status:    status,
		confirm:   confirm,
		logger:    l.Named("workflow.employee"),
	}
}

// Refresh reloads the employee directory snapshot.
func (w *EmployeeWorkflow) Refresh(ctx context.Context) error {
	if err := w.directory.Refresh(ctx); err != nil {
		w.logger.Error("failed to load employees", zap.Error(err))
		w.status.Error(msgLoadFailed)
		return err
	}
	return nil
}

// Add validates the current candidate and submits it. Validation
// failures set the error banner and never reach the network. Uniqueness
// is not checked locally; the service is the source of truth and its
// rejection is surfaced verbatim.
func (w *EmployeeWorkflow) Add(ctx context.Context) error {
	w.status.Reset()

	cand := w.Candidate.trimmed()
	if res := ValidateEmployee(cand); !res.OK() {
		w.status.Error(res.Message)
		return errors.New(string(res.Reason))
	}

	created, err := w.api.CreateEmployee(ctx, hrmsclient.NewEmployee{
		EmployeeID: cand.EmployeeID,
		FullName:   cand.FullName,
		Email:      cand.Email,
		Department: cand.Department,
	})
	if err != nil {
		msg := classifyEmployeeFailure(err, msgAddFailed)
		w.logger.Error("failed to add employee",
			zap.String("employee_id", cand.EmployeeID),
			zap.Error(err))
		w.status.Error(msg)
		return err
	}

	w.status.Success(fmt.Sprintf("✅ Employee %s added successfully", created.FullName))
	w.Candidate = EmployeeCandidate{}

	if err := w.Refresh(ctx); err != nil {
		w.logger.Warn("directory refresh after add failed", zap.Error(err))
	}
	return nil
}

// Delete asks for confirmation, then removes the employee and all their
// attendance records. A declined confirmation returns ErrDeleteCancelled
// without touching the network.
func (w *EmployeeWorkflow) Delete(ctx context.Context, employeeID string) error {
	w.status.Reset()

	if !w.confirm(deleteConfirmPrompt) {
		return ErrDeleteCancelled
	}

	summary, err := w.api.DeleteEmployee(ctx, employeeID)
	if err != nil {
		msg := classifyEmployeeFailure(err, msgDeleteFailed)
		w.logger.Error("failed to delete employee",
			zap.String("employee_id", employeeID),
			zap.Error(err))
		w.status.Error(msg)
		return err
	}

	message := summary.Message
	if message == "" {
		message = fmt.Sprintf("Employee '%s' deleted successfully", employeeID)
	}
	w.status.Success(fmt.Sprintf("✅ %s (%d attendance records removed)", message, summary.DeletedAttendanceRecords))

	if err := w.Refresh(ctx); err != nil {
		w.logger.Warn("directory refresh after delete failed", zap.Error(err))
	}
	return nil
}

// classifyEmployeeFailure surfaces the service's detail message when one
// exists and falls back to the given generic banner otherwise.
func classifyEmployeeFailure(err error, fallback string) string {
	var apiErr *hrmsclient.APIError
	if !errors.As(err, &apiErr) {
		return fallback
	}
	if apiErr.Detail != "" {
		return "❌ " + apiErr.Detail
	}
	if len(apiErr.Fields) > 0 {
		return renderFieldErrors(apiErr.Fields)
	}
	return fallback
}
