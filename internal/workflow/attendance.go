package workflow

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aadesh1214/hrms-lite/internal/hrmsclient"
)

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

const (
	msgSelectEmployee = "❌ Please select an employee"
	msgSelectDate     = "❌ Please select a date"
	msgSelectStatus   = "❌ Please select a status (Present or Absent)"
	msgBadDateFormat  = "❌ Invalid date format. Please use YYYY-MM-DD format"
	msgFutureDate     = "❌ Attendance date cannot be in the future. Please select today or an earlier date."
	msgDateTooOld     = "❌ Attendance date cannot be more than 5 years in the past"
	msgBadStatus      = `❌ Status must be either "Present" or "Absent"`

	msgDuplicateAttendance = "❌ Attendance already marked for this employee on this date"
	msgEmployeeMissing     = "❌ Selected employee no longer exists. Please refresh the page."
	msgMarkFailed          = "❌ Failed to mark attendance. Please try again."
	msgLoadAttendance      = "❌ Failed to load attendance records"
)

var dateFormatRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// AttendanceCandidate is the raw operator input for a mark request,
// before any validation.
type AttendanceCandidate struct {
	EmployeeID string
	Date       string
	Status     string
}

// ValidateAttendance checks a candidate against the submission rules and
// returns the first failure. Checks run in a fixed order and short
// circuit, so the operator always sees the most actionable message.
// "Today" is derived from now's calendar date; the date limits are
// inclusive on both ends.
func ValidateAttendance(cand AttendanceCandidate, now time.Time) ValidationResult {
	if strings.TrimSpace(cand.EmployeeID) == "" {
		return fail(ReasonMissingEmployee, msgSelectEmployee)
	}
	if strings.TrimSpace(cand.Date) == "" {
		return fail(ReasonMissingDate, msgSelectDate)
	}
	if strings.TrimSpace(cand.Status) == "" {
		return fail(ReasonMissingStatus, msgSelectStatus)
	}

	if !dateFormatRe.MatchString(cand.Date) {
		return fail(ReasonBadDateFormat, msgBadDateFormat)
	}
	date, err := time.ParseInLocation("2006-01-02", cand.Date, now.Location())
	if err != nil {
		return fail(ReasonBadDateFormat, msgBadDateFormat)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.After(today) {
		return fail(ReasonFutureDate, msgFutureDate)
	}
	if date.Before(today.AddDate(-5, 0, 0)) {
		return fail(ReasonDateTooOld, msgDateTooOld)
	}

	if cand.Status != StatusPresent && cand.Status != StatusAbsent {
		return fail(ReasonBadStatus, msgBadStatus)
	}

	return ValidationResult{}
}

// AttendanceWorkflow drives the mark-attendance flow: validate locally,
// submit, classify failures into banner messages, and keep the local
// record list fresh.
type AttendanceWorkflow struct {
	api       hrmsclient.AttendanceAPI
	directory *EmployeeDirectory
	status    *StatusBoard
	now       func() time.Time
	logger    *zap.Logger

	// Candidate is the bound form state; Mark consumes it and resets it
	// to the defaults on success.
	Candidate AttendanceCandidate

	records recordSnapshot
}

func NewAttendanceWorkflow(api hrmsclient.AttendanceAPI, directory *EmployeeDirectory, status *StatusBoard, logger ...*zap.Logger) *AttendanceWorkflow {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &AttendanceWorkflow{
		api:       api,
		directory: directory,
		status:    status,
		now:       time.Now,
		logger:    l.Named("workflow.attendance"),
		Candidate: AttendanceCandidate{Status: StatusPresent},
	}
}

// Refresh reloads the attendance record list from the service. The
// snapshot keeps the server's ordering (newest date first).
func (w *AttendanceWorkflow) Refresh(ctx context.Context) error {
	records, err := w.api.ListAttendance(ctx)
	if err != nil {
		w.logger.Error("failed to load attendance records", zap.Error(err))
		w.status.Error(msgLoadAttendance)
		return err
	}
	w.records.replace(records)
	return nil
}

func (w *AttendanceWorkflow) Records() []hrmsclient.Attendance {
	return w.records.snapshot()
}

// Mark validates the current candidate and submits it. Validation
// failures set the error banner and never reach the network. On success
// the candidate resets to its defaults and the record list refreshes; a
// failed refresh after a successful mark is logged but does not fail the
// mark.
func (w *AttendanceWorkflow) Mark(ctx context.Context) error {
	w.status.Reset()

	cand := w.Candidate
	if res := ValidateAttendance(cand, w.now()); !res.OK() {
		w.status.Error(res.Message)
		return errors.New(string(res.Reason))
	}

	_, err := w.api.MarkAttendance(ctx, hrmsclient.NewAttendance{
		EmployeeID: cand.EmployeeID,
		Date:       cand.Date,
		Status:     cand.Status,
	})
	if err != nil {
		msg := classifyMarkFailure(err)
		w.logger.Error("failed to mark attendance",
			zap.String("employee_id", cand.EmployeeID),
			zap.String("date", cand.Date),
			zap.Error(err))
		w.status.Error(msg)
		return err
	}

	name := w.directory.DisplayName(cand.EmployeeID)
	w.status.Success(fmt.Sprintf("✅ Attendance marked successfully for %s on %s", name, cand.Date))
	w.Candidate = AttendanceCandidate{Status: StatusPresent}

	if err := w.Refresh(ctx); err != nil {
		w.logger.Warn("attendance list refresh after mark failed", zap.Error(err))
	}
	return nil
}

// classifyMarkFailure turns a submission error into the banner message
// the operator sees. Server rejections are matched on detail substrings;
// anything unrecognized, including transport failures, falls back to the
// generic message.
func classifyMarkFailure(err error) string {
	var apiErr *hrmsclient.APIError
	if !errors.As(err, &apiErr) {
		return msgMarkFailed
	}

	if apiErr.Detail != "" {
		detail := apiErr.Detail
		switch {
		case strings.Contains(detail, "already marked"):
			return msgDuplicateAttendance
		case strings.Contains(detail, "not found"):
			return msgEmployeeMissing
		case strings.Contains(detail, "future"):
			return msgFutureDate
		case strings.Contains(detail, "5 years"):
			return msgDateTooOld
		case strings.Contains(detail, "Status must be"):
			return msgBadStatus
		case strings.Contains(detail, "YYYY-MM-DD"):
			return msgBadDateFormat
		default:
			return "❌ " + detail
		}
	}

	if len(apiErr.Fields) > 0 {
		return renderFieldErrors(apiErr.Fields)
	}
	return msgMarkFailed
}

// renderFieldErrors flattens a 422 field-error payload into one banner,
// one "field: message" line per rejected field.
func renderFieldErrors(fields []hrmsclient.FieldError) string {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, fmt.Sprintf("❌ %s: %s", f.Field(), f.Msg))
	}
	return strings.Join(lines, "\n")
}
