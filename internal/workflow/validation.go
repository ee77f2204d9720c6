// Package workflow holds the client-side gatekeepers that sit between the
// operator's input and the record service: pure candidate validation,
// submission orchestration, and classification of server rejections into
// user-facing messages.
package workflow

// Reason tags a validation failure so callers can branch without parsing
// the user-facing message.
type Reason string

const (
	// Attendance candidates.
	ReasonMissingEmployee Reason = "missing_employee"
	ReasonMissingDate     Reason = "missing_date"
	ReasonMissingStatus   Reason = "missing_status"
	ReasonBadDateFormat   Reason = "bad_date_format"
	ReasonFutureDate      Reason = "future_date"
	ReasonDateTooOld      Reason = "date_too_old"
	ReasonBadStatus       Reason = "bad_status"

	// Employee candidates.
	ReasonMissingEmployeeID Reason = "missing_employee_id"
	ReasonMissingFullName   Reason = "missing_full_name"
	ReasonMissingEmail      Reason = "missing_email"
	ReasonMissingDepartment Reason = "missing_department"
	ReasonBadEmail          Reason = "bad_email"
	ReasonAllFieldsEqual    Reason = "all_fields_equal"
	ReasonEmployeeIDTooLong Reason = "employee_id_too_long"
	ReasonFullNameTooLong   Reason = "full_name_too_long"
	ReasonDepartmentTooLong Reason = "department_too_long"
)

// ValidationResult is either passing (zero value) or one tagged failure
// with its banner message.
type ValidationResult struct {
	Reason  Reason
	Message string
}

func (r ValidationResult) OK() bool {
	return r.Reason == ""
}

func fail(reason Reason, message string) ValidationResult {
	return ValidationResult{Reason: reason, Message: message}
}
