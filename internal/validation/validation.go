// Package validation checks raw registration payloads before they touch the
// database. The payload arrives as an untyped key-value mapping straight off
// the wire: no field is assumed present or well-typed, and a wrong type
// counts as a validation failure, never as an error.
//
// The same rules run on the server (authoritative) and in pkg/client (for
// immediate feedback before submitting).
package validation

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"congreso/internal/models"
)

// Field names as they appear on the wire.
const (
	FieldFullName     = "full_name"
	FieldEmail        = "email"
	FieldInstitution  = "institution"
	FieldPhone        = "phone"
	FieldCommissionID = "commission_id"
	FieldWorkTitle    = "work_title"
	FieldWorkSummary  = "work_summary"
)

// Human-readable rule violations, surfaced verbatim to the caller.
const (
	MsgFullNameTooShort    = "Full name must be at least 3 characters long."
	MsgEmailInvalid        = "Email address is not valid."
	MsgInstitutionTooShort = "Institution must be at least 3 characters long."
	MsgCommissionInvalid   = "A valid commission must be selected."
	MsgWorkTitleTooShort   = "Work title must be at least 5 characters long."
	MsgWorkSummaryTooShort = "Work summary must be at least 50 characters long."
	MsgWorkSummaryTooLong  = "Work summary cannot exceed 5000 characters."
)

// Shape check only: something@something.tld with no whitespace. Full RFC
// validation is out of scope.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s]+$`)

// Result is the verdict for one payload. Errors preserves rule order
// (name, email, institution, commission, title, summary-min, summary-max);
// FieldErrors maps each failing field to its first message, for form
// highlighting on the client.
type Result struct {
	Valid       bool
	Errors      []string
	FieldErrors map[string]string
}

// Validate evaluates every rule independently and collects all violations;
// it never short-circuits. It has no side effects and performs no I/O.
func Validate(payload map[string]interface{}) Result {
	var errs []string
	fields := make(map[string]string)

	fail := func(field, msg string) {
		errs = append(errs, msg)
		if _, seen := fields[field]; !seen {
			fields[field] = msg
		}
	}

	// Lengths count characters, not bytes: "ñoño" is four characters even
	// though it is six bytes of UTF-8.
	if name, ok := stringField(payload, FieldFullName); !ok || utf8.RuneCountInString(strings.TrimSpace(name)) < 3 {
		fail(FieldFullName, MsgFullNameTooShort)
	}

	if email, ok := stringField(payload, FieldEmail); !ok || !emailPattern.MatchString(email) {
		fail(FieldEmail, MsgEmailInvalid)
	}

	if inst, ok := stringField(payload, FieldInstitution); !ok || utf8.RuneCountInString(strings.TrimSpace(inst)) < 3 {
		fail(FieldInstitution, MsgInstitutionTooShort)
	}

	if _, ok := intField(payload, FieldCommissionID); !ok {
		fail(FieldCommissionID, MsgCommissionInvalid)
	}

	if title, ok := stringField(payload, FieldWorkTitle); !ok || utf8.RuneCountInString(strings.TrimSpace(title)) < 5 {
		fail(FieldWorkTitle, MsgWorkTitleTooShort)
	}

	summary, summaryOK := stringField(payload, FieldWorkSummary)
	if !summaryOK || utf8.RuneCountInString(strings.TrimSpace(summary)) < 50 {
		fail(FieldWorkSummary, MsgWorkSummaryTooShort)
	}
	// Upper bound runs on the raw value; both summary messages may fire for
	// the same payload (e.g. 6000 characters of whitespace).
	if summaryOK && utf8.RuneCountInString(summary) > 5000 {
		fail(FieldWorkSummary, MsgWorkSummaryTooLong)
	}

	return Result{
		Valid:       len(errs) == 0,
		Errors:      errs,
		FieldErrors: fields,
	}
}

// Draft converts a payload that passed Validate into a Registration ready for
// insert: names and titles trimmed, email lower-cased and trimmed, phone
// trimmed or nil. Calling Draft on an unvalidated payload yields zero values
// for whatever is missing.
func Draft(payload map[string]interface{}) models.Registration {
	reg := models.Registration{}

	if v, ok := stringField(payload, FieldFullName); ok {
		reg.FullName = strings.TrimSpace(v)
	}
	if v, ok := stringField(payload, FieldEmail); ok {
		reg.Email = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := stringField(payload, FieldInstitution); ok {
		reg.Institution = strings.TrimSpace(v)
	}
	if v, ok := stringField(payload, FieldPhone); ok {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			reg.Phone = &trimmed
		}
	}
	if v, ok := intField(payload, FieldCommissionID); ok {
		reg.CommissionID = v
	}
	if v, ok := stringField(payload, FieldWorkTitle); ok {
		reg.WorkTitle = strings.TrimSpace(v)
	}
	if v, ok := stringField(payload, FieldWorkSummary); ok {
		reg.WorkSummary = strings.TrimSpace(v)
	}

	return reg
}

func stringField(payload map[string]interface{}, key string) (string, bool) {
	v, ok := payload[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// intField accepts any integral numeric value: encoding/json decodes numbers
// as float64, while Go callers pass int or int64. Any integer passes,
// including zero and negatives; a nonexistent id is rejected later by the
// commission-existence check.
func intField(payload map[string]interface{}, key string) (int64, bool) {
	switch v := payload[key].(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, false
		}
		return int64(v), true
	default:
		return 0, false
	}
}
