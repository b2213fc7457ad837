// Package intake implements the appointment intake pipeline: field
// validation, normalization, schedule policy, and orchestration of the
// resulting record into storage.
package intake

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/md-rashed-zaman/apptintake/internal/model"
)

const (
	maxNameLength  = 120
	maxEmailLength = 255
	minPhoneLength = 7
	maxPhoneLength = 40
)

// Rejection messages returned to callers. Exported so the HTTP layer
// and its tests can match on exact strings.
const (
	MsgServiceID       = "serviceId must be a positive integer"
	MsgStartAt         = "startAt must be a minute-precision ISO-8601 timestamp (e.g. 2025-09-20T18:00Z)"
	MsgClientName      = "clientName is required"
	MsgContactRequired = "at least one of clientEmail or clientPhone is required"
	MsgClientEmail     = "clientEmail must be a valid email address of at most 255 characters"
	MsgClientPhone     = "clientPhone must be between 7 and 40 characters"
	MsgClientNameLong  = "clientName must be at most 120 characters"
)

// minuteLayout accepts Z or a ±HH:MM offset but no seconds.
const minuteLayout = "2006-01-02T15:04Z07:00"

var (
	// Seconds and fractional seconds are excluded at the pattern level,
	// not truncated away later.
	startAtPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}(Z|[+-]\d{2}:\d{2})$`)

	// Permissive local@domain.tld shape: no whitespace, no second @,
	// at least one dot-separated domain suffix.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidateRequest checks the raw payload and returns every rule
// violation in field-declaration order. All checks run unconditionally
// so the caller gets the complete list in one round trip. An empty
// result means the request is valid. Pure function.
func ValidateRequest(req model.AppointmentRequest) []string {
	var errs []string

	if _, ok := positiveInteger(req.ServiceID); !ok {
		errs = append(errs, MsgServiceID)
	}

	if s, ok := req.StartAt.(string); !ok || !validStartAt(s) {
		errs = append(errs, MsgStartAt)
	}

	name, _ := req.ClientName.(string)
	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" {
		errs = append(errs, MsgClientName)
	}

	emailPresent := present(req.ClientEmail)
	phonePresent := present(req.ClientPhone)
	if !emailPresent && !phonePresent {
		errs = append(errs, MsgContactRequired)
	}

	if emailPresent && !validEmail(req.ClientEmail) {
		errs = append(errs, MsgClientEmail)
	}

	if phonePresent && !validPhone(req.ClientPhone) {
		errs = append(errs, MsgClientPhone)
	}

	if utf8.RuneCountInString(trimmedName) > maxNameLength {
		errs = append(errs, MsgClientNameLong)
	}

	return errs
}

func validStartAt(s string) bool {
	if !startAtPattern.MatchString(s) {
		return false
	}
	// The pattern guarantees shape; the parse rejects impossible dates
	// like 2025-02-30.
	_, err := time.Parse(minuteLayout, s)
	return err == nil
}

func validEmail(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	trimmed := strings.TrimSpace(s)
	return emailPattern.MatchString(trimmed) && utf8.RuneCountInString(trimmed) <= maxEmailLength
}

func validPhone(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	return n >= minPhoneLength && n <= maxPhoneLength
}

// present reports whether an optional field carries a usable value.
// nil and the empty string count as absent.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	default:
		return true
	}
}

// positiveInteger coerces the serviceId field. JSON numbers arrive as
// float64; callers constructing requests in Go may pass int variants.
func positiveInteger(v any) (int64, bool) {
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) || t <= 0 || t > math.MaxInt64 {
			return 0, false
		}
		return int64(t), true
	case json.Number:
		n, err := t.Int64()
		if err != nil || n <= 0 {
			return 0, false
		}
		return n, true
	case int:
		if t <= 0 {
			return 0, false
		}
		return int64(t), true
	case int64:
		if t <= 0 {
			return 0, false
		}
		return t, true
	default:
		return 0, false
	}
}
