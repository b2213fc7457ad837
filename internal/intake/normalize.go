package intake

import (
	"fmt"
	"strings"
	"time"

	"github.com/md-rashed-zaman/apptintake/internal/model"
)

// Normalize produces the canonical representation of a request that
// already passed ValidateRequest. The input is not mutated. A failure
// here is a contract violation (the caller skipped validation) and is
// surfaced as an error rather than a rejection.
func Normalize(req model.AppointmentRequest) (model.NormalizedAppointment, error) {
	serviceID, ok := positiveInteger(req.ServiceID)
	if !ok {
		return model.NormalizedAppointment{}, fmt.Errorf("normalize: serviceId %v is not a positive integer", req.ServiceID)
	}

	rawStart, _ := req.StartAt.(string)
	start, err := ParseTimestamp(rawStart)
	if err != nil {
		return model.NormalizedAppointment{}, fmt.Errorf("normalize: startAt %q: %w", rawStart, err)
	}

	name, _ := req.ClientName.(string)
	norm := model.NormalizedAppointment{
		ServiceID:  serviceID,
		StartAt:    CanonicalMinuteUTC(start),
		ClientName: truncateRunes(strings.TrimSpace(name), maxNameLength),
	}

	if email, ok := req.ClientEmail.(string); ok && email != "" {
		norm.ClientEmail = truncateRunes(strings.ToLower(strings.TrimSpace(email)), maxEmailLength)
	}
	if phone, ok := req.ClientPhone.(string); ok && phone != "" {
		norm.ClientPhone = truncateRunes(strings.TrimSpace(phone), maxPhoneLength)
	}

	return norm, nil
}

// ParseTimestamp parses a minute-precision ISO-8601 timestamp with Z or
// offset. RFC 3339 inputs with seconds are accepted as a fallback:
// validation forbids them, but normalization floors them away anyway.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(minuteLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// CanonicalMinuteUTC floors t to the minute boundary and renders it in
// the exact storage form YYYY-MM-DDTHH:MM:00Z. Applying it to an
// already-canonical value is a no-op, whatever offset the input
// carried.
func CanonicalMinuteUTC(t time.Time) string {
	return t.UTC().Truncate(time.Minute).Format("2006-01-02T15:04") + ":00Z"
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
