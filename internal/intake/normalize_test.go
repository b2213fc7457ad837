package intake

import (
	"strings"
	"testing"
	"time"

	"github.com/md-rashed-zaman/apptintake/internal/model"
)

func TestNormalizeCanonicalizesStartAt(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2025-09-20T18:00Z", "2025-09-20T18:00:00Z"},
		{"2025-09-20T18:00+02:00", "2025-09-20T16:00:00Z"},
		{"2025-09-20T18:00-05:30", "2025-09-20T23:30:00Z"},
		// Defense in depth: validation forbids seconds, normalization
		// floors them anyway.
		{"2025-09-20T18:00:42Z", "2025-09-20T18:00:00Z"},
	}
	for _, tc := range cases {
		req := validRequest()
		req.StartAt = tc.in
		norm, err := Normalize(req)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.in, err)
		}
		if norm.StartAt != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.in, tc.want, norm.StartAt)
		}
	}
}

func TestCanonicalMinuteUTCIdempotent(t *testing.T) {
	inputs := []string{
		"2025-09-20T18:00Z",
		"2025-12-31T23:45+09:00",
		"2025-01-01T00:15-08:00",
	}
	for _, in := range inputs {
		first, err := ParseTimestamp(in)
		if err != nil {
			t.Fatalf("%q: parse failed: %v", in, err)
		}
		once := CanonicalMinuteUTC(first)

		again, err := ParseTimestamp(once)
		if err != nil {
			t.Fatalf("%q: canonical form did not reparse: %v", once, err)
		}
		if twice := CanonicalMinuteUTC(again); twice != once {
			t.Fatalf("%q: expected idempotent canonicalization, got %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeTrimsAndBoundsFields(t *testing.T) {
	req := validRequest()
	req.ClientName = "  " + strings.Repeat("n", 130) + "  "
	req.ClientEmail = "  Jane.DOE@Example.COM  "
	req.ClientPhone = "  +1 555 000 1234  "

	norm, err := Normalize(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len([]rune(norm.ClientName)) != 120 {
		t.Fatalf("expected name capped at 120 runes, got %d", len([]rune(norm.ClientName)))
	}
	if norm.ClientEmail != "jane.doe@example.com" {
		t.Fatalf("expected lower-cased trimmed email, got %q", norm.ClientEmail)
	}
	if norm.ClientPhone != "+1 555 000 1234" {
		t.Fatalf("expected trimmed phone, got %q", norm.ClientPhone)
	}
	if norm.ServiceID != 1 {
		t.Fatalf("expected serviceId 1, got %d", norm.ServiceID)
	}
}

func TestNormalizeLeavesAbsentContactEmpty(t *testing.T) {
	req := validRequest()
	req.ClientEmail = nil
	req.ClientPhone = "12345678"
	norm, err := Normalize(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if norm.ClientEmail != "" {
		t.Fatalf("expected empty email, got %q", norm.ClientEmail)
	}
	if norm.ClientPhone != "12345678" {
		t.Fatalf("expected phone kept, got %q", norm.ClientPhone)
	}
}

func TestNormalizeRejectsContractViolation(t *testing.T) {
	req := model.AppointmentRequest{ServiceID: "bogus"}
	if _, err := Normalize(req); err == nil {
		t.Fatal("expected error for unvalidated input")
	}
}

func TestParseTimestampRespectsOffset(t *testing.T) {
	got, err := ParseTimestamp("2025-09-20T18:00+02:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 9, 20, 16, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
