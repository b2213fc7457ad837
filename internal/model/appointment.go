package model

// StatusPending is the only status the intake pipeline ever writes.
// Lifecycle transitions (confirm, cancel) happen elsewhere.
const StatusPending = "pending"

// AppointmentRequest is the raw, untrusted booking payload. The fields
// are deliberately untyped: nothing holds on this type until the
// validator has run.
type AppointmentRequest struct {
	ServiceID   any `json:"serviceId"`
	StartAt     any `json:"startAt"`
	ClientName  any `json:"clientName"`
	ClientEmail any `json:"clientEmail"`
	ClientPhone any `json:"clientPhone"`
}

// NormalizedAppointment is the canonical form produced after a request
// passed validation: serviceId coerced, strings trimmed and bounded,
// startAt rendered as a minute-precision UTC timestamp
// (YYYY-MM-DDTHH:MM:00Z). An empty ClientEmail/ClientPhone means the
// field was absent; at least one of the two is present.
type NormalizedAppointment struct {
	ServiceID   int64
	StartAt     string
	ClientName  string
	ClientEmail string
	ClientPhone string
}

// AppointmentRecord is the persistable unit handed to storage. It is
// constructed exactly once per accepted request and never mutated by
// the intake pipeline.
type AppointmentRecord struct {
	ID string
	NormalizedAppointment
	EndAt        string
	Status       string
	ConfirmToken string
	CancelToken  string
}
