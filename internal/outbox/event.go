package outbox

// Event is the domain event envelope written to the outbox table.
// The Kafka topic name equals EventType (event per topic).
type Event struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// AppointmentPending is emitted once per accepted intake; downstream
// consumers (reminders, notifications) react to it. Delivery itself is
// not this service's concern.
const AppointmentPending = "booking.appointment.pending.v1"
