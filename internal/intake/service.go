package intake

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/md-rashed-zaman/apptintake/internal/model"
)

// DefaultDurationMinutes stands in for a per-service duration lookup
// that does not exist yet.
const DefaultDurationMinutes = 60

// Store persists an accepted record. The insert must be atomic; the
// pipeline never retries it.
type Store interface {
	CreateAppointment(ctx context.Context, rec model.AppointmentRecord) error
}

type Config struct {
	// SlotGridMinutes enables the grid-alignment check; 0 leaves the
	// check deliberately unwired.
	SlotGridMinutes int
	// DurationMinutes is the appointment length used to derive endAt.
	DurationMinutes int
}

// Service orchestrates the intake pipeline. It holds no per-request
// state and is safe for arbitrary concurrent use.
type Service struct {
	store    Store
	grid     *GridRule
	duration time.Duration
	now      func() time.Time
}

func NewService(store Store, cfg Config) *Service {
	d := cfg.DurationMinutes
	if d <= 0 {
		d = DefaultDurationMinutes
	}
	return &Service{
		store:    store,
		grid:     NewGridRule(cfg.SlotGridMinutes),
		duration: time.Duration(d) * time.Minute,
		now:      time.Now,
	}
}

// Result is the outcome of one intake run. Exactly one of the three
// outcomes holds: validation rejection (full error list), policy
// rejection (single message), or acceptance (Record set).
type Result struct {
	ValidationErrors []string
	PolicyError      string
	Record           *model.AppointmentRecord
}

func (r Result) Accepted() bool {
	return r.Record != nil
}

// Process runs the pipeline: validate, normalize, grid check, future
// check, end derivation, identification, persistence. Rejections come
// back inside Result; the error return is reserved for unexpected
// faults, which are forwarded uninterpreted and never retried here.
func (s *Service) Process(ctx context.Context, req model.AppointmentRequest) (Result, error) {
	if errs := ValidateRequest(req); len(errs) > 0 {
		return Result{ValidationErrors: errs}, nil
	}

	norm, err := Normalize(req)
	if err != nil {
		return Result{}, err
	}

	start, err := ParseTimestamp(norm.StartAt)
	if err != nil {
		return Result{}, fmt.Errorf("canonical startAt %q unparsable: %w", norm.StartAt, err)
	}

	if s.grid != nil {
		if err := s.grid.Check(start); err != nil {
			return Result{PolicyError: err.Error()}, nil
		}
	}

	if err := checkFuture(start, s.now()); err != nil {
		return Result{PolicyError: err.Error()}, nil
	}

	rec := model.AppointmentRecord{
		ID:                    uuid.NewString(),
		NormalizedAppointment: norm,
		EndAt:                 CanonicalMinuteUTC(start.Add(s.duration)),
		Status:                model.StatusPending,
		ConfirmToken:          newToken(),
		CancelToken:           newToken(),
	}

	if err := s.store.CreateAppointment(ctx, rec); err != nil {
		return Result{}, fmt.Errorf("create appointment: %w", err)
	}

	return Result{Record: &rec}, nil
}

// newToken draws a 128-bit random identifier. crypto/rand needs no
// coordination between concurrent callers.
func newToken() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
