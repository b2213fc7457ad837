package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/md-rashed-zaman/apptintake/internal/db"
	"github.com/md-rashed-zaman/apptintake/internal/model"
	"github.com/md-rashed-zaman/apptintake/internal/outbox"
)

// AppointmentRepository owns the durable copy of accepted appointment
// records. The insert and the outbox event share one transaction.
type AppointmentRepository struct {
	pool       *db.Pool
	outboxRepo *outbox.Repository
}

func NewAppointmentRepository(pool *db.Pool, outboxRepo *outbox.Repository) *AppointmentRepository {
	return &AppointmentRepository{pool: pool, outboxRepo: outboxRepo}
}

// CreateAppointment atomically inserts the record and its pending
// event. startAt/endAt cross the wire as canonical minute-UTC strings;
// Postgres parses them into timestamptz columns.
func (r *AppointmentRepository) CreateAppointment(ctx context.Context, rec model.AppointmentRecord) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO appointments
			(id, service_id, start_at, end_at, client_name, client_email, client_phone, status, confirm_token, cancel_token)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10)
	`, rec.ID, rec.ServiceID, rec.StartAt, rec.EndAt, rec.ClientName, rec.ClientEmail, rec.ClientPhone,
		rec.Status, rec.ConfirmToken, rec.CancelToken)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}

	if err := r.insertPendingEvent(ctx, tx, rec); err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) insertPendingEvent(ctx context.Context, tx pgx.Tx, rec model.AppointmentRecord) error {
	payload, err := json.Marshal(map[string]any{
		"appointment_id": rec.ID,
		"service_id":     rec.ServiceID,
		"client_name":    rec.ClientName,
		"client_email":   rec.ClientEmail,
		"client_phone":   rec.ClientPhone,
		"start_at":       rec.StartAt,
		"end_at":         rec.EndAt,
		"status":         rec.Status,
	})
	if err != nil {
		return err
	}
	return r.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "appointment",
		AggregateID:   rec.ID,
		EventType:     outbox.AppointmentPending,
		Payload:       payload,
	})
}

func IsConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
