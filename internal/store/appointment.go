package store

import (
	"context"

	"github.com/harshcode1/BetterMind-sub000/internal/model"
)

const apptCols = `id, patient_id, provider_id, date::text, slot, reason,
	status, created_at, updated_at`

// CreateAppointment persists a new scheduled appointment. The partial unique
// index on (provider_id, date, slot) for non-cancelled rows is the
// authoritative guard: a concurrent booking for the same slot loses the race
// here and gets ErrSlotTaken, regardless of what SlotTaken reported earlier.
func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO appointments (id, patient_id, provider_id, date, slot, reason, status)
		 VALUES ($1,$2,$3,$4::date,$5,$6,$7)`,
		a.ID, a.PatientID, a.ProviderID, a.Date, a.Slot, a.Reason, a.Status,
	)
	if isUniqueViolation(err) {
		return ErrSlotTaken
	}
	return err
}

// SlotTaken reports whether an active appointment already occupies
// (providerID, date, slot). excludeID skips the appointment being
// rescheduled so it does not conflict with itself. This is the friendly
// pre-check; the unique index still backs it under concurrency.
func (s *Store) SlotTaken(ctx context.Context, providerID, date, slot, excludeID string) (bool, error) {
	q := `SELECT EXISTS(
		SELECT 1 FROM appointments
		WHERE provider_id = $1
		  AND date = $2::date
		  AND slot = $3
		  AND status <> 'cancelled'`
	args := []any{providerID, date, slot}

	if excludeID != "" {
		q += ` AND id <> $4`
		args = append(args, excludeID)
	}
	q += `)`

	var exists bool
	err := s.pool.QueryRow(ctx, q, args...).Scan(&exists)
	return exists, err
}

func (s *Store) GetAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := s.pool.QueryRow(ctx,
		`SELECT `+apptCols+` FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.PatientID, &a.ProviderID, &a.Date, &a.Slot, &a.Reason,
		&a.Status, &a.CreatedAt, &a.UpdatedAt)
	if notFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// RescheduleAppointment moves a scheduled appointment to a new (date, slot).
// A single conditional UPDATE keeps the change all-or-nothing; the unique
// index turns a lost race into ErrSlotTaken with no state committed.
func (s *Store) RescheduleAppointment(ctx context.Context, id, date, slot string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE appointments
		 SET date = $1::date, slot = $2, updated_at = NOW()
		 WHERE id = $3 AND status = 'scheduled'`,
		date, slot, id,
	)
	if isUniqueViolation(err) {
		return ErrSlotTaken
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CancelAppointment marks an appointment cancelled. Cancelling an already
// cancelled appointment is a no-op success; there is no transition out of
// cancelled and no hard delete.
func (s *Store) CancelAppointment(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE appointments SET status = 'cancelled', updated_at = NOW()
		 WHERE id = $1`, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAppointmentsForUser returns the appointments a user participates in,
// as patient or as provider, newest day first.
func (s *Store) ListAppointmentsForUser(ctx context.Context, userID string) ([]model.Appointment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+apptCols+` FROM appointments
		 WHERE patient_id = $1 OR provider_id = $1
		 ORDER BY date DESC, slot`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows)
}

// ListActiveByProviderWindow returns non-cancelled appointments for a
// provider whose date falls in [from, from+days). The availability
// calculator subtracts these from the provider's slot grid.
func (s *Store) ListActiveByProviderWindow(ctx context.Context, providerID, from string, days int) ([]model.Appointment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+apptCols+` FROM appointments
		 WHERE provider_id = $1
		   AND status <> 'cancelled'
		   AND date >= $2::date
		   AND date < $2::date + $3
		 ORDER BY date, slot`, providerID, from, days,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanAppointments(rows rowScanner) ([]model.Appointment, error) {
	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(
			&a.ID, &a.PatientID, &a.ProviderID, &a.Date, &a.Slot, &a.Reason,
			&a.Status, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
