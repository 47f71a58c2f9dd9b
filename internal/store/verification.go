package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/harshcode1/BetterMind-sub000/internal/model"
)

// VerificationAction is one administrative decision on a doctor account.
// Decisions are retained as an audit trail; the live `verified` flag on the
// user row is what authorization reads.
type VerificationAction struct {
	ID        string
	DoctorID  string
	AdminID   string
	Action    string // "verified" or "rejected"
	Note      string
	CreatedAt time.Time
}

const (
	ActionVerified = "verified"
	ActionRejected = "rejected"
)

// ApplyVerification flips the doctor's verified flag and records the action
// in one transaction, so the flag and its audit row never diverge.
func (s *Store) ApplyVerification(ctx context.Context, doctorID, adminID, action, note string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE users SET verified = $1, updated_at = NOW()
		 WHERE id = $2 AND role = $3`,
		action == ActionVerified, doctorID, model.RoleDoctor,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO verification_actions (id, doctor_id, admin_id, action, note)
		 VALUES ($1,$2,$3,$4,$5)`,
		uuid.New().String(), doctorID, adminID, action, note,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// VerificationHistory lists the recorded decisions for a doctor, oldest first.
func (s *Store) VerificationHistory(ctx context.Context, doctorID string) ([]VerificationAction, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, doctor_id, admin_id, action, note, created_at
		 FROM verification_actions WHERE doctor_id = $1 ORDER BY created_at`, doctorID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []VerificationAction
	for rows.Next() {
		var v VerificationAction
		if err := rows.Scan(&v.ID, &v.DoctorID, &v.AdminID, &v.Action, &v.Note, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
