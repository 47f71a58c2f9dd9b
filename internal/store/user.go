package store

import (
	"context"

	"github.com/harshcode1/BetterMind-sub000/internal/model"
)

const userCols = `id, email, password_hash, name, role, verified,
	working_days, slots, created_at, updated_at`

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	// the array columns are NOT NULL; patients and admins carry no pattern
	if u.WorkingDays == nil {
		u.WorkingDays = []string{}
	}
	if u.Slots == nil {
		u.Slots = []string{}
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, name, role, verified, working_days, slots)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Role, u.Verified, u.WorkingDays, u.Slots,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.scanUser(ctx, `SELECT `+userCols+` FROM users WHERE email = $1`, email)
}

func (s *Store) UserByID(ctx context.Context, id string) (*model.User, error) {
	return s.scanUser(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id)
}

func (s *Store) scanUser(ctx context.Context, q string, arg any) (*model.User, error) {
	u := &model.User{}
	err := s.pool.QueryRow(ctx, q, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Verified,
		&u.WorkingDays, &u.Slots, &u.CreatedAt, &u.UpdatedAt,
	)
	if notFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ListDoctors returns doctor accounts, verified ones only when verifiedOnly
// is set (the patient-facing directory never shows unverified providers).
func (s *Store) ListDoctors(ctx context.Context, verifiedOnly bool) ([]model.User, error) {
	q := `SELECT ` + userCols + ` FROM users WHERE role = 'doctor'`
	if verifiedOnly {
		q += ` AND verified`
	} else {
		q += ` AND NOT verified
		       AND NOT EXISTS (
		           SELECT 1 FROM verification_actions va
		           WHERE va.doctor_id = users.id AND va.action = 'rejected')`
	}
	q += ` ORDER BY name`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Verified,
			&u.WorkingDays, &u.Slots, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
