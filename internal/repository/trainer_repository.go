package repository // repository holds data access logic for domain entities

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// Trainer statuses stored in the trainers table.
const (
	TrainerActive   = "active"
	TrainerInactive = "inactive"
)

// Trainer mirrors the 'trainers' table. Rank is the trainer's service rank
// as displayed in rosters and occupancy views.
type Trainer struct {
	ID        uint64
	Name      string
	Rank      string
	Status    string // active | inactive
	CreatedAt string
	UpdatedAt string
}

const trainerColumns = "id, name, `rank`, status, created_at, updated_at"

// TrainerRepo provides CRUD operations over trainers.
type TrainerRepo struct {
	db *sql.DB
}

// NewTrainerRepo constructs a TrainerRepo with the given DB handle.
func NewTrainerRepo(db *sql.DB) *TrainerRepo {
	return &TrainerRepo{db: db}
}

// Create inserts a trainer and populates its ID.
func (r *TrainerRepo) Create(ctx context.Context, t *Trainer) error {
	if t.Status == "" {
		t.Status = TrainerActive
	}
	// RANK is reserved in MySQL 8.0, so the column is always backtick-quoted.
	const q = "INSERT INTO trainers (name, `rank`, status) VALUES (?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, t.Name, t.Rank, t.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// GetByID retrieves a trainer by id. Returns ErrTrainerNotFound when no row
// matches.
func (r *TrainerRepo) GetByID(ctx context.Context, id uint64) (*Trainer, error) {
	const q = `SELECT ` + trainerColumns + ` FROM trainers WHERE id = ?`
	var t Trainer
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&t.ID, &t.Name, &t.Rank, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns trainers ordered by name, optionally filtered by status.
// Pass an empty status to list everyone.
func (r *TrainerRepo) List(ctx context.Context, status string) ([]Trainer, error) {
	q := `SELECT ` + trainerColumns + ` FROM trainers`
	args := []interface{}{}
	if s := strings.TrimSpace(status); s != "" {
		q += ` WHERE status = ?`
		args = append(args, s)
	}
	q += ` ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Trainer
	for rows.Next() {
		var t Trainer
		if err := rows.Scan(&t.ID, &t.Name, &t.Rank, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update changes name, rank and status. Returns sql.ErrNoRows when the
// trainer does not exist.
func (r *TrainerRepo) Update(ctx context.Context, t *Trainer) error {
	const q = "UPDATE trainers SET name = ?, `rank` = ?, status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, t.Name, t.Rank, t.Status, t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a trainer unless an active dormitory assignment still
// references them, in which case ErrConflict is returned.
func (r *TrainerRepo) Delete(ctx context.Context, id uint64) error {
	const qCheck = `SELECT COUNT(*) FROM dormitory_assignments WHERE trainer_id = ? AND status = 'active'`
	var n int
	if err := r.db.QueryRowContext(ctx, qCheck, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	const q = `DELETE FROM trainers WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
