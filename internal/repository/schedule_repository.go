package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Schedule entry categories. The calendar mixes physical training sessions
// with religious and other organized activities.
const (
	CategoryPhysical  = "physical"
	CategoryReligious = "religious"
	CategoryEvent     = "event"
)

// ScheduleEntry mirrors the schedule_entries table. TrainerID is nullable:
// camp-wide events have no responsible trainer.
type ScheduleEntry struct {
	ID        uint64
	Title     string
	Category  string // physical | religious | event
	Location  string
	StartsAt  time.Time
	EndsAt    time.Time
	TrainerID *uint64
	CreatedAt string
	UpdatedAt string
}

// ScheduleRepo provides CRUD over the activity calendar.
type ScheduleRepo struct {
	db *sql.DB
}

// NewScheduleRepo constructs a ScheduleRepo with the given DB handle.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

// Create inserts a schedule entry and populates its ID.
func (r *ScheduleRepo) Create(ctx context.Context, e *ScheduleEntry) error {
	const q = `INSERT INTO schedule_entries (title, category, location, starts_at, ends_at, trainer_id)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, e.Title, e.Category, e.Location, e.StartsAt, e.EndsAt, e.TrainerID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// GetByID retrieves one entry. Returns ErrEntryNotFound when no row matches.
func (r *ScheduleRepo) GetByID(ctx context.Context, id uint64) (*ScheduleEntry, error) {
	const q = `SELECT id, title, category, location, starts_at, ends_at, trainer_id, created_at, updated_at
	           FROM schedule_entries WHERE id = ?`
	var e ScheduleEntry
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&e.ID, &e.Title, &e.Category, &e.Location, &e.StartsAt, &e.EndsAt, &e.TrainerID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ListRange returns entries overlapping [from, to), ordered by start time.
// An entry overlaps when it starts before the range ends and ends after the
// range starts.
func (r *ScheduleRepo) ListRange(ctx context.Context, from, to time.Time) ([]ScheduleEntry, error) {
	const q = `SELECT id, title, category, location, starts_at, ends_at, trainer_id, created_at, updated_at
	           FROM schedule_entries
	           WHERE starts_at < ? AND ends_at > ?
	           ORDER BY starts_at, id`
	rows, err := r.db.QueryContext(ctx, q, to, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ScheduleEntry
	for rows.Next() {
		var e ScheduleEntry
		if err := rows.Scan(&e.ID, &e.Title, &e.Category, &e.Location, &e.StartsAt, &e.EndsAt, &e.TrainerID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update changes all editable fields of an entry. Returns sql.ErrNoRows
// when the entry does not exist.
func (r *ScheduleRepo) Update(ctx context.Context, e *ScheduleEntry) error {
	const q = `UPDATE schedule_entries
	           SET title = ?, category = ?, location = ?, starts_at = ?, ends_at = ?, trainer_id = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, e.Title, e.Category, e.Location, e.StartsAt, e.EndsAt, e.TrainerID, e.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an entry by id. Returns ErrEntryNotFound when nothing was
// deleted.
func (r *ScheduleRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM schedule_entries WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEntryNotFound
	}
	return nil
}
