package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hazmanhs/dormitory-reservation/internal/dormitory"
)

// AssignmentRepo provides access to the dormitory_assignments table. Rows
// are returned as dormitory.Assignment so the occupancy projector and the
// assignment guard can consume them directly.
//
// Writes happen inside a caller-owned transaction: the handler locks the
// current active rows, re-runs the guard against them and only then inserts
// or deletes. Two concurrent check-in requests therefore cannot overbook a
// room even though the guard itself is a pure function.
type AssignmentRepo struct {
	db *sql.DB
}

// NewAssignmentRepo constructs an AssignmentRepo with the given DB handle.
func NewAssignmentRepo(db *sql.DB) *AssignmentRepo {
	return &AssignmentRepo{db: db}
}

// DB exposes the underlying handle so handlers can begin transactions.
func (r *AssignmentRepo) DB() *sql.DB { return r.db }

const assignmentColumns = `a.id, a.trainer_id, a.room_id, a.check_in, a.status,
           t.id, t.name, t.rank`

func scanAssignment(sc interface {
	Scan(dest ...interface{}) error
}) (dormitory.Assignment, error) {
	var (
		a dormitory.Assignment
		t dormitory.Trainer
	)
	if err := sc.Scan(&a.ID, &a.TrainerID, &a.RoomID, &a.CheckIn, &a.Status,
		&t.ID, &t.Name, &t.Rank); err != nil {
		return dormitory.Assignment{}, err
	}
	a.Trainer = &t
	return a, nil
}

// ListActive returns all active assignments joined with their trainer,
// ordered by check-in then id. Arrival order matters: the projector binds
// occupants to bed slots positionally.
func (r *AssignmentRepo) ListActive(ctx context.Context) ([]dormitory.Assignment, error) {
	const q = `SELECT ` + assignmentColumns + `
	           FROM dormitory_assignments a
	           JOIN trainers t ON t.id = a.trainer_id
	           WHERE a.status = 'active'
	           ORDER BY a.check_in, a.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAssignments(rows)
}

// ListActiveTx is ListActive inside a transaction with the rows locked
// (FOR UPDATE), so the guard decision made on the result stays valid until
// the transaction commits.
func (r *AssignmentRepo) ListActiveTx(ctx context.Context, tx *sql.Tx) ([]dormitory.Assignment, error) {
	const q = `SELECT ` + assignmentColumns + `
	           FROM dormitory_assignments a
	           JOIN trainers t ON t.id = a.trainer_id
	           WHERE a.status = 'active'
	           ORDER BY a.check_in, a.id
	           FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAssignments(rows)
}

func collectAssignments(rows *sql.Rows) ([]dormitory.Assignment, error) {
	var out []dormitory.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID retrieves a single assignment joined with its trainer. Returns
// ErrAssignmentNotFound when no row matches.
func (r *AssignmentRepo) GetByID(ctx context.Context, id uint64) (*dormitory.Assignment, error) {
	const q = `SELECT ` + assignmentColumns + `
	           FROM dormitory_assignments a
	           JOIN trainers t ON t.id = a.trainer_id
	           WHERE a.id = ?`
	a, err := scanAssignment(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

// CreateTx inserts an active assignment within the scope of an existing
// transaction and populates the generated id. The caller must commit or
// roll back the transaction.
func (r *AssignmentRepo) CreateTx(ctx context.Context, tx *sql.Tx, a *dormitory.Assignment) error {
	const q = `INSERT INTO dormitory_assignments (trainer_id, room_id, check_in, status)
	           VALUES (?, ?, ?, 'active')`
	res, err := tx.ExecContext(ctx, q, a.TrainerID, a.RoomID, a.CheckIn)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	a.Status = dormitory.StatusActive
	return nil
}

// DeleteByIDTx removes an assignment within a transaction. Removal is a
// hard delete: no history is retained. Returns ErrAssignmentNotFound when
// the id does not exist.
func (r *AssignmentRepo) DeleteByIDTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	const q = `DELETE FROM dormitory_assignments WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}
