package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockTrainerDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *TrainerRepo) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewTrainerRepo(db)
	return db, mock, repo
}

func TestTrainerCreate_Success(t *testing.T) {
	db, mock, repo := setupMockTrainerDB(t)
	defer db.Close()

	// The rank column must stay backtick-quoted: RANK is a reserved word in
	// MySQL 8.0 and the unquoted form is a parse error.
	mock.ExpectExec("INSERT INTO trainers \\(name, `rank`, status\\)").
		WithArgs("Ahmad Faizal", "SGT", TrainerActive).
		WillReturnResult(sqlmock.NewResult(7, 1))

	tr := &Trainer{Name: "Ahmad Faizal", Rank: "SGT"}
	err := repo.Create(context.Background(), tr)

	require.NoError(t, err)
	assert.Equal(t, uint64(7), tr.ID)
	assert.Equal(t, TrainerActive, tr.Status)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainerGetByID_Success(t *testing.T) {
	db, mock, repo := setupMockTrainerDB(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "rank", "status", "created_at", "updated_at"}).
		AddRow(3, "Siti Mariam", "CPL", TrainerActive, "2026-01-10 08:00:00", "2026-01-10 08:00:00")

	mock.ExpectQuery("SELECT id, name, `rank`, status").
		WithArgs(3).
		WillReturnRows(rows)

	tr, err := repo.GetByID(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, uint64(3), tr.ID)
	assert.Equal(t, "Siti Mariam", tr.Name)
	assert.Equal(t, "CPL", tr.Rank)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainerGetByID_NotFound(t *testing.T) {
	db, mock, repo := setupMockTrainerDB(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name, `rank`, status").
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	tr, err := repo.GetByID(context.Background(), 99)

	assert.Nil(t, tr)
	assert.ErrorIs(t, err, ErrTrainerNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainerList_StatusFilter(t *testing.T) {
	db, mock, repo := setupMockTrainerDB(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "rank", "status", "created_at", "updated_at"}).
		AddRow(1, "Ahmad Faizal", "SGT", TrainerActive, "2026-01-10 08:00:00", "2026-01-10 08:00:00").
		AddRow(2, "Siti Mariam", "CPL", TrainerActive, "2026-01-11 08:00:00", "2026-01-11 08:00:00")

	mock.ExpectQuery("SELECT id, name, `rank`, status").
		WithArgs(TrainerActive).
		WillReturnRows(rows)

	list, err := repo.List(context.Background(), TrainerActive)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ahmad Faizal", list[0].Name)
	assert.Equal(t, "Siti Mariam", list[1].Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainerUpdate_NotFound(t *testing.T) {
	db, mock, repo := setupMockTrainerDB(t)
	defer db.Close()

	mock.ExpectExec("UPDATE trainers SET name = \\?, `rank` = \\?").
		WithArgs("Ahmad Faizal", "SSGT", TrainerInactive, 42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &Trainer{ID: 42, Name: "Ahmad Faizal", Rank: "SSGT", Status: TrainerInactive})

	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainerDelete_Success(t *testing.T) {
	db, mock, repo := setupMockTrainerDB(t)
	defer db.Close()

	countRows := sqlmock.NewRows([]string{"count"}).AddRow(0)
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(5).
		WillReturnRows(countRows)
	mock.ExpectExec(`DELETE FROM trainers`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), 5)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainerDelete_ActiveAssignmentConflict(t *testing.T) {
	db, mock, repo := setupMockTrainerDB(t)
	defer db.Close()

	countRows := sqlmock.NewRows([]string{"count"}).AddRow(1)
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(5).
		WillReturnRows(countRows)

	err := repo.Delete(context.Background(), 5)

	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, mock.ExpectationsWereMet())
}
