package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazmanhs/dormitory-reservation/internal/dormitory"
	"github.com/hazmanhs/dormitory-reservation/internal/repository"
)

func setupAssignmentHandler(t *testing.T) (sqlmock.Sqlmock, *AssignmentHandler, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	h := NewAssignmentHandler(repository.NewAssignmentRepo(db), repository.NewTrainerRepo(db))
	return mock, h, func() { db.Close() }
}

func newCheckInContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/dormitory/assignments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(1))
	c.Set("role", "STAFF")
	return c, rec
}

func activeTrainerRows(id uint64, name, rank string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "rank", "status", "created_at", "updated_at"}).
		AddRow(id, name, rank, repository.TrainerActive, "2026-01-10 08:00:00", "2026-01-10 08:00:00")
}

func activeAssignmentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "trainer_id", "room_id", "check_in", "status",
		"t_id", "t_name", "t_rank",
	})
}

// The capacity decision that counts is the one made on locked rows: the
// handler re-reads active assignments FOR UPDATE inside the transaction and
// only inserts when the re-check still approves the room.
func TestCheckIn_CommitsAfterLockedRecheck(t *testing.T) {
	mock, h, closeDB := setupAssignmentHandler(t)
	defer closeDB()

	mock.ExpectQuery("SELECT id, name, `rank`, status").
		WithArgs(10).
		WillReturnRows(activeTrainerRows(10, "Ahmad Faizal", "SGT"))
	mock.ExpectQuery(`SELECT a.id`).WillReturnRows(activeAssignmentRows())
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WillReturnRows(activeAssignmentRows())
	mock.ExpectExec(`INSERT INTO dormitory_assignments`).
		WithArgs(10, "ANGGERIK-G-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(55, 1))
	mock.ExpectCommit()

	c, rec := newCheckInContext(`{"trainer_id":10,"room_id":"ANGGERIK-G-1"}`)
	require.NoError(t, h.CheckIn(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		AssignmentID uint64 `json:"assignment_id"`
		SlotNumber   int    `json:"slot_number"`
		Room         struct {
			ID string `json:"id"`
		} `json:"room"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, uint64(55), body.AssignmentID)
	assert.Equal(t, 1, body.SlotNumber)
	assert.Equal(t, "ANGGERIK-G-1", body.Room.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

// A room that looked bookable on the unlocked pre-check but fills up by the
// time the rows are locked must be rejected, and the transaction rolled
// back without any insert.
func TestCheckIn_RoomFullOnLockedRecheck(t *testing.T) {
	mock, h, closeDB := setupAssignmentHandler(t)
	defer closeDB()

	checkIn := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	unlocked := activeAssignmentRows().
		AddRow(1, 11, "CEMPAKA-G-2", checkIn, dormitory.StatusActive, 11, "Siti Mariam", "CPL")
	locked := activeAssignmentRows().
		AddRow(1, 11, "CEMPAKA-G-2", checkIn, dormitory.StatusActive, 11, "Siti Mariam", "CPL").
		AddRow(2, 12, "CEMPAKA-G-2", checkIn.Add(time.Minute), dormitory.StatusActive, 12, "Tan Wei Ming", "SGT")

	mock.ExpectQuery("SELECT id, name, `rank`, status").
		WithArgs(10).
		WillReturnRows(activeTrainerRows(10, "Ahmad Faizal", "SGT"))
	mock.ExpectQuery(`SELECT a.id`).WillReturnRows(unlocked)
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WillReturnRows(locked)
	mock.ExpectRollback()

	c, rec := newCheckInContext(`{"trainer_id":10,"room_id":"CEMPAKA-G-2"}`)
	require.NoError(t, h.CheckIn(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "room is full")

	require.NoError(t, mock.ExpectationsWereMet())
}

// Requests that already fail on the unlocked view never open a transaction.
func TestCheckIn_TrainerAlreadyAssignedPreCheck(t *testing.T) {
	mock, h, closeDB := setupAssignmentHandler(t)
	defer closeDB()

	checkIn := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	current := activeAssignmentRows().
		AddRow(1, 10, "KENANGA-F2-3", checkIn, dormitory.StatusActive, 10, "Ahmad Faizal", "SGT")

	mock.ExpectQuery("SELECT id, name, `rank`, status").
		WithArgs(10).
		WillReturnRows(activeTrainerRows(10, "Ahmad Faizal", "SGT"))
	mock.ExpectQuery(`SELECT a.id`).WillReturnRows(current)

	c, rec := newCheckInContext(`{"trainer_id":10,"room_id":"ANGGERIK-G-1"}`)
	require.NoError(t, h.CheckIn(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already has an active assignment")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckOut_DeletesInsideTransaction(t *testing.T) {
	mock, h, closeDB := setupAssignmentHandler(t)
	defer closeDB()

	checkIn := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	locked := activeAssignmentRows().
		AddRow(7, 10, "LESTARI_5-H3", checkIn, dormitory.StatusActive, 10, "Ahmad Faizal", "SGT")

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WillReturnRows(locked)
	mock.ExpectExec(`DELETE FROM dormitory_assignments`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/v1/dormitory/assignments/7", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(1))
	c.SetParamNames("id")
	c.SetParamValues("7")

	require.NoError(t, h.CheckOut(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	require.NoError(t, mock.ExpectationsWereMet())
}
