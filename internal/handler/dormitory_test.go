package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazmanhs/dormitory-reservation/internal/dormitory"
	"github.com/hazmanhs/dormitory-reservation/internal/repository"
)

func setupDormitoryHandler(t *testing.T) (sqlmock.Sqlmock, *DormitoryHandler, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	h := NewDormitoryHandler(repository.NewAssignmentRepo(db))
	return mock, h, func() { db.Close() }
}

func newGetContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func emptyAssignmentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "trainer_id", "room_id", "check_in", "status",
		"t_id", "t_name", "t_rank",
	})
}

func TestCatalogEndpoint(t *testing.T) {
	_, h, closeDB := setupDormitoryHandler(t)
	defer closeDB()

	c, rec := newGetContext("/v1/dormitory/catalog")
	require.NoError(t, h.Catalog(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Buildings []struct {
			Name string `json:"name"`
		} `json:"buildings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Buildings, 7)
	assert.Equal(t, dormitory.BlockAnggerik, body.Buildings[0].Name)
}

func TestStatsEndpoint_EmptyDormitory(t *testing.T) {
	mock, h, closeDB := setupDormitoryHandler(t)
	defer closeDB()

	mock.ExpectQuery(`SELECT a.id`).WillReturnRows(emptyAssignmentRows())

	c, rec := newGetContext("/v1/dormitory/stats")
	require.NoError(t, h.Stats(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var stats dormitory.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 365, stats.TotalRooms)
	assert.Equal(t, 976, stats.TotalCapacity)
	assert.Equal(t, 0, stats.CurrentOccupancy)
	assert.Equal(t, 365, stats.AvailableRooms)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildingEndpoint_CaseInsensitiveName(t *testing.T) {
	mock, h, closeDB := setupDormitoryHandler(t)
	defer closeDB()

	mock.ExpectQuery(`SELECT a.id`).WillReturnRows(emptyAssignmentRows())

	c, rec := newGetContext("/v1/dormitory/buildings/seroja")
	c.SetParamNames("name")
	c.SetParamValues("seroja")

	require.NoError(t, h.Building(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Building dormitory.Building `json:"building"`
		Stats    dormitory.Stats    `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, dormitory.BlockSeroja, body.Building.Name)
	assert.Equal(t, dormitory.TypeVIP, body.Building.Type)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildingEndpoint_Unknown(t *testing.T) {
	_, h, closeDB := setupDormitoryHandler(t)
	defer closeDB()

	c, rec := newGetContext("/v1/dormitory/buildings/TERATAI")
	c.SetParamNames("name")
	c.SetParamValues("TERATAI")

	require.NoError(t, h.Building(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
