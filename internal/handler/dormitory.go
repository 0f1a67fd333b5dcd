package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hazmanhs/dormitory-reservation/internal/dormitory"
	"github.com/hazmanhs/dormitory-reservation/internal/repository"
)

// DormitoryHandler serves read-only views of the housing complex: the static
// catalog, the occupancy projection and aggregate statistics. These routes
// are public; the catalog contains no personal data and the occupancy view
// is what the notice board in every block displays anyway.
type DormitoryHandler struct {
	Assignments *repository.AssignmentRepo
}

func NewDormitoryHandler(assignments *repository.AssignmentRepo) *DormitoryHandler {
	if assignments == nil {
		panic("nil repository passed to NewDormitoryHandler")
	}
	return &DormitoryHandler{Assignments: assignments}
}

// Catalog handles GET /v1/dormitory/catalog and returns the full generated
// topology. The response never changes between deployments.
func (h *DormitoryHandler) Catalog(c echo.Context) error {
	return c.JSON(http.StatusOK, dormitory.Default())
}

// Occupancy handles GET /v1/dormitory/occupancy: per-room slot views plus
// system stats, derived from the current active assignments.
func (h *DormitoryHandler) Occupancy(c echo.Context) error {
	assignments, err := h.Assignments.ListActive(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, dormitory.Default().Project(assignments))
}

// Stats handles GET /v1/dormitory/stats and returns the system aggregates
// only, without the per-room slot detail.
func (h *DormitoryHandler) Stats(c echo.Context) error {
	assignments, err := h.Assignments.ListActive(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, dormitory.Default().Project(assignments).Stats)
}

// Building handles GET /v1/dormitory/buildings/:name: the building's floors
// and rooms plus stats scoped to it.
func (h *DormitoryHandler) Building(c echo.Context) error {
	name := strings.ToUpper(strings.TrimSpace(c.Param("name")))
	catalog := dormitory.Default()
	b, ok := catalog.FindBuilding(name)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "building not found"})
	}
	assignments, err := h.Assignments.ListActive(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	stats, _ := catalog.BuildingStats(name, assignments)
	return c.JSON(http.StatusOK, echo.Map{
		"building": b,
		"stats":    stats,
	})
}
