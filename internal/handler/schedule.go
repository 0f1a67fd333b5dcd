package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hazmanhs/dormitory-reservation/internal/repository"
)

// ScheduleHandler manages the camp activity calendar: physical training
// sessions, religious activities and general events.
type ScheduleHandler struct {
	Entries  *repository.ScheduleRepo
	Trainers *repository.TrainerRepo
}

func NewScheduleHandler(entries *repository.ScheduleRepo, trainers *repository.TrainerRepo) *ScheduleHandler {
	if entries == nil || trainers == nil {
		panic("nil repository passed to NewScheduleHandler")
	}
	return &ScheduleHandler{Entries: entries, Trainers: trainers}
}

type scheduleReq struct {
	Title     string  `json:"title"`
	Category  string  `json:"category"`
	Location  string  `json:"location"`
	StartsAt  string  `json:"starts_at"`
	EndsAt    string  `json:"ends_at"`
	TrainerID *uint64 `json:"trainer_id"`
}

func (req *scheduleReq) toEntry() (repository.ScheduleEntry, error) {
	var e repository.ScheduleEntry
	e.Title = strings.TrimSpace(req.Title)
	if e.Title == "" {
		return e, errors.New("title is required")
	}
	e.Category = strings.ToLower(strings.TrimSpace(req.Category))
	switch e.Category {
	case repository.CategoryPhysical, repository.CategoryReligious, repository.CategoryEvent:
	default:
		return e, errors.New("category must be physical, religious or event")
	}
	e.Location = strings.TrimSpace(req.Location)

	starts, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return e, errors.New("starts_at must be RFC3339")
	}
	ends, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		return e, errors.New("ends_at must be RFC3339")
	}
	if !ends.After(starts) {
		return e, errors.New("ends_at must be after starts_at")
	}
	e.StartsAt = starts.UTC()
	e.EndsAt = ends.UTC()
	e.TrainerID = req.TrainerID
	return e, nil
}

// Create handles POST /v1/schedule.
func (h *ScheduleHandler) Create(c echo.Context) error {
	var req scheduleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	e, err := req.toEntry()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	if e.TrainerID != nil {
		if _, err := h.Trainers.GetByID(ctx, *e.TrainerID); err != nil {
			if errors.Is(err, repository.ErrTrainerNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "trainer not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
	}
	if err := h.Entries.Create(ctx, &e); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusCreated, e)
}

// List handles GET /v1/schedule?from=&to=. Both bounds are RFC3339; when
// omitted the range defaults to the coming seven days.
func (h *ScheduleHandler) List(c echo.Context) error {
	now := time.Now().UTC()
	from, to := now, now.AddDate(0, 0, 7)
	if v := strings.TrimSpace(c.QueryParam("from")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be RFC3339"})
		}
		from = t.UTC()
		to = from.AddDate(0, 0, 7)
	}
	if v := strings.TrimSpace(c.QueryParam("to")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must be RFC3339"})
		}
		to = t.UTC()
	}
	if !to.After(from) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must be after from"})
	}
	entries, err := h.Entries.ListRange(c.Request().Context(), from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"from":  from.Format(time.RFC3339),
		"to":    to.Format(time.RFC3339),
		"count": len(entries),
		"items": entries,
	})
}

// Get handles GET /v1/schedule/:id.
func (h *ScheduleHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid entry id"})
	}
	e, err := h.Entries.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "entry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, e)
}

// Update handles PUT /v1/schedule/:id.
func (h *ScheduleHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid entry id"})
	}
	var req scheduleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	e, err := req.toEntry()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	e.ID = id
	if err := h.Entries.Update(c.Request().Context(), &e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "entry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, e)
}

// Delete handles DELETE /v1/schedule/:id.
func (h *ScheduleHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid entry id"})
	}
	if err := h.Entries.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "entry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.NoContent(http.StatusNoContent)
}
