package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hazmanhs/dormitory-reservation/internal/repository"
)

// TrainerHandler exposes trainer roster CRUD for staff users. JWT and role
// middleware run before every method.
type TrainerHandler struct {
	Trainers *repository.TrainerRepo
}

func NewTrainerHandler(trainers *repository.TrainerRepo) *TrainerHandler {
	if trainers == nil {
		panic("nil repository passed to NewTrainerHandler")
	}
	return &TrainerHandler{Trainers: trainers}
}

type trainerReq struct {
	Name   string `json:"name"`
	Rank   string `json:"rank"`
	Status string `json:"status"`
}

func (req *trainerReq) normalize() error {
	req.Name = strings.TrimSpace(req.Name)
	req.Rank = strings.TrimSpace(req.Rank)
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if req.Name == "" {
		return errors.New("name is required")
	}
	if req.Status == "" {
		req.Status = repository.TrainerActive
	}
	if req.Status != repository.TrainerActive && req.Status != repository.TrainerInactive {
		return errors.New("status must be active or inactive")
	}
	return nil
}

// Create handles POST /v1/trainers.
func (h *TrainerHandler) Create(c echo.Context) error {
	var req trainerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.normalize(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	t := repository.Trainer{Name: req.Name, Rank: req.Rank, Status: req.Status}
	if err := h.Trainers.Create(c.Request().Context(), &t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusCreated, t)
}

// List handles GET /v1/trainers with an optional ?status= filter.
func (h *TrainerHandler) List(c echo.Context) error {
	status := strings.ToLower(strings.TrimSpace(c.QueryParam("status")))
	if status != "" && status != repository.TrainerActive && status != repository.TrainerInactive {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
	}
	trainers, err := h.Trainers.List(c.Request().Context(), status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(trainers),
		"items": trainers,
	})
}

// Get handles GET /v1/trainers/:id.
func (h *TrainerHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid trainer id"})
	}
	t, err := h.Trainers.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTrainerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "trainer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, t)
}

// Update handles PUT /v1/trainers/:id.
func (h *TrainerHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid trainer id"})
	}
	var req trainerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.normalize(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	t := repository.Trainer{ID: id, Name: req.Name, Rank: req.Rank, Status: req.Status}
	if err := h.Trainers.Update(c.Request().Context(), &t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "trainer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, t)
}

// Delete handles DELETE /v1/trainers/:id. Trainers with an active dormitory
// assignment cannot be removed.
func (h *TrainerHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid trainer id"})
	}
	if err := h.Trainers.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "trainer has an active assignment"})
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "trainer not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
