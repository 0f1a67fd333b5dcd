package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hazmanhs/dormitory-reservation/internal/dormitory"
	"github.com/hazmanhs/dormitory-reservation/internal/queue"
	"github.com/hazmanhs/dormitory-reservation/internal/repository"
	queue_publisher "github.com/hazmanhs/dormitory-reservation/internal/service"
)

// AssignmentHandler performs dormitory check-in and check-out. Each write
// runs inside a transaction: the current active assignments are read with
// the rows locked, the guard re-validates the proposal against them, and
// only then is the insert or delete issued. A decision made on stale data
// therefore cannot reach the database, which closes the overbooking race
// that a purely client-side capacity check would leave open.
type AssignmentHandler struct {
	Assignments *repository.AssignmentRepo
	Trainers    *repository.TrainerRepo
}

func NewAssignmentHandler(assignments *repository.AssignmentRepo, trainers *repository.TrainerRepo) *AssignmentHandler {
	if assignments == nil || trainers == nil {
		panic("nil repository passed to NewAssignmentHandler")
	}
	return &AssignmentHandler{Assignments: assignments, Trainers: trainers}
}

type checkInReq struct {
	TrainerID uint64 `json:"trainer_id"`
	RoomID    string `json:"room_id"`
}

// CheckIn handles POST /v1/dormitory/assignments.
func (h *AssignmentHandler) CheckIn(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req checkInReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.RoomID = strings.TrimSpace(req.RoomID)
	if req.TrainerID == 0 || req.RoomID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "trainer_id and room_id are required"})
	}

	ctx := c.Request().Context()
	trainer, err := h.Trainers.GetByID(ctx, req.TrainerID)
	if err != nil {
		if errors.Is(err, repository.ErrTrainerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "trainer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if trainer.Status != repository.TrainerActive {
		return c.JSON(http.StatusConflict, echo.Map{"error": "trainer is not active"})
	}

	// Fast pre-check against the unlocked view so obviously invalid requests
	// never open a transaction.
	catalog := dormitory.Default()
	current, err := h.Assignments.ListActive(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if _, err := catalog.ProposeAssignment(req.TrainerID, req.RoomID, current); err != nil {
		return guardErrorResponse(c, err)
	}

	tx, err := h.Assignments.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Re-run the guard on locked rows; this is the decision that counts.
	locked, err := h.Assignments.ListActiveTx(ctx, tx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	approval, err := catalog.ProposeAssignment(req.TrainerID, req.RoomID, locked)
	if err != nil {
		return guardErrorResponse(c, err)
	}

	a := dormitory.Assignment{
		TrainerID: req.TrainerID,
		RoomID:    req.RoomID,
		CheckIn:   time.Now().UTC(),
	}
	if err := h.Assignments.CreateTx(ctx, tx, &a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create assignment"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	// Best effort: downstream consumers log and notify; a broker outage must
	// not fail the check-in.
	_ = queue_publisher.PublishAssignmentConfirmed(ctx, queue.AssignmentConfirmedEvent{
		AssignmentID: a.ID,
		TrainerID:    trainer.ID,
		TrainerName:  trainer.Name,
		TrainerRank:  trainer.Rank,
		RoomID:       approval.Room.ID,
		Building:     approval.Room.Building,
		RoomType:     approval.Room.Type,
		SlotNumber:   approval.SlotNumber,
		CheckIn:      a.CheckIn.Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"assignment_id": a.ID,
		"room":          approval.Room,
		"slot_number":   approval.SlotNumber,
		"check_in":      a.CheckIn.Format(time.RFC3339),
	})
}

// CheckOut handles DELETE /v1/dormitory/assignments/:id. Removal is a hard
// delete; the occupancy view simply recomputes without the row.
func (h *AssignmentHandler) CheckOut(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid assignment id"})
	}

	ctx := c.Request().Context()
	tx, err := h.Assignments.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	current, err := h.Assignments.ListActiveTx(ctx, tx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := dormitory.ProposeRemoval(id, current); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "assignment not found"})
	}
	if err := h.Assignments.DeleteByIDTx(ctx, tx, id); err != nil {
		if errors.Is(err, repository.ErrAssignmentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "assignment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete assignment"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/dormitory/assignments and returns the current active
// assignments joined with trainer details.
func (h *AssignmentHandler) List(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	assignments, err := h.Assignments.ListActive(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(assignments),
		"items": assignments,
	})
}

// guardErrorResponse maps guard failures onto HTTP statuses.
func guardErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, dormitory.ErrUnknownRoom):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	case errors.Is(err, dormitory.ErrRoomFull):
		return c.JSON(http.StatusConflict, echo.Map{"error": "room is full"})
	case errors.Is(err, dormitory.ErrTrainerAlreadyAssigned):
		return c.JSON(http.StatusConflict, echo.Map{"error": "trainer already has an active assignment"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "validation failed"})
	}
}
