package dormitory

import "errors"

// Guard failures. Handlers translate these into 404/409 responses; the
// repository layer never sees a write that the guard rejected.
var (
	ErrUnknownRoom            = errors.New("unknown room")
	ErrRoomFull               = errors.New("room is full")
	ErrTrainerAlreadyAssigned = errors.New("trainer already assigned")
	ErrUnknownAssignment      = errors.New("unknown assignment")
)

// Approval is the token returned by ProposeAssignment. It authorizes the
// caller to perform the insert; the guard itself mutates nothing. SlotNumber
// is the bed the occupant will appear in on the next projection.
type Approval struct {
	TrainerID  uint64 `json:"trainer_id"`
	Room       Room   `json:"room"`
	SlotNumber int    `json:"slot_number"`
}

// ProposeAssignment validates a (trainer, room) assignment against the
// current active assignment set. It fails with ErrUnknownRoom when the room
// id is not in the catalog, ErrRoomFull when the room has no free bed, and
// ErrTrainerAlreadyAssigned when the trainer already occupies a bed
// somewhere in the complex. The caller passes the current active rows; rows
// with other statuses should be filtered out beforehand.
func (c Catalog) ProposeAssignment(trainerID uint64, roomID string, current []Assignment) (Approval, error) {
	room, ok := c.FindRoom(roomID)
	if !ok {
		return Approval{}, ErrUnknownRoom
	}
	occupied := 0
	for _, a := range current {
		if a.TrainerID == trainerID {
			return Approval{}, ErrTrainerAlreadyAssigned
		}
		if a.RoomID == roomID {
			occupied++
		}
	}
	if occupied >= room.Capacity {
		return Approval{}, ErrRoomFull
	}
	return Approval{TrainerID: trainerID, Room: room, SlotNumber: occupied + 1}, nil
}

// ProposeRemoval validates the removal of an assignment. Removal carries no
// capacity rule; it only fails when the id is not in the current set.
func ProposeRemoval(assignmentID uint64, current []Assignment) error {
	for _, a := range current {
		if a.ID == assignmentID {
			return nil
		}
	}
	return ErrUnknownAssignment
}
