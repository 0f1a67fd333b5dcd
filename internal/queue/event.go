// Package queue defines message payloads exchanged over the message broker.
package queue

// AssignmentConfirmedEvent is published when a dormitory check-in commits.
// It carries enough information for downstream consumers to log or notify
// without querying the primary database.
type AssignmentConfirmedEvent struct {
	AssignmentID uint64 `json:"assignment_id"`
	TrainerID    uint64 `json:"trainer_id"`
	TrainerName  string `json:"trainer_name"`
	TrainerRank  string `json:"trainer_rank"`
	RoomID       string `json:"room_id"`
	Building     string `json:"building"`
	RoomType     string `json:"room_type"`
	SlotNumber   int    `json:"slot_number"`
	CheckIn      string `json:"check_in"`
}
