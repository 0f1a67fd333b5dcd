// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios without inspecting
// database driver errors.
package repository

import "errors"

// ErrTrainerNotFound is returned when a trainer lookup yields no rows.
var ErrTrainerNotFound = errors.New("trainer not found")

// ErrAssignmentNotFound is returned when an assignment lookup yields no rows.
var ErrAssignmentNotFound = errors.New("assignment not found")

// ErrEntryNotFound is returned when a schedule entry lookup yields no rows.
var ErrEntryNotFound = errors.New("schedule entry not found")

// ErrConflict is returned when a delete or update cannot be performed
// because of conflicting state, such as deleting a trainer who still has an
// active dormitory assignment. Handlers should translate this into an HTTP
// 409 response.
var ErrConflict = errors.New("conflict")
