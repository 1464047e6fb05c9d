package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Class types offered by the studio.
const (
	ClassTypeGeneral = "General"
	ClassTypeSpecial = "Special"
)

// ValidClassType reports whether t is a supported class type.
func ValidClassType(t string) bool {
	return t == ClassTypeGeneral || t == ClassTypeSpecial
}

// Slot is a recurring weekly time window belonging to a class.
// Time is "HH:MM" 24h, Duration is minutes.
type Slot struct {
	Day      string `db:"day" json:"day"`
	Time     string `db:"start_time" json:"time"`
	Duration int    `db:"duration_min" json:"duration"`
}

// Class is a recurring weekly class led by an instructor.
type Class struct {
	ID           string          `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	InstructorID string          `db:"instructor_id" json:"instructor_id"`
	ClassType    string          `db:"class_type" json:"class_type"`
	PayRate      decimal.Decimal `db:"pay_rate" json:"pay_rate"`
	Description  string          `db:"description" json:"description"`
	Slots        []Slot          `db:"-" json:"slots"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// ClassRef is the projection returned by the id/name listing endpoint.
type ClassRef struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// ClassSlot is a slot joined with its owning class, as used by the
// conflict engine when scanning the full weekly schedule.
type ClassSlot struct {
	ClassID   string `db:"class_id" json:"class_id"`
	ClassName string `db:"class_name" json:"class_name"`
	Slot
}

// SlotConflict pairs a requested slot with the existing slot it overlaps.
type SlotConflict struct {
	Slot Slot         `json:"slot"`
	With ConflictWith `json:"with"`
}

// ConflictWith identifies the class and time a slot collides with.
type ConflictWith struct {
	ClassID   string `json:"class_id"`
	ClassName string `json:"class_name"`
	Day       string `json:"day"`
	Time      string `json:"time"`
}

// ScheduleConflictError is returned when a class's slots collide with the
// existing weekly schedule. Suggestions hold alternative non-conflicting
// slots for the first colliding slot.
type ScheduleConflictError struct {
	Message     string         `json:"message"`
	Conflicts   []SlotConflict `json:"conflicts"`
	Suggestions []Slot         `json:"suggestions"`
}

// Error implements the error interface for conflict errors.
func (e *ScheduleConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}
