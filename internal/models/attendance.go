package models

import "time"

// Attendee is one customer checked into a session. PackageID and Note are
// optional (drop-ins, cash payments).
type Attendee struct {
	CustomerID string  `db:"customer_id" json:"customer_id"`
	PackageID  *string `db:"package_id" json:"package_id,omitempty"`
	Note       *string `db:"note" json:"note,omitempty"`
}

// Attendance records a class session and who attended it.
type Attendance struct {
	ID           string     `db:"id" json:"id"`
	ClassID      string     `db:"class_id" json:"class_id"`
	InstructorID string     `db:"instructor_id" json:"instructor_id"`
	OccurredAt   time.Time  `db:"occurred_at" json:"occurred_at"`
	Attendees    []Attendee `db:"-" json:"attendees"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// InsufficientBalance flags an attendee whose balance cannot cover a check-in.
type InsufficientBalance struct {
	CustomerID string `json:"customer_id"`
	Balance    int    `json:"balance"`
}

// CheckInConfirmation is the structured payload of a NEEDS_CONFIRM response.
// The caller resolves it by resubmitting the same request with force=true.
type CheckInConfirmation struct {
	WarnSchedule bool                  `json:"warn_schedule"`
	Insufficient []InsufficientBalance `json:"insufficient"`
}

// InstructorClassSlot is the projection used by the check-in form to list an
// instructor's classes with their first scheduled day/time.
type InstructorClassSlot struct {
	ClassID   string `db:"class_id" json:"class_id"`
	ClassName string `db:"class_name" json:"class_name"`
	ClassType string `db:"class_type" json:"class_type"`
	Day       string `db:"day" json:"day"`
	Time      string `db:"start_time" json:"time"`
}
