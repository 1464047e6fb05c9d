package models

// StudioSummary holds record counts across every resource family.
type StudioSummary struct {
	Customers   int `json:"customers"`
	Instructors int `json:"instructors"`
	Classes     int `json:"classes"`
	Attendance  int `json:"attendance"`
	Sales       int `json:"sales"`
}

// InstructorPerformance reports check-ins across an instructor's sessions.
type InstructorPerformance struct {
	InstructorID string `json:"instructor_id"`
	Checkins     int    `json:"checkins"`
}

// ClassAttendance reports check-ins for one class.
type ClassAttendance struct {
	ClassID  string `json:"class_id"`
	Checkins int    `json:"checkins"`
}

// CustomerAttendance reports how often one customer checked in.
type CustomerAttendance struct {
	CustomerID string `json:"customer_id"`
	Checkins   int    `json:"checkins"`
}
