package models

// Weekdays enumerates schedule days in studio order, Monday first.
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// ValidWeekday reports whether day is one of the studio's schedule days.
func ValidWeekday(day string) bool {
	return WeekdayIndex(day) >= 0
}

// WeekdayIndex returns the position of day in Weekdays, or -1.
func WeekdayIndex(day string) int {
	for i, d := range Weekdays {
		if d == day {
			return i
		}
	}
	return -1
}

// Contact channels a customer or instructor can prefer.
const (
	ContactEmail = "email"
	ContactPhone = "phone"
)

// ValidContact reports whether the preferred contact value is supported.
func ValidContact(channel string) bool {
	return channel == ContactEmail || channel == ContactPhone
}
