package service

import "strings"

// normalizeName builds the duplicate-detection key for a person: first and
// last name joined, lowercased, with runs of whitespace collapsed to single
// spaces.
func normalizeName(firstName, lastName string) string {
	joined := strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName)
	return strings.Join(strings.Fields(strings.ToLower(joined)), " ")
}
