package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/studiohq/studio-api/internal/models"
)

var timeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)

// toMinutes converts "HH:MM" to minutes since midnight. Callers validate the
// format first; malformed input yields -1.
func toMinutes(hhmm string) int {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return -1
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return -1
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return -1
	}
	return h*60 + m
}

func formatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// slotsOverlap reports whether two weekly slots intersect: same day and
// half-open [start, start+duration) minute intervals that overlap. Intervals
// that merely touch do not conflict.
func slotsOverlap(a, b models.Slot) bool {
	if a.Day != b.Day {
		return false
	}
	aStart := toMinutes(a.Time)
	aEnd := aStart + a.Duration
	bStart := toMinutes(b.Time)
	bEnd := bStart + b.Duration
	return aStart < bEnd && bStart < aEnd
}

// findSlotConflicts tests every requested slot against every existing slot
// and collects all pairwise conflicts. The full cross product is reported so
// the caller sees every collision at once.
func findSlotConflicts(requested []models.Slot, existing []models.ClassSlot) []models.SlotConflict {
	var conflicts []models.SlotConflict
	for _, slot := range requested {
		for _, es := range existing {
			if slotsOverlap(slot, es.Slot) {
				conflicts = append(conflicts, models.SlotConflict{
					Slot: slot,
					With: models.ConflictWith{
						ClassID:   es.ClassID,
						ClassName: es.ClassName,
						Day:       es.Day,
						Time:      es.Time,
					},
				})
			}
		}
	}
	return conflicts
}

// suggestAlternatives proposes up to three non-conflicting start times for a
// slot, scanning the studio's operating window on the same day in 15-minute
// steps. When the whole day is booked it falls back to the same time on the
// next weekday. Suggestions are advisory, hence the small fixed cap.
func suggestAlternatives(slot models.Slot, existing []models.ClassSlot, openHour, closeHour int) []models.Slot {
	var suggestions []models.Slot

	for minutes := openHour * 60; minutes <= closeHour*60; minutes += 15 {
		candidate := models.Slot{Day: slot.Day, Time: formatMinutes(minutes), Duration: slot.Duration}
		conflict := false
		for _, es := range existing {
			if slotsOverlap(candidate, es.Slot) {
				conflict = true
				break
			}
		}
		if !conflict {
			suggestions = append(suggestions, candidate)
			if len(suggestions) >= 3 {
				break
			}
		}
	}

	if len(suggestions) == 0 {
		idx := models.WeekdayIndex(slot.Day)
		nextDay := models.Weekdays[(idx+1)%len(models.Weekdays)]
		suggestions = append(suggestions, models.Slot{Day: nextDay, Time: slot.Time, Duration: slot.Duration})
	}

	return suggestions
}
