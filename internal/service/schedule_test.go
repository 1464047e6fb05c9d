package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiohq/studio-api/internal/models"
)

func TestSlotsOverlap(t *testing.T) {
	a := models.Slot{Day: "Mon", Time: "09:00", Duration: 60}

	cases := []struct {
		name string
		b    models.Slot
		want bool
	}{
		{"same slot", models.Slot{Day: "Mon", Time: "09:00", Duration: 60}, true},
		{"starts inside", models.Slot{Day: "Mon", Time: "09:30", Duration: 30}, true},
		{"covers fully", models.Slot{Day: "Mon", Time: "08:00", Duration: 180}, true},
		{"boundary touch after", models.Slot{Day: "Mon", Time: "10:00", Duration: 30}, false},
		{"boundary touch before", models.Slot{Day: "Mon", Time: "08:00", Duration: 60}, false},
		{"different day", models.Slot{Day: "Tue", Time: "09:00", Duration: 60}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, slotsOverlap(a, tc.b))
			assert.Equal(t, tc.want, slotsOverlap(tc.b, a), "overlap must be symmetric")
		})
	}
}

func TestFindSlotConflictsCrossProduct(t *testing.T) {
	existing := []models.ClassSlot{
		{ClassID: "A001", ClassName: "Vinyasa", Slot: models.Slot{Day: "Mon", Time: "09:00", Duration: 60}},
		{ClassID: "A002", ClassName: "Yin", Slot: models.Slot{Day: "Mon", Time: "10:30", Duration: 60}},
	}
	requested := []models.Slot{
		{Day: "Mon", Time: "09:30", Duration: 90},
		{Day: "Tue", Time: "09:00", Duration: 60},
	}

	conflicts := findSlotConflicts(requested, existing)
	require.Len(t, conflicts, 2)
	assert.Equal(t, "A001", conflicts[0].With.ClassID)
	assert.Equal(t, "A002", conflicts[1].With.ClassID)
}

func TestFindSlotConflictsEmptySchedule(t *testing.T) {
	requested := []models.Slot{{Day: "Mon", Time: "09:00", Duration: 60}}
	assert.Empty(t, findSlotConflicts(requested, nil))
}

func TestSuggestAlternativesScansOperatingWindow(t *testing.T) {
	existing := []models.ClassSlot{
		{ClassID: "A001", ClassName: "Vinyasa", Slot: models.Slot{Day: "Mon", Time: "06:00", Duration: 60}},
	}
	slot := models.Slot{Day: "Mon", Time: "06:30", Duration: 60}

	suggestions := suggestAlternatives(slot, existing, 6, 21)
	require.Len(t, suggestions, 3)
	assert.Equal(t, "07:00", suggestions[0].Time)
	assert.Equal(t, "07:15", suggestions[1].Time)
	assert.Equal(t, "07:30", suggestions[2].Time)
	for _, s := range suggestions {
		assert.Equal(t, "Mon", s.Day)
		assert.Equal(t, 60, s.Duration)
	}
}

func TestSuggestAlternativesFallsBackToNextWeekday(t *testing.T) {
	// One slot blankets the whole operating window.
	existing := []models.ClassSlot{
		{ClassID: "A001", ClassName: "Retreat", Slot: models.Slot{Day: "Sun", Time: "00:00", Duration: 24 * 60}},
	}
	slot := models.Slot{Day: "Sun", Time: "09:00", Duration: 60}

	suggestions := suggestAlternatives(slot, existing, 6, 21)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Mon", suggestions[0].Day)
	assert.Equal(t, "09:00", suggestions[0].Time)
}

func TestToMinutes(t *testing.T) {
	assert.Equal(t, 0, toMinutes("00:00"))
	assert.Equal(t, 9*60+30, toMinutes("09:30"))
	assert.Equal(t, -1, toMinutes("junk"))
}
