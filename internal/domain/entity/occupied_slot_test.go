package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSortOccupiedSlots(t *testing.T) {
	day1 := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	slots := []OccupiedSlot{
		{SlotDate: day2, TimeSlot: "09:00"},
		{SlotDate: day1, TimeSlot: "evening"},
		{SlotDate: day1, TimeSlot: "18:30"},
		{SlotDate: day1, TimeSlot: "9:10 AM"},
		{SlotDate: day1, TimeSlot: "morning"},
		{SlotDate: day1, TimeSlot: "09:00"},
	}

	SortOccupiedSlots(slots)

	got := make([]string, len(slots))
	for i, slot := range slots {
		got[i] = slot.DateKey() + " " + slot.TimeSlot
	}
	// Within a date: numeric times first (legacy 12-hour values compare by
	// their normalized form), then morning, then evening.
	assert.Equal(t, []string{
		"2025-03-10 09:00",
		"2025-03-10 9:10 AM",
		"2025-03-10 18:30",
		"2025-03-10 morning",
		"2025-03-10 evening",
		"2025-03-11 09:00",
	}, got)
}
