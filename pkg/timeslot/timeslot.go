// Package timeslot implements wall-clock slot arithmetic for the booking
// engine. Slots are plain "HH:MM" strings so they can be compared and stored
// without timezone conversion; all stored dates share one clinic timezone.
package timeslot

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is the canonical calendar-date format.
	DateLayout = "2006-01-02"
	// TimeLayout is the canonical 24-hour slot format.
	TimeLayout = "15:04"

	// Legacy shift labels still present in old occupied-slot data.
	LabelMorning = "morning"
	LabelEvening = "evening"
)

// Generate expands a shift window into slot start times: emit the start,
// advance by step, repeat while strictly before end. The last slot is
// included even when its implied end runs past the window end; only the
// start is checked against the window.
func Generate(start, end string, step time.Duration) []string {
	s, err := toMinutes(start)
	if err != nil {
		return nil
	}
	e, err := toMinutes(end)
	if err != nil {
		return nil
	}
	stepMin := int(step.Minutes())
	if stepMin <= 0 || s >= e {
		return nil
	}

	var slots []string
	for m := s; m < e; m += stepMin {
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return slots
}

// IsValid reports whether s is a canonical "HH:MM" value.
func IsValid(s string) bool {
	_, err := toMinutes(s)
	return err == nil
}

// Normalize converts legacy 12-hour values ("9:10 AM", "2:30 pm") to
// canonical "HH:MM". Canonical values and legacy shift labels pass through
// unchanged; labels are lowercased.
func Normalize(s string) string {
	trimmed := strings.TrimSpace(s)
	lower := strings.ToLower(trimmed)
	if lower == LabelMorning || lower == LabelEvening {
		return lower
	}
	if t, err := time.Parse(TimeLayout, trimmed); err == nil {
		return t.Format(TimeLayout)
	}
	if t, err := time.Parse("3:04 PM", strings.ToUpper(trimmed)); err == nil {
		return t.Format(TimeLayout)
	}
	return trimmed
}

// Compare orders slot values within one date. Canonical "HH:MM" values
// compare lexically. Legacy shift labels sort after numeric times, with
// "morning" before "evening".
func Compare(a, b string) int {
	na, nb := Normalize(a), Normalize(b)
	ra, rb := labelRank(na), labelRank(nb)
	if ra != rb {
		return ra - rb
	}
	return strings.Compare(na, nb)
}

func labelRank(s string) int {
	switch s {
	case LabelMorning:
		return 1
	case LabelEvening:
		return 2
	default:
		return 0
	}
}

// Instant combines a calendar date with a canonical slot time into a single
// point in time in the given location.
func Instant(date time.Time, slot string, loc *time.Location) (time.Time, error) {
	m, err := toMinutes(Normalize(slot))
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.Local
	}
	return time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, loc), nil
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func toMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 || len(parts[0]) != 2 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour*60 + minute, nil
}
