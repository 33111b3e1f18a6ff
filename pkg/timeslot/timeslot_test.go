package timeslot

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		step     time.Duration
		expected []string
	}{
		{
			name:     "half hour window at ten minutes",
			start:    "09:00",
			end:      "09:30",
			step:     10 * time.Minute,
			expected: []string{"09:00", "09:10", "09:20"},
		},
		{
			name:     "last slot kept even when it overruns the window end",
			start:    "09:00",
			end:      "09:25",
			step:     10 * time.Minute,
			expected: []string{"09:00", "09:10", "09:20"},
		},
		{
			name:     "start equals end",
			start:    "10:00",
			end:      "10:00",
			step:     10 * time.Minute,
			expected: nil,
		},
		{
			name:     "inverted window",
			start:    "12:00",
			end:      "09:00",
			step:     10 * time.Minute,
			expected: nil,
		},
		{
			name:     "crosses the hour boundary",
			start:    "17:40",
			end:      "18:20",
			step:     10 * time.Minute,
			expected: []string{"17:40", "17:50", "18:00", "18:10"},
		},
		{
			name:     "invalid start time",
			start:    "morning",
			end:      "12:00",
			step:     10 * time.Minute,
			expected: nil,
		},
		{
			name:     "zero step",
			start:    "09:00",
			end:      "10:00",
			step:     0,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Generate(tt.start, tt.end, tt.step))
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"09:10", "09:10"},
		{"9:10 AM", "09:10"},
		{"2:30 pm", "14:30"},
		{"12:00 PM", "12:00"},
		{"12:00 AM", "00:00"},
		{"Morning", "morning"},
		{"evening", "evening"},
		{" 10:40 ", "10:40"},
		{"not-a-time", "not-a-time"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.in))
		})
	}
}

func TestCompare(t *testing.T) {
	// Numeric times first in lexical order, then the legacy labels with
	// morning before evening.
	values := []string{"evening", "18:00", "morning", "09:10", "9:00 AM"}
	sort.Slice(values, func(i, j int) bool { return Compare(values[i], values[j]) < 0 })

	assert.Equal(t, []string{"9:00 AM", "09:10", "18:00", "morning", "evening"}, values)

	assert.Zero(t, Compare("09:10", "9:10 AM"))
	assert.Negative(t, Compare("morning", "evening"))
	assert.Positive(t, Compare("evening", "23:59"))
}

func TestInstant(t *testing.T) {
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	got, err := Instant(date, "09:10", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 9, 10, 0, 0, time.UTC), got)

	_, err = Instant(date, "morning", time.UTC)
	assert.Error(t, err)
}

func TestIsWeekend(t *testing.T) {
	saturday := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)
	assert.True(t, IsWeekend(saturday))
	assert.True(t, IsWeekend(saturday.AddDate(0, 0, 1)))
	assert.False(t, IsWeekend(saturday.AddDate(0, 0, 2)))
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("00:00"))
	assert.True(t, IsValid("23:59"))
	assert.False(t, IsValid("24:00"))
	assert.False(t, IsValid("9:5"))
	assert.False(t, IsValid("morning"))
}
