package service

import (
	"testing"
	"time"

	"go-clinic-appointment/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestSweepDue(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, loc)

	tests := []struct {
		name string
		date time.Time
		slot string
		want bool
	}{
		{
			name: "earlier today",
			date: time.Date(2025, 3, 10, 0, 0, 0, 0, loc),
			slot: "09:00",
			want: true,
		},
		{
			name: "later today",
			date: time.Date(2025, 3, 10, 0, 0, 0, 0, loc),
			slot: "14:00",
			want: false,
		},
		{
			name: "exactly now is due",
			date: time.Date(2025, 3, 10, 0, 0, 0, 0, loc),
			slot: "12:00",
			want: true,
		},
		{
			name: "one minute from now",
			date: time.Date(2025, 3, 10, 0, 0, 0, 0, loc),
			slot: "12:01",
			want: false,
		},
		{
			name: "yesterday",
			date: time.Date(2025, 3, 9, 0, 0, 0, 0, loc),
			slot: "23:50",
			want: true,
		},
		{
			name: "tomorrow",
			date: time.Date(2025, 3, 11, 0, 0, 0, 0, loc),
			slot: "09:00",
			want: false,
		},
		{
			name: "legacy label yesterday completes today",
			date: time.Date(2025, 3, 9, 0, 0, 0, 0, loc),
			slot: "morning",
			want: true,
		},
		{
			name: "legacy label today waits for tomorrow",
			date: time.Date(2025, 3, 10, 0, 0, 0, 0, loc),
			slot: "evening",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appointment := &entity.Appointment{SlotDate: tt.date, TimeSlot: tt.slot}
			assert.Equal(t, tt.want, sweepDue(appointment, now, loc))
		})
	}
}
