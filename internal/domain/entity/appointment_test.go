package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentTransitions(t *testing.T) {
	tests := []struct {
		name       string
		status     AppointmentStatus
		transition func(*Appointment) error
		wantErr    error
		wantStatus AppointmentStatus
	}{
		{
			name:       "cancel scheduled",
			status:     AppointmentStatusScheduled,
			transition: (*Appointment).Cancel,
			wantStatus: AppointmentStatusCancelled,
		},
		{
			name:       "complete scheduled",
			status:     AppointmentStatusScheduled,
			transition: (*Appointment).Complete,
			wantStatus: AppointmentStatusCompleted,
		},
		{
			name:       "cancel cancelled",
			status:     AppointmentStatusCancelled,
			transition: (*Appointment).Cancel,
			wantErr:    ErrTerminalStatus,
			wantStatus: AppointmentStatusCancelled,
		},
		{
			name:       "cancel completed",
			status:     AppointmentStatusCompleted,
			transition: (*Appointment).Cancel,
			wantErr:    ErrTerminalStatus,
			wantStatus: AppointmentStatusCompleted,
		},
		{
			name:       "complete cancelled",
			status:     AppointmentStatusCancelled,
			transition: (*Appointment).Complete,
			wantErr:    ErrTerminalStatus,
			wantStatus: AppointmentStatusCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appointment := &Appointment{Status: tt.status}
			err := tt.transition(appointment)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantStatus, appointment.Status)
		})
	}
}

func TestAppointmentInstant(t *testing.T) {
	loc := time.UTC
	appointment := &Appointment{
		SlotDate: time.Date(2025, 3, 10, 0, 0, 0, 0, loc),
		TimeSlot: "09:20",
	}

	instant, err := appointment.Instant(loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 20, 0, 0, loc), instant)
}

func TestAppointmentDateKey(t *testing.T) {
	appointment := &Appointment{SlotDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2025-03-05", appointment.DateKey())
}
