package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShiftWindowValidate(t *testing.T) {
	tests := []struct {
		name    string
		window  ShiftWindow
		wantErr bool
	}{
		{name: "valid", window: ShiftWindow{StartTime: "09:00", EndTime: "12:00"}},
		{name: "start equals end", window: ShiftWindow{StartTime: "09:00", EndTime: "09:00"}, wantErr: true},
		{name: "inverted", window: ShiftWindow{StartTime: "12:00", EndTime: "09:00"}, wantErr: true},
		{name: "bad start format", window: ShiftWindow{StartTime: "9:00", EndTime: "12:00"}, wantErr: true},
		{name: "bad end format", window: ShiftWindow{StartTime: "09:00", EndTime: "25:00"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.window.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestShiftTemplateWindowsFor(t *testing.T) {
	template := &ShiftTemplate{
		Morning: ShiftWindows{{StartTime: "09:00", EndTime: "12:00"}},
		Evening: ShiftWindows{{StartTime: "18:00", EndTime: "21:00"}},
	}

	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	// Weekday: standard windows, morning first
	windows := template.WindowsFor(monday)
	assert.Equal(t, []ShiftWindow{
		{StartTime: "09:00", EndTime: "12:00"},
		{StartTime: "18:00", EndTime: "21:00"},
	}, windows)

	// No weekend windows defined: weekends fall back to standard
	assert.Equal(t, windows, template.WindowsFor(saturday))

	// Weekend windows defined: Saturday uses them, Monday does not
	template.WeekendMorning = ShiftWindows{{StartTime: "10:00", EndTime: "11:00"}}
	assert.Equal(t, []ShiftWindow{{StartTime: "10:00", EndTime: "11:00"}}, template.WindowsFor(saturday))
	assert.Len(t, template.WindowsFor(monday), 2)
}

func TestShiftTemplateValidate(t *testing.T) {
	valid := &ShiftTemplate{
		Morning:        ShiftWindows{{StartTime: "09:00", EndTime: "12:00"}},
		WeekendEvening: ShiftWindows{{StartTime: "18:00", EndTime: "20:00"}},
	}
	assert.NoError(t, valid.Validate())

	invalid := &ShiftTemplate{
		Morning: ShiftWindows{{StartTime: "09:00", EndTime: "12:00"}},
		Evening: ShiftWindows{{StartTime: "21:00", EndTime: "18:00"}},
	}
	assert.Error(t, invalid.Validate())
}
