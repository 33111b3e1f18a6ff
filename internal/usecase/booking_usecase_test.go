package usecase

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestParseSlot(t *testing.T) {
	u := &bookingUsecase{
		loc: time.UTC,
		now: func() time.Time { return time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC) },
	}

	tests := []struct {
		name     string
		date     string
		slot     string
		wantErr  error
		wantSlot string
	}{
		{name: "valid future slot", date: "2025-03-10", slot: "09:00", wantSlot: "09:00"},
		{name: "legacy 12-hour value normalized", date: "2025-03-10", slot: "9:30 AM", wantSlot: "09:30"},
		{name: "bad date", date: "10-03-2025", slot: "09:00", wantErr: ErrInvalidDate},
		{name: "bad time", date: "2025-03-10", slot: "9am", wantErr: ErrInvalidTime},
		{name: "shift label rejected", date: "2025-03-10", slot: "morning", wantErr: ErrInvalidTime},
		{name: "past slot", date: "2025-03-10", slot: "07:00", wantErr: ErrPastSlot},
		{name: "past day", date: "2025-03-09", slot: "09:00", wantErr: ErrPastSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, slot, err := u.parseSlot(tt.date, tt.slot)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSlot, slot)
			assert.Equal(t, tt.date, date.Format("2006-01-02"))
		})
	}
}

func TestInTimeRange(t *testing.T) {
	tests := []struct {
		name string
		slot string
		from string
		to   string
		want bool
	}{
		{name: "no bounds", slot: "09:00", want: true},
		{name: "inside", slot: "10:00", from: "09:00", to: "12:00", want: true},
		{name: "on lower bound", slot: "09:00", from: "09:00", to: "12:00", want: true},
		{name: "on upper bound", slot: "12:00", from: "09:00", to: "12:00", want: true},
		{name: "before range", slot: "08:50", from: "09:00", to: "12:00", want: false},
		{name: "after range", slot: "12:10", from: "09:00", to: "12:00", want: false},
		{name: "only lower bound", slot: "23:00", from: "09:00", want: true},
		{name: "only upper bound", slot: "08:00", to: "09:00", want: true},
		{name: "legacy slot value", slot: "9:30 AM", from: "09:00", to: "10:00", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inTimeRange(tt.slot, tt.from, tt.to))
		})
	}
}

func TestSameSlot(t *testing.T) {
	current := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		currentSlot string
		newDate     time.Time
		newSlot     string
		want        bool
	}{
		{
			name:        "identical slot",
			currentSlot: "09:00",
			newDate:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			newSlot:     "09:00",
			want:        true,
		},
		{
			name:        "same calendar day in another timezone",
			currentSlot: "09:00",
			newDate:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.FixedZone("WIB", 7*3600)),
			newSlot:     "09:00",
			want:        true,
		},
		{
			name:        "legacy stored value matches canonical request",
			currentSlot: "9:00 AM",
			newDate:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			newSlot:     "09:00",
			want:        true,
		},
		{
			name:        "different time",
			currentSlot: "09:00",
			newDate:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			newSlot:     "09:10",
			want:        false,
		},
		{
			name:        "different day",
			currentSlot: "09:00",
			newDate:     time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
			newSlot:     "09:00",
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sameSlot(current, tt.currentSlot, tt.newDate, tt.newSlot))
		})
	}
}

func TestIsSlotConflict(t *testing.T) {
	assert.True(t, isSlotConflict(gorm.ErrDuplicatedKey))
	assert.True(t, isSlotConflict(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isSlotConflict(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isSlotConflict(gorm.ErrRecordNotFound))
	assert.False(t, isSlotConflict(errors.New("connection reset")))
	assert.False(t, isSlotConflict(nil))
}

func TestGenerateAppointmentNumber(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^AP-20250310-[0-9A-F]{12}$`)

	first := generateAppointmentNumber(date)
	second := generateAppointmentNumber(date)

	assert.Regexp(t, pattern, first)
	assert.Regexp(t, pattern, second)
	assert.NotEqual(t, first, second)
}
