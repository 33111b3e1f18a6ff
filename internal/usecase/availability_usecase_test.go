package usecase

import (
	"testing"
	"time"

	"go-clinic-appointment/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAvailability(t *testing.T) {
	template := &entity.ShiftTemplate{
		Morning: entity.ShiftWindows{{StartTime: "09:00", EndTime: "09:30"}},
	}
	// Monday
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("subtracts occupied slots", func(t *testing.T) {
		occupied := map[string][]string{"2025-03-10": {"09:10"}}
		days := buildAvailability(template, occupied, from, 1, 10*time.Minute)

		require.Len(t, days, 1)
		assert.Equal(t, "2025-03-10", days[0].Date)
		assert.Equal(t, []string{"09:00", "09:20"}, days[0].Slots)
	})

	t.Run("normalizes legacy occupied values", func(t *testing.T) {
		occupied := map[string][]string{"2025-03-10": {"9:10 AM"}}
		days := buildAvailability(template, occupied, from, 1, 10*time.Minute)

		require.Len(t, days, 1)
		assert.Equal(t, []string{"09:00", "09:20"}, days[0].Slots)
	})

	t.Run("fully booked day keeps an empty slot list", func(t *testing.T) {
		occupied := map[string][]string{"2025-03-10": {"09:00", "09:10", "09:20"}}
		days := buildAvailability(template, occupied, from, 1, 10*time.Minute)

		require.Len(t, days, 1)
		assert.Empty(t, days[0].Slots)
		assert.NotNil(t, days[0].Slots)
	})

	t.Run("days without windows are omitted", func(t *testing.T) {
		weekendOnly := &entity.ShiftTemplate{
			WeekendMorning: entity.ShiftWindows{{StartTime: "10:00", EndTime: "10:20"}},
		}
		// Friday through Sunday
		friday := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
		days := buildAvailability(weekendOnly, nil, friday, 3, 10*time.Minute)

		require.Len(t, days, 2)
		assert.Equal(t, "2025-03-15", days[0].Date)
		assert.Equal(t, "2025-03-16", days[1].Date)
		assert.Equal(t, []string{"10:00", "10:10"}, days[0].Slots)
	})

	t.Run("weekend falls back to standard windows", func(t *testing.T) {
		// Saturday with no weekend windows defined
		saturday := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
		days := buildAvailability(template, nil, saturday, 1, 10*time.Minute)

		require.Len(t, days, 1)
		assert.Equal(t, []string{"09:00", "09:10", "09:20"}, days[0].Slots)
	})

	t.Run("overlapping windows deduplicate slots", func(t *testing.T) {
		overlapping := &entity.ShiftTemplate{
			Morning: entity.ShiftWindows{
				{StartTime: "09:00", EndTime: "09:20"},
				{StartTime: "09:10", EndTime: "09:30"},
			},
		}
		days := buildAvailability(overlapping, nil, from, 1, 10*time.Minute)

		require.Len(t, days, 1)
		assert.Equal(t, []string{"09:00", "09:10", "09:20"}, days[0].Slots)
	})
}

func TestGroupOccupied(t *testing.T) {
	doctorID := uuid.New()
	day1 := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	grouped := groupOccupied([]entity.OccupiedSlot{
		{DoctorID: doctorID, SlotDate: day1, TimeSlot: "09:00"},
		{DoctorID: doctorID, SlotDate: day1, TimeSlot: "09:10"},
		{DoctorID: doctorID, SlotDate: day2, TimeSlot: "18:00"},
	})

	assert.Equal(t, map[string][]string{
		"2025-03-10": {"09:00", "09:10"},
		"2025-03-11": {"18:00"},
	}, grouped)
}

func TestStartOfDay(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	ts := time.Date(2025, 3, 10, 23, 45, 12, 999, loc)
	got := startOfDay(ts)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location())
}
