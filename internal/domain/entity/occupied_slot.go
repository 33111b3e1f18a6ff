package entity

import (
	"sort"
	"time"

	"go-clinic-appointment/pkg/timeslot"

	"github.com/google/uuid"
)

// OccupiedSlot is one claimed (date, time) entry in a doctor's occupancy
// ledger. The composite unique index is the serialization point for
// bookings: claiming is a single INSERT and two concurrent claims for the
// same slot cannot both succeed.
type OccupiedSlot struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_occupied_doctor_date_time;index" json:"doctor_id"`
	SlotDate      time.Time `gorm:"type:date;not null;uniqueIndex:ux_occupied_doctor_date_time" json:"slot_date"`
	TimeSlot      string    `gorm:"type:varchar(20);not null;uniqueIndex:ux_occupied_doctor_date_time" json:"time_slot"`
	AppointmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"appointment_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (OccupiedSlot) TableName() string {
	return "occupied_slots"
}

// DateKey returns the slot date in canonical YYYY-MM-DD form.
func (s *OccupiedSlot) DateKey() string {
	return s.SlotDate.Format(timeslot.DateLayout)
}

// SortOccupiedSlots orders ledger entries by date ascending, then by
// time-of-day with the legacy morning/evening tie-break.
func SortOccupiedSlots(slots []OccupiedSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if !slots[i].SlotDate.Equal(slots[j].SlotDate) {
			return slots[i].SlotDate.Before(slots[j].SlotDate)
		}
		return timeslot.Compare(slots[i].TimeSlot, slots[j].TimeSlot) < 0
	})
}
