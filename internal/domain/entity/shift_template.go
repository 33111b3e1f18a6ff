package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-clinic-appointment/pkg/timeslot"

	"github.com/google/uuid"
)

// ShiftWindow is a single recurring availability window in wall-clock time.
type ShiftWindow struct {
	StartTime string `json:"start_time"` // Format: HH:MM
	EndTime   string `json:"end_time"`   // Format: HH:MM
}

// Validate checks the HH:MM format and the start < end invariant.
func (w ShiftWindow) Validate() error {
	if !timeslot.IsValid(w.StartTime) {
		return fmt.Errorf("invalid window start time %q", w.StartTime)
	}
	if !timeslot.IsValid(w.EndTime) {
		return fmt.Errorf("invalid window end time %q", w.EndTime)
	}
	if w.StartTime >= w.EndTime {
		return fmt.Errorf("window start %q must be before end %q", w.StartTime, w.EndTime)
	}
	return nil
}

// ShiftWindows is an ordered list of windows stored as a JSONB column.
type ShiftWindows []ShiftWindow

// Value implements driver.Valuer for JSONB storage
func (w ShiftWindows) Value() (driver.Value, error) {
	if len(w) == 0 {
		return nil, nil
	}
	return json.Marshal(w)
}

// Scan implements sql.Scanner for JSONB storage
func (w *ShiftWindows) Scan(value interface{}) error {
	if value == nil {
		*w = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	var result []ShiftWindow
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*w = result
	return nil
}

// ShiftTemplate is a doctor's recurring daily availability. One template per
// doctor, created lazily on the doctor's first update. Weekend windows are
// optional; weekdays never use them.
type ShiftTemplate struct {
	ID             int          `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID       uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex" json:"doctor_id"`
	Morning        ShiftWindows `gorm:"type:jsonb" json:"morning"`
	Evening        ShiftWindows `gorm:"type:jsonb" json:"evening"`
	WeekendMorning ShiftWindows `gorm:"type:jsonb" json:"weekend_morning,omitempty"`
	WeekendEvening ShiftWindows `gorm:"type:jsonb" json:"weekend_evening,omitempty"`
	CreatedAt      time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (ShiftTemplate) TableName() string {
	return "shift_templates"
}

// Validate checks every window of the template.
func (t *ShiftTemplate) Validate() error {
	for _, group := range []ShiftWindows{t.Morning, t.Evening, t.WeekendMorning, t.WeekendEvening} {
		for _, w := range group {
			if err := w.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// WindowsFor returns the windows applying to a calendar date, morning
// windows first. Saturday and Sunday use the weekend windows when any are
// defined and fall back to the standard ones otherwise.
func (t *ShiftTemplate) WindowsFor(date time.Time) []ShiftWindow {
	morning, evening := t.Morning, t.Evening
	if timeslot.IsWeekend(date) && len(t.WeekendMorning)+len(t.WeekendEvening) > 0 {
		morning, evening = t.WeekendMorning, t.WeekendEvening
	}

	windows := make([]ShiftWindow, 0, len(morning)+len(evening))
	windows = append(windows, morning...)
	windows = append(windows, evening...)
	return windows
}
