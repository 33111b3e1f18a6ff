package entity

import (
	"errors"
	"time"

	"go-clinic-appointment/pkg/timeslot"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// ErrTerminalStatus is returned when a transition is attempted out of a
// terminal status. Cancelled and completed are terminal.
var ErrTerminalStatus = errors.New("appointment is in a terminal status")

// Appointment represents one patient-doctor booking. Appointments are never
// physically deleted; cancellation and completion only change the status.
type Appointment struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Number    string            `gorm:"type:varchar(50);uniqueIndex;not null" json:"number"`
	DoctorID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	SlotDate  time.Time         `gorm:"type:date;not null;index" json:"slot_date"`
	TimeSlot  string            `gorm:"type:varchar(20);not null" json:"time_slot"`
	Fee       decimal.Decimal   `gorm:"type:numeric(10,2);not null" json:"fee"`
	Paid      bool              `gorm:"not null;default:false" json:"paid"`
	Status    AppointmentStatus `gorm:"type:appointment_status;not null;default:'scheduled';index" json:"status"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsScheduled checks if the appointment still holds its slot
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// IsCancelled checks if the appointment was cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsCompleted checks if the appointment was completed
func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}

// Cancel transitions a scheduled appointment to cancelled.
func (a *Appointment) Cancel() error {
	if !a.IsScheduled() {
		return ErrTerminalStatus
	}
	a.Status = AppointmentStatusCancelled
	return nil
}

// Complete transitions a scheduled appointment to completed.
func (a *Appointment) Complete() error {
	if !a.IsScheduled() {
		return ErrTerminalStatus
	}
	a.Status = AppointmentStatusCompleted
	return nil
}

// Instant combines the appointment's date and time into a point in time.
func (a *Appointment) Instant(loc *time.Location) (time.Time, error) {
	return timeslot.Instant(a.SlotDate, a.TimeSlot, loc)
}

// DateKey returns the appointment date in canonical YYYY-MM-DD form.
func (a *Appointment) DateKey() string {
	return a.SlotDate.Format(timeslot.DateLayout)
}
