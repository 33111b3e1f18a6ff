package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by the bulk-cancel path (doctor leave requests) and the completion
// sweep to avoid coupling the repository layer with delivery DTOs.
type AppointmentFilter struct {
	DoctorID uuid.UUID
	FromDate time.Time // inclusive
	ToDate   time.Time // inclusive
	FromTime string    // optional, Format: HH:MM
	ToTime   string    // optional, Format: HH:MM
	Status   AppointmentStatus
}
