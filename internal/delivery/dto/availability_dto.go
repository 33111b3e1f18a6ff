package dto

import "github.com/google/uuid"

// Response DTOs

// DayAvailability lists the free slot start times of one calendar day,
// ordered by time of day. Days outside the doctor's working pattern are
// omitted; a fully booked working day appears with an empty slot list.
type DayAvailability struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

type AvailabilityResponse struct {
	DoctorID uuid.UUID         `json:"doctor_id"`
	Days     []DayAvailability `json:"days"`
	Total    int               `json:"total"`
}
