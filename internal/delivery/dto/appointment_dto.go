package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" validate:"required"`
	Date     string    `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot string    `json:"time_slot" validate:"required"`
}

type RescheduleAppointmentRequest struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot string `json:"time_slot" validate:"required"`
}

type DoctorLeaveRequest struct {
	FromDate string `json:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate   string `json:"to_date" validate:"required,datetime=2006-01-02"`
	TimeFrom string `json:"time_from,omitempty" validate:"omitempty,datetime=15:04"`
	TimeTo   string `json:"time_to,omitempty" validate:"omitempty,datetime=15:04"`
}

type DoctorAppointmentsQuery struct {
	FromDate string
	ToDate   string
	Status   string
}

// Response DTOs

type AppointmentResponse struct {
	ID          uuid.UUID `json:"id"`
	Number      string    `json:"number"`
	DoctorID    uuid.UUID `json:"doctor_id"`
	DoctorName  string    `json:"doctor_name,omitempty"`
	PatientID   uuid.UUID `json:"patient_id"`
	PatientName string    `json:"patient_name,omitempty"`
	Date        string    `json:"date"`
	TimeSlot    string    `json:"time_slot"`
	Fee         string    `json:"fee"`
	Paid        bool      `json:"paid"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type BulkCancelResponse struct {
	Cancelled int `json:"cancelled"`
}

type SweepResponse struct {
	Matched   int64 `json:"matched"`
	Completed int64 `json:"completed"`
}
