package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type ShiftWindowRequest struct {
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}

// UpdateShiftTemplateRequest replaces the doctor's full recurring pattern.
// Weekend windows are optional; when absent weekends reuse the standard ones.
type UpdateShiftTemplateRequest struct {
	Morning        []ShiftWindowRequest `json:"morning" validate:"dive"`
	Evening        []ShiftWindowRequest `json:"evening" validate:"dive"`
	WeekendMorning []ShiftWindowRequest `json:"weekend_morning,omitempty" validate:"omitempty,dive"`
	WeekendEvening []ShiftWindowRequest `json:"weekend_evening,omitempty" validate:"omitempty,dive"`
}

// Response DTOs

type ShiftWindowResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type ShiftTemplateResponse struct {
	DoctorID       uuid.UUID             `json:"doctor_id"`
	Morning        []ShiftWindowResponse `json:"morning"`
	Evening        []ShiftWindowResponse `json:"evening"`
	WeekendMorning []ShiftWindowResponse `json:"weekend_morning,omitempty"`
	WeekendEvening []ShiftWindowResponse `json:"weekend_evening,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}
