package converter

import (
	"go-clinic-appointment/internal/delivery/dto"
	"go-clinic-appointment/internal/domain/entity"
)

// ShiftTemplateToResponse converts a ShiftTemplate entity to ShiftTemplateResponse DTO
func ShiftTemplateToResponse(template *entity.ShiftTemplate) *dto.ShiftTemplateResponse {
	if template == nil {
		return nil
	}

	return &dto.ShiftTemplateResponse{
		DoctorID:       template.DoctorID,
		Morning:        windowsToResponses(template.Morning),
		Evening:        windowsToResponses(template.Evening),
		WeekendMorning: windowsToResponses(template.WeekendMorning),
		WeekendEvening: windowsToResponses(template.WeekendEvening),
		CreatedAt:      template.CreatedAt,
		UpdatedAt:      template.UpdatedAt,
	}
}

// WindowsFromRequests converts request windows to the entity representation
func WindowsFromRequests(windows []dto.ShiftWindowRequest) entity.ShiftWindows {
	if len(windows) == 0 {
		return nil
	}
	result := make(entity.ShiftWindows, len(windows))
	for i, w := range windows {
		result[i] = entity.ShiftWindow{StartTime: w.StartTime, EndTime: w.EndTime}
	}
	return result
}

func windowsToResponses(windows entity.ShiftWindows) []dto.ShiftWindowResponse {
	if len(windows) == 0 {
		return nil
	}
	result := make([]dto.ShiftWindowResponse, len(windows))
	for i, w := range windows {
		result[i] = dto.ShiftWindowResponse{StartTime: w.StartTime, EndTime: w.EndTime}
	}
	return result
}
