package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-clinic-appointment/internal/delivery/dto"
	"go-clinic-appointment/internal/usecase"
	"go-clinic-appointment/pkg/response"
	"go-clinic-appointment/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ShiftTemplateHandler struct {
	templateUsecase usecase.ShiftTemplateUsecase
	validator       *validator.CustomValidator
}

func NewShiftTemplateHandler(templateUsecase usecase.ShiftTemplateUsecase, validator *validator.CustomValidator) *ShiftTemplateHandler {
	return &ShiftTemplateHandler{
		templateUsecase: templateUsecase,
		validator:       validator,
	}
}

func (h *ShiftTemplateHandler) UpdateMyTemplate(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateShiftTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	template, err := h.templateUsecase.UpdateMyTemplate(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrInvalidShiftWindow):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update shift template")
		}
		return
	}

	response.Success(w, http.StatusOK, "Shift template updated successfully", template)
}

func (h *ShiftTemplateHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	template, err := h.templateUsecase.GetTemplate(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrShiftTemplateNotFound:
			response.NotFound(w, "Doctor has no shift template")
		default:
			response.InternalServerError(w, "Failed to get shift template")
		}
		return
	}

	response.Success(w, http.StatusOK, "Shift template retrieved successfully", template)
}
