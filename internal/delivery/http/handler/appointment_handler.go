package handler

import (
	"encoding/json"
	"net/http"

	"go-clinic-appointment/internal/delivery/dto"
	"go-clinic-appointment/internal/delivery/http/middleware"
	"go-clinic-appointment/internal/service"
	"go-clinic-appointment/internal/usecase"
	"go-clinic-appointment/pkg/response"
	"go-clinic-appointment/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	bookingUsecase usecase.BookingUsecase
	sweeper        *service.CompletionSweeper
	validator      *validator.CustomValidator
}

func NewAppointmentHandler(
	bookingUsecase usecase.BookingUsecase,
	sweeper *service.CompletionSweeper,
	validator *validator.CustomValidator,
) *AppointmentHandler {
	return &AppointmentHandler{
		bookingUsecase: bookingUsecase,
		sweeper:        sweeper,
		validator:      validator,
	}
}

func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.bookingUsecase.Book(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient profile not found")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrShiftTemplateNotFound:
			response.NotFound(w, "Doctor has no shift template")
		case usecase.ErrInvalidDate, usecase.ErrInvalidTime, usecase.ErrPastSlot, usecase.ErrSlotOutsideShift:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrDuplicateAppointment:
			response.Error(w, http.StatusConflict, "You already have an appointment at this time", nil)
		case usecase.ErrSlotTaken:
			response.Error(w, http.StatusConflict, "Time slot is already taken", nil)
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]

	err := h.bookingUsecase.Cancel(r.Context(), number)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentNotOwned:
			response.Forbidden(w, "Appointment does not belong to you")
		case usecase.ErrAppointmentNotActive:
			response.Error(w, http.StatusConflict, "Appointment is not in scheduled state", nil)
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}

func (h *AppointmentHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]

	var req dto.RescheduleAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.bookingUsecase.Reschedule(r.Context(), number, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentNotOwned:
			response.Forbidden(w, "Appointment does not belong to you")
		case usecase.ErrAppointmentNotActive:
			response.Error(w, http.StatusConflict, "Appointment is not in scheduled state", nil)
		case usecase.ErrShiftTemplateNotFound:
			response.NotFound(w, "Doctor has no shift template")
		case usecase.ErrInvalidDate, usecase.ErrInvalidTime, usecase.ErrPastSlot, usecase.ErrSlotOutsideShift:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrDuplicateAppointment:
			response.Error(w, http.StatusConflict, "You already have an appointment at this time", nil)
		case usecase.ErrSlotTaken:
			response.Error(w, http.StatusConflict, "Time slot is already taken", nil)
		default:
			response.InternalServerError(w, "Failed to reschedule appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment rescheduled successfully", appointment)
}

func (h *AppointmentHandler) DoctorLeave(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	var req dto.DoctorLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.bookingUsecase.BulkCancel(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrInvalidDate, usecase.ErrInvalidDateRange:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to process leave request")
		}
		return
	}

	response.Success(w, http.StatusOK, "Leave processed successfully", result)
}

func (h *AppointmentHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]

	appointment, err := h.bookingUsecase.MarkPaid(r.Context(), number)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAlreadyPaid:
			response.Error(w, http.StatusConflict, "Appointment is already paid", nil)
		default:
			response.InternalServerError(w, "Failed to mark appointment paid")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment marked as paid", appointment)
}

func (h *AppointmentHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.bookingUsecase.ListForPatient(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// GetDoctorAppointments serves the doctor dashboard. Doctors see their own
// list; admins may pass any doctor ID.
func (h *AppointmentHandler) GetDoctorAppointments(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var doctorID uuid.UUID
	if raw, ok := vars["id"]; ok {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
			return
		}
		doctorID = parsed
	} else {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "")
			return
		}
		doctorID = userID
	}

	query := &dto.DoctorAppointmentsQuery{
		FromDate: r.URL.Query().Get("from"),
		ToDate:   r.URL.Query().Get("to"),
		Status:   r.URL.Query().Get("status"),
	}

	appointments, err := h.bookingUsecase.ListForDoctor(r.Context(), doctorID, query)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to get appointments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// Sweep triggers one on-demand completion pass.
func (h *AppointmentHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	matched, completed, err := h.sweeper.Sweep(r.Context())
	if err != nil {
		response.InternalServerError(w, "Sweep failed")
		return
	}

	response.Success(w, http.StatusOK, "Sweep completed", &dto.SweepResponse{
		Matched:   matched,
		Completed: completed,
	})
}
