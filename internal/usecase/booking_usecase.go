package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"go-clinic-appointment/internal/converter"
	"go-clinic-appointment/internal/delivery/dto"
	"go-clinic-appointment/internal/delivery/http/middleware"
	"go-clinic-appointment/internal/domain/entity"
	"go-clinic-appointment/internal/domain/repository"
	"go-clinic-appointment/internal/service"
	"go-clinic-appointment/pkg/timeslot"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrAppointmentNotOwned  = errors.New("appointment does not belong to you")
	ErrAppointmentNotActive = errors.New("appointment is not in scheduled state")
	ErrDuplicateAppointment = errors.New("you already have an appointment at this time")
	ErrSlotTaken            = errors.New("time slot is already taken")
	ErrSlotOutsideShift     = errors.New("time slot is outside the doctor's working hours")
	ErrPastSlot             = errors.New("cannot book a past time slot")
	ErrAlreadyPaid          = errors.New("appointment is already paid")
	ErrInvalidDate          = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTime          = errors.New("invalid time format, use HH:MM")
	ErrInvalidDateRange     = errors.New("from date must not be after to date")
)

type BookingUsecase interface {
	Book(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, number string) error
	Reschedule(ctx context.Context, number string, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	BulkCancel(ctx context.Context, doctorID uuid.UUID, req *dto.DoctorLeaveRequest) (*dto.BulkCancelResponse, error)
	MarkPaid(ctx context.Context, number string) (*dto.AppointmentResponse, error)
	ListForPatient(ctx context.Context) (*dto.AppointmentListResponse, error)
	ListForDoctor(ctx context.Context, doctorID uuid.UUID, query *dto.DoctorAppointmentsQuery) (*dto.AppointmentListResponse, error)
}

type bookingUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	appointmentRepo    repository.AppointmentRepository
	occupiedRepo       repository.OccupiedSlotRepository
	templateRepo       repository.ShiftTemplateRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
	slotCache          *service.SlotCacheService
	notifier           *service.NotificationService
	auditService       service.AuditService

	step time.Duration
	loc  *time.Location
	now  func() time.Time
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	occupiedRepo repository.OccupiedSlotRepository,
	templateRepo repository.ShiftTemplateRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	slotCache *service.SlotCacheService,
	notifier *service.NotificationService,
	auditService service.AuditService,
	step time.Duration,
	loc *time.Location,
) BookingUsecase {
	if loc == nil {
		loc = time.Local
	}
	return &bookingUsecase{
		db:                 db,
		log:                log,
		appointmentRepo:    appointmentRepo,
		occupiedRepo:       occupiedRepo,
		templateRepo:       templateRepo,
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
		slotCache:          slotCache,
		notifier:           notifier,
		auditService:       auditService,
		step:               step,
		loc:                loc,
		now:                time.Now,
	}
}

// Book reserves a slot for the logged-in patient.
//
// Flow:
// 1. Validate patient, doctor, date/time, and the doctor's shift template
// 2. Reject duplicate scheduled appointment for the patient at (date,time)
// 3. Transaction: prune past ledger rows, insert appointment, claim ledger
//    row (the unique index decides concurrent claims)
// 4. Post-commit: mirror the claim to Redis, audit, notify both parties
func (u *bookingUsecase) Book(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	patient, err := u.patientProfileRepo.FindByUserID(ctx, u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	date, slot, err := u.parseSlot(req.Date, req.TimeSlot)
	if err != nil {
		return nil, err
	}

	if err := u.checkSlotBookable(ctx, req.DoctorID, date, slot); err != nil {
		return nil, err
	}

	existing, err := u.appointmentRepo.FindScheduledDuplicate(u.db.WithContext(ctx), patientID, date, slot)
	if err != nil {
		u.log.Warnf("Failed to check duplicate appointment: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateAppointment
	}

	appointment := &entity.Appointment{
		ID:        uuid.New(),
		Number:    generateAppointmentNumber(date),
		DoctorID:  req.DoctorID,
		PatientID: patientID,
		SlotDate:  date,
		TimeSlot:  slot,
		Fee:       doctor.ConsultationFee,
		Status:    entity.AppointmentStatusScheduled,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if _, err := u.occupiedRepo.PrunePast(tx, req.DoctorID, startOfDay(u.now().In(u.loc))); err != nil {
		u.log.Warnf("Failed to prune past ledger rows for doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to insert appointment: %+v", err)
		return nil, err
	}

	claim := &entity.OccupiedSlot{
		DoctorID:      req.DoctorID,
		SlotDate:      date,
		TimeSlot:      slot,
		AppointmentID: appointment.ID,
	}
	if err := u.occupiedRepo.Claim(tx, claim); err != nil {
		if isSlotConflict(err) {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to claim slot for doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &patientID, entity.AuditActionAppointmentBook,
		"appointment", appointment.Number, map[string]interface{}{
			"doctor_id": req.DoctorID,
			"date":      req.Date,
			"time_slot": slot,
		}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed to commit booking transaction: %+v", err)
		return nil, err
	}

	u.mirrorClaim(req.DoctorID, date, slot, appointment.ID)

	u.notifier.Notify(patientID, entity.NotificationAppointmentBooked,
		fmt.Sprintf("Your appointment %s on %s at %s is confirmed", appointment.Number, req.Date, slot),
		entity.JSON{"number": appointment.Number})
	u.notifier.Notify(req.DoctorID, entity.NotificationAppointmentBooked,
		fmt.Sprintf("New appointment %s on %s at %s", appointment.Number, req.Date, slot),
		entity.JSON{"number": appointment.Number})

	u.log.Infof("Appointment booked: number=%s, doctor=%s, date=%s, slot=%s",
		appointment.Number, req.DoctorID, req.Date, slot)
	return converter.AppointmentToResponse(appointment), nil
}

// Cancel cancels the patient's own appointment and frees its slot.
// The conditional status update is the race guard: 0 affected rows means
// the appointment already left the scheduled state.
func (u *bookingUsecase) Cancel(ctx context.Context, number string) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByNumber(u.db.WithContext(ctx), number)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", number, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if appointment.PatientID != userID {
		return ErrAppointmentNotOwned
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.appointmentRepo.UpdateStatus(tx, appointment.ID,
		entity.AppointmentStatusScheduled, entity.AppointmentStatusCancelled)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", number, err)
		return err
	}
	if rows == 0 {
		return ErrAppointmentNotActive
	}

	// 0 released rows is fine, the sweeper may have pruned a past slot
	if _, err := u.occupiedRepo.ReleaseByAppointment(tx, appointment.ID); err != nil {
		u.log.Warnf("Failed to release slot for appointment %s: %+v", number, err)
		return err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionAppointmentCancel,
		"appointment", number,
		string(entity.AppointmentStatusScheduled), string(entity.AppointmentStatusCancelled)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed to commit cancel transaction: %+v", err)
		return err
	}

	u.mirrorRelease(appointment.DoctorID, appointment.SlotDate, appointment.TimeSlot)

	message := fmt.Sprintf("Appointment %s on %s at %s was cancelled",
		number, appointment.DateKey(), timeslot.Normalize(appointment.TimeSlot))
	u.notifier.Notify(appointment.PatientID, entity.NotificationAppointmentCancelled, message,
		entity.JSON{"number": number})
	u.notifier.Notify(appointment.DoctorID, entity.NotificationAppointmentCancelled, message,
		entity.JSON{"number": number})

	u.log.Infof("Appointment cancelled: number=%s", number)
	return nil
}

// Reschedule moves a scheduled appointment to a new slot. The new claim
// and the old release share one transaction: when the destination is
// taken everything rolls back and the original slot stays reserved.
func (u *bookingUsecase) Reschedule(ctx context.Context, number string, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByNumber(u.db.WithContext(ctx), number)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", number, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.PatientID != userID {
		return nil, ErrAppointmentNotOwned
	}
	if !appointment.IsScheduled() {
		return nil, ErrAppointmentNotActive
	}

	newDate, newSlot, err := u.parseSlot(req.Date, req.TimeSlot)
	if err != nil {
		return nil, err
	}

	// Moving to the current slot is a no-op; claiming it again would
	// collide with the appointment's own ledger row.
	if sameSlot(appointment.SlotDate, appointment.TimeSlot, newDate, newSlot) {
		return converter.AppointmentToResponse(appointment), nil
	}

	if err := u.checkSlotBookable(ctx, appointment.DoctorID, newDate, newSlot); err != nil {
		return nil, err
	}

	existing, err := u.appointmentRepo.FindScheduledDuplicate(u.db.WithContext(ctx), userID, newDate, newSlot)
	if err != nil {
		u.log.Warnf("Failed to check duplicate appointment: %+v", err)
		return nil, err
	}
	if existing != nil && existing.ID != appointment.ID {
		return nil, ErrDuplicateAppointment
	}

	oldDate, oldSlot := appointment.SlotDate, appointment.TimeSlot

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if _, err := u.occupiedRepo.PrunePast(tx, appointment.DoctorID, startOfDay(u.now().In(u.loc))); err != nil {
		u.log.Warnf("Failed to prune past ledger rows for doctor %s: %+v", appointment.DoctorID, err)
		return nil, err
	}

	claim := &entity.OccupiedSlot{
		DoctorID:      appointment.DoctorID,
		SlotDate:      newDate,
		TimeSlot:      newSlot,
		AppointmentID: appointment.ID,
	}
	if err := u.occupiedRepo.Claim(tx, claim); err != nil {
		if isSlotConflict(err) {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to claim new slot for appointment %s: %+v", number, err)
		return nil, err
	}

	if _, err := u.occupiedRepo.Release(tx, appointment.DoctorID, oldDate, oldSlot); err != nil {
		u.log.Warnf("Failed to release old slot for appointment %s: %+v", number, err)
		return nil, err
	}

	rows, err := u.appointmentRepo.UpdateSchedule(tx, appointment.ID, newDate, newSlot)
	if err != nil {
		u.log.Warnf("Failed to update appointment %s schedule: %+v", number, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrAppointmentNotActive
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionAppointmentReschedule,
		"appointment", number,
		map[string]interface{}{"date": appointment.DateKey(), "time_slot": oldSlot},
		map[string]interface{}{"date": req.Date, "time_slot": newSlot}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed to commit reschedule transaction: %+v", err)
		return nil, err
	}

	u.mirrorRelease(appointment.DoctorID, oldDate, oldSlot)
	u.mirrorClaim(appointment.DoctorID, newDate, newSlot, appointment.ID)

	appointment.SlotDate = newDate
	appointment.TimeSlot = newSlot

	message := fmt.Sprintf("Appointment %s moved to %s at %s", number, req.Date, newSlot)
	u.notifier.Notify(appointment.PatientID, entity.NotificationAppointmentRescheduled, message,
		entity.JSON{"number": number})
	u.notifier.Notify(appointment.DoctorID, entity.NotificationAppointmentRescheduled, message,
		entity.JSON{"number": number})

	u.log.Infof("Appointment rescheduled: number=%s, date=%s, slot=%s", number, req.Date, newSlot)
	return converter.AppointmentToResponse(appointment), nil
}

// BulkCancel cancels every scheduled appointment of the doctor inside the
// date range, optionally narrowed to a time-of-day range. Used for leave
// requests. Returns how many appointments were cancelled.
func (u *bookingUsecase) BulkCancel(ctx context.Context, doctorID uuid.UUID, req *dto.DoctorLeaveRequest) (*dto.BulkCancelResponse, error) {
	actorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	from, err := time.ParseInLocation(timeslot.DateLayout, req.FromDate, u.loc)
	if err != nil {
		return nil, ErrInvalidDate
	}
	to, err := time.ParseInLocation(timeslot.DateLayout, req.ToDate, u.loc)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if from.After(to) {
		return nil, ErrInvalidDateRange
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	candidates, err := u.appointmentRepo.FindScheduledInRange(tx, doctorID, from, to)
	if err != nil {
		u.log.Warnf("Failed to load appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	var cancelled []entity.Appointment
	for i := range candidates {
		if !inTimeRange(candidates[i].TimeSlot, req.TimeFrom, req.TimeTo) {
			continue
		}

		rows, err := u.appointmentRepo.UpdateStatus(tx, candidates[i].ID,
			entity.AppointmentStatusScheduled, entity.AppointmentStatusCancelled)
		if err != nil {
			u.log.Warnf("Failed to cancel appointment %s: %+v", candidates[i].Number, err)
			return nil, err
		}
		if rows == 0 {
			continue
		}

		if _, err := u.occupiedRepo.ReleaseByAppointment(tx, candidates[i].ID); err != nil {
			u.log.Warnf("Failed to release slot for appointment %s: %+v", candidates[i].Number, err)
			return nil, err
		}
		cancelled = append(cancelled, candidates[i])
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentBulkCancel,
		"doctor", doctorID.String(),
		map[string]interface{}{"from": req.FromDate, "to": req.ToDate},
		map[string]interface{}{"cancelled": len(cancelled)}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed to commit bulk cancel transaction: %+v", err)
		return nil, err
	}

	released := make([]entity.OccupiedSlot, len(cancelled))
	for i, appointment := range cancelled {
		released[i] = entity.OccupiedSlot{SlotDate: appointment.SlotDate, TimeSlot: appointment.TimeSlot}

		u.notifier.Notify(appointment.PatientID, entity.NotificationDoctorLeave,
			fmt.Sprintf("Appointment %s on %s at %s was cancelled because the doctor is unavailable",
				appointment.Number, appointment.DateKey(), timeslot.Normalize(appointment.TimeSlot)),
			entity.JSON{"number": appointment.Number})
	}
	syncCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	u.slotCache.RemoveOccupiedBatch(syncCtx, doctorID, released)

	u.log.Infof("Bulk cancel: doctor=%s, from=%s, to=%s, cancelled=%d",
		doctorID, req.FromDate, req.ToDate, len(cancelled))
	return &dto.BulkCancelResponse{Cancelled: len(cancelled)}, nil
}

// MarkPaid flips the payment flag once.
func (u *bookingUsecase) MarkPaid(ctx context.Context, number string) (*dto.AppointmentResponse, error) {
	actorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByNumber(u.db.WithContext(ctx), number)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", number, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	rows, err := u.appointmentRepo.MarkPaid(u.db.WithContext(ctx), appointment.ID)
	if err != nil {
		u.log.Warnf("Failed to mark appointment %s paid: %+v", number, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrAlreadyPaid
	}
	appointment.Paid = true

	u.auditService.LogUpdate(ctx, u.db.WithContext(ctx), &actorID, entity.AuditActionAppointmentMarkPaid,
		"appointment", number, false, true)

	u.log.Infof("Appointment marked paid: number=%s", number)
	return converter.AppointmentToResponse(appointment), nil
}

// ListForPatient returns all appointments of the logged-in patient.
func (u *bookingUsecase) ListForPatient(ctx context.Context) (*dto.AppointmentListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", userID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// ListForDoctor returns the doctor's appointments, optionally filtered by
// date range and status.
func (u *bookingUsecase) ListForDoctor(ctx context.Context, doctorID uuid.UUID, query *dto.DoctorAppointmentsQuery) (*dto.AppointmentListResponse, error) {
	filter := &entity.AppointmentFilter{}
	if query != nil {
		if query.FromDate != "" {
			from, err := time.ParseInLocation(timeslot.DateLayout, query.FromDate, u.loc)
			if err != nil {
				return nil, ErrInvalidDate
			}
			filter.FromDate = from
		}
		if query.ToDate != "" {
			to, err := time.ParseInLocation(timeslot.DateLayout, query.ToDate, u.loc)
			if err != nil {
				return nil, ErrInvalidDate
			}
			filter.ToDate = to
		}
		filter.Status = entity.AppointmentStatus(query.Status)
	}

	appointments, err := u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// parseSlot validates and normalizes the requested date and time.
func (u *bookingUsecase) parseSlot(dateStr, slotStr string) (time.Time, string, error) {
	date, err := time.ParseInLocation(timeslot.DateLayout, dateStr, u.loc)
	if err != nil {
		return time.Time{}, "", ErrInvalidDate
	}

	slot := timeslot.Normalize(slotStr)
	if !timeslot.IsValid(slot) {
		return time.Time{}, "", ErrInvalidTime
	}

	instant, err := timeslot.Instant(date, slot, u.loc)
	if err != nil {
		return time.Time{}, "", ErrInvalidTime
	}
	if instant.Before(u.now().In(u.loc)) {
		return time.Time{}, "", ErrPastSlot
	}

	return date, slot, nil
}

// checkSlotBookable verifies the slot lies on the doctor's shift grid for
// that date.
func (u *bookingUsecase) checkSlotBookable(ctx context.Context, doctorID uuid.UUID, date time.Time, slot string) error {
	template, err := u.templateRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find shift template for doctor %s: %+v", doctorID, err)
		return err
	}
	if template == nil {
		return ErrShiftTemplateNotFound
	}

	for _, window := range template.WindowsFor(date) {
		for _, candidate := range timeslot.Generate(window.StartTime, window.EndTime, u.step) {
			if candidate == slot {
				return nil
			}
		}
	}
	return ErrSlotOutsideShift
}

// mirrorClaim and mirrorRelease push committed ledger changes to the Redis
// mirror. Failures are non-fatal, the background resync heals the drift.
func (u *bookingUsecase) mirrorClaim(doctorID uuid.UUID, date time.Time, slot string, appointmentID uuid.UUID) {
	syncCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	u.slotCache.AddOccupied(syncCtx, doctorID, date, slot, appointmentID)
}

func (u *bookingUsecase) mirrorRelease(doctorID uuid.UUID, date time.Time, slot string) {
	syncCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	u.slotCache.RemoveOccupied(syncCtx, doctorID, date, slot)
}

// sameSlot reports whether the requested destination is the appointment's
// current slot. Dates compare by calendar key so the storage timezone does
// not matter; newSlot is expected in canonical form.
func sameSlot(currentDate time.Time, currentSlot string, newDate time.Time, newSlot string) bool {
	return currentDate.Format(timeslot.DateLayout) == newDate.Format(timeslot.DateLayout) &&
		timeslot.Normalize(currentSlot) == newSlot
}

// inTimeRange applies the optional time-of-day bounds of a leave request.
func inTimeRange(slot, from, to string) bool {
	if from != "" && timeslot.Compare(slot, from) < 0 {
		return false
	}
	if to != "" && timeslot.Compare(slot, to) > 0 {
		return false
	}
	return true
}

// isSlotConflict recognizes a lost claim race: gorm's translated duplicate
// key error, or the raw PostgreSQL unique violation.
func isSlotConflict(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// generateAppointmentNumber generates a unique appointment number:
// AP-YYYYMMDD-XXXXXXXXXXXX. The 48-bit random suffix keeps the collision
// odds against the unique index negligible at clinic volume.
func generateAppointmentNumber(date time.Time) string {
	randomBytes := make([]byte, 6)
	rand.Read(randomBytes)
	return fmt.Sprintf("AP-%s-%012X", date.Format("20060102"), randomBytes)
}
