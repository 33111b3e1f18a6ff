package repository

import (
	"errors"
	"time"

	"go-clinic-appointment/internal/domain/entity"
	domainRepo "go-clinic-appointment/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByNumber(db *gorm.DB, number string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Doctor.User").Preload("Patient.User").
		Where("number = ?", number).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// FindScheduledDuplicate looks for an existing scheduled appointment held
// by the patient at the same date and time, regardless of doctor. Used to
// reject double bookings across doctors.
func (r *appointmentRepository) FindScheduledDuplicate(db *gorm.DB, patientID uuid.UUID, date time.Time, timeSlot string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("patient_id = ? AND slot_date = ? AND time_slot = ? AND status = ?",
		patientID, date, timeSlot, entity.AppointmentStatusScheduled).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor.User").
		Where("patient_id = ?", patientID).
		Order("slot_date DESC, time_slot DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	query := db.Preload("Patient.User").Where("doctor_id = ?", doctorID)

	if filter != nil {
		if !filter.FromDate.IsZero() {
			query = query.Where("slot_date >= ?", filter.FromDate)
		}
		if !filter.ToDate.IsZero() {
			query = query.Where("slot_date <= ?", filter.ToDate)
		}
		if filter.FromTime != "" {
			query = query.Where("time_slot >= ?", filter.FromTime)
		}
		if filter.ToTime != "" {
			query = query.Where("time_slot <= ?", filter.ToTime)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
	}

	var appointments []entity.Appointment
	err := query.Order("slot_date ASC, time_slot ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindScheduledInRange(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("doctor_id = ? AND slot_date >= ? AND slot_date <= ? AND status = ?",
		doctorID, from, to, entity.AppointmentStatusScheduled).
		Order("slot_date ASC, time_slot ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindScheduledBefore returns still-scheduled appointments whose slot date
// is strictly before the given date. Same-day appointments are excluded;
// the sweeper decides per slot time whether they are due.
func (r *appointmentRepository) FindScheduledBefore(db *gorm.DB, before time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("slot_date < ? AND status = ?", before, entity.AppointmentStatusScheduled).
		Order("slot_date ASC, time_slot ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// UpdateStatus performs a guarded transition and reports affected rows:
// 1 = transition applied, 0 = the appointment was no longer in the
// expected status (lost race or terminal).
func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

// UpdateSchedule moves a scheduled appointment to a new date and time.
func (r *appointmentRepository) UpdateSchedule(db *gorm.DB, id uuid.UUID, date time.Time, timeSlot string) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, entity.AppointmentStatusScheduled).
		Updates(map[string]interface{}{"slot_date": date, "time_slot": timeSlot})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) MarkPaid(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND paid = ?", id, false).
		Update("paid", true)
	return result.RowsAffected, result.Error
}
