package repository

import (
	"time"

	"go-clinic-appointment/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByNumber(db *gorm.DB, number string) (*entity.Appointment, error)
	FindScheduledDuplicate(db *gorm.DB, patientID uuid.UUID, date time.Time, timeSlot string) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	FindScheduledInRange(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.Appointment, error)
	FindScheduledBefore(db *gorm.DB, before time.Time) ([]entity.Appointment, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error)
	UpdateSchedule(db *gorm.DB, id uuid.UUID, date time.Time, timeSlot string) (int64, error)
	MarkPaid(db *gorm.DB, id uuid.UUID) (int64, error)
}
