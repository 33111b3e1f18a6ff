package repository

import (
	"time"

	"go-clinic-appointment/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OccupiedSlotRepository interface {
	Claim(db *gorm.DB, slot *entity.OccupiedSlot) error
	Release(db *gorm.DB, doctorID uuid.UUID, date time.Time, timeSlot string) (int64, error)
	ReleaseByAppointment(db *gorm.DB, appointmentID uuid.UUID) (int64, error)
	IsOccupied(db *gorm.DB, doctorID uuid.UUID, date time.Time, timeSlot string) (bool, error)
	FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.OccupiedSlot, error)
	FindByDoctorInRange(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.OccupiedSlot, error)
	FindAll(db *gorm.DB) ([]entity.OccupiedSlot, error)
	PrunePast(db *gorm.DB, doctorID uuid.UUID, before time.Time) (int64, error)
	PruneAllPast(db *gorm.DB, before time.Time) (int64, error)
}
