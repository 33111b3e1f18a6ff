package repository

import (
	"time"

	"go-clinic-appointment/internal/domain/entity"
	domainRepo "go-clinic-appointment/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type occupiedSlotRepository struct{}

func NewOccupiedSlotRepository() domainRepo.OccupiedSlotRepository {
	return &occupiedSlotRepository{}
}

// Claim inserts one ledger row. The composite unique index on
// (doctor_id, slot_date, time_slot) makes this the serialization point:
// a losing concurrent claim surfaces as gorm.ErrDuplicatedKey.
func (r *occupiedSlotRepository) Claim(db *gorm.DB, slot *entity.OccupiedSlot) error {
	return db.Create(slot).Error
}

func (r *occupiedSlotRepository) Release(db *gorm.DB, doctorID uuid.UUID, date time.Time, timeSlot string) (int64, error) {
	result := db.Where("doctor_id = ? AND slot_date = ? AND time_slot = ?", doctorID, date, timeSlot).
		Delete(&entity.OccupiedSlot{})
	return result.RowsAffected, result.Error
}

func (r *occupiedSlotRepository) ReleaseByAppointment(db *gorm.DB, appointmentID uuid.UUID) (int64, error) {
	result := db.Where("appointment_id = ?", appointmentID).Delete(&entity.OccupiedSlot{})
	return result.RowsAffected, result.Error
}

func (r *occupiedSlotRepository) IsOccupied(db *gorm.DB, doctorID uuid.UUID, date time.Time, timeSlot string) (bool, error) {
	var count int64
	err := db.Model(&entity.OccupiedSlot{}).
		Where("doctor_id = ? AND slot_date = ? AND time_slot = ?", doctorID, date, timeSlot).
		Count(&count).Error
	return count > 0, err
}

func (r *occupiedSlotRepository) FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.OccupiedSlot, error) {
	var slots []entity.OccupiedSlot
	err := db.Where("doctor_id = ? AND slot_date = ?", doctorID, date).
		Order("time_slot ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *occupiedSlotRepository) FindByDoctorInRange(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.OccupiedSlot, error) {
	var slots []entity.OccupiedSlot
	err := db.Where("doctor_id = ? AND slot_date >= ? AND slot_date <= ?", doctorID, from, to).
		Order("slot_date ASC, time_slot ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *occupiedSlotRepository) FindAll(db *gorm.DB) ([]entity.OccupiedSlot, error) {
	var slots []entity.OccupiedSlot
	err := db.Order("doctor_id ASC, slot_date ASC, time_slot ASC").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *occupiedSlotRepository) PrunePast(db *gorm.DB, doctorID uuid.UUID, before time.Time) (int64, error) {
	result := db.Where("doctor_id = ? AND slot_date < ?", doctorID, before).
		Delete(&entity.OccupiedSlot{})
	return result.RowsAffected, result.Error
}

func (r *occupiedSlotRepository) PruneAllPast(db *gorm.DB, before time.Time) (int64, error) {
	result := db.Where("slot_date < ?", before).Delete(&entity.OccupiedSlot{})
	return result.RowsAffected, result.Error
}
