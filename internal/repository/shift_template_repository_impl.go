package repository

import (
	"errors"

	"go-clinic-appointment/internal/domain/entity"
	domainRepo "go-clinic-appointment/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type shiftTemplateRepository struct{}

func NewShiftTemplateRepository() domainRepo.ShiftTemplateRepository {
	return &shiftTemplateRepository{}
}

func (r *shiftTemplateRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) (*entity.ShiftTemplate, error) {
	var template entity.ShiftTemplate
	err := db.Where("doctor_id = ?", doctorID).First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

// Upsert creates the doctor's template on first write and replaces all
// window columns afterwards. One template per doctor.
func (r *shiftTemplateRepository) Upsert(db *gorm.DB, template *entity.ShiftTemplate) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "doctor_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"morning", "evening", "weekend_morning", "weekend_evening", "updated_at",
		}),
	}).Create(template).Error
}
