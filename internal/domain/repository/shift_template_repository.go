package repository

import (
	"go-clinic-appointment/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShiftTemplateRepository interface {
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) (*entity.ShiftTemplate, error)
	Upsert(db *gorm.DB, template *entity.ShiftTemplate) error
}
