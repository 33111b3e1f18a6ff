package repository

import (
	"go-clinic-appointment/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(db *gorm.DB, notification *entity.Notification) error
	UpdateStatus(db *gorm.DB, id int64, status entity.NotificationStatus) error
	FindByUserID(db *gorm.DB, userID uuid.UUID, limit int) ([]entity.Notification, error)
}
