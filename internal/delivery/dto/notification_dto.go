package dto

import (
	"time"

	"go-clinic-appointment/internal/domain/entity"
)

type NotificationResponse struct {
	ID        int64       `json:"id"`
	Kind      string      `json:"kind"`
	Message   string      `json:"message"`
	Metadata  entity.JSON `json:"metadata,omitempty"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
}
