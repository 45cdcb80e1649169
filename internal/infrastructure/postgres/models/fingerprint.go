package models

import (
	"time"

	"github.com/leadrun/fulfillment-service/internal/domain"
)

type FingerprintModel struct {
	ID         string            `gorm:"primaryKey;type:uuid"`
	DeviceID   string            `gorm:"uniqueIndex"`
	DeviceType domain.DeviceType
	Browser    domain.BrowserProfile   `gorm:"serializer:json"`
	Screen     domain.ScreenProfile    `gorm:"serializer:json"`
	Navigator  domain.NavigatorProfile `gorm:"serializer:json"`
	CanvasHash string
	AudioHash  string
	Timezone   string
	Mobile     domain.MobileProfile `gorm:"serializer:json"`
	LeadID     string               `gorm:"type:uuid;uniqueIndex"`
	CreatedBy  string
	CreatedAt  time.Time
	LastUsedAt time.Time
}
