package models

import (
	"time"

	"github.com/leadrun/fulfillment-service/internal/domain"
)

type ProxyModel struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	SessionID   string
	Server      string
	Username    string
	Password    string
	Host        string
	Port        string
	Country     string             `gorm:"index"`
	CountryCode string
	Status      domain.ProxyStatus `gorm:"index"`

	Healthy      bool `gorm:"index"`
	LastCheck    time.Time
	FailedChecks int
	ResponseTime int64 // nanoseconds
	LastError    string

	LeaseLeadID      string
	LeaseOrderID     string
	LeaseStatus      domain.ReservationStatus
	LeaseAssignedAt  *time.Time
	LeaseCompletedAt *time.Time

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
