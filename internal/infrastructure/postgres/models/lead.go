package models

import (
	"time"

	"github.com/leadrun/fulfillment-service/internal/domain"
)

type LeadModel struct {
	ID            string                    `gorm:"primaryKey;type:uuid"`
	LeadType      domain.LeadType           `gorm:"index:idx_lead_type_assigned"`
	FirstName     string
	LastName      string
	Email         string `gorm:"index"`
	Phone         string
	Prefix        string
	Country       string `gorm:"index"`
	CountryCode   string
	Gender        string
	Availability  domain.AvailabilityStatus `gorm:"index"`
	SleepReason   string
	IsAssigned    bool   `gorm:"index:idx_lead_type_assigned"`
	AssignedTo    string
	OrderID       string `gorm:"index"`
	FingerprintID string `gorm:"type:uuid"`
	DeviceType    domain.DeviceType
	BrokerIDs     []string `gorm:"serializer:json"`

	NetworkLogs       []NetworkLogModel       `gorm:"foreignKey:LeadID;constraint:OnDelete:CASCADE"`
	BrokerLogs        []BrokerLogModel        `gorm:"foreignKey:LeadID;constraint:OnDelete:CASCADE"`
	ProxyReservations []ProxyReservationModel `gorm:"foreignKey:LeadID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

type NetworkLogModel struct {
	ID         string                  `gorm:"primaryKey;type:uuid"`
	LeadID     string                  `gorm:"type:uuid;index"`
	Kind       domain.RelationshipKind `gorm:"index:idx_network_target"`
	TargetID   string                  `gorm:"index:idx_network_target"`
	AssignedBy string
	OrderID    string `gorm:"index"`
	Status     domain.LogStatus
	AssignedAt time.Time
}

type BrokerLogModel struct {
	ID         string `gorm:"primaryKey;type:uuid"`
	LeadID     string `gorm:"type:uuid;index"`
	BrokerID   string `gorm:"index"`
	AssignedBy string
	OrderID    string `gorm:"index"`
	Domain     string
	Status     domain.LogStatus
	AssignedAt time.Time
}

type ProxyReservationModel struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	LeadID      string `gorm:"type:uuid;index"`
	ProxyID     string `gorm:"type:uuid;index"`
	OrderID     string `gorm:"index"`
	Status      domain.ReservationStatus `gorm:"index"`
	AssignedAt  time.Time
	CompletedAt *time.Time
}
