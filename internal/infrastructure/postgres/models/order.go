package models

import (
	"time"

	"github.com/leadrun/fulfillment-service/internal/domain"
)

type OrderModel struct {
	ID          string             `gorm:"primaryKey;type:uuid"`
	RequesterID string             `gorm:"index"`
	Status      domain.OrderStatus `gorm:"index"`
	Priority    string             `gorm:"index"`
	Notes       string

	FTDRequested    int
	FillerRequested int
	ColdRequested   int
	LiveRequested   int
	FTDFulfilled    int
	FillerFulfilled int
	ColdFulfilled   int
	LiveFulfilled   int

	LeadIDs []string `gorm:"serializer:json"`

	CountryFilter   string
	GenderFilter    string
	ClientNetworkID string `gorm:"index"`
	OurNetworkID    string `gorm:"index"`
	CampaignID      string `gorm:"index"`

	InjectionEnabled bool
	InjectionMode    domain.InjectionMode
	InjectionStatus  domain.InjectionStatus `gorm:"index"`
	StartTime        string
	EndTime          string
	MinIntervalSec   int
	MaxIntervalSec   int
	IncludeFiller    bool
	IncludeCold      bool
	IncludeLive      bool
	DeviceConfig     domain.DeviceConfig `gorm:"serializer:json"`

	TotalToInject           int
	Successful              int
	Failed                  int
	BrokersAssigned         int
	FTDsPendingManualFill   int
	BrokerAssignmentPending bool
	LastInjectionAt         *time.Time
	InjectionCompletedAt    *time.Time

	FTDStatus      domain.FTDHandlingStatus
	FTDSkippedAt   *time.Time
	FTDCompletedAt *time.Time
	FTDNotes       string

	BrokerAssignmentStatus domain.BrokerAssignmentStatus
	BrokerAssignedBy       string
	BrokerAssignedAt       *time.Time
	BrokerAssignmentNotes  string

	CreatedAt          time.Time `gorm:"index"`
	UpdatedAt          time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason string
}
