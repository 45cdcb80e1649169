package models

import "time"

type BrokerModel struct {
	ID                 string `gorm:"primaryKey;type:uuid"`
	Name               string `gorm:"uniqueIndex"`
	Domain             string `gorm:"uniqueIndex"`
	Description        string
	IsActive           bool     `gorm:"index"`
	AssignedLeadIDs    []string `gorm:"serializer:json"`
	TotalLeadsAssigned int
	LastAssignedAt     *time.Time
	CreatedBy          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
