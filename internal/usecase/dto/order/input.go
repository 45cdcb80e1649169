package orderdto

import "github.com/leadrun/fulfillment-service/internal/domain"

type CreateOrderInput struct {
	RequesterID string
	Requests    domain.LeadCounts
	Include     domain.IncludeTypes
	Priority    string
	Notes       string
	Country     string
	Gender      string

	ClientNetworkID string
	OurNetworkID    string
	CampaignID      string

	Injection InjectionParams
}

type InjectionParams struct {
	Enabled        bool
	Mode           domain.InjectionMode
	StartTime      string
	EndTime        string
	MinIntervalSec int
	MaxIntervalSec int
	Device         domain.DeviceConfig
}

type BrokerAssignmentInput struct {
	LeadID   string
	BrokerID string
	Domain   string
}

type AssignBrokersInput struct {
	OrderID     string
	AssignedBy  string
	Assignments []BrokerAssignmentInput
}

type ListOrdersInput struct {
	Filter domain.OrderFilter
	Page   int
	Limit  int
}

type UpdateOrderInput struct {
	OrderID  string
	Priority *string
	Notes    *string
}
