package httpapi

import (
	"time"

	"github.com/leadrun/fulfillment-service/internal/domain"
)

type leadCountsResponse struct {
	FTD    int `json:"ftd"`
	Filler int `json:"filler"`
	Cold   int `json:"cold"`
	Live   int `json:"live"`
}

type injectionResponse struct {
	Enabled        bool   `json:"enabled"`
	Mode           string `json:"mode,omitempty"`
	Status         string `json:"status"`
	StartTime      string `json:"start_time,omitempty"`
	EndTime        string `json:"end_time,omitempty"`
	MinIntervalSec int    `json:"min_interval_sec,omitempty"`
	MaxIntervalSec int    `json:"max_interval_sec,omitempty"`
	IncludeFiller  bool   `json:"include_filler"`
	IncludeCold    bool   `json:"include_cold"`
	IncludeLive    bool   `json:"include_live"`
}

type progressResponse struct {
	TotalToInject           int        `json:"total_to_inject"`
	Successful              int        `json:"successful"`
	Failed                  int        `json:"failed"`
	BrokersAssigned         int        `json:"brokers_assigned"`
	FTDsPendingManualFill   int        `json:"ftds_pending_manual_fill"`
	BrokerAssignmentPending bool       `json:"broker_assignment_pending"`
	LastInjectionAt         *time.Time `json:"last_injection_at,omitempty"`
	CompletedAt             *time.Time `json:"completed_at,omitempty"`
}

type ftdHandlingResponse struct {
	Status      string     `json:"status"`
	SkippedAt   *time.Time `json:"skipped_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

type brokerAssignmentResponse struct {
	Status     string     `json:"status"`
	AssignedBy string     `json:"assigned_by,omitempty"`
	AssignedAt *time.Time `json:"assigned_at,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

type orderResponse struct {
	ID          string             `json:"id"`
	RequesterID string             `json:"requester_id"`
	Status      string             `json:"status"`
	Requests    leadCountsResponse `json:"requests"`
	Fulfilled   leadCountsResponse `json:"fulfilled"`
	LeadIDs     []string           `json:"lead_ids"`
	Priority    string             `json:"priority,omitempty"`
	Notes       string             `json:"notes,omitempty"`

	Country string `json:"country,omitempty"`
	Gender  string `json:"gender,omitempty"`

	ClientNetworkID string `json:"client_network_id,omitempty"`
	OurNetworkID    string `json:"our_network_id,omitempty"`
	CampaignID      string `json:"campaign_id,omitempty"`

	Injection        injectionResponse        `json:"injection"`
	Progress         progressResponse         `json:"progress"`
	FTDHandling      ftdHandlingResponse      `json:"ftd_handling"`
	BrokerAssignment brokerAssignmentResponse `json:"broker_assignment"`

	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
}

type leadResponse struct {
	ID           string `json:"id"`
	LeadType     string `json:"lead_type"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Country      string `json:"country"`
	CountryCode  string `json:"country_code,omitempty"`
	Gender       string `json:"gender,omitempty"`
	Availability string `json:"availability"`
	IsAssigned   bool   `json:"is_assigned"`
	OrderID      string `json:"order_id,omitempty"`
}

type statsResponse struct {
	Status         string `json:"status"`
	Count          int64  `json:"count"`
	TotalRequested int64  `json:"total_requested"`
	TotalFulfilled int64  `json:"total_fulfilled"`
}

func toLeadCountsResponse(c domain.LeadCounts) leadCountsResponse {
	return leadCountsResponse{FTD: c.FTD, Filler: c.Filler, Cold: c.Cold, Live: c.Live}
}

func toOrderResponse(order *domain.Order) orderResponse {
	return orderResponse{
		ID:          order.ID,
		RequesterID: order.RequesterID,
		Status:      string(order.Status),
		Requests:    toLeadCountsResponse(order.Requests),
		Fulfilled:   toLeadCountsResponse(order.Fulfilled),
		LeadIDs:     order.LeadIDs,
		Priority:    order.Priority,
		Notes:       order.Notes,

		Country: order.CountryFilter,
		Gender:  order.GenderFilter,

		ClientNetworkID: order.ClientNetworkID,
		OurNetworkID:    order.OurNetworkID,
		CampaignID:      order.CampaignID,

		Injection: injectionResponse{
			Enabled:        order.Injection.Enabled,
			Mode:           string(order.Injection.Mode),
			Status:         string(order.Injection.Status),
			StartTime:      order.Injection.Window.StartTime,
			EndTime:        order.Injection.Window.EndTime,
			MinIntervalSec: int(order.Injection.Window.MinInterval.Seconds()),
			MaxIntervalSec: int(order.Injection.Window.MaxInterval.Seconds()),
			IncludeFiller:  order.Injection.IncludeTypes.Filler,
			IncludeCold:    order.Injection.IncludeTypes.Cold,
			IncludeLive:    order.Injection.IncludeTypes.Live,
		},
		Progress: progressResponse{
			TotalToInject:           order.Progress.TotalToInject,
			Successful:              order.Progress.Successful,
			Failed:                  order.Progress.Failed,
			BrokersAssigned:         order.Progress.BrokersAssigned,
			FTDsPendingManualFill:   order.Progress.FTDsPendingManualFill,
			BrokerAssignmentPending: order.Progress.BrokerAssignmentPending,
			LastInjectionAt:         order.Progress.LastInjectionAt,
			CompletedAt:             order.Progress.CompletedAt,
		},
		FTDHandling: ftdHandlingResponse{
			Status:      string(order.FTDHandling.Status),
			SkippedAt:   order.FTDHandling.SkippedAt,
			CompletedAt: order.FTDHandling.CompletedAt,
			Notes:       order.FTDHandling.Notes,
		},
		BrokerAssignment: brokerAssignmentResponse{
			Status:     string(order.BrokerAssignment.Status),
			AssignedBy: order.BrokerAssignment.AssignedBy,
			AssignedAt: order.BrokerAssignment.AssignedAt,
			Notes:      order.BrokerAssignment.Notes,
		},

		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
		CompletedAt:        order.CompletedAt,
		CancelledAt:        order.CancelledAt,
		CancellationReason: order.CancellationReason,
	}
}

func toLeadResponses(leads []*domain.Lead) []leadResponse {
	out := make([]leadResponse, 0, len(leads))
	for _, lead := range leads {
		out = append(out, leadResponse{
			ID:           lead.ID,
			LeadType:     string(lead.LeadType),
			FirstName:    lead.FirstName,
			LastName:     lead.LastName,
			Email:        lead.Email,
			Phone:        lead.Phone,
			Country:      lead.Country,
			CountryCode:  lead.CountryCode,
			Gender:       lead.Gender,
			Availability: string(lead.Availability),
			IsAssigned:   lead.IsAssigned,
			OrderID:      lead.OrderID,
		})
	}
	return out
}
