package mappers

import (
	"time"

	"github.com/leadrun/fulfillment-service/internal/domain"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/postgres/models"
)

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	return &domain.Order{
		ID:          model.ID,
		RequesterID: model.RequesterID,
		Status:      model.Status,
		Requests: domain.LeadCounts{
			FTD:    model.FTDRequested,
			Filler: model.FillerRequested,
			Cold:   model.ColdRequested,
			Live:   model.LiveRequested,
		},
		Fulfilled: domain.LeadCounts{
			FTD:    model.FTDFulfilled,
			Filler: model.FillerFulfilled,
			Cold:   model.ColdFulfilled,
			Live:   model.LiveFulfilled,
		},
		LeadIDs:         model.LeadIDs,
		Priority:        model.Priority,
		Notes:           model.Notes,
		CountryFilter:   model.CountryFilter,
		GenderFilter:    model.GenderFilter,
		ClientNetworkID: model.ClientNetworkID,
		OurNetworkID:    model.OurNetworkID,
		CampaignID:      model.CampaignID,
		Injection: domain.InjectionSettings{
			Enabled: model.InjectionEnabled,
			Mode:    model.InjectionMode,
			Status:  model.InjectionStatus,
			Window: domain.ScheduledWindow{
				StartTime:   model.StartTime,
				EndTime:     model.EndTime,
				MinInterval: time.Duration(model.MinIntervalSec) * time.Second,
				MaxInterval: time.Duration(model.MaxIntervalSec) * time.Second,
			},
			IncludeTypes: domain.IncludeTypes{
				Filler: model.IncludeFiller,
				Cold:   model.IncludeCold,
				Live:   model.IncludeLive,
			},
			Device: model.DeviceConfig,
		},
		Progress: domain.InjectionProgress{
			TotalToInject:           model.TotalToInject,
			Successful:              model.Successful,
			Failed:                  model.Failed,
			BrokersAssigned:         model.BrokersAssigned,
			FTDsPendingManualFill:   model.FTDsPendingManualFill,
			BrokerAssignmentPending: model.BrokerAssignmentPending,
			LastInjectionAt:         model.LastInjectionAt,
			CompletedAt:             model.InjectionCompletedAt,
		},
		FTDHandling: domain.FTDHandling{
			Status:      model.FTDStatus,
			SkippedAt:   model.FTDSkippedAt,
			CompletedAt: model.FTDCompletedAt,
			Notes:       model.FTDNotes,
		},
		BrokerAssignment: domain.BrokerAssignment{
			Status:     model.BrokerAssignmentStatus,
			AssignedBy: model.BrokerAssignedBy,
			AssignedAt: model.BrokerAssignedAt,
			Notes:      model.BrokerAssignmentNotes,
		},
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
		CompletedAt:        model.CompletedAt,
		CancelledAt:        model.CancelledAt,
		CancellationReason: model.CancellationReason,
	}
}

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	return &models.OrderModel{
		ID:              order.ID,
		RequesterID:     order.RequesterID,
		Status:          order.Status,
		Priority:        order.Priority,
		Notes:           order.Notes,
		FTDRequested:    order.Requests.FTD,
		FillerRequested: order.Requests.Filler,
		ColdRequested:   order.Requests.Cold,
		LiveRequested:   order.Requests.Live,
		FTDFulfilled:    order.Fulfilled.FTD,
		FillerFulfilled: order.Fulfilled.Filler,
		ColdFulfilled:   order.Fulfilled.Cold,
		LiveFulfilled:   order.Fulfilled.Live,
		LeadIDs:         order.LeadIDs,
		CountryFilter:   order.CountryFilter,
		GenderFilter:    order.GenderFilter,
		ClientNetworkID: order.ClientNetworkID,
		OurNetworkID:    order.OurNetworkID,
		CampaignID:      order.CampaignID,

		InjectionEnabled: order.Injection.Enabled,
		InjectionMode:    order.Injection.Mode,
		InjectionStatus:  order.Injection.Status,
		StartTime:        order.Injection.Window.StartTime,
		EndTime:          order.Injection.Window.EndTime,
		MinIntervalSec:   int(order.Injection.Window.MinInterval / time.Second),
		MaxIntervalSec:   int(order.Injection.Window.MaxInterval / time.Second),
		IncludeFiller:    order.Injection.IncludeTypes.Filler,
		IncludeCold:      order.Injection.IncludeTypes.Cold,
		IncludeLive:      order.Injection.IncludeTypes.Live,
		DeviceConfig:     order.Injection.Device,

		TotalToInject:           order.Progress.TotalToInject,
		Successful:              order.Progress.Successful,
		Failed:                  order.Progress.Failed,
		BrokersAssigned:         order.Progress.BrokersAssigned,
		FTDsPendingManualFill:   order.Progress.FTDsPendingManualFill,
		BrokerAssignmentPending: order.Progress.BrokerAssignmentPending,
		LastInjectionAt:         order.Progress.LastInjectionAt,
		InjectionCompletedAt:    order.Progress.CompletedAt,

		FTDStatus:      order.FTDHandling.Status,
		FTDSkippedAt:   order.FTDHandling.SkippedAt,
		FTDCompletedAt: order.FTDHandling.CompletedAt,
		FTDNotes:       order.FTDHandling.Notes,

		BrokerAssignmentStatus: order.BrokerAssignment.Status,
		BrokerAssignedBy:       order.BrokerAssignment.AssignedBy,
		BrokerAssignedAt:       order.BrokerAssignment.AssignedAt,
		BrokerAssignmentNotes:  order.BrokerAssignment.Notes,

		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
		CompletedAt:        order.CompletedAt,
		CancelledAt:        order.CancelledAt,
		CancellationReason: order.CancellationReason,
	}
}
