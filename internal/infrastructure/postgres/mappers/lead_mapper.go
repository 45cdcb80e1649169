package mappers

import (
	"github.com/google/uuid"
	"github.com/leadrun/fulfillment-service/internal/domain"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/postgres/models"
)

func ToDomainLead(model *models.LeadModel) *domain.Lead {
	lead := &domain.Lead{
		ID:            model.ID,
		LeadType:      model.LeadType,
		FirstName:     model.FirstName,
		LastName:      model.LastName,
		Email:         model.Email,
		Phone:         model.Phone,
		Prefix:        model.Prefix,
		Country:       model.Country,
		CountryCode:   model.CountryCode,
		Gender:        model.Gender,
		Availability:  model.Availability,
		SleepReason:   model.SleepReason,
		IsAssigned:    model.IsAssigned,
		AssignedTo:    model.AssignedTo,
		OrderID:       model.OrderID,
		FingerprintID: model.FingerprintID,
		DeviceType:    model.DeviceType,
		BrokerIDs:     model.BrokerIDs,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
	for _, entry := range model.NetworkLogs {
		lead.NetworkLogs = append(lead.NetworkLogs, domain.NetworkLog{
			ID:         entry.ID,
			Kind:       entry.Kind,
			TargetID:   entry.TargetID,
			AssignedBy: entry.AssignedBy,
			OrderID:    entry.OrderID,
			Status:     entry.Status,
			AssignedAt: entry.AssignedAt,
		})
	}
	for _, entry := range model.BrokerLogs {
		lead.BrokerLogs = append(lead.BrokerLogs, domain.BrokerLog{
			ID:         entry.ID,
			BrokerID:   entry.BrokerID,
			AssignedBy: entry.AssignedBy,
			OrderID:    entry.OrderID,
			Domain:     entry.Domain,
			Status:     entry.Status,
			AssignedAt: entry.AssignedAt,
		})
	}
	for _, r := range model.ProxyReservations {
		lead.ProxyReservations = append(lead.ProxyReservations, domain.ProxyReservation{
			ID:          r.ID,
			ProxyID:     r.ProxyID,
			OrderID:     r.OrderID,
			Status:      r.Status,
			AssignedAt:  r.AssignedAt,
			CompletedAt: r.CompletedAt,
		})
	}
	return lead
}

// ToGORMLead assigns ids to history entries appended in the domain layer so
// gorm can upsert them alongside the lead row.
func ToGORMLead(lead *domain.Lead) *models.LeadModel {
	model := &models.LeadModel{
		ID:            lead.ID,
		LeadType:      lead.LeadType,
		FirstName:     lead.FirstName,
		LastName:      lead.LastName,
		Email:         lead.Email,
		Phone:         lead.Phone,
		Prefix:        lead.Prefix,
		Country:       lead.Country,
		CountryCode:   lead.CountryCode,
		Gender:        lead.Gender,
		Availability:  lead.Availability,
		SleepReason:   lead.SleepReason,
		IsAssigned:    lead.IsAssigned,
		AssignedTo:    lead.AssignedTo,
		OrderID:       lead.OrderID,
		FingerprintID: lead.FingerprintID,
		DeviceType:    lead.DeviceType,
		BrokerIDs:     lead.BrokerIDs,
		CreatedAt:     lead.CreatedAt,
		UpdatedAt:     lead.UpdatedAt,
	}
	for i := range lead.NetworkLogs {
		entry := &lead.NetworkLogs[i]
		if entry.ID == "" {
			entry.ID = uuid.New().String()
		}
		model.NetworkLogs = append(model.NetworkLogs, models.NetworkLogModel{
			ID:         entry.ID,
			LeadID:     lead.ID,
			Kind:       entry.Kind,
			TargetID:   entry.TargetID,
			AssignedBy: entry.AssignedBy,
			OrderID:    entry.OrderID,
			Status:     entry.Status,
			AssignedAt: entry.AssignedAt,
		})
	}
	for i := range lead.BrokerLogs {
		entry := &lead.BrokerLogs[i]
		if entry.ID == "" {
			entry.ID = uuid.New().String()
		}
		model.BrokerLogs = append(model.BrokerLogs, models.BrokerLogModel{
			ID:         entry.ID,
			LeadID:     lead.ID,
			BrokerID:   entry.BrokerID,
			AssignedBy: entry.AssignedBy,
			OrderID:    entry.OrderID,
			Domain:     entry.Domain,
			Status:     entry.Status,
			AssignedAt: entry.AssignedAt,
		})
	}
	for i := range lead.ProxyReservations {
		r := &lead.ProxyReservations[i]
		if r.ID == "" {
			r.ID = uuid.New().String()
		}
		model.ProxyReservations = append(model.ProxyReservations, models.ProxyReservationModel{
			ID:          r.ID,
			LeadID:      lead.ID,
			ProxyID:     r.ProxyID,
			OrderID:     r.OrderID,
			Status:      r.Status,
			AssignedAt:  r.AssignedAt,
			CompletedAt: r.CompletedAt,
		})
	}
	return model
}
