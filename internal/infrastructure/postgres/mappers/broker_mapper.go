package mappers

import (
	"github.com/leadrun/fulfillment-service/internal/domain"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/postgres/models"
)

func ToDomainBroker(model *models.BrokerModel) *domain.Broker {
	return &domain.Broker{
		ID:                 model.ID,
		Name:               model.Name,
		Domain:             model.Domain,
		Description:        model.Description,
		IsActive:           model.IsActive,
		AssignedLeadIDs:    model.AssignedLeadIDs,
		TotalLeadsAssigned: model.TotalLeadsAssigned,
		LastAssignedAt:     model.LastAssignedAt,
		CreatedBy:          model.CreatedBy,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
}

func ToGORMBroker(broker *domain.Broker) *models.BrokerModel {
	return &models.BrokerModel{
		ID:                 broker.ID,
		Name:               broker.Name,
		Domain:             broker.Domain,
		Description:        broker.Description,
		IsActive:           broker.IsActive,
		AssignedLeadIDs:    broker.AssignedLeadIDs,
		TotalLeadsAssigned: broker.TotalLeadsAssigned,
		LastAssignedAt:     broker.LastAssignedAt,
		CreatedBy:          broker.CreatedBy,
		CreatedAt:          broker.CreatedAt,
		UpdatedAt:          broker.UpdatedAt,
	}
}
