package mappers

import (
	"time"

	"github.com/leadrun/fulfillment-service/internal/domain"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/postgres/models"
)

func ToDomainProxy(model *models.ProxyModel) *domain.Proxy {
	proxy := &domain.Proxy{
		ID:        model.ID,
		SessionID: model.SessionID,
		Config: domain.ProxyConfig{
			Server:   model.Server,
			Username: model.Username,
			Password: model.Password,
			Host:     model.Host,
			Port:     model.Port,
		},
		Country:     model.Country,
		CountryCode: model.CountryCode,
		Status:      model.Status,
		Health: domain.ProxyHealth{
			Healthy:      model.Healthy,
			LastCheck:    model.LastCheck,
			FailedChecks: model.FailedChecks,
			ResponseTime: time.Duration(model.ResponseTime),
			LastError:    model.LastError,
		},
		CreatedBy: model.CreatedBy,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	if model.LeaseLeadID != "" && model.LeaseAssignedAt != nil {
		proxy.Lease = &domain.ProxyLease{
			LeadID:      model.LeaseLeadID,
			OrderID:     model.LeaseOrderID,
			Status:      model.LeaseStatus,
			AssignedAt:  *model.LeaseAssignedAt,
			CompletedAt: model.LeaseCompletedAt,
		}
	}
	return proxy
}

func ToGORMProxy(proxy *domain.Proxy) *models.ProxyModel {
	model := &models.ProxyModel{
		ID:           proxy.ID,
		SessionID:    proxy.SessionID,
		Server:       proxy.Config.Server,
		Username:     proxy.Config.Username,
		Password:     proxy.Config.Password,
		Host:         proxy.Config.Host,
		Port:         proxy.Config.Port,
		Country:      proxy.Country,
		CountryCode:  proxy.CountryCode,
		Status:       proxy.Status,
		Healthy:      proxy.Health.Healthy,
		LastCheck:    proxy.Health.LastCheck,
		FailedChecks: proxy.Health.FailedChecks,
		ResponseTime: int64(proxy.Health.ResponseTime),
		LastError:    proxy.Health.LastError,
		CreatedBy:    proxy.CreatedBy,
		CreatedAt:    proxy.CreatedAt,
		UpdatedAt:    proxy.UpdatedAt,
	}
	if proxy.Lease != nil {
		assignedAt := proxy.Lease.AssignedAt
		model.LeaseLeadID = proxy.Lease.LeadID
		model.LeaseOrderID = proxy.Lease.OrderID
		model.LeaseStatus = proxy.Lease.Status
		model.LeaseAssignedAt = &assignedAt
		model.LeaseCompletedAt = proxy.Lease.CompletedAt
	}
	return model
}
