package repository

import (
	"context"
	"errors"
	"time"

	"github.com/leadrun/fulfillment-service/internal/domain"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/postgres/mappers"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultProxyRepository struct {
	DB *gorm.DB
}

func NewDefaultProxyRepository(db *gorm.DB) *DefaultProxyRepository {
	return &DefaultProxyRepository{DB: db}
}

func (r *DefaultProxyRepository) GetByID(ctx context.Context, id string) (*domain.Proxy, error) {
	var model models.ProxyModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProxyUnavailable
		}
		return nil, err
	}
	return mappers.ToDomainProxy(&model), nil
}

func (r *DefaultProxyRepository) Create(ctx context.Context, proxy *domain.Proxy) error {
	return r.DB.WithContext(ctx).Create(mappers.ToGORMProxy(proxy)).Error
}

func (r *DefaultProxyRepository) Save(ctx context.Context, proxy *domain.Proxy) error {
	proxy.UpdatedAt = time.Now()
	return r.DB.WithContext(ctx).Save(mappers.ToGORMProxy(proxy)).Error
}

func (r *DefaultProxyRepository) FindStaleActive(ctx context.Context, cutoff time.Time) ([]*domain.Proxy, error) {
	var rows []models.ProxyModel
	err := r.DB.WithContext(ctx).
		Where("status = ? AND last_check < ?", domain.ProxyActive, cutoff).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	proxies := make([]*domain.Proxy, 0, len(rows))
	for i := range rows {
		proxies = append(proxies, mappers.ToDomainProxy(&rows[i]))
	}
	return proxies, nil
}

func (r *DefaultProxyRepository) FindFailedUnassigned(ctx context.Context) ([]*domain.Proxy, error) {
	var rows []models.ProxyModel
	err := r.DB.WithContext(ctx).
		Where("status = ?", domain.ProxyFailed).
		Where("lease_status <> ? OR lease_lead_id = ''", domain.ReservationActive).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	proxies := make([]*domain.Proxy, 0, len(rows))
	for i := range rows {
		proxies = append(proxies, mappers.ToDomainProxy(&rows[i]))
	}
	return proxies, nil
}

func (r *DefaultProxyRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Delete(&models.ProxyModel{}, "id = ?", id).Error
}
