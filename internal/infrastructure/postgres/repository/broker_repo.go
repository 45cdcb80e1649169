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

type DefaultBrokerRepository struct {
	DB *gorm.DB
}

func NewDefaultBrokerRepository(db *gorm.DB) *DefaultBrokerRepository {
	return &DefaultBrokerRepository{DB: db}
}

func (r *DefaultBrokerRepository) GetByID(ctx context.Context, id string) (*domain.Broker, error) {
	var model models.BrokerModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBrokerNotFound
		}
		return nil, err
	}
	return mappers.ToDomainBroker(&model), nil
}

func (r *DefaultBrokerRepository) FindActiveByDomain(ctx context.Context, brokerDomain string) (*domain.Broker, error) {
	var model models.BrokerModel
	err := r.DB.WithContext(ctx).
		Where("domain = ? AND is_active = ?", brokerDomain, true).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBrokerNotFound
		}
		return nil, err
	}
	return mappers.ToDomainBroker(&model), nil
}

func (r *DefaultBrokerRepository) Create(ctx context.Context, broker *domain.Broker) error {
	return r.DB.WithContext(ctx).Create(mappers.ToGORMBroker(broker)).Error
}

func (r *DefaultBrokerRepository) Save(ctx context.Context, broker *domain.Broker) error {
	broker.UpdatedAt = time.Now()
	return r.DB.WithContext(ctx).Save(mappers.ToGORMBroker(broker)).Error
}

func (r *DefaultBrokerRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Broker, error) {
	query := r.DB.WithContext(ctx).Model(&models.BrokerModel{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var rows []models.BrokerModel
	if err := query.Order("total_leads_assigned DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	brokers := make([]*domain.Broker, 0, len(rows))
	for i := range rows {
		brokers = append(brokers, mappers.ToDomainBroker(&rows[i]))
	}
	return brokers, nil
}
