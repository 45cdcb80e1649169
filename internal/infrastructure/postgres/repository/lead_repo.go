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

type DefaultLeadRepository struct {
	DB *gorm.DB
}

func NewDefaultLeadRepository(db *gorm.DB) *DefaultLeadRepository {
	return &DefaultLeadRepository{DB: db}
}

func (r *DefaultLeadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	var model models.LeadModel
	err := r.DB.WithContext(ctx).
		Preload("NetworkLogs").
		Preload("BrokerLogs").
		Preload("ProxyReservations").
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, err
	}
	return mappers.ToDomainLead(&model), nil
}

func (r *DefaultLeadRepository) GetByIDs(ctx context.Context, ids []string, types []domain.LeadType) ([]*domain.Lead, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := r.DB.WithContext(ctx).
		Preload("NetworkLogs").
		Preload("BrokerLogs").
		Preload("ProxyReservations").
		Where("id IN ?", ids)
	if len(types) > 0 {
		query = query.Where("lead_type IN ?", types)
	}
	var rows []models.LeadModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	leads := make([]*domain.Lead, 0, len(rows))
	for i := range rows {
		leads = append(leads, mappers.ToDomainLead(&rows[i]))
	}
	return leads, nil
}

func (r *DefaultLeadRepository) FindAvailable(ctx context.Context, filter domain.LeadFilter) ([]*domain.Lead, error) {
	query := r.DB.WithContext(ctx).
		Preload("NetworkLogs").
		Preload("BrokerLogs").
		Preload("ProxyReservations").
		Where("lead_type = ?", filter.LeadType).
		Where("is_assigned = ?", false).
		Where("availability <> ?", domain.AvailabilityNotAvailable)
	if filter.ExcludeSleeping {
		query = query.Where("availability <> ?", domain.AvailabilitySleep)
	}
	if filter.Country != "" {
		query = query.Where("country = ?", filter.Country)
	}
	if filter.Gender != "" {
		query = query.Where("gender = ?", filter.Gender)
	}
	if filter.RandomSample {
		query = query.Order("RANDOM()")
	} else {
		query = query.Order("created_at ASC")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []models.LeadModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	leads := make([]*domain.Lead, 0, len(rows))
	for i := range rows {
		leads = append(leads, mappers.ToDomainLead(&rows[i]))
	}
	return leads, nil
}

// Save upserts the lead together with its append-only history children.
func (r *DefaultLeadRepository) Save(ctx context.Context, lead *domain.Lead) error {
	lead.UpdatedAt = time.Now()
	model := mappers.ToGORMLead(lead)
	return r.DB.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(model).Error
}
