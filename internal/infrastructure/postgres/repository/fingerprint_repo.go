package repository

import (
	"context"
	"errors"

	"github.com/leadrun/fulfillment-service/internal/domain"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/postgres/mappers"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultFingerprintRepository struct {
	DB *gorm.DB
}

func NewDefaultFingerprintRepository(db *gorm.DB) *DefaultFingerprintRepository {
	return &DefaultFingerprintRepository{DB: db}
}

func (r *DefaultFingerprintRepository) Create(ctx context.Context, fp *domain.Fingerprint) error {
	err := r.DB.WithContext(ctx).Create(mappers.ToGORMFingerprint(fp)).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrFingerprintExists
	}
	return err
}

func (r *DefaultFingerprintRepository) GetByLeadID(ctx context.Context, leadID string) (*domain.Fingerprint, error) {
	var model models.FingerprintModel
	if err := r.DB.WithContext(ctx).First(&model, "lead_id = ?", leadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, err
	}
	return mappers.ToDomainFingerprint(&model), nil
}

func (r *DefaultFingerprintRepository) ExistsForLead(ctx context.Context, leadID string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.FingerprintModel{}).
		Where("lead_id = ?", leadID).
		Count(&count).Error
	return count > 0, err
}
