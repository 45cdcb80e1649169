package mappers

import (
	"github.com/leadrun/fulfillment-service/internal/domain"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/postgres/models"
)

func ToDomainFingerprint(model *models.FingerprintModel) *domain.Fingerprint {
	return &domain.Fingerprint{
		ID:         model.ID,
		DeviceID:   model.DeviceID,
		DeviceType: model.DeviceType,
		Browser:    model.Browser,
		Screen:     model.Screen,
		Navigator:  model.Navigator,
		CanvasHash: model.CanvasHash,
		AudioHash:  model.AudioHash,
		Timezone:   model.Timezone,
		Mobile:     model.Mobile,
		LeadID:     model.LeadID,
		CreatedBy:  model.CreatedBy,
		CreatedAt:  model.CreatedAt,
		LastUsedAt: model.LastUsedAt,
	}
}

func ToGORMFingerprint(fp *domain.Fingerprint) *models.FingerprintModel {
	return &models.FingerprintModel{
		ID:         fp.ID,
		DeviceID:   fp.DeviceID,
		DeviceType: fp.DeviceType,
		Browser:    fp.Browser,
		Screen:     fp.Screen,
		Navigator:  fp.Navigator,
		CanvasHash: fp.CanvasHash,
		AudioHash:  fp.AudioHash,
		Timezone:   fp.Timezone,
		Mobile:     fp.Mobile,
		LeadID:     fp.LeadID,
		CreatedBy:  fp.CreatedBy,
		CreatedAt:  fp.CreatedAt,
		LastUsedAt: fp.LastUsedAt,
	}
}
