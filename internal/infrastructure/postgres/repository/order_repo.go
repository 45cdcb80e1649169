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

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

func (r *DefaultOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return r.DB.WithContext(ctx).Create(mappers.ToGORMOrder(order)).Error
}

func (r *DefaultOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var model models.OrderModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return mappers.ToDomainOrder(&model), nil
}

func (r *DefaultOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	order.UpdatedAt = time.Now()
	return r.DB.WithContext(ctx).Save(mappers.ToGORMOrder(order)).Error
}

func (r *DefaultOrderRepository) List(ctx context.Context, filter domain.OrderFilter, page, limit int) ([]*domain.Order, int64, error) {
	query := r.DB.WithContext(ctx).Model(&models.OrderModel{})
	if filter.RequesterID != "" {
		query = query.Where("requester_id = ?", filter.RequesterID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if !filter.DateFrom.IsZero() {
		query = query.Where("created_at >= ?", filter.DateFrom)
	}
	if !filter.DateTo.IsZero() {
		query = query.Where("created_at <= ?", filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.OrderModel
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	orders := make([]*domain.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, mappers.ToDomainOrder(&rows[i]))
	}
	return orders, total, nil
}

func (r *DefaultOrderRepository) Stats(ctx context.Context, requesterID string) ([]domain.OrderStats, error) {
	query := r.DB.WithContext(ctx).Model(&models.OrderModel{})
	if requesterID != "" {
		query = query.Where("requester_id = ?", requesterID)
	}
	var stats []domain.OrderStats
	err := query.
		Select(`status,
			COUNT(*) AS count,
			SUM(ftd_requested + filler_requested + cold_requested + live_requested) AS total_requested,
			SUM(ftd_fulfilled + filler_fulfilled + cold_fulfilled + live_fulfilled) AS total_fulfilled`).
		Group("status").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *DefaultOrderRepository) UpdateInjectionStatus(ctx context.Context, orderID string, status domain.InjectionStatus) error {
	return r.updateColumns(ctx, orderID, map[string]interface{}{
		"injection_status": status,
		"updated_at":       time.Now(),
	})
}

func (r *DefaultOrderRepository) SetInjectionCompleted(ctx context.Context, orderID string, at time.Time) error {
	return r.updateColumns(ctx, orderID, map[string]interface{}{
		"injection_completed_at": at,
		"updated_at":             time.Now(),
	})
}

func (r *DefaultOrderRepository) IncrementProgress(ctx context.Context, orderID string, successDelta, failedDelta int) error {
	return r.updateColumns(ctx, orderID, map[string]interface{}{
		"successful":        gorm.Expr("successful + ?", successDelta),
		"failed":            gorm.Expr("failed + ?", failedDelta),
		"last_injection_at": time.Now(),
		"updated_at":        time.Now(),
	})
}

func (r *DefaultOrderRepository) IncrementBrokersAssigned(ctx context.Context, orderID string, delta int) error {
	return r.updateColumns(ctx, orderID, map[string]interface{}{
		"brokers_assigned": gorm.Expr("brokers_assigned + ?", delta),
		"updated_at":       time.Now(),
	})
}

func (r *DefaultOrderRepository) SetBrokerAssignmentPending(ctx context.Context, orderID string, pending bool) error {
	return r.updateColumns(ctx, orderID, map[string]interface{}{
		"broker_assignment_pending": pending,
		"updated_at":                time.Now(),
	})
}

func (r *DefaultOrderRepository) updateColumns(ctx context.Context, orderID string, values map[string]interface{}) error {
	result := r.DB.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", orderID).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
