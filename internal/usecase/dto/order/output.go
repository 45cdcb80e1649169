package orderdto

import "github.com/leadrun/fulfillment-service/internal/domain"

type OrderOutput struct {
	Order domain.Order
	Leads []*domain.Lead
}

type ListOrdersOutput struct {
	Orders []*domain.Order
	Total  int64
	Page   int
	Limit  int
}
