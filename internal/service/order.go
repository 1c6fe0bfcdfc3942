package service

import (
	"context"
	"fmt"

	"github.com/tastyhub/ordering-service/internal/models"
)

// OrderService handles order business logic
type OrderService struct {
	repo OrderRepository
}

// NewOrderService creates a new order service
func NewOrderService(repo OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

// ListOrders retrieves all orders, newest first
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.repo.List(ctx)
}

// GetOrder retrieves an order by ID
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateOrder creates a new order. The status is always initialized to
// PENDING and the submitted total must match the line items: the total is
// frozen at submission time and never recomputed from live prices.
func (s *OrderService) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	order := models.Order{
		Lines:         req.Items,
		TotalAmount:   req.TotalAmount,
		Status:        models.OrderStatusPending,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerNote:  req.CustomerNote,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return created, nil
}

// UpdateStatus sets the status of an order. Only the status value itself is
// validated here; transition rules are enforced by the admin client, so the
// server stays permissive for out-of-band tooling.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, models.ErrOrderStatusInvalid
	}

	return s.repo.UpdateStatus(ctx, id, status)
}
