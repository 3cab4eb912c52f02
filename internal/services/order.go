package service

import (
	"context"
	stdErrors "errors"
	"html"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderService interface {
	CreateOrder(ctx context.Context, caller models.Caller, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, caller models.Caller, id primitive.ObjectID) (*models.Order, error)
	ListMyOrders(ctx context.Context, caller models.Caller) ([]*models.Order, error)
	ListAllOrders(ctx context.Context, page, size int) ([]*models.Order, int64, error)
	MarkDelivered(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	DeleteOrder(ctx context.Context, caller models.Caller, id primitive.ObjectID) error
}

type orderService struct {
	orderRepo repository.OrderRepository
	policy    *bluemonday.Policy
	now       func() time.Time
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		policy:    bluemonday.StrictPolicy(),
		now:       time.Now,
	}
}

// CreateOrder implements OrderService. Line names, prices and the total are
// stored as sent by the client; they are not re-derived from the catalog.
func (s *orderService) CreateOrder(ctx context.Context, caller models.Caller, req *models.CreateOrderRequest) (*models.Order, error) {

	if len(req.OrderItems) == 0 {
		return nil, errors.ValidationError("No order items")
	}

	for _, item := range req.OrderItems {
		if item.Quantity < 1 {
			return nil, errors.AddValidationError("quantity", "must be at least 1")
		}
	}

	items := make([]models.OrderItem, len(req.OrderItems))
	copy(items, req.OrderItems)

	address := models.ShippingAddress{
		FullName:   strings.TrimSpace(req.ShippingAddress.FullName),
		Address:    strings.TrimSpace(req.ShippingAddress.Address),
		City:       strings.TrimSpace(req.ShippingAddress.City),
		State:      strings.TrimSpace(req.ShippingAddress.State),
		PostalCode: strings.TrimSpace(req.ShippingAddress.PostalCode),
		Country:    strings.TrimSpace(req.ShippingAddress.Country),
	}

	if err := s.checkAddress(address); err != nil {
		return nil, err
	}

	now := s.now()

	order := &models.Order{
		UserID:          caller.UserID,
		OrderItems:      items,
		ShippingAddress: address,
		TotalPrice:      req.TotalPrice,
		IsPaid:          false,
		IsDelivered:     false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, errors.DatabaseError("Failed to create order").WithError(err)
	}

	metrics.OrdersCreated.Inc()

	return order, nil
}

// GetOrder implements OrderService.
func (s *orderService) GetOrder(ctx context.Context, caller models.Caller, id primitive.ObjectID) (*models.Order, error) {

	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.UserID != caller.UserID && !caller.IsAdmin {
		return nil, errors.ForbiddenError("You don't have permission to access this order")
	}

	return order, nil
}

// ListMyOrders implements OrderService.
func (s *orderService) ListMyOrders(ctx context.Context, caller models.Caller) ([]*models.Order, error) {

	orders, err := s.orderRepo.ListOrdersByUser(ctx, caller.UserID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list orders").WithError(err)
	}

	return orders, nil
}

// ListAllOrders implements OrderService.
func (s *orderService) ListAllOrders(ctx context.Context, page, size int) ([]*models.Order, int64, error) {

	orders, total, err := s.orderRepo.ListOrders(ctx, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list orders").WithError(err)
	}

	return orders, total, nil
}

// MarkDelivered implements OrderService.
func (s *orderService) MarkDelivered(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {

	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.IsDelivered {
		return nil, errors.ConflictError("Order is already delivered")
	}

	now := s.now()
	order.IsDelivered = true
	order.DeliveredAt = &now

	if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
		return nil, errors.DatabaseError("Failed to update order").WithError(err)
	}

	return order, nil
}

// DeleteOrder implements OrderService. Paid orders are never deleted.
func (s *orderService) DeleteOrder(ctx context.Context, caller models.Caller, id primitive.ObjectID) error {

	order, err := s.findOrder(ctx, id)
	if err != nil {
		return err
	}

	if order.UserID != caller.UserID && !caller.IsAdmin {
		return errors.ForbiddenError("You don't have permission to delete this order")
	}

	if order.IsPaid {
		return errors.ConflictError("Cannot delete a paid order")
	}

	if err := s.orderRepo.DeleteOrder(ctx, id); err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return errors.NotFoundError("Order not found").WithError(err)
		}

		return errors.DatabaseError("Failed to delete order").WithError(err)
	}

	return nil
}

func (s *orderService) findOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Order not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch order").WithError(err)
	}

	return order, nil
}

// containsMarkup reports whether the strict policy would change value once
// its escaping is undone. Tags and entity-encoded tags both count.
func (s *orderService) containsMarkup(value string) bool {
	return html.UnescapeString(s.policy.Sanitize(value)) != value
}

func (s *orderService) checkAddress(a models.ShippingAddress) *errors.AppError {
	fields := []struct {
		name  string
		value string
	}{
		{"full_name", a.FullName},
		{"address", a.Address},
		{"city", a.City},
		{"state", a.State},
		{"postal_code", a.PostalCode},
		{"country", a.Country},
	}

	for _, f := range fields {
		if f.value == "" {
			return errors.AddValidationError(f.name, "is required")
		}

		if s.containsMarkup(f.value) {
			return errors.AddValidationError(f.name, "must not contain markup")
		}
	}

	return nil
}
