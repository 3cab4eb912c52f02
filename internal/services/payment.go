package service

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/pkg/stripe"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, req *models.CreatePaymentIntentRequest) (*models.PaymentIntent, error)
	VerifyPayment(ctx context.Context, caller models.Caller, req *models.VerifyPaymentRequest) (*models.Order, error)
	HandleWebhook(ctx context.Context, body []byte, signature string) error
	PublicKey() (*models.PaymentKeyResponse, error)
}

type paymentService struct {
	orderRepo repository.OrderRepository
	gateway   stripe.Client
	notifier  NotificationService
	cfg       config.Payment
	now       func() time.Time
}

// NewPaymentService wires the payment flow. notifier may be nil, in which case
// no receipts are sent.
func NewPaymentService(orderRepo repository.OrderRepository, gateway stripe.Client, notifier NotificationService, cfg config.Payment) PaymentService {
	return &paymentService{
		orderRepo: orderRepo,
		gateway:   gateway,
		notifier:  notifier,
		cfg:       cfg,
		now:       time.Now,
	}
}

// CreatePaymentIntent implements PaymentService.
func (s *paymentService) CreatePaymentIntent(ctx context.Context, req *models.CreatePaymentIntentRequest) (*models.PaymentIntent, error) {

	if req.Amount <= 0 {
		return nil, errors.AddValidationError("amount", "must be greater than 0")
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = strings.ToUpper(s.cfg.Currency)
	}

	receipt := req.Receipt
	if receipt == "" {
		receipt = fmt.Sprintf("receipt_%d", s.now().UnixMilli())
	}

	session, err := s.gateway.CreateSession(ctx, toMinorUnits(req.Amount), currency, receipt)
	if err != nil {
		return nil, errors.UpstreamError("Failed to create payment session").WithError(err)
	}

	return &models.PaymentIntent{
		ID:       session.ID,
		Amount:   session.Amount,
		Currency: session.Currency,
	}, nil
}

// VerifyPayment implements PaymentService. The order is only touched after the
// checkout signature matches.
func (s *paymentService) VerifyPayment(ctx context.Context, caller models.Caller, req *models.VerifyPaymentRequest) (*models.Order, error) {

	if req.SessionID == "" || req.PaymentID == "" || req.Signature == "" {
		return nil, errors.ValidationError("Missing payment verification fields")
	}

	orderID, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		return nil, errors.AddValidationError("order_id", "must be a valid id")
	}

	if s.cfg.KeySecret == "" {
		return nil, errors.InternalError("Payment verification is not configured")
	}

	if !verifyCheckoutSignature(s.cfg.KeySecret, req.SessionID, req.PaymentID, req.Signature) {
		metrics.PaymentVerifications.WithLabelValues("signature_mismatch").Inc()
		return nil, errors.SignatureMismatchError("Payment verification failed")
	}

	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Order not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch order").WithError(err)
	}

	if order.UserID != caller.UserID && !caller.IsAdmin {
		return nil, errors.ForbiddenError("You don't have permission to pay for this order")
	}

	now := s.now()
	order.IsPaid = true
	order.PaidAt = &now
	order.PaymentResult = &models.PaymentResult{
		ID:           req.PaymentID,
		Status:       models.PaymentStatusCompleted,
		UpdateTime:   now,
		EmailAddress: caller.Email,
		SessionID:    req.SessionID,
		Signature:    req.Signature,
	}

	if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
		return nil, errors.DatabaseError("Failed to update order").WithError(err)
	}

	metrics.PaymentVerifications.WithLabelValues("completed").Inc()

	s.sendReceipt(ctx, order)

	return order, nil
}

// HandleWebhook implements PaymentService. Only a signature mismatch is
// returned; every other problem with the event is logged and acknowledged so
// the gateway stops redelivering it.
func (s *paymentService) HandleWebhook(ctx context.Context, body []byte, signature string) error {

	logger := middleware.LoggerFromContext(ctx)

	if s.cfg.WebhookSecret == "" {
		logger.Error("Webhook secret not configured")
		metrics.WebhookEvents.WithLabelValues("signature_mismatch").Inc()
		return errors.SignatureMismatchError("Invalid webhook signature")
	}

	if !verifyWebhookSignature(s.cfg.WebhookSecret, body, signature) {
		metrics.WebhookEvents.WithLabelValues("signature_mismatch").Inc()
		return errors.SignatureMismatchError("Invalid webhook signature")
	}

	var event models.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		logger.Warn("Malformed webhook payload", slog.Any("error", err))
		metrics.WebhookEvents.WithLabelValues("malformed").Inc()
		return nil
	}

	if event.Payload.Payment == nil || event.Payload.Payment.Entity == nil || event.Payload.Payment.Entity.ID == "" {
		logger.Warn("Webhook payload has no payment entity", slog.String("event", event.Event))
		metrics.WebhookEvents.WithLabelValues("malformed").Inc()
		return nil
	}

	entity := event.Payload.Payment.Entity
	logger = logger.With(slog.String("event", event.Event), slog.String("paymentId", entity.ID))

	order, err := s.orderRepo.GetOrderByPaymentID(ctx, entity.ID)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			logger.Warn("Webhook references unknown payment")
			metrics.WebhookEvents.WithLabelValues("unknown_order").Inc()
			return nil
		}

		logger.Error("Failed to look up order for webhook", slog.Any("error", err))
		metrics.WebhookEvents.WithLabelValues("store_error").Inc()
		return nil
	}

	now := s.now()

	if order.PaymentResult == nil {
		order.PaymentResult = &models.PaymentResult{ID: entity.ID, EmailAddress: entity.Email}
	}

	switch entity.Status {
	case models.WebhookStatusCaptured:
		order.IsPaid = true
		order.PaidAt = &now
		order.PaymentResult.Status = models.PaymentStatusCompleted
		order.PaymentResult.UpdateTime = now
	case models.WebhookStatusFailed:
		order.IsPaid = false
		order.PaymentResult.Status = models.PaymentStatusFailed
		order.PaymentResult.UpdateTime = now
	default:
		logger.Info("Ignoring webhook status", slog.String("status", entity.Status))
		metrics.WebhookEvents.WithLabelValues("ignored").Inc()
		return nil
	}

	if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
		logger.Error("Failed to apply webhook to order", slog.String("orderId", order.ID.Hex()), slog.Any("error", err))
		metrics.WebhookEvents.WithLabelValues("store_error").Inc()
		return nil
	}

	logger.Info("Webhook applied", slog.String("orderId", order.ID.Hex()), slog.String("status", entity.Status))
	metrics.WebhookEvents.WithLabelValues(entity.Status).Inc()

	return nil
}

// PublicKey implements PaymentService.
func (s *paymentService) PublicKey() (*models.PaymentKeyResponse, error) {

	if s.cfg.KeyID == "" {
		return nil, errors.InternalError("Payment key is not configured")
	}

	return &models.PaymentKeyResponse{Key: s.cfg.KeyID}, nil
}

func (s *paymentService) sendReceipt(ctx context.Context, order *models.Order) {

	if s.notifier == nil {
		return
	}

	if err := s.notifier.SendPaymentReceipt(ctx, order); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to send payment receipt",
			slog.String("orderId", order.ID.Hex()),
			slog.Any("error", err))
	}
}
