package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// WebhookSignatureHeader carries the hex HMAC of the raw webhook body.
const WebhookSignatureHeader = "X-Razorpay-Signature"

const maxWebhookBytes = 1 << 20

type PaymentHandler struct {
	paymentService service.PaymentService
	validator      *validator.Validate
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, validator: utils.NewValidator()}
}

func (h *PaymentHandler) CreatePaymentIntent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		_, logger, ok := authenticated(w, r)
		if !ok {
			return
		}

		var req models.CreatePaymentIntentRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid payment intent input")
			return
		}

		intent, err := h.paymentService.CreatePaymentIntent(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create payment intent", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Payment intent created", slog.String("intentId", intent.ID), slog.Int64("amount", intent.Amount))
		response.Success(w, http.StatusCreated, intent)
	}
}

func (h *PaymentHandler) VerifyPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, logger, ok := authenticated(w, r)
		if !ok {
			return
		}

		var req models.VerifyPaymentRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid payment verification input")
			return
		}

		order, err := h.paymentService.VerifyPayment(r.Context(), claims.Caller(), &req)
		if err != nil {
			logger.Warn("Payment verification failed", slog.String("orderId", req.OrderID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Payment verified", slog.String("orderId", order.ID.Hex()), slog.String("paymentId", req.PaymentID))
		response.Success(w, http.StatusOK, order)
	}
}

func (h *PaymentHandler) PublicKey() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		key, err := h.paymentService.PublicKey()
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Payment key unavailable", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, key)
	}
}

// HandleWebhook is unauthenticated; the body signature is the only check.
func (h *PaymentHandler) HandleWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
		if err != nil {
			logger.Error("Error reading webhook body", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("Failed to read request body"))
			return
		}

		signature := r.Header.Get(WebhookSignatureHeader)
		if signature == "" {
			logger.Warn("Missing webhook signature")
			response.Error(w, errors.SignatureMismatchError("Webhook signature is required"))
			return
		}

		if err := h.paymentService.HandleWebhook(r.Context(), payload, signature); err != nil {
			logger.Warn("Rejected payment webhook", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
