package service_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/pkg/sendgrid"
	emailMocks "github.com/aaravmahajanofficial/storefront/pkg/sendgrid/mocks"
	"github.com/aaravmahajanofficial/storefront/pkg/stripe"
	stripeMocks "github.com/aaravmahajanofficial/storefront/pkg/stripe/mocks"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var paymentConfig = config.Payment{
	KeyID:         "key_public_123",
	KeySecret:     "key_secret_456",
	WebhookSecret: "whsec_789",
	Currency:      "inr",
}

func sign(secret string, data []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(data)

	return hex.EncodeToString(mac.Sum(nil))
}

func checkoutSignature(sessionID, paymentID string) string {
	return sign(paymentConfig.KeySecret, []byte(sessionID+"|"+paymentID))
}

func TestCreatePaymentIntent(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Amount In Minor Units", func(t *testing.T) {
		// Arrange
		gateway := stripeMocks.NewMockClient(t)
		paymentService := service.NewPaymentService(mocks.NewMockOrderRepository(t), gateway, nil, paymentConfig)

		gateway.On("CreateSession", mock.Anything, int64(49999), "INR", "receipt_42").
			Return(&stripe.Session{ID: "pi_1", Amount: 49999, Currency: "INR"}, nil).Once()

		// Act
		intent, err := paymentService.CreatePaymentIntent(ctx, &models.CreatePaymentIntentRequest{Amount: 499.99, Receipt: "receipt_42"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "pi_1", intent.ID)
		assert.Equal(t, int64(49999), intent.Amount)
		assert.Equal(t, "INR", intent.Currency)
	})

	t.Run("Success - Generated Receipt And Requested Currency", func(t *testing.T) {
		gateway := stripeMocks.NewMockClient(t)
		paymentService := service.NewPaymentService(mocks.NewMockOrderRepository(t), gateway, nil, paymentConfig)

		gateway.On("CreateSession", mock.Anything, int64(1050), "USD", mock.MatchedBy(func(receipt string) bool {
			return len(receipt) > len("receipt_")
		})).Return(&stripe.Session{ID: "pi_2", Amount: 1050, Currency: "USD"}, nil).Once()

		intent, err := paymentService.CreatePaymentIntent(ctx, &models.CreatePaymentIntentRequest{Amount: 10.5, Currency: "usd"})

		require.NoError(t, err)
		assert.Equal(t, int64(1050), intent.Amount)
	})

	t.Run("Failure - Gateway Error", func(t *testing.T) {
		gateway := stripeMocks.NewMockClient(t)
		paymentService := service.NewPaymentService(mocks.NewMockOrderRepository(t), gateway, nil, paymentConfig)

		gateway.On("CreateSession", mock.Anything, int64(100), "INR", mock.Anything).
			Return(nil, errors.New("gateway unavailable")).Once()

		intent, err := paymentService.CreatePaymentIntent(ctx, &models.CreatePaymentIntentRequest{Amount: 1})

		assert.Nil(t, intent)
		requireAppError(t, err, appErrors.ErrCodeUpstream)
	})

	t.Run("Failure - Non Positive Amount", func(t *testing.T) {
		paymentService := service.NewPaymentService(mocks.NewMockOrderRepository(t), stripeMocks.NewMockClient(t), nil, paymentConfig)

		_, err := paymentService.CreatePaymentIntent(ctx, &models.CreatePaymentIntentRequest{Amount: 0})

		requireAppError(t, err, appErrors.ErrCodeValidation)
	})
}

func TestVerifyPayment(t *testing.T) {
	ctx := t.Context()
	orderID := primitive.NewObjectID()

	t.Run("Success - Valid Signature Marks Order Paid", func(t *testing.T) {
		// Arrange
		orderRepo := mocks.NewMockOrderRepository(t)
		email := emailMocks.NewMockEmailService(t)
		paymentService := service.NewPaymentService(orderRepo, stripeMocks.NewMockClient(t), service.NewNotificationService(email), paymentConfig)

		req := &models.VerifyPaymentRequest{
			OrderID:   orderID.Hex(),
			SessionID: "sess_1",
			PaymentID: "pay_1",
			Signature: checkoutSignature("sess_1", "pay_1"),
		}

		orderRepo.On("GetOrderByID", mock.Anything, orderID).
			Return(&models.Order{ID: orderID, UserID: customer.UserID, TotalPrice: 20}, nil).Once()
		orderRepo.On("UpdateOrder", mock.Anything, mock.MatchedBy(func(o *models.Order) bool {
			return o.IsPaid && o.PaidAt != nil && o.PaymentResult != nil &&
				o.PaymentResult.Status == models.PaymentStatusCompleted &&
				o.PaymentResult.ID == "pay_1" &&
				o.PaymentResult.EmailAddress == customer.Email
		})).Return(nil).Once()
		email.On("Send", mock.Anything, mock.MatchedBy(func(m *sendgrid.Message) bool {
			return m.To == customer.Email
		})).Return(nil).Once()

		// Act
		order, err := paymentService.VerifyPayment(ctx, customer, req)

		// Assert
		require.NoError(t, err)
		assert.True(t, order.IsPaid)
		assert.Equal(t, "sess_1", order.PaymentResult.SessionID)
	})

	t.Run("Success - Receipt Failure Does Not Fail Verification", func(t *testing.T) {
		orderRepo := mocks.NewMockOrderRepository(t)
		email := emailMocks.NewMockEmailService(t)
		paymentService := service.NewPaymentService(orderRepo, stripeMocks.NewMockClient(t), service.NewNotificationService(email), paymentConfig)

		orderRepo.On("GetOrderByID", mock.Anything, orderID).Return(&models.Order{ID: orderID, UserID: customer.UserID}, nil).Once()
		orderRepo.On("UpdateOrder", mock.Anything, mock.Anything).Return(nil).Once()
		email.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

		order, err := paymentService.VerifyPayment(ctx, customer, &models.VerifyPaymentRequest{
			OrderID:   orderID.Hex(),
			SessionID: "sess_2",
			PaymentID: "pay_2",
			Signature: checkoutSignature("sess_2", "pay_2"),
		})

		require.NoError(t, err)
		assert.True(t, order.IsPaid)
	})

	t.Run("Failure - Tampered Signature Leaves Order Untouched", func(t *testing.T) {
		orderRepo := mocks.NewMockOrderRepository(t)
		paymentService := service.NewPaymentService(orderRepo, stripeMocks.NewMockClient(t), nil, paymentConfig)

		valid := checkoutSignature("sess_1", "pay_1")
		tampered := "0" + valid[1:]
		if tampered == valid {
			tampered = "1" + valid[1:]
		}

		before := testutil.ToFloat64(metrics.PaymentVerifications.WithLabelValues("signature_mismatch"))

		order, err := paymentService.VerifyPayment(ctx, customer, &models.VerifyPaymentRequest{
			OrderID:   orderID.Hex(),
			SessionID: "sess_1",
			PaymentID: "pay_1",
			Signature: tampered,
		})

		assert.Nil(t, order)
		requireAppError(t, err, appErrors.ErrCodeSignatureMismatch)
		orderRepo.AssertNotCalled(t, "GetOrderByID", mock.Anything, mock.Anything)
		orderRepo.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything)
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.PaymentVerifications.WithLabelValues("signature_mismatch")))
	})

	t.Run("Failure - Signature For Another Payment", func(t *testing.T) {
		orderRepo := mocks.NewMockOrderRepository(t)
		paymentService := service.NewPaymentService(orderRepo, stripeMocks.NewMockClient(t), nil, paymentConfig)

		_, err := paymentService.VerifyPayment(ctx, customer, &models.VerifyPaymentRequest{
			OrderID:   orderID.Hex(),
			SessionID: "sess_1",
			PaymentID: "pay_other",
			Signature: checkoutSignature("sess_1", "pay_1"),
		})

		requireAppError(t, err, appErrors.ErrCodeSignatureMismatch)
	})

	t.Run("Failure - Missing Fields", func(t *testing.T) {
		paymentService := service.NewPaymentService(mocks.NewMockOrderRepository(t), stripeMocks.NewMockClient(t), nil, paymentConfig)

		_, err := paymentService.VerifyPayment(ctx, customer, &models.VerifyPaymentRequest{OrderID: orderID.Hex(), SessionID: "sess_1"})

		requireAppError(t, err, appErrors.ErrCodeValidation)
	})

	t.Run("Failure - Secret Not Configured", func(t *testing.T) {
		cfg := paymentConfig
		cfg.KeySecret = ""
		paymentService := service.NewPaymentService(mocks.NewMockOrderRepository(t), stripeMocks.NewMockClient(t), nil, cfg)

		_, err := paymentService.VerifyPayment(ctx, customer, &models.VerifyPaymentRequest{
			OrderID:   orderID.Hex(),
			SessionID: "sess_1",
			PaymentID: "pay_1",
			Signature: checkoutSignature("sess_1", "pay_1"),
		})

		requireAppError(t, err, appErrors.ErrCodeInternal)
	})

	t.Run("Failure - Order Of Another User", func(t *testing.T) {
		orderRepo := mocks.NewMockOrderRepository(t)
		paymentService := service.NewPaymentService(orderRepo, stripeMocks.NewMockClient(t), nil, paymentConfig)

		orderRepo.On("GetOrderByID", mock.Anything, orderID).
			Return(&models.Order{ID: orderID, UserID: customer.UserID, TotalPrice: 20}, nil).Once()

		order, err := paymentService.VerifyPayment(ctx, stranger, &models.VerifyPaymentRequest{
			OrderID:   orderID.Hex(),
			SessionID: "sess_3",
			PaymentID: "pay_3",
			Signature: checkoutSignature("sess_3", "pay_3"),
		})

		assert.Nil(t, order)
		requireAppError(t, err, appErrors.ErrCodeForbidden)
		orderRepo.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown Order", func(t *testing.T) {
		orderRepo := mocks.NewMockOrderRepository(t)
		paymentService := service.NewPaymentService(orderRepo, stripeMocks.NewMockClient(t), nil, paymentConfig)

		orderRepo.On("GetOrderByID", mock.Anything, orderID).Return(nil, repository.ErrNotFound).Once()

		_, err := paymentService.VerifyPayment(ctx, customer, &models.VerifyPaymentRequest{
			OrderID:   orderID.Hex(),
			SessionID: "sess_1",
			PaymentID: "pay_1",
			Signature: checkoutSignature("sess_1", "pay_1"),
		})

		requireAppError(t, err, appErrors.ErrCodeNotFound)
	})
}

func TestHandleWebhook(t *testing.T) {
	ctx := t.Context()

	paidOrder := func() *models.Order {
		return &models.Order{
			ID:            primitive.NewObjectID(),
			PaymentResult: &models.PaymentResult{ID: "pay_1", Status: models.PaymentStatusCompleted},
			IsPaid:        true,
		}
	}

	t.Run("Success - Captured Marks Paid", func(t *testing.T) {
		orderRepo := mocks.NewMockOrderRepository(t)
		paymentService := service.NewPaymentService(orderRepo, stripeMocks.NewMockClient(t), nil, paymentConfig)

		body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","status":"captured"}}}}`)
		order := paidOrder()
		order.IsPaid = false

		orderRepo.On("GetOrderByPaymentID", mock.Anything, "pay_1").Return(order, nil).Once()
		orderRepo.On("UpdateOrder", mock.Anything, mock.MatchedBy(func(o *models.Order) bool {
			return o.IsPaid && o.PaidAt != nil && o.PaymentResult.Status == models.PaymentStatusCompleted
		})).Return(nil).Once()

		err := paymentService.HandleWebhook(ctx, body, sign(paymentConfig.WebhookSecret, body))

		require.NoError(t, err)
	})

	t.Run("Success - Failed Marks Unpaid", func(t *testing.T) {
		orderRepo := mocks.NewMockOrderRepository(t)
		paymentService := service.NewPaymentService(orderRepo, stripeMocks.NewMockClient(t), nil, paymentConfig)

		body := []byte(`{"event":"payment.failed","payload":{"payment":{"entity":{"id":"pay_1","status":"failed"}}}}`)

		orderRepo.On("GetOrderByPaymentID", mock.Anything, "pay_1").Return(paidOrder(), nil).Once()
		orderRepo.On("UpdateOrder", mock.Anything, mock.MatchedBy(func(o *models.Order) bool {
			return !o.IsPaid && o.PaymentResult.Status == models.PaymentStatusFailed
		})).Return(nil).Once()

		err := paymentService.HandleWebhook(ctx, body, sign(paymentConfig.WebhookSecret, body))

		require.NoError(t, err)
	})

	t.Run("Success - Unknown Payment Acknowledged", func(t *testing.T) {
		orderRepo := mocks.NewMockOrderRepository(t)
		paymentService := service.NewPaymentService(orderRepo, stripeMocks.NewMockClient(t), nil, paymentConfig)

		body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_missing","status":"captured"}}}}`)

		orderRepo.On("GetOrderByPaymentID", mock.Anything, "pay_missing").Return(nil, repository.ErrNotFound).Once()

		err := paymentService.HandleWebhook(ctx, body, sign(paymentConfig.WebhookSecret, body))

		require.NoError(t, err)
		orderRepo.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything)
	})

	t.Run("Success - Malformed Body Acknowledged", func(t *testing.T) {
		orderRepo := mocks.NewMockOrderRepository(t)
		paymentService := service.NewPaymentService(orderRepo, stripeMocks.NewMockClient(t), nil, paymentConfig)

		body := []byte(`{"event":`)

		err := paymentService.HandleWebhook(ctx, body, sign(paymentConfig.WebhookSecret, body))

		require.NoError(t, err)
	})

	t.Run("Success - Other Status Ignored", func(t *testing.T) {
		orderRepo := mocks.NewMockOrderRepository(t)
		paymentService := service.NewPaymentService(orderRepo, stripeMocks.NewMockClient(t), nil, paymentConfig)

		body := []byte(`{"event":"payment.authorized","payload":{"payment":{"entity":{"id":"pay_1","status":"authorized"}}}}`)

		orderRepo.On("GetOrderByPaymentID", mock.Anything, "pay_1").Return(paidOrder(), nil).Once()

		err := paymentService.HandleWebhook(ctx, body, sign(paymentConfig.WebhookSecret, body))

		require.NoError(t, err)
		orderRepo.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Bad Signature", func(t *testing.T) {
		orderRepo := mocks.NewMockOrderRepository(t)
		paymentService := service.NewPaymentService(orderRepo, stripeMocks.NewMockClient(t), nil, paymentConfig)

		body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","status":"captured"}}}}`)

		err := paymentService.HandleWebhook(ctx, body, sign("wrong-secret", body))

		requireAppError(t, err, appErrors.ErrCodeSignatureMismatch)
		orderRepo.AssertNotCalled(t, "GetOrderByPaymentID", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Checkout Secret Is Not The Webhook Secret", func(t *testing.T) {
		paymentService := service.NewPaymentService(mocks.NewMockOrderRepository(t), stripeMocks.NewMockClient(t), nil, paymentConfig)

		body := []byte(`{"event":"payment.captured"}`)

		err := paymentService.HandleWebhook(ctx, body, sign(paymentConfig.KeySecret, body))

		requireAppError(t, err, appErrors.ErrCodeSignatureMismatch)
	})
}

func TestPublicKey(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		paymentService := service.NewPaymentService(mocks.NewMockOrderRepository(t), stripeMocks.NewMockClient(t), nil, paymentConfig)

		key, err := paymentService.PublicKey()

		require.NoError(t, err)
		assert.Equal(t, "key_public_123", key.Key)
	})

	t.Run("Failure - Not Configured", func(t *testing.T) {
		paymentService := service.NewPaymentService(mocks.NewMockOrderRepository(t), stripeMocks.NewMockClient(t), nil, config.Payment{})

		_, err := paymentService.PublicKey()

		requireAppError(t, err, appErrors.ErrCodeInternal)
	})
}
