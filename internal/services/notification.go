package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/pkg/sendgrid"
)

type NotificationService interface {
	SendPaymentReceipt(ctx context.Context, order *models.Order) error
}

type notificationService struct {
	emailService sendgrid.EmailService
}

func NewNotificationService(emailService sendgrid.EmailService) NotificationService {
	return &notificationService{emailService: emailService}
}

// SendPaymentReceipt mails the paid order's line items to the payer.
func (n *notificationService) SendPaymentReceipt(ctx context.Context, order *models.Order) error {

	if order.PaymentResult == nil || order.PaymentResult.EmailAddress == "" {
		return errors.ValidationError("Order has no receipt recipient")
	}

	var text, rows strings.Builder

	fmt.Fprintf(&text, "We received your payment for order %s.\n\n", order.ID.Hex())

	for _, item := range order.OrderItems {
		fmt.Fprintf(&text, "%d x %s @ %.2f\n", item.Quantity, item.Name, item.Price)
		fmt.Fprintf(&rows, "<tr><td>%d</td><td>%s</td><td>%.2f</td></tr>",
			item.Quantity, html.EscapeString(item.Name), item.Price)
	}

	fmt.Fprintf(&text, "\nTotal: %.2f\nPayment reference: %s\n", order.TotalPrice, order.PaymentResult.ID)

	msg := &sendgrid.Message{
		To:         order.PaymentResult.EmailAddress,
		ToName:     order.ShippingAddress.FullName,
		Subject:    "Payment received for order " + order.ID.Hex(),
		Categories: []string{"payment-receipt"},
		Text:       text.String(),
		HTML: fmt.Sprintf("<p>We received your payment for order %s.</p><table>%s</table><p>Total: %.2f</p>",
			order.ID.Hex(), rows.String(), order.TotalPrice),
	}

	if err := n.emailService.Send(ctx, msg); err != nil {
		return errors.UpstreamError("Failed to send payment receipt").WithError(err)
	}

	return nil
}
