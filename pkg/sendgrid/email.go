package sendgrid

import (
	"context"
	"errors"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

var ErrNoRecipient = errors.New("email has no recipient")

// Message is one transactional email to a single recipient.
type Message struct {
	To         string
	ToName     string
	Subject    string
	Text       string
	HTML       string
	Categories []string
}

type EmailService interface {
	Send(ctx context.Context, msg *Message) error
}

type Option func(*sendgrid.Client)

// WithBaseURL points the client at another API host.
func WithBaseURL(url string) Option {
	return func(c *sendgrid.Client) {
		c.Request.BaseURL = url
	}
}

type emailService struct {
	client *sendgrid.Client
	from   *mail.Email
}

func NewEmailService(apiKey, fromEmail, fromName string, opts ...Option) EmailService {

	client := sendgrid.NewSendClient(apiKey)
	for _, opt := range opts {
		opt(client)
	}

	return &emailService{client: client, from: mail.NewEmail(fromName, fromEmail)}
}

// Send implements EmailService.
func (e *emailService) Send(ctx context.Context, msg *Message) error {

	if msg.To == "" {
		return ErrNoRecipient
	}

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail(msg.ToName, msg.To))
	personalization.Subject = msg.Subject

	message := mail.NewV3Mail().
		SetFrom(e.from).
		AddPersonalizations(personalization).
		AddContent(mail.NewContent("text/plain", msg.Text))

	if msg.HTML != "" {
		message.AddContent(mail.NewContent("text/html", msg.HTML))
	}

	if len(msg.Categories) > 0 {
		message.AddCategories(msg.Categories...)
	}

	response, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to reach sendgrid: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected email, status code: %d, body: %s", response.StatusCode, response.Body)
	}

	return nil
}
