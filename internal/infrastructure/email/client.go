// Package email provides the email client for store notifications.
package email

import (
	"fmt"

	"github.com/resendlabs/resend-go"

	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/observability/logging"
)

// Service defines the interface for sending notifications, allowing for mock
// implementations in tests.
type Service interface {
	SendSessionExhausted(sessionID string, chatCount int, totalCost float64) error
}

// ResendClient is the concrete implementation of the email Service using the Resend API.
type ResendClient struct {
	client    *resend.Client
	fromEmail string
	toEmail   string
	logger    *logging.ChanneledLogger
}

// NewService creates the email client. A missing API key is reported to the
// caller so the process can continue in degraded mode.
func NewService(apiKey, fromEmail, toEmail string, logger *logging.ChanneledLogger) (Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY environment variable is required")
	}

	return &ResendClient{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		toEmail:   toEmail,
		logger:    logger,
	}, nil
}

// SendSessionExhausted notifies the store inbox that a visitor used up every
// chat in their session, so staff can follow up through another channel.
func (c *ResendClient) SendSessionExhausted(sessionID string, chatCount int, totalCost float64) error {
	subject := "Assistente: sessione esaurita"

	html := fmt.Sprintf(
		`<p>Una sessione dell'assistente ha raggiunto il limite di chat.</p>
<ul>
  <li><strong>Sessione:</strong> %s</li>
  <li><strong>Chat utilizzate:</strong> %d</li>
  <li><strong>Costo totale:</strong> $%.4f</li>
</ul>
<p>Il visitatore è stato invitato a contattare il negozio direttamente.</p>`,
		sessionID, chatCount, totalCost,
	)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("TennisShop Pro <%s>", c.fromEmail),
		To:      []string{c.toEmail},
		Subject: subject,
		Html:    html,
	}

	if _, err := c.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send session notification via Resend: %w", err)
	}

	if c.logger != nil {
		c.logger.Email().Info("Session exhausted notification sent", "to", c.toEmail)
	}
	return nil
}
