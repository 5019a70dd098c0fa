// Package email sends transactional emails through Resend.
//
// Bodies are rendered from HTML templates embedded in the binary.
package email

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/elien2016/customers/internal/config"
)

// ErrNotConfigured is returned by SendEmail when no Resend API key is set.
var ErrNotConfigured = errors.New("email client is not configured")

// Client wraps the Resend client and a logger.
type Client struct {
	client *resend.Client
	from   string
	logger *zerolog.Logger
}

// NewClient creates an email Client from the integration config.
//
// Without an API key every send fails with ErrNotConfigured.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	c := &Client{
		from:   cfg.Integration.EmailFrom,
		logger: logger,
	}
	if cfg.Integration.ResendAPIKey != "" {
		c.client = resend.NewClient(cfg.Integration.ResendAPIKey)
	}
	return c
}

// Render executes the named template with data.
func Render(templateName Template, data map[string]string) (string, error) {
	tmpl := templates.Lookup(string(templateName) + ".html")
	if tmpl == nil {
		return "", errors.Errorf("unknown email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}

	return body.String(), nil
}

// SendEmail renders templateName with data and sends it to a single
// recipient.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	if c.client == nil {
		return ErrNotConfigured
	}

	html, err := Render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	sent, err := c.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Debug().
		Str("email_id", sent.Id).
		Str("template", string(templateName)).
		Msg("email sent")

	return nil
}
