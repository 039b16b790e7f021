// Package email provides an email sending client.
//
// It uses Resend (resend-go) as the provider and renders HTML bodies from
// templates embedded into the binary.
package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/deppfellow/wedding-rsvp/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Client wraps the Resend client and a logger.
type Client struct {
	client *resend.Client
	from   string
	logger *zerolog.Logger
}

// NewClient creates an email Client with the Resend API key from config.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		client: resend.NewClient(cfg.Integration.ResendAPIKey),
		from:   cfg.Integration.FromEmail,
		logger: logger,
	}
}

// Render executes templateName with data.
func Render(templateName Template, data any) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, templateName.file(), data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}
	return body.String(), nil
}

// SendEmail renders templateName with data and sends it to a single
// recipient.
func (c *Client) SendEmail(ctx context.Context, to, subject string, templateName Template, data any) error {
	html, err := Render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", "Wedding RSVP", c.from),
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return errors.Wrap(err, "failed to send email")
	}

	c.logger.Debug().
		Str("email_id", sent.Id).
		Str("template", string(templateName)).
		Msg("email sent")

	return nil
}
