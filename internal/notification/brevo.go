package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"casillero-backend/internal/config"
	"casillero-backend/internal/logger"

	"go.uber.org/zap"
)

const brevoSendURL = "https://api.brevo.com/v3/smtp/email"

type brevoRecipient struct {
	Email string `json:"email"`
}

type brevoSender struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type brevoPayload struct {
	Sender      brevoSender      `json:"sender"`
	To          []brevoRecipient `json:"to"`
	Subject     string           `json:"subject"`
	TextContent string           `json:"textContent,omitempty"`
	HTMLContent string           `json:"htmlContent,omitempty"`
}

// BrevoDispatcher sends transactional email through the Brevo HTTP API.
// The operational mailbox, when configured, is copied on every message.
type BrevoDispatcher struct {
	apiKey      string
	senderName  string
	senderEmail string
	opsMailbox  string
	url         string
	client      *http.Client
}

func NewBrevoDispatcher(cfg *config.BrevoConfig) *BrevoDispatcher {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &BrevoDispatcher{
		apiKey:      cfg.APIKey,
		senderName:  cfg.SenderName,
		senderEmail: cfg.SenderEmail,
		opsMailbox:  cfg.OpsMailbox,
		url:         brevoSendURL,
		client:      &http.Client{Timeout: timeout},
	}
}

func (d *BrevoDispatcher) Send(ctx context.Context, subject, recipient, body string, html bool) (bool, string) {
	if d.apiKey == "" {
		logger.Warn("Brevo API key not configured, notification skipped",
			zap.String("recipient", recipient),
			zap.String("subject", subject),
		)
		return false, "brevo api key not configured"
	}

	payload := brevoPayload{
		Sender:  brevoSender{Name: d.senderName, Email: d.senderEmail},
		To:      []brevoRecipient{{Email: recipient}},
		Subject: subject,
	}
	if d.opsMailbox != "" && d.opsMailbox != recipient {
		payload.To = append(payload.To, brevoRecipient{Email: d.opsMailbox})
	}
	if html {
		payload.HTMLContent = body
	} else {
		payload.TextContent = body
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return false, err.Error()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(encoded))
	if err != nil {
		return false, err.Error()
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	req.Header.Set("api-key", d.apiKey)

	resp, err := d.client.Do(req)
	if err != nil {
		logger.Warn("Brevo request failed",
			zap.String("recipient", recipient),
			zap.Error(err),
		)
		return false, err.Error()
	}
	defer func() { _ = resp.Body.Close() }()

	responseBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		return true, string(responseBody)
	}

	logger.Warn("Brevo rejected notification",
		zap.String("recipient", recipient),
		zap.Int("status_code", resp.StatusCode),
	)
	return false, string(responseBody)
}
