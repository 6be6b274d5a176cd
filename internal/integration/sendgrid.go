package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/octobees/sdr-agent/internal/entity"
)

// ErrNoRecipientEmail indicates an email-channel message whose contact has no
// address. Delivery fails closed for that one message.
var ErrNoRecipientEmail = errors.New("contact has no email address")

// SendGridSender delivers email messages through the SendGrid v3 API. An
// unconfigured sender (missing key or from address) runs in demo mode: sends
// are logged and reported as successful without any network call.
type SendGridSender struct {
	client    *http.Client
	baseURL   string
	apiKey    string
	fromEmail string
}

// NewSendGridSender builds an email sender. A nil client gets a default with
// a short timeout.
func NewSendGridSender(client *http.Client, baseURL, apiKey, fromEmail string) *SendGridSender {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &SendGridSender{
		client:    client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		fromEmail: fromEmail,
	}
}

// DemoMode reports whether the sender is operating without credentials.
func (s *SendGridSender) DemoMode() bool {
	return s.apiKey == "" || s.fromEmail == ""
}

// Send delivers one email message.
func (s *SendGridSender) Send(ctx context.Context, msg entity.Message) error {
	if msg.Contact.Email == "" {
		return ErrNoRecipientEmail
	}
	if s.DemoMode() {
		log.Printf("demo mode: would send email to=%s subject=%q", msg.Contact.Email, msg.Subject)
		return nil
	}

	payload := map[string]any{
		"personalizations": []map[string]any{
			{"to": []map[string]string{{"email": msg.Contact.Email}}},
		},
		"from":    map[string]string{"email": s.fromEmail},
		"subject": msg.Subject,
		"content": []map[string]string{
			{"type": "text/plain", "value": msg.Body},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v3/mail/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("mail request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return nil
	default:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("mail send status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
}
