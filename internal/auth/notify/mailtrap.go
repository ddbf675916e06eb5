package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/tracehealth/trace/pkg/slogx"
)

// DefaultMailtrapURL is the Mailtrap transactional send endpoint.
const DefaultMailtrapURL = "https://send.api.mailtrap.io/api/send"

// MailtrapNotifier sends mail through the Mailtrap HTTP API.
type MailtrapNotifier struct {
	APIKey   string
	URL      string
	From     string
	FromName string
	Client   *http.Client
}

// NewMailtrapNotifier returns a notifier whose HTTP client gives up after timeout.
func NewMailtrapNotifier(apiKey, url, from string, timeout time.Duration) *MailtrapNotifier {
	if url == "" {
		url = DefaultMailtrapURL
	}
	return &MailtrapNotifier{
		APIKey:   apiKey,
		URL:      url,
		From:     from,
		FromName: "TRACE",
		Client:   &http.Client{Timeout: timeout},
	}
}

type emailRecipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type emailRequest struct {
	From     emailRecipient   `json:"from"`
	To       []emailRecipient `json:"to"`
	Subject  string           `json:"subject"`
	Text     string           `json:"text"`
	Category string           `json:"category,omitempty"`
}

func (n *MailtrapNotifier) Send(ctx context.Context, to, subject, body string) bool {
	l := slogx.FromContext(ctx).With(slog.String("to", maskAddress(to)), slog.String("transport", "mailtrap"))

	if err := n.send(ctx, to, subject, body); err != nil {
		l.Error("failed to send email", slog.Any("err", err))
		return false
	}
	l.Info("email sent")
	return true
}

func (n *MailtrapNotifier) send(ctx context.Context, to, subject, body string) error {
	payload, err := json.Marshal(emailRequest{
		From:     emailRecipient{Email: n.From, Name: n.FromName},
		To:       []emailRecipient{{Email: to}},
		Subject:  subject,
		Text:     body,
		Category: "otp",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.APIKey)
	req.Header.Set("Content-Type", "application/json")

	client := n.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("mailtrap API returned status: %d", resp.StatusCode)
	}
	return nil
}
