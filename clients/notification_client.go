package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ChannelEmail is the only delivery channel payments requests.
const ChannelEmail = "EMAIL"

// FallbackEmail is sent when the patient email cannot be resolved; the
// notifications service treats it as an undeliverable placeholder.
const FallbackEmail = "nodisponible@example.com"

// Notification is the payload sent to POST /notifications/send.
type Notification struct {
	RecipientID    uint   `json:"recipient_id,omitempty"`
	Type           string `json:"type"`
	Subject        string `json:"subject"`
	Message        string `json:"message"`
	Channel        string `json:"channel"`
	ServiceRef     string `json:"service_ref"`
	RecipientEmail string `json:"recipient_email"`
}

// NotificationDispatcher submits notification requests for delivery.
type NotificationDispatcher interface {
	Send(ctx context.Context, n *Notification) error
}

// NotificationClient communicates with the notifications service via HTTP.
type NotificationClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewNotificationClient creates a new NotificationClient.
func NewNotificationClient(baseURL string, timeout time.Duration) *NotificationClient {
	return &NotificationClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Send submits a notification request. Returns ErrNotFound on 404 and
// ErrUnavailable on any other failure.
func (c *NotificationClient) Send(ctx context.Context, n *Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/notifications/send", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: notification service request failed: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: notification endpoint", ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: notification service returned %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}
