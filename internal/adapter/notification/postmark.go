package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"taskapp/internal/core/port"
	"taskapp/pkg/tracing"
)

const defaultEndpoint = "https://api.postmarkapp.com/email"

type email struct {
	From          string `json:"From"`
	To            string `json:"To"`
	Subject       string `json:"Subject"`
	TextBody      string `json:"TextBody,omitempty"`
	HtmlBody      string `json:"HtmlBody,omitempty"`
	MessageStream string `json:"MessageStream"`
}

// PostmarkClient sends the welcome/cancellation notifications through the
// Postmark REST API. Callers treat every send as best-effort.
type PostmarkClient struct {
	apiKey     string
	from       string
	endpoint   string
	httpClient *http.Client
}

func NewPostmarkClient(apiKey, from string) *PostmarkClient {
	return &PostmarkClient{
		apiKey:   apiKey,
		from:     from,
		endpoint: defaultEndpoint,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// NewPostmarkClientWithEndpoint points the client at a non-default API host;
// tests use it with a local server.
func NewPostmarkClientWithEndpoint(apiKey, from, endpoint string) *PostmarkClient {
	client := NewPostmarkClient(apiKey, from)
	client.endpoint = endpoint

	return client
}

var _ port.Notifier = (*PostmarkClient)(nil)

func (pc *PostmarkClient) SendWelcome(ctx context.Context, to, name string) error {
	return pc.send(ctx, email{
		From:          pc.from,
		To:            to,
		Subject:       "Thank you for joining in!",
		TextBody:      fmt.Sprintf("Welcome to the app, %s! Let me know how you get along with the app.", name),
		MessageStream: "outbound",
	})
}

func (pc *PostmarkClient) SendCancellation(ctx context.Context, to, name string) error {
	return pc.send(ctx, email{
		From:          pc.from,
		To:            to,
		Subject:       "Account Deleted - We're Sorry To See You Go!",
		TextBody:      fmt.Sprintf("Dear %s, we're sorry to see you leave. If there's anything we could improve, or if you ever want to come back, we'll be here to welcome you.", name),
		MessageStream: "outbound",
	})
}

func (pc *PostmarkClient) send(ctx context.Context, message email) error {
	return tracing.SpanWrapper(ctx, "notification.postmark.send", []attribute.KeyValue{
		attribute.String("email.subject", message.Subject),
	}, func(ctx context.Context) error {
		body, err := json.Marshal(message)

		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, pc.endpoint, bytes.NewReader(body))

		if err != nil {
			return err
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Postmark-Server-Token", pc.apiKey)

		resp, err := pc.httpClient.Do(req)

		if err != nil {
			return err
		}

		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusBadRequest {
			return fmt.Errorf("postmark responded with status %d", resp.StatusCode)
		}

		return nil
	})
}
