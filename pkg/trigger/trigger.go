// Package trigger notifies downstream automation (emails, onboarding
// workflows) about portal events through fire-and-forget webhooks.
package trigger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nmm-portal/nmm-api/pkg/circuitbreaker"
	"github.com/nmm-portal/nmm-api/pkg/httpclient"
	"github.com/nmm-portal/nmm-api/pkg/logger"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const callTimeout = 10 * time.Second

// Event is the webhook body
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

// Notifier posts events to a configured URL
type Notifier struct {
	url        string
	httpClient httpclient.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewNotifier creates a notifier; an empty url disables it
func NewNotifier(url string, httpClient httpclient.Client) *Notifier {
	return &Notifier{
		url:        url,
		httpClient: httpClient,
		breaker:    circuitbreaker.New(circuitbreaker.DefaultConfig("trigger:" + url)),
	}
}

// Enabled reports whether a webhook URL is configured
func (n *Notifier) Enabled() bool {
	return n != nil && n.url != ""
}

// CallAsync posts the event in a goroutine. Failures are logged and never
// reach the caller.
func (n *Notifier) CallAsync(eventType string, payload interface{}) {
	if !n.Enabled() {
		return
	}

	event := Event{Type: eventType, OccurredAt: time.Now().UTC(), Payload: payload}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		if err := n.Call(ctx, event); err != nil {
			if circuitbreaker.IsOpen(err) {
				logger.Warn("Trigger URL skipped, circuit open", zap.String("event_type", eventType))
				return
			}
			logger.Error("Failed to call trigger URL",
				zap.Error(err),
				zap.String("event_type", eventType))
		}
	}()
}

// Call posts the event synchronously. A non-2xx response is an error and
// counts against the circuit breaker.
func (n *Notifier) Call(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	status, err := circuitbreaker.Execute(n.breaker, func() (int, error) {
		return n.post(ctx, body)
	})
	if err != nil {
		return err
	}

	logger.Info("Trigger URL called successfully",
		zap.String("event_type", event.Type),
		zap.Int("status_code", status))
	return nil
}

func (n *Notifier) post(ctx context.Context, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("trigger returned status %d", resp.StatusCode)
	}
	return resp.StatusCode, nil
}
