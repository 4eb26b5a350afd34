// Package notifier delivers rendered reminder messages to Discord
// channels over the REST API.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ComputerEndProgram/locutus/internal/domain"
	"github.com/ComputerEndProgram/locutus/internal/domain/contract"
)

const defaultAPIBase = "https://discord.com/api/v10"

type Discord struct {
	client  *http.Client
	token   string
	apiBase string
}

// Option configures the Discord notifier.
type Option func(*Discord)

// WithAPIBase overrides the Discord API base URL. Used in tests.
func WithAPIBase(base string) Option {
	return func(d *Discord) { d.apiBase = base }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Discord) { d.client = c }
}

// NewDiscord creates a notifier that posts messages with a bot token.
func NewDiscord(token string, opts ...Option) *Discord {
	d := &Discord{
		client:  &http.Client{Timeout: 15 * time.Second},
		token:   token,
		apiBase: defaultAPIBase,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var _ contract.Notifier = (*Discord)(nil)

type createMessageRequest struct {
	Content string `json:"content"`
}

// Send posts message to the given channel. Failures are classified so the
// scheduler can tell a dead destination (disable the schedule) from a
// transient outage (leave it armed for the next sweep).
func (d *Discord) Send(ctx context.Context, channelID, message string) error {
	body, err := json.Marshal(createMessageRequest{Content: message})
	if err != nil {
		return domain.NewPermanentDeliveryError("failed to encode message", err)
	}

	url := fmt.Sprintf("%s/channels/%s/messages", d.apiBase, channelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.NewPermanentDeliveryError("failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bot "+d.token)

	resp, err := d.client.Do(req)
	if err != nil {
		return domain.NewRetryableDeliveryError("failed to reach discord", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	reason := fmt.Sprintf("discord returned status %d for channel %s: %s",
		resp.StatusCode, channelID, detail)

	switch {
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden,
		resp.StatusCode == http.StatusNotFound:
		return domain.NewPermanentDeliveryError(reason, nil)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return domain.NewRetryableDeliveryError(reason, nil)
	default:
		return domain.NewPermanentDeliveryError(reason, nil)
	}
}
