// internal/policy/client.go
package policy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Request is the body POSTed to the policy endpoint.
type Request struct {
	Role   string `json:"role"` // "spymaster" or "guesser"
	System string `json:"system"`
	Prompt string `json:"prompt"`
}

// Reply is the body the policy endpoint answers with. Text is free-form and
// is expected to carry the move inside <response></response>.
type Reply struct {
	Text string `json:"text"`
}

// Client talks to a remote policy over HTTP.
type Client struct {
	URL  string
	HTTP *http.Client
	Log  logrus.FieldLogger
}

// NewClient returns a client with a per-request timeout.
func NewClient(url string, timeout time.Duration, log logrus.FieldLogger) *Client {
	return &Client{
		URL:  url,
		HTTP: &http.Client{Timeout: timeout},
		Log:  log,
	}
}

// Complete sends one prompt and returns the raw reply text.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode policy request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build policy request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("policy request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("policy returned %s: %s", resp.Status, bytes.TrimSpace(msg))
	}
	var reply Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", fmt.Errorf("decode policy reply: %w", err)
	}
	if c.Log != nil {
		c.Log.WithFields(logrus.Fields{
			"role":    req.Role,
			"elapsed": time.Since(start).Round(time.Millisecond).String(),
			"bytes":   len(reply.Text),
		}).Debug("policy reply")
	}
	return reply.Text, nil
}
