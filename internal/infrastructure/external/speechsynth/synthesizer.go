// Package speechsynth dispatches question prompts to the text-to-speech
// service that plays them to the candidate.
package speechsynth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/talentwire/interview-orchestrator/pkg/config"
)

const requestTimeout = 10 * time.Second

// Client calls the speech synthesis service over HTTP. Transient failures
// are retried with exponential backoff; the caller only consumes the ack.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a speech synthesis client
func NewClient(cfg *config.SpeechConfig) *Client {
	return &Client{
		baseURL: cfg.SynthesizerURL,
		apiKey:  cfg.SynthesizerKey,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

type dispatchRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// Dispatch sends a prompt for synthesis and playback
func (c *Client) Dispatch(ctx context.Context, sessionID uuid.UUID, text string) error {
	body, err := json.Marshal(dispatchRequest{
		SessionID: sessionID.String(),
		Text:      text,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal dispatch request: %w", err)
	}

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/synthesize", bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("synthesizer returned status %d", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("synthesizer rejected request with status %d", resp.StatusCode))
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return fmt.Errorf("speech dispatch failed: %w", err)
	}
	return nil
}
