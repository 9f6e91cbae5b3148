package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

const assemblyAIBaseURL = "https://api.assemblyai.com"

// AssemblyAIClient is a minimal AssemblyAI client used to transcribe captured
// answer recordings. Results come back through the capture webhook.
type AssemblyAIClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewAssemblyAIClient creates an AssemblyAI client. Falls back to the
// ASSEMBLYAI_API_KEY environment variable when apiKey is empty.
func NewAssemblyAIClient(apiKey string) *AssemblyAIClient {
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}
	return &AssemblyAIClient{
		apiKey:  apiKey,
		baseURL: assemblyAIBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// TranscribeRequest is payload for /v2/transcripts
type TranscribeRequest struct {
	AudioURL          string            `json:"audio_url"`
	LanguageDetection bool              `json:"language_detection,omitempty"`
	WebhookURL        string            `json:"webhook_url,omitempty"`
	WebhookAuthHeader string            `json:"webhook_auth_header_name,omitempty"`
	WebhookAuthValue  string            `json:"webhook_auth_header_value,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
}

// TranscribeResponse is minimal response
type TranscribeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// TranscribeAudio requests transcription of an answer recording. Returns the
// transcript job id; completion is signalled via the webhook.
func (c *AssemblyAIClient) TranscribeAudio(ctx context.Context, recordingURL, webhookURL, webhookAuthHeader, webhookAuthValue string, metadata map[string]string) (string, error) {
	payload := TranscribeRequest{
		AudioURL:          recordingURL,
		LanguageDetection: true,
		WebhookURL:        webhookURL,
		WebhookAuthHeader: webhookAuthHeader,
		WebhookAuthValue:  webhookAuthValue,
		Metadata:          metadata,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v2/transcripts", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("assemblyai returned status %d", resp.StatusCode)
	}

	var tr TranscribeResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", err
	}
	return tr.ID, nil
}
