package analysis

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultPrompt = "Describe this hand-drawn sketch and give one short, encouraging suggestion to improve it."

// requestTimeout bounds a single analysis call; the caller's context can
// shorten it further.
const requestTimeout = 30 * time.Second

// HTTPAnalyzer posts the sketch to a JSON endpoint. The wire contract is
// deliberately minimal ({image_b64, prompt} in, {feedback} out) so any
// vision-capable backend can sit behind it.
type HTTPAnalyzer struct {
	endpoint string
	apiKey   string
	prompt   string
	client   *http.Client
}

// NewHTTPAnalyzer creates an analyzer for the given endpoint. The API key
// may be empty if the endpoint does not require one.
func NewHTTPAnalyzer(endpoint, apiKey string) *HTTPAnalyzer {
	return &HTTPAnalyzer{
		endpoint: strings.TrimSpace(endpoint),
		apiKey:   strings.TrimSpace(apiKey),
		prompt:   defaultPrompt,
		client:   &http.Client{Timeout: requestTimeout},
	}
}

// SetPrompt overrides the instruction sent alongside the image.
func (a *HTTPAnalyzer) SetPrompt(prompt string) {
	if strings.TrimSpace(prompt) != "" {
		a.prompt = prompt
	}
}

type analyzeRequest struct {
	ImageB64 string `json:"image_b64"`
	Prompt   string `json:"prompt"`
}

type analyzeResponse struct {
	Feedback string `json:"feedback"`
	Error    string `json:"error,omitempty"`
}

// Analyze sends the PNG to the configured endpoint and returns its feedback.
func (a *HTTPAnalyzer) Analyze(ctx context.Context, png []byte) (string, error) {
	if a.endpoint == "" {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	payload, err := json.Marshal(analyzeRequest{
		ImageB64: base64.StdEncoding.EncodeToString(png),
		Prompt:   a.prompt,
	})
	if err != nil {
		return "", fmt.Errorf("analysis: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("analysis: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("analysis: call endpoint: %w", err)
	}
	defer resp.Body.Close()

	var out analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("analysis: parse response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if out.Error != "" {
			return "", fmt.Errorf("analysis: endpoint returned %d: %s", resp.StatusCode, out.Error)
		}
		return "", fmt.Errorf("analysis: endpoint returned %d", resp.StatusCode)
	}

	if strings.TrimSpace(out.Feedback) == "" {
		return "", fmt.Errorf("analysis: endpoint returned empty feedback")
	}

	return out.Feedback, nil
}
