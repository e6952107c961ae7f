package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"relaybot/internal/models"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// openAIModelNames maps catalog identifiers to the names the OpenAI
// API expects, where they differ.
var openAIModelNames = map[string]string{
	"gpt-4-vision": "gpt-4-vision-preview",
}

// OpenAIAdapter talks to the OpenAI chat completions API, and to any
// endpoint that speaks the same wire format.
type OpenAIAdapter struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOpenAIAdapter creates an adapter against the official endpoint.
// baseURL overrides the endpoint (used by tests and compatible hosts).
func NewOpenAIAdapter(apiKey, baseURL string) *OpenAIAdapter {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return &OpenAIAdapter{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage map[string]interface{} `json:"usage"`
}

// Complete sends a chat completion request and extracts
// choices[0].message.content.
func (a *OpenAIAdapter) Complete(ctx context.Context, req Request) (*models.CompletionResult, error) {
	model := req.Model
	if mapped, ok := openAIModelNames[model]; ok {
		model = mapped
	}

	body := map[string]interface{}{
		"model":       model,
		"messages":    req.Messages,
		"temperature": req.Temperature,
		"max_tokens":  req.MaxTokens,
	}

	raw, status, err := postJSON(ctx, a.client, a.baseURL+"/chat/completions", body, map[string]string{
		"Authorization": "Bearer " + a.apiKey,
	})
	if err != nil {
		return nil, &ProviderError{Provider: "openai", Err: err}
	}
	if status != http.StatusOK {
		return nil, &ProviderError{Provider: "openai", StatusCode: status, Payload: string(raw)}
	}

	var parsed openAIResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ProviderError{Provider: "openai", Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if len(parsed.Choices) == 0 {
		return nil, &ProviderError{Provider: "openai", StatusCode: status, Payload: "no choices in response"}
	}

	return &models.CompletionResult{
		Content: parsed.Choices[0].Message.Content,
		Usage:   parsed.Usage,
		Model:   req.Model,
	}, nil
}

// postJSON issues a JSON POST and returns the raw body and status.
// Transport failures come back as errors; non-200 statuses do not.
func postJSON(ctx context.Context, client *http.Client, url string, body interface{}, headers map[string]string) ([]byte, int, error) {
	reqJSON, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(reqJSON))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}
	return raw, resp.StatusCode, nil
}
