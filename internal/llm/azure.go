package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"relaybot/internal/models"
)

// AzureAdapter talks to a catalog-wide inference endpoint that serves
// many providers behind one OpenAI-shaped /chat/completions route
// (Azure AI model inference and compatible gateways). It is the
// fallback adapter for every provider without a dedicated one.
type AzureAdapter struct {
	endpoint string
	apiKey   string
	provider string // forwarded so the gateway can route upstream
	client   *http.Client
}

// NewAzureAdapter creates an adapter for one provider group against
// the shared endpoint.
func NewAzureAdapter(endpoint, apiKey, provider string) *AzureAdapter {
	return &AzureAdapter{
		endpoint: endpoint,
		apiKey:   apiKey,
		provider: provider,
		client:   &http.Client{Timeout: 120 * time.Second},
	}
}

// Complete sends an OpenAI-shaped request with the provider hint
// attached and extracts choices[0].message.content.
func (a *AzureAdapter) Complete(ctx context.Context, req Request) (*models.CompletionResult, error) {
	if a.endpoint == "" {
		return nil, &ProviderError{Provider: a.provider, Err: fmt.Errorf("AI_ENDPOINT not configured")}
	}

	body := map[string]interface{}{
		"model":       req.Model,
		"messages":    req.Messages,
		"temperature": req.Temperature,
		"max_tokens":  req.MaxTokens,
		"provider":    a.provider,
	}

	raw, status, err := postJSON(ctx, a.client, a.endpoint+"/chat/completions", body, map[string]string{
		"Authorization": "Bearer " + a.apiKey,
	})
	if err != nil {
		return nil, &ProviderError{Provider: a.provider, Err: err}
	}
	if status != http.StatusOK {
		return nil, &ProviderError{Provider: a.provider, StatusCode: status, Payload: string(raw)}
	}

	var parsed openAIResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ProviderError{Provider: a.provider, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if len(parsed.Choices) == 0 {
		return nil, &ProviderError{Provider: a.provider, StatusCode: status, Payload: "no choices in response"}
	}

	return &models.CompletionResult{
		Content: parsed.Choices[0].Message.Content,
		Usage:   parsed.Usage,
		Model:   req.Model,
	}, nil
}
