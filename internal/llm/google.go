package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"relaybot/internal/models"
)

const defaultGoogleBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// googleModelNames maps catalog identifiers to Generative Language API
// model names.
var googleModelNames = map[string]string{
	"gemini-pro": "gemini-pro",
}

// GoogleAdapter talks to the Google Generative Language API.
type GoogleAdapter struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewGoogleAdapter creates an adapter against the official endpoint.
// baseURL overrides the endpoint (used by tests).
func NewGoogleAdapter(apiKey, baseURL string) *GoogleAdapter {
	if baseURL == "" {
		baseURL = defaultGoogleBaseURL
	}
	return &GoogleAdapter{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

type googleResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	UsageMetadata map[string]interface{} `json:"usageMetadata"`
}

// Complete sends a generateContent request and extracts
// candidates[0].content.parts[0].text.
func (a *GoogleAdapter) Complete(ctx context.Context, req Request) (*models.CompletionResult, error) {
	model := req.Model
	if mapped, ok := googleModelNames[model]; ok {
		model = mapped
	}

	// Gemini has two roles: assistant turns map to "model", everything
	// else to "user".
	var contents []map[string]interface{}
	for _, msg := range req.Messages {
		role := "user"
		if msg.Role == models.RoleAssistant {
			role = "model"
		}
		contents = append(contents, map[string]interface{}{
			"role":  role,
			"parts": []map[string]string{{"text": flattenContent(msg.Content)}},
		})
	}

	body := map[string]interface{}{
		"contents": contents,
		"generationConfig": map[string]interface{}{
			"temperature":     req.Temperature,
			"maxOutputTokens": req.MaxTokens,
		},
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", a.baseURL, model, a.apiKey)
	raw, status, err := postJSON(ctx, a.client, url, body, nil)
	if err != nil {
		return nil, &ProviderError{Provider: "google", Err: err}
	}
	if status != http.StatusOK {
		return nil, &ProviderError{Provider: "google", StatusCode: status, Payload: string(raw)}
	}

	var parsed googleResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ProviderError{Provider: "google", Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, &ProviderError{Provider: "google", StatusCode: status, Payload: "no candidates in response"}
	}

	return &models.CompletionResult{
		Content: parsed.Candidates[0].Content.Parts[0].Text,
		Usage:   parsed.UsageMetadata,
		Model:   req.Model,
	}, nil
}
