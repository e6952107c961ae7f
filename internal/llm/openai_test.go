package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"relaybot/internal/models"
)

func TestOpenAIAdapter_Complete(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header: %q", auth)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"choices": [{"message": {"content": "assistant reply"}}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 7}
		}`))
	}))
	defer server.Close()

	adapter := NewOpenAIAdapter("test-key", server.URL)

	result, err := adapter.Complete(context.Background(), Request{
		Model: "gpt-4",
		Messages: []models.ChatMessage{
			{Role: models.RoleSystem, Content: "be brief"},
			{Role: models.RoleUser, Content: "hello"},
		},
		Temperature: 0.7,
		MaxTokens:   512,
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if result.Content != "assistant reply" {
		t.Errorf("unexpected content: %q", result.Content)
	}
	if result.Usage["prompt_tokens"] != float64(12) {
		t.Errorf("usage not carried through: %v", result.Usage)
	}
	if gotBody["model"] != "gpt-4" {
		t.Errorf("wire model = %v", gotBody["model"])
	}
	if gotBody["max_tokens"] != float64(512) {
		t.Errorf("wire max_tokens = %v", gotBody["max_tokens"])
	}
}

func TestOpenAIAdapter_ModelNameMapping(t *testing.T) {
	var wireModel string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		wireModel, _ = body["model"].(string)
		w.Write([]byte(`{"choices": [{"message": {"content": "ok"}}]}`))
	}))
	defer server.Close()

	adapter := NewOpenAIAdapter("test-key", server.URL)

	result, err := adapter.Complete(context.Background(), Request{
		Model:    "gpt-4-vision",
		Messages: []models.ChatMessage{{Role: models.RoleUser, Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if wireModel != "gpt-4-vision-preview" {
		t.Errorf("expected wire name gpt-4-vision-preview, got %q", wireModel)
	}
	// The result reports the caller's identifier, not the wire name.
	if result.Model != "gpt-4-vision" {
		t.Errorf("result model = %q", result.Model)
	}
}

func TestOpenAIAdapter_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limited"}}`))
	}))
	defer server.Close()

	adapter := NewOpenAIAdapter("test-key", server.URL)

	_, err := adapter.Complete(context.Background(), Request{
		Model:    "gpt-4",
		Messages: []models.ChatMessage{{Role: models.RoleUser, Content: "hi"}},
	})

	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if pe.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", pe.StatusCode)
	}
	if pe.Payload == "" {
		t.Error("raw payload should be captured for logging")
	}
}

func TestOpenAIAdapter_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	adapter := NewOpenAIAdapter("test-key", server.URL)

	_, err := adapter.Complete(context.Background(), Request{
		Model:    "gpt-4",
		Messages: []models.ChatMessage{{Role: models.RoleUser, Content: "hi"}},
	})

	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
}
