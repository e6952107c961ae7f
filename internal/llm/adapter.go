// Package llm contains the provider-specific completion adapters. Each
// adapter translates the uniform request contract into one external
// model API's shape and normalizes the response back.
package llm

import (
	"context"
	"fmt"

	"relaybot/internal/models"
)

// Request is the provider-neutral completion request an adapter
// receives. Messages are role/content pairs; multimodal content has
// already been restructured by the router when applicable.
type Request struct {
	Model       string
	Messages    []models.ChatMessage
	Temperature float64
	MaxTokens   int
}

// Adapter is one provider's completion capability. Implementations are
// stateless request/response translators; they never persist anything.
type Adapter interface {
	Complete(ctx context.Context, req Request) (*models.CompletionResult, error)
}

// ProviderError carries a provider's failure verbatim. The payload is
// logged, never shown to end users.
type ProviderError struct {
	Provider   string
	StatusCode int    // 0 on transport failure
	Payload    string // raw provider error body
	Err        error  // underlying transport error, if any
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider %s request failed: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("provider %s returned status %d: %s", e.Provider, e.StatusCode, e.Payload)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// flattenContent collapses a multimodal content value to its text for
// adapters whose wire format cannot carry our part structure.
func flattenContent(content interface{}) string {
	switch v := content.(type) {
	case string:
		return v
	case []models.ContentPart:
		var text string
		for _, p := range v {
			if p.Type == "text" {
				text += p.Text
			}
		}
		return text
	default:
		return fmt.Sprintf("%v", v)
	}
}
