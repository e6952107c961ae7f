package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"relaybot/internal/catalog"
	"relaybot/internal/llm"
	"relaybot/internal/models"
)

// defaultTemperature applies when the caller leaves temperature unset.
const defaultTemperature = 0.7

// RouterService dispatches completion requests to the adapter matching
// the resolved model's provider and normalizes every response into one
// result shape. It never touches persisted state.
type RouterService struct {
	catalog  *catalog.Catalog
	adapters map[string]llm.Adapter
	metrics  *Metrics

	// One limiter per provider keeps outbound request rates bounded.
	rps      rate.Limit
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewRouterService creates a router over an immutable catalog and an
// explicit provider→adapter table. rps bounds outbound requests per
// provider per second; zero disables limiting.
func NewRouterService(cat *catalog.Catalog, adapters map[string]llm.Adapter, rps float64, metrics *Metrics) *RouterService {
	return &RouterService{
		catalog:  cat,
		adapters: adapters,
		metrics:  metrics,
		rps:      rate.Limit(rps),
		limiters: make(map[string]*rate.Limiter),
	}
}

func (s *RouterService) limiter(provider string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.limiters[provider]
	if !ok {
		l = rate.NewLimiter(s.rps, 1)
		s.limiters[provider] = l
	}
	return l
}

// Generate resolves the model, builds the provider-shaped request and
// returns the normalized result. Failures are either
// catalog.ErrModelNotFound or a *llm.ProviderError; there are no
// retries at this layer.
func (s *RouterService) Generate(ctx context.Context, modelID string, messages []models.ChatMessage, opts models.CompletionOptions) (*models.CompletionResult, error) {
	desc, err := s.catalog.Resolve(modelID)
	if err != nil {
		return nil, err
	}

	adapter, ok := s.adapters[desc.Provider]
	if !ok {
		return nil, &llm.ProviderError{
			Provider: desc.Provider,
			Err:      fmt.Errorf("no adapter configured for provider %s", desc.Provider),
		}
	}

	temperature := opts.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = desc.MaxTokens
	}

	if len(opts.Images) > 0 && desc.Multimodal {
		messages = injectImages(messages, opts.Images)
	}

	if s.rps > 0 {
		if err := s.limiter(desc.Provider).Wait(ctx); err != nil {
			return nil, &llm.ProviderError{Provider: desc.Provider, Err: err}
		}
	}

	start := time.Now()
	result, err := adapter.Complete(ctx, llm.Request{
		Model:       desc.ID,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if s.metrics != nil {
		s.metrics.ObserveProviderCall(desc.Provider, time.Since(start), err)
	}
	if err != nil {
		log.Printf("❌ [ROUTER] Provider %s failed for model %s: %v", desc.Provider, desc.ID, err)
		return nil, err
	}

	// Callers address models by whatever identifier they sent, aliases
	// included.
	result.Model = modelID
	return result, nil
}

// IsMultimodal reports whether a model accepts image input.
func (s *RouterService) IsMultimodal(modelID string) bool {
	return s.catalog.IsMultimodal(modelID)
}

// injectImages restructures the last user message's content from a
// plain string into an ordered parts array: one text part followed by
// one image part per attachment URL.
func injectImages(messages []models.ChatMessage, images []string) []models.ChatMessage {
	out := make([]models.ChatMessage, len(messages))
	copy(out, messages)

	for i := len(out) - 1; i >= 0; i-- {
		if out[i].Role != models.RoleUser {
			continue
		}
		text, _ := out[i].Content.(string)
		parts := []models.ContentPart{{Type: "text", Text: text}}
		for _, url := range images {
			parts = append(parts, models.ContentPart{Type: "image_url", ImageURL: &models.ImageURL{URL: url}})
		}
		out[i].Content = parts
		break
	}
	return out
}
