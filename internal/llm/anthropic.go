package llm

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"relaybot/internal/models"
)

// anthropicModelNames maps catalog identifiers to Anthropic API model
// names.
var anthropicModelNames = map[string]string{
	"claude-3": "claude-3-sonnet-20240229",
}

// AnthropicAdapter talks to the Anthropic Messages API through the
// official SDK.
type AnthropicAdapter struct {
	client anthropic.Client
}

// NewAnthropicAdapter creates an adapter with an explicit API key.
func NewAnthropicAdapter(apiKey string) *AnthropicAdapter {
	return &AnthropicAdapter{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
	}
}

// Complete sends a Messages request and extracts the first text block,
// the Anthropic equivalent of content[0].text.
func (a *AnthropicAdapter) Complete(ctx context.Context, req Request) (*models.CompletionResult, error) {
	model := req.Model
	if mapped, ok := anthropicModelNames[model]; ok {
		model = mapped
	}

	var system []anthropic.TextBlockParam
	var conv []anthropic.MessageParam

	for _, msg := range req.Messages {
		switch msg.Role {
		case models.RoleSystem:
			// The Messages API carries the system instruction out of
			// band, not as a conversation turn.
			system = append(system, anthropic.TextBlockParam{Text: flattenContent(msg.Content)})
		case models.RoleAssistant:
			conv = append(conv, anthropic.NewAssistantMessage(anthropic.NewTextBlock(flattenContent(msg.Content))))
		default:
			conv = append(conv, anthropic.NewUserMessage(contentBlocks(msg.Content)...))
		}
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   int64(req.MaxTokens),
		Temperature: anthropic.Float(req.Temperature),
		Messages:    conv,
	}
	if len(system) > 0 {
		params.System = system
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return nil, &ProviderError{Provider: "anthropic", Err: err}
	}

	var content string
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			content = tb.Text
			break
		}
	}

	return &models.CompletionResult{
		Content: content,
		Usage: map[string]interface{}{
			"input_tokens":  msg.Usage.InputTokens,
			"output_tokens": msg.Usage.OutputTokens,
		},
		Model: req.Model,
	}, nil
}

// contentBlocks converts a user turn's content into SDK content
// blocks, preserving image parts for vision-capable Claude models.
func contentBlocks(content interface{}) []anthropic.ContentBlockParamUnion {
	parts, ok := content.([]models.ContentPart)
	if !ok {
		return []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(flattenContent(content))}
	}

	var blocks []anthropic.ContentBlockParamUnion
	for _, p := range parts {
		switch {
		case p.Type == "text":
			blocks = append(blocks, anthropic.NewTextBlock(p.Text))
		case p.Type == "image_url" && p.ImageURL != nil:
			blocks = append(blocks, anthropic.NewImageBlock(anthropic.URLImageSourceParam{URL: p.ImageURL.URL}))
		}
	}
	if len(blocks) == 0 {
		blocks = append(blocks, anthropic.NewTextBlock(""))
	}
	return blocks
}
