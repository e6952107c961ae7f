package models

// ModelDescriptor describes one entry in the model catalog.
// Descriptors are immutable and statically declared.
type ModelDescriptor struct {
	ID          string `json:"id"`
	Provider    string `json:"provider"`
	DisplayName string `json:"name"`
	Multimodal  bool   `json:"multimodal"`
	MaxTokens   int    `json:"max_tokens"`
}

// ChatMessage is the role/content pair handed to a provider adapter.
// Content is a plain string for text turns, or an ordered []ContentPart
// for multimodal turns (one text part followed by image parts).
type ChatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

// ContentPart is one element of a multimodal message content array.
type ContentPart struct {
	Type     string    `json:"type"` // "text" or "image_url"
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL wraps an image reference for multimodal content.
type ImageURL struct {
	URL string `json:"url"`
}

// CompletionOptions tunes a single generation request. Zero values fall
// back to the router defaults (temperature 0.7, the descriptor's token
// ceiling).
type CompletionOptions struct {
	Temperature float64
	MaxTokens   int
	Images      []string // image URLs to inject into the last user turn
}

// CompletionResult is the normalized response shape every adapter
// produces, regardless of the provider's own payload. Usage is the
// provider-reported token accounting, passed through untouched.
type CompletionResult struct {
	Content string                 `json:"content"`
	Usage   map[string]interface{} `json:"usage,omitempty"`
	Model   string                 `json:"model"`
}
