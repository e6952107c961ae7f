package models

// AttachmentRef is an unprocessed inbound attachment as delivered by
// the platform: a URL plus declared metadata. The document service
// downloads and validates it.
type AttachmentRef struct {
	URL         string `json:"url"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// MessageEvent is a free-text conversational turn from one user.
type MessageEvent struct {
	UserID      string          `json:"user_id"`
	Text        string          `json:"text"`
	Attachments []AttachmentRef `json:"attachments,omitempty"`
}

// CommandEvent is a structured command interaction ("model", "models",
// "providers", "reset", "stats", "help").
type CommandEvent struct {
	Name   string   `json:"command"`
	UserID string   `json:"user_id"`
	Args   []string `json:"args,omitempty"`
}

// DispatchResult carries the ordered reply segments for one event.
// Each segment fits within the configured chunk size.
type DispatchResult struct {
	Replies []string `json:"replies"`
}
