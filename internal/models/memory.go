package models

import "time"

// Message roles. No other role values are ever stored.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single entry in a user's conversation transcript.
// Messages are immutable once appended.
type Message struct {
	Role        string          `json:"role"` // "system", "user", "assistant"
	Content     string          `json:"content"`
	Timestamp   time.Time       `json:"timestamp"`
	Attachments []ProcessedFile `json:"attachments,omitempty"`
}

// UserMemory is the persisted per-user conversation record.
// The memory service is the only component that mutates it.
type UserMemory struct {
	Messages    []Message `json:"messages"`
	Model       string    `json:"model"`
	CreatedAt   time.Time `json:"createdAt"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// MemoryStats summarizes a user's stored transcript.
type MemoryStats struct {
	TotalMessages int       `json:"total_messages"`
	CurrentModel  string    `json:"current_model"`
	CreatedAt     time.Time `json:"created_at"`
	LastUpdated   time.Time `json:"last_updated"`
	MemoryUsage   string    `json:"memory_usage"` // "used/max"
}

// UserStats pairs a user ID with that user's memory stats (admin listing).
type UserStats struct {
	UserID string `json:"user_id"`
	MemoryStats
}

// ProcessedFile is the result of running one attachment through the
// document service. The memory and routing layers treat it opaquely
// beyond checking Type.
type ProcessedFile struct {
	Type         string `json:"type"` // "pdf", "txt", "image"
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
	Text         string `json:"text,omitempty"`  // extracted text for pdf/txt
	Pages        int    `json:"pages,omitempty"` // pdf page count
	URL          string `json:"url,omitempty"`   // source URL, kept for vision models
}
