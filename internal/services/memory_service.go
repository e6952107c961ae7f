package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"relaybot/internal/models"
	"relaybot/internal/store"
)

// systemInstruction is prepended to every conversation at read time.
// It is never stored and never counts against the retention ceiling.
const systemInstruction = "You are a helpful AI assistant. Be conversational, friendly, and helpful. You can process various file types including PDFs when users upload them."

// MemoryService owns the per-user transcript lifecycle: load, append,
// trim, persist, reset. It is the only component that mutates
// UserMemory records.
type MemoryService struct {
	store        store.Store
	defaultModel string
	maxMessages  int

	// Per-user locks serialize read-modify-write cycles so overlapping
	// events for one user cannot lose updates.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewMemoryService creates a memory service over the given store.
func NewMemoryService(st store.Store, defaultModel string, maxMessages int) *MemoryService {
	return &MemoryService{
		store:        st,
		defaultModel: defaultModel,
		maxMessages:  maxMessages,
		locks:        make(map[string]*sync.Mutex),
	}
}

// MaxMessages returns the retention ceiling.
func (s *MemoryService) MaxMessages() int { return s.maxMessages }

func (s *MemoryService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// newMemory returns a fresh default record.
func (s *MemoryService) newMemory() *models.UserMemory {
	now := time.Now().UTC()
	return &models.UserMemory{
		Messages:    []models.Message{},
		Model:       s.defaultModel,
		CreatedAt:   now,
		LastUpdated: now,
	}
}

// load reads a user's record. Absence and unreadable data both recover
// to a fresh default; readErr reports only store-level failures other
// than absence, for callers that need to distinguish (GetStats).
func (s *MemoryService) load(ctx context.Context, userID string) (mem *models.UserMemory, readErr error) {
	data, err := s.store.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("⚠️ [MEMORY] Read failed for user %s, using default record: %v", userID, err)
			return s.newMemory(), err
		}
		return s.newMemory(), nil
	}

	var m models.UserMemory
	if err := json.Unmarshal(data, &m); err != nil {
		log.Printf("⚠️ [MEMORY] Corrupt record for user %s, using default record: %v", userID, err)
		return s.newMemory(), nil
	}
	if m.Messages == nil {
		m.Messages = []models.Message{}
	}
	if m.Model == "" {
		m.Model = s.defaultModel
	}
	return &m, nil
}

func (s *MemoryService) persist(ctx context.Context, userID string, mem *models.UserMemory) error {
	data, err := json.MarshalIndent(mem, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode memory: %w", err)
	}
	if err := s.store.Put(ctx, userID, data); err != nil {
		return fmt.Errorf("failed to persist memory for user %s: %w", userID, err)
	}
	return nil
}

// GetMemory returns the user's record, or a freshly initialized default
// when none exists or the read fails. Never an error to the caller.
func (s *MemoryService) GetMemory(ctx context.Context, userID string) *models.UserMemory {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	mem, _ := s.load(ctx, userID)
	return mem
}

// AddMessage appends a message, evicts the oldest entries beyond the
// retention ceiling, and persists. The mutation is not durable until
// persistence succeeds.
func (s *MemoryService) AddMessage(ctx context.Context, userID, role, content string, attachments []models.ProcessedFile) (*models.UserMemory, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	mem, _ := s.load(ctx, userID)

	mem.Messages = append(mem.Messages, models.Message{
		Role:        role,
		Content:     content,
		Timestamp:   time.Now().UTC(),
		Attachments: attachments,
	})

	// FIFO eviction: keep the most recent maxMessages entries.
	if len(mem.Messages) > s.maxMessages {
		mem.Messages = mem.Messages[len(mem.Messages)-s.maxMessages:]
	}

	mem.LastUpdated = time.Now().UTC()

	if err := s.persist(ctx, userID, mem); err != nil {
		return nil, err
	}
	return mem, nil
}

// SetModel overwrites the user's selected model. No catalog validation
// happens here; the router validates at generation time.
func (s *MemoryService) SetModel(ctx context.Context, userID, modelID string) (*models.UserMemory, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	mem, _ := s.load(ctx, userID)
	mem.Model = modelID
	mem.LastUpdated = time.Now().UTC()

	if err := s.persist(ctx, userID, mem); err != nil {
		return nil, err
	}
	return mem, nil
}

// Reset replaces the user's record with a fresh empty one. A full
// overwrite, not a delete.
func (s *MemoryService) Reset(ctx context.Context, userID string) (*models.UserMemory, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	mem := s.newMemory()
	if err := s.persist(ctx, userID, mem); err != nil {
		return nil, err
	}
	return mem, nil
}

// GetConversationHistory projects the transcript to role/content pairs
// for the router, with the system instruction synthesized at the head
// when requested. Timestamps and attachments are stripped.
func (s *MemoryService) GetConversationHistory(ctx context.Context, userID string, includeSystemPrompt bool) ([]models.ChatMessage, string) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	mem, _ := s.load(ctx, userID)

	var messages []models.ChatMessage
	if includeSystemPrompt {
		messages = append(messages, models.ChatMessage{Role: models.RoleSystem, Content: systemInstruction})
	}
	for _, m := range mem.Messages {
		messages = append(messages, models.ChatMessage{Role: m.Role, Content: m.Content})
	}

	return messages, mem.Model
}

// GetStats summarizes a user's stored transcript. It returns nil only
// on an unrecoverable store read; a user with no prior record gets
// default-record stats.
func (s *MemoryService) GetStats(ctx context.Context, userID string) *models.MemoryStats {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	mem, readErr := s.load(ctx, userID)
	if readErr != nil {
		return nil
	}

	return &models.MemoryStats{
		TotalMessages: len(mem.Messages),
		CurrentModel:  mem.Model,
		CreatedAt:     mem.CreatedAt,
		LastUpdated:   mem.LastUpdated,
		MemoryUsage:   fmt.Sprintf("%d/%d", len(mem.Messages), s.maxMessages),
	}
}

// GetAllStats returns stats for every user with a stored record.
func (s *MemoryService) GetAllStats(ctx context.Context) ([]models.UserStats, error) {
	ids, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list memory records: %w", err)
	}

	var all []models.UserStats
	for _, id := range ids {
		if st := s.GetStats(ctx, id); st != nil {
			all = append(all, models.UserStats{UserID: id, MemoryStats: *st})
		}
	}
	return all, nil
}
