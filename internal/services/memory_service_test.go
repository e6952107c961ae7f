package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"relaybot/internal/models"
	"relaybot/internal/store"
)

func newTestMemoryService(t *testing.T, maxMessages int) *MemoryService {
	t.Helper()
	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create file store: %v", err)
	}
	return NewMemoryService(st, "gpt-4", maxMessages)
}

func TestGetMemory_DefaultRecord(t *testing.T) {
	svc := newTestMemoryService(t, 50)
	ctx := context.Background()

	mem := svc.GetMemory(ctx, "user-1")
	if mem == nil {
		t.Fatal("expected a default record, got nil")
	}
	if len(mem.Messages) != 0 {
		t.Errorf("expected empty transcript, got %d messages", len(mem.Messages))
	}
	if mem.Model != "gpt-4" {
		t.Errorf("expected default model gpt-4, got %q", mem.Model)
	}
}

func TestAddMessage_AppendsAndPersists(t *testing.T) {
	svc := newTestMemoryService(t, 50)
	ctx := context.Background()

	if _, err := svc.AddMessage(ctx, "user-1", models.RoleUser, "hello", nil); err != nil {
		t.Fatalf("AddMessage failed: %v", err)
	}
	if _, err := svc.AddMessage(ctx, "user-1", models.RoleAssistant, "hi there", nil); err != nil {
		t.Fatalf("AddMessage failed: %v", err)
	}

	mem := svc.GetMemory(ctx, "user-1")
	if len(mem.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(mem.Messages))
	}
	if mem.Messages[0].Role != models.RoleUser || mem.Messages[0].Content != "hello" {
		t.Errorf("unexpected first message: %+v", mem.Messages[0])
	}
	if mem.Messages[1].Role != models.RoleAssistant {
		t.Errorf("unexpected second message role: %q", mem.Messages[1].Role)
	}
}

func TestAddMessage_FIFOEviction(t *testing.T) {
	const max = 5
	svc := newTestMemoryService(t, max)
	ctx := context.Background()

	for i := 0; i < max+3; i++ {
		if _, err := svc.AddMessage(ctx, "user-1", models.RoleUser, fmt.Sprintf("msg-%d", i), nil); err != nil {
			t.Fatalf("AddMessage %d failed: %v", i, err)
		}
	}

	mem := svc.GetMemory(ctx, "user-1")
	if len(mem.Messages) != max {
		t.Fatalf("expected %d messages after eviction, got %d", max, len(mem.Messages))
	}
	// The oldest entries are gone; order of survivors is intact.
	if mem.Messages[0].Content != "msg-3" {
		t.Errorf("expected oldest survivor msg-3, got %q", mem.Messages[0].Content)
	}
	if mem.Messages[max-1].Content != fmt.Sprintf("msg-%d", max+2) {
		t.Errorf("expected newest msg-%d, got %q", max+2, mem.Messages[max-1].Content)
	}
}

func TestSetModel(t *testing.T) {
	svc := newTestMemoryService(t, 50)
	ctx := context.Background()

	if _, err := svc.AddMessage(ctx, "user-1", models.RoleUser, "hello", nil); err != nil {
		t.Fatalf("AddMessage failed: %v", err)
	}
	if _, err := svc.SetModel(ctx, "user-1", "claude-3-opus"); err != nil {
		t.Fatalf("SetModel failed: %v", err)
	}

	mem := svc.GetMemory(ctx, "user-1")
	if mem.Model != "claude-3-opus" {
		t.Errorf("expected model claude-3-opus, got %q", mem.Model)
	}
	// Switching models does not touch the transcript.
	if len(mem.Messages) != 1 {
		t.Errorf("expected transcript untouched, got %d messages", len(mem.Messages))
	}
}

func TestReset(t *testing.T) {
	svc := newTestMemoryService(t, 50)
	ctx := context.Background()

	svc.AddMessage(ctx, "user-1", models.RoleUser, "hello", nil)
	svc.SetModel(ctx, "user-1", "claude-3-opus")

	if _, err := svc.Reset(ctx, "user-1"); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	mem := svc.GetMemory(ctx, "user-1")
	if len(mem.Messages) != 0 {
		t.Errorf("expected empty transcript after reset, got %d messages", len(mem.Messages))
	}
	if mem.Model != "gpt-4" {
		t.Errorf("expected default model after reset, got %q", mem.Model)
	}
}

func TestGetConversationHistory(t *testing.T) {
	svc := newTestMemoryService(t, 50)
	ctx := context.Background()

	svc.AddMessage(ctx, "user-1", models.RoleUser, "question", nil)
	svc.AddMessage(ctx, "user-1", models.RoleAssistant, "answer", nil)

	t.Run("with system prompt", func(t *testing.T) {
		history, model := svc.GetConversationHistory(ctx, "user-1", true)
		if model != "gpt-4" {
			t.Errorf("expected model gpt-4, got %q", model)
		}
		if len(history) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(history))
		}
		if history[0].Role != models.RoleSystem {
			t.Errorf("expected system entry first, got %q", history[0].Role)
		}
		if history[1].Content != "question" || history[2].Content != "answer" {
			t.Error("transcript entries out of order")
		}
	})

	t.Run("without system prompt", func(t *testing.T) {
		history, _ := svc.GetConversationHistory(ctx, "user-1", false)
		if len(history) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(history))
		}
		if history[0].Role == models.RoleSystem {
			t.Error("system entry should be absent")
		}
	})
}

func TestSystemPromptNeverStored(t *testing.T) {
	const max = 3
	svc := newTestMemoryService(t, max)
	ctx := context.Background()

	for i := 0; i < max+2; i++ {
		svc.AddMessage(ctx, "user-1", models.RoleUser, fmt.Sprintf("m%d", i), nil)
	}

	mem := svc.GetMemory(ctx, "user-1")
	for _, m := range mem.Messages {
		if m.Role == models.RoleSystem {
			t.Fatal("system instruction leaked into the stored transcript")
		}
	}

	// Eviction never consumes the synthesized system entry.
	history, _ := svc.GetConversationHistory(ctx, "user-1", true)
	if history[0].Role != models.RoleSystem {
		t.Error("system entry missing after eviction")
	}
	if len(history) != max+1 {
		t.Errorf("expected %d entries, got %d", max+1, len(history))
	}
}

func TestGetStats(t *testing.T) {
	svc := newTestMemoryService(t, 50)
	ctx := context.Background()

	t.Run("unknown user gets default stats", func(t *testing.T) {
		stats := svc.GetStats(ctx, "nobody")
		if stats == nil {
			t.Fatal("expected default stats, got nil")
		}
		if stats.TotalMessages != 0 {
			t.Errorf("expected 0 messages, got %d", stats.TotalMessages)
		}
		if stats.CurrentModel != "gpt-4" {
			t.Errorf("expected default model, got %q", stats.CurrentModel)
		}
	})

	t.Run("stats after activity", func(t *testing.T) {
		svc.AddMessage(ctx, "user-1", models.RoleUser, "hello", nil)
		svc.AddMessage(ctx, "user-1", models.RoleAssistant, "hi", nil)

		stats := svc.GetStats(ctx, "user-1")
		if stats == nil {
			t.Fatal("expected stats, got nil")
		}
		if stats.TotalMessages != 2 {
			t.Errorf("expected 2 messages, got %d", stats.TotalMessages)
		}
		if stats.MemoryUsage != "2/50" {
			t.Errorf("expected usage 2/50, got %q", stats.MemoryUsage)
		}
	})
}

func TestGetAllStats(t *testing.T) {
	svc := newTestMemoryService(t, 50)
	ctx := context.Background()

	svc.AddMessage(ctx, "user-a", models.RoleUser, "one", nil)
	svc.AddMessage(ctx, "user-b", models.RoleUser, "two", nil)

	all, err := svc.GetAllStats(ctx)
	if err != nil {
		t.Fatalf("GetAllStats failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected stats for 2 users, got %d", len(all))
	}

	seen := make(map[string]bool)
	for _, st := range all {
		seen[st.UserID] = true
		if st.TotalMessages != 1 {
			t.Errorf("user %s: expected 1 message, got %d", st.UserID, st.TotalMessages)
		}
	}
	if !seen["user-a"] || !seen["user-b"] {
		t.Errorf("missing users in stats: %v", seen)
	}
}

func TestAddMessage_ConcurrentSameUser(t *testing.T) {
	const writers = 20
	svc := newTestMemoryService(t, 100)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if _, err := svc.AddMessage(ctx, "user-1", models.RoleUser, fmt.Sprintf("m%d", n), nil); err != nil {
				t.Errorf("concurrent AddMessage failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	mem := svc.GetMemory(ctx, "user-1")
	if len(mem.Messages) != writers {
		t.Errorf("expected %d messages, got %d (lost updates)", writers, len(mem.Messages))
	}
}
