package catalog

import (
	"errors"
	"testing"

	"relaybot/internal/models"
)

func testCatalog() *Catalog {
	return New([]models.ModelDescriptor{
		{ID: "alpha-large", Provider: "alpha", DisplayName: "Alpha Large", Multimodal: true, MaxTokens: 4096},
		{ID: "alpha-small", Provider: "alpha", DisplayName: "Alpha Small", MaxTokens: 2048},
		{ID: "beta-chat", Provider: "beta", DisplayName: "Beta Chat", MaxTokens: 8192},
	}).WithAliases(map[string]string{
		"large":   "alpha-large",
		"dangler": "no-such-model",
	})
}

func TestResolve(t *testing.T) {
	cat := testCatalog()

	tests := []struct {
		name    string
		modelID string
		wantID  string
		wantErr bool
	}{
		{name: "canonical id", modelID: "alpha-large", wantID: "alpha-large"},
		{name: "alias", modelID: "large", wantID: "alpha-large"},
		{name: "unknown id", modelID: "gamma", wantErr: true},
		{name: "alias to unknown model was dropped", modelID: "dangler", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := cat.Resolve(tt.modelID)
			if tt.wantErr {
				if !errors.Is(err, ErrModelNotFound) {
					t.Fatalf("expected ErrModelNotFound, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if desc.ID != tt.wantID {
				t.Errorf("resolved to %q, want %q", desc.ID, tt.wantID)
			}
		})
	}
}

func TestDefaultCatalogAliases(t *testing.T) {
	cat := Default()

	full, err := cat.Resolve("gpt-4.1-mini")
	if err != nil {
		t.Fatalf("canonical id failed to resolve: %v", err)
	}

	short, err := cat.Resolve("gpt41-mini")
	if err != nil {
		t.Fatalf("short alias failed to resolve: %v", err)
	}

	if short.ID != full.ID {
		t.Errorf("alias resolved to %q, canonical to %q", short.ID, full.ID)
	}

	if _, err := cat.Resolve("not-a-model"); !errors.Is(err, ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound, got %v", err)
	}
}

func TestListByProvider(t *testing.T) {
	cat := testCatalog()

	alpha := cat.ListByProvider("alpha")
	if len(alpha) != 2 {
		t.Fatalf("expected 2 alpha models, got %d", len(alpha))
	}
	// Declaration order is preserved.
	if alpha[0].ID != "alpha-large" || alpha[1].ID != "alpha-small" {
		t.Errorf("unexpected order: %q, %q", alpha[0].ID, alpha[1].ID)
	}

	if got := cat.ListByProvider("nope"); got != nil {
		t.Errorf("unknown provider returned %v", got)
	}
}

func TestProviders(t *testing.T) {
	cat := testCatalog()

	providers := cat.Providers()
	if len(providers) != 2 {
		t.Fatalf("expected 2 providers, got %d", len(providers))
	}
	if providers[0] != "alpha" || providers[1] != "beta" {
		t.Errorf("unexpected provider order: %v", providers)
	}
}

func TestIsMultimodal(t *testing.T) {
	cat := testCatalog()

	if !cat.IsMultimodal("alpha-large") {
		t.Error("alpha-large should be multimodal")
	}
	if cat.IsMultimodal("alpha-small") {
		t.Error("alpha-small should not be multimodal")
	}
	if cat.IsMultimodal("unknown") {
		t.Error("unknown model should report false, not error")
	}
}
