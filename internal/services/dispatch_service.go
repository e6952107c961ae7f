package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"relaybot/internal/catalog"
	"relaybot/internal/chunker"
	"relaybot/internal/document"
	"relaybot/internal/llm"
	"relaybot/internal/logging"
	"relaybot/internal/models"
)

// Fixed user-facing fallback strings. Raw collaborator errors are
// logged, never shown.
const (
	replyGreeting      = "👋 Hi! Send me a message or upload a file and I'll help you analyze it!"
	replyGenericError  = "❌ Sorry, something went wrong while processing your message. Please try again."
	replyProviderError = "❌ Sorry, I couldn't get a response from the model right now. Please try again in a moment."
)

// DispatchService is the entry point for inbound events. It extracts
// intent, drives the memory manager and router, and chunks the outcome
// for the platform. Every path produces a reply; collaborator failures
// are classified here and never propagate unhandled.
type DispatchService struct {
	memory         *MemoryService
	router         *RouterService
	catalog        *catalog.Catalog
	documents      *document.Service
	metrics        *Metrics
	maxChunkLength int
}

// NewDispatchService wires the dispatch entry point.
func NewDispatchService(memory *MemoryService, router *RouterService, cat *catalog.Catalog, documents *document.Service, metrics *Metrics, maxChunkLength int) *DispatchService {
	return &DispatchService{
		memory:         memory,
		router:         router,
		catalog:        cat,
		documents:      documents,
		metrics:        metrics,
		maxChunkLength: maxChunkLength,
	}
}

// HandleMessage processes one conversational turn and returns the
// ordered reply segments. The error return covers malformed events
// only; every collaborator failure becomes reply text.
func (s *DispatchService) HandleMessage(ctx context.Context, ev models.MessageEvent) ([]string, error) {
	if ev.UserID == "" {
		return nil, fmt.Errorf("message event missing user id")
	}

	logger := logging.WithUser(uuid.NewString(), ev.UserID)
	s.metrics.ChatRequests.Inc()
	start := time.Now()
	defer func() {
		s.metrics.ChatRequestLatency.Observe(time.Since(start).Seconds())
	}()

	userText := strings.TrimSpace(ev.Text)

	// Attachment failures are reported per file and never abort the
	// rest of the message.
	var notes []string
	var processed []models.ProcessedFile
	var imageURLs []string

	for _, att := range ev.Attachments {
		pf, err := s.documents.Process(ctx, att)
		if err != nil {
			logger.Warn("attachment processing failed", "file", att.Name, "error", err)
			notes = append(notes, fmt.Sprintf("❌ Error processing file %s: %s", att.Name, attachmentErrorText(err)))
			continue
		}
		processed = append(processed, *pf)

		switch pf.Type {
		case "pdf", "txt":
			userText += "\n\n" + document.FormatFileContent(pf)
		case "image":
			imageURLs = append(imageURLs, pf.URL)
		}
	}

	if userText == "" && len(processed) == 0 {
		return append(notes, replyGreeting), nil
	}

	if _, err := s.memory.AddMessage(ctx, ev.UserID, models.RoleUser, userText, processed); err != nil {
		logger.Error("failed to persist user message", "error", err)
		s.metrics.ChatErrors.WithLabelValues("storage_write").Inc()
		return append(notes, replyGenericError), nil
	}

	history, model := s.memory.GetConversationHistory(ctx, ev.UserID, true)

	result, err := s.router.Generate(ctx, model, history, models.CompletionOptions{Images: imageURLs})
	if err != nil {
		return append(notes, s.classifyGenerateError(logger, model, err)), nil
	}

	if _, err := s.memory.AddMessage(ctx, ev.UserID, models.RoleAssistant, result.Content, nil); err != nil {
		logger.Error("failed to persist assistant message", "error", err)
		s.metrics.ChatErrors.WithLabelValues("storage_write").Inc()
		return append(notes, replyGenericError), nil
	}

	chunks := chunker.Split(result.Content, s.maxChunkLength)
	s.metrics.ReplyChunks.Observe(float64(len(chunks)))

	return append(notes, chunks...), nil
}

// classifyGenerateError maps a router failure to its user-facing
// reply.
func (s *DispatchService) classifyGenerateError(logger *slog.Logger, model string, err error) string {
	if errors.Is(err, catalog.ErrModelNotFound) {
		s.metrics.ChatErrors.WithLabelValues("model_not_found").Inc()
		return fmt.Sprintf("❌ Model `%s` not found. Use the `models` command to see available models.", model)
	}

	var pe *llm.ProviderError
	if errors.As(err, &pe) {
		logger.Error("provider call failed", "provider", pe.Provider, "status", pe.StatusCode, "payload", pe.Payload, "error", err)
		s.metrics.ChatErrors.WithLabelValues("provider_error").Inc()
		return replyProviderError
	}

	logger.Error("generation failed", "error", err)
	s.metrics.ChatErrors.WithLabelValues("internal").Inc()
	return replyGenericError
}

func attachmentErrorText(err error) string {
	switch {
	case errors.Is(err, document.ErrUnsupportedType):
		return "this file type is not supported"
	case errors.Is(err, document.ErrFileTooLarge):
		return "the file is too large"
	default:
		return "the file could not be processed"
	}
}

// HandleCommand processes one structured command interaction.
func (s *DispatchService) HandleCommand(ctx context.Context, ev models.CommandEvent) ([]string, error) {
	if ev.UserID == "" {
		return nil, fmt.Errorf("command event missing user id")
	}

	cmd := strings.ToLower(ev.Name)
	s.metrics.CommandRequests.WithLabelValues(cmd).Inc()

	switch cmd {
	case "model":
		return s.handleModelCommand(ctx, ev), nil
	case "models":
		return s.handleModelsCommand(ev), nil
	case "providers":
		return s.handleProvidersCommand(), nil
	case "reset", "clear":
		if _, err := s.memory.Reset(ctx, ev.UserID); err != nil {
			s.metrics.ChatErrors.WithLabelValues("storage_write").Inc()
			return []string{replyGenericError}, nil
		}
		return []string{"🔄 Your conversation memory has been reset!"}, nil
	case "stats":
		return s.handleStatsCommand(ctx, ev), nil
	case "help":
		return []string{helpText}, nil
	default:
		return []string{fmt.Sprintf("❌ Unknown command `%s`. Use `help` for available commands.", ev.Name)}, nil
	}
}

func (s *DispatchService) handleModelCommand(ctx context.Context, ev models.CommandEvent) []string {
	// No argument: show the current selection.
	if len(ev.Args) == 0 {
		mem := s.memory.GetMemory(ctx, ev.UserID)
		desc, err := s.catalog.Resolve(mem.Model)
		if err != nil {
			return []string{fmt.Sprintf("🤖 **Current Model:** `%s` (not in the catalog, use `models` to pick another)", mem.Model)}
		}
		return []string{fmt.Sprintf(
			"🤖 **Current Model:** %s (`%s`)\n🏢 **Provider:** %s\n%s **Type:** %s\n📊 **Max Tokens:** %d",
			desc.DisplayName, mem.Model, desc.Provider,
			modalityIcon(desc.Multimodal), modalityLabel(desc.Multimodal), desc.MaxTokens,
		)}
	}

	modelID := ev.Args[0]
	desc, err := s.catalog.Resolve(modelID)
	if err != nil {
		return []string{fmt.Sprintf("❌ Model `%s` not found. Use `models` to see available models.", modelID)}
	}

	if _, err := s.memory.SetModel(ctx, ev.UserID, modelID); err != nil {
		s.metrics.ChatErrors.WithLabelValues("storage_write").Inc()
		return []string{replyGenericError}
	}

	return []string{fmt.Sprintf(
		"✅ **Switched to %s!**\n🏢 **Provider:** %s\n%s **Type:** %s",
		desc.DisplayName, desc.Provider, modalityIcon(desc.Multimodal), modalityLabel(desc.Multimodal),
	)}
}

func (s *DispatchService) handleModelsCommand(ev models.CommandEvent) []string {
	// Per-provider listing.
	if len(ev.Args) > 0 {
		provider := strings.ToLower(ev.Args[0])
		providerModels := s.catalog.ListByProvider(provider)
		if len(providerModels) == 0 {
			return []string{fmt.Sprintf(
				"❌ Provider `%s` not found.\n**Available providers:** %s",
				provider, strings.Join(s.catalog.Providers(), ", "),
			)}
		}

		var b strings.Builder
		fmt.Fprintf(&b, "🤖 **%s Models:**\n", strings.ToUpper(provider))
		for _, m := range providerModels {
			fmt.Fprintf(&b, "**%s** (`%s`) %s\n", m.DisplayName, m.ID, modalityIcon(m.Multimodal))
		}
		b.WriteString("\n🎨 = Multimodal (supports images)\n📝 = Text only")
		return []string{b.String()}
	}

	// Grouped overview: first three models per provider.
	var b strings.Builder
	b.WriteString("🤖 **Available AI Models by Provider:**\n\n")
	for _, provider := range s.catalog.Providers() {
		providerModels := s.catalog.ListByProvider(provider)
		fmt.Fprintf(&b, "**%s** (%d models)\n", strings.ToUpper(provider), len(providerModels))

		shown := providerModels
		if len(shown) > 3 {
			shown = shown[:3]
		}
		for _, m := range shown {
			fmt.Fprintf(&b, "  • %s (`%s`) %s\n", m.DisplayName, m.ID, modalityIcon(m.Multimodal))
		}
		if len(providerModels) > 3 {
			fmt.Fprintf(&b, "  • ... and %d more\n", len(providerModels)-3)
		}
		b.WriteString("\n")
	}
	b.WriteString("🎨 = Multimodal | 📝 = Text only\n")
	b.WriteString("**Usage:**\n")
	b.WriteString("• `models <provider>` - Show all models for a provider\n")
	b.WriteString("• `model <id>` - Switch to a specific model\n")
	b.WriteString("• `providers` - List all available providers")
	return []string{b.String()}
}

func (s *DispatchService) handleProvidersCommand() []string {
	var b strings.Builder
	b.WriteString("🏢 **Available AI Providers:**\n")
	for _, provider := range s.catalog.Providers() {
		fmt.Fprintf(&b, "**%s** - %d models\n", strings.ToUpper(provider), len(s.catalog.ListByProvider(provider)))
	}
	b.WriteString("\nUse `models <provider>` to see models for a specific provider.")
	return []string{b.String()}
}

func (s *DispatchService) handleStatsCommand(ctx context.Context, ev models.CommandEvent) []string {
	stats := s.memory.GetStats(ctx, ev.UserID)
	if stats == nil {
		s.metrics.ChatErrors.WithLabelValues("storage_read").Inc()
		return []string{replyGenericError}
	}

	providerLine := "unknown"
	if desc, err := s.catalog.Resolve(stats.CurrentModel); err == nil {
		providerLine = desc.Provider
	}

	return []string{fmt.Sprintf(
		"📊 **Your Stats:**\n💬 **Messages:** %d\n🤖 **Current Model:** %s\n🏢 **Provider:** %s\n💾 **Memory Usage:** %s\n📅 **Last Updated:** %s",
		stats.TotalMessages, stats.CurrentModel, providerLine, stats.MemoryUsage,
		stats.LastUpdated.Format(time.RFC1123),
	)}
}

func modalityIcon(multimodal bool) string {
	if multimodal {
		return "🎨"
	}
	return "📝"
}

func modalityLabel(multimodal bool) string {
	if multimodal {
		return "Multimodal"
	}
	return "Text only"
}

const helpText = "🤖 **Bot Commands:**\n" +
	"`help` - Show this help message\n" +
	"`models` - List all available AI models\n" +
	"`models <provider>` - Show models for specific provider\n" +
	"`providers` - List all AI providers\n" +
	"`model` - Show current model info\n" +
	"`model <id>` - Switch to a specific model\n" +
	"`reset` - Reset conversation memory\n" +
	"`stats` - Show your usage statistics\n\n" +
	"📎 **File Support:**\n" +
	"• PDF files (text extraction & analysis)\n" +
	"• Text files (.txt)\n" +
	"• Images (.jpg, .png, .gif, .webp) for vision models\n\n" +
	"💬 Your conversation history is automatically saved."
