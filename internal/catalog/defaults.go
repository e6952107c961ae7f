package catalog

import "relaybot/internal/models"

// Default returns the built-in catalog with the standard alias table.
// An operator can replace it entirely via the MODELS_FILE override.
func Default() *Catalog {
	return New(defaultModels).WithAliases(defaultAliases)
}

var defaultModels = []models.ModelDescriptor{
	// OpenAI
	{ID: "gpt-4", Provider: "openai", DisplayName: "GPT-4", Multimodal: true, MaxTokens: 8192},
	{ID: "gpt-4o", Provider: "openai", DisplayName: "GPT-4o", Multimodal: true, MaxTokens: 128000},
	{ID: "gpt-4o-mini", Provider: "openai", DisplayName: "GPT-4o Mini", Multimodal: true, MaxTokens: 128000},
	{ID: "gpt-4.1", Provider: "openai", DisplayName: "GPT-4.1", Multimodal: true, MaxTokens: 128000},
	{ID: "gpt-4.1-mini", Provider: "openai", DisplayName: "GPT-4.1 Mini", Multimodal: true, MaxTokens: 128000},
	{ID: "gpt-4.1-nano", Provider: "openai", DisplayName: "GPT-4.1 Nano", Multimodal: false, MaxTokens: 64000},
	{ID: "gpt-4-vision", Provider: "openai", DisplayName: "GPT-4 Vision", Multimodal: true, MaxTokens: 4096},
	{ID: "gpt-3.5-turbo", Provider: "openai", DisplayName: "GPT-3.5 Turbo", Multimodal: false, MaxTokens: 4096},
	{ID: "o4-mini", Provider: "openai", DisplayName: "o4 Mini", Multimodal: true, MaxTokens: 128000},
	{ID: "o3", Provider: "openai", DisplayName: "o3", Multimodal: true, MaxTokens: 200000},
	{ID: "o3-mini", Provider: "openai", DisplayName: "o3 Mini", Multimodal: true, MaxTokens: 128000},
	{ID: "o1", Provider: "openai", DisplayName: "o1", Multimodal: false, MaxTokens: 100000},
	{ID: "o1-mini", Provider: "openai", DisplayName: "o1 Mini", Multimodal: false, MaxTokens: 65536},
	{ID: "o1-preview", Provider: "openai", DisplayName: "o1 Preview", Multimodal: false, MaxTokens: 32768},

	// DeepSeek
	{ID: "deepseek-v3-0324", Provider: "deepseek", DisplayName: "DeepSeek V3", Multimodal: true, MaxTokens: 64000},
	{ID: "deepseek-r1", Provider: "deepseek", DisplayName: "DeepSeek R1", Multimodal: true, MaxTokens: 64000},
	{ID: "mai-ds-r1", Provider: "deepseek", DisplayName: "MAI DeepSeek R1", Multimodal: true, MaxTokens: 64000},

	// Mistral
	{ID: "mistral-7b", Provider: "mistral", DisplayName: "Mistral 7B", Multimodal: false, MaxTokens: 32768},
	{ID: "mistral-small-3.1", Provider: "mistral", DisplayName: "Mistral Small 3.1", Multimodal: false, MaxTokens: 128000},
	{ID: "mistral-medium-3-25.05", Provider: "mistral", DisplayName: "Mistral Medium 3", Multimodal: false, MaxTokens: 128000},
	{ID: "mistral-large-24.11", Provider: "mistral", DisplayName: "Mistral Large 24.11", Multimodal: true, MaxTokens: 128000},
	{ID: "mistral-nemo", Provider: "mistral", DisplayName: "Mistral Nemo", Multimodal: false, MaxTokens: 128000},
	{ID: "codestral-25.01", Provider: "mistral", DisplayName: "Codestral 25.01", Multimodal: false, MaxTokens: 32768},

	// Meta Llama
	{ID: "llama-3-8b-instruct", Provider: "meta", DisplayName: "Llama 3 8B Instruct", Multimodal: false, MaxTokens: 8192},
	{ID: "llama-3-70b-instruct", Provider: "meta", DisplayName: "Llama 3 70B Instruct", Multimodal: false, MaxTokens: 8192},
	{ID: "llama-3-1-405b-instruct", Provider: "meta", DisplayName: "Llama 3.1 405B Instruct", Multimodal: false, MaxTokens: 131072},
	{ID: "llama-3-2.1-18b-vision-instruct", Provider: "meta", DisplayName: "Llama 3.2.1 18B Vision", Multimodal: true, MaxTokens: 131072},
	{ID: "llama-3-2.9-90b-vision-instruct", Provider: "meta", DisplayName: "Llama 3.2.9 90B Vision", Multimodal: true, MaxTokens: 131072},

	// Microsoft Phi
	{ID: "phi-3-mini-4k-instruct", Provider: "microsoft", DisplayName: "Phi-3 Mini 4K", Multimodal: false, MaxTokens: 4096},
	{ID: "phi-3-mini-128k-instruct", Provider: "microsoft", DisplayName: "Phi-3 Mini 128K", Multimodal: false, MaxTokens: 128000},
	{ID: "phi-3-small-8k-instruct", Provider: "microsoft", DisplayName: "Phi-3 Small 8K", Multimodal: false, MaxTokens: 8192},
	{ID: "phi-3-small-128k-instruct", Provider: "microsoft", DisplayName: "Phi-3 Small 128K", Multimodal: false, MaxTokens: 128000},
	{ID: "phi-3-medium-4k-instruct", Provider: "microsoft", DisplayName: "Phi-3 Medium 4K", Multimodal: false, MaxTokens: 4096},
	{ID: "phi-3-medium-128k-instruct", Provider: "microsoft", DisplayName: "Phi-3 Medium 128K", Multimodal: false, MaxTokens: 128000},
	{ID: "phi-3.5-mini-instruct-128k", Provider: "microsoft", DisplayName: "Phi-3.5 Mini 128K", Multimodal: false, MaxTokens: 128000},
	{ID: "phi-3.5-moe-instruct-128k", Provider: "microsoft", DisplayName: "Phi-3.5 MoE 128K", Multimodal: false, MaxTokens: 128000},
	{ID: "phi-3.5-vision-instruct-128k", Provider: "microsoft", DisplayName: "Phi-3.5 Vision 128K", Multimodal: true, MaxTokens: 128000},
	{ID: "phi-4", Provider: "microsoft", DisplayName: "Phi-4", Multimodal: false, MaxTokens: 16384},
	{ID: "phi-4-mini-instruct", Provider: "microsoft", DisplayName: "Phi-4 Mini", Multimodal: false, MaxTokens: 16384},
	{ID: "phi-4-multimodal-instruct", Provider: "microsoft", DisplayName: "Phi-4 Multimodal", Multimodal: true, MaxTokens: 16384},
	{ID: "phi-4-reasoning", Provider: "microsoft", DisplayName: "Phi-4 Reasoning", Multimodal: false, MaxTokens: 16384},
	{ID: "phi-4-mini-reasoning", Provider: "microsoft", DisplayName: "Phi-4 Mini Reasoning", Multimodal: false, MaxTokens: 16384},

	// Llama 4
	{ID: "llama-4-scout-17b-16e-instruct", Provider: "llama", DisplayName: "Llama 4 Scout 17B", Multimodal: false, MaxTokens: 131072},
	{ID: "llama-4-maverick-17b-128e-instruct-fp8", Provider: "llama", DisplayName: "Llama 4 Maverick 17B", Multimodal: false, MaxTokens: 131072},

	// xAI Grok
	{ID: "grok-3", Provider: "xai", DisplayName: "Grok-3", Multimodal: true, MaxTokens: 131072},
	{ID: "grok-3-mini", Provider: "xai", DisplayName: "Grok-3 Mini", Multimodal: true, MaxTokens: 131072},

	// Core42
	{ID: "jais-30b-chat", Provider: "core42", DisplayName: "JAIS 30B Chat", Multimodal: false, MaxTokens: 32768},

	// AI21 Labs
	{ID: "jamba-1.5-mini", Provider: "ai21", DisplayName: "Jamba 1.5 Mini", Multimodal: false, MaxTokens: 256000},
	{ID: "jamba-1.5-large", Provider: "ai21", DisplayName: "Jamba 1.5 Large", Multimodal: false, MaxTokens: 256000},

	// Anthropic
	{ID: "claude-3", Provider: "anthropic", DisplayName: "Claude 3", Multimodal: true, MaxTokens: 8192},

	// Google
	{ID: "gemini-pro", Provider: "google", DisplayName: "Gemini Pro", Multimodal: true, MaxTokens: 8192},

	// Custom
	{ID: "custom", Provider: "custom", DisplayName: "Custom Model", Multimodal: true, MaxTokens: 8192},
}

// defaultAliases are the short command-friendly names accepted wherever
// a model identifier is expected.
var defaultAliases = map[string]string{
	"gpt4o":            "gpt-4o",
	"gpt4o-mini":       "gpt-4o-mini",
	"gpt41":            "gpt-4.1",
	"gpt41-mini":       "gpt-4.1-mini",
	"gpt41-nano":       "gpt-4.1-nano",
	"deepseek-v3":      "deepseek-v3-0324",
	"mistral-small":    "mistral-small-3.1",
	"mistral-medium":   "mistral-medium-3-25.05",
	"mistral-large":    "mistral-large-24.11",
	"codestral":        "codestral-25.01",
	"llama-8b":         "llama-3-8b-instruct",
	"llama-70b":        "llama-3-70b-instruct",
	"llama-405b":       "llama-3-1-405b-instruct",
	"llama-vision-18b": "llama-3-2.1-18b-vision-instruct",
	"llama-vision-90b": "llama-3-2.9-90b-vision-instruct",
	"phi35-mini":       "phi-3.5-mini-instruct-128k",
	"phi35-moe":        "phi-3.5-moe-instruct-128k",
	"phi35-vision":     "phi-3.5-vision-instruct-128k",
	"phi4":             "phi-4",
	"phi4-mini":        "phi-4-mini-instruct",
	"phi4-multimodal":  "phi-4-multimodal-instruct",
}
