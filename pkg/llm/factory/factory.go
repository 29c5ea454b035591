package factory

import (
	"fmt"

	"ai-advisor-be/pkg/llm"
	"ai-advisor-be/pkg/llm/gemini"
	"ai-advisor-be/pkg/llm/ollama"
)

// NewLLMProvider builds the configured text-generation backend.
func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewProvider(baseURL, modelName), nil
	case "gemini":
		if apiKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return gemini.NewProvider(apiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
