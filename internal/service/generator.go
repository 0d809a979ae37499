package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pageza/cartchef/backend/config"
	"github.com/pageza/cartchef/backend/internal/llm"
)

// NewGenerator builds the text generator for the configured provider. It
// returns llm.ErrMissingAPIKey when the provider has no key.
func NewGenerator(ctx context.Context, cfg config.LLMConfig) (llm.Generator, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case config.ProviderGemini, "":
		client, err := llm.NewGeminiClient(ctx, llm.GeminiOptions{
			APIKey:          cfg.APIKey,
			Model:           cfg.Model,
			BaseURL:         cfg.BaseURL,
			Temperature:     cfg.Temperature,
			MaxOutputTokens: cfg.MaxOutputTokens,
			HTTPClient:      httpClient,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderDeepSeek:
		client, err := llm.NewChatClient(llm.ChatOptions{
			APIKey:          cfg.APIKey,
			APIURL:          cfg.BaseURL,
			Model:           cfg.Model,
			Temperature:     cfg.Temperature,
			MaxOutputTokens: cfg.MaxOutputTokens,
			HTTPClient:      httpClient,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.Provider)
	}
}
