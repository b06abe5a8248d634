package config

import (
	"fmt"
	"os"
	"strconv"
)

type AnthropicConfig struct {
	ApiUrl    string
	ApiKey    string
	Model     string
	Version   string
	MaxTokens int
}

func GetAnthropicConfig() (*AnthropicConfig, error) {
	apiUrl := os.Getenv("ANTHROPIC_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_URL must be set")
	}
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY must be set")
	}
	model := os.Getenv("ANTHROPIC_MODEL")
	if model == "" {
		return nil, fmt.Errorf("ANTHROPIC_MODEL must be set")
	}
	version := os.Getenv("ANTHROPIC_VERSION")
	if version == "" {
		version = "2023-06-01"
	}
	maxTokens := 4096
	if raw := os.Getenv("ANTHROPIC_MAX_TOKENS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse ANTHROPIC_MAX_TOKENS")
		}
		maxTokens = parsed
	}

	return &AnthropicConfig{
		ApiUrl:    apiUrl,
		ApiKey:    apiKey,
		Model:     model,
		Version:   version,
		MaxTokens: maxTokens,
	}, nil
}
