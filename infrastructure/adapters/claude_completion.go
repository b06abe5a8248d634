package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/DJRGVC/Noter/application/ports/outbound"
	"github.com/DJRGVC/Noter/config"
)

type anthropicCompletionRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicCompletionResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type claudeCompletion struct {
	ContentFetcher
	logger          outbound.LoggerPort
	anthropicConfig *config.AnthropicConfig
}

func NewClaudeCompletion(contentFetcher ContentFetcher, anthropicConfig *config.AnthropicConfig,
	logger outbound.LoggerPort) outbound.CompletionPort {
	return &claudeCompletion{
		ContentFetcher:  contentFetcher,
		logger:          logger,
		anthropicConfig: anthropicConfig,
	}
}

func (c *claudeCompletion) Complete(ctx context.Context, req outbound.CompletionRequest) (string, error) {
	httpReq, err := c.createRequest(ctx, req)
	if err != nil {
		return "", err
	}

	payload, err := c.FetchContent(httpReq)
	if err != nil {
		return "", err
	}

	var response anthropicCompletionResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		c.logger.Error(err, "Failed to unmarshal completion response")
		return "", err
	}

	for _, block := range response.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}

	return "", fmt.Errorf("completion response contained no text block")
}

func (c *claudeCompletion) createRequest(ctx context.Context, req outbound.CompletionRequest) (*http.Request, error) {
	model := req.Model
	if model == "" {
		model = c.anthropicConfig.Model
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.anthropicConfig.MaxTokens
	}

	body := anthropicCompletionRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    req.System,
		Messages: []anthropicMessage{
			{Role: "user", Content: req.Prompt},
		},
	}

	payloadBytes, err := json.Marshal(body)
	if err != nil {
		c.logger.Error(err, "Failed to marshal the completion request body")
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.anthropicConfig.ApiUrl+"/v1/messages", bytes.NewBuffer(payloadBytes))
	if err != nil {
		c.logger.Error(err, "Failed to create the completion HTTP request")
		return nil, err
	}

	httpReq.Header.Set("x-api-key", c.anthropicConfig.ApiKey)
	httpReq.Header.Set("anthropic-version", c.anthropicConfig.Version)
	httpReq.Header.Set("Content-Type", "application/json")

	return httpReq, nil
}
