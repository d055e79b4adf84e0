// Package openaicompat implements the ai.ChatModel interface against any
// OpenAI-compatible chat completions endpoint.
package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"leadops_backend/platform/ai"
)

// Config for an OpenAI-compatible provider.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Client calls a chat completions endpoint over HTTP.
type Client struct {
	config Config
	client *http.Client
}

// NewClient creates a client for an OpenAI-compatible API.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	return &Client{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Name returns the configured model identifier.
func (c *Client) Name() string {
	return c.config.Model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error interface{} `json:"error"`
}

// Generate produces the next assistant reply for the conversation.
func (c *Client) Generate(ctx context.Context, systemInstruction string, history []ai.ChatMessage) (string, error) {
	messages := make([]chatMessage, 0, len(history)+1)
	if systemInstruction != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemInstruction})
	}
	for _, message := range history {
		role := "user"
		if message.Role == ai.RoleAssistant {
			role = "assistant"
		}
		messages = append(messages, chatMessage{Role: role, Content: message.Content})
	}

	jsonBody, err := json.Marshal(chatRequest{Model: c.config.Model, Messages: messages})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %v", err)
	}
	if result.Error != nil {
		return "", fmt.Errorf("chat api error: %v", result.Error)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("chat api error: empty choices")
	}

	return result.Choices[0].Message.Content, nil
}
