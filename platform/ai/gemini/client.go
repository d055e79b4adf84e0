// Package gemini implements the ai.ChatModel interface on top of the
// Google Gemini API.
package gemini

import (
	"context"
	"fmt"

	"leadops_backend/platform/ai"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// Client wraps the genai SDK for conversational generation.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini chat client.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if model == "" {
		model = defaultModel
	}

	inner, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{client: inner, model: model}, nil
}

// Name returns the configured model identifier.
func (c *Client) Name() string {
	return c.model
}

// Generate produces the next assistant reply for the conversation.
func (c *Client) Generate(ctx context.Context, systemInstruction string, history []ai.ChatMessage) (string, error) {
	contents := make([]*genai.Content, 0, len(history))
	for _, message := range history {
		role := genai.RoleUser
		if message.Role == ai.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{genai.NewPartFromText(message.Content)},
		})
	}

	config := &genai.GenerateContentConfig{}
	if systemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(systemInstruction)},
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini generate: empty response")
	}
	return text, nil
}
