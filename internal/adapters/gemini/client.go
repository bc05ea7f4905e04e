// Package gemini adapts the Google GenAI SDK to the advisor's TextGenerator port.
package gemini

import (
	"context"
	"fmt"

	portssvc "github.com/SscSPs/finai_backend/internal/core/ports/services"
	"google.golang.org/genai"
)

// Client generates text with one Gemini model.
type Client struct {
	client *genai.Client
	model  string
}

var _ portssvc.TextGenerator = (*Client)(nil)

// NewClient creates a Gemini API client for model.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: api key is empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create genai client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

// GenerateText sends req as a single user turn and returns the text of the answer.
func (c *Client) GenerateText(ctx context.Context, req portssvc.GenerationRequest) (string, error) {
	parts := []*genai.Part{{Text: req.Prompt}}
	if len(req.Image) > 0 {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: req.ImageMIMEType,
				Data:     req.Image,
			},
		})
	}
	contents := []*genai.Content{{Role: "user", Parts: parts}}

	config := &genai.GenerateContentConfig{}
	if req.SystemInstruction != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.SystemInstruction}}}
	}
	if req.JSONResponse {
		config.ResponseMIMEType = "application/json"
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	return resp.Text(), nil
}
