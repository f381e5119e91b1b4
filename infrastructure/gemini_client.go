package infrastructure

import (
	"context"
	"fmt"
	"strings"

	"symmbot/domain/entities"

	log "github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// GeminiClient produces completions through the Gemini API
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a client authenticated with apiKey
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

// Complete streams the answer and returns the concatenated text
func (c *GeminiClient) Complete(ctx context.Context, req entities.CompletionRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}

	var answer strings.Builder
	chunks := 0
	for resp, err := range c.client.Models.GenerateContentStream(ctx, model, contents, generationConfig(req)) {
		if err != nil {
			return "", fmt.Errorf("gemini generation failed after %d chunks: %w", chunks, err)
		}
		answer.WriteString(resp.Text())
		chunks++
	}

	text := strings.TrimSpace(answer.String())
	log.WithFields(log.Fields{
		"model":  model,
		"chunks": chunks,
		"length": len(text),
	}).Debug("Gemini completion finished")

	if text == "" {
		return "", fmt.Errorf("gemini returned an empty answer")
	}
	return text, nil
}

func generationConfig(req entities.CompletionRequest) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(req.Temperature),
		TopP:             genai.Ptr(req.TopP),
		TopK:             genai.Ptr(req.TopK),
		MaxOutputTokens:  req.MaxOutputTokens,
		ResponseMIMEType: req.ResponseMIMEType,
	}
	if req.SystemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	return config
}
