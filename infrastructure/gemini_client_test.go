package infrastructure

import (
	"context"
	"testing"

	"symmbot/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	t.Parallel()

	_, err := NewGeminiClient(context.Background(), "", "gemini-2.0-flash")
	require.Error(t, err)
}

func TestGenerationConfig(t *testing.T) {
	t.Parallel()

	config := generationConfig(entities.CompletionRequest{
		SystemInstruction: "be helpful",
		Temperature:       0.7,
		TopP:              0.95,
		TopK:              40,
		MaxOutputTokens:   800,
		ResponseMIMEType:  "text/plain",
	})

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.7, *config.Temperature, 0.0001)
	assert.InDelta(t, 0.95, *config.TopP, 0.0001)
	assert.InDelta(t, 40, *config.TopK, 0.0001)
	assert.Equal(t, int32(800), config.MaxOutputTokens)
	assert.Equal(t, "text/plain", config.ResponseMIMEType)
	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Equal(t, "be helpful", config.SystemInstruction.Parts[0].Text)
}

func TestGenerationConfig_NoSystemInstruction(t *testing.T) {
	t.Parallel()

	config := generationConfig(entities.CompletionRequest{})
	assert.Nil(t, config.SystemInstruction)
}
