package docs

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"symmbot/bot/common"
	"symmbot/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDocumentList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "No documentation has been added yet.", FormatDocumentList(nil))

	docs := []*entities.ServerDocumentation{{Title: "Rules"}, {Title: "Roles"}}
	assert.Equal(t, "**Documentation (2)**\n• Rules\n• Roles", FormatDocumentList(docs))
}

func TestFormatDocumentList_LongTitlesFitMessages(t *testing.T) {
	t.Parallel()

	var docs []*entities.ServerDocumentation
	for n := 0; n < 10; n++ {
		docs = append(docs, &entities.ServerDocumentation{
			Title: fmt.Sprintf("%d%s", n, strings.Repeat("t", entities.MaxDocumentationTitleLength-1)),
		})
	}

	list := FormatDocumentList(docs)
	require.Greater(t, len(list), common.MaxMessageLength)

	chunks := common.ChunkMessage(list, common.MaxMessageLength)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), common.MaxMessageLength)
	}
	for _, doc := range docs {
		assert.Contains(t, strings.Join(chunks, "\n"), doc.Title)
	}
}

func TestFormatDocument(t *testing.T) {
	t.Parallel()

	doc := &entities.ServerDocumentation{Title: "Rules", Content: "Be nice."}
	assert.Equal(t, "# Rules\n\nBe nice.", FormatDocument(doc))
}

func TestDocumentationError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		wantMessage string
	}{
		{"not found", entities.ErrDocumentationNotFound, "No documentation with that title exists"},
		{"wrapped invalid title", fmt.Errorf("save: %w", entities.ErrInvalidTitle), "Titles must be between 1 and 255 characters"},
		{"empty content", entities.ErrEmptyContent, "Documentation content cannot be empty"},
		{"unexpected", errors.New("connection reset"), "Something went wrong. Please try again later."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var botErr *common.BotError
			require.ErrorAs(t, documentationError(tt.err, "log"), &botErr)
			assert.Equal(t, tt.wantMessage, botErr.UserMessage)
		})
	}
}
