package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"symmbot/domain/entities"
	"symmbot/domain/events"
	"symmbot/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDocumentationService_Save(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		title      string
		content    string
		setupMocks func(*testhelpers.MockDocumentationRepository, *testhelpers.MockEventPublisher)
		wantErr    error
		wantTitle  string
	}{
		{
			name:    "empty title",
			title:   "   ",
			content: "text",
			wantErr: entities.ErrInvalidTitle,
		},
		{
			name:    "title too long",
			title:   strings.Repeat("a", 256),
			content: "text",
			wantErr: entities.ErrInvalidTitle,
		},
		{
			name:    "empty content",
			title:   "Rules",
			content: " \n ",
			wantErr: entities.ErrEmptyContent,
		},
		{
			name:    "title is trimmed",
			title:   "  Rules  ",
			content: "Be nice",
			setupMocks: func(repo *testhelpers.MockDocumentationRepository, pub *testhelpers.MockEventPublisher) {
				repo.On("Upsert", mock.Anything, "Rules", "Be nice", int64(5)).Return(int64(1), nil)
				pub.On("Publish", events.DocumentationChangedEvent{GuildID: 10, Title: "Rules", UserID: 5}).Return(nil)
			},
			wantTitle: "Rules",
		},
		{
			name:    "max length title accepted",
			title:   strings.Repeat("b", 255),
			content: "x",
			setupMocks: func(repo *testhelpers.MockDocumentationRepository, pub *testhelpers.MockEventPublisher) {
				repo.On("Upsert", mock.Anything, strings.Repeat("b", 255), "x", int64(5)).Return(int64(2), nil)
				pub.On("Publish", mock.Anything).Return(nil)
			},
			wantTitle: strings.Repeat("b", 255),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockRepo := new(testhelpers.MockDocumentationRepository)
			mockPublisher := new(testhelpers.MockEventPublisher)
			if tt.setupMocks != nil {
				tt.setupMocks(mockRepo, mockPublisher)
			}

			service := NewDocumentationService(mockRepo, mockPublisher)
			doc, err := service.Save(context.Background(), 10, tt.title, tt.content, 5)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				mockRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, doc.Title)
			mockRepo.AssertExpectations(t)
			mockPublisher.AssertExpectations(t)
		})
	}
}

func TestDocumentationService_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mockRepo := new(testhelpers.MockDocumentationRepository)
	mockPublisher := new(testhelpers.MockEventPublisher)

	mockRepo.On("Delete", ctx, "Rules").Return(true, nil)
	mockRepo.On("Delete", ctx, "Missing").Return(false, nil)
	mockPublisher.On("Publish", events.DocumentationChangedEvent{GuildID: 10, Title: "Rules", Deleted: true, UserID: 5}).Return(nil).Once()

	service := NewDocumentationService(mockRepo, mockPublisher)

	require.NoError(t, service.Delete(ctx, 10, "Rules", 5))
	assert.ErrorIs(t, service.Delete(ctx, 10, "Missing", 5), entities.ErrDocumentationNotFound)
	mockPublisher.AssertExpectations(t)
}

func TestDocumentationService_Get(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mockRepo := new(testhelpers.MockDocumentationRepository)
	mockRepo.On("Get", ctx, "FAQ").Return(&entities.ServerDocumentation{Title: "FAQ", Content: "answers"}, nil)
	mockRepo.On("Get", ctx, "Nope").Return(nil, nil)
	mockRepo.On("Get", ctx, "Broken").Return(nil, errors.New("db down"))

	service := NewDocumentationService(mockRepo, new(testhelpers.MockEventPublisher))

	doc, err := service.Get(ctx, "FAQ")
	require.NoError(t, err)
	assert.Equal(t, "answers", doc.Content)

	_, err = service.Get(ctx, "Nope")
	assert.ErrorIs(t, err, entities.ErrDocumentationNotFound)

	_, err = service.Get(ctx, "Broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get documentation")
}

func TestDocumentationService_CombinedContent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("no documents", func(t *testing.T) {
		t.Parallel()
		mockRepo := new(testhelpers.MockDocumentationRepository)
		mockRepo.On("List", ctx).Return([]*entities.ServerDocumentation{}, nil)

		content, err := NewDocumentationService(mockRepo, new(testhelpers.MockEventPublisher)).CombinedContent(ctx)
		require.NoError(t, err)
		assert.Equal(t, "", content)
	})

	t.Run("documents joined with separators", func(t *testing.T) {
		t.Parallel()
		mockRepo := new(testhelpers.MockDocumentationRepository)
		mockRepo.On("List", ctx).Return([]*entities.ServerDocumentation{
			{Title: "FAQ", Content: "Ask away"},
			{Title: "Rules", Content: "Be nice"},
		}, nil)

		content, err := NewDocumentationService(mockRepo, new(testhelpers.MockEventPublisher)).CombinedContent(ctx)
		require.NoError(t, err)
		assert.Equal(t, "# FAQ\n\nAsk away\n\n---\n\n# Rules\n\nBe nice", content)
	})
}
