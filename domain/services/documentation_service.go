package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"symmbot/domain/entities"
	"symmbot/domain/events"
	"symmbot/domain/interfaces"
)

const documentationSeparator = "\n\n---\n\n"

// documentationService implements the DocumentationService interface
type documentationService struct {
	docRepo        interfaces.DocumentationRepository
	eventPublisher interfaces.EventPublisher
}

// NewDocumentationService creates a new documentation service
func NewDocumentationService(docRepo interfaces.DocumentationRepository, eventPublisher interfaces.EventPublisher) interfaces.DocumentationService {
	return &documentationService{
		docRepo:        docRepo,
		eventPublisher: eventPublisher,
	}
}

// Save creates or replaces the document with the given title
func (s *documentationService) Save(ctx context.Context, guildID int64, title, content string, userID int64) (*entities.ServerDocumentation, error) {
	title, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, entities.ErrEmptyContent
	}

	id, err := s.docRepo.Upsert(ctx, title, content, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to save documentation %q: %w", title, err)
	}

	if err := s.eventPublisher.Publish(events.DocumentationChangedEvent{
		GuildID: guildID,
		Title:   title,
		UserID:  userID,
	}); err != nil {
		return nil, fmt.Errorf("failed to publish documentation change: %w", err)
	}

	return &entities.ServerDocumentation{
		ID:        id,
		GuildID:   guildID,
		Title:     title,
		Content:   content,
		CreatedBy: userID,
	}, nil
}

// Delete removes the document, returning ErrDocumentationNotFound if it did not exist
func (s *documentationService) Delete(ctx context.Context, guildID int64, title string, userID int64) error {
	title, err := normalizeTitle(title)
	if err != nil {
		return err
	}

	deleted, err := s.docRepo.Delete(ctx, title)
	if err != nil {
		return fmt.Errorf("failed to delete documentation %q: %w", title, err)
	}
	if !deleted {
		return entities.ErrDocumentationNotFound
	}

	if err := s.eventPublisher.Publish(events.DocumentationChangedEvent{
		GuildID: guildID,
		Title:   title,
		Deleted: true,
		UserID:  userID,
	}); err != nil {
		return fmt.Errorf("failed to publish documentation change: %w", err)
	}
	return nil
}

// Get returns the document with the given title, or ErrDocumentationNotFound
func (s *documentationService) Get(ctx context.Context, title string) (*entities.ServerDocumentation, error) {
	title, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}

	doc, err := s.docRepo.Get(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("failed to get documentation %q: %w", title, err)
	}
	if doc == nil {
		return nil, entities.ErrDocumentationNotFound
	}
	return doc, nil
}

// List returns all documents ordered by title
func (s *documentationService) List(ctx context.Context) ([]*entities.ServerDocumentation, error) {
	docs, err := s.docRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documentation: %w", err)
	}
	return docs, nil
}

// CombinedContent renders every document as markdown sections separated by rules
func (s *documentationService) CombinedContent(ctx context.Context) (string, error) {
	docs, err := s.List(ctx)
	if err != nil {
		return "", err
	}
	return CombineDocumentation(docs), nil
}

// CombineDocumentation joins documents as "# title\n\ncontent" sections
func CombineDocumentation(docs []*entities.ServerDocumentation) string {
	sections := make([]string, 0, len(docs))
	for _, doc := range docs {
		sections = append(sections, fmt.Sprintf("# %s\n\n%s", doc.Title, doc.Content))
	}
	return strings.Join(sections, documentationSeparator)
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title cannot be empty", entities.ErrInvalidTitle)
	}
	if utf8.RuneCountInString(title) > entities.MaxDocumentationTitleLength {
		return "", fmt.Errorf("%w: title is longer than %d characters", entities.ErrInvalidTitle, entities.MaxDocumentationTitleLength)
	}
	return title, nil
}
