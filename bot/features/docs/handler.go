package docs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"symmbot/bot/common"
	"symmbot/domain/entities"
	"symmbot/domain/interfaces"
	"symmbot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleAdd handles /docs add, replacing any document with the same title
func (f *Feature) handleAdd(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !f.requireAdmin(s, i) {
		return
	}

	_, opts := common.Subcommand(i)
	title, content := opts.String("title"), opts.String("content")
	userID, _ := common.ParseID(common.InteractionUserID(i))

	var doc *entities.ServerDocumentation
	err := f.run(i, true, func(ctx context.Context, guildID int64, svc interfaces.DocumentationService) error {
		var err error
		doc, err = svc.Save(ctx, guildID, title, content, userID)
		return err
	})
	if err != nil {
		common.HandleError(s, i, documentationError(err, "Failed to save documentation"), false)
		return
	}

	log.WithFields(log.Fields{
		"guildID": i.GuildID,
		"title":   doc.Title,
		"userID":  userID,
	}).Info("Saved documentation")

	respond(s, i, fmt.Sprintf("✅ Saved documentation **%s** (%d characters).", doc.Title, len([]rune(doc.Content))))
}

// handleDelete handles /docs delete
func (f *Feature) handleDelete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !f.requireAdmin(s, i) {
		return
	}

	_, opts := common.Subcommand(i)
	title := opts.String("title")
	userID, _ := common.ParseID(common.InteractionUserID(i))

	err := f.run(i, true, func(ctx context.Context, guildID int64, svc interfaces.DocumentationService) error {
		return svc.Delete(ctx, guildID, title, userID)
	})
	if err != nil {
		common.HandleError(s, i, documentationError(err, "Failed to delete documentation"), false)
		return
	}

	respond(s, i, fmt.Sprintf("✅ Deleted documentation **%s**.", strings.TrimSpace(title)))
}

// handleList handles /docs list
func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var docs []*entities.ServerDocumentation
	err := f.run(i, false, func(ctx context.Context, _ int64, svc interfaces.DocumentationService) error {
		var err error
		docs, err = svc.List(ctx)
		return err
	})
	if err != nil {
		common.HandleError(s, i, documentationError(err, "Failed to list documentation"), false)
		return
	}

	common.RespondEphemeralChunks(s, i, FormatDocumentList(docs))
}

// handleView handles /docs view, splitting long documents over several messages
func (f *Feature) handleView(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_, opts := common.Subcommand(i)
	title := opts.String("title")

	var doc *entities.ServerDocumentation
	err := f.run(i, false, func(ctx context.Context, _ int64, svc interfaces.DocumentationService) error {
		var err error
		doc, err = svc.Get(ctx, title)
		return err
	})
	if err != nil {
		common.HandleError(s, i, documentationError(err, "Failed to load documentation"), false)
		return
	}

	common.RespondEphemeralChunks(s, i, FormatDocument(doc))
}

func (f *Feature) requireAdmin(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if common.IsUserAdmin(s, i.GuildID, common.InteractionUserID(i), f.ownerID) {
		return true
	}
	common.RespondWithError(s, i, "You need administrator permissions to use this command")
	return false
}

// run executes fn in a guild unit of work, committing when commit is set
func (f *Feature) run(i *discordgo.InteractionCreate, commit bool, fn func(ctx context.Context, guildID int64, svc interfaces.DocumentationService) error) error {
	guildID, err := common.ParseID(i.GuildID)
	if err != nil {
		return fmt.Errorf("failed to parse guild ID: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), common.PlatformTimeout)
	defer cancel()

	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := fn(ctx, guildID, services.NewDocumentationService(uow.DocumentationRepository(), uow.EventBus())); err != nil {
		return err
	}
	if !commit {
		return nil
	}
	return uow.Commit()
}

func documentationError(err error, logMessage string) error {
	switch {
	case errors.Is(err, entities.ErrDocumentationNotFound):
		return common.NewUserError("No documentation with that title exists", logMessage)
	case errors.Is(err, entities.ErrInvalidTitle):
		return common.NewUserError(
			fmt.Sprintf("Titles must be between 1 and %d characters", entities.MaxDocumentationTitleLength), logMessage)
	case errors.Is(err, entities.ErrEmptyContent):
		return common.NewUserError("Documentation content cannot be empty", logMessage)
	default:
		return common.NewSystemError(err, logMessage)
	}
}

// FormatDocumentList renders the document titles of a guild
func FormatDocumentList(docs []*entities.ServerDocumentation) string {
	if len(docs) == 0 {
		return "No documentation has been added yet."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Documentation (%d)**\n", len(docs))
	for _, doc := range docs {
		fmt.Fprintf(&b, "• %s\n", doc.Title)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatDocument renders a document with its title as a heading
func FormatDocument(doc *entities.ServerDocumentation) string {
	return fmt.Sprintf("# %s\n\n%s", doc.Title, doc.Content)
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:         content,
			Flags:           discordgo.MessageFlagsEphemeral,
			AllowedMentions: &discordgo.MessageAllowedMentions{},
		},
	})
	if err != nil {
		log.WithError(err).Error("Failed to respond to docs command")
	}
}
