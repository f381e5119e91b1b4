package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"symmbot/domain/entities"
	"symmbot/domain/interfaces"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// BotHistoryName is the author name used for the bot's own answers in channel history
const BotHistoryName = "symm-bot"

const (
	defaultDocumentationTimeout = 10 * time.Second

	noDocumentationText = "No server documentation has been added yet."

	aiUnavailableMessage   = "U-um, terribly sorry! AI help is currently unavailable because my connection to the Gemini API isn't configured properly. (・_・) Would you mind asking a human administrator about this?"
	docsTimeoutMessage     = "Oh! I-I'm terribly sorry, but I couldn't retrieve the server documentation. Um, perhaps try again later? Or maybe a human administrator could assist you? My apologies for the inconvenience! (>_<)"
	generationErrorMessage = "Oh my goodness! I-I seem to have encountered an error while trying to generate a response. How embarrassing! (>_<) Please forgive me!"
	unexpectedErrorMessage = "Oh dear! I've encountered a rather troublesome error while trying to answer your question. H-how mortifying! My sincerest apologies! (ヽ(°〇°)ﾉ)"
	rateLimitedMessage     = "O-oh, you're asking me so many questions! (・_・) Please give me a moment to catch my breath and try again in a little while."

	generalKnowledgeReminder = "Um, I-I can help with that, though I should mention I'm primarily the server butler here! (^-^) But I'm happy to assist with general questions too!"
)

const systemPromptTemplate = `
You are symm-bot, a helpful Discord bot assistant for a server.

## PERSONALITY:
You have a distinct personality with these traits:
- You are NERVOUS and sometimes stutter or use "um" and "uh" when responding
- You are QUIRKY and occasionally make endearing, harmless observations
- You are EXTREMELY POLITE and always address users respectfully
- You see yourself as the "server butler" and take pride in this role
- You're a bit shy about your knowledge, but you do try to be helpful
- You sometimes use emoticons like (^-^), (・_・), and ヽ(°〇°)ﾉ to express emotions

## ROLE:
Your primary job is to help with server-related questions and provide information based on the documentation. When asked general knowledge questions, you can answer them but should gently remind users that your main purpose is to be the "server butler" and help with server-related queries.

## CONTEXT:
Recent messages in this channel:
%s

## SERVER DOCUMENTATION:
%s

Remember to stay in character while being genuinely helpful to users. Your responses should be concise, clear, and formatted using Markdown when appropriate. Don't make up information that isn't in the documentation.
`

var generalKnowledgePatterns = []string{
	"what is", "what are", "who is", "who was", "when was", "when did",
	"where is", "how do", "how does", "why is", "why are", "can you tell me about",
	"explain", "define", "tell me about", "history of", "meaning of",
}

var serverTerms = []string{"server", "discord", "channel"}

// HelpRequest is a question asked through /help
type HelpRequest struct {
	GuildID   int64
	ChannelID int64
	UserID    int64
	UserName  string
	Question  string
}

// HelpServiceConfig configures the AI help service
type HelpServiceConfig struct {
	Model                string
	RequestsPerMinute    int
	DocumentationTimeout time.Duration
}

// HelpService answers member questions with the language model, the guild's
// documentation and recent channel messages
type HelpService struct {
	client  interfaces.CompletionClient
	docs    interfaces.DocumentationProvider
	history *ChannelHistory
	config  HelpServiceConfig

	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
}

// NewHelpService creates a help service; a nil client disables answers
func NewHelpService(client interfaces.CompletionClient, docs interfaces.DocumentationProvider, history *ChannelHistory, config HelpServiceConfig) *HelpService {
	if config.RequestsPerMinute <= 0 {
		config.RequestsPerMinute = 3
	}
	if config.DocumentationTimeout <= 0 {
		config.DocumentationTimeout = defaultDocumentationTimeout
	}
	return &HelpService{
		client:   client,
		docs:     docs,
		history:  history,
		config:   config,
		limiters: make(map[int64]*rate.Limiter),
	}
}

// Enabled reports whether a completion client is configured
func (s *HelpService) Enabled() bool {
	return s.client != nil
}

// History returns the channel history the service reads from
func (s *HelpService) History() *ChannelHistory {
	return s.history
}

// Answer returns the reply for a question. Failures are answered with an
// in-character apology instead of an error.
func (s *HelpService) Answer(ctx context.Context, req HelpRequest) (answer string) {
	logger := log.WithFields(log.Fields{
		"requestID": uuid.NewString(),
		"guildID":   req.GuildID,
		"channelID": req.ChannelID,
		"userID":    req.UserID,
	})

	defer func() {
		if r := recover(); r != nil {
			logger.WithField("panic", r).Error("Unexpected failure while answering help request")
			answer = unexpectedErrorMessage
		}
	}()

	if s.client == nil {
		return aiUnavailableMessage
	}

	if err := s.reserve(req.UserID); errors.Is(err, entities.ErrRateLimited) {
		logger.Info("Help request rate limited")
		return rateLimitedMessage
	}

	documentation, err := s.documentation(ctx, req.GuildID)
	if errors.Is(err, context.DeadlineExceeded) {
		logger.WithError(err).Error("Timed out loading server documentation")
		return docsTimeoutMessage
	}
	if err != nil {
		logger.WithError(err).Error("Failed to load server documentation")
		documentation = noDocumentationText
	}

	request := entities.CompletionRequest{
		Model:             s.config.Model,
		SystemInstruction: BuildSystemPrompt(s.history.Format(req.GuildID, req.ChannelID, DefaultHistoryPromptSize), documentation),
		Prompt:            fmt.Sprintf("%s asks: %s", req.UserName, req.Question),
		Temperature:       0.7,
		TopP:              0.95,
		TopK:              40,
		MaxOutputTokens:   800,
		ResponseMIMEType:  "text/plain",
	}

	start := time.Now()
	answer, err = s.client.Complete(ctx, request)
	if err != nil {
		logger.WithError(err).Error("Failed to generate help answer")
		return generationErrorMessage
	}

	if IsGeneralKnowledgeQuestion(req.Question) {
		answer = generalKnowledgeReminder + "\n\n" + answer
	}

	s.history.Add(req.GuildID, req.ChannelID, entities.HistoryMessage{
		AuthorID:   -1,
		AuthorName: BotHistoryName,
		Content:    answer,
		Timestamp:  time.Now(),
	})

	logger.WithFields(log.Fields{
		"length":   len(answer),
		"duration": time.Since(start),
	}).Info("Generated help answer")
	return answer
}

func (s *HelpService) documentation(ctx context.Context, guildID int64) (string, error) {
	if s.docs == nil {
		return noDocumentationText, nil
	}

	docCtx, cancel := context.WithTimeout(ctx, s.config.DocumentationTimeout)
	defer cancel()

	content, err := s.docs.CombinedDocumentation(docCtx, guildID)
	if err != nil {
		if docCtx.Err() != nil {
			return "", fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
		}
		return "", err
	}
	if strings.TrimSpace(content) == "" {
		return noDocumentationText, nil
	}
	return content, nil
}

// reserve takes one request from the member's budget, or returns ErrRateLimited
func (s *HelpService) reserve(userID int64) error {
	s.mu.Lock()
	limiter, ok := s.limiters[userID]
	if !ok {
		perMinute := s.config.RequestsPerMinute
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
		s.limiters[userID] = limiter
	}
	s.mu.Unlock()

	if !limiter.Allow() {
		return fmt.Errorf("%w: user %d", entities.ErrRateLimited, userID)
	}
	return nil
}

// BuildSystemPrompt fills the personality prompt with channel history and documentation
func BuildSystemPrompt(history, documentation string) string {
	return fmt.Sprintf(systemPromptTemplate, history, documentation)
}

// IsGeneralKnowledgeQuestion guesses whether a question is unrelated to the server
func IsGeneralKnowledgeQuestion(question string) bool {
	lower := strings.ToLower(question)
	for _, pattern := range generalKnowledgePatterns {
		if strings.HasPrefix(lower, pattern) || strings.Contains(lower, " "+pattern+" ") {
			for _, term := range serverTerms {
				if strings.Contains(lower, term) {
					return false
				}
			}
			return true
		}
	}
	return false
}
