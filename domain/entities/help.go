package entities

import "time"

// HistoryMessage is one message remembered for AI help context
type HistoryMessage struct {
	AuthorID   int64
	AuthorName string
	Content    string
	Timestamp  time.Time
}

// CompletionRequest is a single-turn request to the language model
type CompletionRequest struct {
	Model             string
	SystemInstruction string
	Prompt            string
	Temperature       float32
	TopP              float32
	TopK              float32
	MaxOutputTokens   int32
	ResponseMIMEType  string
}
