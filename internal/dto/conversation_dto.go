package dto

import "boatchat-client/internal/entity"

// ConversationRequest is the POST /v2/conversation payload in the
// chat/completions message format.
type ConversationRequest struct {
	Messages       []ConversationMessage `json:"messages"`
	ConversationId string                `json:"conversation_id,omitempty"`
}

type ConversationMessage struct {
	Id      string `json:"id,omitempty"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Date    string `json:"date,omitempty"`
}

// ConversationResponse mirrors the backend's non-streaming completion
// envelope. Assistant turns arrive as a choice whose messages list carries a
// tool-role citation payload followed by the assistant text.
type ConversationResponse struct {
	Id      string               `json:"id"`
	Model   string               `json:"model,omitempty"`
	Created int64                `json:"created,omitempty"`
	Object  string               `json:"object,omitempty"`
	Choices []ConversationChoice `json:"choices"`
	Error   string               `json:"error,omitempty"`
}

type ConversationChoice struct {
	Messages []ConversationMessage `json:"messages"`
}

// ToolMessageContent is the JSON body of a tool-role message: the raw
// citation set and code execution results backing the assistant text.
type ToolMessageContent struct {
	Citations   []entity.Citation   `json:"citations"`
	Intent      string              `json:"intent,omitempty"`
	ExecResults []entity.ExecResult `json:"exec_results,omitempty"`
}

// AssistantPayload is the JSON an assistant message carries when the intent
// router answered with a structured payload instead of markdown.
type AssistantPayload struct {
	ValuePropositions []entity.ValueProposition `json:"value_propositions,omitempty"`
	WalkaroundScript  []entity.WalkaroundStep   `json:"walkaround_script,omitempty"`
	BoatSuggestions   []entity.BoatSuggestion   `json:"boat_suggestions,omitempty"`
	Title             string                    `json:"title,omitempty"`
	Subtitle          string                    `json:"subtitle,omitempty"`
}
