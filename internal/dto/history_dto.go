package dto

import (
	"time"

	"boatchat-client/internal/entity"
)

// HistoryUpdateRequest is the POST /history/update payload: the full message
// sequence of the in-progress conversation plus its id.
type HistoryUpdateRequest struct {
	ConversationId string               `json:"conversation_id"`
	Messages       []entity.ChatMessage `json:"messages"`
}

// HistoryResult is the common outcome of a history call. Ok mirrors the
// HTTP-level success of the request; Error carries the backend message when
// the call was answered but rejected.
type HistoryResult struct {
	Ok     bool   `json:"-"`
	Status int    `json:"-"`
	Error  string `json:"error,omitempty"`
}

type HistoryMessageFeedbackRequest struct {
	MessageId       string `json:"message_id"`
	MessageFeedback string `json:"message_feedback"`
}

// HistoryListItem is one conversation summary from GET /history/list.
// Messages are loaded separately through /history/read.
type HistoryListItem struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type HistoryReadRequest struct {
	ConversationId string `json:"conversation_id"`
}

type HistoryReadResponse struct {
	ConversationId string               `json:"conversation_id"`
	Messages       []entity.ChatMessage `json:"messages"`
}

type HistoryRenameRequest struct {
	ConversationId string `json:"conversation_id"`
	Title          string `json:"title"`
}

type HistoryDeleteRequest struct {
	ConversationId string `json:"conversation_id"`
}

type HistoryClearRequest struct {
	ConversationId string `json:"conversation_id"`
}

// HistoryEnsureResponse is the GET /history/ensure body; the mapped health
// value feeds the cosmos-availability reducer action.
type HistoryEnsureResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
