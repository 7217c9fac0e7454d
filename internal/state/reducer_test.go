package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"boatchat-client/internal/entity"
)

func conversation(id, title string) entity.Conversation {
	return entity.Conversation{
		Id:       id,
		Title:    title,
		Messages: []entity.ChatMessage{},
		Date:     time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestReduceToggleChatHistory(t *testing.T) {
	s := NewAppState()

	s = Reduce(s, ToggleChatHistory{})
	assert.True(t, s.IsChatHistoryOpen)

	s = Reduce(s, ToggleChatHistory{})
	assert.False(t, s.IsChatHistoryOpen)
}

func TestReduceUpdateCurrentChat(t *testing.T) {
	s := NewAppState()
	conv := conversation("c1", "First")

	s = Reduce(s, UpdateCurrentChat{Conversation: &conv})
	assert.Equal(t, "c1", s.CurrentChat.Id)

	s = Reduce(s, UpdateCurrentChat{Conversation: nil})
	assert.Nil(t, s.CurrentChat)
}

func TestReduceUpdateChatHistoryAppendsNewId(t *testing.T) {
	s := NewAppState()
	current := conversation("c1", "First")
	s = Reduce(s, UpdateCurrentChat{Conversation: &current})

	s = Reduce(s, UpdateChatHistory{Conversation: conversation("c1", "First")})

	assert.Len(t, s.ChatHistory, 1)
	assert.Equal(t, "c1", s.ChatHistory[0].Id)
}

func TestReduceUpdateChatHistoryReplacesExistingId(t *testing.T) {
	s := NewAppState()
	s.ChatHistory = []entity.Conversation{conversation("c1", "Old"), conversation("c2", "Other")}

	current := conversation("c1", "New title")
	current.Messages = []entity.ChatMessage{{Id: "m1", Role: "user", Content: "hello"}}
	s = Reduce(s, UpdateCurrentChat{Conversation: &current})

	s = Reduce(s, UpdateChatHistory{Conversation: conversation("c1", "ignored")})

	assert.Len(t, s.ChatHistory, 2)
	// The entry takes the current chat's content, not the action's.
	assert.Equal(t, "New title", s.ChatHistory[0].Title)
	assert.Len(t, s.ChatHistory[0].Messages, 1)
	assert.Equal(t, "Other", s.ChatHistory[1].Title)
}

func TestReduceUpdateChatHistoryNoCurrentChat(t *testing.T) {
	s := NewAppState()

	next := Reduce(s, UpdateChatHistory{Conversation: conversation("c1", "First")})

	assert.Empty(t, next.ChatHistory)
}

func TestReduceUpdateChatTitle(t *testing.T) {
	s := NewAppState()
	s.ChatHistory = []entity.Conversation{conversation("c1", "Old")}
	current := conversation("c1", "Old")
	s = Reduce(s, UpdateCurrentChat{Conversation: &current})

	s = Reduce(s, UpdateChatTitle{Id: "c1", Title: "Renamed"})

	assert.Equal(t, "Renamed", s.ChatHistory[0].Title)
	assert.Equal(t, "Renamed", s.CurrentChat.Title)
	// The original current chat value is untouched.
	assert.Equal(t, "Old", current.Title)
}

func TestReduceDeleteChatEntryClearsCurrentChat(t *testing.T) {
	s := NewAppState()
	s.ChatHistory = []entity.Conversation{conversation("c1", "First"), conversation("c2", "Second")}
	current := conversation("c2", "Second")
	s = Reduce(s, UpdateCurrentChat{Conversation: &current})

	// Deleting an unrelated entry still clears the current chat.
	s = Reduce(s, DeleteChatEntry{Id: "c1"})

	assert.Len(t, s.ChatHistory, 1)
	assert.Equal(t, "c2", s.ChatHistory[0].Id)
	assert.Nil(t, s.CurrentChat)
}

func TestReduceDeleteChatHistory(t *testing.T) {
	s := NewAppState()
	s.ChatHistory = []entity.Conversation{conversation("c1", "First")}
	current := conversation("c1", "First")
	s = Reduce(s, UpdateCurrentChat{Conversation: &current})

	s = Reduce(s, DeleteChatHistory{})

	assert.Empty(t, s.ChatHistory)
	assert.Nil(t, s.CurrentChat)
}

func TestReduceDeleteCurrentChatMessages(t *testing.T) {
	s := NewAppState()
	current := conversation("c1", "First")
	current.Messages = []entity.ChatMessage{{Id: "m1", Role: "user", Content: "hello"}}
	s = Reduce(s, UpdateCurrentChat{Conversation: &current})

	s = Reduce(s, DeleteCurrentChatMessages{})

	assert.Empty(t, s.CurrentChat.Messages)
	assert.Equal(t, "c1", s.CurrentChat.Id)
	assert.Len(t, current.Messages, 1)
}

func TestReduceSetFeedbackStateMerges(t *testing.T) {
	s := NewAppState()

	s = Reduce(s, SetFeedbackState{AnswerId: "m1", Feedback: entity.FeedbackPositive})
	before := s.FeedbackState
	s = Reduce(s, SetFeedbackState{AnswerId: "m2", Feedback: entity.FeedbackNegative})

	assert.Equal(t, entity.FeedbackPositive, s.FeedbackState["m1"])
	assert.Equal(t, entity.FeedbackNegative, s.FeedbackState["m2"])
	// The previous ledger value is never mutated.
	assert.NotContains(t, before, "m2")
}

func TestReduceLoadingFlagsResetOnData(t *testing.T) {
	s := NewAppState()

	s = Reduce(s, SetRecommendationsLoading{Loading: true})
	s = Reduce(s, SetRecommendationsState{Suggestions: []entity.BoatSuggestion{{Model: "220 Bay"}}})
	assert.False(t, s.IsLoadingRecommendations)
	assert.Len(t, s.Recommendation, 1)

	s = Reduce(s, SetValuePropositionLoading{Loading: true})
	s = Reduce(s, SetValuePropositionState{Propositions: nil})
	assert.False(t, s.IsLoadingValuePropositions)

	s = Reduce(s, SetWalkthroughLoading{Loading: true})
	s = Reduce(s, SetWalkthroughState{Steps: nil})
	assert.False(t, s.IsLoadingWalkthrough)
}

func TestReduceSelectionFields(t *testing.T) {
	s := NewAppState()

	s = Reduce(s, SetSelectedTags{Tags: []string{"fishing", "family"}})
	s = Reduce(s, SetConversationId{Id: "conv-9"})
	s = Reduce(s, SetPromptValue{Value: "tell me more"})
	s = Reduce(s, SetTraitsValue{Traits: []string{"offshore"}})
	s = Reduce(s, SetSelectedBoat{Model: "220 Bay"})
	s = Reduce(s, SetSelectedBrand{Brand: "BayCraft"})

	assert.Equal(t, []string{"fishing", "family"}, s.SelectedTags)
	assert.Equal(t, "conv-9", s.ConversationId)
	assert.Equal(t, "tell me more", s.PromptValue)
	assert.Equal(t, []string{"offshore"}, s.Traits)
	assert.Equal(t, "220 Bay", s.SelectedBoat)
	assert.Equal(t, "BayCraft", s.SelectedBrand)
}

func TestReduceUnknownActionIsNoOp(t *testing.T) {
	s := NewAppState()
	s.PromptValue = "unchanged"

	next := Reduce(s, UnknownAction{Type: "SOMETHING_NEW"})

	assert.Equal(t, s, next)
}
