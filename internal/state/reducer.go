package state

import "boatchat-client/internal/entity"

// Reduce applies one action to the state and returns the next state. It is
// pure and total: every known action produces a new value without touching
// the previous one, and unknown actions return the state unchanged.
func Reduce(s AppState, action Action) AppState {
	switch a := action.(type) {
	case ToggleChatHistory:
		s.IsChatHistoryOpen = !s.IsChatHistoryOpen
		return s

	case UpdateCurrentChat:
		s.CurrentChat = a.Conversation
		return s

	case UpdateChatHistory:
		// Content-sync: an id already in history is replaced with the
		// current in-progress conversation; a new id is appended. Ids are
		// never duplicated and unrelated entries are never dropped.
		if s.CurrentChat == nil {
			return s
		}
		for i, conv := range s.ChatHistory {
			if conv.Id == a.Conversation.Id {
				history := cloneHistory(s.ChatHistory)
				history[i] = s.CurrentChat.Clone()
				s.ChatHistory = history
				return s
			}
		}
		s.ChatHistory = append(cloneHistory(s.ChatHistory), a.Conversation.Clone())
		return s

	case UpdateChatTitle:
		history := cloneHistory(s.ChatHistory)
		for i := range history {
			if history[i].Id == a.Id {
				history[i].Title = a.Title
				if s.CurrentChat != nil && s.CurrentChat.Id == a.Id {
					current := s.CurrentChat.Clone()
					current.Title = a.Title
					s.CurrentChat = &current
				}
			}
		}
		s.ChatHistory = history
		return s

	case DeleteChatEntry:
		filtered := make([]entity.Conversation, 0, len(s.ChatHistory))
		for _, conv := range s.ChatHistory {
			if conv.Id != a.Id {
				filtered = append(filtered, conv)
			}
		}
		s.ChatHistory = filtered
		// The current chat is cleared no matter which entry was deleted.
		// Callers depend on this coupling.
		s.CurrentChat = nil
		return s

	case DeleteChatHistory:
		s.ChatHistory = []entity.Conversation{}
		s.CurrentChat = nil
		return s

	case DeleteCurrentChatMessages:
		if s.CurrentChat == nil {
			return s
		}
		current := s.CurrentChat.Clone()
		current.Messages = []entity.ChatMessage{}
		s.CurrentChat = &current
		return s

	case FetchChatHistory:
		s.ChatHistory = a.Conversations
		return s

	case UpdateChatHistoryLoading:
		s.ChatHistoryLoadingState = a.State
		return s

	case SetCosmosDBStatus:
		s.IsCosmosDBAvailable = a.Health
		return s

	case FetchFrontendSettings:
		s.FrontendSettings = a.Settings
		return s

	case SetFeedbackState:
		ledger := make(map[string]entity.Feedback, len(s.FeedbackState)+1)
		for id, fb := range s.FeedbackState {
			ledger[id] = fb
		}
		ledger[a.AnswerId] = a.Feedback
		s.FeedbackState = ledger
		return s

	case SetRecommendationsState:
		s.Recommendation = a.Suggestions
		s.IsLoadingRecommendations = false
		return s

	case SetRecommendationsLoading:
		s.IsLoadingRecommendations = a.Loading
		return s

	case SetValuePropositionState:
		s.ValuePropositions = a.Propositions
		s.IsLoadingValuePropositions = false
		return s

	case SetValuePropositionLoading:
		s.IsLoadingValuePropositions = a.Loading
		return s

	case SetWalkthroughState:
		s.Walkthrough = a.Steps
		s.IsLoadingWalkthrough = false
		return s

	case SetWalkthroughLoading:
		s.IsLoadingWalkthrough = a.Loading
		return s

	case SetSelectedTags:
		s.SelectedTags = a.Tags
		return s

	case SetConversationId:
		s.ConversationId = a.Id
		return s

	case SetPromptValue:
		s.PromptValue = a.Value
		return s

	case SetTraitsValue:
		s.Traits = a.Traits
		return s

	case SetSelectedBoat:
		s.SelectedBoat = a.Model
		return s

	case SetSelectedBrand:
		s.SelectedBrand = a.Brand
		return s

	default:
		return s
	}
}

func cloneHistory(history []entity.Conversation) []entity.Conversation {
	out := make([]entity.Conversation, len(history))
	copy(out, history)
	return out
}
