package state

import "boatchat-client/internal/entity"

// AppState is the single source of truth for conversation, history,
// recommendation and feedback state. It is only ever replaced as a whole by
// the reducer; no transition mutates a previous value in place, so observers
// can rely on referential difference for change detection.
type AppState struct {
	IsChatHistoryOpen       bool                           `json:"isChatHistoryOpen"`
	ChatHistory             []entity.Conversation          `json:"chatHistory"`
	CurrentChat             *entity.Conversation           `json:"currentChat"`
	ChatHistoryLoadingState entity.ChatHistoryLoadingState `json:"chatHistoryLoadingState"`
	IsCosmosDBAvailable     entity.CosmosDBHealth          `json:"isCosmosDBAvailable"`
	FrontendSettings        *entity.FrontendSettings       `json:"frontendSettings"`

	// FeedbackState is the per-message feedback ledger, keyed by message id.
	// It is owned here and mutated only through SET_FEEDBACK_STATE.
	FeedbackState map[string]entity.Feedback `json:"feedbackState"`

	Recommendation           []entity.BoatSuggestion `json:"recommendation"`
	IsLoadingRecommendations bool                    `json:"isLoadingRecommendations"`

	ValuePropositions          []entity.ValueProposition `json:"valuePropositions"`
	IsLoadingValuePropositions bool                      `json:"isLoadingValuePropositions"`

	Walkthrough          []entity.WalkaroundStep `json:"walkthrough"`
	IsLoadingWalkthrough bool                    `json:"isLoadingWalkthrough"`

	SelectedTags   []string `json:"selectedTags"`
	ConversationId string   `json:"conversationId"`
	PromptValue    string   `json:"promptValue"`
	Traits         []string `json:"traits"`
	SelectedBoat   string   `json:"selectedBoat"`
	SelectedBrand  string   `json:"selectedBrand"`
}

// NewAppState returns the startup state: empty history, no current chat,
// cosmos availability unknown until /history/ensure reports it.
func NewAppState() AppState {
	return AppState{
		ChatHistory:             []entity.Conversation{},
		ChatHistoryLoadingState: entity.ChatHistoryNotStarted,
		IsCosmosDBAvailable:     entity.CosmosDBHealth{CosmosDB: false, Status: entity.CosmosNotConfigured},
		FeedbackState:           map[string]entity.Feedback{},
	}
}
