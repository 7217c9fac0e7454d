package state

import (
	"encoding/json"
	"fmt"

	"boatchat-client/internal/entity"
)

// Action is one state transition request. Actions cross the dispatch bus as
// JSON envelopes {type, payload}; the closed set of types below mirrors the
// reducer's switch. Unknown types decode to UnknownAction, which reduces to
// a no-op.
type Action interface {
	ActionType() string
}

const (
	TypeToggleChatHistory          = "TOGGLE_CHAT_HISTORY"
	TypeUpdateCurrentChat          = "UPDATE_CURRENT_CHAT"
	TypeUpdateChatHistory          = "UPDATE_CHAT_HISTORY"
	TypeUpdateChatTitle            = "UPDATE_CHAT_TITLE"
	TypeDeleteChatEntry            = "DELETE_CHAT_ENTRY"
	TypeDeleteChatHistory          = "DELETE_CHAT_HISTORY"
	TypeDeleteCurrentChatMessages  = "DELETE_CURRENT_CHAT_MESSAGES"
	TypeFetchChatHistory           = "FETCH_CHAT_HISTORY"
	TypeUpdateChatHistoryLoading   = "UPDATE_CHAT_HISTORY_LOADING_STATE"
	TypeSetCosmosDBStatus          = "SET_COSMOSDB_STATUS"
	TypeFetchFrontendSettings      = "FETCH_FRONTEND_SETTINGS"
	TypeSetFeedbackState           = "SET_FEEDBACK_STATE"
	TypeSetRecommendationsState    = "SET_RECOMMENDATIONS_STATE"
	TypeSetRecommendationsLoading  = "SET_RECOMMENDATIONS_LOADING"
	TypeSetValuePropositionState   = "SET_VALUE_PROPOSITION_STATE"
	TypeSetValuePropositionLoading = "SET_VALUE_PROPOSITION_LOADING"
	TypeSetWalkthroughState        = "SET_WALKTHROUGH_STATE"
	TypeSetWalkthroughLoading      = "SET_WALKTHROUGH_LOADING"
	TypeSetSelectedTags            = "SET_SELECTED_TAGS"
	TypeSetConversationId          = "SET_CONVERSATION_ID"
	TypeSetPromptValue             = "SET_PROMPT_VALUE"
	TypeSetTraitsValue             = "SET_TRAITS_VALUE"
	TypeSetSelectedBoat            = "SET_SELECTED_BOAT"
	TypeSetSelectedBrand           = "SET_SELECTED_BRAND"
)

type ToggleChatHistory struct{}

func (ToggleChatHistory) ActionType() string { return TypeToggleChatHistory }

type UpdateCurrentChat struct {
	Conversation *entity.Conversation `json:"conversation"`
}

func (UpdateCurrentChat) ActionType() string { return TypeUpdateCurrentChat }

type UpdateChatHistory struct {
	Conversation entity.Conversation `json:"conversation"`
}

func (UpdateChatHistory) ActionType() string { return TypeUpdateChatHistory }

type UpdateChatTitle struct {
	Id    string `json:"id"`
	Title string `json:"title"`
}

func (UpdateChatTitle) ActionType() string { return TypeUpdateChatTitle }

type DeleteChatEntry struct {
	Id string `json:"id"`
}

func (DeleteChatEntry) ActionType() string { return TypeDeleteChatEntry }

type DeleteChatHistory struct{}

func (DeleteChatHistory) ActionType() string { return TypeDeleteChatHistory }

type DeleteCurrentChatMessages struct{}

func (DeleteCurrentChatMessages) ActionType() string { return TypeDeleteCurrentChatMessages }

type FetchChatHistory struct {
	Conversations []entity.Conversation `json:"conversations"`
}

func (FetchChatHistory) ActionType() string { return TypeFetchChatHistory }

type UpdateChatHistoryLoading struct {
	State entity.ChatHistoryLoadingState `json:"state"`
}

func (UpdateChatHistoryLoading) ActionType() string { return TypeUpdateChatHistoryLoading }

type SetCosmosDBStatus struct {
	Health entity.CosmosDBHealth `json:"health"`
}

func (SetCosmosDBStatus) ActionType() string { return TypeSetCosmosDBStatus }

type FetchFrontendSettings struct {
	Settings *entity.FrontendSettings `json:"settings"`
}

func (FetchFrontendSettings) ActionType() string { return TypeFetchFrontendSettings }

type SetFeedbackState struct {
	AnswerId string          `json:"answerId"`
	Feedback entity.Feedback `json:"feedback"`
}

func (SetFeedbackState) ActionType() string { return TypeSetFeedbackState }

type SetRecommendationsState struct {
	Suggestions []entity.BoatSuggestion `json:"suggestions"`
}

func (SetRecommendationsState) ActionType() string { return TypeSetRecommendationsState }

type SetRecommendationsLoading struct {
	Loading bool `json:"loading"`
}

func (SetRecommendationsLoading) ActionType() string { return TypeSetRecommendationsLoading }

type SetValuePropositionState struct {
	Propositions []entity.ValueProposition `json:"propositions"`
}

func (SetValuePropositionState) ActionType() string { return TypeSetValuePropositionState }

type SetValuePropositionLoading struct {
	Loading bool `json:"loading"`
}

func (SetValuePropositionLoading) ActionType() string { return TypeSetValuePropositionLoading }

type SetWalkthroughState struct {
	Steps []entity.WalkaroundStep `json:"steps"`
}

func (SetWalkthroughState) ActionType() string { return TypeSetWalkthroughState }

type SetWalkthroughLoading struct {
	Loading bool `json:"loading"`
}

func (SetWalkthroughLoading) ActionType() string { return TypeSetWalkthroughLoading }

type SetSelectedTags struct {
	Tags []string `json:"tags"`
}

func (SetSelectedTags) ActionType() string { return TypeSetSelectedTags }

type SetConversationId struct {
	Id string `json:"id"`
}

func (SetConversationId) ActionType() string { return TypeSetConversationId }

type SetPromptValue struct {
	Value string `json:"value"`
}

func (SetPromptValue) ActionType() string { return TypeSetPromptValue }

type SetTraitsValue struct {
	Traits []string `json:"traits"`
}

func (SetTraitsValue) ActionType() string { return TypeSetTraitsValue }

type SetSelectedBoat struct {
	Model string `json:"model"`
}

func (SetSelectedBoat) ActionType() string { return TypeSetSelectedBoat }

type SetSelectedBrand struct {
	Brand string `json:"brand"`
}

func (SetSelectedBrand) ActionType() string { return TypeSetSelectedBrand }

// UnknownAction stands in for an envelope type outside the closed set.
type UnknownAction struct {
	Type string
}

func (a UnknownAction) ActionType() string { return a.Type }

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MarshalAction encodes an action as its bus envelope.
func MarshalAction(a Action) ([]byte, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal action %s: %w", a.ActionType(), err)
	}
	return json.Marshal(envelope{Type: a.ActionType(), Payload: payload})
}

func decodeInto[T Action](raw json.RawMessage) (Action, error) {
	var a T
	if len(raw) == 0 {
		return a, nil
	}
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}
	return a, nil
}

var decoders = map[string]func(json.RawMessage) (Action, error){
	TypeToggleChatHistory:          decodeInto[ToggleChatHistory],
	TypeUpdateCurrentChat:          decodeInto[UpdateCurrentChat],
	TypeUpdateChatHistory:          decodeInto[UpdateChatHistory],
	TypeUpdateChatTitle:            decodeInto[UpdateChatTitle],
	TypeDeleteChatEntry:            decodeInto[DeleteChatEntry],
	TypeDeleteChatHistory:          decodeInto[DeleteChatHistory],
	TypeDeleteCurrentChatMessages:  decodeInto[DeleteCurrentChatMessages],
	TypeFetchChatHistory:           decodeInto[FetchChatHistory],
	TypeUpdateChatHistoryLoading:   decodeInto[UpdateChatHistoryLoading],
	TypeSetCosmosDBStatus:          decodeInto[SetCosmosDBStatus],
	TypeFetchFrontendSettings:      decodeInto[FetchFrontendSettings],
	TypeSetFeedbackState:           decodeInto[SetFeedbackState],
	TypeSetRecommendationsState:    decodeInto[SetRecommendationsState],
	TypeSetRecommendationsLoading:  decodeInto[SetRecommendationsLoading],
	TypeSetValuePropositionState:   decodeInto[SetValuePropositionState],
	TypeSetValuePropositionLoading: decodeInto[SetValuePropositionLoading],
	TypeSetWalkthroughState:        decodeInto[SetWalkthroughState],
	TypeSetWalkthroughLoading:      decodeInto[SetWalkthroughLoading],
	TypeSetSelectedTags:            decodeInto[SetSelectedTags],
	TypeSetConversationId:          decodeInto[SetConversationId],
	TypeSetPromptValue:             decodeInto[SetPromptValue],
	TypeSetTraitsValue:             decodeInto[SetTraitsValue],
	TypeSetSelectedBoat:            decodeInto[SetSelectedBoat],
	TypeSetSelectedBrand:           decodeInto[SetSelectedBrand],
}

// UnmarshalAction decodes a bus envelope. Types outside the closed set are
// not an error; they come back as UnknownAction so the reducer can ignore
// them.
func UnmarshalAction(data []byte) (Action, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode action envelope: %w", err)
	}
	decode, ok := decoders[env.Type]
	if !ok {
		return UnknownAction{Type: env.Type}, nil
	}
	a, err := decode(env.Payload)
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", env.Type, err)
	}
	return a, nil
}
