package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"boatchat-client/internal/api"
	"boatchat-client/internal/constant"
	"boatchat-client/internal/dto"
	"boatchat-client/internal/entity"
	"boatchat-client/internal/mapper"
	"boatchat-client/internal/pkg/logger"
	"boatchat-client/internal/state"
)

// IAssistantService drives a conversation turn end to end: append the user
// message, call the completion endpoint, fold the response back into the
// current chat and hand the finished turn to the synchronizer. The intent
// loaders run one-off completions that land in their own state slices
// instead of the conversation.
type IAssistantService interface {
	Ask(ctx context.Context, prompt string) (*entity.AskResponse, error)
	LoadValuePropositions(ctx context.Context, boat string)
	LoadWalkthrough(ctx context.Context, boat string)
	LoadRecommendations(ctx context.Context, traits []string)
}

type assistantService struct {
	store   *state.Store
	client  api.IClient
	syncSvc ISyncService
	mapper  *mapper.ConversationMapper
	log     logger.ILogger
}

func NewAssistantService(store *state.Store, client api.IClient, syncSvc ISyncService, log logger.ILogger) IAssistantService {
	return &assistantService{
		store:   store,
		client:  client,
		syncSvc: syncSvc,
		mapper:  mapper.NewConversationMapper(),
		log:     log,
	}
}

// Ask runs one full turn. The user message is visible in the current chat
// before the completion call goes out; the tool and assistant messages are
// appended from the response verbatim so a later save round-trips them
// unchanged.
func (as *assistantService) Ask(ctx context.Context, prompt string) (*entity.AskResponse, error) {
	as.syncSvc.BeginTurn()

	snapshot := as.store.State()
	var conversation entity.Conversation
	if snapshot.CurrentChat != nil {
		conversation = snapshot.CurrentChat.Clone()
	} else {
		conversation = entity.Conversation{
			Id:       uuid.NewString(),
			Title:    prompt,
			Messages: []entity.ChatMessage{},
			Date:     time.Now().UTC(),
		}
	}

	conversation.Messages = append(conversation.Messages, entity.ChatMessage{
		Id:      uuid.NewString(),
		Role:    constant.ChatMessageRoleUser,
		Content: prompt,
		Date:    time.Now().UTC(),
	})
	as.dispatch(state.UpdateCurrentChat{Conversation: cloneOf(conversation)})

	resp, err := as.client.Conversation(ctx, &dto.ConversationRequest{
		Messages:       as.mapper.ToWireMessages(withoutErrors(conversation.Messages)),
		ConversationId: conversation.Id,
	})
	if err != nil {
		as.syncSvc.CompleteTurn(ctx)
		return nil, fmt.Errorf("conversation request: %w", err)
	}

	ask := as.mapper.ToAskResponse(resp)
	conversation.Messages = append(conversation.Messages, responseMessages(resp, ask)...)
	as.dispatch(state.UpdateCurrentChat{Conversation: cloneOf(conversation)})

	as.syncSvc.CompleteTurn(ctx)
	return ask, nil
}

func (as *assistantService) LoadValuePropositions(ctx context.Context, boat string) {
	as.dispatch(state.SetValuePropositionLoading{Loading: true})
	ask, err := as.intent(ctx, fmt.Sprintf("List the value propositions of the %s.", boat))
	if err != nil {
		as.log.Error("assistant", "value proposition load failed", map[string]interface{}{
			"boat": boat, "error": err.Error(),
		})
		as.dispatch(state.SetValuePropositionState{Propositions: nil})
		return
	}
	as.dispatch(state.SetValuePropositionState{Propositions: ask.ValuePropositions})
}

func (as *assistantService) LoadWalkthrough(ctx context.Context, boat string) {
	as.dispatch(state.SetWalkthroughLoading{Loading: true})
	ask, err := as.intent(ctx, fmt.Sprintf("Give me a walkaround script for the %s.", boat))
	if err != nil {
		as.log.Error("assistant", "walkaround load failed", map[string]interface{}{
			"boat": boat, "error": err.Error(),
		})
		as.dispatch(state.SetWalkthroughState{Steps: nil})
		return
	}
	as.dispatch(state.SetWalkthroughState{Steps: ask.WalkaroundScript})
}

func (as *assistantService) LoadRecommendations(ctx context.Context, traits []string) {
	as.dispatch(state.SetRecommendationsLoading{Loading: true})
	prompt := "Recommend boats for a buyer"
	if len(traits) > 0 {
		prompt = fmt.Sprintf("Recommend boats for a buyer who values: %s.", strings.Join(traits, ", "))
	}
	ask, err := as.intent(ctx, prompt)
	if err != nil {
		as.log.Error("assistant", "recommendation load failed", map[string]interface{}{
			"error": err.Error(),
		})
		as.dispatch(state.SetRecommendationsState{Suggestions: nil})
		return
	}
	as.dispatch(state.SetRecommendationsState{Suggestions: ask.BoatSuggestions})
}

// intent runs a single-message completion outside the current chat.
func (as *assistantService) intent(ctx context.Context, prompt string) (*entity.AskResponse, error) {
	resp, err := as.client.Conversation(ctx, &dto.ConversationRequest{
		Messages: []dto.ConversationMessage{{
			Id:      uuid.NewString(),
			Role:    constant.ChatMessageRoleUser,
			Content: prompt,
			Date:    time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		}},
	})
	if err != nil {
		return nil, err
	}
	ask := as.mapper.ToAskResponse(resp)
	if ask.Error != "" {
		return nil, fmt.Errorf("completion error: %s", ask.Error)
	}
	return ask, nil
}

func (as *assistantService) dispatch(action state.Action) {
	if err := as.store.Dispatch(action); err != nil {
		as.log.Error("assistant", "failed to dispatch action", map[string]interface{}{
			"action": action.ActionType(),
			"error":  err.Error(),
		})
	}
}

// responseMessages lifts the tool and assistant wire messages into chat
// messages. The assistant message takes the response's message id when the
// backend assigned one so feedback can target it.
func responseMessages(resp *dto.ConversationResponse, ask *entity.AskResponse) []entity.ChatMessage {
	if resp == nil || len(resp.Choices) == 0 {
		if ask != nil && ask.Error != "" {
			return []entity.ChatMessage{{
				Id:      uuid.NewString(),
				Role:    constant.ChatMessageRoleError,
				Content: ask.Error,
				Date:    time.Now().UTC(),
			}}
		}
		return nil
	}

	out := make([]entity.ChatMessage, 0, len(resp.Choices[0].Messages))
	for _, msg := range resp.Choices[0].Messages {
		id := msg.Id
		if id == "" {
			id = uuid.NewString()
		}
		out = append(out, entity.ChatMessage{
			Id:      id,
			Role:    msg.Role,
			Content: msg.Content,
			Date:    time.Now().UTC(),
		})
	}
	return out
}

// withoutErrors drops error-role messages before a completion call; the
// backend rejects roles outside the user/assistant/tool set.
func withoutErrors(messages []entity.ChatMessage) []entity.ChatMessage {
	out := make([]entity.ChatMessage, 0, len(messages))
	for _, m := range messages {
		if m.Role == constant.ChatMessageRoleError {
			continue
		}
		out = append(out, m)
	}
	return out
}

func cloneOf(c entity.Conversation) *entity.Conversation {
	clone := c.Clone()
	return &clone
}
