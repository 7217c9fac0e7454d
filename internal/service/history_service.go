package service

import (
	"context"
	"fmt"

	"boatchat-client/internal/api"
	"boatchat-client/internal/dto"
	"boatchat-client/internal/entity"
	"boatchat-client/internal/pkg/logger"
	"boatchat-client/internal/state"
)

// IHistoryService orchestrates the remote history store against the app
// state: availability probing, list loading, and the per-conversation
// rename/delete/clear operations. Remote failures either degrade the
// loading state or come back as errors; they never leave the state half
// applied.
type IHistoryService interface {
	EnsureCosmos(ctx context.Context) entity.CosmosDBHealth
	LoadChatHistory(ctx context.Context, offset int) error
	LoadConversation(ctx context.Context, conversationId string) error
	Rename(ctx context.Context, conversationId, title string) error
	Delete(ctx context.Context, conversationId string) error
	DeleteAll(ctx context.Context) error
	ClearMessages(ctx context.Context, conversationId string) error
	LoadFrontendSettings(ctx context.Context) error
}

type historyService struct {
	store  *state.Store
	client api.IClient
	log    logger.ILogger
}

func NewHistoryService(store *state.Store, client api.IClient, log logger.ILogger) IHistoryService {
	return &historyService{store: store, client: client, log: log}
}

// EnsureCosmos probes history-store availability once at startup and records
// the verdict; the synchronizer reads it before every save.
func (hs *historyService) EnsureCosmos(ctx context.Context) entity.CosmosDBHealth {
	health, err := hs.client.HistoryEnsure(ctx)
	if err != nil {
		hs.log.Error("history", "history ensure probe failed", map[string]interface{}{"error": err.Error()})
		health = entity.CosmosDBHealth{CosmosDB: false, Status: entity.CosmosNotWorking}
	}
	hs.dispatch(state.SetCosmosDBStatus{Health: health})
	return health
}

func (hs *historyService) LoadChatHistory(ctx context.Context, offset int) error {
	hs.dispatch(state.UpdateChatHistoryLoading{State: entity.ChatHistoryLoading})

	conversations, err := hs.client.HistoryList(ctx, offset)
	if err != nil {
		hs.dispatch(state.UpdateChatHistoryLoading{State: entity.ChatHistoryFail})
		hs.dispatch(state.FetchChatHistory{Conversations: nil})
		return fmt.Errorf("load chat history: %w", err)
	}

	hs.dispatch(state.FetchChatHistory{Conversations: conversations})
	hs.dispatch(state.UpdateChatHistoryLoading{State: entity.ChatHistorySuccess})
	return nil
}

// LoadConversation reads a listed conversation's messages and promotes it to
// the current chat. The list entry supplies the title and date; the read
// supplies the messages.
func (hs *historyService) LoadConversation(ctx context.Context, conversationId string) error {
	messages, err := hs.client.HistoryRead(ctx, conversationId)
	if err != nil {
		return fmt.Errorf("load conversation %s: %w", conversationId, err)
	}

	conversation := entity.Conversation{Id: conversationId, Messages: messages}
	for _, listed := range hs.store.State().ChatHistory {
		if listed.Id == conversationId {
			conversation.Title = listed.Title
			conversation.Date = listed.Date
			break
		}
	}

	hs.dispatch(state.UpdateCurrentChat{Conversation: &conversation})
	return nil
}

func (hs *historyService) Rename(ctx context.Context, conversationId, title string) error {
	res, err := hs.client.HistoryRename(ctx, conversationId, title)
	if err := resultErr("rename conversation", res, err); err != nil {
		return err
	}
	hs.dispatch(state.UpdateChatTitle{Id: conversationId, Title: title})
	return nil
}

func (hs *historyService) Delete(ctx context.Context, conversationId string) error {
	res, err := hs.client.HistoryDelete(ctx, conversationId)
	if err := resultErr("delete conversation", res, err); err != nil {
		return err
	}
	hs.dispatch(state.DeleteChatEntry{Id: conversationId})
	return nil
}

func (hs *historyService) DeleteAll(ctx context.Context) error {
	res, err := hs.client.HistoryDeleteAll(ctx)
	if err := resultErr("delete all conversations", res, err); err != nil {
		return err
	}
	hs.dispatch(state.DeleteChatHistory{})
	return nil
}

func (hs *historyService) ClearMessages(ctx context.Context, conversationId string) error {
	res, err := hs.client.HistoryClear(ctx, conversationId)
	if err := resultErr("clear conversation messages", res, err); err != nil {
		return err
	}
	hs.dispatch(state.DeleteCurrentChatMessages{})
	return nil
}

func (hs *historyService) LoadFrontendSettings(ctx context.Context) error {
	settings, err := hs.client.FrontendSettings(ctx)
	if err != nil {
		return fmt.Errorf("load frontend settings: %w", err)
	}
	hs.dispatch(state.FetchFrontendSettings{Settings: settings})
	return nil
}

func resultErr(op string, res *dto.HistoryResult, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !res.Ok {
		return fmt.Errorf("%s: backend returned %d: %s", op, res.Status, res.Error)
	}
	return nil
}

func (hs *historyService) dispatch(action state.Action) {
	if err := hs.store.Dispatch(action); err != nil {
		hs.log.Error("history", "failed to dispatch action", map[string]interface{}{
			"action": action.ActionType(),
			"error":  err.Error(),
		})
	}
}
