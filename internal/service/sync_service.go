package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"boatchat-client/internal/api"
	"boatchat-client/internal/constant"
	"boatchat-client/internal/entity"
	"boatchat-client/internal/pkg/logger"
	"boatchat-client/internal/state"
)

// ISyncService mirrors the current conversation into the remote history
// store at turn boundaries. A save runs exactly once per completed turn,
// never mid-stream, and its failure is absorbed into the conversation as an
// error message rather than surfaced to the caller.
type ISyncService interface {
	BeginTurn()
	CompleteTurn(ctx context.Context)
	Status() string
}

type syncService struct {
	store  *state.Store
	client api.IClient
	log    logger.ILogger

	mu     sync.Mutex
	status string
}

func NewSyncService(store *state.Store, client api.IClient, log logger.ILogger) ISyncService {
	return &syncService{store: store, client: client, log: log, status: constant.MessageStatusNotRunning}
}

func (ss *syncService) BeginTurn() {
	ss.setStatus(constant.MessageStatusProcessing)
}

// CompleteTurn persists the current conversation and then updates the
// history list from it. The remote write is skipped when history storage is
// unavailable or the turn ended in a no-content error; the local history
// update happens in every case so the list stays consistent with what the
// user saw.
func (ss *syncService) CompleteTurn(ctx context.Context) {
	ss.setStatus(constant.MessageStatusDone)
	defer ss.setStatus(constant.MessageStatusNotRunning)

	snapshot := ss.store.State()
	if snapshot.CurrentChat == nil {
		return
	}
	conversation := snapshot.CurrentChat.Clone()

	if snapshot.IsCosmosDBAvailable.CosmosDB && !endsInNoContentError(conversation.Messages) {
		res, err := ss.client.HistoryUpdate(ctx, conversation.Messages, conversation.Id)
		if err != nil || !res.Ok {
			details := map[string]interface{}{"conversation_id": conversation.Id}
			if err != nil {
				details["error"] = err.Error()
			} else {
				details["status"] = res.Status
				details["backend"] = res.Error
			}
			ss.log.Error("sync", "history save failed", details)

			conversation.Messages = append(conversation.Messages, entity.ChatMessage{
				Id:      uuid.NewString(),
				Role:    constant.ChatMessageRoleError,
				Content: constant.SaveErrorMessage,
				Date:    time.Now().UTC(),
			})
			ss.dispatch(state.UpdateCurrentChat{Conversation: &conversation})
		}
	}

	ss.dispatch(state.UpdateChatHistory{Conversation: conversation})
}

func (ss *syncService) Status() string {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.status
}

func (ss *syncService) setStatus(status string) {
	ss.mu.Lock()
	ss.status = status
	ss.mu.Unlock()
}

func (ss *syncService) dispatch(action state.Action) {
	if err := ss.store.Dispatch(action); err != nil {
		ss.log.Error("sync", "failed to dispatch action", map[string]interface{}{
			"action": action.ActionType(),
			"error":  err.Error(),
		})
	}
}

// endsInNoContentError reports whether the turn finished on the backend's
// no-content sentinel. Such a turn produced nothing worth persisting.
func endsInNoContentError(messages []entity.ChatMessage) bool {
	if len(messages) == 0 {
		return false
	}
	last := messages[len(messages)-1]
	return last.Role == constant.ChatMessageRoleError && strings.Contains(last.Content, constant.NoContentError)
}
