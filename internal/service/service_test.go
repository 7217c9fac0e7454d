package service

import (
	"context"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/require"

	"boatchat-client/internal/dto"
	"boatchat-client/internal/entity"
	"boatchat-client/internal/pkg/logger"
	"boatchat-client/internal/state"
)

// fakeClient stubs the backend; tests override only the calls they exercise.
type fakeClient struct {
	conversationFn    func(ctx context.Context, req *dto.ConversationRequest) (*dto.ConversationResponse, error)
	historyUpdateFn   func(ctx context.Context, messages []entity.ChatMessage, conversationId string) (*dto.HistoryResult, error)
	feedbackFn        func(ctx context.Context, messageId, feedback string) (*dto.HistoryResult, error)
	ensureFn          func(ctx context.Context) (entity.CosmosDBHealth, error)
	listFn            func(ctx context.Context, offset int) ([]entity.Conversation, error)
	readFn            func(ctx context.Context, conversationId string) ([]entity.ChatMessage, error)
	renameFn          func(ctx context.Context, conversationId, title string) (*dto.HistoryResult, error)
	deleteFn          func(ctx context.Context, conversationId string) (*dto.HistoryResult, error)
	deleteAllFn       func(ctx context.Context) (*dto.HistoryResult, error)
	clearFn           func(ctx context.Context, conversationId string) (*dto.HistoryResult, error)
	frontendFn        func(ctx context.Context) (*entity.FrontendSettings, error)
	userInfoFn        func(ctx context.Context) ([]dto.UserInfo, error)
}

func okResult() *dto.HistoryResult {
	return &dto.HistoryResult{Ok: true, Status: 200}
}

func (f *fakeClient) Conversation(ctx context.Context, req *dto.ConversationRequest) (*dto.ConversationResponse, error) {
	if f.conversationFn != nil {
		return f.conversationFn(ctx, req)
	}
	return &dto.ConversationResponse{}, nil
}

func (f *fakeClient) HistoryUpdate(ctx context.Context, messages []entity.ChatMessage, conversationId string) (*dto.HistoryResult, error) {
	if f.historyUpdateFn != nil {
		return f.historyUpdateFn(ctx, messages, conversationId)
	}
	return okResult(), nil
}

func (f *fakeClient) HistoryMessageFeedback(ctx context.Context, messageId, feedback string) (*dto.HistoryResult, error) {
	if f.feedbackFn != nil {
		return f.feedbackFn(ctx, messageId, feedback)
	}
	return okResult(), nil
}

func (f *fakeClient) HistoryEnsure(ctx context.Context) (entity.CosmosDBHealth, error) {
	if f.ensureFn != nil {
		return f.ensureFn(ctx)
	}
	return entity.CosmosDBHealth{CosmosDB: true, Status: entity.CosmosWorking}, nil
}

func (f *fakeClient) HistoryList(ctx context.Context, offset int) ([]entity.Conversation, error) {
	if f.listFn != nil {
		return f.listFn(ctx, offset)
	}
	return []entity.Conversation{}, nil
}

func (f *fakeClient) HistoryRead(ctx context.Context, conversationId string) ([]entity.ChatMessage, error) {
	if f.readFn != nil {
		return f.readFn(ctx, conversationId)
	}
	return []entity.ChatMessage{}, nil
}

func (f *fakeClient) HistoryRename(ctx context.Context, conversationId, title string) (*dto.HistoryResult, error) {
	if f.renameFn != nil {
		return f.renameFn(ctx, conversationId, title)
	}
	return okResult(), nil
}

func (f *fakeClient) HistoryDelete(ctx context.Context, conversationId string) (*dto.HistoryResult, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, conversationId)
	}
	return okResult(), nil
}

func (f *fakeClient) HistoryDeleteAll(ctx context.Context) (*dto.HistoryResult, error) {
	if f.deleteAllFn != nil {
		return f.deleteAllFn(ctx)
	}
	return okResult(), nil
}

func (f *fakeClient) HistoryClear(ctx context.Context, conversationId string) (*dto.HistoryResult, error) {
	if f.clearFn != nil {
		return f.clearFn(ctx, conversationId)
	}
	return okResult(), nil
}

func (f *fakeClient) FrontendSettings(ctx context.Context) (*entity.FrontendSettings, error) {
	if f.frontendFn != nil {
		return f.frontendFn(ctx)
	}
	return &entity.FrontendSettings{FeedbackEnabled: true}, nil
}

func (f *fakeClient) GetUserInfo(ctx context.Context) ([]dto.UserInfo, error) {
	if f.userInfoFn != nil {
		return f.userInfoFn(ctx)
	}
	return []dto.UserInfo{}, nil
}

func newTestStore(t *testing.T) *state.Store {
	t.Helper()
	store := state.NewStore(state.NewAppState(), watermill.NopLogger{})
	require.NoError(t, store.Run(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testLogger() logger.ILogger {
	return logger.NewNopLogger()
}
