package integration

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boatchat-client/internal/api"
	"boatchat-client/internal/bootstrap"
	"boatchat-client/internal/config"
	"boatchat-client/internal/entity"
	"boatchat-client/internal/mockapi"
	"boatchat-client/pkg/answer"
)

// startMockBackend serves the mock backend on an ephemeral port and returns
// its base URL.
func startMockBackend(t *testing.T) (*mockapi.Server, string) {
	t.Helper()

	srv := mockapi.New()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() {
		_ = srv.App().Listener(ln)
	}()
	t.Cleanup(func() { _ = srv.Shutdown() })

	baseURL := fmt.Sprintf("http://%s", ln.Addr().String())

	// Wait for the listener to accept.
	client := api.NewClient(baseURL, 2*time.Second)
	require.Eventually(t, func() bool {
		_, err := client.FrontendSettings(context.Background())
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)

	return srv, baseURL
}

func newEngine(t *testing.T, baseURL string) *bootstrap.Container {
	t.Helper()

	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("Note: could not load ../../.env: %v", err)
	}
	t.Setenv("BACKEND_BASE_URL", baseURL)
	t.Setenv("LOG_FILE_PATH", t.TempDir()+"/client.log")
	t.Setenv("PROFILE_PATH", t.TempDir()+"/userinfo.json")
	cfg := config.Load()

	container, err := bootstrap.NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })
	return container
}

func TestStartupSequence(t *testing.T) {
	_, baseURL := startMockBackend(t)
	engine := newEngine(t, baseURL)

	engine.Startup(context.Background())

	s := engine.Store.State()
	require.NotNil(t, s.FrontendSettings)
	assert.True(t, s.FrontendSettings.FeedbackEnabled)
	assert.True(t, s.IsCosmosDBAvailable.CosmosDB)
	assert.Equal(t, entity.ChatHistorySuccess, s.ChatHistoryLoadingState)
}

func TestFullConversationTurn(t *testing.T) {
	_, baseURL := startMockBackend(t)
	engine := newEngine(t, baseURL)
	ctx := context.Background()
	engine.Startup(ctx)

	ask, err := engine.AssistantService.Ask(ctx, "Tell me about the 220 Bay.")
	require.NoError(t, err)

	require.NotEmpty(t, ask.Answer)
	require.Len(t, ask.Citations, 2)

	parsed := engine.Parser.Parse(ask)
	assert.NotContains(t, parsed.MarkdownFormatText, "[doc1]")
	assert.Contains(t, parsed.MarkdownFormatText, "^1^")
	require.Len(t, parsed.Citations, 2)
	assert.Equal(t, answer.ModeAnswer, answer.ResolveMode(ask))

	// The completed turn was saved and is listed by the backend.
	s := engine.Store.State()
	require.NotNil(t, s.CurrentChat)
	require.NoError(t, engine.HistoryService.LoadChatHistory(ctx, 0))
	require.Len(t, engine.Store.State().ChatHistory, 1)
	assert.Equal(t, "Tell me about the 220 Bay.", engine.Store.State().ChatHistory[0].Title)
}

func TestStructuredIntentTurn(t *testing.T) {
	_, baseURL := startMockBackend(t)
	engine := newEngine(t, baseURL)
	ctx := context.Background()
	engine.Startup(ctx)

	ask, err := engine.AssistantService.Ask(ctx, "What are the value propositions of the 220 Bay?")
	require.NoError(t, err)

	assert.Equal(t, answer.ModeValuePropositions, answer.ResolveMode(ask))
	assert.NotEmpty(t, ask.ValuePropositions)
}

func TestFeedbackReachesBackend(t *testing.T) {
	srv, baseURL := startMockBackend(t)
	engine := newEngine(t, baseURL)
	ctx := context.Background()
	engine.Startup(ctx)

	ask, err := engine.AssistantService.Ask(ctx, "Tell me about the 220 Bay.")
	require.NoError(t, err)
	require.NotEmpty(t, ask.MessageId)

	engine.FeedbackService.Like(ctx, ask.MessageId)

	value, ok := srv.Feedback(ask.MessageId)
	require.True(t, ok)
	assert.Equal(t, "positive", value)

	engine.FeedbackService.Dislike(ctx, ask.MessageId)
	engine.FeedbackService.ToggleReason(entity.FeedbackMissingCitation)
	engine.FeedbackService.ToggleReason(entity.FeedbackOutOfScope)
	require.NoError(t, engine.FeedbackService.Submit(ctx))

	value, ok = srv.Feedback(ask.MessageId)
	require.True(t, ok)
	assert.Equal(t, "missing_citation,out_of_scope", value)
}

func TestHistoryLifecycle(t *testing.T) {
	_, baseURL := startMockBackend(t)
	engine := newEngine(t, baseURL)
	ctx := context.Background()
	engine.Startup(ctx)

	_, err := engine.AssistantService.Ask(ctx, "Tell me about the 220 Bay.")
	require.NoError(t, err)

	conversationId := engine.Store.State().CurrentChat.Id

	require.NoError(t, engine.HistoryService.Rename(ctx, conversationId, "Bay boat research"))
	require.NoError(t, engine.HistoryService.LoadChatHistory(ctx, 0))
	require.Len(t, engine.Store.State().ChatHistory, 1)
	assert.Equal(t, "Bay boat research", engine.Store.State().ChatHistory[0].Title)

	// Reload the conversation from the backend.
	require.NoError(t, engine.HistoryService.LoadConversation(ctx, conversationId))
	current := engine.Store.State().CurrentChat
	require.NotNil(t, current)
	assert.NotEmpty(t, current.Messages)

	require.NoError(t, engine.HistoryService.Delete(ctx, conversationId))
	s := engine.Store.State()
	assert.Empty(t, s.ChatHistory)
	assert.Nil(t, s.CurrentChat)
}
