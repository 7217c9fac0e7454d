package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"boatchat-client/internal/dto"
	"boatchat-client/internal/entity"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// IClient is the engine's view of the external backend: the conversation
// endpoint, the history store contract, settings and identity. All calls are
// plain request/response; transport errors come back as Go errors, rejected
// calls as results with Ok=false.
type IClient interface {
	Conversation(ctx context.Context, req *dto.ConversationRequest) (*dto.ConversationResponse, error)
	HistoryUpdate(ctx context.Context, messages []entity.ChatMessage, conversationId string) (*dto.HistoryResult, error)
	HistoryMessageFeedback(ctx context.Context, messageId, feedback string) (*dto.HistoryResult, error)
	HistoryEnsure(ctx context.Context) (entity.CosmosDBHealth, error)
	HistoryList(ctx context.Context, offset int) ([]entity.Conversation, error)
	HistoryRead(ctx context.Context, conversationId string) ([]entity.ChatMessage, error)
	HistoryRename(ctx context.Context, conversationId, title string) (*dto.HistoryResult, error)
	HistoryDelete(ctx context.Context, conversationId string) (*dto.HistoryResult, error)
	HistoryDeleteAll(ctx context.Context) (*dto.HistoryResult, error)
	HistoryClear(ctx context.Context, conversationId string) (*dto.HistoryResult, error)
	FrontendSettings(ctx context.Context) (*entity.FrontendSettings, error)
	GetUserInfo(ctx context.Context) ([]dto.UserInfo, error)
}

type client struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
}

func NewClient(baseURL string, timeout time.Duration) IClient {
	return &client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		tracer:     otel.Tracer("boatchat-client/api"),
	}
}

// call performs one JSON round trip and decodes the body into out when the
// pointer is non-nil and the body is non-empty. The HTTP status is returned
// for the caller to judge; only transport failures are errors.
func (c *client) call(ctx context.Context, method, path string, body interface{}, out interface{}) (int, error) {
	ctx, span := c.tracer.Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.url", c.baseURL+path),
		),
	)
	defer span.End()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			span.RecordError(err)
			return 0, fmt.Errorf("encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return resp.StatusCode, fmt.Errorf("read %s response: %w", path, err)
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			span.RecordError(err)
			return resp.StatusCode, fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return resp.StatusCode, nil
}

func (c *client) result(ctx context.Context, method, path string, body interface{}) (*dto.HistoryResult, error) {
	var res dto.HistoryResult
	status, err := c.call(ctx, method, path, body, &res)
	if err != nil {
		return nil, err
	}
	res.Status = status
	res.Ok = status >= 200 && status < 300
	return &res, nil
}

func (c *client) Conversation(ctx context.Context, req *dto.ConversationRequest) (*dto.ConversationResponse, error) {
	var resp dto.ConversationResponse
	status, err := c.call(ctx, http.MethodPost, "/v2/conversation", req, &resp)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK && resp.Error == "" {
		resp.Error = fmt.Sprintf("conversation request failed with status %d", status)
	}
	return &resp, nil
}

func (c *client) HistoryUpdate(ctx context.Context, messages []entity.ChatMessage, conversationId string) (*dto.HistoryResult, error) {
	return c.result(ctx, http.MethodPost, "/history/update", dto.HistoryUpdateRequest{
		ConversationId: conversationId,
		Messages:       messages,
	})
}

func (c *client) HistoryMessageFeedback(ctx context.Context, messageId, feedback string) (*dto.HistoryResult, error) {
	return c.result(ctx, http.MethodPost, "/history/message_feedback", dto.HistoryMessageFeedbackRequest{
		MessageId:       messageId,
		MessageFeedback: feedback,
	})
}

func (c *client) HistoryEnsure(ctx context.Context) (entity.CosmosDBHealth, error) {
	var resp dto.HistoryEnsureResponse
	status, err := c.call(ctx, http.MethodGet, "/history/ensure", nil, &resp)
	if err != nil {
		return entity.CosmosDBHealth{Status: entity.CosmosNotWorking}, err
	}
	switch status {
	case http.StatusOK:
		return entity.CosmosDBHealth{CosmosDB: true, Status: entity.CosmosWorking}, nil
	case http.StatusNotFound:
		return entity.CosmosDBHealth{Status: entity.CosmosNotConfigured}, nil
	case http.StatusUnauthorized:
		return entity.CosmosDBHealth{Status: entity.CosmosInvalidCredential}, nil
	default:
		return entity.CosmosDBHealth{Status: entity.CosmosNotWorking}, nil
	}
}

func (c *client) HistoryList(ctx context.Context, offset int) ([]entity.Conversation, error) {
	var items []dto.HistoryListItem
	path := fmt.Sprintf("/history/list?offset=%d", offset)
	status, err := c.call(ctx, http.MethodGet, path, nil, &items)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("history list failed with status %d", status)
	}
	conversations := make([]entity.Conversation, 0, len(items))
	for _, item := range items {
		conversations = append(conversations, entity.Conversation{
			Id:       item.Id,
			Title:    item.Title,
			Messages: []entity.ChatMessage{},
			Date:     item.UpdatedAt,
		})
	}
	return conversations, nil
}

func (c *client) HistoryRead(ctx context.Context, conversationId string) ([]entity.ChatMessage, error) {
	var resp dto.HistoryReadResponse
	status, err := c.call(ctx, http.MethodPost, "/history/read", dto.HistoryReadRequest{ConversationId: conversationId}, &resp)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("history read failed with status %d", status)
	}
	return resp.Messages, nil
}

func (c *client) HistoryRename(ctx context.Context, conversationId, title string) (*dto.HistoryResult, error) {
	return c.result(ctx, http.MethodPost, "/history/rename", dto.HistoryRenameRequest{
		ConversationId: conversationId,
		Title:          title,
	})
}

func (c *client) HistoryDelete(ctx context.Context, conversationId string) (*dto.HistoryResult, error) {
	return c.result(ctx, http.MethodDelete, "/history/delete", dto.HistoryDeleteRequest{ConversationId: conversationId})
}

func (c *client) HistoryDeleteAll(ctx context.Context) (*dto.HistoryResult, error) {
	return c.result(ctx, http.MethodDelete, "/history/delete_all", nil)
}

func (c *client) HistoryClear(ctx context.Context, conversationId string) (*dto.HistoryResult, error) {
	return c.result(ctx, http.MethodPost, "/history/clear", dto.HistoryClearRequest{ConversationId: conversationId})
}

func (c *client) FrontendSettings(ctx context.Context) (*entity.FrontendSettings, error) {
	var settings entity.FrontendSettings
	status, err := c.call(ctx, http.MethodGet, "/frontend_settings", nil, &settings)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("frontend settings failed with status %d", status)
	}
	return &settings, nil
}

// GetUserInfo lists the platform identity records. A deployment without an
// identity provider answers with an empty list, which is not an error; only
// transport failures are.
func (c *client) GetUserInfo(ctx context.Context) ([]dto.UserInfo, error) {
	var users []dto.UserInfo
	status, err := c.call(ctx, http.MethodGet, "/.auth/me", nil, &users)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return []dto.UserInfo{}, nil
	}
	return users, nil
}
