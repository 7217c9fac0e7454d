package mapper

import (
	"encoding/json"
	"strings"

	"boatchat-client/internal/constant"
	"boatchat-client/internal/dto"
	"boatchat-client/internal/entity"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

// ToAskResponse flattens a completion envelope into one assistant turn.
// Tool-role messages contribute the citation set and exec results; the
// assistant message contributes either markdown text or, when its content is
// a structured intent payload, the value-proposition / walkaround /
// suggestion fields. Content that fails to decode stays plain answer text.
func (m *ConversationMapper) ToAskResponse(resp *dto.ConversationResponse) *entity.AskResponse {
	ask := &entity.AskResponse{Citations: []entity.Citation{}}
	if resp == nil {
		return ask
	}
	if resp.Error != "" {
		ask.Error = resp.Error
		return ask
	}
	if len(resp.Choices) == 0 {
		return ask
	}

	for _, msg := range resp.Choices[0].Messages {
		switch msg.Role {
		case constant.ChatMessageRoleTool:
			var tool dto.ToolMessageContent
			if err := json.Unmarshal([]byte(msg.Content), &tool); err != nil {
				continue
			}
			ask.Citations = append(ask.Citations, tool.Citations...)
			ask.ExecResults = append(ask.ExecResults, tool.ExecResults...)
		case constant.ChatMessageRoleAssistant:
			if msg.Id != "" {
				ask.MessageId = msg.Id
			}
			if payload, ok := decodeAssistantPayload(msg.Content); ok {
				ask.ValuePropositions = payload.ValuePropositions
				ask.WalkaroundScript = payload.WalkaroundScript
				ask.BoatSuggestions = payload.BoatSuggestions
				if payload.Title != "" && len(payload.ValuePropositions) == 0 &&
					len(payload.WalkaroundScript) == 0 && len(payload.BoatSuggestions) == 0 {
					ask.Error = payload.Title
				}
				continue
			}
			ask.Answer = msg.Content
		case constant.ChatMessageRoleError:
			ask.Error = msg.Content
		}
	}
	return ask
}

func decodeAssistantPayload(content string) (dto.AssistantPayload, bool) {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") {
		return dto.AssistantPayload{}, false
	}
	var payload dto.AssistantPayload
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return dto.AssistantPayload{}, false
	}
	if len(payload.ValuePropositions) == 0 && len(payload.WalkaroundScript) == 0 &&
		len(payload.BoatSuggestions) == 0 && payload.Title == "" {
		return dto.AssistantPayload{}, false
	}
	return payload, true
}

// ToWireMessages converts conversation messages to the chat/completions
// format the conversation and history endpoints expect.
func (m *ConversationMapper) ToWireMessages(messages []entity.ChatMessage) []dto.ConversationMessage {
	out := make([]dto.ConversationMessage, 0, len(messages))
	for _, msg := range messages {
		out = append(out, dto.ConversationMessage{
			Id:      msg.Id,
			Role:    msg.Role,
			Content: msg.Content,
			Date:    msg.Date.Format("2006-01-02T15:04:05.000Z07:00"),
		})
	}
	return out
}
