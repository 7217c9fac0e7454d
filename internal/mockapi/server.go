package mockapi

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"

	"boatchat-client/internal/dto"
	"boatchat-client/internal/entity"
)

// Server is an in-memory stand-in for the assistant backend. It answers the
// full endpoint surface the client engine consumes with canned boat data, so
// the engine can run end to end without the real deployment.
type Server struct {
	app *fiber.App

	mu            sync.Mutex
	conversations map[string]*storedConversation
	feedback      map[string]string
	identities    []dto.UserInfo
	settings      entity.FrontendSettings
}

type storedConversation struct {
	Id        string
	Title     string
	Messages  []entity.ChatMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

func New() *Server {
	s := &Server{
		conversations: map[string]*storedConversation{},
		feedback:      map[string]string{},
		identities:    []dto.UserInfo{},
		settings: entity.FrontendSettings{
			AuthEnabled:     false,
			FeedbackEnabled: true,
			SanitizeAnswer:  true,
		},
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})
	app.Use(cors.New())

	app.Get("/frontend_settings", s.frontendSettings)
	app.Get("/.auth/me", s.authMe)
	app.Post("/v2/conversation", s.conversation)

	app.Get("/history/ensure", s.historyEnsure)
	app.Get("/history/list", s.historyList)
	app.Post("/history/read", s.historyRead)
	app.Post("/history/update", s.historyUpdate)
	app.Post("/history/message_feedback", s.historyMessageFeedback)
	app.Post("/history/rename", s.historyRename)
	app.Post("/history/clear", s.historyClear)
	app.Delete("/history/delete", s.historyDelete)
	app.Delete("/history/delete_all", s.historyDeleteAll)

	s.app = app
	return s
}

// App exposes the fiber app for tests that serve it on an ephemeral
// listener.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// SetIdentities configures the records /.auth/me answers with.
func (s *Server) SetIdentities(identities []dto.UserInfo) {
	s.mu.Lock()
	s.identities = identities
	s.mu.Unlock()
}

// Feedback returns the last submitted feedback value for a message id.
func (s *Server) Feedback(messageId string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.feedback[messageId]
	return value, ok
}

func (s *Server) frontendSettings(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(s.settings)
}

func (s *Server) authMe(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(s.identities)
}

func (s *Server) historyEnsure(c *fiber.Ctx) error {
	return c.JSON(dto.HistoryEnsureResponse{Message: "CosmosDB is configured and working"})
}

func (s *Server) historyList(c *fiber.Ctx) error {
	offset := c.QueryInt("offset", 0)

	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]dto.HistoryListItem, 0, len(s.conversations))
	for _, conv := range s.conversations {
		items = append(items, dto.HistoryListItem{
			Id:        conv.Id,
			Title:     conv.Title,
			CreatedAt: conv.CreatedAt,
			UpdatedAt: conv.UpdatedAt,
		})
	}
	sortListItems(items)
	if offset >= len(items) {
		return c.JSON([]dto.HistoryListItem{})
	}
	return c.JSON(items[offset:])
}

func (s *Server) historyRead(c *fiber.Ctx) error {
	var req dto.HistoryReadRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[req.ConversationId]
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "conversation not found")
	}
	return c.JSON(dto.HistoryReadResponse{ConversationId: conv.Id, Messages: conv.Messages})
}

func (s *Server) historyUpdate(c *fiber.Ctx) error {
	var req dto.HistoryUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if req.ConversationId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "conversation_id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[req.ConversationId]
	if !ok {
		title := "New conversation"
		for _, m := range req.Messages {
			if m.Role == "user" {
				title = m.Content
				break
			}
		}
		conv = &storedConversation{Id: req.ConversationId, Title: title, CreatedAt: time.Now().UTC()}
		s.conversations[req.ConversationId] = conv
	}
	conv.Messages = req.Messages
	conv.UpdatedAt = time.Now().UTC()
	return c.JSON(fiber.Map{"success": true})
}

func (s *Server) historyMessageFeedback(c *fiber.Ctx) error {
	var req dto.HistoryMessageFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if req.MessageId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "message_id is required")
	}

	s.mu.Lock()
	s.feedback[req.MessageId] = req.MessageFeedback
	s.mu.Unlock()
	return c.JSON(fiber.Map{"success": true})
}

func (s *Server) historyRename(c *fiber.Ctx) error {
	var req dto.HistoryRenameRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[req.ConversationId]
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "conversation not found")
	}
	conv.Title = req.Title
	conv.UpdatedAt = time.Now().UTC()
	return c.JSON(fiber.Map{"success": true})
}

func (s *Server) historyClear(c *fiber.Ctx) error {
	var req dto.HistoryClearRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[req.ConversationId]
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "conversation not found")
	}
	conv.Messages = []entity.ChatMessage{}
	conv.UpdatedAt = time.Now().UTC()
	return c.JSON(fiber.Map{"success": true})
}

func (s *Server) historyDelete(c *fiber.Ctx) error {
	var req dto.HistoryDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[req.ConversationId]; !ok {
		return fiber.NewError(fiber.StatusNotFound, "conversation not found")
	}
	delete(s.conversations, req.ConversationId)
	return c.JSON(fiber.Map{"success": true})
}

func (s *Server) historyDeleteAll(c *fiber.Ctx) error {
	s.mu.Lock()
	s.conversations = map[string]*storedConversation{}
	s.mu.Unlock()
	return c.JSON(fiber.Map{"success": true})
}

func (s *Server) conversation(c *fiber.Ctx) error {
	var req dto.ConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	prompt := latestUserPrompt(req.Messages)
	if prompt == "" {
		return c.JSON(dto.ConversationResponse{
			Id:    req.ConversationId,
			Error: "No content in messages object.",
		})
	}

	messages := answerFor(prompt)
	return c.JSON(dto.ConversationResponse{
		Id:      req.ConversationId,
		Model:   "mock-boat-assistant",
		Created: time.Now().Unix(),
		Object:  "chat.completion",
		Choices: []dto.ConversationChoice{{Messages: messages}},
	})
}

func latestUserPrompt(messages []dto.ConversationMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content
		}
	}
	return ""
}

// answerFor routes a prompt to one of the canned response shapes the real
// intent router produces: a structured payload for value propositions,
// walkaround scripts and recommendations, otherwise a cited markdown answer.
func answerFor(prompt string) []dto.ConversationMessage {
	lowered := strings.ToLower(prompt)
	now := time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00")

	switch {
	case strings.Contains(lowered, "value proposition"):
		return []dto.ConversationMessage{assistantPayload(dto.AssistantPayload{
			Title: "Why buyers choose this boat",
			ValuePropositions: []entity.ValueProposition{
				{Proposition: "Shallow draft", Details: "Runs skinny water other center consoles cannot reach."},
				{Proposition: "Self-bailing deck", Details: "The cockpit drains overboard even at rest."},
			},
		}, now)}
	case strings.Contains(lowered, "walkaround") || strings.Contains(lowered, "walkthrough"):
		return []dto.ConversationMessage{assistantPayload(dto.AssistantPayload{
			Title: "Walkaround",
			WalkaroundScript: []entity.WalkaroundStep{
				{Heading: "Start at the bow", Details: "Point out the anchor locker and the bow casting deck."},
				{Heading: "Console", Details: "Show the helm electronics package and lockable rod storage."},
				{Heading: "Stern", Details: "Finish on the outboard rigging and the transom livewell."},
			},
		}, now)}
	case strings.Contains(lowered, "recommend"):
		return []dto.ConversationMessage{assistantPayload(dto.AssistantPayload{
			Title: "Recommended boats",
			BoatSuggestions: []entity.BoatSuggestion{
				{Product: "Bay Boat", Model: "220 Bay", Summary: "A versatile inshore platform with a soft dry ride."},
				{Product: "Center Console", Model: "250 Offshore", Summary: "Twin-engine offshore capability with family seating."},
			},
		}, now)}
	default:
		return citedAnswer(now)
	}
}

func assistantPayload(payload dto.AssistantPayload, date string) dto.ConversationMessage {
	body, _ := json.Marshal(payload)
	return dto.ConversationMessage{
		Id:      uuid.NewString(),
		Role:    "assistant",
		Content: string(body),
		Date:    date,
	}
}

func citedAnswer(date string) []dto.ConversationMessage {
	partOne := 1
	partTwo := 2
	tool := dto.ToolMessageContent{
		Citations: []entity.Citation{
			{
				Id:        "1",
				Filepath:  "brochures/220-bay-specifications.pdf",
				PartIndex: &partOne,
				Title:     "220 Bay Specifications",
				Content:   "Overall length 22'2\", beam 8'6\", max horsepower 250.",
			},
			{
				Id:        "2",
				Filepath:  "brochures/220-bay-specifications.pdf",
				PartIndex: &partTwo,
				Title:     "220 Bay Specifications",
				Content:   "Fuel capacity 60 gallons, draft 14 inches.",
			},
		},
	}
	toolBody, _ := json.Marshal(tool)

	return []dto.ConversationMessage{
		{
			Id:      uuid.NewString(),
			Role:    "tool",
			Content: string(toolBody),
			Date:    date,
		},
		{
			Id:      uuid.NewString(),
			Role:    "assistant",
			Content: "The 220 Bay measures 22'2\" overall with an 8'6\" beam [doc1] and carries 60 gallons of fuel on a 14-inch draft [doc2].",
			Date:    date,
		},
	}
}

func sortListItems(items []dto.HistoryListItem) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})
}
