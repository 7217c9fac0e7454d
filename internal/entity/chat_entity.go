package entity

import "time"

// ChatMessage is a single message of a conversation. Ids are minted with
// uuid v4 but carried as strings because they round-trip through the wire.
type ChatMessage struct {
	Id       string    `json:"id"`
	Role     string    `json:"role"`
	Content  string    `json:"content"`
	Date     time.Time `json:"date"`
	Feedback string    `json:"feedback,omitempty"`
}

type Conversation struct {
	Id       string        `json:"id"`
	Title    string        `json:"title"`
	Messages []ChatMessage `json:"messages"`
	Date     time.Time     `json:"date"`
}

// Clone returns a deep copy so reducer transitions never alias the message
// slice of a previous state.
func (c Conversation) Clone() Conversation {
	out := c
	out.Messages = make([]ChatMessage, len(c.Messages))
	copy(out.Messages, c.Messages)
	return out
}

type ChatHistoryLoadingState string

const (
	ChatHistoryLoading    ChatHistoryLoadingState = "loading"
	ChatHistorySuccess    ChatHistoryLoadingState = "success"
	ChatHistoryFail       ChatHistoryLoadingState = "fail"
	ChatHistoryNotStarted ChatHistoryLoadingState = "notStarted"
)

type CosmosDBStatus string

const (
	CosmosNotConfigured     CosmosDBStatus = "CosmosDB is not configured"
	CosmosNotWorking        CosmosDBStatus = "CosmosDB is not working"
	CosmosInvalidCredential CosmosDBStatus = "CosmosDB has invalid credentials"
	CosmosWorking           CosmosDBStatus = "CosmosDB is configured and working"
)

// CosmosDBHealth gates whether the persistence synchronizer attempts saves.
type CosmosDBHealth struct {
	CosmosDB bool           `json:"cosmosDB"`
	Status   CosmosDBStatus `json:"status"`
}

type FrontendSettings struct {
	AuthEnabled     bool `json:"auth_enabled"`
	FeedbackEnabled bool `json:"feedback_enabled"`
	SanitizeAnswer  bool `json:"sanitize_answer"`
}

// UserProfile is the single locally stored buyer record, read once at
// startup to decide whether the location-capture step runs.
type UserProfile struct {
	City     string `json:"city"`
	State    string `json:"state"`
	UserAdId string `json:"user_ad_id"`
}
