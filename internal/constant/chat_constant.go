package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleTool      = "tool"
	ChatMessageRoleError     = "error"
)

// NoContentError is the sentinel the backend embeds in error messages when a
// turn produced no content. A conversation whose latest error message carries
// it must not be written to the history store.
const NoContentError = "No content in messages object."

// SaveErrorMessage is shown in-conversation when a history save fails.
const SaveErrorMessage = "An error occurred. Answers can't be saved at this time. If the problem persists, please contact the site administrator."

// Message processing status for a turn.
const (
	MessageStatusNotRunning = "Not Running"
	MessageStatusProcessing = "Processing"
	MessageStatusDone       = "Done"
)
