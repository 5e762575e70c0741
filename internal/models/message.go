package models

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single turn in the conversation log.
// Messages are append-only; display order is append order.
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// UserMessage creates a player message
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage creates a Dungeon Master message
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// ErrorMessage creates an assistant message carrying the error marker,
// so request failures surface in the conversation instead of escaping it.
func ErrorMessage(detail string) Message {
	return Message{Role: RoleAssistant, Content: ErrorMarker + " " + detail}
}
