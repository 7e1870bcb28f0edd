package models

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	default:
		return false
	}
}

type Message struct {
	Role    Role   `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content"`
}

// Conversation is caller owned and only ever grows by Append.
type Conversation []Message

func (c Conversation) Append(role Role, content string) Conversation {
	return append(c, Message{Role: role, Content: content})
}
