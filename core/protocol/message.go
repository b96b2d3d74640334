// Package protocol defines the conversation message types and the client
// frame vocabulary used on the duplex chat channel.
package protocol

// Role identifies the sender of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a chat-completion request.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewMessage creates a Message with the given role and content.
func NewMessage(role Role, content string) Message {
	return Message{Role: role, Content: content}
}
