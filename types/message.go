package types

import (
	"encoding/json"
	"fmt"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single chat message. The wire form is exactly
// {"role": ..., "content": ...}; no other keys are accepted.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// messageExample is appended to every message validation error so the
// caller sees the expected shape.
const messageExample = `Example: [{"role": "user", "content": "Hello"}]`

// UnmarshalJSON enforces the wire invariant: the object's key-set must be
// exactly {role, content}.
func (m *Message) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 || raw["role"] == nil || raw["content"] == nil {
		return NewValidationError("message must contain exactly 'role' and 'content'. %s", messageExample)
	}
	var role Role
	if err := json.Unmarshal(raw["role"], &role); err != nil {
		return fmt.Errorf("message role: %w", err)
	}
	var content string
	if err := json.Unmarshal(raw["content"], &content); err != nil {
		return fmt.Errorf("message content: %w", err)
	}
	m.Role = role
	m.Content = content
	return nil
}

// ValidRole reports whether r is one of the three accepted roles.
func ValidRole(r Role) bool {
	return r == RoleSystem || r == RoleUser || r == RoleAssistant
}

// ValidateMessages checks a chat message list before it is sent: every
// role must be system, user or assistant. An empty list is allowed; the
// platform decides what to do with it.
func ValidateMessages(messages []Message) error {
	for _, m := range messages {
		if !ValidRole(m.Role) {
			return NewValidationError("message role must be 'system', 'user' or 'assistant', got %q. %s", m.Role, messageExample)
		}
	}
	return nil
}
