package model

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/yaozhiwang/chatgpt-sugar/internal/util"
)

// FlexTime normalizes the backend's heterogeneous timestamp encodings:
// ISO strings on list endpoints, fractional epoch seconds on detail
// endpoints, epoch milliseconds in a few metadata fields.
type FlexTime struct {
	time.Time
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := sonic.Unmarshal(data, &s); err == nil {
		parsed, err := util.ParseTimeString(s)
		if err != nil {
			return err
		}
		t.Time = parsed
		return nil
	}

	var f float64
	if err := sonic.Unmarshal(data, &f); err == nil {
		parsed, err := util.ParseEpoch(f)
		if err != nil {
			return err
		}
		t.Time = parsed
		return nil
	}

	return fmt.Errorf("%w: %s", util.ErrBadTimestamp, data)
}

func (t FlexTime) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(t.Time.Format(time.RFC3339Nano))
}

// FlexCount normalizes counters that may arrive either as numbers or as
// abbreviated display strings like "1.2K".
type FlexCount int

func (c *FlexCount) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*c = 0
		return nil
	}

	var f float64
	if err := sonic.Unmarshal(data, &f); err == nil {
		*c = FlexCount(f)
		return nil
	}

	var s string
	if err := sonic.Unmarshal(data, &s); err == nil {
		n, err := util.ParseAbbreviatedCount(s)
		if err != nil {
			return err
		}
		*c = FlexCount(n)
		return nil
	}

	return fmt.Errorf("invalid count: %s", data)
}

// ConversationSummary is one item of the conversation list endpoint.
type ConversationSummary struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	CreateTime FlexTime `json:"create_time"`
	UpdateTime FlexTime `json:"update_time"`
	IsArchived bool     `json:"is_archived"`
	GizmoID    string   `json:"gizmo_id,omitempty"`
}

// SharedConversations is the shared-conversations endpoint payload.
type SharedConversations struct {
	Items []ConversationSummary `json:"items"`
	Total int                   `json:"total"`
}

// Conversation is a full conversation body. Mapping is a tree of message
// nodes keyed by node id; every non-root node's parent id exists in the
// mapping.
type Conversation struct {
	ID             string                 `json:"id,omitempty"`
	ConversationID string                 `json:"conversation_id,omitempty"`
	Title          string                 `json:"title"`
	CreateTime     FlexTime               `json:"create_time"`
	UpdateTime     FlexTime               `json:"update_time"`
	IsArchived     bool                   `json:"is_archived"`
	GizmoID        string                 `json:"gizmo_id,omitempty"`
	Mapping        map[string]MessageNode `json:"mapping"`
}

// MessageNode is one node of the conversation tree. An empty Parent marks
// the root.
type MessageNode struct {
	ID       string   `json:"id"`
	Message  *Message `json:"message"`
	Parent   string   `json:"parent,omitempty"`
	Children []string `json:"children"`
}

type Message struct {
	ID         string          `json:"id"`
	Author     Author          `json:"author"`
	CreateTime FlexTime        `json:"create_time"`
	Content    Content         `json:"content"`
	EndTurn    bool            `json:"end_turn,omitempty"`
	Recipient  string          `json:"recipient,omitempty"`
	Metadata   MessageMetadata `json:"metadata"`
}

type Author struct {
	Role string `json:"role"`
}

type Content struct {
	ContentType string `json:"content_type"`
}

type MessageMetadata struct {
	ModelSlug        string       `json:"model_slug,omitempty"`
	Attachments      []Attachment `json:"attachments,omitempty"`
	VoiceModeMessage bool         `json:"voice_mode_message,omitempty"`
}

type Attachment struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// User is the account profile.
type User struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email,omitempty"`
	Picture string   `json:"picture"`
	Created FlexTime `json:"created"`
}

// GPT describes a custom assistant.
type GPT struct {
	ID             string        `json:"id"`
	ShortURL       string        `json:"short_url"`
	ShareRecipient string        `json:"share_recipient"`
	VanityMetrics  VanityMetrics `json:"vanity_metrics"`
}

type VanityMetrics struct {
	NumConversations FlexCount `json:"num_conversations"`
}
