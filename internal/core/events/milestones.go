package events

import (
	"fmt"
	"time"

	"github.com/yaozhiwang/chatgpt-sugar/internal/core/model"
)

// Kind identifies a user milestone. Values double as display names.
type Kind string

const (
	FirstConversation    Kind = "First Conversation"
	LongestConversation  Kind = "Longest Conversation"
	Milestone100         Kind = "100th Conversation"
	Milestone1000        Kind = "1000th Conversation"
	FirstGPT4            Kind = "First GPT-4 Conversation"
	FirstVision          Kind = "First Conversation with Vision"
	FirstImage           Kind = "Create First Image with DALLE"
	FirstVoice           Kind = "First Voice Conversation"
	FirstWebBrowser      Kind = "First Web Browser Conversation"
	FirstCodeInterpreter Kind = "First Code Interpreter Conversation"
	FirstFile            Kind = "First Conversation with a File"
	FirstGPT             Kind = "First GPTs Conversation"
	FirstCreatedGPT      Kind = "Create First GPTs"
)

var allKinds = []Kind{
	FirstConversation,
	LongestConversation,
	Milestone100,
	Milestone1000,
	FirstGPT4,
	FirstVision,
	FirstImage,
	FirstVoice,
	FirstWebBrowser,
	FirstCodeInterpreter,
	FirstFile,
	FirstGPT,
	FirstCreatedGPT,
}

// Milestone is a mutable first-occurrence accumulator. A zero Date means
// the milestone was never reached; such records are dropped on conversion.
type Milestone struct {
	Kind           Kind
	Date           time.Time
	ConversationID string
	GizmoURL       string
	NumMessages    int
}

func (m *Milestone) reached() bool {
	return !m.Date.IsZero()
}

// Set tracks one Milestone record per kind.
type Set struct {
	records map[Kind]*Milestone
}

func NewSet() *Set {
	records := make(map[Kind]*Milestone, len(allKinds))
	for _, k := range allKinds {
		records[k] = &Milestone{Kind: k}
	}
	return &Set{records: records}
}

// MarkFirst populates a milestone if it is still unset. The first call per
// kind wins; later calls are ignored. Returns whether this call set it.
func (s *Set) MarkFirst(kind Kind, date time.Time, conversationID string) bool {
	m := s.records[kind]
	if m == nil || m.reached() {
		return false
	}
	m.Date = date
	m.ConversationID = conversationID
	return true
}

// SetGizmoURL attaches a GPT short URL to an already-populated milestone.
func (s *Set) SetGizmoURL(kind Kind, url string) {
	if m := s.records[kind]; m != nil {
		m.GizmoURL = url
	}
}

// RecordLongest tracks the running maximum message count. Ties keep the
// earlier conversation.
func (s *Set) RecordLongest(numMessages int, date time.Time, conversationID string) {
	m := s.records[LongestConversation]
	if numMessages <= m.NumMessages {
		return
	}
	m.NumMessages = numMessages
	m.Date = date
	m.ConversationID = conversationID
}

// Get returns the record for a kind, for inspection in tests and lookups.
func (s *Set) Get(kind Kind) *Milestone {
	return s.records[kind]
}

// Events converts every reached milestone into an immutable display event.
// Unreached kinds are dropped. Order follows the fixed kind list; callers
// sort by date.
func (s *Set) Events(rootURL string) []model.Event {
	out := make([]model.Event, 0, len(allKinds))
	for _, k := range allKinds {
		m := s.records[k]
		if !m.reached() {
			continue
		}
		out = append(out, model.Event{
			Date:        m.Date,
			Name:        string(m.Kind),
			Description: m.description(),
			Link:        m.link(rootURL),
		})
	}
	return out
}

func (m *Milestone) link(rootURL string) string {
	switch m.Kind {
	case FirstGPT:
		return fmt.Sprintf("%s/g/%s/c/%s", rootURL, m.GizmoURL, m.ConversationID)
	case FirstCreatedGPT:
		return fmt.Sprintf("%s/g/%s", rootURL, m.GizmoURL)
	}
	return fmt.Sprintf("%s/c/%s", rootURL, m.ConversationID)
}

func (m *Milestone) description() string {
	switch m.Kind {
	case FirstConversation:
		return "Where it all began."
	case Milestone100:
		return "Established a strong friendship with ChatGPT."
	case Milestone1000:
		return "ChatGPT became an indispensable partner to you."
	case LongestConversation:
		return fmt.Sprintf("Your marathon session spanned %d messages.", m.NumMessages)
	case FirstGPT4:
		return "First leap into the future, get the most accurate answer."
	case FirstVision:
		return "Welcome to the era of multimodal AI."
	case FirstImage:
		return "Realize your dream of becoming an artist."
	case FirstVoice:
		return "Speak to ChatGPT using your voice."
	case FirstWebBrowser:
		return "Get up-to-date information from Web with ChatGPT."
	case FirstCodeInterpreter:
		return "Unleash the power of Python in ChatGPT."
	case FirstFile:
		return "Chat about your file."
	case FirstGPT:
		return "Exploring new dimensions with diverse capabilities."
	case FirstCreatedGPT:
		return "Make your own version of ChatGPT."
	}
	return ""
}
