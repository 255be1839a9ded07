package model

import "time"

// Event is one immutable timeline entry handed to the presentation layer.
type Event struct {
	Date        time.Time `json:"date"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Link        string    `json:"link,omitempty"`
}

type ConversationStats struct {
	Total    int `json:"total"`
	Shared   int `json:"shared"`
	Archived int `json:"archived"`
}

type MessageStats struct {
	Total           int `json:"total"`
	GPT4            int `json:"gpt4"`
	Vision          int `json:"vision"`
	Image           int `json:"image"`
	Voice           int `json:"voice"`
	WebBrowser      int `json:"webBrowser"`
	CodeInterpreter int `json:"codeInterpreter"`
	File            int `json:"file"`
}

type GPTChatStats struct {
	Public  int `json:"public"`
	Private int `json:"private"`
}

type MineGPTStats struct {
	Public  int          `json:"public"`
	Private int          `json:"private"`
	Chats   GPTChatStats `json:"chats"`
}

type ThirdPartyGPTStats struct {
	Total int `json:"total"`
	Chats int `json:"chats"`
}

type GPTStats struct {
	Mine       MineGPTStats       `json:"mine"`
	ThirdParty ThirdPartyGPTStats `json:"thirdParty"`
}

// JourneyStats aggregates every counter derived from the user's history.
type JourneyStats struct {
	Age           int               `json:"age"`
	ActiveDays    int               `json:"activeDays"`
	Conversations ConversationStats `json:"conversations"`
	Messages      MessageStats      `json:"messages"`
	GPTs          GPTStats          `json:"gpts"`
}

// JourneyEvents keeps product-timeline and user-milestone events as two
// separate ordered lists; interleaving is left to presentation.
type JourneyEvents struct {
	ChatGPT []Event `json:"chatgpt"`
	User    []Event `json:"user"`
}

// JourneyData is the full output contract of the pipeline. Consumers must
// treat it as read-only.
type JourneyData struct {
	User   User          `json:"user"`
	Stats  JourneyStats  `json:"stats"`
	Events JourneyEvents `json:"events"`
}
