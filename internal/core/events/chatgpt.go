package events

import (
	"time"

	"github.com/yaozhiwang/chatgpt-sugar/internal/core/model"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// ChatGPTTimeline returns the fixed product-history events merged into
// every journey, already in ascending date order.
func ChatGPTTimeline() []model.Event {
	return []model.Event{
		{
			Date:        day(2022, time.November, 30),
			Name:        "ChatGPT launch",
			Link:        "https://openai.com/blog/chatgpt",
			Description: "Cake day of ChatGPT",
		},
		{
			Date:        day(2023, time.February, 1),
			Name:        "ChatGPT Plus launch",
			Link:        "https://openai.com/blog/chatgpt-plus",
			Description: "Get access to GPT-4, DALL-E 3 and GPTs",
		},
		{
			Date:        day(2023, time.March, 23),
			Name:        "ChatGPT plugins launch",
			Link:        "https://openai.com/blog/chatgpt-plugins",
			Description: "Web Browser, Code Interpreter and third-party services",
		},
		{
			Date:        day(2023, time.July, 20),
			Name:        "Introducing custom instructions",
			Link:        "https://openai.com/blog/custom-instructions-for-chatgpt",
			Description: "Set your preferences, and ChatGPT will keep them in mind.",
		},
		{
			Date:        day(2023, time.September, 25),
			Name:        "Roll Out Voice and Image Capabilities",
			Link:        "https://openai.com/blog/chatgpt-can-now-see-hear-and-speak",
			Description: "Have voice conversation, and chat about images",
		},
		{
			Date:        day(2023, time.October, 9),
			Name:        "DALL·E 3 launch",
			Link:        "https://openai.com/blog/dall-e-3-is-now-available-in-chatgpt-plus-and-enterprise",
			Description: "Create unique images from a simple conversation",
		},
		{
			Date:        day(2023, time.November, 6),
			Name:        "GPTs launch",
			Link:        "https://openai.com/blog/introducing-gpts",
			Description: "Create your own versions of ChatGPT without coding",
		},
		{
			Date:        day(2024, time.January, 10),
			Name:        "GPT Store launch",
			Link:        "https://openai.com/blog/introducing-the-gpt-store",
			Description: "The App store for GPTs. Also launch ChatGPT Team plan and start rolling out personalization and long-term memory.",
		},
		{
			Date:        day(2024, time.February, 13),
			Name:        "ChatGPT Gets Memories",
			Link:        "https://openai.com/blog/memory-and-new-controls-for-chatgpt",
			Description: "Remembering things you discuss across all chats saves you from having to repeat information and makes future conversations more helpful.",
		},
	}
}
