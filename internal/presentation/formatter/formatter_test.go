package formatter

import (
	"bytes"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaozhiwang/chatgpt-sugar/internal/core/model"
)

func sampleData() *model.JourneyData {
	return &model.JourneyData{
		User: model.User{Name: "Ada", Email: "ada@example.com"},
		Stats: model.JourneyStats{
			Age:        427,
			ActiveDays: 3,
			Conversations: model.ConversationStats{
				Total:    1234,
				Shared:   5,
				Archived: 2,
			},
			Messages: model.MessageStats{
				Total: 15678,
				GPT4:  42,
			},
			GPTs: model.GPTStats{
				Mine:       model.MineGPTStats{Public: 1, Chats: model.GPTChatStats{Public: 1500}},
				ThirdParty: model.ThirdPartyGPTStats{Total: 2, Chats: 7},
			},
		},
		Events: model.JourneyEvents{
			ChatGPT: []model.Event{
				{Date: time.Date(2022, 11, 30, 0, 0, 0, 0, time.UTC), Name: "ChatGPT Launched"},
			},
			User: []model.Event{
				{
					Date:        time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
					Name:        "First Conversation",
					Description: "You started your first conversation with ChatGPT.",
					Link:        "https://chatgpt.com/c/c1",
				},
			},
		},
	}
}

func TestNewFormatter(t *testing.T) {
	var buf bytes.Buffer

	f, err := New("json", &buf)
	require.NoError(t, err)
	assert.IsType(t, &JSONFormatter{}, f)

	f, err = New("summary", &buf)
	require.NoError(t, err)
	assert.IsType(t, &SummaryFormatter{}, f)

	_, err = New("xml", &buf)
	assert.Error(t, err)
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf).Format(sampleData()))

	var decoded map[string]any
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &decoded))

	user, ok := decoded["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ada", user["name"])

	stats, ok := decoded["stats"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 427, stats["age"])

	events, ok := decoded["events"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, events["user"], 1)
	assert.Len(t, events["chatgpt"], 1)
}

func TestSummaryFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSummaryFormatter(&buf).Format(sampleData()))

	out := buf.String()
	for _, want := range []string{
		"ChatGPT Journey Report",
		"User: Ada <ada@example.com>",
		"Days since first conversation: 427",
		"Total:    1.2K",
		"Total:            15.7K",
		"Created (public):  1, 1.5K chats",
		"2023-01-01  First Conversation",
		"You started your first conversation with ChatGPT.",
	} {
		assert.Contains(t, out, want)
	}
}

func TestSummaryFormatterNoGPTs(t *testing.T) {
	data := sampleData()
	data.Stats.GPTs = model.GPTStats{}

	var buf bytes.Buffer
	require.NoError(t, NewSummaryFormatter(&buf).Format(data))
	assert.NotContains(t, buf.String(), "GPTs:")
}
