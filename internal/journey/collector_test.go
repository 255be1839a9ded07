package journey

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaozhiwang/chatgpt-sugar/internal/core/model"
	"github.com/yaozhiwang/chatgpt-sugar/internal/util"
)

type fakeRepo struct {
	summaries     []model.ConversationSummary
	conversations []model.Conversation
	gizmos        []model.GPT
	shared        model.SharedConversations
	user          model.User

	listErr error
}

func (f *fakeRepo) ListAllConversations(ctx context.Context, includeArchived bool) ([]model.ConversationSummary, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.summaries, nil
}

func (f *fakeRepo) GetConversations(ctx context.Context, items []model.ConversationSummary) ([]model.Conversation, error) {
	return f.conversations, nil
}

func (f *fakeRepo) ListMyGizmos(ctx context.Context) ([]model.GPT, error) {
	return f.gizmos, nil
}

func (f *fakeRepo) GetGizmo(ctx context.Context, id string) (*model.GPT, error) {
	return &model.GPT{ID: id, ShortURL: id + "-url"}, nil
}

func (f *fakeRepo) GetSharedConversations(ctx context.Context, limit int) (*model.SharedConversations, error) {
	return &f.shared, nil
}

func (f *fakeRepo) GetUser(ctx context.Context) (*model.User, error) {
	return &f.user, nil
}

func msgNode(id string, role string, t time.Time, parent string) model.MessageNode {
	return model.MessageNode{
		ID:     id,
		Parent: parent,
		Message: &model.Message{
			ID:         id,
			Author:     model.Author{Role: role},
			CreateTime: model.FlexTime{Time: t},
			Content:    model.Content{ContentType: model.ContentText},
		},
	}
}

func simpleConversation(id string, created time.Time) model.Conversation {
	return model.Conversation{
		ID:         id,
		CreateTime: model.FlexTime{Time: created},
		UpdateTime: model.FlexTime{Time: created},
		Mapping: map[string]model.MessageNode{
			"root":    {ID: "root", Children: []string{id + "-m1"}},
			id + "-m1": msgNode(id+"-m1", model.RoleUser, created, "root"),
		},
	}
}

func newTestCollector(t *testing.T, repo Repository, now time.Time) *Collector {
	t.Helper()
	tz, err := util.NewTimeProvider("UTC")
	require.NoError(t, err)
	return NewCollector(repo, Config{
		TimeProvider: tz,
		Now:          func() time.Time { return now },
	})
}

func TestCollectAnniversaries(t *testing.T) {
	now := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	// Created exactly 2 years and 1 day before now.
	created := time.Date(2022, 3, 1, 12, 0, 0, 0, time.UTC)

	repo := &fakeRepo{
		user: model.User{Name: "Ada", Created: model.FlexTime{Time: created}},
	}
	c := newTestCollector(t, repo, now)

	data, err := c.Collect(context.Background())
	require.NoError(t, err)

	var anniversaries []model.Event
	for _, e := range data.Events.User {
		if e.Name == "1-Year Anniversary" || e.Name == "2-Year Anniversary" || e.Name == "3-Year Anniversary" {
			anniversaries = append(anniversaries, e)
		}
	}
	require.Len(t, anniversaries, 2)
	assert.Equal(t, "1-Year Anniversary", anniversaries[0].Name)
	assert.True(t, anniversaries[0].Date.Equal(created.AddDate(1, 0, 0)))
	assert.True(t, anniversaries[1].Date.Equal(created.AddDate(2, 0, 0)))
}

func TestCollectAssemblesJourney(t *testing.T) {
	now := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	created := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	convTime := time.Date(2023, 5, 10, 9, 0, 0, 0, time.UTC)

	repo := &fakeRepo{
		summaries: []model.ConversationSummary{{ID: "c1"}},
		conversations: []model.Conversation{
			simpleConversation("c1", convTime),
		},
		shared: model.SharedConversations{
			Total: 3,
			Items: []model.ConversationSummary{{ID: "s1", CreateTime: model.FlexTime{Time: convTime.Add(24 * time.Hour)}}},
		},
		user: model.User{Name: "Ada", Created: model.FlexTime{Time: created}},
	}
	c := newTestCollector(t, repo, now)

	data, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Ada", data.User.Name)
	assert.Equal(t, 1, data.Stats.Conversations.Total)
	assert.Equal(t, 3, data.Stats.Conversations.Shared)
	assert.Equal(t, 1, data.Stats.ActiveDays)
	assert.Equal(t, 427, data.Stats.Age) // ceil of elapsed days

	names := make(map[string]model.Event)
	for _, e := range data.Events.User {
		names[e.Name] = e
	}
	assert.Contains(t, names, "First Conversation")
	assert.Contains(t, names, "Most Active Day")

	shared, ok := names["First Shared Conversation"]
	require.True(t, ok)
	assert.Equal(t, DefaultRootURL+"/share/s1", shared.Link)

	// Both event lists sorted ascending.
	for i := 1; i < len(data.Events.User); i++ {
		assert.False(t, data.Events.User[i].Date.Before(data.Events.User[i-1].Date))
	}
	for i := 1; i < len(data.Events.ChatGPT); i++ {
		assert.False(t, data.Events.ChatGPT[i].Date.Before(data.Events.ChatGPT[i-1].Date))
	}
}

func TestCollectPropagatesListError(t *testing.T) {
	repo := &fakeRepo{listErr: fmt.Errorf("backend down")}
	c := newTestCollector(t, repo, time.Now())

	_, err := c.Collect(context.Background())
	assert.Error(t, err)
}

func TestCollectMostActiveDay(t *testing.T) {
	now := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	d1 := time.Date(2023, 5, 10, 9, 0, 0, 0, time.UTC)
	d2 := time.Date(2023, 5, 11, 9, 0, 0, 0, time.UTC)

	busy := simpleConversation("c2", d2)
	busy.Mapping["c2-m2"] = msgNode("c2-m2", model.RoleUser, d2.Add(time.Minute), "c2-m1")
	busy.Mapping["c2-m3"] = msgNode("c2-m3", model.RoleUser, d2.Add(2*time.Minute), "c2-m2")

	repo := &fakeRepo{
		conversations: []model.Conversation{simpleConversation("c1", d1), busy},
		user:          model.User{Name: "Ada", Created: model.FlexTime{Time: d1.AddDate(0, -1, 0)}},
	}
	c := newTestCollector(t, repo, now)

	data, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, data.Stats.ActiveDays)
	var mostActive *model.Event
	for i := range data.Events.User {
		if data.Events.User[i].Name == "Most Active Day" {
			mostActive = &data.Events.User[i]
		}
	}
	require.NotNil(t, mostActive)
	assert.Equal(t, "2023-05-11", mostActive.Date.Format("2006-01-02"))
	assert.Contains(t, mostActive.Description, "3 messages")
}
