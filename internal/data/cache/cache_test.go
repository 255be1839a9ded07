package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaozhiwang/chatgpt-sugar/internal/core/model"
)

func sampleConversation(id string, updated time.Time) *model.Conversation {
	return &model.Conversation{
		ID:         id,
		Title:      "cached",
		CreateTime: model.FlexTime{Time: updated.Add(-time.Hour)},
		UpdateTime: model.FlexTime{Time: updated},
		Mapping: map[string]model.MessageNode{
			"root": {ID: "root", Children: []string{}},
		},
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	fc, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	updated := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, fc.Set(sampleConversation("c1", updated)))

	got, ok := fc.Get("c1", updated)
	require.True(t, ok)
	assert.Equal(t, "c1", got.ID)
	assert.Equal(t, "cached", got.Title)
}

func TestFileCacheColdRead(t *testing.T) {
	dir := t.TempDir()
	updated := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	fc, err := NewFileCache(dir)
	require.NoError(t, err)
	require.NoError(t, fc.Set(sampleConversation("c1", updated)))

	// A fresh cache instance reads the entry back from disk.
	fc2, err := NewFileCache(dir)
	require.NoError(t, err)
	got, ok := fc2.Get("c1", updated)
	require.True(t, ok)
	assert.Equal(t, "c1", got.ID)
}

func TestFileCacheStaleEntryMisses(t *testing.T) {
	fc, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	updated := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, fc.Set(sampleConversation("c1", updated)))

	_, ok := fc.Get("c1", updated.Add(time.Hour))
	assert.False(t, ok)
}

func TestFileCacheSubSecondDriftTolerated(t *testing.T) {
	fc, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	updated := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, fc.Set(sampleConversation("c1", updated)))

	_, ok := fc.Get("c1", updated.Add(500*time.Millisecond))
	assert.True(t, ok)
}

func TestFileCacheMissingEntry(t *testing.T) {
	fc, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	_, ok := fc.Get("nope", time.Now())
	assert.False(t, ok)
}

func TestFileCacheClear(t *testing.T) {
	fc, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	updated := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, fc.Set(sampleConversation("c1", updated)))
	require.NoError(t, fc.Clear())

	_, ok := fc.Get("c1", updated)
	assert.False(t, ok)
}
