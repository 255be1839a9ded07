// Package cache persists fetched conversation bodies between runs. The
// backend is rate-sensitive and bodies only change when a conversation's
// update time advances, so a validated disk copy saves a network round trip.
package cache

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"

	"github.com/yaozhiwang/chatgpt-sugar/internal/core/model"
)

// FileCache stores one JSON file per conversation id under a base
// directory, with an in-memory layer in front.
type FileCache struct {
	baseDir string

	mu     sync.RWMutex
	memory map[string]*model.Conversation
}

func NewFileCache(baseDir string) (*FileCache, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{
		baseDir: baseDir,
		memory:  make(map[string]*model.Conversation),
	}, nil
}

// The list endpoint encodes update times as ISO strings while detail
// payloads use fractional epoch seconds, so equality can drift below a
// second between the two.
const freshnessSlack = time.Second

func fresh(cached *model.Conversation, updatedAt time.Time) bool {
	return !cached.UpdateTime.Time.Add(freshnessSlack).Before(updatedAt)
}

// Get returns the cached body for id if it is at least as recent as
// updatedAt. A stale, missing, or unreadable entry is a miss.
func (c *FileCache) Get(id string, updatedAt time.Time) (*model.Conversation, bool) {
	c.mu.RLock()
	cached, ok := c.memory[id]
	c.mu.RUnlock()
	if ok {
		if fresh(cached, updatedAt) {
			return cached, true
		}
		c.mu.Lock()
		delete(c.memory, id)
		c.mu.Unlock()
	}

	data, err := os.ReadFile(c.path(id))
	if err != nil {
		return nil, false
	}

	var conv model.Conversation
	if err := sonic.Unmarshal(data, &conv); err != nil {
		log.Debug().Err(err).Str("conversation", id).Msg("discarding unreadable cache entry")
		return nil, false
	}
	if !fresh(&conv, updatedAt) {
		return nil, false
	}

	c.mu.Lock()
	c.memory[id] = &conv
	c.mu.Unlock()
	return &conv, true
}

// Set writes a conversation body to disk and the memory layer.
func (c *FileCache) Set(conv *model.Conversation) error {
	data, err := sonic.Marshal(conv)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.path(conv.ID), data, 0o644); err != nil {
		return err
	}

	c.mu.Lock()
	c.memory[conv.ID] = conv
	c.mu.Unlock()
	return nil
}

// Clear removes every cached entry.
func (c *FileCache) Clear() error {
	c.mu.Lock()
	c.memory = make(map[string]*model.Conversation)
	c.mu.Unlock()

	entries, err := os.ReadDir(c.baseDir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(c.baseDir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (c *FileCache) path(id string) string {
	// Conversation ids are UUIDs, safe as filenames.
	return filepath.Join(c.baseDir, id+".json")
}
