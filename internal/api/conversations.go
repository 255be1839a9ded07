package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/yaozhiwang/chatgpt-sugar/internal/core/model"
	"github.com/yaozhiwang/chatgpt-sugar/internal/data/batch"
)

type conversationList struct {
	Items []model.ConversationSummary `json:"items"`
	Total int                         `json:"total"`
}

// fatal wraps a fetch failure in the given pipeline sentinel, except for
// authentication failures, which surface as-is so callers can tell them
// apart from transient fetch problems.
func fatal(sentinel, err error) error {
	if errors.Is(err, ErrBotCheck) || errors.Is(err, ErrUnauthorized) {
		return err
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}

func (c *Client) listConversationsPage(ctx context.Context, offset, limit int, archived bool) (conversationList, error) {
	path := fmt.Sprintf("/conversations?offset=%d&limit=%d&order=updated", offset, limit)
	if archived {
		path += "&is_archived=true"
	}
	var page conversationList
	if err := c.get(ctx, path, &page); err != nil {
		return conversationList{}, err
	}
	return page, nil
}

// listPartition retrieves one full partition (archived or not): page 1
// learns the total, the remaining pages go through the batch executor.
func (c *Client) listPartition(ctx context.Context, archived bool) ([]model.ConversationSummary, error) {
	first, err := c.listConversationsPage(ctx, 0, pageSize, archived)
	if err != nil {
		return nil, fatal(ErrListConversations, err)
	}

	items := first.Items
	if first.Total <= len(items) {
		return items, nil
	}

	remaining := (first.Total - len(items) + pageSize - 1) / pageSize
	results := batch.Execute(ctx, remaining, func(ctx context.Context, index int) ([]model.ConversationSummary, error) {
		page, err := c.listConversationsPage(ctx, pageSize*(index+1), pageSize, archived)
		if err != nil {
			return nil, err
		}
		return page.Items, nil
	}, c.batchOpts)

	for _, r := range results {
		if r.Err != nil {
			return nil, fatal(ErrListConversations, r.Err)
		}
		items = append(items, r.Value...)
	}
	return items, nil
}

// ListAllConversations returns every conversation summary, sorted ascending
// by creation time. When includeArchived is set the archived partition is
// fetched as well; the two partitions are deduplicated by id in case the
// backend does not keep them disjoint.
func (c *Client) ListAllConversations(ctx context.Context, includeArchived bool) ([]model.ConversationSummary, error) {
	items, err := c.listPartition(ctx, false)
	if err != nil {
		return nil, err
	}

	if includeArchived {
		archived, err := c.listPartition(ctx, true)
		if err != nil {
			return nil, err
		}
		items = append(items, archived...)
	}

	items = lo.UniqBy(items, func(s model.ConversationSummary) string { return s.ID })
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreateTime.Time.Before(items[j].CreateTime.Time)
	})

	log.Debug().Int("conversations", len(items)).Bool("includeArchived", includeArchived).Msg("listed conversations")
	return items, nil
}

// GetConversation fetches one full conversation body.
func (c *Client) GetConversation(ctx context.Context, id string) (*model.Conversation, error) {
	var conv model.Conversation
	if err := c.get(ctx, "/conversation/"+url.PathEscape(id), &conv); err != nil {
		return nil, err
	}

	// Detail payloads identify themselves via conversation_id, or not at all.
	if conv.ID == "" {
		conv.ID = conv.ConversationID
	}
	if conv.ID == "" {
		conv.ID = id
	}
	return &conv, nil
}

// GetConversations fetches full bodies for all listed conversations
// concurrently, preserving the input order. With a cache configured,
// bodies whose update time has not advanced are served from disk.
func (c *Client) GetConversations(ctx context.Context, items []model.ConversationSummary) ([]model.Conversation, error) {
	results := batch.Execute(ctx, len(items), func(ctx context.Context, index int) (*model.Conversation, error) {
		item := items[index]
		if c.bodyCache != nil {
			if conv, ok := c.bodyCache.Get(item.ID, item.UpdateTime.Time); ok {
				return conv, nil
			}
		}

		conv, err := c.GetConversation(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		if c.bodyCache != nil {
			if err := c.bodyCache.Set(conv); err != nil {
				log.Warn().Err(err).Str("conversation", conv.ID).Msg("failed to cache conversation body")
			}
		}
		return conv, nil
	}, c.batchOpts)

	conversations := make([]model.Conversation, 0, len(items))
	for _, r := range results {
		if r.Err != nil {
			return nil, fatal(ErrGetConversations, r.Err)
		}
		conversations = append(conversations, *r.Value)
	}
	return conversations, nil
}

// GetSharedConversations returns up to limit shared conversations plus the
// overall shared total, oldest first.
func (c *Client) GetSharedConversations(ctx context.Context, limit int) (*model.SharedConversations, error) {
	var shared model.SharedConversations
	path := fmt.Sprintf("/shared_conversations?order=created&offset=0&limit=%d", limit)
	if err := c.get(ctx, path, &shared); err != nil {
		return nil, err
	}
	return &shared, nil
}
