// Package aggregator derives journey statistics and milestone events from
// full conversation bodies in a single pass per conversation.
package aggregator

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/yaozhiwang/chatgpt-sugar/internal/core/events"
	"github.com/yaozhiwang/chatgpt-sugar/internal/core/model"
	"github.com/yaozhiwang/chatgpt-sugar/internal/util"
)

// GizmoResolver looks up a custom GPT that is not in the user's owned set,
// needed to resolve the short URL for the first-GPT milestone.
type GizmoResolver func(ctx context.Context, id string) (*model.GPT, error)

type Aggregator struct {
	tz           *util.TimeProvider
	resolveGizmo GizmoResolver
}

func New(tz *util.TimeProvider, resolver GizmoResolver) *Aggregator {
	return &Aggregator{tz: tz, resolveGizmo: resolver}
}

// Outcome carries everything the extractor derives. DailyMessages maps a
// calendar-day key to the user-message count of that day.
type Outcome struct {
	Messages      model.MessageStats
	GPTs          model.GPTStats
	Archived      int
	DailyMessages map[string]int
	Milestones    *events.Set
}

// Aggregate walks every conversation once and accumulates statistics and
// first-occurrence milestones. Conversations are processed in creation-time
// ascending order regardless of input order, so first-occurrence milestones
// are deterministic.
func (a *Aggregator) Aggregate(ctx context.Context, conversations []model.Conversation, owned []model.GPT) (*Outcome, error) {
	sorted := make([]model.Conversation, len(conversations))
	copy(sorted, conversations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreateTime.Time.Before(sorted[j].CreateTime.Time)
	})

	outcome := &Outcome{
		DailyMessages: make(map[string]int),
		Milestones:    events.NewSet(),
	}

	ownedByID := lo.KeyBy(owned, func(g model.GPT) string { return g.ID })
	for _, g := range owned {
		if g.ShareRecipient != model.ShareRecipientPrivate {
			outcome.GPTs.Mine.Public++
			outcome.GPTs.Mine.Chats.Public += int(g.VanityMetrics.NumConversations)
		} else {
			outcome.GPTs.Mine.Private++
		}
	}

	gizmoChats := make(map[string]int)

	for i, conv := range sorted {
		switch i {
		case 0:
			outcome.Milestones.MarkFirst(events.FirstConversation, conv.CreateTime.Time, conv.ID)
		case 99:
			outcome.Milestones.MarkFirst(events.Milestone100, conv.CreateTime.Time, conv.ID)
		case 999:
			outcome.Milestones.MarkFirst(events.Milestone1000, conv.CreateTime.Time, conv.ID)
		}

		if conv.IsArchived {
			outcome.Archived++
		}

		if conv.GizmoID != "" {
			gizmoChats[conv.GizmoID]++
			if err := a.markGizmoMilestones(ctx, outcome.Milestones, &conv, ownedByID); err != nil {
				return nil, err
			}
		}

		counters := a.extractConversation(&conv, outcome.Milestones, outcome.DailyMessages)
		outcome.Milestones.RecordLongest(counters.Total, conv.CreateTime.Time, conv.ID)

		outcome.Messages.Total += counters.Total
		outcome.Messages.GPT4 += counters.GPT4
		outcome.Messages.Vision += counters.Vision
		outcome.Messages.Image += counters.Image
		outcome.Messages.Voice += counters.Voice
		outcome.Messages.WebBrowser += counters.WebBrowser
		outcome.Messages.CodeInterpreter += counters.CodeInterpreter
		outcome.Messages.File += counters.File
	}

	for id, count := range gizmoChats {
		if g, ok := ownedByID[id]; ok {
			if g.ShareRecipient == model.ShareRecipientPrivate {
				outcome.GPTs.Mine.Chats.Private += count
			}
		} else {
			outcome.GPTs.ThirdParty.Total++
			outcome.GPTs.ThirdParty.Chats += count
		}
	}

	return outcome, nil
}

// markGizmoMilestones handles first-GPT and first-created-GPT milestones
// for a conversation associated with a custom assistant, resolving the
// assistant's short URL from the owned set or via a direct lookup.
func (a *Aggregator) markGizmoMilestones(ctx context.Context, set *events.Set, conv *model.Conversation, ownedByID map[string]model.GPT) error {
	if set.MarkFirst(events.FirstGPT, conv.CreateTime.Time, conv.ID) {
		if g, ok := ownedByID[conv.GizmoID]; ok {
			set.SetGizmoURL(events.FirstGPT, g.ShortURL)
		} else if a.resolveGizmo != nil {
			g, err := a.resolveGizmo(ctx, conv.GizmoID)
			if err != nil {
				return fmt.Errorf("failed to resolve GPT %s: %w", conv.GizmoID, err)
			}
			set.SetGizmoURL(events.FirstGPT, g.ShortURL)
		}
	}

	if g, ok := ownedByID[conv.GizmoID]; ok {
		if set.MarkFirst(events.FirstCreatedGPT, conv.CreateTime.Time, conv.ID) {
			set.SetGizmoURL(events.FirstCreatedGPT, g.ShortURL)
		}
	}
	return nil
}

// extractConversation performs the single pass over all mapping nodes. The
// pass is order-independent; tool-turn de-duplication happens afterwards on
// the collected message ids.
func (a *Aggregator) extractConversation(conv *model.Conversation, set *events.Set, daily map[string]int) model.MessageStats {
	var counters model.MessageStats
	toolMsgs := make(map[string][]string)

	for _, node := range conv.Mapping {
		msg := node.Message
		if msg == nil || msg.Author.Role == model.RoleSystem {
			continue
		}

		switch msg.Author.Role {
		case model.RoleUser:
			if msg.Content.ContentType == model.ContentMultimodalText {
				counters.Vision++
				set.MarkFirst(events.FirstVision, conv.CreateTime.Time, conv.ID)
			} else if len(msg.Metadata.Attachments) > 0 {
				counters.File++
				set.MarkFirst(events.FirstFile, conv.CreateTime.Time, conv.ID)
			}
			if msg.Metadata.VoiceModeMessage {
				counters.Voice++
				set.MarkFirst(events.FirstVoice, conv.CreateTime.Time, conv.ID)
			}
			counters.Total++

			if !msg.CreateTime.Time.IsZero() {
				daily[a.tz.DayKey(msg.CreateTime.Time)]++
			}

		case model.RoleAssistant:
			if msg.Content.ContentType == model.ContentCode {
				switch msg.Recipient {
				case model.RecipientDalle:
					set.MarkFirst(events.FirstImage, conv.CreateTime.Time, conv.ID)
					toolMsgs[msg.Recipient] = append(toolMsgs[msg.Recipient], node.ID)
				case model.RecipientBrowser:
					set.MarkFirst(events.FirstWebBrowser, conv.CreateTime.Time, conv.ID)
					toolMsgs[msg.Recipient] = append(toolMsgs[msg.Recipient], node.ID)
				case model.RecipientPython:
					set.MarkFirst(events.FirstCodeInterpreter, conv.CreateTime.Time, conv.ID)
					toolMsgs[msg.Recipient] = append(toolMsgs[msg.Recipient], node.ID)
				}
			} else if msg.Metadata.ModelSlug == model.ModelSlugGPT4 && msg.EndTurn {
				counters.GPT4++
				set.MarkFirst(events.FirstGPT4, conv.CreateTime.Time, conv.ID)
			}
		}
	}

	for tool, ids := range toolMsgs {
		n := 1
		if len(ids) > 1 {
			n = countToolTurns(conv, ids)
		}
		switch tool {
		case model.RecipientDalle:
			counters.Image += n
		case model.RecipientBrowser:
			counters.WebBrowser += n
		case model.RecipientPython:
			counters.CodeInterpreter += n
		}
	}

	return counters
}

// countToolTurns collapses multi-step tool invocations within one
// conversational turn: each tool message's ancestor chain is walked up to
// the nearest user-authored node (or the root), and distinct anchors are
// counted. The walk is an explicit loop over the node lookup table, bounded
// by the mapping size; an unterminated chain anchors on the last reachable
// node instead of failing the run.
func countToolTurns(conv *model.Conversation, nodeIDs []string) int {
	turns := make(map[string]struct{})

	for _, id := range nodeIDs {
		node, ok := conv.Mapping[id]
		if !ok {
			continue
		}

		anchor := node.ID
		parent := node.Parent
		for steps := 0; parent != ""; steps++ {
			if steps >= len(conv.Mapping) {
				log.Warn().Str("conversation", conv.ID).Str("node", id).Msg("ancestor chain does not terminate, anchoring in place")
				break
			}
			cur, ok := conv.Mapping[parent]
			if !ok {
				log.Warn().Str("conversation", conv.ID).Str("node", parent).Msg("ancestor chain broken, anchoring in place")
				break
			}
			anchor = cur.ID
			if cur.Message != nil && cur.Message.Author.Role == model.RoleUser {
				break
			}
			parent = cur.Parent
		}
		turns[anchor] = struct{}{}
	}

	return len(turns)
}
