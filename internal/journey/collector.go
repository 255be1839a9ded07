// Package journey orchestrates the full aggregation pipeline and produces
// the JourneyData value consumed by the presentation layer.
package journey

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/yaozhiwang/chatgpt-sugar/internal/core/events"
	"github.com/yaozhiwang/chatgpt-sugar/internal/core/model"
	"github.com/yaozhiwang/chatgpt-sugar/internal/data/aggregator"
	"github.com/yaozhiwang/chatgpt-sugar/internal/util"
)

// DefaultRootURL is the site root used in deep links on events.
const DefaultRootURL = "https://chatgpt.com"

// Repository is the data-access surface the collector needs. *api.Client
// satisfies it; tests substitute a fake.
type Repository interface {
	ListAllConversations(ctx context.Context, includeArchived bool) ([]model.ConversationSummary, error)
	GetConversations(ctx context.Context, items []model.ConversationSummary) ([]model.Conversation, error)
	ListMyGizmos(ctx context.Context) ([]model.GPT, error)
	GetGizmo(ctx context.Context, id string) (*model.GPT, error)
	GetSharedConversations(ctx context.Context, limit int) (*model.SharedConversations, error)
	GetUser(ctx context.Context) (*model.User, error)
}

type Config struct {
	TimeProvider    *util.TimeProvider
	RootURL         string
	IncludeArchived bool

	// Now is injectable for deterministic anniversary and age computation.
	Now func() time.Time
}

type Collector struct {
	repo Repository
	cfg  Config
}

func NewCollector(repo Repository, cfg Config) *Collector {
	if cfg.RootURL == "" {
		cfg.RootURL = DefaultRootURL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Collector{repo: repo, cfg: cfg}
}

// Collect runs the whole pipeline: list conversations, fetch bodies, fetch
// owned GPTs, extract statistics and milestones, then attach profile-level
// events. Any failure aborts the run; there is no partial success.
func (c *Collector) Collect(ctx context.Context) (*model.JourneyData, error) {
	list, err := c.repo.ListAllConversations(ctx, c.cfg.IncludeArchived)
	if err != nil {
		return nil, err
	}
	log.Info().Int("conversations", len(list)).Msg("fetching conversation bodies")

	conversations, err := c.repo.GetConversations(ctx, list)
	if err != nil {
		return nil, err
	}

	gizmos, err := c.repo.ListMyGizmos(ctx)
	if err != nil {
		return nil, err
	}

	agg := aggregator.New(c.cfg.TimeProvider, func(ctx context.Context, id string) (*model.GPT, error) {
		return c.repo.GetGizmo(ctx, id)
	})
	outcome, err := agg.Aggregate(ctx, conversations, gizmos)
	if err != nil {
		return nil, err
	}

	shared, err := c.repo.GetSharedConversations(ctx, 1)
	if err != nil {
		return nil, err
	}

	user, err := c.repo.GetUser(ctx)
	if err != nil {
		return nil, err
	}

	now := c.cfg.Now()
	stats := model.JourneyStats{
		Age:        int(math.Ceil(now.Sub(user.Created.Time).Hours() / 24)),
		ActiveDays: len(outcome.DailyMessages),
		Conversations: model.ConversationStats{
			Total:    len(conversations),
			Shared:   shared.Total,
			Archived: outcome.Archived,
		},
		Messages: outcome.Messages,
		GPTs:     outcome.GPTs,
	}

	userEvents := outcome.Milestones.Events(c.cfg.RootURL)
	userEvents = append(userEvents, c.mostActiveDay(outcome.DailyMessages)...)
	userEvents = append(userEvents, c.firstShared(shared)...)
	userEvents = append(userEvents, c.anniversaries(user.Created.Time, now)...)

	sort.SliceStable(userEvents, func(i, j int) bool {
		return userEvents[i].Date.Before(userEvents[j].Date)
	})

	return &model.JourneyData{
		User:  *user,
		Stats: stats,
		Events: model.JourneyEvents{
			ChatGPT: events.ChatGPTTimeline(),
			User:    userEvents,
		},
	}, nil
}

func (c *Collector) mostActiveDay(daily map[string]int) []model.Event {
	if len(daily) == 0 {
		return nil
	}

	keys := lo.Keys(daily)
	sort.Strings(keys) // deterministic winner on equal counts
	maxKey := keys[0]
	for _, k := range keys[1:] {
		if daily[k] > daily[maxKey] {
			maxKey = k
		}
	}

	date, err := c.cfg.TimeProvider.ParseDayKey(maxKey)
	if err != nil {
		log.Warn().Err(err).Str("day", maxKey).Msg("skipping most-active-day event")
		return nil
	}

	return []model.Event{{
		Name:        "Most Active Day",
		Date:        date,
		Description: fmt.Sprintf("On your busiest day, you exchanged %d messages with ChatGPT.", daily[maxKey]),
	}}
}

func (c *Collector) firstShared(shared *model.SharedConversations) []model.Event {
	if shared.Total == 0 || len(shared.Items) == 0 {
		return nil
	}
	first := shared.Items[0]
	return []model.Event{{
		Name:        "First Shared Conversation",
		Date:        first.CreateTime.Time,
		Link:        fmt.Sprintf("%s/share/%s", c.cfg.RootURL, first.ID),
		Description: "Thank you for spreading the word and inspiring others with your AI encounter.",
	}}
}

// anniversaries appends one event per full year elapsed since account
// creation, advancing the creation date year by year until it passes now.
func (c *Collector) anniversaries(created, now time.Time) []model.Event {
	var out []model.Event
	for years := 1; ; years++ {
		d := created.AddDate(years, 0, 0)
		if d.After(now) {
			return out
		}
		plural := ""
		if years > 1 {
			plural = "s"
		}
		out = append(out, model.Event{
			Name:        fmt.Sprintf("%d-Year Anniversary", years),
			Date:        d,
			Description: fmt.Sprintf("Celebrating %d year%s engaging with ChatGPT.", years, plural),
		})
	}
}
