package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaozhiwang/chatgpt-sugar/internal/api"
	"github.com/yaozhiwang/chatgpt-sugar/internal/data/batch"
	"github.com/yaozhiwang/chatgpt-sugar/internal/data/cache"
	"github.com/yaozhiwang/chatgpt-sugar/internal/journey"
	"github.com/yaozhiwang/chatgpt-sugar/internal/presentation/formatter"
	"github.com/yaozhiwang/chatgpt-sugar/internal/util"
)

var (
	// Logging related
	debug bool

	// API access
	accessToken string
	baseURL     string
	sessionURL  string

	// Fetch behavior
	includeArchived bool
	concurrency     int
	cacheDir        string
	reset           bool

	// Output related
	outputFormat string
	timezone     string

	rootCmd = &cobra.Command{
		Use:   "chatgpt-sugar [flags]",
		Short: "ChatGPT journey and usage statistics",
		Long: `chatgpt-sugar fetches your full ChatGPT conversation history and turns it
into a personal journey: usage statistics, first-use milestones, and a
timeline of product events.

Examples:
  chatgpt-sugar --token $TOKEN                    # Summary report
  chatgpt-sugar --token $TOKEN --output json      # Full journey as JSON
  chatgpt-sugar --token $TOKEN --include-archived # Count archived chats too
  chatgpt-sugar --token $TOKEN --concurrency 8    # Gentler on the API`,
		RunE: runJourney,
	}
)

const defaultCacheDir = "~/.chatgpt-sugar/cache"

func init() {
	// API access
	rootCmd.Flags().StringVar(&accessToken, "token", "",
		"Bearer access token (fetched from the session endpoint when empty)")
	rootCmd.Flags().StringVar(&baseURL, "base-url", api.DefaultBaseURL,
		"Backend API base URL")
	rootCmd.Flags().StringVar(&sessionURL, "session-url", api.DefaultSessionURL,
		"Session endpoint used to obtain an access token")

	// Fetch behavior
	rootCmd.Flags().BoolVar(&includeArchived, "include-archived", false,
		"Include archived conversations")
	rootCmd.Flags().IntVar(&concurrency, "concurrency", 0,
		"Concurrent conversation fetches (0 = default)")
	rootCmd.Flags().StringVar(&cacheDir, "cache-dir", defaultCacheDir,
		"Conversation body cache directory (empty disables caching)")
	rootCmd.Flags().BoolVarP(&reset, "reset", "r", false,
		"Clear the conversation cache before fetching")

	// Output configuration
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "summary",
		"Output format (summary, json)")
	rootCmd.Flags().StringVar(&timezone, "timezone", "Local",
		"Timezone for day grouping (e.g., Asia/Shanghai, UTC)")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug logging")
}

func runJourney(cmd *cobra.Command, args []string) error {
	util.InitLogger(debug)

	tz, err := util.NewTimeProvider(timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	out, err := formatter.New(outputFormat, os.Stdout)
	if err != nil {
		return err
	}

	opts := []api.Option{
		api.WithBaseURL(baseURL),
		api.WithSessionURL(sessionURL),
	}
	if accessToken != "" {
		opts = append(opts, api.WithAccessToken(accessToken))
	}
	if concurrency > 0 {
		opts = append(opts, api.WithBatchOptions(batch.Options{Concurrency: concurrency}))
	}
	if dir := expandPath(cacheDir); dir != "" {
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if reset {
			if err := fc.Clear(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
		}
		opts = append(opts, api.WithCache(fc))
	}

	client := api.NewClient(opts...)
	collector := journey.NewCollector(client, journey.Config{
		TimeProvider:    tz,
		IncludeArchived: includeArchived,
		Now:             time.Now,
	})

	data, err := collector.Collect(cmd.Context())
	if err != nil {
		return err
	}
	return out.Format(data)
}

func Execute() error {
	return rootCmd.Execute()
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	return path
}
