package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/yaozhiwang/chatgpt-sugar/internal/core/model"
	"github.com/yaozhiwang/chatgpt-sugar/internal/util"
)

// SummaryFormatter renders a human-readable journey report.
type SummaryFormatter struct {
	w io.Writer
}

func NewSummaryFormatter(w io.Writer) *SummaryFormatter {
	return &SummaryFormatter{w: w}
}

func (f *SummaryFormatter) Format(data *model.JourneyData) error {
	var b strings.Builder

	bar := strings.Repeat("=", 60)
	b.WriteString(bar + "\n")
	b.WriteString("ChatGPT Journey Report\n")
	b.WriteString(bar + "\n\n")

	if data.User.Name != "" {
		fmt.Fprintf(&b, "User: %s", data.User.Name)
		if data.User.Email != "" {
			fmt.Fprintf(&b, " <%s>", data.User.Email)
		}
		b.WriteString("\n\n")
	}

	stats := data.Stats
	fmt.Fprintf(&b, "Days since first conversation: %s\n", util.FormatNumber(stats.Age))
	fmt.Fprintf(&b, "Active days: %s\n\n", util.FormatNumber(stats.ActiveDays))

	b.WriteString("Conversations:\n")
	fmt.Fprintf(&b, "  Total:    %s\n", util.FormatNumber(stats.Conversations.Total))
	fmt.Fprintf(&b, "  Shared:   %s\n", util.FormatNumber(stats.Conversations.Shared))
	fmt.Fprintf(&b, "  Archived: %s\n\n", util.FormatNumber(stats.Conversations.Archived))

	b.WriteString("Messages:\n")
	fmt.Fprintf(&b, "  Total:            %s\n", util.FormatNumber(stats.Messages.Total))
	fmt.Fprintf(&b, "  GPT-4:            %s\n", util.FormatNumber(stats.Messages.GPT4))
	fmt.Fprintf(&b, "  Vision:           %s\n", util.FormatNumber(stats.Messages.Vision))
	fmt.Fprintf(&b, "  Image:            %s\n", util.FormatNumber(stats.Messages.Image))
	fmt.Fprintf(&b, "  Voice:            %s\n", util.FormatNumber(stats.Messages.Voice))
	fmt.Fprintf(&b, "  Web Browser:      %s\n", util.FormatNumber(stats.Messages.WebBrowser))
	fmt.Fprintf(&b, "  Code Interpreter: %s\n", util.FormatNumber(stats.Messages.CodeInterpreter))
	fmt.Fprintf(&b, "  File:             %s\n\n", util.FormatNumber(stats.Messages.File))

	gpts := stats.GPTs
	if gpts.Mine.Public+gpts.Mine.Private+gpts.ThirdParty.Total > 0 {
		b.WriteString("GPTs:\n")
		fmt.Fprintf(&b, "  Created (public):  %s, %s chats\n",
			util.FormatNumber(gpts.Mine.Public), util.FormatNumber(gpts.Mine.Chats.Public))
		fmt.Fprintf(&b, "  Created (private): %s, %s chats\n",
			util.FormatNumber(gpts.Mine.Private), util.FormatNumber(gpts.Mine.Chats.Private))
		fmt.Fprintf(&b, "  Third-party used:  %s, %s chats\n\n",
			util.FormatNumber(gpts.ThirdParty.Total), util.FormatNumber(gpts.ThirdParty.Chats))
	}

	if len(data.Events.User) > 0 {
		b.WriteString("Milestones:\n")
		b.WriteString(strings.Repeat("-", 60) + "\n")
		for _, ev := range data.Events.User {
			fmt.Fprintf(&b, "%s  %s\n", ev.Date.Format("2006-01-02"), ev.Name)
			if ev.Description != "" {
				fmt.Fprintf(&b, "            %s\n", ev.Description)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(bar + "\n")

	_, err := io.WriteString(f.w, b.String())
	return err
}
