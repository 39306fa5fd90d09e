// Package compose renders post text for LinkedIn and a short variant for
// Twitter.
package compose

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/dvcrn/hax-poster/internal/issues"
)

// DefaultHashtags is appended to short custom posts that carry no hashtag.
const DefaultHashtags = "#HAXTheWeb #OpenSource"

const shortLineLimit = 200

type PostType string

const (
	IssuesSummary PostType = "issues-summary"
	Custom        PostType = "custom"
)

// Draft is a generated pair of posts awaiting confirmation.
type Draft struct {
	Type     PostType
	Stats    *issues.Stats
	LinkedIn string
	Twitter  string
}

// Summary builds both posts from issue statistics.
func Summary(stats issues.Stats) Draft {
	return Draft{
		Type:     IssuesSummary,
		Stats:    &stats,
		LinkedIn: LinkedInSummary(stats),
		Twitter:  TwitterSummary(stats),
	}
}

// FromContent uses operator-supplied content as the LinkedIn post.
func FromContent(content string) Draft {
	return Draft{
		Type:     Custom,
		LinkedIn: content,
		Twitter:  TwitterFromCustom(content),
	}
}

var categoryNames = map[issues.Category]string{
	issues.Accessibility: "♠ Accessibility",
	issues.Performance:   "⚡ Performance",
	issues.UX:            "🎨 UX Design",
	issues.DX:            "🛠️ Developer Experience",
	issues.BugFix:        "🐛 Bug Fixes",
	issues.Enhancement:   "✨ Enhancements",
	issues.Cleanup:       "🧹 Code Cleanup",
}

func FormatCategory(c issues.Category) string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return string(c)
}

func LinkedInSummary(stats issues.Stats) string {
	week, overall := stats.ThisWeek, stats.Overall

	var focus []string
	for _, cc := range week.Categories.Top(4) {
		focus = append(focus, fmt.Sprintf("%s (%d)", FormatCategory(cc.Category), cc.Count))
	}

	return fmt.Sprintf(`🚀 This Week's Open Source Momentum

📈 Issue Processing:
• %d new issues created
• %d issues resolved
• %d%% completion rate

🎯 Key Focus Areas:
%s

📊 Project Health:
• %s total issues tracked
• %.1f%% overall resolution rate
• %d active issues

Building sustainable #WebComponents for the open web! 💪

#OpenSource #HAXTheWeb #WebDevelopment #ProductivityUpdate #Developer`,
		week.Created, week.Resolved, week.CompletionRate,
		strings.Join(focus, "\n"),
		humanize.Comma(int64(overall.Total)), overall.ResolutionRate, overall.Active)
}

func TwitterSummary(stats issues.Stats) string {
	week, overall := stats.ThisWeek, stats.Overall
	return fmt.Sprintf(`🚀 This Week in Open Source

%d new → %d resolved (%d%%)

%s total | %.1f%% resolution rate

Building sustainable #WebComponents!

#OpenSource #HAXTheWeb`,
		week.Created, week.Resolved, week.CompletionRate,
		humanize.Comma(int64(overall.Total)), overall.ResolutionRate)
}

// TwitterFromCustom condenses custom content to its first non-blank line.
func TwitterFromCustom(content string) string {
	short := "LinkedIn post content"
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			short = line
			break
		}
	}

	if r := []rune(short); len(r) > shortLineLimit {
		short = string(r[:shortLineLimit]) + "..."
	}

	if !strings.Contains(content, "#") {
		short += "\n\n" + DefaultHashtags
	}
	return short
}
