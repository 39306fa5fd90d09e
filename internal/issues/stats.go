package issues

import (
	"math"
	"time"
)

// Window selects the "this week" issues. When MinNumber is set it wins over
// Since, matching the number-threshold reports of older exports.
type Window struct {
	Since     time.Time
	MinNumber int
}

func (w Window) contains(issue Issue) bool {
	if w.MinNumber > 0 {
		return issue.Number >= w.MinNumber
	}
	return !issue.CreatedAt.Before(w.Since)
}

// Stats is the summary fed into the post templates and stored in the post log.
type Stats struct {
	ThisWeek WeekStats    `json:"thisWeek"`
	Overall  OverallStats `json:"overall"`
}

type WeekStats struct {
	Created        int            `json:"created"`
	Resolved       int            `json:"resolved"`
	CompletionRate int            `json:"completionRate"`
	Authors        map[string]int `json:"authors"`
	Categories     Counts         `json:"categories"`
}

type OverallStats struct {
	Total          int     `json:"total"`
	Resolved       int     `json:"resolved"`
	Active         int     `json:"active"`
	ResolutionRate float64 `json:"resolutionRate"`
}

// Summarize reduces the full issue list to window and overall statistics.
// Rates are zero when there is nothing to divide by.
func Summarize(all []Issue, window Window) Stats {
	var recent []Issue
	for _, issue := range all {
		if window.contains(issue) {
			recent = append(recent, issue)
		}
	}

	week := WeekStats{
		Created:    len(recent),
		Authors:    map[string]int{},
		Categories: CountCategories(recent),
	}
	for _, issue := range recent {
		if issue.Closed() {
			week.Resolved++
		}
		week.Authors[issue.Author.Login]++
	}
	if week.Created > 0 {
		week.CompletionRate = int(math.Round(float64(week.Resolved) * 100 / float64(week.Created)))
	}

	overall := OverallStats{Total: len(all)}
	for _, issue := range all {
		if issue.Closed() {
			overall.Resolved++
		}
	}
	overall.Active = overall.Total - overall.Resolved
	if overall.Total > 0 {
		overall.ResolutionRate = math.Round(float64(overall.Resolved)*1000/float64(overall.Total)) / 10
	}

	return Stats{ThisWeek: week, Overall: overall}
}
