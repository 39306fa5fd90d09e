package issues

import (
	"sort"
	"strings"
)

type Category string

const (
	Accessibility Category = "accessibility"
	Performance   Category = "performance"
	UX            Category = "ux"
	DX            Category = "dx"
	BugFix        Category = "bugfix"
	Enhancement   Category = "enhancement"
	Cleanup       Category = "cleanup"
)

// AllCategories is the fixed reporting order.
var AllCategories = []Category{Accessibility, Performance, UX, DX, BugFix, Enhancement, Cleanup}

type rule struct {
	labels   []string
	keywords []string
}

var rules = map[Category]rule{
	Accessibility: {labels: []string{"pillar: accessibility"}, keywords: []string{"a11y", "accessibility"}},
	Performance:   {labels: []string{"performance"}, keywords: []string{"performance", "optimization"}},
	UX:            {labels: []string{"ux"}, keywords: []string{"user experience"}},
	DX:            {labels: []string{"dx"}, keywords: []string{"developer experience"}},
	BugFix:        {labels: []string{"bug"}, keywords: []string{"bug", "fix"}},
	Enhancement:   {labels: []string{"enhancement"}, keywords: []string{"feature"}},
	Cleanup:       {keywords: []string{"cleanup", "remove", "refactor"}},
}

// Categorize returns every category the issue falls into. An issue may count
// toward several.
func Categorize(issue Issue) []Category {
	title := strings.ToLower(issue.Title)
	var out []Category
	for _, c := range AllCategories {
		r := rules[c]
		if matchesLabel(issue, r.labels) || containsAny(title, r.keywords) {
			out = append(out, c)
		}
	}
	return out
}

func matchesLabel(issue Issue, labels []string) bool {
	for _, l := range labels {
		if issue.HasLabel(l) {
			return true
		}
	}
	return false
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// Counts maps each category to the number of issues in it.
type Counts map[Category]int

func CountCategories(all []Issue) Counts {
	counts := make(Counts, len(AllCategories))
	for _, c := range AllCategories {
		counts[c] = 0
	}
	for _, issue := range all {
		for _, c := range Categorize(issue) {
			counts[c]++
		}
	}
	return counts
}

// CategoryCount is one entry of a ranking.
type CategoryCount struct {
	Category Category
	Count    int
}

// Top returns up to n non-empty categories, largest first. Ties keep the
// reporting order.
func (c Counts) Top(n int) []CategoryCount {
	var ranked []CategoryCount
	for _, cat := range AllCategories {
		if c[cat] > 0 {
			ranked = append(ranked, CategoryCount{Category: cat, Count: c[cat]})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
