package issues

import (
	"context"
	"strings"
	"time"
)

// Issue is one tracker entry, shaped like `gh issue list --json` output.
type Issue struct {
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	State     string     `json:"state"`
	Author    Author     `json:"author"`
	Labels    []Label    `json:"labels"`
	CreatedAt time.Time  `json:"createdAt"`
	ClosedAt  *time.Time `json:"closedAt,omitempty"`
}

type Author struct {
	Login string `json:"login"`
}

type Label struct {
	Name string `json:"name"`
}

// Closed reports whether the issue is resolved. gh reports CLOSED, the REST
// API reports closed.
func (i Issue) Closed() bool {
	return strings.EqualFold(i.State, "closed")
}

// HasLabel matches label names case-insensitively.
func (i Issue) HasLabel(name string) bool {
	for _, l := range i.Labels {
		if strings.EqualFold(l.Name, name) {
			return true
		}
	}
	return false
}

// Source provides the full list of tracked issues.
type Source interface {
	List(ctx context.Context) ([]Issue, error)
}
