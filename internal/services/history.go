package services

import (
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/xvierd/ignite-timer/internal/domain"
)

// cycleTasks adapts a cycle list to fuzzy.Source.
type cycleTasks []*domain.Cycle

func (c cycleTasks) String(i int) string { return c[i].Task }
func (c cycleTasks) Len() int            { return len(c) }

// History returns cycles newest first, fuzzy-filtered by task name when
// query is non-empty. Filtered results are ordered by match quality.
func History(cycles []*domain.Cycle, query string) []*domain.Cycle {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]*domain.Cycle, 0, len(cycles))
		for i := len(cycles) - 1; i >= 0; i-- {
			out = append(out, cycles[i])
		}
		return out
	}

	matches := fuzzy.FindFrom(query, cycleTasks(cycles))
	out := make([]*domain.Cycle, 0, len(matches))
	for _, match := range matches {
		out = append(out, cycles[match.Index])
	}
	return out
}
